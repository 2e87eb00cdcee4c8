package recommend

import "time"

// Difficulty is the ordinal difficulty level of an exercise.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ordinal maps the difficulty to a scalar in [0,1]. Unknown difficulties
// map to zero so an incomplete catalog never fails feature extraction.
func (d Difficulty) ordinal() float64 {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 0.5
	case DifficultyAdvanced:
		return 1
	default:
		return 0
	}
}

// Force is the force type of an exercise.
type Force string

const (
	ForcePush   Force = "push"
	ForcePull   Force = "pull"
	ForceStatic Force = "static"
)

// Mechanic distinguishes compound from isolation movements.
type Mechanic string

const (
	MechanicCompound  Mechanic = "compound"
	MechanicIsolation Mechanic = "isolation"
)

// Exercise is an immutable catalog record. The engine never creates or
// updates exercises.
type Exercise struct {
	ID               string
	Name             string
	PrimaryMuscles   []string
	SecondaryMuscles []string
	Equipment        string
	Difficulty       Difficulty
	Category         string
	Force            Force
	Mechanic         Mechanic
}

// SetRecord is a single logged set of an exercise.
type SetRecord struct {
	Reps      int
	WeightKg  float64
	Completed bool
}

// HistoryEntry is one exercise performed in one logged workout.
type HistoryEntry struct {
	UserID      string
	WorkoutID   string
	ExerciseID  string
	PerformedAt time.Time
	Position    int
	Sets        []SetRecord
}

// completedSets counts the sets the user actually finished.
func (e HistoryEntry) completedSets() int {
	count := 0
	for _, set := range e.Sets {
		if set.Completed {
			count++
		}
	}
	return count
}

// completedVolumeKg sums reps×weight over completed sets.
func (e HistoryEntry) completedVolumeKg() float64 {
	volume := 0.0
	for _, set := range e.Sets {
		if set.Completed {
			volume += float64(set.Reps) * set.WeightKg
		}
	}
	return volume
}

// ScoreSource tags which signal produced a score.
type ScoreSource string

const (
	SourceContent       ScoreSource = "content"
	SourceCollaborative ScoreSource = "collaborative"
	SourceHybrid        ScoreSource = "hybrid"
)

// ScoredExercise is an exercise with a relevance score for one user.
// Ephemeral, produced per request.
type ScoredExercise struct {
	ExerciseID string
	Score      float64
	Source     ScoreSource
}

// WorkoutTemplate is a named, ordered, bounded-size set of exercises
// representing one recommended workout. Deficient marks templates that
// could not reach the minimum size because the catalog for that focus is
// too small.
type WorkoutTemplate struct {
	TemplateName string   `json:"template_name"`
	Focus        string   `json:"focus"`
	Exercises    []string `json:"exercises"`
	Deficient    bool     `json:"deficient"`
}

// Recommendations is the full response for one user.
type Recommendations struct {
	ForYou    []WorkoutTemplate `json:"for_you_recommendations"`
	Community []WorkoutTemplate `json:"community_recommendations"`
}

// legMuscles identifies lower-body primary muscles for the Legs focus.
var legMuscles = map[string]bool{
	"quadriceps": true,
	"hamstrings": true,
	"glutes":     true,
	"calves":     true,
	"adductors":  true,
	"abductors":  true,
}

// isLegExercise reports whether the exercise primarily targets the lower
// body.
func isLegExercise(ex Exercise) bool {
	for _, muscle := range ex.PrimaryMuscles {
		if legMuscles[muscle] {
			return true
		}
	}
	return false
}
