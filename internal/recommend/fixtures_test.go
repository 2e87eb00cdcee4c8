package recommend

import (
	"fmt"
	"time"
)

// testCatalog returns a 20-exercise catalog with at least five exercises
// per focus (full body, push, pull, legs).
func testCatalog() []Exercise {
	return []Exercise{
		// Push.
		{ID: "bench-press", Name: "Bench Press", PrimaryMuscles: []string{"chest"},
			SecondaryMuscles: []string{"triceps", "shoulders"}, Equipment: "barbell",
			Difficulty: DifficultyIntermediate, Category: "strength", Force: ForcePush, Mechanic: MechanicCompound},
		{ID: "overhead-press", Name: "Overhead Press", PrimaryMuscles: []string{"shoulders"},
			SecondaryMuscles: []string{"triceps"}, Equipment: "barbell",
			Difficulty: DifficultyIntermediate, Category: "strength", Force: ForcePush, Mechanic: MechanicCompound},
		{ID: "incline-dumbbell-press", Name: "Incline Dumbbell Press", PrimaryMuscles: []string{"chest"},
			SecondaryMuscles: []string{"shoulders"}, Equipment: "dumbbell",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForcePush, Mechanic: MechanicCompound},
		{ID: "triceps-pushdown", Name: "Triceps Pushdown", PrimaryMuscles: []string{"triceps"},
			Equipment:  "cable",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForcePush, Mechanic: MechanicIsolation},
		{ID: "lateral-raise", Name: "Lateral Raise", PrimaryMuscles: []string{"shoulders"},
			Equipment:  "dumbbell",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForcePush, Mechanic: MechanicIsolation},
		// Pull.
		{ID: "pull-up", Name: "Pull Up", PrimaryMuscles: []string{"lats"},
			SecondaryMuscles: []string{"biceps"}, Equipment: "bodyweight",
			Difficulty: DifficultyIntermediate, Category: "strength", Force: ForcePull, Mechanic: MechanicCompound},
		{ID: "barbell-row", Name: "Barbell Row", PrimaryMuscles: []string{"upper_back"},
			SecondaryMuscles: []string{"lats", "biceps"}, Equipment: "barbell",
			Difficulty: DifficultyIntermediate, Category: "strength", Force: ForcePull, Mechanic: MechanicCompound},
		{ID: "lat-pulldown", Name: "Lat Pulldown", PrimaryMuscles: []string{"lats"},
			SecondaryMuscles: []string{"biceps"}, Equipment: "machine",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForcePull, Mechanic: MechanicCompound},
		{ID: "biceps-curl", Name: "Biceps Curl", PrimaryMuscles: []string{"biceps"},
			Equipment:  "dumbbell",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForcePull, Mechanic: MechanicIsolation},
		{ID: "face-pull", Name: "Face Pull", PrimaryMuscles: []string{"upper_back"},
			SecondaryMuscles: []string{"shoulders"}, Equipment: "cable",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForcePull, Mechanic: MechanicIsolation},
		// Legs.
		{ID: "back-squat", Name: "Back Squat", PrimaryMuscles: []string{"quadriceps"},
			SecondaryMuscles: []string{"glutes", "hamstrings"}, Equipment: "barbell",
			Difficulty: DifficultyIntermediate, Category: "strength", Force: ForcePush, Mechanic: MechanicCompound},
		{ID: "romanian-deadlift", Name: "Romanian Deadlift", PrimaryMuscles: []string{"hamstrings"},
			SecondaryMuscles: []string{"glutes"}, Equipment: "barbell",
			Difficulty: DifficultyIntermediate, Category: "strength", Force: ForcePull, Mechanic: MechanicCompound},
		{ID: "leg-press", Name: "Leg Press", PrimaryMuscles: []string{"quadriceps"},
			SecondaryMuscles: []string{"glutes"}, Equipment: "machine",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForcePush, Mechanic: MechanicCompound},
		{ID: "leg-curl", Name: "Leg Curl", PrimaryMuscles: []string{"hamstrings"},
			Equipment:  "machine",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForcePull, Mechanic: MechanicIsolation},
		{ID: "calf-raise", Name: "Calf Raise", PrimaryMuscles: []string{"calves"},
			Equipment:  "machine",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForcePush, Mechanic: MechanicIsolation},
		// Full body and core.
		{ID: "deadlift", Name: "Deadlift", PrimaryMuscles: []string{"hamstrings", "glutes"},
			SecondaryMuscles: []string{"upper_back"}, Equipment: "barbell",
			Difficulty: DifficultyAdvanced, Category: "strength", Force: ForcePull, Mechanic: MechanicCompound},
		{ID: "kettlebell-swing", Name: "Kettlebell Swing", PrimaryMuscles: []string{"glutes"},
			SecondaryMuscles: []string{"hamstrings"}, Equipment: "kettlebell",
			Difficulty: DifficultyIntermediate, Category: "cardio", Force: ForcePull, Mechanic: MechanicCompound},
		{ID: "plank", Name: "Plank", PrimaryMuscles: []string{"abdominals"},
			Equipment:  "bodyweight",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForceStatic, Mechanic: MechanicIsolation},
		{ID: "hanging-leg-raise", Name: "Hanging Leg Raise", PrimaryMuscles: []string{"abdominals"},
			Equipment:  "bodyweight",
			Difficulty: DifficultyIntermediate, Category: "strength", Force: ForceStatic, Mechanic: MechanicIsolation},
		{ID: "farmers-carry", Name: "Farmers Carry", PrimaryMuscles: []string{"forearms"},
			SecondaryMuscles: []string{"abdominals"}, Equipment: "dumbbell",
			Difficulty: DifficultyBeginner, Category: "strength", Force: ForceStatic, Mechanic: MechanicCompound},
	}
}

// testFeatureSet builds a feature snapshot over the test catalog.
func testFeatureSet() *featureSet {
	fs, _ := newFeatureSet(testCatalog(), "test-v1")
	return fs
}

// historyEntry creates a completed history entry the given number of days
// in the past.
func historyEntry(userID, exerciseID string, daysAgo int, completedSets int) HistoryEntry {
	sets := make([]SetRecord, completedSets)
	for i := range sets {
		sets[i] = SetRecord{Reps: 8, WeightKg: 40, Completed: true}
	}
	return HistoryEntry{
		UserID:      userID,
		WorkoutID:   fmt.Sprintf("%s-workout-%d", userID, daysAgo),
		ExerciseID:  exerciseID,
		PerformedAt: testNow().AddDate(0, 0, -daysAgo),
		Position:    0,
		Sets:        sets,
	}
}

// testNow pins the clock so decay weights are stable across test runs.
func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// pushHistory logs three push-focused workouts for the user.
func pushHistory(userID string) []HistoryEntry {
	return []HistoryEntry{
		historyEntry(userID, "bench-press", 2, 3),
		historyEntry(userID, "overhead-press", 2, 3),
		historyEntry(userID, "triceps-pushdown", 2, 2),
		historyEntry(userID, "bench-press", 7, 3),
		historyEntry(userID, "incline-dumbbell-press", 7, 3),
		historyEntry(userID, "lateral-raise", 7, 2),
		historyEntry(userID, "bench-press", 14, 3),
		historyEntry(userID, "overhead-press", 14, 3),
		historyEntry(userID, "lateral-raise", 14, 2),
	}
}
