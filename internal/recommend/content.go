package recommend

import "sort"

// zeroNormScore ranks candidates with undefined cosine (zero-norm feature
// vector) below every real similarity instead of failing on them.
const zeroNormScore = -1.0

// scoreContent ranks every catalog exercise by cosine similarity to the
// user's profile. Ties are broken by lower difficulty first to favor
// accessibility, then by id for determinism. With a zero profile the
// similarity is 0 everywhere and the tie-breaks produce a neutral,
// beginner-first ordering, which is the cold-start default.
func scoreContent(profile []float64, fs *featureSet) []ScoredExercise {
	scores := make([]ScoredExercise, 0, len(fs.exercises))
	for _, ex := range fs.exercises {
		vec, _ := fs.vector(ex.ID)
		score := zeroNormScore
		if !isZeroVector(vec) {
			score = cosineSimilarity(profile, vec)
		}
		scores = append(scores, ScoredExercise{
			ExerciseID: ex.ID,
			Score:      score,
			Source:     SourceContent,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		di := fs.byID[scores[i].ExerciseID].Difficulty.ordinal()
		dj := fs.byID[scores[j].ExerciseID].Difficulty.ordinal()
		if di != dj {
			return di < dj
		}
		return scores[i].ExerciseID < scores[j].ExerciseID
	})
	return scores
}

// isZeroVector reports whether every component is zero.
func isZeroVector(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
