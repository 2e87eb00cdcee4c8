package recommend

import "sort"

// combineScores fuses content and collaborative rankings into one hybrid
// ranking.
//
// Cold-start users get content scores only, scaled to [0,1]. Warm users
// get alpha·content + (1−alpha)·collaborative after min-max scaling each
// list; an empty collaborative list (cold user in the matrix, rebuild
// pending, below-density model) degrades gracefully to content-only. The
// content ordering is used as the tie-break so equal fused scores keep the
// accessibility-first ordering.
func combineScores(content, collaborative []ScoredExercise, coldStart bool, alpha float64) []ScoredExercise {
	fused := make([]ScoredExercise, len(content))
	copy(fused, content)
	minMaxScale(fused)

	if !coldStart && len(collaborative) > 0 {
		scaled := make([]ScoredExercise, len(collaborative))
		copy(scaled, collaborative)
		minMaxScale(scaled)
		collabByID := make(map[string]float64, len(scaled))
		for _, s := range scaled {
			collabByID[s.ExerciseID] = s.Score
		}
		for i := range fused {
			fused[i].Score = alpha*fused[i].Score + (1-alpha)*collabByID[fused[i].ExerciseID]
		}
	}

	for i := range fused {
		fused[i].Source = SourceHybrid
	}
	// Stable sort keeps the content tie-break ordering.
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})
	return fused
}
