package recommend

import "sort"

// latentFactorModel is the low-rank approximation of the interaction
// matrix. Rebuilt offline together with the matrix; read-only while
// serving requests.
type latentFactorModel struct {
	rank        int
	userFactors [][]float64
	itemFactors [][]float64
}

// trainLatentModel factorizes the matrix at the configured rank. Returns
// nil when the matrix density is below the configured threshold, in which
// case memory-based scoring is used alone.
func trainLatentModel(m *interactionMatrix, cfg Config) *latentFactorModel {
	if m.density() < cfg.MinMatrixDensity {
		return nil
	}
	userFactors, itemFactors := factorize(m, cfg.FactorRank)
	return &latentFactorModel{
		rank:        cfg.FactorRank,
		userFactors: userFactors,
		itemFactors: itemFactors,
	}
}

// minOverlappingNeighbors is the minimum number of neighbors with shared
// interactions required for a memory-based prediction.
const minOverlappingNeighbors = 2

// scoreMemoryBased predicts affinities as the similarity-weighted average
// of the top-K most similar users' affinities. Users not present in the
// matrix, or with fewer than two overlapping neighbors, yield an empty
// list so the combiner falls back to content scoring.
func scoreMemoryBased(userID string, m *interactionMatrix, k int) []ScoredExercise {
	rowIdx, ok := m.userIndex[userID]
	if !ok {
		return nil
	}

	neighbors := topKNeighbors(m, rowIdx, k)
	overlapping := 0
	for _, n := range neighbors {
		if n.overlap > 0 {
			overlapping++
		}
	}
	if overlapping < minOverlappingNeighbors {
		return nil
	}

	weighted := make(map[int]float64)
	simSums := make(map[int]float64)
	for _, n := range neighbors {
		for item, affinity := range m.rows[n.row] {
			weighted[item] += n.sim * affinity
			simSums[item] += n.sim
		}
	}

	scores := make([]ScoredExercise, 0, len(weighted))
	for item, sum := range weighted {
		scores = append(scores, ScoredExercise{
			ExerciseID: m.items[item],
			Score:      sum / simSums[item],
			Source:     SourceCollaborative,
		})
	}
	sortScores(scores)
	return scores
}

// scoreModelBased predicts affinities from the latent factors. Unseen
// users yield an empty list.
func scoreModelBased(userID string, m *interactionMatrix, model *latentFactorModel) []ScoredExercise {
	if model == nil {
		return nil
	}
	rowIdx, ok := m.userIndex[userID]
	if !ok {
		return nil
	}

	userVec := model.userFactors[rowIdx]
	scores := make([]ScoredExercise, 0, len(m.items))
	for item, exerciseID := range m.items {
		scores = append(scores, ScoredExercise{
			ExerciseID: exerciseID,
			Score:      dot(userVec, model.itemFactors[item]),
			Source:     SourceCollaborative,
		})
	}
	sortScores(scores)
	return scores
}

// scoreCollaborative runs both strategies and blends them. Each strategy's
// scores are min-max scaled before averaging so neither dominates through
// scale alone. When only one strategy produces scores, its scaled scores
// are used as-is; when neither does, the result is empty and the combiner
// degrades to content-only.
func scoreCollaborative(userID string, m *interactionMatrix, model *latentFactorModel, cfg Config) []ScoredExercise {
	memory := scoreMemoryBased(userID, m, cfg.NeighborCount)
	modelScores := scoreModelBased(userID, m, model)

	if len(memory) == 0 && len(modelScores) == 0 {
		return nil
	}
	if len(modelScores) == 0 {
		minMaxScale(memory)
		return memory
	}
	if len(memory) == 0 {
		minMaxScale(modelScores)
		return modelScores
	}

	minMaxScale(memory)
	minMaxScale(modelScores)
	blended := make(map[string]float64, len(modelScores))
	for _, s := range modelScores {
		blended[s.ExerciseID] = s.Score / 2
	}
	for _, s := range memory {
		blended[s.ExerciseID] += s.Score / 2
	}

	scores := make([]ScoredExercise, 0, len(blended))
	for exerciseID, score := range blended {
		scores = append(scores, ScoredExercise{
			ExerciseID: exerciseID,
			Score:      score,
			Source:     SourceCollaborative,
		})
	}
	sortScores(scores)
	return scores
}

// sortScores orders by score descending with id as the deterministic
// tie-break.
func sortScores(scores []ScoredExercise) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].ExerciseID < scores[j].ExerciseID
	})
}
