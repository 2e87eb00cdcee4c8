package recommend

import (
	"math"
	"math/rand/v2"
	"sort"
)

// This file is the numeric backend of the engine. The scorers only go
// through these helpers, so the implementation can be swapped without
// touching scorer logic.

// cosineSimilarity computes the cosine of the angle between two dense
// vectors. Zero-norm inputs yield 0 because the cosine is undefined.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// sparseCosine computes cosine similarity between two sparse rows and the
// number of indices they share.
func sparseCosine(a, b map[int]float64) (similarity float64, overlap int) {
	// Iterate over the smaller map.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, av := range a {
		if bv, ok := b[idx]; ok {
			dot += av * bv
			overlap++
		}
	}
	if dot == 0 {
		return 0, overlap
	}
	return dot / (sparseNorm(a) * sparseNorm(b)), overlap
}

// sparseNorm computes the Euclidean norm of a sparse row.
func sparseNorm(a map[int]float64) float64 {
	var sum float64
	for _, v := range a {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// neighbor pairs a matrix row index with its similarity to the target row.
type neighbor struct {
	row     int
	sim     float64
	overlap int
}

// topKNeighbors returns up to k rows most similar to the target row,
// restricted to positive similarity. The target row itself is excluded.
func topKNeighbors(m *interactionMatrix, targetRow, k int) []neighbor {
	target := m.rows[targetRow]
	neighbors := make([]neighbor, 0, len(m.rows))
	for row := range m.rows {
		if row == targetRow {
			continue
		}
		sim, overlap := sparseCosine(target, m.rows[row])
		if sim > 0 {
			neighbors = append(neighbors, neighbor{row: row, sim: sim, overlap: overlap})
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return neighbors[i].row < neighbors[j].row
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// Factorization hyperparameters. The training is seeded so two builds from
// the same matrix produce the same factors.
const (
	factorEpochs       = 60
	factorLearningRate = 0.01
	factorRegularizer  = 0.05
	factorInitScale    = 0.1
	factorSeed         = 42
)

// factorize approximates the matrix as the product of user and item factor
// matrices of the given rank using stochastic gradient descent over the
// non-zero cells.
func factorize(m *interactionMatrix, rank int) (userFactors, itemFactors [][]float64) {
	rng := rand.New(rand.NewPCG(factorSeed, factorSeed))

	userFactors = randomFactors(rng, len(m.users), rank)
	itemFactors = randomFactors(rng, len(m.items), rank)

	// Collect cells once so every epoch visits them in the same order.
	type cell struct {
		user, item int
		value      float64
	}
	cells := make([]cell, 0, m.nonZero)
	for user, row := range m.rows {
		items := make([]int, 0, len(row))
		for item := range row {
			items = append(items, item)
		}
		sort.Ints(items)
		for _, item := range items {
			cells = append(cells, cell{user: user, item: item, value: row[item]})
		}
	}

	for range factorEpochs {
		for _, c := range cells {
			u := userFactors[c.user]
			v := itemFactors[c.item]
			err := c.value - dot(u, v)
			for f := range rank {
				du := factorLearningRate * (err*v[f] - factorRegularizer*u[f])
				dv := factorLearningRate * (err*u[f] - factorRegularizer*v[f])
				u[f] += du
				v[f] += dv
			}
		}
	}

	return userFactors, itemFactors
}

// randomFactors initializes a factor matrix with small random values.
func randomFactors(rng *rand.Rand, rows, rank int) [][]float64 {
	factors := make([][]float64, rows)
	for i := range factors {
		factors[i] = make([]float64, rank)
		for f := range rank {
			factors[i][f] = rng.Float64() * factorInitScale
		}
	}
	return factors
}

// dot computes the dot product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// minMaxScale rescales scores to [0,1] in place. A constant score list
// collapses to all-ones so it neither dominates nor vanishes in fusion.
func minMaxScale(scores []ScoredExercise) {
	if len(scores) == 0 {
		return
	}
	minScore, maxScore := scores[0].Score, scores[0].Score
	for _, s := range scores[1:] {
		minScore = math.Min(minScore, s.Score)
		maxScore = math.Max(maxScore, s.Score)
	}
	spread := maxScore - minScore
	for i := range scores {
		if spread == 0 {
			scores[i].Score = 1
			continue
		}
		scores[i].Score = (scores[i].Score - minScore) / spread
	}
}
