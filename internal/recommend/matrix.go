package recommend

import (
	"math"
	"sort"
	"time"
)

// interactionMatrix is a sparse user×exercise affinity matrix. It is built
// from a full history snapshot and treated as read-only afterwards, so
// concurrent request handlers can share it without locking. Users or
// exercises absent from the matrix simply have no row or column, which is
// equivalent to a cold row of zero affinity.
type interactionMatrix struct {
	users     []string
	items     []string
	userIndex map[string]int
	itemIndex map[string]int
	rows      []map[int]float64
	nonZero   int
}

// row returns the sparse affinity row for a user, or false for users not
// seen at build time.
func (m *interactionMatrix) row(userID string) (map[int]float64, bool) {
	idx, ok := m.userIndex[userID]
	if !ok {
		return nil, false
	}
	return m.rows[idx], true
}

// density is the share of non-zero cells.
func (m *interactionMatrix) density() float64 {
	total := len(m.users) * len(m.items)
	if total == 0 {
		return 0
	}
	return float64(m.nonZero) / float64(total)
}

// decayWeight computes the exponential recency decay of a timestamp with
// the configured half-life. Future timestamps clamp to weight 1.
func decayWeight(ts, now time.Time, halfLifeDays float64) float64 {
	daysAgo := now.Sub(ts).Hours() / 24
	if daysAgo <= 0 {
		return 1
	}
	return math.Exp(-math.Ln2 * daysAgo / halfLifeDays)
}

// entryAffinity scores a single history entry: completed-set count plus a
// small log1p volume term, both damped by recency decay. Entries with no
// completed sets contribute nothing.
func entryAffinity(entry HistoryEntry, cfg Config, now time.Time) float64 {
	completed := entry.completedSets()
	if completed == 0 {
		return 0
	}
	decay := decayWeight(entry.PerformedAt, now, cfg.HalfLifeDays)
	return decay * (float64(completed) + cfg.VolumeWeight*math.Log1p(entry.completedVolumeKg()))
}

// buildInteractionMatrix rebuilds the matrix from the full history
// snapshot. The build is deterministic: the same snapshot always produces
// identical affinity values and index assignments.
func buildInteractionMatrix(history []HistoryEntry, cfg Config, now time.Time) *interactionMatrix {
	affinities := make(map[string]map[string]float64)
	for _, entry := range history {
		a := entryAffinity(entry, cfg, now)
		if a == 0 {
			continue
		}
		byExercise, ok := affinities[entry.UserID]
		if !ok {
			byExercise = make(map[string]float64)
			affinities[entry.UserID] = byExercise
		}
		byExercise[entry.ExerciseID] += a
	}

	m := &interactionMatrix{
		users:     sortedKeys(affinities),
		userIndex: make(map[string]int),
		itemIndex: make(map[string]int),
	}

	itemSet := make(map[string]bool)
	for _, byExercise := range affinities {
		for exerciseID := range byExercise {
			itemSet[exerciseID] = true
		}
	}
	m.items = make([]string, 0, len(itemSet))
	for exerciseID := range itemSet {
		m.items = append(m.items, exerciseID)
	}
	sort.Strings(m.items)

	for i, userID := range m.users {
		m.userIndex[userID] = i
	}
	for i, exerciseID := range m.items {
		m.itemIndex[exerciseID] = i
	}

	m.rows = make([]map[int]float64, len(m.users))
	for i, userID := range m.users {
		row := make(map[int]float64, len(affinities[userID]))
		for exerciseID, a := range affinities[userID] {
			row[m.itemIndex[exerciseID]] = a
			m.nonZero++
		}
		m.rows[i] = row
	}

	return m
}

// sortedKeys returns the map keys in lexical order for deterministic
// index assignment.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// popularityTotals maps exercise ids to aggregate affinity across all
// users.
type popularityTotals map[string]float64

// aggregateAffinity sums affinity per exercise across all users,
// optionally restricted to entries within the trailing window. A zero
// window includes everything.
func aggregateAffinity(history []HistoryEntry, cfg Config, now time.Time, window time.Duration) popularityTotals {
	totals := make(popularityTotals)
	cutoff := time.Time{}
	if window > 0 {
		cutoff = now.Add(-window)
	}
	for _, entry := range history {
		if !cutoff.IsZero() && entry.PerformedAt.Before(cutoff) {
			continue
		}
		if a := entryAffinity(entry, cfg, now); a > 0 {
			totals[entry.ExerciseID] += a
		}
	}
	return totals
}
