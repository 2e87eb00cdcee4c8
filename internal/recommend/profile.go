package recommend

import (
	"math"
	"time"
)

// buildProfile derives the user's preference vector from their history:
// each completed exercise's feature vector weighted by recency decay of
// the most recent completion and log1p of the completion count. Users with
// no completed history produce the zero profile, which signals cold start
// to the combiner.
func buildProfile(history []HistoryEntry, fs *featureSet, cfg Config, now time.Time) []float64 {
	type usage struct {
		count  int
		latest time.Time
	}
	usages := make(map[string]*usage)
	for _, entry := range history {
		if entry.completedSets() == 0 {
			continue
		}
		u, ok := usages[entry.ExerciseID]
		if !ok {
			u = &usage{}
			usages[entry.ExerciseID] = u
		}
		u.count++
		if entry.PerformedAt.After(u.latest) {
			u.latest = entry.PerformedAt
		}
	}

	profile := make([]float64, fs.vectorLen)
	totalWeight := 0.0
	for exerciseID, u := range usages {
		vec, ok := fs.vector(exerciseID)
		if !ok {
			// Exercise no longer in the catalog snapshot.
			continue
		}
		w := decayWeight(u.latest, now, cfg.HalfLifeDays) * math.Log1p(float64(u.count))
		for i, v := range vec {
			profile[i] += w * v
		}
		totalWeight += w
	}

	if totalWeight == 0 {
		return profile
	}
	for i := range profile {
		profile[i] /= totalWeight
	}
	return profile
}
