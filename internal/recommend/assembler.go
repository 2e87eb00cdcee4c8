package recommend

import (
	"sort"
	"time"
)

// Template focus labels.
const (
	focusFullBody  = "full_body"
	focusPush      = "push"
	focusPull      = "pull"
	focusLegs      = "legs"
	focusCommunity = "community"
)

// personalizedTarget describes one "for_you" template to assemble.
type personalizedTarget struct {
	name   string
	focus  string
	filter func(Exercise) bool
}

// personalizedTargets are assembled in this order for every request.
func personalizedTargets() []personalizedTarget {
	return []personalizedTarget{
		{name: "Full Body", focus: focusFullBody, filter: func(Exercise) bool { return true }},
		{name: "Push", focus: focusPush, filter: func(ex Exercise) bool { return ex.Force == ForcePush }},
		{name: "Pull", focus: focusPull, filter: func(ex Exercise) bool { return ex.Force == ForcePull }},
		{name: "Legs", focus: focusLegs, filter: isLegExercise},
	}
}

// assemblePersonalized converts the hybrid-ranked pool into the four
// personalized templates by filtering to each target's force/muscle
// grouping and running the shared greedy selection.
func assemblePersonalized(ranked []ScoredExercise, fs *featureSet, cfg Config) []WorkoutTemplate {
	templates := make([]WorkoutTemplate, 0, len(personalizedTargets()))
	for _, target := range personalizedTargets() {
		pool := make([]Exercise, 0, len(ranked))
		for _, scored := range ranked {
			ex, ok := fs.byID[scored.ExerciseID]
			if !ok || !target.filter(ex) {
				continue
			}
			pool = append(pool, ex)
		}
		templates = append(templates, buildTemplate(target.name, target.focus, pool, cfg))
	}
	return templates
}

// communityWindows are the trailing windows for the time-boxed community
// templates.
const (
	weekWindow  = 7 * 24 * time.Hour
	monthWindow = 30 * 24 * time.Hour
)

// assembleCommunity builds the community templates from raw aggregate
// affinity totals, independent of any single user's profile. Exercises
// without recorded affinity rank after the popular ones, ordered by
// difficulty, so the templates stay full even with sparse history.
func assembleCommunity(all, week, month popularityTotals, fs *featureSet, cfg Config) []WorkoutTemplate {
	targets := []struct {
		name   string
		totals popularityTotals
	}{
		{name: "Popular With Others", totals: all},
		{name: "Popular This Week", totals: week},
		{name: "Popular This Month", totals: month},
	}

	templates := make([]WorkoutTemplate, 0, len(targets))
	for _, target := range targets {
		pool := rankByPopularity(target.totals, fs)
		templates = append(templates, buildTemplate(target.name, focusCommunity, pool, cfg))
	}
	return templates
}

// rankByPopularity orders the catalog by aggregate affinity descending,
// falling back to difficulty then id for exercises nobody has logged.
func rankByPopularity(totals popularityTotals, fs *featureSet) []Exercise {
	pool := make([]Exercise, len(fs.exercises))
	copy(pool, fs.exercises)
	sort.SliceStable(pool, func(i, j int) bool {
		ti, tj := totals[pool[i].ID], totals[pool[j].ID]
		if ti != tj {
			return ti > tj
		}
		di, dj := pool[i].Difficulty.ordinal(), pool[j].Difficulty.ordinal()
		if di != dj {
			return di < dj
		}
		return pool[i].ID < pool[j].ID
	})
	return pool
}

// buildTemplate runs the shared greedy selection over a ranked pool.
//
// Candidates are admitted in rank order while they respect the per-muscle
// cap and, on the first pass, the rule that no two isolation exercises
// target the same primary muscle. If the strict pass cannot reach the
// minimum size the constraints are relaxed in stages before giving up; a
// template below the minimum is only emitted when the pool itself is too
// small, and is flagged deficient.
func buildTemplate(name, focus string, pool []Exercise, cfg Config) WorkoutTemplate {
	selected := selectGreedy(pool, cfg, true)
	if len(selected) < MinTemplateSize {
		// Relax the isolation rule first, then the muscle cap.
		selected = selectGreedy(pool, cfg, false)
	}
	if len(selected) < MinTemplateSize {
		selected = selectUncapped(pool)
	}

	ordered := orderCompoundFirst(selected)
	ids := make([]string, 0, len(ordered))
	for _, ex := range ordered {
		ids = append(ids, ex.ID)
	}

	return WorkoutTemplate{
		TemplateName: name,
		Focus:        focus,
		Exercises:    ids,
		Deficient:    len(ids) < MinTemplateSize,
	}
}

// selectGreedy admits candidates in rank order under the per-muscle cap.
// With strictIsolation set it additionally refuses a second isolation
// exercise on an already-isolated primary muscle.
func selectGreedy(pool []Exercise, cfg Config, strictIsolation bool) []Exercise {
	var selected []Exercise
	muscleCounts := make(map[string]int)
	isolated := make(map[string]bool)
	seen := make(map[string]bool)

	for _, ex := range pool {
		if len(selected) == MaxTemplateSize {
			break
		}
		if seen[ex.ID] {
			continue
		}
		if exceedsMuscleCap(ex, muscleCounts, cfg.MuscleCap) {
			continue
		}
		if strictIsolation && ex.Mechanic == MechanicIsolation && hasIsolatedMuscle(ex, isolated) {
			continue
		}

		selected = append(selected, ex)
		seen[ex.ID] = true
		for _, m := range ex.PrimaryMuscles {
			muscleCounts[m]++
			if ex.Mechanic == MechanicIsolation {
				isolated[m] = true
			}
		}
	}
	return selected
}

// selectUncapped takes the top of the pool with no constraints beyond
// uniqueness and the maximum size. Last resort when the focus catalog is
// small.
func selectUncapped(pool []Exercise) []Exercise {
	var selected []Exercise
	seen := make(map[string]bool)
	for _, ex := range pool {
		if len(selected) == MaxTemplateSize {
			break
		}
		if seen[ex.ID] {
			continue
		}
		selected = append(selected, ex)
		seen[ex.ID] = true
	}
	return selected
}

// exceedsMuscleCap reports whether admitting the exercise would push any
// of its primary muscles over the cap.
func exceedsMuscleCap(ex Exercise, muscleCounts map[string]int, maxPerMuscle int) bool {
	for _, m := range ex.PrimaryMuscles {
		if muscleCounts[m] >= maxPerMuscle {
			return true
		}
	}
	return false
}

// hasIsolatedMuscle reports whether another isolation exercise already
// covers one of the exercise's primary muscles.
func hasIsolatedMuscle(ex Exercise, isolated map[string]bool) bool {
	for _, m := range ex.PrimaryMuscles {
		if isolated[m] {
			return true
		}
	}
	return false
}

// orderCompoundFirst places compound movements before isolation work,
// preserving rank order within each group.
func orderCompoundFirst(selected []Exercise) []Exercise {
	ordered := make([]Exercise, 0, len(selected))
	for _, ex := range selected {
		if ex.Mechanic != MechanicIsolation {
			ordered = append(ordered, ex)
		}
	}
	for _, ex := range selected {
		if ex.Mechanic == MechanicIsolation {
			ordered = append(ordered, ex)
		}
	}
	return ordered
}
