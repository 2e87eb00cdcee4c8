package recommend

import (
	"sort"
)

// featureSet holds the feature vocabulary and vectors for one catalog
// snapshot. It is immutable once built; a catalog change produces a new
// snapshot under a new version.
type featureSet struct {
	version string

	// exercises are the valid catalog records, ordered by id.
	exercises []Exercise
	byID      map[string]Exercise

	// Vocabulary index ranges. Muscles share one vocabulary across the
	// primary and secondary blocks so the two encodings stay comparable.
	muscleIndex    map[string]int
	equipmentIndex map[string]int
	categoryIndex  map[string]int
	forceIndex     map[string]int
	mechanicIndex  map[string]int
	vectorLen      int

	vectors map[string][]float64
}

// newFeatureSet builds the shared vocabulary and feature vectors for the
// catalog. Exercises missing required fields (name, primary muscles) are
// skipped and their ids returned so the caller can log them.
func newFeatureSet(catalog []Exercise, version string) (*featureSet, []string) {
	var skipped []string
	valid := make([]Exercise, 0, len(catalog))
	for _, ex := range catalog {
		if ex.ID == "" || ex.Name == "" || len(ex.PrimaryMuscles) == 0 {
			skipped = append(skipped, ex.ID)
			continue
		}
		valid = append(valid, ex)
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].ID < valid[j].ID })

	fs := &featureSet{
		version:   version,
		exercises: valid,
		byID:      make(map[string]Exercise, len(valid)),
		vectors:   make(map[string][]float64, len(valid)),
	}
	for _, ex := range valid {
		fs.byID[ex.ID] = ex
	}

	fs.buildVocabulary()
	for _, ex := range valid {
		fs.vectors[ex.ID] = fs.vectorize(ex)
	}
	return fs, skipped
}

// buildVocabulary derives the encoding indices from the observed catalog
// values. The vocabulary, and with it the vector length, is fixed at
// extraction time.
func (fs *featureSet) buildVocabulary() {
	muscles := map[string]bool{}
	equipment := map[string]bool{}
	categories := map[string]bool{}
	forces := map[string]bool{}
	mechanics := map[string]bool{}
	for _, ex := range fs.exercises {
		for _, m := range ex.PrimaryMuscles {
			muscles[m] = true
		}
		for _, m := range ex.SecondaryMuscles {
			muscles[m] = true
		}
		if ex.Equipment != "" {
			equipment[ex.Equipment] = true
		}
		if ex.Category != "" {
			categories[ex.Category] = true
		}
		if ex.Force != "" {
			forces[string(ex.Force)] = true
		}
		if ex.Mechanic != "" {
			mechanics[string(ex.Mechanic)] = true
		}
	}

	offset := 0
	fs.muscleIndex, offset = indexVocabulary(muscles, offset)
	muscleCount := len(fs.muscleIndex)
	// Reserve a second block of muscle components for the secondary set.
	offset += muscleCount
	fs.equipmentIndex, offset = indexVocabulary(equipment, offset)
	fs.categoryIndex, offset = indexVocabulary(categories, offset)
	fs.forceIndex, offset = indexVocabulary(forces, offset)
	fs.mechanicIndex, offset = indexVocabulary(mechanics, offset)
	// Final component is the difficulty ordinal.
	fs.vectorLen = offset + 1
}

// indexVocabulary assigns stable indices to the sorted vocabulary values
// starting at offset and returns the next free offset.
func indexVocabulary(values map[string]bool, offset int) (map[string]int, int) {
	sorted := make([]string, 0, len(values))
	for v := range values {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)
	index := make(map[string]int, len(sorted))
	for i, v := range sorted {
		index[v] = offset + i
	}
	return index, offset + len(sorted)
}

// vectorize encodes an exercise into a fixed-length numeric vector.
// Deterministic and pure for a fixed vocabulary; values outside the
// vocabulary contribute nothing rather than failing.
func (fs *featureSet) vectorize(ex Exercise) []float64 {
	vec := make([]float64, fs.vectorLen)
	muscleCount := len(fs.muscleIndex)
	for _, m := range ex.PrimaryMuscles {
		if idx, ok := fs.muscleIndex[m]; ok {
			vec[idx] = 1
		}
	}
	for _, m := range ex.SecondaryMuscles {
		if idx, ok := fs.muscleIndex[m]; ok {
			vec[idx+muscleCount] = 1
		}
	}
	if idx, ok := fs.equipmentIndex[ex.Equipment]; ok {
		vec[idx] = 1
	}
	if idx, ok := fs.categoryIndex[ex.Category]; ok {
		vec[idx] = 1
	}
	if idx, ok := fs.forceIndex[string(ex.Force)]; ok {
		vec[idx] = 1
	}
	if idx, ok := fs.mechanicIndex[string(ex.Mechanic)]; ok {
		vec[idx] = 1
	}
	vec[fs.vectorLen-1] = ex.Difficulty.ordinal()
	return vec
}

// vector returns the cached feature vector for an exercise id.
func (fs *featureSet) vector(exerciseID string) ([]float64, bool) {
	vec, ok := fs.vectors[exerciseID]
	return vec, ok
}
