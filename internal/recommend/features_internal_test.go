package recommend

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewFeatureSetSkipsMalformed(t *testing.T) {
	t.Parallel()

	catalog := append(testCatalog(),
		Exercise{ID: "no-name", PrimaryMuscles: []string{"chest"}},
		Exercise{ID: "no-muscles", Name: "No Muscles"},
	)
	fs, skipped := newFeatureSet(catalog, "v1")

	if diff := cmp.Diff([]string{"no-name", "no-muscles"}, skipped); diff != "" {
		t.Errorf("skipped ids mismatch (-want +got):\n%s", diff)
	}
	if len(fs.exercises) != len(testCatalog()) {
		t.Errorf("got %d valid exercises, want %d", len(fs.exercises), len(testCatalog()))
	}
	if _, ok := fs.byID["no-name"]; ok {
		t.Error("malformed exercise present in byID")
	}
	if _, ok := fs.vector("no-muscles"); ok {
		t.Error("malformed exercise has a feature vector")
	}
}

func TestNewFeatureSetDeterministic(t *testing.T) {
	t.Parallel()

	fs1, _ := newFeatureSet(testCatalog(), "v1")
	fs2, _ := newFeatureSet(testCatalog(), "v1")

	if fs1.vectorLen != fs2.vectorLen {
		t.Fatalf("vector lengths differ: %d != %d", fs1.vectorLen, fs2.vectorLen)
	}
	if diff := cmp.Diff(fs1.vectors, fs2.vectors); diff != "" {
		t.Errorf("vectors differ between builds (-first +second):\n%s", diff)
	}
}

func TestFeatureVectorsFixedLength(t *testing.T) {
	t.Parallel()

	fs := testFeatureSet()
	for _, ex := range fs.exercises {
		vec, ok := fs.vector(ex.ID)
		if !ok {
			t.Fatalf("no vector for %s", ex.ID)
		}
		if len(vec) != fs.vectorLen {
			t.Errorf("vector for %s has length %d, want %d", ex.ID, len(vec), fs.vectorLen)
		}
	}
}

func TestVectorizeEncodesAttributes(t *testing.T) {
	t.Parallel()

	fs := testFeatureSet()
	bench := fs.byID["bench-press"]
	vec := fs.vectorize(bench)
	muscleCount := len(fs.muscleIndex)

	if got := vec[fs.muscleIndex["chest"]]; got != 1 {
		t.Errorf("primary chest component = %v, want 1", got)
	}
	if got := vec[fs.muscleIndex["triceps"]+muscleCount]; got != 1 {
		t.Errorf("secondary triceps component = %v, want 1", got)
	}
	// Secondary encoding must not leak into the primary block.
	if got := vec[fs.muscleIndex["triceps"]]; got != 0 {
		t.Errorf("primary triceps component = %v, want 0", got)
	}
	if got := vec[fs.equipmentIndex["barbell"]]; got != 1 {
		t.Errorf("barbell component = %v, want 1", got)
	}
	if got := vec[fs.forceIndex["push"]]; got != 1 {
		t.Errorf("push component = %v, want 1", got)
	}
	if got := vec[fs.vectorLen-1]; got != 0.5 {
		t.Errorf("difficulty component = %v, want 0.5", got)
	}
}

func TestVectorizeUnknownValuesContributeNothing(t *testing.T) {
	t.Parallel()

	fs := testFeatureSet()
	outsider := Exercise{
		ID:             "neck-harness-extension",
		Name:           "Neck Harness Extension",
		PrimaryMuscles: []string{"neck"},
		Equipment:      "harness",
		Category:       "mobility",
	}
	vec := fs.vectorize(outsider)
	if len(vec) != fs.vectorLen {
		t.Fatalf("vector length = %d, want %d", len(vec), fs.vectorLen)
	}
	if !isZeroVector(vec) {
		t.Errorf("out-of-vocabulary exercise produced non-zero vector: %v", vec)
	}
}

func TestDifficultyOrdinal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		difficulty Difficulty
		want       float64
	}{
		{DifficultyBeginner, 0},
		{DifficultyIntermediate, 0.5},
		{DifficultyAdvanced, 1},
		{Difficulty("expert"), 0},
		{Difficulty(""), 0},
	}
	for _, tt := range tests {
		if got := tt.difficulty.ordinal(); got != tt.want {
			t.Errorf("Difficulty(%q).ordinal() = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}
