package recommend

// Tunable defaults. The affinity weighting is a starting configuration,
// not a fixed contract, so everything here can be overridden through
// configuration.
const (
	DefaultHalfLifeDays     = 30.0
	DefaultHybridAlpha      = 0.5
	DefaultNeighborCount    = 20
	DefaultFactorRank       = 20
	DefaultMinMatrixDensity = 0.01
	DefaultVolumeWeight     = 0.1
	DefaultMuscleCap        = 3
	DefaultColdStartEntries = 3

	// Template size bounds.
	MinTemplateSize = 5
	MaxTemplateSize = 9
)

// Config carries the engine tunables.
type Config struct {
	// HalfLifeDays controls the exponential recency decay applied to
	// history entries when building profiles and affinities.
	HalfLifeDays float64
	// HybridAlpha weights content scores against collaborative scores.
	HybridAlpha float64
	// NeighborCount is the K of the memory-based collaborative scorer.
	NeighborCount int
	// FactorRank is the rank of the latent factor model.
	FactorRank int
	// MinMatrixDensity gates model-based scoring. Below this share of
	// non-zero cells the factorization is skipped.
	MinMatrixDensity float64
	// VolumeWeight scales the log1p volume term of the affinity score.
	VolumeWeight float64
	// MuscleCap is the maximum number of exercises hitting the same
	// primary muscle admitted into one template.
	MuscleCap int
	// ColdStartEntries is the history size below which a user is treated
	// as cold and scored by content only.
	ColdStartEntries int
}

// DefaultConfig returns the stated starting configuration.
func DefaultConfig() Config {
	return Config{
		HalfLifeDays:     DefaultHalfLifeDays,
		HybridAlpha:      DefaultHybridAlpha,
		NeighborCount:    DefaultNeighborCount,
		FactorRank:       DefaultFactorRank,
		MinMatrixDensity: DefaultMinMatrixDensity,
		VolumeWeight:     DefaultVolumeWeight,
		MuscleCap:        DefaultMuscleCap,
		ColdStartEntries: DefaultColdStartEntries,
	}
}
