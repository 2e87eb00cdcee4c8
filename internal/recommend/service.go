// Package recommend implements the hybrid workout recommendation engine:
// feature extraction over the exercise catalog, content-based profiling,
// collaborative filtering over user–exercise interactions, fusion of the
// two signals, and assembly of ranked exercises into workout templates.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ErrDataUnavailable marks failures of the backing data store. The caller
// should surface these as retryable service errors.
var ErrDataUnavailable = errors.New("workout data store unavailable")

// Gateway is the read-only tabular access to the workout data store. All
// reads are bulk queries, performed once per request or once per
// background rebuild.
type Gateway interface {
	// ExerciseCatalog returns the full catalog and its version. The
	// version changes whenever the catalog does.
	ExerciseCatalog(ctx context.Context) ([]Exercise, string, error)
	// UserHistory returns every history entry for one user. An unknown
	// user yields an empty slice, not an error.
	UserHistory(ctx context.Context, userID string) ([]HistoryEntry, error)
	// AllHistory returns the full history snapshot for matrix rebuilds.
	AllHistory(ctx context.Context) ([]HistoryEntry, error)
}

// modelArtifacts bundles everything derived from one full-history
// snapshot. The bundle is swapped atomically so request handlers never
// observe a partially rebuilt matrix.
type modelArtifacts struct {
	builtAt      time.Time
	matrix       *interactionMatrix
	model        *latentFactorModel
	popularAll   popularityTotals
	popularWeek  popularityTotals
	popularMonth popularityTotals
}

// Service is the recommendation engine exposed to the web entrypoint.
// Each request is computed synchronously and independently; the matrix
// artifacts and the catalog feature snapshot are shared, read-only state.
type Service struct {
	gateway Gateway
	logger  *slog.Logger
	cfg     Config

	arts atomic.Pointer[modelArtifacts]

	// features caches the feature snapshot for the current catalog
	// version. Invalidated by version change, not by time.
	featuresMu sync.Mutex
	features   *featureSet

	now func() time.Time
}

// NewService creates a recommendation engine on top of the given data
// gateway.
func NewService(gateway Gateway, logger *slog.Logger, cfg Config) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// WorkoutRecommendations computes the personalized and community workout
// templates for a user. An unknown user is a valid cold-start state, not
// an error.
func (s *Service) WorkoutRecommendations(ctx context.Context, userID string) (Recommendations, error) {
	fs, err := s.featureSetFor(ctx)
	if err != nil {
		return Recommendations{}, fmt.Errorf("load catalog snapshot: %w", err)
	}

	history, err := s.gateway.UserHistory(ctx, userID)
	if err != nil {
		return Recommendations{}, fmt.Errorf("load user history: %w", err)
	}

	now := s.now()
	coldStart := len(history) < s.cfg.ColdStartEntries

	profile := buildProfile(history, fs, s.cfg, now)
	contentScores := scoreContent(profile, fs)

	var collaborativeScores []ScoredExercise
	arts := s.arts.Load()
	if arts != nil && !coldStart {
		collaborativeScores = scoreCollaborative(userID, arts.matrix, arts.model, s.cfg)
	}

	hybrid := combineScores(contentScores, collaborativeScores, coldStart, s.cfg.HybridAlpha)
	forYou := assemblePersonalized(hybrid, fs, s.cfg)

	var popularAll, popularWeek, popularMonth popularityTotals
	if arts != nil {
		popularAll, popularWeek, popularMonth = arts.popularAll, arts.popularWeek, arts.popularMonth
	}
	community := assembleCommunity(popularAll, popularWeek, popularMonth, fs, s.cfg)

	s.logger.LogAttrs(ctx, slog.LevelDebug, "recommendations computed",
		slog.String("user_id", userID),
		slog.Bool("cold_start", coldStart),
		slog.Int("history_entries", len(history)),
		slog.Int("collaborative_scores", len(collaborativeScores)))

	return Recommendations{ForYou: forYou, Community: community}, nil
}

// featureSetFor returns the cached feature snapshot, rebuilding it when
// the catalog version has changed.
func (s *Service) featureSetFor(ctx context.Context) (*featureSet, error) {
	catalog, version, err := s.gateway.ExerciseCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch exercise catalog: %w", err)
	}

	s.featuresMu.Lock()
	defer s.featuresMu.Unlock()
	if s.features != nil && s.features.version == version {
		return s.features, nil
	}

	fs, skipped := newFeatureSet(catalog, version)
	if len(skipped) > 0 {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "skipped malformed catalog exercises",
			slog.Int("count", len(skipped)),
			slog.String("exercise_ids", strings.Join(skipped, ",")))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "catalog snapshot built",
		slog.String("version", version),
		slog.Int("exercises", len(fs.exercises)),
		slog.Int("vector_len", fs.vectorLen))
	s.features = fs
	return fs, nil
}

// RebuildArtifacts rebuilds the interaction matrix, the popularity
// aggregates, and the latent factor model from the full history snapshot,
// then swaps them in atomically.
func (s *Service) RebuildArtifacts(ctx context.Context) error {
	history, err := s.gateway.AllHistory(ctx)
	if err != nil {
		return fmt.Errorf("load full history: %w", err)
	}

	now := s.now()
	matrix := buildInteractionMatrix(history, s.cfg, now)
	model := trainLatentModel(matrix, s.cfg)
	if model == nil && len(matrix.users) > 0 {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "matrix below density threshold, skipping factorization",
			slog.Float64("density", matrix.density()),
			slog.Float64("threshold", s.cfg.MinMatrixDensity))
	}

	arts := &modelArtifacts{
		builtAt:      now,
		matrix:       matrix,
		model:        model,
		popularAll:   aggregateAffinity(history, s.cfg, now, 0),
		popularWeek:  aggregateAffinity(history, s.cfg, now, weekWindow),
		popularMonth: aggregateAffinity(history, s.cfg, now, monthWindow),
	}
	s.arts.Store(arts)

	s.logger.LogAttrs(ctx, slog.LevelInfo, "interaction artifacts rebuilt",
		slog.Int("users", len(matrix.users)),
		slog.Int("exercises", len(matrix.items)),
		slog.Float64("density", matrix.density()),
		slog.Bool("latent_model", model != nil))
	return nil
}

// RunRefresher rebuilds the artifacts immediately and then on every tick
// until the context is cancelled. Rebuild failures are logged and retried
// on the next tick; the engine keeps serving from the previous artifacts
// in the meantime.
func (s *Service) RunRefresher(ctx context.Context, interval time.Duration) error {
	if err := s.RebuildArtifacts(ctx); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "initial artifact build failed",
			slog.Any("error", err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.RebuildArtifacts(ctx); err != nil {
				s.logger.LogAttrs(ctx, slog.LevelError, "artifact rebuild failed",
					slog.Any("error", err))
			}
		}
	}
}
