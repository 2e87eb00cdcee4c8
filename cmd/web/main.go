package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/skypiea-tech/heronfit-recommendation-service/internal/envstruct"
	"github.com/skypiea-tech/heronfit-recommendation-service/internal/errors"
	"github.com/skypiea-tech/heronfit-recommendation-service/internal/logging"
	"github.com/skypiea-tech/heronfit-recommendation-service/internal/postgres"
	"github.com/skypiea-tech/heronfit-recommendation-service/internal/pprofserver"
	"github.com/skypiea-tech/heronfit-recommendation-service/internal/recommend"
)

// workoutRecommender is the engine surface the handlers need. Tests
// substitute a fake.
type workoutRecommender interface {
	WorkoutRecommendations(ctx context.Context, userID string) (recommend.Recommendations, error)
}

type application struct {
	logger      *slog.Logger
	recommender workoutRecommender
}

type config struct {
	// Addr is the address to listen on. Use localhost:0 to choose the port dynamically.
	Addr string `env:"HERONFIT_ADDR" envDefault:"localhost:8080"`
	// DatabaseURL is the Postgres connection string for the workout database.
	DatabaseURL string `env:"HERONFIT_DATABASE_URL"`
	// PProfAddr is the optional address to listen on for the pprof server.
	PProfAddr string `env:"HERONFIT_PPROF_ADDR" envDefault:""`
	// RefreshInterval is how often the interaction matrix and latent model are rebuilt.
	RefreshInterval time.Duration `env:"HERONFIT_REFRESH_INTERVAL" envDefault:"1h"`
	// HalfLifeDays is the recency decay half-life for affinity weighting.
	HalfLifeDays float64 `env:"HERONFIT_HALF_LIFE_DAYS" envDefault:"30"`
	// HybridAlpha weights content scores against collaborative scores.
	HybridAlpha float64 `env:"HERONFIT_HYBRID_ALPHA" envDefault:"0.5"`
	// NeighborCount is the K of the memory-based collaborative scorer.
	NeighborCount int `env:"HERONFIT_NEIGHBOR_COUNT" envDefault:"20"`
	// FactorRank is the rank of the latent factor model.
	FactorRank int `env:"HERONFIT_FACTOR_RANK" envDefault:"20"`
	// MinMatrixDensity gates model-based collaborative scoring.
	MinMatrixDensity float64 `env:"HERONFIT_MIN_MATRIX_DENSITY" envDefault:"0.01"`
}

// engineConfig maps the service configuration onto the engine tunables.
func (cfg config) engineConfig() recommend.Config {
	engineCfg := recommend.DefaultConfig()
	engineCfg.HalfLifeDays = cfg.HalfLifeDays
	engineCfg.HybridAlpha = cfg.HybridAlpha
	engineCfg.NeighborCount = cfg.NeighborCount
	engineCfg.FactorRank = cfg.FactorRank
	engineCfg.MinMatrixDensity = cfg.MinMatrixDensity
	return engineCfg
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if cfg.PProfAddr != "" {
		pprofserver.Launch(ctx, cfg.PProfAddr, logger)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database pool")
	}
	defer pool.Close()

	engine := recommend.NewService(recommend.NewGateway(pool, logger), logger, cfg.engineConfig())
	app := application{
		logger:      logger,
		recommender: engine,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.RunRefresher(gctx, cfg.RefreshInterval)
	})
	g.Go(func() error {
		return app.configureAndStartServer(gctx, cfg.Addr)
	})
	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "run service")
	}
	return nil
}

func main() {
	// Mirror the production deployment which reads a .env file; a missing
	// file is fine because the environment may be set directly.
	_ = godotenv.Load()

	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
