package main

import (
	"context"
	"errors"
	"factory-location-planner/internal/adapters/cache"
	"factory-location-planner/internal/adapters/distance"
	"factory-location-planner/internal/adapters/repositories"
	"factory-location-planner/internal/adapters/solver"
	"factory-location-planner/internal/config"
	"factory-location-planner/internal/platform/logging"
	"factory-location-planner/internal/platform/obs"
	"factory-location-planner/internal/ports"
	"factory-location-planner/internal/report"
	"factory-location-planner/internal/services"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
)

// main is the application composition root.
// It wires the demand source, distance provider and LP solver behind ports
// and runs one planning batch.
func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", ""))
	if err != nil {
		msg := "loading configuration failed"
		if config.IsValidation(err) {
			msg = "invalid configuration"
		}
		slog.Error(msg, "err", err)
		os.Exit(1)
	}

	logger, closer := logging.New(cfg.Logging(), os.Stderr)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = obs.WithRunID(ctx, uuid.NewString())

	if err := run(ctx, cfg, logger); err != nil {
		msg := "planning failed"
		if services.IsConfigError(err) {
			msg = "invalid planning input"
		}
		logger.ErrorContext(ctx, msg, "run_id", obs.RunID(ctx), "err", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	source, err := demandSource(cfg)
	if err != nil {
		return err
	}

	// Fixed factory rows are reused by every grid cell.
	provider := cache.NewDistanceRowCache(distance.NewEuclidean(), nil, 0)
	lp := solver.NewSimplexSolver(cfg.Search.Tolerance)

	rep, err := services.PlanFactoryLocation(ctx, services.PlanLocationRequest{
		Factories:         cfg.DomainFactories(),
		X:                 cfg.GridX(),
		Y:                 cfg.GridY(),
		CandidateCapacity: cfg.Search.CandidateCapacity,
		Workers:           cfg.Search.Workers,
		Logger:            logger,
	}, source, provider, lp)
	if err != nil {
		return err
	}

	hits, misses := provider.Stats()
	logger.DebugContext(ctx, "distance rows", "run_id", rep.RunID, "hits", hits, "misses", misses)

	if err := report.WriteText(os.Stdout, rep); err != nil {
		return fmt.Errorf("print report: %w", err)
	}

	paths, err := report.WriteFiles(report.Options{
		Dir:     cfg.Output.Dir,
		JSON:    cfg.Output.JSON,
		Plot:    cfg.Output.Plot,
		Heatmap: cfg.Output.Heatmap,

		// Routes below the solver's snapping tolerance are already zero.
		RouteEpsilon: lp.Tolerance(),
		Logger:       logger,
	}, rep)
	for _, p := range paths {
		logger.InfoContext(ctx, "output written", "run_id", rep.RunID, "path", p)
	}
	return err
}

func demandSource(cfg *config.Config) (ports.DemandSource, error) {
	switch cfg.Demand.Source {
	case "random":
		return repositories.NewRandomDemandRepository(cfg.RandomDemand()), nil
	case "json":
		return repositories.NewJSONDemandRepository(cfg.Demand.SeedPath), nil
	default:
		return nil, errors.New("unknown demand source " + cfg.Demand.Source)
	}
}
