package main

import (
	"context"
	"factory-location-planner/internal/adapters/repositories"
	"factory-location-planner/internal/config"
	"log/slog"
	"os"
)

// seedtool writes the configured random wholesalers to a JSON seed file so a
// scenario can be pinned and edited by hand.
func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", ""))
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/wholesalers.json")

	wholesalers, err := repositories.NewRandomDemandRepository(cfg.RandomDemand()).ListWholesalers(context.Background())
	if err != nil {
		slog.Error("generating wholesalers failed", "err", err)
		os.Exit(1)
	}

	if err := repositories.WriteSeedJSON(seedPath, wholesalers); err != nil {
		slog.Error("writing seed failed", "err", err)
		os.Exit(1)
	}
	slog.Info("Seed written", "path", seedPath, "wholesalers", len(wholesalers), "seed", cfg.Demand.Seed)
}
