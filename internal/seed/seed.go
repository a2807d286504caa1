// Package seed fills empty tables with sample data in dev mode so the
// dashboard renders meaningfully on first run.
package seed

import (
	"context"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/interfaces"
	"github.com/blufunnel/games-portal/internal/models"
)

var samplePlayers = []models.Player{
	{Name: "Alex Rivers", Coach: "Morgan", Batch: "Jan", Status: "Core"},
	{Name: "Sam Okafor", Coach: "Morgan", Batch: "Jan", Status: "Tracking"},
	{Name: "Jules Tanaka", Coach: "Priya", Batch: "Feb", Status: "Core"},
}

var sampleCompanies = []models.Company{
	{Name: "Northwind Robotics", Sector: "Industrials", Notes: "Paper-trade favorite"},
	{Name: "Bluewater Energy", Sector: "Energy", Notes: ""},
	{Name: "Lumen Foods", Sector: "Consumer Staples", Notes: "Dividend play"},
}

// DevData seeds sample players and companies when both tables are empty.
// Non-fatal: storage errors are logged and seeding is abandoned.
func DevData(store interfaces.StorageManager, logger *common.Logger) {
	ctx := context.Background()

	playerCount, err := store.Players().Count(ctx)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("seed: failed to count players")
		return
	}
	companyCount, err := store.Companies().Count(ctx)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("seed: failed to count companies")
		return
	}
	if playerCount > 0 || companyCount > 0 {
		logger.Debug().Msg("seed: tables not empty, skipping sample data")
		return
	}

	for _, p := range samplePlayers {
		if _, err := store.Players().Add(ctx, p); err != nil {
			logger.Error().Str("player", p.Name).Str("error", err.Error()).Msg("seed: failed to add sample player")
			return
		}
	}
	for _, c := range sampleCompanies {
		if _, err := store.Companies().Add(ctx, c); err != nil {
			logger.Error().Str("company", c.Name).Str("error", err.Error()).Msg("seed: failed to add sample company")
			return
		}
	}

	logger.Info().
		Int("players", len(samplePlayers)).
		Int("companies", len(sampleCompanies)).
		Msg("seed: sample data loaded")
}
