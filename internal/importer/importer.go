// Package importer bulk-loads players and companies from external CSV files.
package importer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/interfaces"
	"github.com/blufunnel/games-portal/internal/models"
)

// ImportPlayers reads players from a CSV file and imports them into storage.
// Rows whose name matches an existing player are skipped, and IDs are
// reassigned so imported rows slot in after the current table.
// Returns the number of rows imported.
func ImportPlayers(ctx context.Context, store interfaces.PlayerStorage, logger *common.Logger, csvPath string) (int, error) {
	data, err := os.ReadFile(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read players file %s: %w", csvPath, err)
	}

	var rows []models.Player
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return 0, fmt.Errorf("failed to parse players file %s: %w", csvPath, err)
	}

	imported := 0
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			logger.Warn().Msg("import: skipping player row with blank name")
			continue
		}

		existing, err := store.FindByName(ctx, name)
		if err != nil {
			return imported, fmt.Errorf("failed to check player %s: %w", name, err)
		}
		if existing != nil {
			logger.Debug().Str("player", name).Msg("import: player already exists, skipping")
			continue
		}

		row.Name = name
		stored, err := store.Add(ctx, row)
		if err != nil {
			return imported, fmt.Errorf("failed to import player %s: %w", name, err)
		}
		logger.Info().Str("player", stored.Name).Int("player_id", stored.ID).Msg("player imported")
		imported++
	}

	return imported, nil
}

// ImportCompanies reads companies from a CSV file and imports them into
// storage, skipping rows whose name already exists.
// Returns the number of rows imported.
func ImportCompanies(ctx context.Context, store interfaces.CompanyStorage, logger *common.Logger, csvPath string) (int, error) {
	data, err := os.ReadFile(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read companies file %s: %w", csvPath, err)
	}

	var rows []models.Company
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return 0, fmt.Errorf("failed to parse companies file %s: %w", csvPath, err)
	}

	imported := 0
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			logger.Warn().Msg("import: skipping company row with blank name")
			continue
		}

		existing, err := store.FindByName(ctx, name)
		if err != nil {
			return imported, fmt.Errorf("failed to check company %s: %w", name, err)
		}
		if existing != nil {
			logger.Debug().Str("company", name).Msg("import: company already exists, skipping")
			continue
		}

		row.Name = name
		stored, err := store.Add(ctx, row)
		if err != nil {
			return imported, fmt.Errorf("failed to import company %s: %w", name, err)
		}
		logger.Info().Str("company", stored.Name).Int("company_id", stored.ID).Msg("company imported")
		imported++
	}

	return imported, nil
}
