package csvstore

import (
	"context"
	"sync"
	"time"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/models"
)

// PlayerStore persists players.csv.
type PlayerStore struct {
	path   string
	mu     sync.Mutex
	cache  *snapshotCache[models.Player]
	logger *common.Logger
}

// NewPlayerStore creates a player store over the given table file.
func NewPlayerStore(logger *common.Logger, path string, cacheTTL time.Duration) *PlayerStore {
	return &PlayerStore{
		path:   path,
		cache:  newSnapshotCache[models.Player](cacheTTL),
		logger: logger,
	}
}

// List returns all player rows. A corrupt or missing table is treated as
// empty rather than failing the page that asked for it.
func (s *PlayerStore) List(_ context.Context) ([]models.Player, error) {
	if rows, ok := s.cache.Get(); ok {
		return rows, nil
	}

	rows, err := loadTable[models.Player](s.path)
	if err != nil {
		s.logger.Warn().Str("table", s.path).Str("error", err.Error()).Msg("unreadable player table, treating as empty")
		return []models.Player{}, nil
	}

	s.cache.Set(rows)
	return rows, nil
}

// Add appends a player row, assigning the next ID (max+1, 1 when empty).
// The table is reloaded under the write lock so IDs stay unique even when
// the cache is stale.
func (s *PlayerStore) Add(_ context.Context, p models.Player) (models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadTable[models.Player](s.path)
	if err != nil {
		s.logger.Warn().Str("table", s.path).Str("error", err.Error()).Msg("unreadable player table, starting fresh")
		rows = nil
	}

	nextID := 1
	for _, row := range rows {
		if row.ID >= nextID {
			nextID = row.ID + 1
		}
	}
	p.ID = nextID

	rows = append(rows, p)
	if err := saveTable(s.path, rows); err != nil {
		return models.Player{}, err
	}

	s.cache.Invalidate()
	s.logger.Info().Str("player", p.Name).Int("player_id", p.ID).Msg("player added")

	return p, nil
}

// FindByName returns the first player with the given name, or nil.
func (s *PlayerStore) FindByName(ctx context.Context, name string) (*models.Player, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Name == name {
			return &row, nil
		}
	}
	return nil, nil
}

// Count returns the number of player rows.
func (s *PlayerStore) Count(ctx context.Context) (int, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
