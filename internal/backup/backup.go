// Package backup takes periodic snapshots of the CSV data directory.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/config"
)

const snapshotTimeFormat = "20060102-150405"

// Runner schedules snapshots of the data directory via cron.
type Runner struct {
	cron    *cron.Cron
	logger  *common.Logger
	dataDir string
	cfg     *config.BackupConfig
}

// NewRunner creates a backup runner and registers the snapshot schedule.
func NewRunner(logger *common.Logger, dataDir string, cfg *config.BackupConfig) (*Runner, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", cfg.Dir, err)
	}

	r := &Runner{
		cron:    cron.New(),
		logger:  logger,
		dataDir: dataDir,
		cfg:     cfg,
	}

	if _, err := r.cron.AddFunc(cfg.Schedule, func() {
		if _, err := r.Snapshot(); err != nil {
			logger.Error().Str("error", err.Error()).Msg("scheduled backup failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to register backup schedule %q: %w", cfg.Schedule, err)
	}

	return r, nil
}

// Start starts the cron scheduler.
func (r *Runner) Start() {
	r.cron.Start()
	r.logger.Info().Str("schedule", r.cfg.Schedule).Str("dir", r.cfg.Dir).Msg("backup scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (r *Runner) Stop() {
	r.cron.Stop()
	r.logger.Info().Msg("backup scheduler stopped")
}

// Snapshot copies every CSV table into a timestamped subdirectory of the
// backup dir and prunes old snapshots beyond the configured count.
// Returns the snapshot directory path.
func (r *Runner) Snapshot() (string, error) {
	dest := filepath.Join(r.cfg.Dir, time.Now().Format(snapshotTimeFormat))
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory %s: %w", dest, err)
	}

	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to read data directory %s: %w", r.dataDir, err)
	}

	copied := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		src := filepath.Join(r.dataDir, entry.Name())
		dst := filepath.Join(dest, entry.Name())
		if err := copyFile(src, dst); err != nil {
			return "", err
		}
		copied++
	}

	r.logger.Info().Str("snapshot", dest).Int("tables", copied).Msg("backup snapshot written")

	if err := r.prune(); err != nil {
		r.logger.Warn().Str("error", err.Error()).Msg("failed to prune old snapshots")
	}

	return dest, nil
}

// prune removes the oldest snapshots beyond MaxSnapshots. Snapshot directory
// names sort chronologically, so lexical order is age order.
func (r *Runner) prune() error {
	keep := r.cfg.MaxSnapshots
	if keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		return fmt.Errorf("failed to read backup directory %s: %w", r.cfg.Dir, err)
	}

	var snapshots []string
	for _, entry := range entries {
		if entry.IsDir() {
			snapshots = append(snapshots, entry.Name())
		}
	}
	if len(snapshots) <= keep {
		return nil
	}

	sort.Strings(snapshots)
	for _, name := range snapshots[:len(snapshots)-keep] {
		if err := os.RemoveAll(filepath.Join(r.cfg.Dir, name)); err != nil {
			return fmt.Errorf("failed to remove snapshot %s: %w", name, err)
		}
		r.logger.Debug().Str("snapshot", name).Msg("old snapshot pruned")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
