package csvstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
)

// loadTable reads all rows of a CSV table file into a typed slice.
// A missing file returns (nil, os.ErrNotExist wrapped); callers decide
// whether to create the file. Columns absent from the file are left at
// their zero values, extra columns are ignored.
func loadTable[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}

	var rows []T
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode table %s: %w", path, err)
	}
	return rows, nil
}

// saveTable rewrites a CSV table file with the given rows. The header is
// always written, even for an empty table. The write goes to a temp file in
// the same directory and is renamed into place so a crash mid-write cannot
// truncate the table.
func saveTable[T any](path string, rows []T) error {
	if rows == nil {
		rows = []T{}
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode table %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".csvstore-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace table %s: %w", path, err)
	}
	return nil
}

// ensureTable creates the table file with a header-only body if it does not
// exist yet.
func ensureTable[T any](path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat table %s: %w", path, err)
	}
	return saveTable[T](path, nil)
}
