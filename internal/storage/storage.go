// Package storage owns the durable state of the tracker: the
// transaction list and the settings (budgets, PIN credential). Both
// stores persist to flat JSON files with atomic replacement, so the
// files on disk are always a complete previous or complete new state.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrCorruptData marks a file that exists but does not parse into
	// the expected shape. Distinguishable from a missing file, which
	// is silently treated as an empty store.
	ErrCorruptData = errors.New("corrupt data file")

	// ErrEmptyStore is returned by undo when there is nothing to undo.
	ErrEmptyStore = errors.New("no transactions recorded")
)

// writeJSONAtomic serializes v to a temporary file in the destination
// directory, flushes it to disk, then renames it over path. A crash at
// any point leaves path holding either the old or the new complete
// content, never a partial write.
func writeJSONAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	// Best-effort cleanup; a leftover temp file is harmless and is
	// ignored by Load.
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// readJSON loads path into v. A missing file returns (false, nil); a
// file that exists but fails to parse returns ErrCorruptData wrapped
// with the parse error.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: parse %s: %v", ErrCorruptData, path, err)
	}
	return true, nil
}
