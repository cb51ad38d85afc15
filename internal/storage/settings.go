package storage

import (
	"log/slog"
	"strings"
	"sync"

	"midaxas/internal/core"
	"midaxas/internal/gate"
)

// settingsFile is the on-disk shape of settings.json. The pin_hash
// field is null when no PIN is enforced, matching files written by
// earlier versions.
type settingsFile struct {
	PINHash *string               `json:"pin_hash"`
	Budgets map[string]core.Money `json:"budgets"`
}

// SettingsStore owns the per-category monthly budgets and the optional
// PIN credential hash. Same load/atomic-persist lifecycle as
// RecordStore.
type SettingsStore struct {
	mu      sync.Mutex
	path    string
	pinHash string
	budgets map[string]core.Money
}

// NewSettingsStore creates a store backed by the given JSON file.
// Call Load before use.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path, budgets: make(map[string]core.Money)}
}

// Load reads the settings file. A missing file yields default settings
// (no PIN, no budgets); an unparseable one fails with ErrCorruptData.
func (s *SettingsStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var f settingsFile
	found, err := readJSON(s.path, &f)
	if err != nil {
		return err
	}
	s.pinHash = ""
	if f.PINHash != nil {
		s.pinHash = *f.PINHash
	}
	s.budgets = f.Budgets
	if s.budgets == nil {
		s.budgets = make(map[string]core.Money)
	}
	if found {
		slog.Info("Settings loaded", "file", s.path, "budgets", len(s.budgets), "pin_set", s.pinHash != "")
	} else {
		slog.Info("Settings file absent, using defaults", "file", s.path)
	}
	return nil
}

// SetBudget creates or overwrites the monthly budget for a category.
func (s *SettingsStore) SetBudget(category string, amount core.Money) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return core.ErrEmptyCategory
	}
	if err := amount.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.budgets[category]
	s.budgets[category] = amount
	if err := s.persistLocked(); err != nil {
		if had {
			s.budgets[category] = prev
		} else {
			delete(s.budgets, category)
		}
		return err
	}

	slog.Info("Budget set", "category", category, "amount_cents", amount.Cents)
	return nil
}

// RemoveBudget deletes the budget for a category. Returns false,
// without error, when no budget was set for it.
func (s *SettingsStore) RemoveBudget(category string) (bool, error) {
	category = strings.TrimSpace(category)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.budgets[category]
	if !had {
		return false, nil
	}
	delete(s.budgets, category)
	if err := s.persistLocked(); err != nil {
		s.budgets[category] = prev
		return false, err
	}

	slog.Info("Budget removed", "category", category)
	return true, nil
}

// Budgets returns a copy of the category to monthly-limit mapping.
func (s *SettingsStore) Budgets() map[string]core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]core.Money, len(s.budgets))
	for k, v := range s.budgets {
		out[k] = v
	}
	return out
}

// SetPIN hashes and stores the PIN. An empty PIN fails with
// gate.ErrInvalidPIN.
func (s *SettingsStore) SetPIN(pin string) error {
	hash, err := gate.Hash(pin)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.pinHash
	s.pinHash = hash
	if err := s.persistLocked(); err != nil {
		s.pinHash = prev
		return err
	}

	slog.Info("PIN updated")
	return nil
}

// RemovePIN clears the stored credential; subsequent startups require
// no PIN.
func (s *SettingsStore) RemovePIN() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.pinHash
	s.pinHash = ""
	if err := s.persistLocked(); err != nil {
		s.pinHash = prev
		return err
	}

	slog.Info("PIN removed")
	return nil
}

// HasPIN reports whether a credential hash is currently stored.
func (s *SettingsStore) HasPIN() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pinHash != ""
}

// PINHash returns the stored credential hash, empty when none is set.
func (s *SettingsStore) PINHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pinHash
}

func (s *SettingsStore) persistLocked() error {
	f := settingsFile{Budgets: s.budgets}
	if s.pinHash != "" {
		f.PINHash = &s.pinHash
	}
	return writeJSONAtomic(s.path, f)
}
