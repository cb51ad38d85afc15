package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"midaxas/internal/core"
	"midaxas/internal/gate"
)

func newTestSettings(t *testing.T) *SettingsStore {
	t.Helper()
	s := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBudgetLifecycle(t *testing.T) {
	s := newTestSettings(t)

	if err := s.SetBudget("Food", core.Money{Cents: 10000}); err != nil {
		t.Fatal(err)
	}
	// Overwrite is allowed.
	if err := s.SetBudget("Food", core.Money{Cents: 15000}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBudget("Rent", core.Money{Cents: 80000}); err != nil {
		t.Fatal(err)
	}

	budgets := s.Budgets()
	if len(budgets) != 2 || budgets["Food"].Cents != 15000 || budgets["Rent"].Cents != 80000 {
		t.Fatalf("budgets = %+v", budgets)
	}

	removed, err := s.RemoveBudget("Food")
	if err != nil || !removed {
		t.Fatalf("remove: %v removed=%v", err, removed)
	}
	// Absent category: no-op, not an error.
	removed, err = s.RemoveBudget("Food")
	if err != nil || removed {
		t.Fatalf("second remove: %v removed=%v", err, removed)
	}

	// Survives a restart.
	reloaded := NewSettingsStore(s.path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	budgets = reloaded.Budgets()
	if len(budgets) != 1 || budgets["Rent"].Cents != 80000 {
		t.Fatalf("reloaded budgets = %+v", budgets)
	}
}

func TestSetBudgetValidation(t *testing.T) {
	s := newTestSettings(t)

	if err := s.SetBudget("Food", core.Money{Cents: -1}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("negative budget: %v", err)
	}
	if err := s.SetBudget("  ", core.Money{Cents: 100}); !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("blank category: %v", err)
	}
	// Zero is a legal limit.
	if err := s.SetBudget("Treats", core.Money{}); err != nil {
		t.Fatalf("zero budget: %v", err)
	}
}

func TestBudgetsReturnsACopy(t *testing.T) {
	s := newTestSettings(t)
	if err := s.SetBudget("Food", core.Money{Cents: 100}); err != nil {
		t.Fatal(err)
	}
	m := s.Budgets()
	m["Food"] = core.Money{Cents: 999}
	if s.Budgets()["Food"].Cents != 100 {
		t.Fatal("Budgets leaks the live map")
	}
}

func TestPINLifecycle(t *testing.T) {
	s := newTestSettings(t)

	if s.HasPIN() {
		t.Fatal("fresh store must have no pin")
	}
	if err := s.SetPIN(""); !errors.Is(err, gate.ErrInvalidPIN) {
		t.Fatalf("empty pin: %v", err)
	}

	if err := s.SetPIN("1234"); err != nil {
		t.Fatal(err)
	}
	if !s.HasPIN() {
		t.Fatal("HasPIN false after set")
	}
	if !gate.Verify("1234", s.PINHash()) {
		t.Fatal("stored hash does not verify")
	}
	if gate.Verify("9999", s.PINHash()) {
		t.Fatal("wrong pin verified")
	}

	// Overwrite.
	if err := s.SetPIN("5678"); err != nil {
		t.Fatal(err)
	}
	if gate.Verify("1234", s.PINHash()) || !gate.Verify("5678", s.PINHash()) {
		t.Fatal("pin change not applied")
	}

	if err := s.RemovePIN(); err != nil {
		t.Fatal(err)
	}
	if s.HasPIN() {
		t.Fatal("HasPIN true after remove")
	}
}

func TestSettingsFileShape(t *testing.T) {
	s := newTestSettings(t)
	if err := s.SetBudget("Food", core.Money{Cents: 10050}); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}
	var f struct {
		PINHash *string            `json:"pin_hash"`
		Budgets map[string]float64 `json:"budgets"`
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatal(err)
	}
	// No PIN set: the field is written as null for v1 readers.
	if f.PINHash != nil {
		t.Fatalf("pin_hash = %v, want null", *f.PINHash)
	}
	if f.Budgets["Food"] != 100.50 {
		t.Fatalf("budget written as %v, want 100.50", f.Budgets["Food"])
	}
}

// A settings.json written by the v1 app: bare sha256 hash, float budgets.
func TestLoadLegacySettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	legacy := `{"pin_hash": "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4", "budgets": {"Food": 100.5}}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSettingsStore(path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if !s.HasPIN() {
		t.Fatal("legacy pin hash not loaded")
	}
	// sha256("1234")
	if !gate.Verify("1234", s.PINHash()) {
		t.Fatal("legacy sha256 hash does not verify")
	}
	if s.Budgets()["Food"].Cents != 10050 {
		t.Fatalf("legacy budget = %+v", s.Budgets())
	}
}

func TestLoadCorruptSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("[1,2,3"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewSettingsStore(path)
	if err := s.Load(); !errors.Is(err, ErrCorruptData) {
		t.Fatalf("err = %v, want ErrCorruptData", err)
	}
}

func TestLoadMissingSettingsUsesDefaults(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if s.HasPIN() || len(s.Budgets()) != 0 {
		t.Fatal("expected default settings")
	}
}
