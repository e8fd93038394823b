package state

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rentbook/rentbook/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewStore(path, testLogger())
	if err := s.Load(); err != nil {
		t.Fatalf("failed to load state: %v", err)
	}
	return s, path
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	if id, name := s.ActiveProfile(); id != "" || name != "" {
		t.Fatalf("expected empty state, got %q/%q", id, name)
	}
	if s.CachedBalance() != nil {
		t.Fatal("expected no cached balance in a fresh store")
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path, testLogger())
	if err := s.Load(); err == nil {
		t.Fatal("expected error loading corrupt state file")
	}
}

func TestStateRoundTrip(t *testing.T) {
	s, path := newTestStore(t)

	if err := s.SetActiveProfile("p1", "Asha Lodge"); err != nil {
		t.Fatal(err)
	}
	summary := &models.BalanceSummary{
		RentAmount:  decimal.NewFromInt(10000),
		TotalPaid:   decimal.NewFromInt(6000),
		Remaining:   decimal.NewFromInt(4000),
		Due:         decimal.NewFromInt(4000),
		FineAmount:  decimal.Zero,
		TotalDue:    decimal.NewFromInt(4000),
		DaysOverdue: 10,
		Status:      models.StatusDue,
		Month:       "November",
		Year:        2025,
	}
	if err := s.SetBalance(summary); err != nil {
		t.Fatal(err)
	}

	// A second store reading the same file sees the same state.
	reloaded := NewStore(path, testLogger())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	id, name := reloaded.ActiveProfile()
	if id != "p1" || name != "Asha Lodge" {
		t.Fatalf("active profile = %q/%q, want p1/Asha Lodge", id, name)
	}
	cached := reloaded.CachedBalance()
	if cached == nil {
		t.Fatal("cached balance lost across reload")
	}
	if cached.Status != models.StatusDue || !cached.Due.Equal(decimal.NewFromInt(4000)) || cached.Year != 2025 {
		t.Fatalf("cached balance mangled: %+v", cached)
	}
}

func TestSetActiveProfileClearsCache(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.SetActiveProfile("p1", "Ravi"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBalance(&models.BalanceSummary{Status: models.StatusPaid}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetActiveProfile("p2", "Asha Lodge"); err != nil {
		t.Fatal(err)
	}

	if s.CachedBalance() != nil {
		t.Fatal("switching profiles must drop the previous profile's snapshot")
	}
}

func TestInvalidateBalance(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.SetBalance(&models.BalanceSummary{Status: models.StatusFine}); err != nil {
		t.Fatal(err)
	}
	if err := s.InvalidateBalance(); err != nil {
		t.Fatal(err)
	}
	if s.CachedBalance() != nil {
		t.Fatal("cached balance should be gone after invalidation")
	}
	// Invalidating an already empty slot is a no-op.
	if err := s.InvalidateBalance(); err != nil {
		t.Fatal(err)
	}
}

func TestCachedBalanceReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.SetBalance(&models.BalanceSummary{Status: models.StatusDue}); err != nil {
		t.Fatal(err)
	}

	got := s.CachedBalance()
	got.Status = models.StatusPaid
	if s.CachedBalance().Status != models.StatusDue {
		t.Fatal("mutating the returned snapshot must not touch the stored one")
	}
}

func TestPersistLeavesNoTempFile(t *testing.T) {
	s, path := newTestStore(t)
	if err := s.SetActiveProfile("p1", "Ravi"); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
