package game

import "testing"

func seedCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(SeedFinancialEvents())
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return catalog
}

// checkUnlockInvariant asserts that every event's status matches the derived
// definition: available iff all prerequisites are completed.
func checkUnlockInvariant(t *testing.T, catalog *Catalog, progress *Progress) {
	t.Helper()
	statuses := EvaluateUnlocks(catalog, progress)
	for _, ev := range catalog.Events {
		want := StatusAvailable
		for _, req := range ev.UnlockRequirements {
			if !progress.Completed(req) {
				want = StatusLocked
				break
			}
		}
		if progress.Completed(ev.Year) {
			want = StatusCompleted
		}
		if statuses[ev.Year] != want {
			t.Errorf("Event %d: expected status %s, got %s", ev.Year, want, statuses[ev.Year])
		}
	}
}

// TestUnlockDerivation tests the unlock invariant after every completion step
func TestUnlockDerivation(t *testing.T) {
	catalog := seedCatalog(t)
	progress := NewProgress()

	checkUnlockInvariant(t, catalog, progress)
	for _, year := range []int{1990, 1997, 2000, 2008, 2020, 2025} {
		progress.markCompleted(year)
		checkUnlockInvariant(t, catalog, progress)
	}
	if !AllCompleted(catalog, progress) {
		t.Error("AllCompleted should be true after finishing every event")
	}
}

// TestUnlockGating tests that 2020 stays locked until 2008 is done
func TestUnlockGating(t *testing.T) {
	catalog := seedCatalog(t)
	progress := NewProgress()

	statuses := EvaluateUnlocks(catalog, progress)
	if statuses[1990] != StatusAvailable {
		t.Errorf("1990 should start available, got %s", statuses[1990])
	}
	if statuses[2020] != StatusLocked {
		t.Errorf("2020 should start locked, got %s", statuses[2020])
	}

	progress.markCompleted(1997)
	progress.markCompleted(2000)
	statuses = EvaluateUnlocks(catalog, progress)
	if statuses[2008] != StatusAvailable {
		t.Errorf("2008 should be available after 1997 and 2000, got %s", statuses[2008])
	}
	if statuses[2020] != StatusLocked {
		t.Errorf("2020 should still be locked without 2008, got %s", statuses[2020])
	}

	progress.markCompleted(2008)
	statuses = EvaluateUnlocks(catalog, progress)
	if statuses[2020] != StatusAvailable {
		t.Errorf("2020 should unlock once 2008 completes, got %s", statuses[2020])
	}
}

// TestEvaluateUnlocksIdempotent tests that repeated evaluation yields the
// same result and never mutates progress
func TestEvaluateUnlocksIdempotent(t *testing.T) {
	catalog := seedCatalog(t)
	progress := NewProgress()
	progress.markCompleted(1990)

	first := EvaluateUnlocks(catalog, progress)
	second := EvaluateUnlocks(catalog, progress)
	for year, status := range first {
		if second[year] != status {
			t.Errorf("Event %d: first run %s, second run %s", year, status, second[year])
		}
	}
	if progress.CompletedCount() != 1 {
		t.Errorf("Expected 1 completion, got %d", progress.CompletedCount())
	}
}
