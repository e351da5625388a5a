package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/neon-lanes/internal/progress"
)

// openTestKV opens a throwaway data directory and removes it afterwards.
func openTestKV(t *testing.T, profile string) (*KVStore, string) {
	t.Helper()
	app := fmt.Sprintf("neon_lanes_test_%d", time.Now().UnixNano())
	s, err := OpenKV(app, profile)
	if err != nil {
		t.Skipf("cannot open gdata directory: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", app))
		}
	})
	return s, app
}

func TestKVDefaults(t *testing.T) {
	s, _ := openTestKV(t, "ana")

	rec, err := s.Record()
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	want := progress.DefaultRecord()
	if !slices.Equal(rec.Unlocked, want.Unlocked) || rec.TotalCoins != 0 || rec.Selected != want.Selected {
		t.Errorf("Record() = %+v, expected defaults", rec)
	}
}

func TestKVRoundTrip(t *testing.T) {
	s, app := openTestKV(t, "ana")

	s.SetBestScore(1, 420)
	s.UnlockLevel(3)
	s.AddCoins(75)
	if err := s.PurchaseCosmetic("ember", 50); err != nil {
		t.Fatalf("PurchaseCosmetic() error = %v", err)
	}
	if err := s.SelectCosmetic("ember"); err != nil {
		t.Fatalf("SelectCosmetic() error = %v", err)
	}

	reopened, err := OpenKV(app, "ana")
	if err != nil {
		t.Fatalf("OpenKV() error = %v", err)
	}
	if best, _ := reopened.BestScore(1); best != 420 {
		t.Errorf("BestScore(1) = %d, expected 420", best)
	}
	if levels, _ := reopened.UnlockedLevels(); !slices.Equal(levels, []int{1, 3}) {
		t.Errorf("UnlockedLevels() = %v, expected [1 3]", levels)
	}
	if coins, _ := reopened.TotalCoins(); coins != 25 {
		t.Errorf("TotalCoins() = %d, expected 25", coins)
	}
	if sel, _ := reopened.SelectedCosmetic(); sel != "ember" {
		t.Errorf("SelectedCosmetic() = %q, expected ember", sel)
	}

	other, _ := OpenKV(app, "bo")
	if coins, _ := other.TotalCoins(); coins != 0 {
		t.Errorf("other profile TotalCoins() = %d, expected 0", coins)
	}
}

func TestKVFailedPurchaseLeavesRecord(t *testing.T) {
	s, _ := openTestKV(t, "ana")
	s.AddCoins(10)

	if err := s.PurchaseCosmetic("ember", 50); !errors.Is(err, progress.ErrInsufficientCoins) {
		t.Fatalf("PurchaseCosmetic() error = %v, expected ErrInsufficientCoins", err)
	}
	if coins, _ := s.TotalCoins(); coins != 10 {
		t.Errorf("TotalCoins() = %d, expected 10", coins)
	}
	if owned, _ := s.OwnedCosmetics(); slices.Contains(owned, "ember") {
		t.Error("failed purchase should not grant the cosmetic")
	}
}
