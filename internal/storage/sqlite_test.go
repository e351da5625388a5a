package storage

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"/tmp/lanes.db", "/tmp/lanes.db"},
		{"~/.arcade/lanes.db", filepath.Join(home, ".arcade/lanes.db")},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error = %v", tt.in, err)
		}
		if got != tt.expected {
			t.Errorf("ExpandPath(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestStoreRunHistory(t *testing.T) {
	store := openTestStore(t)

	runs := []RunEntry{
		{Profile: "ana", Level: 1, Score: 100, Coins: 2},
		{Profile: "ana", Level: 1, Score: 1000, Coins: 9, Completed: true},
		{Profile: "bo", Level: 1, Score: 400},
		{Profile: "bo", Level: 2, Score: 50},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(1, 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopRuns() returned %d runs, expected 2", len(top))
	}
	if top[0].Score != 1000 || !top[0].Completed || top[1].Score != 400 {
		t.Errorf("TopRuns() = %+v, expected 1000 then 400", top)
	}

	recent, err := store.RecentRuns("ana", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 1000 {
		t.Errorf("RecentRuns() = %+v, expected newest first", recent)
	}

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("AllLevelStats() returned %d levels, expected 2", len(stats))
	}
	if stats[0].Level != 1 || stats[0].Runs != 3 || stats[0].Completed != 1 || stats[0].HighScore != 1000 || stats[0].TotalCoins != 11 {
		t.Errorf("level 1 stats = %+v", stats[0])
	}

	if err := store.ClearRuns("ana"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	recent, _ = store.RecentRuns("ana", 10)
	if len(recent) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(recent))
	}
	other, _ := store.RecentRuns("bo", 10)
	if len(other) != 2 {
		t.Error("Other profiles should not be affected by clearing")
	}
}

func TestProfileDefaults(t *testing.T) {
	p := openTestStore(t).Profile("")

	if p.Name() != DefaultProfile {
		t.Errorf("Name() = %q, expected %q", p.Name(), DefaultProfile)
	}
	if best, err := p.BestScore(3); err != nil || best != 0 {
		t.Errorf("BestScore(3) = %d, %v, expected 0, nil", best, err)
	}
	if levels, err := p.UnlockedLevels(); err != nil || !slices.Equal(levels, []int{1}) {
		t.Errorf("UnlockedLevels() = %v, %v, expected [1]", levels, err)
	}
	if coins, err := p.TotalCoins(); err != nil || coins != 0 {
		t.Errorf("TotalCoins() = %d, %v, expected 0", coins, err)
	}
	if owned, err := p.OwnedCosmetics(); err != nil || !slices.Equal(owned, []string{config.DefaultCosmeticID}) {
		t.Errorf("OwnedCosmetics() = %v, %v", owned, err)
	}
	if sel, err := p.SelectedCosmetic(); err != nil || sel != config.DefaultCosmeticID {
		t.Errorf("SelectedCosmetic() = %q, %v", sel, err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store := openTestStore(t)
	p := store.Profile("ana")

	if err := p.SetBestScore(1, 300); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	if err := p.SetBestScore(1, 500); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	if err := p.UnlockLevel(2); err != nil {
		t.Fatalf("UnlockLevel() failed: %v", err)
	}
	if err := p.UnlockLevel(2); err != nil {
		t.Fatalf("repeated UnlockLevel() failed: %v", err)
	}
	if err := p.AddCoins(70); err != nil {
		t.Fatalf("AddCoins() failed: %v", err)
	}

	// A second handle on the same profile sees the writes
	again := store.Profile("ana")
	if best, _ := again.BestScore(1); best != 500 {
		t.Errorf("BestScore(1) = %d, expected 500", best)
	}
	if levels, _ := again.UnlockedLevels(); !slices.Equal(levels, []int{1, 2}) {
		t.Errorf("UnlockedLevels() = %v, expected [1 2]", levels)
	}
	if coins, _ := again.TotalCoins(); coins != 70 {
		t.Errorf("TotalCoins() = %d, expected 70", coins)
	}

	// Profiles are isolated
	if coins, _ := store.Profile("bo").TotalCoins(); coins != 0 {
		t.Errorf("other profile TotalCoins() = %d, expected 0", coins)
	}

	names, err := store.Profiles()
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if !slices.Equal(names, []string{"ana"}) {
		t.Errorf("Profiles() = %v, expected [ana]", names)
	}
}

func TestProfilePurchase(t *testing.T) {
	tests := []struct {
		name      string
		coins     int
		id        string
		cost      int
		wantErr   error
		wantCoins int
		wantOwned bool
	}{
		{name: "affordable", coins: 60, id: "ember", cost: 50, wantCoins: 10, wantOwned: true},
		{name: "exact", coins: 50, id: "ember", cost: 50, wantCoins: 0, wantOwned: true},
		{name: "insufficient", coins: 49, id: "ember", cost: 50, wantErr: progress.ErrInsufficientCoins, wantCoins: 49},
		{name: "default is free", coins: 5, id: config.DefaultCosmeticID, cost: 0, wantCoins: 5, wantOwned: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := openTestStore(t).Profile("ana")
			p.AddCoins(tt.coins)

			err := p.PurchaseCosmetic(tt.id, tt.cost)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PurchaseCosmetic() error = %v, expected %v", err, tt.wantErr)
			}
			if coins, _ := p.TotalCoins(); coins != tt.wantCoins {
				t.Errorf("TotalCoins() = %d, expected %d", coins, tt.wantCoins)
			}
			owned, _ := p.OwnedCosmetics()
			if slices.Contains(owned, tt.id) != tt.wantOwned {
				t.Errorf("OwnedCosmetics() = %v, owned %q expected %v", owned, tt.id, tt.wantOwned)
			}
		})
	}
}

func TestProfilePurchaseOwnedNotCharged(t *testing.T) {
	p := openTestStore(t).Profile("ana")
	p.AddCoins(100)
	p.PurchaseCosmetic("ember", 50)

	if err := p.PurchaseCosmetic("ember", 50); err != nil {
		t.Fatalf("second PurchaseCosmetic() error = %v", err)
	}
	if coins, _ := p.TotalCoins(); coins != 50 {
		t.Errorf("TotalCoins() = %d, expected 50", coins)
	}
}

func TestProfileSelect(t *testing.T) {
	p := openTestStore(t).Profile("ana")

	if err := p.SelectCosmetic("ember"); !errors.Is(err, progress.ErrNotOwned) {
		t.Errorf("SelectCosmetic(unowned) error = %v, expected ErrNotOwned", err)
	}

	p.AddCoins(50)
	p.PurchaseCosmetic("ember", 50)
	if err := p.SelectCosmetic("ember"); err != nil {
		t.Fatalf("SelectCosmetic() error = %v", err)
	}
	if sel, _ := p.SelectedCosmetic(); sel != "ember" {
		t.Errorf("SelectedCosmetic() = %q, expected ember", sel)
	}
}

func TestProfileThroughLedger(t *testing.T) {
	cfg := config.DefaultLanesConfig()
	ledger := progress.NewLedger(openTestStore(t).Profile("ana"), cfg.Cosmetics, nil)

	ledger.AddCoins(60)
	if err := ledger.Purchase("ember"); err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if err := ledger.Select("ember"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if ledger.TotalCoins() != 10 || ledger.SelectedCosmetic() != "ember" {
		t.Errorf("ledger coins=%d selected=%q, expected 10 ember", ledger.TotalCoins(), ledger.SelectedCosmetic())
	}
}
