package storage

import (
	"database/sql"
	"fmt"
	"slices"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/progress"
)

// ProfileStore is the progression of one profile inside the database.
type ProfileStore struct {
	db      *sql.DB
	profile string
}

// Ensure ProfileStore implements progress.Store
var _ progress.Store = (*ProfileStore)(nil)

// Profile returns the progression store for the named profile.
// Profiles are created lazily on first write.
func (s *Store) Profile(name string) *ProfileStore {
	return &ProfileStore{db: s.db, profile: profileName(name)}
}

// Name returns the profile name.
func (p *ProfileStore) Name() string {
	return p.profile
}

func (p *ProfileStore) BestScore(level int) (int, error) {
	var score int
	err := p.db.QueryRow(
		"SELECT score FROM best_scores WHERE profile = ? AND level = ?",
		p.profile, level,
	).Scan(&score)
	if isNoRows(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

func (p *ProfileStore) SetBestScore(level, score int) error {
	_, err := p.db.Exec(
		`INSERT INTO best_scores (profile, level, score) VALUES (?, ?, ?)
		 ON CONFLICT(profile, level) DO UPDATE SET score = excluded.score`,
		p.profile, level, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

func (p *ProfileStore) UnlockedLevels() ([]int, error) {
	rows, err := p.db.Query(
		"SELECT level FROM unlocked_levels WHERE profile = ? ORDER BY level",
		p.profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocked levels: %w", err)
	}
	defer rows.Close()

	levels := []int{1}
	for rows.Next() {
		var level int
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if level != 1 {
			levels = append(levels, level)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return levels, nil
}

func (p *ProfileStore) UnlockLevel(level int) error {
	_, err := p.db.Exec(
		"INSERT OR IGNORE INTO unlocked_levels (profile, level) VALUES (?, ?)",
		p.profile, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot unlock level: %w", err)
	}
	return nil
}

// ensureWallet creates the wallet row with defaults if missing.
func ensureWallet(q interface {
	Exec(query string, args ...any) (sql.Result, error)
}, profile string) error {
	_, err := q.Exec(
		"INSERT OR IGNORE INTO wallets (profile, coins, selected) VALUES (?, 0, ?)",
		profile, config.DefaultCosmeticID,
	)
	return err
}

func (p *ProfileStore) TotalCoins() (int, error) {
	var coins int
	err := p.db.QueryRow("SELECT coins FROM wallets WHERE profile = ?", p.profile).Scan(&coins)
	if isNoRows(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query coins: %w", err)
	}
	return coins, nil
}

func (p *ProfileStore) AddCoins(n int) error {
	if err := ensureWallet(p.db, p.profile); err != nil {
		return fmt.Errorf("storage: cannot create wallet: %w", err)
	}
	_, err := p.db.Exec(
		"UPDATE wallets SET coins = MAX(coins + ?, 0) WHERE profile = ?",
		n, p.profile,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot add coins: %w", err)
	}
	return nil
}

func (p *ProfileStore) OwnedCosmetics() ([]string, error) {
	rows, err := p.db.Query(
		"SELECT cosmetic FROM owned_cosmetics WHERE profile = ? ORDER BY cosmetic",
		p.profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query cosmetics: %w", err)
	}
	defer rows.Close()

	var owned []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		owned = append(owned, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	if !slices.Contains(owned, config.DefaultCosmeticID) {
		owned = append(owned, config.DefaultCosmeticID)
		slices.Sort(owned)
	}
	return owned, nil
}

// PurchaseCosmetic debits the wallet and records ownership in one transaction.
func (p *ProfileStore) PurchaseCosmetic(id string, cost int) error {
	if id == config.DefaultCosmeticID {
		return nil
	}

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin purchase: %w", err)
	}
	defer tx.Rollback()

	var owned int
	if err := tx.QueryRow(
		"SELECT COUNT(*) FROM owned_cosmetics WHERE profile = ? AND cosmetic = ?",
		p.profile, id,
	).Scan(&owned); err != nil {
		return fmt.Errorf("storage: cannot query cosmetics: %w", err)
	}
	if owned > 0 {
		return nil
	}

	if err := ensureWallet(tx, p.profile); err != nil {
		return fmt.Errorf("storage: cannot create wallet: %w", err)
	}
	var coins int
	if err := tx.QueryRow("SELECT coins FROM wallets WHERE profile = ?", p.profile).Scan(&coins); err != nil {
		return fmt.Errorf("storage: cannot query coins: %w", err)
	}
	if cost > coins {
		return progress.ErrInsufficientCoins
	}

	if _, err := tx.Exec("UPDATE wallets SET coins = coins - ? WHERE profile = ?", cost, p.profile); err != nil {
		return fmt.Errorf("storage: cannot debit coins: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO owned_cosmetics (profile, cosmetic) VALUES (?, ?)",
		p.profile, id,
	); err != nil {
		return fmt.Errorf("storage: cannot record cosmetic: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit purchase: %w", err)
	}
	return nil
}

func (p *ProfileStore) SelectCosmetic(id string) error {
	owned, err := p.OwnedCosmetics()
	if err != nil {
		return err
	}
	if !slices.Contains(owned, id) {
		return progress.ErrNotOwned
	}
	if err := ensureWallet(p.db, p.profile); err != nil {
		return fmt.Errorf("storage: cannot create wallet: %w", err)
	}
	if _, err := p.db.Exec("UPDATE wallets SET selected = ? WHERE profile = ?", id, p.profile); err != nil {
		return fmt.Errorf("storage: cannot select cosmetic: %w", err)
	}
	return nil
}

func (p *ProfileStore) SelectedCosmetic() (string, error) {
	var id string
	err := p.db.QueryRow("SELECT selected FROM wallets WHERE profile = ?", p.profile).Scan(&id)
	if err != nil && !isNoRows(err) {
		return "", fmt.Errorf("storage: cannot query selected cosmetic: %w", err)
	}
	if id == "" {
		return config.DefaultCosmeticID, nil
	}
	return id, nil
}
