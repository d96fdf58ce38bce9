// Package store persists the last fetched quote per instrument so prices can
// be re-applied without hitting a market-data source.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"assetctl/internal/assets"
)

// ErrQuoteNotFound indicates no cached quote exists for an instrument.
var ErrQuoteNotFound = errors.New("no cached quote")

// Quote is a cached price snapshot.
type Quote struct {
	Name      string
	Kind      assets.Kind
	Price     float64
	FetchedAt time.Time
}

// QuoteStore is a SQLite-backed cache holding one latest quote per canonical
// instrument name.
type QuoteStore struct {
	db *sql.DB
}

// NewQuoteStore opens (or creates) the quote cache at the given path.
func NewQuoteStore(dbPath string) (*QuoteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open quote cache: %w", err)
	}

	s := &QuoteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize quote cache schema: %w", err)
	}
	return s, nil
}

func (s *QuoteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quotes (
		name TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		price REAL NOT NULL,
		fetched_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save upserts the asset's current price. Assets with no price are skipped.
func (s *QuoteStore) Save(a assets.Asset) error {
	p := a.Price()
	if !p.Valid {
		return nil
	}
	_, err := s.db.Exec(`
		INSERT INTO quotes (name, kind, price, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET kind=excluded.kind, price=excluded.price, fetched_at=excluded.fetched_at`,
		a.Name(), string(a.Kind()), p.Value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving quote for %s: %w", a.Name(), err)
	}
	return nil
}

// Get returns the cached quote for a canonical name.
func (s *QuoteStore) Get(name string) (Quote, error) {
	var q Quote
	var kind string
	err := s.db.QueryRow(
		`SELECT name, kind, price, fetched_at FROM quotes WHERE name = ?`, name,
	).Scan(&q.Name, &kind, &q.Price, &q.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, fmt.Errorf("%w for %s", ErrQuoteNotFound, name)
	}
	if err != nil {
		return Quote{}, fmt.Errorf("loading quote for %s: %w", name, err)
	}
	q.Kind = assets.Kind(kind)
	return q, nil
}

// Apply sets the asset's price from the cache, for use when no market-data
// source is reachable.
func (s *QuoteStore) Apply(a assets.Asset) error {
	q, err := s.Get(a.Name())
	if err != nil {
		return err
	}
	a.SetPrice(assets.NewPrice(q.Price))
	return nil
}

// Prune drops quotes older than maxAge and returns the number removed.
func (s *QuoteStore) Prune(maxAge time.Duration) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM quotes WHERE fetched_at < ?`, time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("pruning quotes: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *QuoteStore) Close() error {
	return s.db.Close()
}
