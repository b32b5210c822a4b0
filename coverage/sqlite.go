package coverage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/parse"
)

const schema = `
	CREATE TABLE IF NOT EXISTS parse_miss (
		card_id TEXT NOT NULL,
		card_name TEXT NOT NULL,
		card_type TEXT NOT NULL,
		text TEXT NOT NULL,
		hits INTEGER NOT NULL DEFAULT 1,
		first_seen INTEGER NOT NULL,
		last_seen INTEGER NOT NULL,
		PRIMARY KEY (card_id, text)
	);
`

// SQLite is a Repo backed by a sqlite database.
type SQLite struct {
	Db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates the database at path. ":memory:" works for a
// throwaway store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("coverage: open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)
	repo, err := NewSQLite(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSQLite creates the schema on db if needed.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("coverage: create schema: %w", err)
	}
	return &SQLite{Db: db, now: time.Now}, nil
}

func (repo *SQLite) RecordMiss(ctx context.Context, miss parse.Miss) error {
	now := repo.now().UnixNano()
	return repo.execWrap(ctx, `
		INSERT INTO parse_miss (card_id, card_name, card_type, text, hits, first_seen, last_seen)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT (card_id, text) DO UPDATE SET hits = hits + 1, last_seen = excluded.last_seen`,
		miss.CardID, miss.CardName, string(miss.CardType), miss.Text, now, now)
}

func (repo *SQLite) Misses(ctx context.Context) ([]Entry, error) {
	rows, err := repo.Db.QueryContext(ctx, `
		SELECT card_id, card_name, card_type, text, hits, first_seen, last_seen
		FROM parse_miss
		ORDER BY hits DESC, card_id, text`)
	if err != nil {
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e           Entry
			typ         string
			first, last int64
		)
		if err := rows.Scan(&e.CardID, &e.CardName, &typ, &e.Text, &e.Count, &first, &last); err != nil {
			return nil, fmt.Errorf("error in db execution: %w", err)
		}
		e.CardType = card.Type(typ)
		e.FirstSeen, e.LastSeen = time.Unix(0, first), time.Unix(0, last)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (repo *SQLite) Reset(ctx context.Context) error {
	return repo.execWrap(ctx, "DELETE FROM parse_miss")
}

func (repo *SQLite) Close() error {
	return repo.Db.Close()
}

func (repo *SQLite) execWrap(ctx context.Context, query string, args ...any) error {
	if _, err := repo.Db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error in db execution: %w", err)
	}
	return nil
}
