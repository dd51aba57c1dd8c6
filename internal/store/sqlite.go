package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/kyiku/wordsearch-back/internal/model"
)

// schema is applied on open; every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS games (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL UNIQUE,
	owner_id       TEXT NOT NULL,
	available_from DATETIME,
	available_to   DATETIME,
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS puzzles (
	game_id       TEXT PRIMARY KEY REFERENCES games(id) ON DELETE CASCADE,
	game_table    TEXT NOT NULL,
	table_columns INTEGER NOT NULL,
	table_rows    INTEGER NOT NULL,
	solutions     TEXT NOT NULL,
	words         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS games_created_at ON games(created_at);
`

// SQLiteStore persists games in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at dsn and applies
// the schema.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Info().Str("dsn", dsn).Msg("sqlite store ready")
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts the game row and its puzzle row in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, g *model.Game) error {
	e := toEntity(g.Puzzle)
	sols, err := encodeJSON(e.Solutions)
	if err != nil {
		return fmt.Errorf("encode solutions: %w", err)
	}
	words, err := encodeJSON(e.Words)
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (id, name, owner_id, available_from, available_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			available_from = excluded.available_from,
			available_to = excluded.available_to,
			updated_at = excluded.updated_at`,
		g.ID, g.Name, g.OwnerID, nullTime(g.AvailableFrom), nullTime(g.AvailableTo), g.CreatedAt.UTC(), g.UpdatedAt.UTC(),
	)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO puzzles (game_id, game_table, table_columns, table_rows, solutions, words)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			game_table = excluded.game_table,
			table_columns = excluded.table_columns,
			table_rows = excluded.table_rows,
			solutions = excluded.solutions,
			words = excluded.words`,
		g.ID, e.GameTable, e.TableColumns, e.TableRows, sols, words,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("save puzzle %s: %w", g.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game %s: %w", g.ID, err)
	}
	return nil
}

const selectGame = `
	SELECT g.id, g.name, g.owner_id, g.available_from, g.available_to, g.created_at, g.updated_at,
	       p.game_table, p.table_columns, p.table_rows, p.solutions, p.words
	FROM games g JOIN puzzles p ON p.game_id = g.id`

// Get loads a game and its puzzle.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Game, error) {
	row := s.db.QueryRowContext(ctx, selectGame+` WHERE g.id = ?`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", id, err)
	}
	return g, nil
}

// List returns games ordered by creation time, newest first.
func (s *SQLiteStore) List(ctx context.Context, page, limit int) (Page, error) {
	page, limit = normalizePage(page, limit)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM games`).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count games: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		selectGame+` ORDER BY g.created_at DESC, g.id ASC LIMIT ? OFFSET ?`,
		limit, (page-1)*limit,
	)
	if err != nil {
		return Page{}, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	items := make([]*model.Game, 0, limit)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return Page{}, fmt.Errorf("scan game: %w", err)
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	return Page{Items: items, Total: total, Page: page, Limit: limit}, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row scanner) (*model.Game, error) {
	var (
		g          model.Game
		from, to   sql.NullTime
		e          puzzleEntity
		sols, word string
	)
	err := row.Scan(
		&g.ID, &g.Name, &g.OwnerID, &from, &to, &g.CreatedAt, &g.UpdatedAt,
		&e.GameTable, &e.TableColumns, &e.TableRows, &sols, &word,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sols), &e.Solutions); err != nil {
		return nil, fmt.Errorf("decode solutions: %w", err)
	}
	if err := json.Unmarshal([]byte(word), &e.Words); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}

	p, err := fromEntity(e)
	if err != nil {
		return nil, err
	}
	g.Puzzle = p
	g.Words = p.Words()
	if from.Valid {
		g.AvailableFrom = &from.Time
	}
	if to.Valid {
		g.AvailableTo = &to.Time
	}
	return &g, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
