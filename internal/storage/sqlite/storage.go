package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/storage"
)

//go:embed schema.sql
var ddl string

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (creating if needed) the database at path and applies the schema
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// Need to ping the database to check if the file could be opened
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := InitializeTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return &Storage{db: db}, nil
}

// InitializeTables applies the schema to db
func InitializeTables(db *sql.DB) error {
	_, err := db.Exec(ddl)
	return err
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.GameRecord) error {
	layout, err := json.Marshal(game.MineLayout)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (id, width, height, mines, mine_layout, token_hash, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			mines = excluded.mines,
			mine_layout = excluded.mine_layout,
			token_hash = excluded.token_hash,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		string(game.ID), game.Width, game.Height, game.Mines, string(layout),
		game.TokenHash, string(game.Status), toUnix(game.CreatedAt), toUnix(game.UpdatedAt),
	)
	if err != nil {
		return err
	}

	// Moves are append-only except on reset, so rewriting them keeps both cases simple
	if _, err := tx.ExecContext(ctx, `DELETE FROM moves WHERE game_id = ?`, string(game.ID)); err != nil {
		return err
	}
	for i, move := range game.Moves {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO moves (game_id, seq, kind, x, y, at) VALUES (?, ?, ?, ?, ?, ?)`,
			string(game.ID), i, string(move.Kind), move.Position.X, move.Position.Y, toUnix(move.At),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, width, height, mines, mine_layout, token_hash, status, created_at, updated_at
		FROM games WHERE id = ?`, string(id))

	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	moves, err := s.getMoves(ctx, id)
	if err != nil {
		return nil, err
	}
	game.Moves = moves
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, string(id))
	return err
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, width, height, mines, mine_layout, token_hash, status, created_at, updated_at
		FROM games ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []*model.GameRecord{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, game := range games {
		if game.Moves, err = s.getMoves(ctx, game.ID); err != nil {
			return nil, err
		}
	}
	return games, nil
}

func (s *Storage) getMoves(ctx context.Context, id model.GameID) ([]model.Move, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, x, y, at FROM moves WHERE game_id = ? ORDER BY seq`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []model.Move
	for rows.Next() {
		var (
			move model.Move
			kind string
			at   int64
		)
		if err := rows.Scan(&kind, &move.Position.X, &move.Position.Y, &at); err != nil {
			return nil, err
		}
		move.Kind = model.MoveKind(kind)
		move.At = fromUnix(at)
		moves = append(moves, move)
	}
	return moves, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*model.GameRecord, error) {
	var (
		game               model.GameRecord
		id, layout, status string
		created, updated   int64
	)
	err := row.Scan(&id, &game.Width, &game.Height, &game.Mines, &layout,
		&game.TokenHash, &status, &created, &updated)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(layout), &game.MineLayout); err != nil {
		return nil, fmt.Errorf("decoding mine layout of game %s: %w", id, err)
	}
	game.ID = model.GameID(id)
	game.Status = model.GameStatus(status)
	game.CreatedAt = fromUnix(created)
	game.UpdatedAt = fromUnix(updated)
	return &game, nil
}

func toUnix(t time.Time) int64 {
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
