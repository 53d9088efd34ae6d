package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jinsei-game/jinsei/internal/game"
)

// ErrNotFound is returned when no save exists for the given game ID.
var ErrNotFound = errors.New("save not found")

// ErrCorrupt is returned when a stored save cannot be decoded.
var ErrCorrupt = errors.New("save data is corrupt")

// Info summarizes one stored save for listings.
type Info struct {
	GameID     string
	PlayerName string
	Status     string
	Turn       int
	UpdatedAt  time.Time
}

// Store persists encoded snapshots in SQLite, one row per game.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS saves (
  game_id     TEXT PRIMARY KEY,
  player_name TEXT NOT NULL,
  status      TEXT NOT NULL,
  turn        INTEGER NOT NULL,
  data        BLOB NOT NULL,
  updated_at  INTEGER NOT NULL
);`

// Open opens (or creates) a save database at the given path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("save path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping save db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init save db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save upserts the snapshot under its game ID.
func (s *Store) Save(ctx context.Context, snap *game.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap == nil || snap.GameID == "" {
		return fmt.Errorf("save: game id is required")
	}

	data, err := Encode(snap)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO saves (game_id, player_name, status, turn, data, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET
		   player_name = excluded.player_name,
		   status      = excluded.status,
		   turn        = excluded.turn,
		   data        = excluded.data,
		   updated_at  = excluded.updated_at`,
		snap.GameID,
		snap.PlayerName,
		snap.Status,
		snap.Turn,
		data,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", snap.GameID, err)
	}
	return nil
}

// Load returns the stored snapshot for the game ID. The snapshot is
// decoded but not repaired; callers restore via game.FromSnapshot.
func (s *Store) Load(ctx context.Context, gameID string) (*game.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.QueryRowContext(
		ctx,
		`SELECT data FROM saves WHERE game_id = ?`,
		gameID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}

	snap, ok := Decode(data)
	if !ok {
		return nil, fmt.Errorf("load game %s: %w", gameID, ErrCorrupt)
	}
	return snap, nil
}

// List returns summaries of all saves, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT game_id, player_name, status, turn, updated_at
		   FROM saves
		  ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var updatedAt int64
		if err := rows.Scan(&info.GameID, &info.PlayerName, &info.Status, &info.Turn, &updatedAt); err != nil {
			return nil, fmt.Errorf("list saves: %w", err)
		}
		info.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return infos, nil
}

// Delete removes the save for the game ID. Deleting a missing save is
// not an error.
func (s *Store) Delete(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("delete game %s: %w", gameID, err)
	}
	return nil
}
