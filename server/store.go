package server

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"minimax/engine"
)

// GameRow represents a finished game in the archive.
type GameRow struct {
	ID        string
	GameType  string
	Depth     int
	Winner    string
	Moves     int
	CreatedAt time.Time
}

// MoveRow represents one archived move.
type MoveRow struct {
	GameID string
	Step   int
	Player string
	Move   string
	Nodes  int64
}

// Store archives finished games in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database and runs migrations.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id         TEXT PRIMARY KEY,
			game_type  TEXT NOT NULL,
			depth      INTEGER NOT NULL,
			winner     TEXT NOT NULL,
			moves      INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS moves (
			game_id TEXT NOT NULL REFERENCES games(id),
			step    INTEGER NOT NULL,
			player  TEXT NOT NULL,
			move    TEXT NOT NULL,
			nodes   INTEGER NOT NULL,
			PRIMARY KEY (game_id, step)
		);
	`)
	return err
}

// SaveGame inserts a finished game and its moves, returning the new game ID.
func (s *Store) SaveGame(gameType string, depth int, winner string, moves []engine.MoveRecord) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO games (id, game_type, depth, winner, moves) VALUES (?, ?, ?, ?, ?)",
		id, gameType, depth, winner, len(moves),
	)
	if err != nil {
		return "", fmt.Errorf("insert game: %w", err)
	}
	for _, m := range moves {
		_, err = tx.Exec(
			"INSERT INTO moves (game_id, step, player, move, nodes) VALUES (?, ?, ?, ?, ?)",
			id, m.Step, m.Player.String(), m.Move, m.Nodes,
		)
		if err != nil {
			return "", fmt.Errorf("insert move %d: %w", m.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListGames returns all archived games, most recent first.
func (s *Store) ListGames() ([]GameRow, error) {
	rows, err := s.db.Query(
		"SELECT id, game_type, depth, winner, moves, created_at FROM games ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GameRow
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(&g.ID, &g.GameType, &g.Depth, &g.Winner, &g.Moves, &g.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// GetMoves returns the archived moves of one game in play order.
func (s *Store) GetMoves(gameID string) ([]MoveRow, error) {
	rows, err := s.db.Query(
		"SELECT game_id, step, player, move, nodes FROM moves WHERE game_id = ? ORDER BY step", gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MoveRow
	for rows.Next() {
		var m MoveRow
		if err := rows.Scan(&m.GameID, &m.Step, &m.Player, &m.Move, &m.Nodes); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
