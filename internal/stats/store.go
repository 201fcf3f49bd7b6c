package stats

import (
	"context"
	"database/sql"
)

// Result is one completed game as recorded for cross-session stats.
// WinnerName is empty for no-winner completions.
type Result struct {
	GameID     string `json:"gameId"`
	Mode       string `json:"mode"`
	WinnerName string `json:"winnerName"`
	Rounds     int    `json:"rounds"`
	Penalties  int    `json:"penalties"`
	DurationMs int64  `json:"durationMs"`
	FinishedAt string `json:"finishedAt"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// RecordGame inserts a completed game. Replays of the same game id are
// ignored so a retried save never double-counts.
func (s *Store) RecordGame(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO completed_games(game_id, mode, winner_name, rounds, penalties, duration_ms, finished_at)
		 VALUES(?,?,?,?,?,?,?)`,
		r.GameID, r.Mode, r.WinnerName, r.Rounds, r.Penalties, r.DurationMs, r.FinishedAt,
	)
	return err
}

// LBRow is one leaderboard entry: a winner name and how often it won.
type LBRow struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// Leaderboard returns win counts across every recorded game, most wins
// first, ties broken by name.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT winner_name, COUNT(1) AS wins
		 FROM completed_games
		 WHERE winner_name <> ''
		 GROUP BY winner_name
		 ORDER BY wins DESC, winner_name ASC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Name, &r.Wins); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Totals reports how many games and penalties have been recorded overall.
func (s *Store) Totals(ctx context.Context) (games, penalties int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(penalties), 0) FROM completed_games`,
	).Scan(&games, &penalties)
	return games, penalties, err
}
