package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
)

// Result is the outcome of one finished game.
type Result struct {
	SessionID string
	Status    entity.Status
	Winner    entity.Cell
	Moves     int
}

// Stats tallies finished games.
type Stats struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

func (that Stats) Total() int {
	return that.XWins + that.OWins + that.Draws
}

type ResultRepository interface {
	Save(ctx context.Context, result Result) error
	Stats(ctx context.Context) (Stats, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result Result) error {
	query := `INSERT INTO results (session_id, status, winner, moves) VALUES (?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, result.SessionID, string(result.Status), string(result.Winner), result.Moves)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *resultRepository) Stats(ctx context.Context) (Stats, error) {
	query := `SELECT status, winner, COUNT(*) FROM results GROUP BY status, winner`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return Stats{}, fmt.Errorf("can't query results: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var (
			status, winner string
			count          int
		)

		if err = rows.Scan(&status, &winner, &count); err != nil {
			return Stats{}, fmt.Errorf("can't scan result: %w", err)
		}

		switch {
		case entity.Status(status) == entity.StatusDraw:
			stats.Draws += count
		case entity.Cell(winner) == entity.PlayerX:
			stats.XWins += count
		case entity.Cell(winner) == entity.PlayerO:
			stats.OWins += count
		}
	}

	if err = rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("can't iterate results: %w", err)
	}

	return stats, nil
}
