// internal/database/game.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pentarow/gomoku/internal/rating"
)

// CreateGame inserts an active match record for the two player emails and
// returns its id, the correlation handle the room keeps as game_id. Both
// players' ratings are snapshotted at match start.
func CreateGame(ctx context.Context, player1Email, player2Email string) (string, error) {
	p1, err := GetUserByEmail(ctx, player1Email)
	if err != nil {
		return "", fmt.Errorf("lookup player1: %w", err)
	}
	p2, err := GetUserByEmail(ctx, player2Email)
	if err != nil {
		return "", fmt.Errorf("lookup player2: %w", err)
	}

	id := uuid.New()
	q := `
		INSERT INTO games (id, player1_id, player2_id, status, board, player1_elo_before, player2_elo_before, started_at)
		VALUES ($1, $2, $3, 'active', 'null'::jsonb, $4, $5, now())
	`
	if _, err := DB.Exec(ctx, q, id, p1.ID, p2.ID, p1.Elo, p2.Elo); err != nil {
		return "", fmt.Errorf("insert game: %w", err)
	}
	return id.String(), nil
}

// UpdateGameBoard stores the final board snapshot on the match record.
func UpdateGameBoard(ctx context.Context, gameID string, board [][]*int) error {
	id, err := uuid.Parse(gameID)
	if err != nil {
		return fmt.Errorf("bad game id %q: %w", gameID, err)
	}
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}
	if _, err := DB.Exec(ctx, `UPDATE games SET board = $2 WHERE id = $1`, id, data); err != nil {
		return fmt.Errorf("update game board: %w", err)
	}
	return nil
}

// EndGame completes the match record and applies the rating update to both
// players. winnerEmail is empty for a draw. Everything runs in one
// transaction so a partial rating write never lands.
func EndGame(ctx context.Context, gameID string, winnerEmail string) error {
	id, err := uuid.Parse(gameID)
	if err != nil {
		return fmt.Errorf("bad game id %q: %w", gameID, err)
	}

	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var p1ID, p2ID uuid.UUID
		var p1Email, p2Email string
		var p1Elo, p2Elo int
		q := `
			SELECT g.player1_id, g.player2_id, u1.email, u2.email, u1.elo, u2.elo
			FROM games g
			JOIN users u1 ON u1.id = g.player1_id
			JOIN users u2 ON u2.id = g.player2_id
			WHERE g.id = $1
		`
		if err := tx.QueryRow(ctx, q, id).Scan(&p1ID, &p2ID, &p1Email, &p2Email, &p1Elo, &p2Elo); err != nil {
			return fmt.Errorf("select game %s: %w", gameID, err)
		}

		elo := rating.NewElo()
		var new1, new2 int
		var winnerID *uuid.UUID
		switch winnerEmail {
		case "":
			new1, new2 = elo.ForDraw(p1Elo, p2Elo)
		case p1Email:
			new1, new2 = elo.ForWin(p1Elo, p2Elo)
			winnerID = &p1ID
		case p2Email:
			new2, new1 = elo.ForWin(p2Elo, p1Elo)
			winnerID = &p2ID
		default:
			return fmt.Errorf("winner %q is not a player of game %s", winnerEmail, gameID)
		}

		upd := `
			UPDATE games
			SET status = 'completed', winner_id = $2, player1_elo_after = $3, player2_elo_after = $4, ended_at = now()
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, upd, id, winnerID, new1, new2); err != nil {
			return fmt.Errorf("complete game: %w", err)
		}

		updUser := `
			UPDATE users
			SET elo = $2, games_played = games_played + 1, games_won = games_won + $3, updated_at = now()
			WHERE id = $1
		`
		won1, won2 := 0, 0
		if winnerEmail == p1Email {
			won1 = 1
		} else if winnerEmail == p2Email {
			won2 = 1
		}
		if _, err := tx.Exec(ctx, updUser, p1ID, new1, won1); err != nil {
			return fmt.Errorf("update player1 stats: %w", err)
		}
		if _, err := tx.Exec(ctx, updUser, p2ID, new2, won2); err != nil {
			return fmt.Errorf("update player2 stats: %w", err)
		}
		return nil
	})
}
