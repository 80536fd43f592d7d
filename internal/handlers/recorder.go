// internal/handlers/recorder.go
package handlers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pentarow/gomoku/internal/cache"
	"github.com/pentarow/gomoku/internal/database"
)

// GameRecorder is the persistence collaborator consumed by the room sessions.
// Every call is fire-and-forget from the room's perspective: failures are
// logged by the caller and never roll back in-memory state.
type GameRecorder interface {
	// CreateGame records a new match between two player identities and returns
	// the correlation handle for subsequent calls.
	CreateGame(ctx context.Context, player1, player2 string) (string, error)
	// RecordBoard stores a board snapshot for the match.
	RecordBoard(ctx context.Context, gameID string, board [][]*int) error
	// EndGame completes the match; winner is empty for a draw.
	EndGame(ctx context.Context, gameID, winner string) error
}

// StoreRecorder is the production GameRecorder: matches live in postgres and
// each recorded snapshot is additionally journaled to the Redis move queue.
type StoreRecorder struct {
	Logger *logrus.Logger
}

func (sr *StoreRecorder) CreateGame(ctx context.Context, player1, player2 string) (string, error) {
	return database.CreateGame(ctx, player1, player2)
}

func (sr *StoreRecorder) RecordBoard(ctx context.Context, gameID string, board [][]*int) error {
	if cache.Rdb != nil {
		snap := cache.BoardSnapshot{GameID: gameID, Board: board, Timestamp: time.Now().Unix()}
		if err := cache.PublishBoardSnapshot(ctx, snap); err != nil {
			// The journal is best effort; the postgres record still lands.
			sr.Logger.Warnf("failed to journal board snapshot for game %s: %v", gameID, err)
		}
	}
	return database.UpdateGameBoard(ctx, gameID, board)
}

func (sr *StoreRecorder) EndGame(ctx context.Context, gameID, winner string) error {
	return database.EndGame(ctx, gameID, winner)
}
