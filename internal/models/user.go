// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row. Email doubles as the room-member identity key.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Elo          int       `json:"elo"`
	GamesPlayed  int       `json:"games_played"`
	GamesWon     int       `json:"games_won"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultElo is the starting rating for new accounts.
const DefaultElo = 1200
