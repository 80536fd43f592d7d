// internal/database/user.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pentarow/gomoku/internal/models"
)

// CreateUser inserts a new account at the default rating and returns it.
func CreateUser(ctx context.Context, email, username, passwordHash string) (*models.User, error) {
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Elo:          models.DefaultElo,
	}
	q := `
		INSERT INTO users (id, email, username, password_hash, elo, games_played, games_won, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, false, now(), now())
		RETURNING created_at, updated_at
	`
	if err := DB.QueryRow(ctx, q, u.ID, u.Email, u.Username, u.PasswordHash, u.Elo).
		Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetUserByEmail fetches one account by its email, the room-member key.
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `
		SELECT id, email, username, password_hash, elo, games_played, games_won, is_admin, created_at, updated_at
		FROM users WHERE email = $1
	`
	var u models.User
	if err := DB.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Elo,
		&u.GamesPlayed, &u.GamesWon, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("select user %s: %w", email, err)
	}
	return &u, nil
}
