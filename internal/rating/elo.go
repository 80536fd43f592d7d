// internal/rating/elo.go

// Package rating computes Elo updates for completed matches. The room
// subsystem never calls this directly; the persistence layer applies it when
// it records a match outcome.
package rating

import "math"

// DefaultKFactor is the standard K used for all matches.
const DefaultKFactor = 32.0

// Elo holds the K-factor for rating updates.
type Elo struct {
	KFactor float64
}

// NewElo returns an Elo calculator with the default K-factor.
func NewElo() Elo {
	return Elo{KFactor: DefaultKFactor}
}

// ExpectedScore is the probability that a beats b.
func (e Elo) ExpectedScore(ratingA, ratingB int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(ratingB-ratingA)/400.0))
}

// NewRatings applies one result where scoreA is 1 for an A win, 0 for a loss,
// and 0.5 for a draw. Deltas truncate toward zero.
func (e Elo) NewRatings(ratingA, ratingB int, scoreA float64) (int, int) {
	expectedA := e.ExpectedScore(ratingA, ratingB)
	expectedB := 1.0 - expectedA
	scoreB := 1.0 - scoreA

	newA := ratingA + int(e.KFactor*(scoreA-expectedA))
	newB := ratingB + int(e.KFactor*(scoreB-expectedB))
	return newA, newB
}

// ForWin returns the (winner, loser) ratings after a decisive match.
func (e Elo) ForWin(winnerRating, loserRating int) (int, int) {
	return e.NewRatings(winnerRating, loserRating, 1.0)
}

// ForDraw returns both ratings after a drawn match.
func (e Elo) ForDraw(ratingA, ratingB int) (int, int) {
	return e.NewRatings(ratingA, ratingB, 0.5)
}
