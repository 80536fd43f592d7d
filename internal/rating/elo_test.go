// internal/rating/elo_test.go
package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEloEqualRatings(t *testing.T) {
	elo := NewElo()

	winner, loser := elo.ForWin(1200, 1200)
	assert.Equal(t, 1216, winner)
	assert.Equal(t, 1184, loser)
}

func TestEloFavoriteWinsSmallGain(t *testing.T) {
	elo := NewElo()

	winner, loser := elo.ForWin(1400, 1200)
	assert.Greater(t, winner, 1400)
	assert.Less(t, loser, 1200)
	assert.Less(t, winner-1400, 16)
	assert.Less(t, 1200-loser, 16)
}

func TestEloDraw(t *testing.T) {
	elo := NewElo()

	a, b := elo.ForDraw(1200, 1200)
	assert.Equal(t, 1200, a)
	assert.Equal(t, 1200, b)

	// The lower-rated player gains on a draw against a favorite.
	a, b = elo.ForDraw(1400, 1200)
	assert.Less(t, a, 1400)
	assert.Greater(t, b, 1200)
}

func TestExpectedScore(t *testing.T) {
	elo := NewElo()

	assert.InDelta(t, 0.5, elo.ExpectedScore(1200, 1200), 1e-9)
	assert.Greater(t, elo.ExpectedScore(1400, 1200), 0.5)
	assert.InDelta(t, 1.0, elo.ExpectedScore(1200, 1200)+elo.ExpectedScore(1200, 1200), 1e-9)
}
