// internal/game/board_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(b *Board, x, y, slot int) {
	v := slot
	b[x][y] = &v
}

// fillNoRuns occupies every cell with a pattern that never produces a run of
// five along any axis: value = ((x/2)%2) ^ (y%2) gives maximum runs of two.
func fillNoRuns(b *Board) {
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardHeight; y++ {
			put(b, x, y, ((x/2)%2)^(y%2))
		}
	}
}

func TestPlaceRejectsOccupiedAndOutOfRange(t *testing.T) {
	var b Board

	require.Equal(t, MoveOk, b.Place(3, 3, 0))
	assert.Equal(t, MoveErr, b.Place(3, 3, 1), "occupied cell must be rejected")
	require.NotNil(t, b[3][3])
	assert.Equal(t, 0, *b[3][3], "rejected move must not overwrite the cell")

	assert.Equal(t, MoveErr, b.Place(-1, 0, 0))
	assert.Equal(t, MoveErr, b.Place(0, BoardHeight, 0))
	assert.Equal(t, MoveErr, b.Place(BoardWidth, 0, 0))
}

func TestPlaceWinOnEachAxis(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
	}{
		{"horizontal", 1, 0},
		{"vertical", 0, 1},
		{"diagonal", 1, 1},
		{"anti-diagonal", 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Board
			// Four stones in a line, then the fifth placed in the middle so
			// the run is counted through the placed cell, not just outward.
			x, y := 4, 4
			for _, i := range []int{-2, -1, 1, 2} {
				put(&b, x+i*tt.dx, y+i*tt.dy, 1)
			}
			assert.Equal(t, MoveWin, b.Place(x, y, 1))
		})
	}
}

func TestPlaceRunOfFourIsNotAWin(t *testing.T) {
	var b Board
	for x := 0; x < 3; x++ {
		put(&b, x, 0, 0)
	}
	assert.Equal(t, MoveOk, b.Place(3, 0, 0))
}

func TestPlaceOpponentStoneBreaksRun(t *testing.T) {
	var b Board
	put(&b, 0, 0, 0)
	put(&b, 1, 0, 0)
	put(&b, 2, 0, 1) // opponent in the middle
	put(&b, 3, 0, 0)
	assert.Equal(t, MoveOk, b.Place(4, 0, 0))
}

func TestPlaceDrawOnFullBoard(t *testing.T) {
	var b Board
	fillNoRuns(&b)
	b[9][9] = nil

	// The pattern value for (9,9) keeps every run below five.
	assert.Equal(t, MoveDraw, b.Place(9, 9, ((9/2)%2)^(9%2)))
}

func TestPlaceWinTakesPrecedenceOverDraw(t *testing.T) {
	var b Board
	fillNoRuns(&b)
	// Carve a horizontal four ending at the last empty cell.
	for x := 5; x < 9; x++ {
		put(&b, x, 9, 1)
	}
	b[9][9] = nil

	assert.Equal(t, MoveWin, b.Place(9, 9, 1), "a move that wins and fills the board is a win")
}

func TestResetClearsEveryCell(t *testing.T) {
	var b Board
	fillNoRuns(&b)
	b.Reset()
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardHeight; y++ {
			require.Nil(t, b[x][y])
		}
	}
}

func TestSnapshotIsADeepCopy(t *testing.T) {
	var b Board
	put(&b, 2, 3, 1)

	snap := b.Snapshot()
	require.Len(t, snap, BoardWidth)
	require.Len(t, snap[0], BoardHeight)
	require.NotNil(t, snap[2][3])
	assert.Equal(t, 1, *snap[2][3])

	*snap[2][3] = 0
	assert.Equal(t, 1, *b[2][3], "mutating the snapshot must not touch the board")
}
