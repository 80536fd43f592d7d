// internal/game/board.go
package game

// Board dimensions and win condition for a standard room.
const (
	BoardWidth   = 10
	BoardHeight  = 10
	WinningTrail = 5
)

// NoTurn is the sentinel turn value used outside the Action phase.
const NoTurn = -1

// Board is a fixed-size grid of cells. A nil cell is empty; otherwise the cell
// holds the active-player slot (0 or 1) that occupies it.
type Board [BoardWidth][BoardHeight]*int

// MoveResult reports the outcome of a single placement.
type MoveResult int

const (
	MoveOk MoveResult = iota
	MoveErr
	MoveWin
	MoveDraw
)

func (r MoveResult) String() string {
	switch r {
	case MoveOk:
		return "ok"
	case MoveWin:
		return "win"
	case MoveDraw:
		return "draw"
	default:
		return "err"
	}
}

// Place writes slot into (x, y) and classifies the move. It rejects out-of-range
// coordinates and occupied cells. The win check runs before the draw check, so a
// move that completes a five-run on the last empty cell is a win.
func (b *Board) Place(x, y, slot int) MoveResult {
	if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
		return MoveErr
	}
	if b[x][y] != nil {
		return MoveErr
	}
	v := slot
	b[x][y] = &v

	if b.countTrail(x, y) >= WinningTrail {
		return MoveWin
	}
	if b.full() {
		return MoveDraw
	}
	return MoveOk
}

// countTrail returns the longest contiguous run of same-slot cells through
// (x, y), checked along the horizontal, vertical, and both diagonal axes.
// Each axis counts both directions from the placed cell plus the cell itself.
func (b *Board) countTrail(x, y int) int {
	if b[x][y] == nil {
		return 0
	}
	v := *b[x][y]

	traverse := func(dx, dy int) int {
		n := 0
		for i, j := x+dx, y+dy; i >= 0 && i < BoardWidth && j >= 0 && j < BoardHeight; i, j = i+dx, j+dy {
			if b[i][j] == nil || *b[i][j] != v {
				break
			}
			n++
		}
		return n
	}

	axes := [4][2]int{
		{1, 1},  // diagonal
		{1, -1}, // anti-diagonal
		{0, 1},  // vertical
		{1, 0},  // horizontal
	}
	best := 1
	for _, a := range axes {
		run := traverse(a[0], a[1]) + traverse(-a[0], -a[1]) + 1
		if run > best {
			best = run
		}
	}
	return best
}

func (b *Board) full() bool {
	for i := range b {
		for j := range b[i] {
			if b[i][j] == nil {
				return false
			}
		}
	}
	return true
}

// Reset clears every cell, used when a new match starts in the same room.
func (b *Board) Reset() {
	for i := range b {
		for j := range b[i] {
			b[i][j] = nil
		}
	}
}

// Snapshot returns a deep copy of the board as nested slices, suitable for
// serialization and for handing to the persistence layer outside the room lock.
func (b *Board) Snapshot() [][]*int {
	out := make([][]*int, BoardWidth)
	for i := range b {
		row := make([]*int, BoardHeight)
		for j := range b[i] {
			if b[i][j] != nil {
				v := *b[i][j]
				row[j] = &v
			}
		}
		out[i] = row
	}
	return out
}
