// internal/game/state.go
package game

// Phase is the room's coarse state.
type Phase int

const (
	// PhaseReady means no active match; members may volunteer for the next one.
	PhaseReady Phase = iota
	// PhaseAction means a two-player match is in progress.
	PhaseAction
	// PhaseScoreboard means a match just ended; the session layer reports the
	// outcome and returns the room to PhaseReady.
	PhaseScoreboard
)

func (p Phase) String() string {
	switch p {
	case PhaseAction:
		return "action"
	case PhaseScoreboard:
		return "scoreboard"
	default:
		return "ready"
	}
}

// State is the mutable room game state. It is owned by exactly one room.Room
// and must only be accessed while holding that room's lock; State itself
// carries no synchronization. Every mutating operation returns a result
// instead of panicking so callers can log and skip invalid requests.
type State struct {
	Board       Board
	CurrentTurn int

	// RoomCreator is the first member to join, re-elected to the next remaining
	// member when the creator leaves. Empty only when the room has no members.
	RoomCreator string

	// Members holds every connected identity in join order.
	Members []string
	// PlayerQueue holds identities that volunteered to play next, FIFO.
	PlayerQueue []string
	// ActivePlayers holds exactly the two identities currently playing, and is
	// empty outside the Action phase.
	ActivePlayers []string

	Phase Phase

	// GameID correlates the current match to its persisted record, or is empty.
	GameID string
}

// NewState returns an empty room in the Ready phase.
func NewState() *State {
	return &State{CurrentTurn: NoTurn}
}

// AddMember appends the identity to the member list if absent and returns its
// positional handle. The first member ever becomes the room creator.
func (s *State) AddMember(member string) int {
	for i, m := range s.Members {
		if m == member {
			return i
		}
	}
	if s.RoomCreator == "" {
		s.RoomCreator = member
	}
	s.Members = append(s.Members, member)
	return len(s.Members) - 1
}

// RemoveMember strips the identity from members, the player queue, and the
// active players. If the removed identity was the room creator, the first
// remaining member inherits the role. The phase is left untouched; ending an
// in-progress match for a departing active player is the caller's job.
func (s *State) RemoveMember(member string) {
	s.Members = remove(s.Members, member)
	s.PlayerQueue = remove(s.PlayerQueue, member)
	s.ActivePlayers = remove(s.ActivePlayers, member)

	if s.RoomCreator == member {
		s.RoomCreator = ""
		if len(s.Members) > 0 {
			s.RoomCreator = s.Members[0]
		}
	}
}

// StepUp enqueues the member to play next. It fails if the identity is not a
// member or is already queued. Queueing is allowed in any phase and has no
// effect on an in-progress match.
func (s *State) StepUp(member string) bool {
	if !s.IsMember(member) {
		return false
	}
	for _, m := range s.PlayerQueue {
		if m == member {
			return false
		}
	}
	s.PlayerQueue = append(s.PlayerQueue, member)
	return true
}

// StepDown removes the member from the player queue, failing if absent.
func (s *State) StepDown(member string) bool {
	for _, m := range s.PlayerQueue {
		if m == member {
			s.PlayerQueue = remove(s.PlayerQueue, member)
			return true
		}
	}
	return false
}

// StartGame begins a match. Only the room creator may start, and at least two
// identities must be queued. The first two queued identities become the active
// players, the board resets, and the first active player gets the turn.
func (s *State) StartGame(member string) bool {
	if s.RoomCreator == "" || member != s.RoomCreator {
		return false
	}
	if len(s.PlayerQueue) < 2 {
		return false
	}
	s.ActivePlayers = []string{s.PlayerQueue[0], s.PlayerQueue[1]}
	s.PlayerQueue = s.PlayerQueue[2:]
	s.Board.Reset()
	s.CurrentTurn = 0
	s.Phase = PhaseAction
	return true
}

// Place applies one move for the given identity. It fails if the identity is
// not an active player, if it is not that player's turn, or if the board
// rejects the cell. A win or draw moves the room to the Scoreboard phase and
// clears the turn; an ordinary move passes the turn to the other player.
func (s *State) Place(x, y int, member string) MoveResult {
	slot := -1
	for i, p := range s.ActivePlayers {
		if p == member {
			slot = i
			break
		}
	}
	if slot < 0 {
		return MoveErr
	}
	if s.Phase != PhaseAction || slot != s.CurrentTurn {
		return MoveErr
	}

	switch res := s.Board.Place(x, y, slot); res {
	case MoveWin, MoveDraw:
		s.CurrentTurn = NoTurn
		s.Phase = PhaseScoreboard
		return res
	case MoveOk:
		s.CurrentTurn = (s.CurrentTurn + 1) % 2
		return MoveOk
	default:
		return MoveErr
	}
}

// FinishMatch returns the room to Ready after the session layer has reported
// the match outcome, clearing the active players and the correlation handle.
func (s *State) FinishMatch() {
	s.Phase = PhaseReady
	s.CurrentTurn = NoTurn
	s.ActivePlayers = nil
	s.GameID = ""
}

// Opponent returns the other active player, or false when the identity is not
// an active player or has no opponent left.
func (s *State) Opponent(member string) (string, bool) {
	if len(s.ActivePlayers) != 2 {
		return "", false
	}
	switch member {
	case s.ActivePlayers[0]:
		return s.ActivePlayers[1], true
	case s.ActivePlayers[1]:
		return s.ActivePlayers[0], true
	}
	return "", false
}

// IsMember reports whether the identity is currently in the room.
func (s *State) IsMember(member string) bool {
	for _, m := range s.Members {
		if m == member {
			return true
		}
	}
	return false
}

// IsRoomCreator reports whether the identity currently holds the creator role.
func (s *State) IsRoomCreator(member string) bool {
	return s.RoomCreator != "" && member == s.RoomCreator
}

// IsActivePlayer reports whether the identity is one of the two players in the
// current match.
func (s *State) IsActivePlayer(member string) bool {
	for _, p := range s.ActivePlayers {
		if p == member {
			return true
		}
	}
	return false
}

// MemberAt resolves a positional handle to an identity.
func (s *State) MemberAt(idx int) (string, bool) {
	if idx < 0 || idx >= len(s.Members) {
		return "", false
	}
	return s.Members[idx], true
}

func remove(list []string, member string) []string {
	out := list[:0]
	for _, m := range list {
		if m != member {
			out = append(out, m)
		}
	}
	return out
}
