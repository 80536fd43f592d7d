// internal/game/state_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMemberElectsFirstCreator(t *testing.T) {
	s := NewState()

	assert.Equal(t, 0, s.AddMember("alice"))
	assert.Equal(t, 1, s.AddMember("bob"))
	assert.Equal(t, "alice", s.RoomCreator)
	assert.True(t, s.IsRoomCreator("alice"))
	assert.False(t, s.IsRoomCreator("bob"))

	// Re-adding an existing member returns its original handle.
	assert.Equal(t, 0, s.AddMember("alice"))
	assert.Equal(t, []string{"alice", "bob"}, s.Members)
}

func TestRemoveMemberReelectsCreator(t *testing.T) {
	s := NewState()
	s.AddMember("alice")
	s.AddMember("bob")
	s.AddMember("carol")

	s.RemoveMember("alice")
	assert.Equal(t, []string{"bob", "carol"}, s.Members)
	assert.Equal(t, "bob", s.RoomCreator, "creator role passes to the first remaining member")

	s.RemoveMember("bob")
	s.RemoveMember("carol")
	assert.Empty(t, s.Members)
	assert.Equal(t, "", s.RoomCreator)
}

func TestRemoveMemberStripsAllLists(t *testing.T) {
	s := NewState()
	s.AddMember("alice")
	s.AddMember("bob")
	s.AddMember("carol")
	require.True(t, s.StepUp("alice"))
	require.True(t, s.StepUp("bob"))
	require.True(t, s.StepUp("carol"))
	require.True(t, s.StartGame("alice"))

	s.RemoveMember("bob")
	assert.False(t, s.IsMember("bob"))
	assert.NotContains(t, s.PlayerQueue, "bob")
	assert.NotContains(t, s.ActivePlayers, "bob")
	// Phase is untouched; ending the match is the session layer's job.
	assert.Equal(t, PhaseAction, s.Phase)
}

func TestStepUpStepDown(t *testing.T) {
	s := NewState()
	s.AddMember("alice")

	assert.False(t, s.StepUp("mallory"), "non-members cannot queue")
	assert.True(t, s.StepUp("alice"))
	assert.False(t, s.StepUp("alice"), "queueing twice fails")
	assert.True(t, s.StepDown("alice"))
	assert.False(t, s.StepDown("alice"), "stepping down while absent fails")
}

func TestStartGameGuards(t *testing.T) {
	s := NewState()
	s.AddMember("alice")
	s.AddMember("bob")
	s.AddMember("carol")

	assert.False(t, s.StartGame("alice"), "needs two queued players")

	require.True(t, s.StepUp("bob"))
	require.True(t, s.StepUp("carol"))
	assert.False(t, s.StartGame("bob"), "only the creator can start")

	require.True(t, s.StartGame("alice"))
	assert.Equal(t, PhaseAction, s.Phase)
	assert.Equal(t, 0, s.CurrentTurn)
}

func TestStartGameConsumesQueueFIFO(t *testing.T) {
	s := NewState()
	for _, m := range []string{"alice", "bob", "carol", "dave"} {
		s.AddMember(m)
		require.True(t, s.StepUp(m))
	}

	require.True(t, s.StartGame("alice"))
	assert.Equal(t, []string{"alice", "bob"}, s.ActivePlayers)
	assert.Equal(t, []string{"carol", "dave"}, s.PlayerQueue)

	// The board starts empty.
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardHeight; y++ {
			require.Nil(t, s.Board[x][y])
		}
	}
}

func TestPlaceEnforcesTurnAndMembership(t *testing.T) {
	s := NewState()
	s.AddMember("alice")
	s.AddMember("bob")
	s.AddMember("carol")
	require.True(t, s.StepUp("alice"))
	require.True(t, s.StepUp("bob"))
	require.True(t, s.StartGame("alice"))

	assert.Equal(t, MoveErr, s.Place(0, 0, "carol"), "spectators cannot place")
	assert.Equal(t, MoveErr, s.Place(0, 0, "bob"), "not bob's turn")

	assert.Equal(t, MoveOk, s.Place(0, 0, "alice"))
	assert.Equal(t, 1, s.CurrentTurn)
	assert.Equal(t, MoveErr, s.Place(0, 0, "bob"), "occupied cell")
	assert.Equal(t, MoveOk, s.Place(1, 1, "bob"))
	assert.Equal(t, 0, s.CurrentTurn)
}

func TestPlaceOutsideActionPhaseFails(t *testing.T) {
	s := NewState()
	s.AddMember("alice")
	assert.Equal(t, MoveErr, s.Place(0, 0, "alice"))
}

// TestWinningRowScenario walks a full match: alice wins with five on row 0
// while carol watches.
func TestWinningRowScenario(t *testing.T) {
	s := NewState()
	s.AddMember("alice")
	s.AddMember("bob")
	s.AddMember("carol")
	require.True(t, s.StepUp("alice"))
	require.True(t, s.StepUp("bob"))
	require.True(t, s.StartGame("alice"))
	require.Equal(t, []string{"alice", "bob"}, s.ActivePlayers)

	for i := 0; i < 4; i++ {
		require.Equal(t, MoveOk, s.Place(i, 0, "alice"))
		require.Equal(t, MoveOk, s.Place(i, 1, "bob"))
	}
	assert.Equal(t, MoveWin, s.Place(4, 0, "alice"))
	assert.Equal(t, PhaseScoreboard, s.Phase)
	assert.Equal(t, NoTurn, s.CurrentTurn)

	s.FinishMatch()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Empty(t, s.ActivePlayers)
	assert.Equal(t, "", s.GameID)
}

func TestOpponent(t *testing.T) {
	s := NewState()
	s.AddMember("alice")
	s.AddMember("bob")
	require.True(t, s.StepUp("alice"))
	require.True(t, s.StepUp("bob"))
	require.True(t, s.StartGame("alice"))

	opp, ok := s.Opponent("alice")
	require.True(t, ok)
	assert.Equal(t, "bob", opp)

	opp, ok = s.Opponent("bob")
	require.True(t, ok)
	assert.Equal(t, "alice", opp)

	_, ok = s.Opponent("carol")
	assert.False(t, ok)
}
