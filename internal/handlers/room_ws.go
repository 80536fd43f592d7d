// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pentarow/gomoku/internal/auth"
	"github.com/pentarow/gomoku/internal/game"
	"github.com/pentarow/gomoku/internal/protocol"
	"github.com/pentarow/gomoku/internal/room"
)

// defaultDisplayName is the chat name used until the client registers one.
const defaultDisplayName = "someone"

const (
	writeTimeout   = 5 * time.Second
	persistTimeout = 10 * time.Second
	pingInterval   = 30 * time.Second
)

// RoomServer owns the room registry and the persistence collaborator, and is
// threaded explicitly into the websocket accept path.
type RoomServer struct {
	Registry *room.Registry
	Recorder GameRecorder
	Logger   *logrus.Logger
}

// NewRoomServer builds a server around a fresh registry.
func NewRoomServer(logger *logrus.Logger, recorder GameRecorder) *RoomServer {
	return &RoomServer{
		Registry: room.NewRegistry(),
		Recorder: recorder,
		Logger:   logger,
	}
}

// matchOutcome carries everything the persistence collaborator needs, captured
// under the room lock so the calls themselves can run outside it.
type matchOutcome struct {
	gameID string
	board  [][]*int
	winner string // empty for a draw
}

// RoomWSHandler upgrades the connection for /rooms/ws/{room_name}, resolves
// the caller's identity, joins the room, and runs the paired session loops.
//
// Identity resolution order: a valid ?token= wins; an invalid token rejects
// the connection before upgrade; otherwise ?user= is taken as-is; otherwise a
// guest name is generated.
func RoomWSHandler(s *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomName := strings.Trim(strings.TrimPrefix(r.URL.Path, "/rooms/ws/"), "/")
		if roomName == "" {
			http.Error(w, "missing room name (/rooms/ws/{room_name})", http.StatusBadRequest)
			return
		}

		identity, err := resolveIdentity(r)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"room"},
			OriginPatterns: []string{"*"}, // Adjust in production.
		})
		if err != nil {
			s.Logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "room" {
			c.Close(websocket.StatusPolicyViolation, "client must speak the room subprotocol")
			return
		}

		rm := s.Registry.GetOrCreate(roomName)
		s.Logger.Infof("%s (%s) connecting to room %s", identity, r.RemoteAddr, roomName)

		// Register as a member and unicast JoinedRoom before anything else.
		rm.Mu.Lock()
		yourID := rm.State.AddMember(identity)
		joined := rm.JoinedRoomUnsafe(identity, yourID)
		rm.Mu.Unlock()

		if err := writeMessage(r.Context(), c, joined); err != nil {
			s.Logger.Warnf("failed to send JoinedRoom to %s: %v", identity, err)
			rm.Mu.Lock()
			rm.State.RemoveMember(identity)
			rm.Mu.Unlock()
			return
		}

		sub := rm.Subscribe()
		rm.Mu.Lock()
		rm.PublishUnsafe(rm.StateUpdateUnsafe())
		rm.Mu.Unlock()

		// The pumps are linked through ctx: whichever exits first cancels the
		// sibling, and the cleanup below runs exactly once per session.
		ctx, cancel := context.WithCancel(r.Context())
		go s.writePump(ctx, cancel, c, sub)
		s.readPump(ctx, c, rm, identity)
		cancel()

		sub.Close()
		s.handleDisconnect(rm, identity)
		s.Logger.Infof("%s disconnected from room %s", identity, roomName)
	}
}

// resolveIdentity maps the connect-time query parameters to a member identity.
func resolveIdentity(r *http.Request) (string, error) {
	q := r.URL.Query()
	if token := q.Get("token"); token != "" {
		id, err := auth.AuthenticateJWT(token)
		if err != nil {
			return "", err
		}
		return id.Email, nil
	}
	if user := q.Get("user"); user != "" {
		return user, nil
	}
	return fmt.Sprintf("Guest_%d", time.Now().UnixMilli()%10000), nil
}

func writeMessage(ctx context.Context, c *websocket.Conn, msg protocol.ServerMessage) error {
	data, err := protocol.EncodeServer(msg)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.Write(writeCtx, websocket.MessageText, data)
}

// writePump forwards every frame published to the subscriber onto the socket.
// It exits on socket failure, channel closure, or context cancellation, and
// cancels the session either way.
func (s *RoomServer) writePump(ctx context.Context, cancel context.CancelFunc, c *websocket.Conn, sub *room.Subscriber) {
	defer cancel()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-sub.Out:
			if !ok {
				return
			}
			writeCtx, wcancel := context.WithTimeout(ctx, writeTimeout)
			err := c.Write(writeCtx, websocket.MessageText, data)
			wcancel()
			if err != nil {
				s.Logger.Warnf("websocket write failed: %v", err)
				return
			}
		case <-ticker.C:
			pingCtx, pcancel := context.WithTimeout(ctx, writeTimeout)
			err := c.Ping(pingCtx)
			pcancel()
			if err != nil {
				s.Logger.Warnf("ping failed, assuming disconnect: %v", err)
				return
			}
		}
	}
}

// readPump reads and dispatches client frames until the socket closes or the
// context is cancelled.
func (s *RoomServer) readPump(ctx context.Context, c *websocket.Conn, rm *room.Room, identity string) {
	displayName := defaultDisplayName

	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				s.Logger.Warnf("read error for %s in room %s: %v", identity, rm.Name, err)
			}
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		msg := protocol.DecodeClient(data)
		switch msg.Type {
		case protocol.TypeStepUp:
			rm.Mu.Lock()
			if rm.State.StepUp(identity) {
				rm.PublishUnsafe(rm.StateUpdateUnsafe())
			}
			rm.Mu.Unlock()

		case protocol.TypeStepDown:
			rm.Mu.Lock()
			if rm.State.StepDown(identity) {
				rm.PublishUnsafe(rm.StateUpdateUnsafe())
			}
			rm.Mu.Unlock()

		case protocol.TypeStartGame:
			s.handleStartGame(ctx, rm, identity)

		case protocol.TypePlace:
			s.handlePlace(rm, identity, msg.X, msg.Y)

		case protocol.TypeKickMember:
			s.handleKick(rm, identity, msg.MemberID)

		case protocol.TypeChat:
			rm.Publish(protocol.NewChat(displayName, msg.Content))

		case protocol.TypeRegister:
			displayName = msg.Name
			s.Logger.Infof("%s registered display name %q in room %s", identity, displayName, rm.Name)

		default:
			// Unknown frames produce no reaction.
		}
	}
}

// handleStartGame starts a match and records it. The create_match call runs
// outside the lock; the correlation handle is written back only while the
// match it belongs to is still running.
func (s *RoomServer) handleStartGame(ctx context.Context, rm *room.Room, identity string) {
	rm.Mu.Lock()
	if !rm.State.StartGame(identity) {
		rm.Mu.Unlock()
		s.Logger.Debugf("start_game by %s in room %s rejected", identity, rm.Name)
		return
	}
	players := []string{rm.State.ActivePlayers[0], rm.State.ActivePlayers[1]}
	rm.Mu.Unlock()

	createCtx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	gameID, err := s.Recorder.CreateGame(createCtx, players[0], players[1])
	cancel()
	if err != nil {
		s.Logger.Warnf("failed to create match record for room %s: %v", rm.Name, err)
	}

	rm.Mu.Lock()
	if gameID != "" && rm.State.Phase == game.PhaseAction {
		rm.State.GameID = gameID
	}
	rm.PublishUnsafe(protocol.NewGameStarted(players))
	rm.PublishUnsafe(rm.GameStateUnsafe())
	rm.Mu.Unlock()
}

// handlePlace applies one move. Rule violations produce no broadcast; the
// client treats the absence of a state update as rejection.
func (s *RoomServer) handlePlace(rm *room.Room, identity string, x, y int) {
	var outcome *matchOutcome

	rm.Mu.Lock()
	switch res := rm.State.Place(x, y, identity); res {
	case game.MoveOk:
		rm.PublishUnsafe(rm.GameStateUnsafe())

	case game.MoveWin:
		rm.PublishUnsafe(rm.GameStateUnsafe())
		outcome = &matchOutcome{
			gameID: rm.State.GameID,
			board:  rm.State.Board.Snapshot(),
			winner: identity,
		}
		rm.PublishUnsafe(protocol.NewGameEnd(identity, x, y))
		rm.State.FinishMatch()
		rm.PublishUnsafe(rm.StateUpdateUnsafe())

	case game.MoveDraw:
		rm.PublishUnsafe(rm.GameStateUnsafe())
		outcome = &matchOutcome{
			gameID: rm.State.GameID,
			board:  rm.State.Board.Snapshot(),
		}
		rm.PublishUnsafe(protocol.NewGameEnd("", x, y))
		rm.PublishUnsafe(protocol.SystemChat("the game ended in a draw"))
		rm.State.FinishMatch()
		rm.PublishUnsafe(rm.StateUpdateUnsafe())

	default:
		s.Logger.Debugf("rejected move (%d,%d) by %s in room %s", x, y, identity, rm.Name)
	}
	rm.Mu.Unlock()

	if outcome != nil {
		go s.persistOutcome(rm.Name, outcome)
	}
}

// handleKick removes the target member on behalf of the room creator. Kicking
// an active player mid-match resolves the match as a default win first, so the
// room never stays in Action with fewer than two players.
func (s *RoomServer) handleKick(rm *room.Room, identity string, memberID int) {
	var outcome *matchOutcome

	rm.Mu.Lock()
	if !rm.State.IsRoomCreator(identity) {
		rm.Mu.Unlock()
		return
	}
	target, ok := rm.State.MemberAt(memberID)
	if !ok {
		rm.Mu.Unlock()
		return
	}
	outcome = s.resolveDefaultWinUnsafe(rm, target)
	rm.State.RemoveMember(target)
	rm.PublishUnsafe(protocol.SystemChat(fmt.Sprintf("%s was kicked from the room", target)))
	rm.PublishUnsafe(rm.StateUpdateUnsafe())
	rm.Mu.Unlock()

	if outcome != nil {
		go s.persistOutcome(rm.Name, outcome)
	}
}

// handleDisconnect is the exactly-once cleanup path for a session. A departing
// active player forfeits, then the member is removed unconditionally.
func (s *RoomServer) handleDisconnect(rm *room.Room, identity string) {
	rm.Mu.Lock()
	outcome := s.resolveDefaultWinUnsafe(rm, identity)
	rm.State.RemoveMember(identity)
	rm.PublishUnsafe(rm.StateUpdateUnsafe())
	rm.PublishUnsafe(protocol.SystemChat(fmt.Sprintf("%s has left the room", identity)))
	rm.Mu.Unlock()

	if outcome != nil {
		go s.persistOutcome(rm.Name, outcome)
	}
}

// resolveDefaultWinUnsafe ends the current match by default win for the
// remaining player when leaving is an active player in the Action phase.
// Assumes the lock is held. Returns the outcome to persist, or nil if no
// match had to be resolved.
func (s *RoomServer) resolveDefaultWinUnsafe(rm *room.Room, leaving string) *matchOutcome {
	if rm.State.Phase != game.PhaseAction || !rm.State.IsActivePlayer(leaving) {
		return nil
	}
	winner, ok := rm.State.Opponent(leaving)
	if !ok {
		return nil
	}

	outcome := &matchOutcome{
		gameID: rm.State.GameID,
		board:  rm.State.Board.Snapshot(),
		winner: winner,
	}
	rm.PublishUnsafe(protocol.NewGameEnd(winner, 0, 0))
	rm.PublishUnsafe(protocol.SystemChat(fmt.Sprintf("%s wins by default - opponent left the game", winner)))
	rm.State.FinishMatch()
	rm.PublishUnsafe(rm.StateUpdateUnsafe())
	return outcome
}

// persistOutcome reports a finished match to the collaborator. Failures are
// logged and never retried; the room has already moved on.
func (s *RoomServer) persistOutcome(roomName string, outcome *matchOutcome) {
	if outcome.gameID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.Recorder.RecordBoard(ctx, outcome.gameID, outcome.board); err != nil {
		s.Logger.Warnf("failed to record final board for game %s (room %s): %v", outcome.gameID, roomName, err)
	}
	if err := s.Recorder.EndGame(ctx, outcome.gameID, outcome.winner); err != nil {
		s.Logger.Warnf("failed to complete game %s (room %s): %v", outcome.gameID, roomName, err)
	}
}
