// internal/room/room.go

// Package room owns the shared per-room state and its broadcast fan-out. Each
// Room guards one game.State with a single mutex; sessions publish serialized
// server messages while holding that lock, so every subscriber observes room
// broadcasts in the order the mutations were applied.
package room

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/pentarow/gomoku/internal/game"
	"github.com/pentarow/gomoku/internal/protocol"
)

// subscriberBuffer bounds how far a slow connection may lag before frames are
// dropped for it. Drops are logged; the connection's own write failure is what
// eventually tears the session down.
const subscriberBuffer = 32

// Room is an isolated, named instance of shared game state plus its own
// broadcast channel. Rooms are created on first reference and live for the
// process lifetime.
type Room struct {
	Name string

	// Mu protects State and the subscriber set. Callers of the ...Unsafe
	// methods must hold it.
	Mu    sync.Mutex
	State *game.State

	subscribers map[*Subscriber]struct{}
}

// Subscriber is one connection's tap on the room broadcast channel. Frames
// arrive on Out already serialized.
type Subscriber struct {
	Out chan []byte

	room *Room
	once sync.Once
}

// New creates an empty room in the Ready phase.
func New(name string) *Room {
	return &Room{
		Name:        name,
		State:       game.NewState(),
		subscribers: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new tap on the room's broadcast channel.
func (r *Room) Subscribe() *Subscriber {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	sub := &Subscriber{Out: make(chan []byte, subscriberBuffer), room: r}
	r.subscribers[sub] = struct{}{}
	return sub
}

// Close removes the subscriber from the room and closes its channel. Safe to
// call more than once.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.room.Mu.Lock()
		delete(s.room.subscribers, s)
		s.room.Mu.Unlock()
		close(s.Out)
	})
}

// Publish serializes msg and fans it out to every subscriber.
func (r *Room) Publish(msg protocol.ServerMessage) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.PublishUnsafe(msg)
}

// PublishUnsafe serializes msg and fans it out. Assumes the lock is held. The
// per-subscriber send never blocks: a subscriber whose buffer is full has the
// frame dropped and logged.
func (r *Room) PublishUnsafe(msg protocol.ServerMessage) {
	data, err := protocol.EncodeServer(msg)
	if err != nil {
		log.Warnf("room %s: failed to encode broadcast: %v", r.Name, err)
		return
	}
	for sub := range r.subscribers {
		select {
		case sub.Out <- data:
		default:
			log.Warnf("room %s: subscriber buffer full, dropped frame", r.Name)
		}
	}
}

// StateUpdateUnsafe builds a RoomStateUpdate from the current state. Assumes
// the lock is held; the slices are copied so the message stays stable after
// the lock is released.
func (r *Room) StateUpdateUnsafe() protocol.RoomStateUpdate {
	return protocol.NewRoomStateUpdate(
		copyList(r.State.Members),
		copyList(r.State.PlayerQueue),
		r.State.RoomCreator,
	)
}

// JoinedRoomUnsafe builds the join unicast for a member that was just added at
// the given positional handle. Assumes the lock is held.
func (r *Room) JoinedRoomUnsafe(member string, yourID int) protocol.JoinedRoom {
	return protocol.NewJoinedRoom(
		yourID,
		r.State.IsRoomCreator(member),
		r.State.RoomCreator,
		copyList(r.State.Members),
		copyList(r.State.PlayerQueue),
	)
}

// GameStateUnsafe builds a GameState frame from the current board and turn.
// Assumes the lock is held.
func (r *Room) GameStateUnsafe() protocol.GameStateMsg {
	return protocol.NewGameState(r.State.Board.Snapshot(), r.State.CurrentTurn)
}

func copyList(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
