// internal/protocol/messages.go

// Package protocol defines the tagged wire messages exchanged over a room
// websocket. Every frame is a single JSON object with an explicit "type"
// discriminator. Client decoding is tolerant: anything that does not parse
// into a known variant becomes Unknown and produces no server reaction.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Client message types.
const (
	TypeStepUp     = "StepUp"
	TypeStepDown   = "StepDown"
	TypeStartGame  = "StartGame"
	TypePlace      = "Place"
	TypeChat       = "Chat"
	TypeKickMember = "KickMember"
	TypeRegister   = "Register"
	TypeUnknown    = "Unknown"
)

// Server message types.
const (
	TypeJoinedRoom      = "JoinedRoom"
	TypeRoomStateUpdate = "RoomStateUpdate"
	TypeGameStarted     = "GameStarted"
	TypeGameState       = "GameState"
	TypeGameEnd         = "GameEnd"
)

// ClientMessage is a decoded client frame. Only the fields relevant to Type
// carry meaning.
type ClientMessage struct {
	Type     string
	X, Y     int    // Place
	Content  string // Chat
	MemberID int    // KickMember: positional handle into the member list
	Name     string // Register
}

// rawClient mirrors the wire shape with optional fields so that a variant with
// a missing required field is rejected rather than defaulted.
type rawClient struct {
	Type     string  `json:"type"`
	X        *int    `json:"x,omitempty"`
	Y        *int    `json:"y,omitempty"`
	Content  *string `json:"content,omitempty"`
	MemberID *int    `json:"member_id,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// DecodeClient parses one inbound frame. It never returns an error; malformed
// input, an unrecognized discriminator, or a missing required field all decode
// to the Unknown variant.
func DecodeClient(data []byte) ClientMessage {
	var raw rawClient
	if err := json.Unmarshal(data, &raw); err != nil {
		return ClientMessage{Type: TypeUnknown}
	}

	switch raw.Type {
	case TypeStepUp, TypeStepDown, TypeStartGame:
		return ClientMessage{Type: raw.Type}
	case TypePlace:
		if raw.X == nil || raw.Y == nil {
			return ClientMessage{Type: TypeUnknown}
		}
		return ClientMessage{Type: TypePlace, X: *raw.X, Y: *raw.Y}
	case TypeChat:
		if raw.Content == nil {
			return ClientMessage{Type: TypeUnknown}
		}
		return ClientMessage{Type: TypeChat, Content: *raw.Content}
	case TypeKickMember:
		if raw.MemberID == nil {
			return ClientMessage{Type: TypeUnknown}
		}
		return ClientMessage{Type: TypeKickMember, MemberID: *raw.MemberID}
	case TypeRegister:
		if raw.Name == nil {
			return ClientMessage{Type: TypeUnknown}
		}
		return ClientMessage{Type: TypeRegister, Name: *raw.Name}
	default:
		return ClientMessage{Type: TypeUnknown}
	}
}

// ServerMessage is implemented by every outbound message variant.
type ServerMessage interface {
	messageType() string
}

// JoinedRoom is sent only to the newly joined connection, before anything else.
type JoinedRoom struct {
	Type          string   `json:"type"`
	YourID        int      `json:"your_id"`
	IsRoomCreator bool     `json:"is_room_creator"`
	RoomCreator   string   `json:"room_creator"`
	Members       []string `json:"members"`
	PlayerQueue   []string `json:"player_queue"`
}

// RoomStateUpdate is broadcast whenever membership or the player queue changes.
type RoomStateUpdate struct {
	Type        string   `json:"type"`
	Members     []string `json:"members"`
	PlayerQueue []string `json:"player_queue"`
	RoomCreator string   `json:"room_creator"`
}

// GameStarted announces the two active players of a new match.
type GameStarted struct {
	Type    string   `json:"type"`
	Players []string `json:"players"`
}

// GameStateMsg carries the board and whose turn it is. Turn is -1 outside the
// Action phase.
type GameStateMsg struct {
	Type  string   `json:"type"`
	Board [][]*int `json:"board"`
	Turn  int      `json:"turn"`
}

// GameEnd reports the match outcome. Winner is empty on a draw; the winning
// coordinates are zero when the match ended by disconnect.
type GameEnd struct {
	Type    string `json:"type"`
	Winner  string `json:"winner"`
	WinnerX int    `json:"winner_x"`
	WinnerY int    `json:"winner_y"`
}

// Chat is a broadcast chat line; Who is "system" for server notices.
type Chat struct {
	Type    string `json:"type"`
	Who     string `json:"who"`
	Content string `json:"content"`
}

func (JoinedRoom) messageType() string      { return TypeJoinedRoom }
func (RoomStateUpdate) messageType() string { return TypeRoomStateUpdate }
func (GameStarted) messageType() string     { return TypeGameStarted }
func (GameStateMsg) messageType() string    { return TypeGameState }
func (GameEnd) messageType() string         { return TypeGameEnd }
func (Chat) messageType() string            { return TypeChat }

// NewJoinedRoom fills in the discriminator.
func NewJoinedRoom(yourID int, isCreator bool, creator string, members, queue []string) JoinedRoom {
	return JoinedRoom{
		Type:          TypeJoinedRoom,
		YourID:        yourID,
		IsRoomCreator: isCreator,
		RoomCreator:   creator,
		Members:       members,
		PlayerQueue:   queue,
	}
}

// NewRoomStateUpdate fills in the discriminator.
func NewRoomStateUpdate(members, queue []string, creator string) RoomStateUpdate {
	return RoomStateUpdate{
		Type:        TypeRoomStateUpdate,
		Members:     members,
		PlayerQueue: queue,
		RoomCreator: creator,
	}
}

// NewGameStarted fills in the discriminator.
func NewGameStarted(players []string) GameStarted {
	return GameStarted{Type: TypeGameStarted, Players: players}
}

// NewGameState fills in the discriminator.
func NewGameState(board [][]*int, turn int) GameStateMsg {
	return GameStateMsg{Type: TypeGameState, Board: board, Turn: turn}
}

// NewGameEnd fills in the discriminator.
func NewGameEnd(winner string, x, y int) GameEnd {
	return GameEnd{Type: TypeGameEnd, Winner: winner, WinnerX: x, WinnerY: y}
}

// NewChat fills in the discriminator.
func NewChat(who, content string) Chat {
	return Chat{Type: TypeChat, Who: who, Content: content}
}

// SystemChat is a server-originated notice.
func SystemChat(content string) Chat {
	return NewChat("system", content)
}

// EncodeServer serializes one outbound frame.
func EncodeServer(m ServerMessage) ([]byte, error) {
	return json.Marshal(m)
}

// DecodeServer parses an outbound frame back into its concrete variant. The
// server never consumes its own messages; this exists for clients and tests.
func DecodeServer(data []byte) (ServerMessage, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	var (
		m   ServerMessage
		err error
	)
	switch envelope.Type {
	case TypeJoinedRoom:
		var v JoinedRoom
		err = json.Unmarshal(data, &v)
		m = v
	case TypeRoomStateUpdate:
		var v RoomStateUpdate
		err = json.Unmarshal(data, &v)
		m = v
	case TypeGameStarted:
		var v GameStarted
		err = json.Unmarshal(data, &v)
		m = v
	case TypeGameState:
		var v GameStateMsg
		err = json.Unmarshal(data, &v)
		m = v
	case TypeGameEnd:
		var v GameEnd
		err = json.Unmarshal(data, &v)
		m = v
	case TypeChat:
		var v Chat
		err = json.Unmarshal(data, &v)
		m = v
	default:
		return nil, fmt.Errorf("unknown server message type %q", envelope.Type)
	}
	return m, err
}
