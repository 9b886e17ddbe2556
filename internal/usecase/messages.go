package usecase

import (
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// Outbound message schemas. Every server-to-client payload is a flat JSON
// object carrying a required type tag.

type errorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newErrorMsg(message string) errorMsg {
	return errorMsg{Type: "error", Message: message}
}

type playerAssignmentMsg struct {
	Type   string `json:"type"`
	Player *int   `json:"player"`
}

func newPlayerAssignmentMsg(seat *int) playerAssignmentMsg {
	return playerAssignmentMsg{Type: "playerAssignment", Player: seat}
}

type roomSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Occupants int    `json:"occupants"`
	Capacity  int    `json:"capacity"`
	CreatedAt int64  `json:"createdAt"`
}

type lobbyUpdateMsg struct {
	Type  string        `json:"type"`
	Rooms []roomSummary `json:"rooms"`
}

type roomJoinedMsg struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId"`
	Name      string `json:"name"`
	Occupants int    `json:"occupants"`
	IsHost    bool   `json:"isHost"`
	Created   bool   `json:"created"`
}

type roomLeftMsg struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

type roomClosedMsg struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

type simpleMsg struct {
	Type string `json:"type"`
}

type gameStartMsg struct {
	Type     string `json:"type"`
	YouStart bool   `json:"youStart"`
}

type shipDetail struct {
	Name        string              `json:"name"`
	Coordinates []entity.Coordinate `json:"coordinates"`
}

type fireReportMsg struct {
	Type     string      `json:"type"` // fireResult to the shooter, opponentFire to the other side
	X        int         `json:"x"`
	Y        int         `json:"y"`
	Outcome  string      `json:"outcome"`
	Ship     *shipDetail `json:"ship"`
	NextTurn *int        `json:"nextTurn"`
}

type gameOverMsg struct {
	Type   string `json:"type"`
	Result string `json:"result"`
}

type chatContextMsg struct {
	Type      string   `json:"type"`
	Scope     string   `json:"scope"`
	RoomID    string   `json:"roomId,omitempty"`
	RoomName  string   `json:"roomName,omitempty"`
	Available []string `json:"available"`
}

type chatHistoryMsg struct {
	Type     string               `json:"type"`
	Scope    string               `json:"scope"`
	RoomID   string               `json:"roomId,omitempty"`
	Messages []entity.ChatMessage `json:"messages"`
}

type chatMessageMsg struct {
	Type    string             `json:"type"`
	Scope   string             `json:"scope"`
	RoomID  string             `json:"roomId,omitempty"`
	Message entity.ChatMessage `json:"message"`
}

type chatErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newChatErrorMsg(message string) chatErrorMsg {
	return chatErrorMsg{Type: "chatError", Message: message}
}

type profileMsg struct {
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error,omitempty"`
}

type leaderboardDataMsg struct {
	Type string                     `json:"type"`
	PVP  []*entity.LeaderboardEntry `json:"pvp"`
	Solo []*entity.LeaderboardEntry `json:"solo"`
}

type leaderboardErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type musicNote struct {
	Label    string  `json:"label"`
	Semitone float64 `json:"semitone"`
}

type musicState struct {
	Pattern     [][]bool    `json:"pattern"`
	Steps       int         `json:"steps"`
	Notes       []musicNote `json:"notes"`
	Tempo       float64     `json:"tempo"`
	Author      string      `json:"author"`
	ShareID     string      `json:"shareId,omitempty"`
	ActiveCount int         `json:"activeCount"`
	Timestamp   int64       `json:"timestamp"`
}

type lobbyMusicMsg struct {
	Type string `json:"type"`
	*musicState
}

// Inbound payload shapes, validated at the deserialization boundary.

type createRoomPayload struct {
	Name string `json:"name"`
}

type joinRoomPayload struct {
	RoomID string `json:"roomId"`
}

type firePayload struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type chatSendPayload struct {
	Scope   string `json:"scope"`
	Message string `json:"message"`
}

type setNamePayload struct {
	Name string `json:"name"`
}

type soloResultPayload struct {
	Result string `json:"result"`
}

type musicSharePayload struct {
	Pattern [][]bool    `json:"pattern"`
	Steps   int         `json:"steps"`
	Notes   []musicNote `json:"notes"`
	Tempo   float64     `json:"tempo"`
	ShareID string      `json:"shareId"`
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
