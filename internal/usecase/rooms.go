package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
)

const maxRoomNameLength = 48

func (that *GameManager) handleCreateRoom(ctx context.Context, player *entity.Player, raw json.RawMessage) {
	if player.InGame() {
		that.send(player, newErrorMsg(apperror.ErrCreateRoomInMatch.Error()))
		return
	}

	var payload createRoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		that.send(player, newErrorMsg(apperror.ErrInvalidJSON.Error()))
		return
	}

	if player.InRoom() {
		that.leaveRoomLocked(player, true)
	}

	name := strings.TrimSpace(payload.Name)
	if len(name) > maxRoomNameLength {
		name = name[:maxRoomNameLength]
	}
	if name == "" {
		name = player.Name + "'s Room"
	}

	room := entity.NewRoom(pkg.GenerateRoomID(), name)
	that.rooms[room.ID] = room
	that.roomChats[room.ID] = entity.NewChatChannel(room.ID, entity.ScopeRoom, name)

	that.joinRoomLocked(ctx, player, room.ID, true)
}

func (that *GameManager) handleJoinRoom(ctx context.Context, player *entity.Player, raw json.RawMessage) {
	var payload joinRoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		that.send(player, newErrorMsg(apperror.ErrInvalidJSON.Error()))
		return
	}

	if player.InGame() {
		that.send(player, newErrorMsg(apperror.ErrJoinRoomInMatch.Error()))
		return
	}

	that.joinRoomLocked(ctx, player, payload.RoomID, false)
}

func (that *GameManager) handleLeaveRoom(_ context.Context, player *entity.Player, _ json.RawMessage) {
	that.leaveRoomLocked(player, false)
}

func (that *GameManager) handleListRooms(_ context.Context, player *entity.Player, _ json.RawMessage) {
	that.sendLobbySnapshot(player)
}

// joinRoomLocked - seats a player into a room; filling the room promotes it
// into a game synchronously. Requires the manager lock.
func (that *GameManager) joinRoomLocked(ctx context.Context, player *entity.Player, roomID string, created bool) {
	if roomID == "" {
		that.send(player, newErrorMsg(apperror.ErrInvalidRoomID.Error()))
		return
	}

	room, ok := that.rooms[roomID]
	if !ok {
		that.send(player, newErrorMsg(apperror.ErrRoomNotFound.Error()))
		that.sendLobbySnapshot(player)
		return
	}

	if room.Contains(player) {
		that.send(player, roomJoinedMsg{
			Type:      "roomJoined",
			RoomID:    room.ID,
			Name:      room.Name,
			Occupants: len(room.Players),
			IsHost:    player.IsRoomHost,
		})
		return
	}

	if room.IsFull() {
		that.send(player, newErrorMsg(apperror.ErrRoomFull.Error()))
		that.sendLobbySnapshot(player)
		return
	}

	if player.InRoom() && player.RoomID != roomID {
		that.leaveRoomLocked(player, true)
	}

	room.Players = append(room.Players, player)
	player.RoomID = room.ID
	player.IsRoomHost = len(room.Players) == 1

	that.send(player, roomJoinedMsg{
		Type:      "roomJoined",
		RoomID:    room.ID,
		Name:      room.Name,
		Occupants: len(room.Players),
		IsHost:    player.IsRoomHost,
		Created:   created,
	})

	that.sendChatContext(player)
	that.sendChatHistory(player, entity.ScopeRoom)

	if len(room.Players) == 1 {
		that.send(player, simpleMsg{Type: "waitingForOpponent"})
	}

	that.broadcastLobbyUpdate()

	if room.IsFull() {
		that.startGame(ctx, room)
	}
}

// leaveRoomLocked - removes a player from their room. If another occupant
// remains, the room is closed and they are evicted too rather than left
// waiting for a manager that no longer exists. Requires the manager lock.
func (that *GameManager) leaveRoomLocked(player *entity.Player, silent bool) {
	roomID := player.RoomID
	if roomID == "" {
		return
	}

	room, ok := that.rooms[roomID]
	player.RoomID = ""
	player.IsRoomHost = false

	if !silent {
		that.send(player, roomLeftMsg{Type: "roomLeft", RoomID: roomID})
		that.sendChatContext(player)
		that.sendChatHistory(player, entity.ScopeLobby)
	}

	if !ok {
		that.broadcastLobbyUpdate()
		return
	}

	room.Remove(player)
	delete(that.rooms, roomID)
	delete(that.roomChats, roomID)

	for _, remaining := range room.Players {
		remaining.RoomID = ""
		remaining.IsRoomHost = false
		that.send(remaining, roomClosedMsg{Type: "roomClosed", RoomID: roomID})
		that.sendChatContext(remaining)
		that.sendChatHistory(remaining, entity.ScopeLobby)
	}

	that.broadcastLobbyUpdate()
}

// startGame - promotes a full room into a game: the room is deleted, seats
// are assigned and the room chat channel carries over under the match id.
func (that *GameManager) startGame(_ context.Context, room *entity.Room) {
	log := that.logger.With("method", "startGame")

	delete(that.rooms, room.ID)

	playerA, playerB := room.Players[0], room.Players[1]
	for _, player := range room.Players {
		player.RoomID = ""
		player.IsRoomHost = false
	}

	game := entity.NewGame(pkg.GenerateNewSessionID(), playerA, playerB)
	that.games[game.ID] = game

	// the pairing keeps its chat history under the match id
	if channel, ok := that.roomChats[room.ID]; ok {
		delete(that.roomChats, room.ID)
		channel.ID = game.ID
		that.roomChats[game.ID] = channel
	} else {
		that.roomChats[game.ID] = entity.NewChatChannel(game.ID, entity.ScopeRoom, room.Name)
	}

	seatA, seatB := 1, 2
	that.send(playerA, newPlayerAssignmentMsg(&seatA))
	that.send(playerB, newPlayerAssignmentMsg(&seatB))
	that.send(playerA, simpleMsg{Type: "opponentJoined"})
	that.send(playerB, simpleMsg{Type: "opponentJoined"})

	that.sendChatContext(playerA)
	that.sendChatContext(playerB)

	that.broadcastLobbyUpdate()

	log.Info("game started", "gameID", game.ID, "roomID", room.ID)
}

// sendLobbySnapshot - pushes the current open-room listing to one player.
func (that *GameManager) sendLobbySnapshot(player *entity.Player) {
	that.send(player, lobbyUpdateMsg{Type: "lobbyUpdate", Rooms: that.buildLobbyRooms()})
}

// broadcastLobbyUpdate - pushes the listing to every player outside an
// active game.
func (that *GameManager) broadcastLobbyUpdate() {
	rooms := that.buildLobbyRooms()
	for player := range that.players {
		if !player.InGame() {
			that.send(player, lobbyUpdateMsg{Type: "lobbyUpdate", Rooms: rooms})
		}
	}
}

func (that *GameManager) buildLobbyRooms() []roomSummary {
	rooms := make([]roomSummary, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, roomSummary{
			ID:        room.ID,
			Name:      room.Name,
			Occupants: len(room.Players),
			Capacity:  entity.RoomCapacity,
			CreatedAt: room.CreatedAt.UnixMilli(),
		})
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt < rooms[j].CreatedAt
	})

	return rooms
}
