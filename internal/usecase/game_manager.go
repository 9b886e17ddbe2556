package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
)

type handlerFunc func(ctx context.Context, player *entity.Player, payload json.RawMessage)

// GameManager owns every piece of shared mutable state: the player registry,
// the room table, the active game set, the chat channels, the lobby music
// state and the leaderboard. Connection goroutines call into it one message
// at a time; a single mutex serializes all mutation. Leaderboard repository
// calls also run under the lock: standings updates must observe the same
// serial order as the game events that produce them, and the store is either
// in-process or a local redis.
type GameManager struct {
	logger          *slog.Logger
	leaderboardRepo repository.LeaderboardRepository

	mu         sync.Mutex
	players    map[*entity.Player]struct{}
	rooms      map[string]*entity.Room
	games      map[string]*entity.Game
	globalChat *entity.ChatChannel
	lobbyChat  *entity.ChatChannel
	roomChats  map[string]*entity.ChatChannel
	lobbyMusic *musicState

	handlers map[string]handlerFunc
}

func NewGameManager(logger *slog.Logger, leaderboardRepo repository.LeaderboardRepository) *GameManager {
	manager := &GameManager{
		logger:          logger.With("component", "game_manager"),
		leaderboardRepo: leaderboardRepo,

		players:    make(map[*entity.Player]struct{}),
		rooms:      make(map[string]*entity.Room),
		games:      make(map[string]*entity.Game),
		globalChat: entity.NewChatChannel(entity.ScopeGlobal, entity.ScopeGlobal, "Global"),
		lobbyChat:  entity.NewChatChannel(entity.ScopeLobby, entity.ScopeLobby, "Lobby"),
		roomChats:  make(map[string]*entity.ChatChannel),
	}

	manager.handlers = map[string]handlerFunc{
		"createRoom":         manager.handleCreateRoom,
		"joinRoom":           manager.handleJoinRoom,
		"leaveRoom":          manager.handleLeaveRoom,
		"listRooms":          manager.handleListRooms,
		"placeShips":         manager.handlePlaceShips,
		"fire":               manager.handleFire,
		"resetPlacement":     manager.handleResetPlacement,
		"chatSend":           manager.handleChatSend,
		"setName":            manager.handleSetName,
		"leaderboardRequest": manager.handleLeaderboardRequest,
		"soloResult":         manager.handleSoloResult,
		"musicLabShare":      manager.handleMusicLabShare,
	}

	return manager
}

// Connect - registers a fresh connection as a new player and pushes the
// initial lobby state to it.
func (that *GameManager) Connect(_ context.Context, conn entity.Sender) *entity.Player {
	log := that.logger.With("method", "Connect")

	player := entity.NewPlayer(pkg.GenerateNewSessionID(), pkg.GeneratePlayerName(), conn)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player] = struct{}{}

	that.send(player, newPlayerAssignmentMsg(nil))
	that.sendLobbySnapshot(player)
	that.sendLobbyMusicSnapshot(player)
	that.sendChatContext(player)
	that.sendChatHistory(player, entity.ScopeGlobal)
	that.sendChatHistory(player, entity.ScopeLobby)

	log.Info("player connected", "playerID", player.ID)

	return player
}

// Disconnect - tears down everything the player held: room membership, an
// active game (scored as a win for the opponent when it had started) and the
// registry slot. Called exactly once per connection.
func (that *GameManager) Disconnect(ctx context.Context, player *entity.Player) {
	log := that.logger.With("method", "Disconnect")

	that.mu.Lock()
	defer that.mu.Unlock()

	that.leaveRoomLocked(player, true)

	if player.Game != nil {
		that.handleGameDisconnect(ctx, player.Game, player)
	}

	delete(that.players, player)
	that.broadcastLobbyUpdate()

	log.Info("player disconnected", "playerID", player.ID)
}

// HandleMessage - decodes one text frame payload and routes it by its type
// tag. Malformed JSON and unknown tags are answered with a scoped error and
// never close the connection.
func (that *GameManager) HandleMessage(ctx context.Context, player *entity.Player, raw string) {
	log := that.logger.With("method", "HandleMessage")

	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		that.mu.Lock()
		that.send(player, newErrorMsg(apperror.ErrInvalidJSON.Error()))
		that.mu.Unlock()
		return
	}

	handler, ok := that.handlers[envelope.Type]
	if !ok {
		log.Debug("unknown message type", "type", envelope.Type)
		that.mu.Lock()
		that.send(player, newErrorMsg(apperror.ErrUnknownMessageType.Error()))
		that.mu.Unlock()
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	handler(ctx, player, json.RawMessage(raw))
}

// send - pushes one message to a player, logging delivery failures. Must be
// called with the manager lock held.
func (that *GameManager) send(player *entity.Player, v any) {
	if err := player.Send(v); err != nil {
		that.logger.Debug("failed to send message", "playerID", player.ID, "error", err)
	}
}
