package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
)

func (that *GameManager) handleChatSend(_ context.Context, player *entity.Player, raw json.RawMessage) {
	var payload chatSendPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		that.send(player, newChatErrorMsg(apperror.ErrInvalidJSON.Error()))
		return
	}

	channel, err := that.resolveChannel(player, payload.Scope)
	if err != nil {
		that.send(player, newChatErrorMsg(err.Error()))
		return
	}

	text := strings.Join(strings.Fields(payload.Message), " ")
	if text == "" {
		that.send(player, newChatErrorMsg(apperror.ErrChatMessageEmpty.Error()))
		return
	}

	runes := []rune(text)
	if len(runes) > entity.ChatMessageLimit {
		text = string(runes[:entity.ChatMessageLimit])
	}

	message := entity.ChatMessage{
		ID:        pkg.GenerateMessageID(),
		Author:    player.Name,
		Text:      text,
		Timestamp: nowMillis(),
	}
	channel.Append(message)

	outbound := chatMessageMsg{
		Type:    "chatMessage",
		Scope:   channel.Scope,
		Message: message,
	}
	if channel.Scope == entity.ScopeRoom {
		outbound.RoomID = channel.ID
	}

	for _, recipient := range that.channelRecipients(channel) {
		that.send(recipient, outbound)
	}
}

// resolveChannel - validates that the requested scope is currently permitted
// for the sender and returns the channel it maps to.
func (that *GameManager) resolveChannel(player *entity.Player, scope string) (*entity.ChatChannel, error) {
	switch scope {
	case entity.ScopeGlobal:
		return that.globalChat, nil
	case entity.ScopeLobby:
		if player.InRoom() || player.InGame() {
			return nil, apperror.ErrChatScopeUnavailable
		}
		return that.lobbyChat, nil
	case entity.ScopeRoom:
		channel, ok := that.roomChats[that.roomChannelID(player)]
		if !ok {
			return nil, apperror.ErrChatScopeUnavailable
		}
		return channel, nil
	default:
		return nil, apperror.ErrChatScopeInvalid
	}
}

// roomChannelID - the channel id a player's room scope maps to: the room id
// while waiting, the match id once paired. Empty when unaffiliated.
func (that *GameManager) roomChannelID(player *entity.Player) string {
	if player.InRoom() {
		return player.RoomID
	}
	if player.InGame() {
		return player.Game.ID
	}

	return ""
}

// channelRecipients - every currently-eligible recipient of a scope.
func (that *GameManager) channelRecipients(channel *entity.ChatChannel) []*entity.Player {
	recipients := make([]*entity.Player, 0, len(that.players))

	for player := range that.players {
		switch channel.Scope {
		case entity.ScopeGlobal:
			recipients = append(recipients, player)
		case entity.ScopeLobby:
			if !player.InRoom() && !player.InGame() {
				recipients = append(recipients, player)
			}
		case entity.ScopeRoom:
			if that.roomChannelID(player) == channel.ID {
				recipients = append(recipients, player)
			}
		}
	}

	return recipients
}

// sendChatContext - tells a player which scopes are open to them after an
// affiliation change. Requires the manager lock.
func (that *GameManager) sendChatContext(player *entity.Player) {
	scopes := chatContextMsg{
		Type:      "chatContext",
		Scope:     entity.ScopeLobby,
		Available: []string{entity.ScopeGlobal, entity.ScopeLobby},
	}

	if id := that.roomChannelID(player); id != "" {
		scopes.Scope = entity.ScopeRoom
		scopes.RoomID = id
		scopes.Available = []string{entity.ScopeGlobal, entity.ScopeRoom}
		if channel, ok := that.roomChats[id]; ok {
			scopes.RoomName = channel.DisplayName
		}
	}

	that.send(player, scopes)
}

// sendChatHistory - replays the retained history of one scope to a player.
func (that *GameManager) sendChatHistory(player *entity.Player, scope string) {
	var channel *entity.ChatChannel

	switch scope {
	case entity.ScopeGlobal:
		channel = that.globalChat
	case entity.ScopeLobby:
		channel = that.lobbyChat
	case entity.ScopeRoom:
		channel = that.roomChats[that.roomChannelID(player)]
	}

	if channel == nil {
		return
	}

	history := chatHistoryMsg{
		Type:     "chatHistory",
		Scope:    channel.Scope,
		Messages: channel.RecentHistory(),
	}
	if channel.Scope == entity.ScopeRoom {
		history.RoomID = channel.ID
	}

	that.send(player, history)
}
