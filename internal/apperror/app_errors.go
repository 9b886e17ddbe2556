package apperror

import "errors"

// Sentinel errors whose messages travel on the wire in error payloads, so
// they are phrased for the player, not the operator.
var (
	ErrInvalidJSON        = errors.New("Invalid JSON payload.")
	ErrUnknownMessageType = errors.New("Unknown message type.")

	ErrNoActiveGame    = errors.New("No active game.")
	ErrGameNotActive   = errors.New("Game is not active.")
	ErrGameInProgress  = errors.New("Game already in progress.")
	ErrPlayersNotReady = errors.New("Both players must place ships first.")
	ErrNotYourTurn     = errors.New("Not your turn.")
	ErrInvalidShot     = errors.New("Invalid shot coordinates.")
	ErrAlreadyFired    = errors.New("Already fired at that location.")

	ErrInvalidLayout   = errors.New("Invalid ship layout.")
	ErrShipOutOfBounds = errors.New("Ship out of bounds.")
	ErrShipsOverlap    = errors.New("Ships cannot overlap.")

	ErrRoomFull          = errors.New("Room is full.")
	ErrRoomNotFound      = errors.New("Room no longer exists.")
	ErrInvalidRoomID     = errors.New("Invalid room identifier.")
	ErrCreateRoomInMatch = errors.New("Cannot create a room while a match is active.")
	ErrJoinRoomInMatch   = errors.New("Cannot join a room while a match is active.")

	ErrChatScopeInvalid     = errors.New("Chat scope is invalid.")
	ErrChatScopeUnavailable = errors.New("That chat channel is not available right now.")
	ErrChatMessageEmpty     = errors.New("Chat messages cannot be empty.")

	ErrInvalidDisplayName = errors.New("Display name must be at least 2 characters.")
	ErrInvalidSoloResult  = errors.New("Solo result must be win or lose.")

	ErrMusicOnlyInLobby = errors.New("Music Lab sharing is only available while in the lobby.")
	ErrInvalidMusic     = errors.New("Invalid music payload.")
)
