package pkg

import (
	"crypto/rand"
	"crypto/sha1" //nolint: gosec // RFC 6455 mandates SHA-1 for the handshake
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// Static GUID defined in RFC 6455 for WebSocket.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// GenerateAcceptKey - generates key for WebSocket handshake.
func GenerateAcceptKey(key string) string {
	h := sha1.New() //nolint: gosec // RFC 6455 requires the use of SHA-1 for WebSocket

	h.Write([]byte(key + websocketGUID))

	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-session-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// GenerateRoomID - generates a unique identifier for a lobby room.
func GenerateRoomID() string {
	return fmt.Sprintf("room-%x-%s", time.Now().UnixMilli(), randomHex(2))
}

// GenerateMessageID - generates a unique identifier for a chat message.
func GenerateMessageID() string {
	return fmt.Sprintf("msg-%x-%s", time.Now().UnixMilli(), randomHex(3))
}

// GeneratePlayerName - generates the default display name for a fresh connection.
func GeneratePlayerName() string {
	return "Player-" + randomHex(2)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "0000"[:n*2]
	}

	return hex.EncodeToString(b)
}
