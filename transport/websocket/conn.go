package websocket

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
)

const readChunkSize = 4096

// Conn owns exactly one socket for its lifetime. It reassembles partial
// frames from the byte stream, dispatches text payloads to the message
// handler, answers pings, and collapses every socket-level end condition
// into a single close event.
type Conn struct {
	logger *slog.Logger
	sock   net.Conn
	reader io.Reader

	writeMu sync.Mutex

	mu      sync.Mutex
	isOpen  bool
	pending []byte

	closeOnce sync.Once
	onMessage func(msg string)
	onClose   func()
}

// NewConn - wraps an upgraded socket. The reader may already hold buffered
// bytes from the hijacked HTTP connection, so reads go through it while
// writes and closes hit the socket directly.
func NewConn(logger *slog.Logger, sock net.Conn, reader io.Reader) *Conn {
	return &Conn{
		logger: logger,
		sock:   sock,
		reader: reader,
		isOpen: true,
	}
}

// OnMessage - registers the handler for decoded text payloads. Must be set
// before ReadLoop starts.
func (that *Conn) OnMessage(handler func(msg string)) {
	that.onMessage = handler
}

// OnClose - registers the handler fired exactly once when the connection
// closes, whatever the cause.
func (that *Conn) OnClose(handler func()) {
	that.onClose = handler
}

// ReadLoop - blocks reading the socket until it closes. Messages of a single
// connection are handled strictly in arrival order.
func (that *Conn) ReadLoop() {
	chunk := make([]byte, readChunkSize)

	for {
		n, err := that.reader.Read(chunk)
		if n > 0 {
			if !that.handleData(chunk[:n]) {
				return
			}
		}

		if err != nil {
			that.handleClose()
			return
		}
	}
}

// handleData - appends a chunk to the pending buffer and drains every
// complete frame from it. Returns false once the connection is closed.
func (that *Conn) handleData(chunk []byte) bool {
	that.mu.Lock()
	that.pending = append(that.pending, chunk...)
	that.mu.Unlock()

	for {
		that.mu.Lock()
		if !that.isOpen {
			that.mu.Unlock()
			return false
		}

		decoded, err := decodeFrame(that.pending)
		if err != nil {
			that.mu.Unlock()
			that.Close(closeCodeTooLarge, "Frame too large")
			return false
		}
		if decoded == nil {
			that.mu.Unlock()
			return true
		}
		that.pending = that.pending[decoded.frameLength:]
		that.mu.Unlock()

		switch decoded.opCode {
		case opText:
			if that.onMessage != nil {
				that.onMessage(string(decoded.payload))
			}
		case opClose:
			that.Close(closeCodeNormal, "")
			return false
		case opPing:
			if err := that.writeFrame(decoded.payload, opPong); err != nil {
				that.logger.Debug("failed to answer ping", "error", err)
			}
		case opPong:
			// ignore
		default:
			that.Close(closeCodeUnsupported, "Unsupported frame")
			return false
		}
	}
}

// Send - marshals a message and writes it as one text frame. A send on a
// closed connection is a silent no-op.
func (that *Conn) Send(v any) error {
	that.mu.Lock()
	open := that.isOpen
	that.mu.Unlock()

	if !open {
		return nil
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err = that.writeFrame(payload, opText); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

const (
	closeCodeNormal      = 1000
	closeCodeUnsupported = 1003
	closeCodeTooLarge    = 1009
)

// Close - sends a close frame, shuts the socket and fires the close event.
// Idempotent: a second call is a no-op.
func (that *Conn) Close(code int, reason string) {
	that.mu.Lock()
	if !that.isOpen {
		that.mu.Unlock()
		return
	}
	that.isOpen = false
	that.mu.Unlock()

	payload := make([]byte, 2+len(reason))
	binary.BigEndian.PutUint16(payload, uint16(code))
	copy(payload[2:], reason)

	if err := that.writeFrame(payload, opClose); err != nil {
		that.logger.Debug("failed to write close frame", "error", err)
	}

	if err := that.sock.Close(); err != nil {
		that.logger.Debug("failed to close socket", "error", err)
	}

	that.fireClose()
}

// handleClose - normalizes socket EOF and errors to the single close event.
func (that *Conn) handleClose() {
	that.mu.Lock()
	wasOpen := that.isOpen
	that.isOpen = false
	that.mu.Unlock()

	if wasOpen {
		_ = that.sock.Close()
	}

	that.fireClose()
}

func (that *Conn) fireClose() {
	that.closeOnce.Do(func() {
		if that.onClose != nil {
			that.onClose()
		}
	})
}

func (that *Conn) writeFrame(payload []byte, opCode byte) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if _, err := that.sock.Write(encodeFrame(payload, opCode)); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}
