package websocket

import (
	"encoding/binary"
	"errors"
)

// Opcodes of RFC 6455 used by the protocol.
const (
	opText  byte = 0x1
	opClose byte = 0x8
	opPing  byte = 0x9
	opPong  byte = 0xA
)

// maxFramePayload bounds a single frame's declared payload. Every message on
// this protocol is a small JSON object; a length header anywhere near this
// limit is malformed or hostile, and capping it here keeps the completeness
// arithmetic below free of uint64 wrap-around.
const maxFramePayload = 1 << 20

var errFrameTooLarge = errors.New("frame payload length exceeds limit")

// frame represents one decoded WebSocket frame and how many bytes of the
// accumulated buffer it consumed.
type frame struct {
	opCode      byte
	payload     []byte
	frameLength int
}

// decodeFrame - attempts to parse one frame from the front of the buffer.
// Returns nil while the buffer does not yet hold a complete frame; a
// truncated buffer is never an error, the caller just waits for more bytes.
// A declared payload length beyond maxFramePayload is protocol-fatal and
// returns errFrameTooLarge before anything is allocated. A masked payload
// byte i is recovered as buf[i] XOR mask[i%4].
func decodeFrame(buf []byte) (*frame, error) {
	if len(buf) < 2 {
		return nil, nil
	}

	opCode := buf[0] & 0x0f
	isMasked := buf[1]&0x80 == 0x80
	payloadLen := uint64(buf[1] & 0x7f)
	offset := 2

	switch payloadLen {
	case 126:
		if len(buf) < offset+2 {
			return nil, nil
		}
		payloadLen = uint64(binary.BigEndian.Uint16(buf[offset:]))
		offset += 2
	case 127:
		if len(buf) < offset+8 {
			return nil, nil
		}
		payloadLen = binary.BigEndian.Uint64(buf[offset:])
		offset += 8
	}

	if payloadLen > maxFramePayload {
		return nil, errFrameTooLarge
	}

	maskLen := 0
	if isMasked {
		maskLen = 4
	}

	total := uint64(offset) + uint64(maskLen) + payloadLen
	if uint64(len(buf)) < total {
		return nil, nil
	}

	payload := make([]byte, payloadLen)
	if isMasked {
		mask := buf[offset : offset+4]
		offset += 4
		for i := range payload {
			payload[i] = buf[offset+i] ^ mask[i%4]
		}
	} else {
		copy(payload, buf[offset:offset+int(payloadLen)])
	}

	return &frame{
		opCode:      opCode,
		payload:     payload,
		frameLength: int(total),
	}, nil
}

// encodeFrame - builds an unmasked server-to-client frame with the minimal
// length encoding and the FIN bit set.
func encodeFrame(payload []byte, opCode byte) []byte {
	length := len(payload)

	var header []byte
	switch {
	case length < 126:
		header = make([]byte, 2)
		header[1] = byte(length)
	case length < 1<<16:
		header = make([]byte, 4)
		header[1] = 126
		binary.BigEndian.PutUint16(header[2:], uint16(length))
	default:
		header = make([]byte, 10)
		header[1] = 127
		binary.BigEndian.PutUint64(header[2:], uint64(length))
	}

	header[0] = 0x80 | (opCode & 0x0f)

	return append(header, payload...)
}
