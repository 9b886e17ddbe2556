package websocket

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maskFrame builds a client-to-server frame with the mask bit set, the way a
// browser would send it.
func maskFrame(payload []byte, opCode byte, maskKey [4]byte) []byte {
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

	header[0] = 0x80 | opCode
	header[1] |= 0x80

	masked := make([]byte, length)
	for i := range payload {
		masked[i] = payload[i] ^ maskKey[i%4]
	}

	buf := append(header, maskKey[:]...)

	return append(buf, masked...)
}

func TestDecodeFrame_Unmasked(t *testing.T) {
	boundaryLengths := []int{0, 125, 126, 65536}

	for _, length := range boundaryLengths {
		payload := bytes.Repeat([]byte{0x42}, length)

		// Given: a server-encoded frame of a boundary length
		encoded := encodeFrame(payload, opText)

		// When: decoding it back
		decoded, err := decodeFrame(encoded)

		// Then: the payload and consumed length round-trip exactly
		require.NoError(t, err)
		require.NotNil(t, decoded, "length %d", length)
		assert.Equal(t, opText, decoded.opCode)
		assert.Equal(t, payload, decoded.payload)
		assert.Equal(t, len(encoded), decoded.frameLength)
	}
}

func TestDecodeFrame_Masked(t *testing.T) {
	maskKey := [4]byte{0x1a, 0x2b, 0x3c, 0x4d}
	boundaryLengths := []int{0, 125, 126, 65536}

	for _, length := range boundaryLengths {
		payload := bytes.Repeat([]byte("abcd"), (length+3)/4)[:length]

		// Given: a masked client frame
		encoded := maskFrame(payload, opText, maskKey)

		// When: decoding it
		decoded, err := decodeFrame(encoded)

		// Then: the mask is reversed and the whole frame is consumed
		require.NoError(t, err)
		require.NotNil(t, decoded, "length %d", length)
		assert.Equal(t, payload, decoded.payload)
		assert.Equal(t, len(encoded), decoded.frameLength)
	}
}

func TestDecodeFrame_Incomplete(t *testing.T) {
	maskKey := [4]byte{1, 2, 3, 4}
	encoded := maskFrame([]byte("hello battleship"), opText, maskKey)

	// Given: every strict prefix of a complete frame
	for cut := 0; cut < len(encoded); cut++ {
		// When: attempting to decode the truncated buffer
		decoded, err := decodeFrame(encoded[:cut])

		// Then: the codec reports "need more data" instead of failing
		require.NoError(t, err, "prefix of %d bytes", cut)
		assert.Nil(t, decoded, "prefix of %d bytes", cut)
	}

	decoded, err := decodeFrame(encoded)
	require.NoError(t, err)
	require.NotNil(t, decoded)
}

// hostileLengthFrame builds a masked frame header declaring an arbitrary
// 64-bit payload length, followed by filler bytes.
func hostileLengthFrame(declared uint64, filler int) []byte {
	buf := make([]byte, 10+filler)
	buf[0] = 0x80 | opText
	buf[1] = 0x80 | 127
	binary.BigEndian.PutUint64(buf[2:10], declared)

	return buf
}

func TestDecodeFrame_RejectsOversizedLengths(t *testing.T) {
	t.Run("wrapping 64-bit length is an error, not a panic", func(t *testing.T) {
		// a declared length near 2^64 would wrap the completeness total
		// below the buffer size without the cap
		buf := hostileLengthFrame(^uint64(0)-5, 54)

		decoded, err := decodeFrame(buf)

		require.ErrorIs(t, err, errFrameTooLarge)
		assert.Nil(t, decoded)
	})

	t.Run("huge non-wrapping length rejected", func(t *testing.T) {
		decoded, err := decodeFrame(hostileLengthFrame(1<<40, 54))

		require.ErrorIs(t, err, errFrameTooLarge)
		assert.Nil(t, decoded)
	})

	t.Run("just over the cap rejected", func(t *testing.T) {
		decoded, err := decodeFrame(hostileLengthFrame(maxFramePayload+1, 0))

		require.ErrorIs(t, err, errFrameTooLarge)
		assert.Nil(t, decoded)
	})

	t.Run("cap itself is still incomplete, not an error", func(t *testing.T) {
		decoded, err := decodeFrame(hostileLengthFrame(maxFramePayload, 0))

		require.NoError(t, err)
		assert.Nil(t, decoded)
	})
}

func TestDecodeFrame_ExtendedLengthBoundaries(t *testing.T) {
	t.Run("126 bytes uses 16-bit extended length", func(t *testing.T) {
		encoded := encodeFrame(make([]byte, 126), opText)

		require.Equal(t, byte(126), encoded[1]&0x7f)
		require.Equal(t, uint16(126), binary.BigEndian.Uint16(encoded[2:4]))
	})

	t.Run("65536 bytes uses 64-bit extended length", func(t *testing.T) {
		encoded := encodeFrame(make([]byte, 65536), opText)

		require.Equal(t, byte(127), encoded[1]&0x7f)
		require.Equal(t, uint64(65536), binary.BigEndian.Uint64(encoded[2:10]))
	})

	t.Run("125 bytes stays on the 7-bit length", func(t *testing.T) {
		encoded := encodeFrame(make([]byte, 125), opText)

		require.Equal(t, byte(125), encoded[1]&0x7f)
	})
}

func TestEncodeFrame_ServerFramesAreUnmaskedAndFinal(t *testing.T) {
	encoded := encodeFrame([]byte("ahoy"), opText)

	// FIN bit set, opcode preserved, mask bit clear
	assert.Equal(t, byte(0x80|opText), encoded[0])
	assert.Zero(t, encoded[1]&0x80)
}

func TestDecodeFrame_ControlOpcodes(t *testing.T) {
	for _, opCode := range []byte{opClose, opPing, opPong} {
		decoded, err := decodeFrame(encodeFrame([]byte("ctl"), opCode))

		require.NoError(t, err)
		require.NotNil(t, decoded)
		assert.Equal(t, opCode, decoded.opCode)
	}
}
