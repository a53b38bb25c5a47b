package rf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestProtocolByID_Known verifies the shutter protocol timings.
func TestProtocolByID_Known(t *testing.T) {
	proto, err := ProtocolByID(1)

	assert.NoError(t, err)
	assert.Equal(t, 40, proto.PulseLength)
	assert.Equal(t, 9600, proto.RepeatDelay)
	assert.Equal(t, 1, proto.SyncCount)
	assert.Equal(t, 0, proto.SyncDelay)
	assert.Equal(t, 4750, proto.SyncHigh)
	assert.Equal(t, 1550, proto.SyncLow)
	assert.Equal(t, 8, proto.ZeroHigh)
	assert.Equal(t, 19, proto.ZeroLow)
	assert.Equal(t, 17, proto.OneHigh)
	assert.Equal(t, 10, proto.OneLow)
}

// TestProtocolByID_Garage verifies the garage protocol uses a multi-sync preamble.
func TestProtocolByID_Garage(t *testing.T) {
	proto, err := ProtocolByID(2)

	assert.NoError(t, err)
	assert.Equal(t, 12, proto.SyncCount)
	assert.Equal(t, 3500, proto.SyncDelay)
}

// TestProtocolByID_Unknown verifies an out-of-table id is rejected.
func TestProtocolByID_Unknown(t *testing.T) {
	_, err := ProtocolByID(3)

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProtocol)
}

// TestEncodeCode verifies zero-padded fixed-width binary rendering.
func TestEncodeCode(t *testing.T) {
	assert.Equal(t, "00001011", EncodeCode(11, 8))
	assert.Equal(t, "0001011000110011101111010111000100010001", EncodeCode(95357333777, 40))
	assert.Equal(t, "1001100000110010101101111001000100010001", EncodeCode(653685920017, 40))
	assert.Equal(t, "0001010000110011000011110011000000010001", EncodeCode(86755979281, 40))
}

// TestEncodeCode_Zero verifies a zero code still fills the full width.
func TestEncodeCode_Zero(t *testing.T) {
	assert.Equal(t, "0000000000", EncodeCode(0, 10))
}
