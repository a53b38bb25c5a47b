package rf

import (
	"fmt"
)

// Defaults for the transmitter as wired on the gateway.
const (
	DefaultGPIOPin  = 17
	DefaultProtocol = 1
	DefaultRepeats  = 8
	DefaultCodeBits = 40
)

// Protocol describes the on-air timing of one OOK encoding scheme.
//
// Sync pulses carry raw microsecond timings; data bits are expressed in
// PulseLength units so a receiver-specific pulse length can be tuned without
// redefining the whole scheme.
type Protocol struct {
	PulseLength int // duration of one data pulse unit, microseconds
	RepeatDelay int // low time between code repeats, microseconds
	SyncCount   int // number of sync pulses before the data bits
	SyncDelay   int // low time after the sync preamble, microseconds
	SyncHigh    int // sync high time, microseconds
	SyncLow     int // sync low time, microseconds
	ZeroHigh    int // '0' high time, PulseLength units
	ZeroLow     int // '0' low time, PulseLength units
	OneHigh     int // '1' high time, PulseLength units
	OneLow      int // '1' low time, PulseLength units
}

// protocols is indexed by wire protocol id.
var protocols = map[int]Protocol{
	// "home smart" shutter remotes
	1: {
		PulseLength: 40,
		RepeatDelay: 9600,
		SyncCount:   1,
		SyncDelay:   0,
		SyncHigh:    4750,
		SyncLow:     1550,
		ZeroHigh:    8,
		ZeroLow:     19,
		OneHigh:     17,
		OneLow:      10,
	},
	// garage door remotes; the receivers roll their codes, so replaying a
	// captured code does not open anything. Kept for reference.
	2: {
		PulseLength: 40,
		RepeatDelay: 15200,
		SyncCount:   12,
		SyncDelay:   3500,
		SyncHigh:    360,
		SyncLow:     400,
		ZeroHigh:    9,
		ZeroLow:     20,
		OneHigh:     18,
		OneLow:      10,
	},
}

// ProtocolByID returns the timing scheme for the given protocol id.
func ProtocolByID(id int) (Protocol, error) {
	proto, ok := protocols[id]
	if !ok {
		return Protocol{}, fmt.Errorf("%w: %d", ErrUnknownProtocol, id)
	}
	return proto, nil
}

// EncodeCode renders a decimal code as a binary string, zero-padded on the
// left to bits. Codes wider than bits keep their full width.
func EncodeCode(code uint64, bits int) string {
	return fmt.Sprintf("%0*b", bits, code)
}
