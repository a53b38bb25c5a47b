package rf

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shutter-control/shuttergw/pkg/gpio"
)

var (
	// ErrTxDisabled is returned when a waveform is attempted while the pin
	// is not configured for output.
	ErrTxDisabled = errors.New("tx is not enabled")

	// ErrUnknownProtocol is returned for a protocol id outside the table.
	ErrUnknownProtocol = errors.New("unknown tx protocol")
)

// Transmitter drives an OOK transmitter module wired to a single GPIO pin.
// Only one waveform can own the wire at a time, so Send serializes callers.
type Transmitter struct {
	pin         gpio.Pin
	proto       Protocol
	protoID     int
	pulseLength int
	repeats     int
	codeBits    int
	logger      zerolog.Logger

	mu        sync.Mutex
	txEnabled bool

	// delay is replaced in tests. The default sleeps most of the interval
	// and spins the tail for microsecond accuracy on a non-RT kernel.
	delay func(time.Duration)
}

// NewTransmitter initializes a transmitter for the given pin and protocol.
// A zero pulseLength, repeats or codeBits falls back to the protocol and
// gateway defaults.
func NewTransmitter(pin gpio.Pin, protocolID, pulseLength, repeats, codeBits int, logger zerolog.Logger) (*Transmitter, error) {
	proto, err := ProtocolByID(protocolID)
	if err != nil {
		return nil, err
	}
	if pulseLength <= 0 {
		pulseLength = proto.PulseLength
	}
	if repeats <= 0 {
		repeats = DefaultRepeats
	}
	if codeBits <= 0 {
		codeBits = DefaultCodeBits
	}

	return &Transmitter{
		pin:         pin,
		proto:       proto,
		protoID:     protocolID,
		pulseLength: pulseLength,
		repeats:     repeats,
		codeBits:    codeBits,
		logger:      logger,
		delay:       preciseDelay,
	}, nil
}

// Send transmits every code in order and releases the pin afterwards.
func (t *Transmitter) Send(ctx context.Context, codes []uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enableTx()
	defer t.disableTx()

	for _, code := range codes {
		raw := EncodeCode(code, t.codeBits)
		t.logger.Debug().Int("protocol", t.protoID).Uint64("code", code).Str("bits", raw).Msg("TX code")

		if err := t.txBin(ctx, raw); err != nil {
			return fmt.Errorf("transmitting code %d: %w", code, err)
		}
	}
	return nil
}

// enableTx configures the pin for output.
func (t *Transmitter) enableTx() {
	if !t.txEnabled {
		t.txEnabled = true
		t.pin.Output()
		t.logger.Debug().Msg("TX enabled")
	}
}

// disableTx returns the pin to input so nothing can hold the carrier open.
func (t *Transmitter) disableTx() {
	if t.txEnabled {
		t.pin.Input()
		t.txEnabled = false
		t.logger.Debug().Msg("TX disabled")
	}
}

// txBin sends one binary code, honoring the protocol's sync, delay and
// repeat parameters.
func (t *Transmitter) txBin(ctx context.Context, raw string) error {
	for i := 0; i < t.repeats; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for s := 0; s < t.proto.SyncCount; s++ {
			if err := t.txWaveformIrregular(t.proto.SyncHigh, t.proto.SyncLow); err != nil {
				return err
			}
		}
		if t.proto.SyncDelay > 0 {
			if err := t.txLow(t.proto.SyncDelay); err != nil {
				return err
			}
		}

		for _, bit := range raw {
			var err error
			if bit == '0' {
				err = t.txWaveform(t.proto.ZeroHigh, t.proto.ZeroLow)
			} else {
				err = t.txWaveform(t.proto.OneHigh, t.proto.OneLow)
			}
			if err != nil {
				return err
			}
		}

		if err := t.txLow(t.proto.RepeatDelay); err != nil {
			return err
		}
	}
	return nil
}

// txWaveform sends one data bit, scaled by the pulse length.
func (t *Transmitter) txWaveform(highPulses, lowPulses int) error {
	if !t.txEnabled {
		return ErrTxDisabled
	}
	t.pin.High()
	t.delay(time.Duration(highPulses*t.pulseLength) * time.Microsecond)
	t.pin.Low()
	t.delay(time.Duration(lowPulses*t.pulseLength) * time.Microsecond)
	return nil
}

// txWaveformIrregular sends raw microsecond timings, bypassing the pulse length.
func (t *Transmitter) txWaveformIrregular(highUs, lowUs int) error {
	if !t.txEnabled {
		return ErrTxDisabled
	}
	t.pin.High()
	t.delay(time.Duration(highUs) * time.Microsecond)
	t.pin.Low()
	t.delay(time.Duration(lowUs) * time.Microsecond)
	return nil
}

// txLow holds the line low for the given number of microseconds.
func (t *Transmitter) txLow(us int) error {
	if !t.txEnabled {
		return ErrTxDisabled
	}
	t.pin.Low()
	t.delay(time.Duration(us) * time.Microsecond)
	return nil
}

// preciseDelay sleeps in small slices and re-checks the clock. time.Sleep
// alone overshoots by scheduler latency, which smears the pulse widths.
func preciseDelay(d time.Duration) {
	slice := d / 100
	if slice <= 0 {
		slice = time.Microsecond
	}
	end := time.Now().Add(d - slice)
	for time.Now().Before(end) {
		time.Sleep(slice)
	}
}
