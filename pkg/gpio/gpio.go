// Package gpio provides access to the Raspberry Pi GPIO header. The RF
// transmitter only needs a single digital output, so the surface is a small
// Pin interface that tests can satisfy without hardware.
package gpio

import (
	rpio "github.com/stianeikeland/go-rpio/v4"
)

// Pin is the contract for a single digital GPIO line.
type Pin interface {
	// Output configures the pin as an output.
	Output()
	// Input configures the pin as an input, releasing the line.
	Input()
	// High drives the pin high.
	High()
	// Low drives the pin low.
	Low()
}

// Open maps the GPIO memory range. It must be called once before NewPin.
func Open() error {
	return rpio.Open()
}

// Close unmaps the GPIO memory range.
func Close() error {
	return rpio.Close()
}

// BCMPin drives a physical pin through /dev/gpiomem using BCM numbering.
type BCMPin struct {
	pin rpio.Pin
}

// NewPin returns a pin for the given BCM number.
func NewPin(bcm int) *BCMPin {
	return &BCMPin{pin: rpio.Pin(bcm)}
}

// Output configures the pin as an output.
func (p *BCMPin) Output() {
	p.pin.Output()
}

// Input configures the pin as an input.
func (p *BCMPin) Input() {
	p.pin.Input()
}

// High drives the pin high.
func (p *BCMPin) High() {
	p.pin.High()
}

// Low drives the pin low.
func (p *BCMPin) Low() {
	p.pin.Low()
}
