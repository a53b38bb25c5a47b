package models

import "time"

// CmdRequest represents a shutter command received by the gateway over MQTT.
type CmdRequest struct {
	Device  string `json:"device"`  // Device pattern the command targets.
	Command string `json:"command"` // The shutter command to transmit.
}

// CmdResponse represents the outcome published after executing a command.
type CmdResponse struct {
	DeviceID  string    `json:"device_id"`       // Gateway device id sending the response.
	TxID      string    `json:"tx_id,omitempty"` // Transmission id, when one was attempted.
	Device    string    `json:"device"`          // Echo of the requested device pattern.
	Command   string    `json:"command"`         // Echo of the requested command.
	Matched   int       `json:"matched"`         // Devices the pattern resolved to.
	Status    string    `json:"status"`          // success or failed.
	Error     string    `json:"error,omitempty"` // Failure detail, when status is failed.
	Timestamp time.Time `json:"timestamp"`
}
