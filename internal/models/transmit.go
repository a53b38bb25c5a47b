package models

import "time"

// TransmitResult summarizes one gateway transmission.
type TransmitResult struct {
	TxID      string    `json:"tx_id"`     // Unique id assigned to this transmission.
	Pattern   string    `json:"pattern"`   // Device pattern from the request.
	Command   string    `json:"command"`   // Requested shutter command.
	Matched   int       `json:"matched"`   // Number of devices the pattern resolved to.
	Status    string    `json:"status"`    // success or failed.
	Timestamp time.Time `json:"timestamp"` // When the transmission was attempted.
}

// DeviceStats tracks per-device transmission counters for the status API.
type DeviceStats struct {
	Device      string    `json:"device"`
	TxCount     int64     `json:"tx_count"`
	LastCommand string    `json:"last_command"`
	LastStatus  string    `json:"last_status"`
	LastTxAt    time.Time `json:"last_tx_at"`
}

// DeviceSummary describes a configured device for the devices listing.
type DeviceSummary struct {
	Name     string   `json:"name"`
	Commands []string `json:"commands"`
}
