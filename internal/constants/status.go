package constants

import "time"

// DefaultCommandTimeout bounds a single transmission triggered over MQTT.
const DefaultCommandTimeout = 30 * time.Second

// Heartbeat status
const StatusAlive = "alive"

// Transmission statuses
const (
	// TxStatusSuccess indicates every matched code went on the air
	TxStatusSuccess = "success"
	// TxStatusFailed indicates the transmission was aborted
	TxStatusFailed = "failed"
)
