package models

import "time"

// Heartbeat represents the periodic liveness report published over MQTT.
type Heartbeat struct {
	DeviceID    string    `json:"device_id"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	CPUUsage    *float64  `json:"cpu_usage,omitempty"`    // Percentage across all cores.
	MemoryUsage *float64  `json:"memory_usage,omitempty"` // Percentage of physical memory in use.
}
