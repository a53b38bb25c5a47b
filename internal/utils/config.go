package utils

import (
	"github.com/shutter-control/shuttergw/pkg/file"
	"github.com/shutter-control/shuttergw/pkg/rf"
)

// Config represents the structure of the configuration file.
type Config struct {
	HTTP struct {
		Addr         string `yaml:"addr"`          // Listen address for the HTTP API
		ReadTimeout  int    `yaml:"read_timeout"`  // Read timeout (in seconds)
		WriteTimeout int    `yaml:"write_timeout"` // Write timeout (in seconds)
		IdleTimeout  int    `yaml:"idle_timeout"`  // Idle timeout (in seconds)
	} `yaml:"http"`

	GPIO struct {
		Pin         int `yaml:"pin"`          // BCM pin wired to the transmitter data line
		Protocol    int `yaml:"protocol"`     // Wire protocol id
		PulseLength int `yaml:"pulse_length"` // Pulse length override (in microseconds)
		Repeats     int `yaml:"repeats"`      // Times each code is repeated on air
		CodeBits    int `yaml:"code_bits"`    // Code width in bits
	} `yaml:"gpio"`

	Identity struct {
		DeviceFile string `yaml:"device_file"` // Path to the device identity file
	} `yaml:"identity"`

	MQTT struct {
		Enabled       bool   `yaml:"enabled"`        // Enable/disable the MQTT channel
		Broker        string `yaml:"broker"`         // MQTT broker address
		ClientID      string `yaml:"client_id"`      // MQTT client ID prefix
		CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate (optional)
	} `yaml:"mqtt"`

	Services struct {
		Command struct {
			Enabled       bool   `yaml:"enabled"`        // Enable/disable the MQTT command service
			Topic         string `yaml:"topic"`          // MQTT topic for incoming commands
			ResponseTopic string `yaml:"response_topic"` // MQTT topic for command results
			QOS           int    `yaml:"qos"`            // MQTT QoS level for command messages
			Timeout       int    `yaml:"timeout"`        // Maximum time for one transmission (in seconds)
		} `yaml:"command"`

		Heartbeat struct {
			Enabled  bool   `yaml:"enabled"`  // Enable/disable the heartbeat service
			Topic    string `yaml:"topic"`    // MQTT topic for heartbeat messages
			Interval int    `yaml:"interval"` // Interval between heartbeats (in seconds)
			QOS      int    `yaml:"qos"`      // MQTT QoS level for heartbeat messages
		} `yaml:"heartbeat"`
	} `yaml:"services"`

	// Devices overrides the built-in device code table:
	// device name -> command -> decimal code.
	Devices map[string]map[string]uint64 `yaml:"devices"`
}

// LoadConfig loads the YAML configuration from the specified file and fills
// in defaults for everything left unset.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	if err := fileClient.ReadYamlFile(filename, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = "0.0.0.0:8080"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 10
	}
	if c.HTTP.WriteTimeout <= 0 {
		// A full transmission of a broadcast pattern takes a few seconds.
		c.HTTP.WriteTimeout = 30
	}
	if c.HTTP.IdleTimeout <= 0 {
		c.HTTP.IdleTimeout = 60
	}

	if c.GPIO.Pin <= 0 {
		c.GPIO.Pin = rf.DefaultGPIOPin
	}
	if c.GPIO.Protocol <= 0 {
		c.GPIO.Protocol = rf.DefaultProtocol
	}
	if c.GPIO.Repeats <= 0 {
		c.GPIO.Repeats = rf.DefaultRepeats
	}
	if c.GPIO.CodeBits <= 0 {
		c.GPIO.CodeBits = rf.DefaultCodeBits
	}

	if c.Identity.DeviceFile == "" {
		c.Identity.DeviceFile = "configs/device.json"
	}

	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "shuttergw"
	}

	if c.Services.Command.Topic == "" {
		c.Services.Command.Topic = "shuttergw/commands"
	}
	if c.Services.Command.ResponseTopic == "" {
		c.Services.Command.ResponseTopic = "shuttergw/command-responses"
	}
	if c.Services.Command.QOS <= 0 {
		c.Services.Command.QOS = 1
	}
	if c.Services.Heartbeat.Topic == "" {
		c.Services.Heartbeat.Topic = "shuttergw/heartbeat"
	}
	if c.Services.Heartbeat.Interval <= 0 {
		c.Services.Heartbeat.Interval = 30
	}
	if c.Services.Heartbeat.QOS <= 0 {
		c.Services.Heartbeat.QOS = 1
	}
}
