package identity

import (
	"fmt"
	"os"

	"github.com/shutter-control/shuttergw/pkg/file"
)

// Identity holds the gateway's unique identifier and metadata.
type Identity struct {
	ID   string `json:"device_id,omitempty"`
	Name string `json:"device_name,omitempty"`
}

// DeviceInfoInterface defines methods for managing the gateway identity.
type DeviceInfoInterface interface {
	LoadDeviceInfo() error
	GetDeviceID() string
	GetDeviceIdentity() *Identity
}

// DeviceInfo manages the gateway identity and its associated file operations.
type DeviceInfo struct {
	DeviceInfoFile string
	Identity       Identity
	fileOps        file.FileOperations
}

// NewDeviceInfo initializes a new DeviceInfo instance.
func NewDeviceInfo(filePath string, fileOps file.FileOperations) DeviceInfoInterface {
	return &DeviceInfo{
		DeviceInfoFile: filePath,
		fileOps:        fileOps,
		Identity:       Identity{},
	}
}

// LoadDeviceInfo reads the identity file and populates the Identity field.
// A missing file or empty id falls back to a hostname-derived id, which is
// written back so the id stays stable across restarts.
func (d *DeviceInfo) LoadDeviceInfo() error {
	err := d.fileOps.ReadJsonFile(d.DeviceInfoFile, &d.Identity)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if d.Identity.ID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("failed to derive device id from hostname: %w", err)
		}
		d.Identity.ID = "shuttergw-" + hostname

		if err := d.fileOps.WriteJsonFile(d.DeviceInfoFile, d.Identity); err != nil {
			return fmt.Errorf("failed to persist device identity: %w", err)
		}
	}

	return nil
}

// GetDeviceIdentity returns the current gateway Identity.
func (d *DeviceInfo) GetDeviceIdentity() *Identity {
	return &d.Identity
}

// GetDeviceID returns the current gateway id.
func (d *DeviceInfo) GetDeviceID() string {
	return d.Identity.ID
}
