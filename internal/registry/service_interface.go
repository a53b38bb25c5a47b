package registry

// Service is the interface for the gateway's long-running plug-in services.
type Service interface {
	Start() error
	Stop() error
}
