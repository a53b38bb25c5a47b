package service_registry

import (
	"fmt"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/rs/zerolog"

	"github.com/shutter-control/shuttergw/internal/registry"
	"github.com/shutter-control/shuttergw/internal/services"
	"github.com/shutter-control/shuttergw/internal/utils"
	"github.com/shutter-control/shuttergw/pkg/identity"
	"github.com/shutter-control/shuttergw/pkg/mqtt"
)

// ServiceRegistry manages a collection of services and their startup order.
type ServiceRegistry struct {
	services   *orderedmap.OrderedMap[string, registry.Service]
	mqttClient mqtt.MQTTClient
	logger     zerolog.Logger
}

// NewServiceRegistry initializes and returns a new ServiceRegistry instance.
func NewServiceRegistry(mqttClient mqtt.MQTTClient, logger zerolog.Logger) *ServiceRegistry {
	return &ServiceRegistry{
		services:   orderedmap.NewOrderedMap[string, registry.Service](),
		mqttClient: mqttClient,
		logger:     logger,
	}
}

// RegisterService adds a service to the registry and maintains the order of registration.
func (sr *ServiceRegistry) RegisterService(name string, svc registry.Service) {
	if _, exists := sr.services.Get(name); exists {
		sr.logger.Warn().Str("service", name).Msg("Service is already registered")
		return
	}
	sr.services.Set(name, svc)
	sr.logger.Info().Str("service", name).Msg("Registered service")
}

// RegisterServices registers services based on the provided configuration.
func (sr *ServiceRegistry) RegisterServices(config *utils.Config, deviceInfo identity.DeviceInfoInterface, shutter services.ShutterSender) {
	if config.Services.Command.Enabled {
		sr.RegisterService("command", services.NewCommandService(
			config.Services.Command.Topic,
			config.Services.Command.ResponseTopic,
			config.Services.Command.QOS,
			time.Duration(config.Services.Command.Timeout)*time.Second,
			shutter,
			sr.mqttClient,
			deviceInfo,
			sr.logger.With().Str("service", "command").Logger(),
		))
	}

	if config.Services.Heartbeat.Enabled {
		sr.RegisterService("heartbeat", services.NewHeartbeatService(
			config.Services.Heartbeat.Topic,
			time.Duration(config.Services.Heartbeat.Interval)*time.Second,
			config.Services.Heartbeat.QOS,
			deviceInfo,
			sr.mqttClient,
			sr.logger.With().Str("service", "heartbeat").Logger(),
		))
	}
}

// StartServices starts all registered services in the order they were added.
func (sr *ServiceRegistry) StartServices() error {
	for el := sr.services.Front(); el != nil; el = el.Next() {
		sr.logger.Info().Str("service", el.Key).Msg("Starting service")
		if err := el.Value.Start(); err != nil {
			return fmt.Errorf("failed to start service %s: %w", el.Key, err)
		}
	}
	return nil
}

// StopServices stops all registered services in reverse registration order.
func (sr *ServiceRegistry) StopServices() {
	for el := sr.services.Back(); el != nil; el = el.Prev() {
		sr.logger.Info().Str("service", el.Key).Msg("Stopping service")
		if err := el.Value.Stop(); err != nil {
			sr.logger.Error().Err(err).Str("service", el.Key).Msg("Failed to stop service")
		}
	}
}
