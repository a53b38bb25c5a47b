package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shutter-control/shuttergw/internal/api"
	"github.com/shutter-control/shuttergw/internal/devices"
	"github.com/shutter-control/shuttergw/internal/service_registry"
	"github.com/shutter-control/shuttergw/internal/services"
	"github.com/shutter-control/shuttergw/internal/utils"
	"github.com/shutter-control/shuttergw/pkg/file"
	"github.com/shutter-control/shuttergw/pkg/gpio"
	"github.com/shutter-control/shuttergw/pkg/identity"
	"github.com/shutter-control/shuttergw/pkg/mqtt"
	"github.com/shutter-control/shuttergw/pkg/rf"
)

func main() {
	// Set up structured logging with JSON output
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "shuttergw").Logger()

	// Initialize file operations handler
	fileClient := file.NewFileService()

	// Load configuration from file
	config, err := utils.LoadConfig("configs/config.yaml", fileClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Load the gateway identity
	deviceInfo := identity.NewDeviceInfo(config.Identity.DeviceFile, fileClient)
	if err := deviceInfo.LoadDeviceInfo(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to load device information")
	}

	// Map the GPIO memory range and set up the transmitter
	if err := gpio.Open(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to open GPIO")
	}
	defer gpio.Close()

	pin := gpio.NewPin(config.GPIO.Pin)
	transmitter, err := rf.NewTransmitter(pin, config.GPIO.Protocol, config.GPIO.PulseLength,
		config.GPIO.Repeats, config.GPIO.CodeBits, logger.With().Str("component", "rf").Logger())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize RF transmitter")
	}
	logger.Info().Int("pin", config.GPIO.Pin).Int("protocol", config.GPIO.Protocol).Msg("RF transmitter ready")

	registry := devices.NewRegistry(config.Devices)
	shutter := services.NewShutterService(registry, transmitter, logger.With().Str("component", "shutter").Logger())

	// Start the HTTP API
	server := api.NewServer(shutter, deviceInfo, logger.With().Str("component", "api").Logger())
	go func() {
		if err := server.Start(config.HTTP.Addr,
			time.Duration(config.HTTP.ReadTimeout)*time.Second,
			time.Duration(config.HTTP.WriteTimeout)*time.Second,
			time.Duration(config.HTTP.IdleTimeout)*time.Second); err != nil {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Optionally bring up the MQTT channel and its services
	var mqttClient *mqtt.MqttService
	var serviceRegistry *service_registry.ServiceRegistry
	if config.MQTT.Enabled {
		// Generate a unique MQTT Client ID by appending a UUID
		clientID := config.MQTT.ClientID + "-" + uuid.New().String()
		logger.Info().Str("client_id", clientID).Msg("Using MQTT Client ID")

		mqttClient = mqtt.NewMqttService(fileClient, logger.With().Str("component", "mqtt").Logger())
		if err := mqttClient.Initialize(config.MQTT.Broker, clientID, config.MQTT.CACertificate); err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize MQTT connection")
		}

		serviceRegistry = service_registry.NewServiceRegistry(mqttClient, logger)
		serviceRegistry.RegisterServices(config, deviceInfo, shutter)
		if err := serviceRegistry.StartServices(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start services")
		}
	}

	logger.Info().Str("device_id", deviceInfo.GetDeviceID()).Msg("Gateway started successfully")

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	logger.Info().Msg("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	if serviceRegistry != nil {
		serviceRegistry.StopServices()
	}
	if mqttClient != nil {
		mqttClient.Disconnect(250)
	}
}
