package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/shutter-control/shuttergw/internal/constants"
	"github.com/shutter-control/shuttergw/internal/models"
	"github.com/shutter-control/shuttergw/pkg/identity"
	"github.com/shutter-control/shuttergw/pkg/mqtt"
)

// CommandService executes shutter commands received via MQTT and publishes
// the results back to a response topic.
type CommandService struct {
	// Configuration Fields
	subTopic  string
	respTopic string
	qos       int
	timeout   time.Duration

	// Dependencies
	shutter    ShutterSender
	mqttClient mqtt.MQTTClient
	deviceInfo identity.DeviceInfoInterface
	logger     zerolog.Logger

	// Internal state management
	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCommandService initializes a new CommandService with given parameters.
func NewCommandService(subTopic, respTopic string, qos int, timeout time.Duration, shutter ShutterSender,
	mqttClient mqtt.MQTTClient, deviceInfo identity.DeviceInfoInterface, logger zerolog.Logger) *CommandService {

	if timeout <= 0 {
		timeout = constants.DefaultCommandTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &CommandService{
		subTopic:   subTopic,
		respTopic:  respTopic,
		qos:        qos,
		timeout:    timeout,
		shutter:    shutter,
		mqttClient: mqttClient,
		deviceInfo: deviceInfo,
		logger:     logger,
		stopChan:   make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start subscribes to the MQTT topic and listens for incoming commands.
func (cs *CommandService) Start() error {
	topic := cs.subTopic + "/" + cs.deviceInfo.GetDeviceID()
	cs.logger.Info().Str("topic", topic).Msg("Starting CommandService and subscribing to MQTT topic")

	token := cs.mqttClient.Subscribe(topic, byte(cs.qos), cs.HandleCommand)
	token.Wait()
	if err := token.Error(); err != nil {
		cs.logger.Error().Err(err).Str("topic", topic).Msg("Failed to subscribe to MQTT topic")
		return err
	}

	cs.logger.Info().Str("topic", topic).Msg("Successfully subscribed to MQTT topic")
	return nil
}

// Stop gracefully shuts down the service, unsubscribing from MQTT and
// waiting for in-flight transmissions to finish.
func (cs *CommandService) Stop() error {
	cs.cancel()
	close(cs.stopChan)
	cs.wg.Wait()

	topic := cs.subTopic + "/" + cs.deviceInfo.GetDeviceID()
	token := cs.mqttClient.Unsubscribe(topic)
	token.Wait()
	if err := token.Error(); err != nil {
		cs.logger.Error().Err(err).Str("topic", topic).Msg("Failed to unsubscribe from MQTT topic")
		return err
	}

	cs.logger.Info().Msg("CommandService stopped successfully")
	return nil
}

// HandleCommand processes an incoming command message, transmits it, and
// publishes the outcome.
func (cs *CommandService) HandleCommand(client MQTT.Client, msg MQTT.Message) {
	cs.mu.Lock()

	select {
	case <-cs.stopChan:
		cs.mu.Unlock()
		cs.logger.Warn().Msg("Received command but service is stopping, ignoring command")
		return
	default:
		cs.wg.Add(1)
		cs.mu.Unlock()
	}

	defer cs.wg.Done()

	cs.logger.Info().Str("topic", msg.Topic()).Msg("Received command from MQTT topic")

	var request models.CmdRequest
	if err := json.Unmarshal(msg.Payload(), &request); err != nil {
		cs.logger.Error().Err(err).Msg("Failed to parse command payload")
		cs.publishResponse(models.CmdResponse{
			DeviceID:  cs.deviceInfo.GetDeviceID(),
			Status:    constants.TxStatusFailed,
			Error:     "invalid command payload: " + err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	response := models.CmdResponse{
		DeviceID:  cs.deviceInfo.GetDeviceID(),
		Device:    request.Device,
		Command:   request.Command,
		Timestamp: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(cs.ctx, cs.timeout)
	defer cancel()

	result, err := cs.shutter.Send(ctx, request.Device, request.Command)
	if result != nil {
		response.TxID = result.TxID
		response.Matched = result.Matched
	}
	if err != nil {
		cs.logger.Error().Err(err).Msg("Command transmission failed")
		response.Status = constants.TxStatusFailed
		response.Error = err.Error()
	} else {
		response.Status = constants.TxStatusSuccess
	}

	cs.publishResponse(response)
}

// publishResponse publishes the command outcome to the response topic.
func (cs *CommandService) publishResponse(response models.CmdResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		cs.logger.Error().Err(err).Msg("Failed to serialize command response")
		return
	}

	topic := cs.respTopic + "/" + cs.deviceInfo.GetDeviceID()
	token := cs.mqttClient.Publish(topic, byte(cs.qos), false, payload)
	token.Wait()

	if err := token.Error(); err != nil {
		cs.logger.Error().Err(err).Str("topic", topic).Msg("Failed to publish command response")
	} else {
		cs.logger.Debug().Str("topic", topic).Msg("Command response published")
	}
}
