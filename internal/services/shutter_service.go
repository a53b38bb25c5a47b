package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"

	"github.com/shutter-control/shuttergw/internal/constants"
	"github.com/shutter-control/shuttergw/internal/devices"
	"github.com/shutter-control/shuttergw/internal/models"
)

// CodeTransmitter puts raw codes on the air.
type CodeTransmitter interface {
	Send(ctx context.Context, codes []uint64) error
}

// ShutterSender is the command surface exposed to the HTTP and MQTT layers.
type ShutterSender interface {
	Send(ctx context.Context, pattern, command string) (*models.TransmitResult, error)
}

// ShutterService resolves shutter command requests against the device
// registry and drives the RF transmitter.
type ShutterService struct {
	registry    *devices.Registry
	transmitter CodeTransmitter
	stats       cmap.ConcurrentMap[string, models.DeviceStats]
	logger      zerolog.Logger
}

// NewShutterService initializes a new ShutterService.
func NewShutterService(registry *devices.Registry, transmitter CodeTransmitter, logger zerolog.Logger) *ShutterService {
	return &ShutterService{
		registry:    registry,
		transmitter: transmitter,
		stats:       cmap.New[models.DeviceStats](),
		logger:      logger,
	}
}

// Send transmits command to every device matching pattern. A pattern that
// matches nothing transmits nothing and is not an error.
func (s *ShutterService) Send(ctx context.Context, pattern, command string) (*models.TransmitResult, error) {
	if pattern == "" || command == "" {
		return nil, errors.New("device and command are required")
	}

	matches := s.registry.Resolve(pattern, command)
	result := &models.TransmitResult{
		TxID:      uuid.New().String(),
		Pattern:   pattern,
		Command:   command,
		Matched:   len(matches),
		Status:    constants.TxStatusSuccess,
		Timestamp: time.Now().UTC(),
	}

	if len(matches) == 0 {
		s.logger.Warn().Str("pattern", pattern).Str("command", command).Msg("No devices matched, nothing transmitted")
		return result, nil
	}

	codes := make([]uint64, 0, len(matches))
	for _, match := range matches {
		codes = append(codes, match.Code)
	}

	s.logger.Info().
		Str("tx_id", result.TxID).
		Str("pattern", pattern).
		Str("command", command).
		Int("matched", len(matches)).
		Msg("Transmitting shutter command")

	if err := s.transmitter.Send(ctx, codes); err != nil {
		result.Status = constants.TxStatusFailed
		s.recordStats(matches, command, constants.TxStatusFailed)
		s.logger.Error().Err(err).Str("tx_id", result.TxID).Msg("Transmission failed")
		return result, err
	}

	s.recordStats(matches, command, constants.TxStatusSuccess)
	return result, nil
}

// recordStats updates the per-device counters for every matched device.
func (s *ShutterService) recordStats(matches []devices.Match, command, status string) {
	now := time.Now().UTC()
	for _, match := range matches {
		s.stats.Upsert(match.Device, models.DeviceStats{}, func(exists bool, valueInMap, _ models.DeviceStats) models.DeviceStats {
			if !exists {
				valueInMap = models.DeviceStats{Device: match.Device}
			}
			valueInMap.TxCount++
			valueInMap.LastCommand = command
			valueInMap.LastStatus = status
			valueInMap.LastTxAt = now
			return valueInMap
		})
	}
}

// Devices lists the configured devices and their supported commands.
func (s *ShutterService) Devices() []models.DeviceSummary {
	return s.registry.Devices()
}

// Stats returns per-device transmission counters, sorted by device name.
func (s *ShutterService) Stats() []models.DeviceStats {
	stats := make([]models.DeviceStats, 0, s.stats.Count())
	for _, deviceStats := range s.stats.Items() {
		stats = append(stats, deviceStats)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Device < stats[j].Device })
	return stats
}
