package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shutter-control/shuttergw/internal/constants"
	"github.com/shutter-control/shuttergw/internal/devices"
)

func newShutterService(transmitter *MockTransmitter) *ShutterService {
	return NewShutterService(devices.NewRegistry(nil), transmitter, zerolog.Nop())
}

// TestShutterService_Send_Success tests a successful single-device transmission.
func TestShutterService_Send_Success(t *testing.T) {
	transmitter := new(MockTransmitter)
	transmitter.On("Send", mock.Anything, []uint64{95357333777}).Return(nil)

	service := newShutterService(transmitter)

	result, err := service.Send(context.Background(), "kitchen", "up")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.TxID)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, constants.TxStatusSuccess, result.Status)

	stats := service.Stats()
	assert.Len(t, stats, 1)
	assert.Equal(t, "kitchen", stats[0].Device)
	assert.Equal(t, int64(1), stats[0].TxCount)
	assert.Equal(t, "up", stats[0].LastCommand)
	assert.Equal(t, constants.TxStatusSuccess, stats[0].LastStatus)

	transmitter.AssertExpectations(t)
}

// TestShutterService_Send_PatternFanout tests that a substring pattern
// transmits one code per matched device, in name order.
func TestShutterService_Send_PatternFanout(t *testing.T) {
	transmitter := new(MockTransmitter)
	transmitter.On("Send", mock.Anything, []uint64{653685920017, 181260607761, 99640512785}).Return(nil)

	service := newShutterService(transmitter)

	result, err := service.Send(context.Background(), "lroom", "up")

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Matched)
	assert.Len(t, service.Stats(), 3)

	transmitter.AssertExpectations(t)
}

// TestShutterService_Send_NoMatch tests that an unmatched pattern transmits
// nothing and still succeeds.
func TestShutterService_Send_NoMatch(t *testing.T) {
	transmitter := new(MockTransmitter)

	service := newShutterService(transmitter)

	result, err := service.Send(context.Background(), "garage", "up")

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Matched)
	assert.Equal(t, constants.TxStatusSuccess, result.Status)
	assert.Empty(t, service.Stats())

	transmitter.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

// TestShutterService_Send_TransmitFailure tests that a transmitter error is
// surfaced and recorded.
func TestShutterService_Send_TransmitFailure(t *testing.T) {
	transmitter := new(MockTransmitter)
	transmitter.On("Send", mock.Anything, mock.Anything).Return(errors.New("tx is not enabled"))

	service := newShutterService(transmitter)

	result, err := service.Send(context.Background(), "kitchen", "down")

	assert.Error(t, err)
	assert.Equal(t, constants.TxStatusFailed, result.Status)

	stats := service.Stats()
	assert.Len(t, stats, 1)
	assert.Equal(t, constants.TxStatusFailed, stats[0].LastStatus)
}

// TestShutterService_Send_MissingFields tests presence validation.
func TestShutterService_Send_MissingFields(t *testing.T) {
	service := newShutterService(new(MockTransmitter))

	_, err := service.Send(context.Background(), "", "up")
	assert.Error(t, err)

	_, err = service.Send(context.Background(), "kitchen", "")
	assert.Error(t, err)
}

// TestShutterService_Devices tests the device listing passthrough.
func TestShutterService_Devices(t *testing.T) {
	service := newShutterService(new(MockTransmitter))

	summaries := service.Devices()

	assert.Len(t, summaries, 5)
}
