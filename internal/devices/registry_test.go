package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRegistry_Resolve_ExactName verifies a full device name resolves to its code.
func TestRegistry_Resolve_ExactName(t *testing.T) {
	registry := NewRegistry(nil)

	matches := registry.Resolve("kitchen", "up")

	assert.Len(t, matches, 1)
	assert.Equal(t, "kitchen", matches[0].Device)
	assert.Equal(t, uint64(95357333777), matches[0].Code)
}

// TestRegistry_Resolve_SubstringPattern verifies a pattern matches every
// device whose name contains it.
func TestRegistry_Resolve_SubstringPattern(t *testing.T) {
	registry := NewRegistry(nil)

	matches := registry.Resolve("lroom", "down")

	assert.Len(t, matches, 3)
	assert.Equal(t, "lroom_l", matches[0].Device)
	assert.Equal(t, "lroom_m", matches[1].Device)
	assert.Equal(t, "lroom_r", matches[2].Device)
	assert.Equal(t, uint64(653685920051), matches[0].Code)
}

// TestRegistry_Resolve_UnknownPattern verifies an unmatched pattern yields
// no matches rather than an error.
func TestRegistry_Resolve_UnknownPattern(t *testing.T) {
	registry := NewRegistry(nil)

	matches := registry.Resolve("garage", "up")

	assert.Empty(t, matches)
}

// TestRegistry_Resolve_UnknownCommand verifies devices matching the pattern
// without the requested command are skipped.
func TestRegistry_Resolve_UnknownCommand(t *testing.T) {
	registry := NewRegistry(nil)

	matches := registry.Resolve("kitchen", "tilt")

	assert.Empty(t, matches)
}

// TestRegistry_Resolve_Broadcast verifies the house-wide code resolves like
// any other device.
func TestRegistry_Resolve_Broadcast(t *testing.T) {
	registry := NewRegistry(nil)

	matches := registry.Resolve("house", "stop")

	assert.Len(t, matches, 1)
	assert.Equal(t, uint64(86755979349), matches[0].Code)
}

// TestRegistry_Override verifies a configured table replaces the built-in codes.
func TestRegistry_Override(t *testing.T) {
	registry := NewRegistry(map[string]map[string]uint64{
		"bedroom": {"up": 42},
	})

	assert.Len(t, registry.Resolve("bedroom", "up"), 1)
	assert.Empty(t, registry.Resolve("kitchen", "up"))
}

// TestRegistry_Devices verifies the listing is sorted with sorted commands.
func TestRegistry_Devices(t *testing.T) {
	registry := NewRegistry(nil)

	summaries := registry.Devices()

	assert.Len(t, summaries, 5)
	assert.Equal(t, "house", summaries[0].Name)
	assert.Equal(t, "kitchen", summaries[1].Name)
	assert.Equal(t, []string{"down", "stop", "up"}, summaries[0].Commands)
}
