// Package devices maps shutter names to the RF codes their receivers accept.
package devices

import (
	"sort"
	"strings"

	"github.com/shutter-control/shuttergw/internal/models"
)

// defaultCodes holds the codes paired with the installed receivers. The
// "house" entry is a broadcast code every shutter listens to.
var defaultCodes = map[string]map[string]uint64{
	"kitchen": {
		"up":   95357333777,
		"down": 95357333811,
		"stop": 95357333845,
	},
	"lroom_l": {
		"up":   653685920017,
		"down": 653685920051,
		"stop": 653685920085,
	},
	"lroom_m": {
		"up":   181260607761,
		"down": 181260607795,
		"stop": 181260607829,
	},
	"lroom_r": {
		"up":   99640512785,
		"down": 99640512819,
		"stop": 99640512853,
	},
	"house": {
		"up":   86755979281,
		"down": 86755979315,
		"stop": 86755979349,
	},
}

// Match pairs a resolved device with the code to put on the air.
type Match struct {
	Device string
	Code   uint64
}

// Registry resolves device patterns against the configured code table.
type Registry struct {
	codes map[string]map[string]uint64
}

// NewRegistry builds a registry from the configured table. An empty table
// falls back to the built-in codes.
func NewRegistry(codes map[string]map[string]uint64) *Registry {
	if len(codes) == 0 {
		codes = defaultCodes
	}
	return &Registry{codes: codes}
}

// Resolve returns a match for every device whose name contains pattern and
// which knows command. Devices matching the pattern without the command are
// skipped. Matches are sorted by device name for stable transmission order.
func (r *Registry) Resolve(pattern, command string) []Match {
	matches := make([]Match, 0)
	for name, commands := range r.codes {
		if !strings.Contains(name, pattern) {
			continue
		}
		if code, ok := commands[command]; ok {
			matches = append(matches, Match{Device: name, Code: code})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Device < matches[j].Device })
	return matches
}

// Devices lists every configured device with its supported commands, sorted.
func (r *Registry) Devices() []models.DeviceSummary {
	summaries := make([]models.DeviceSummary, 0, len(r.codes))
	for name, commands := range r.codes {
		supported := make([]string, 0, len(commands))
		for command := range commands {
			supported = append(supported, command)
		}
		sort.Strings(supported)
		summaries = append(summaries, models.DeviceSummary{Name: name, Commands: supported})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries
}
