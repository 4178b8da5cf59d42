package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plantpulse/plantpulse/pkg/types"
)

func TestFailureWindowFor(t *testing.T) {
	tests := []struct {
		prob float64
		want types.FailureWindow
	}{
		{0, types.WindowNone},
		{29.9, types.WindowNone},
		{30, types.WindowTwoWeeks},
		{49.9, types.WindowTwoWeeks},
		{50, types.WindowWeek},
		{69.9, types.WindowWeek},
		{70, types.WindowTwoDays},
		{84.9, types.WindowTwoDays},
		{85, types.WindowImmediate},
		{100, types.WindowImmediate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FailureWindowFor(tt.prob), "prob=%v", tt.prob)
	}
}

func TestAlertLevelFor(t *testing.T) {
	tests := []struct {
		name          string
		prob, health  float64
		want          types.AlertLevel
	}{
		{"nominal", 10, 95, types.AlertGreen},
		{"boundary stays green", 40, 70, types.AlertGreen},
		{"fault above 40", 40.1, 95, types.AlertYellow},
		{"health below 70", 10, 69.9, types.AlertYellow},
		{"fault above 70", 70.1, 95, types.AlertRed},
		{"health below 40", 10, 39.9, types.AlertRed},
		{"red wins over yellow", 90, 65, types.AlertRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AlertLevelFor(tt.prob, tt.health))
		})
	}
}

func TestMachineStatusFor(t *testing.T) {
	assert.Equal(t, types.MachineOperational, MachineStatusFor(10, 95))
	assert.Equal(t, types.MachineWarning, MachineStatusFor(50, 95))
	assert.Equal(t, types.MachineWarning, MachineStatusFor(10, 55))
	assert.Equal(t, types.MachineCritical, MachineStatusFor(80, 95))
}
