package models_test

import (
	"fmt"
	"testing"
	"time"

	"lightsout/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestDeviceStates_ScoreAndStatusConsistency(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		states := models.DeviceStates{
			Lights:   mask&1 != 0,
			Computer: mask&2 != 0,
			Aircon:   mask&4 != 0,
			Fan:      mask&8 != 0,
		}
		t.Run(fmt.Sprintf("mask_%02d", mask), func(t *testing.T) {
			expected := 0
			for _, on := range []bool{states.Lights, states.Computer, states.Aircon, states.Fan} {
				if on {
					expected++
				}
			}

			assert.Equal(t, expected, states.Score())
			if expected == 4 {
				assert.Equal(t, models.StatusFullyPassed, states.Status())
			} else {
				assert.Equal(t, models.StatusLeftRunning, states.Status())
			}
		})
	}
}

func TestDeviceStates_AnySet(t *testing.T) {
	assert.False(t, models.DeviceStates{}.AnySet())
	assert.True(t, models.DeviceStates{Fan: true}.AnySet())
}

func TestInspectionRecord_RecalculateOverridesStaleInput(t *testing.T) {
	record := models.InspectionRecord{
		DeviceStates: models.DeviceStates{Lights: true, Computer: true},
		// Stale derived values, e.g. from a client payload. Never trusted.
		Score:  4,
		Status: models.StatusFullyPassed,
	}

	record.Recalculate()

	assert.Equal(t, 2, record.Score)
	assert.Equal(t, models.StatusLeftRunning, record.Status)
}

func TestInspectionRecord_DateString(t *testing.T) {
	record := models.InspectionRecord{
		Date: datatypes.Date(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
	}

	assert.Equal(t, "2026-03-02", record.DateString())
}
