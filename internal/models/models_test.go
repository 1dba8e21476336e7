package models_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/hadash/internal/models"
)

func Test_Category(t *testing.T) {
	tests := []struct {
		id          string
		deviceClass string
		expected    models.Category
	}{
		{"light.kitchen", "", models.CategoryLight},
		{"switch.kettle", "", models.CategorySwitch},
		{"sensor.outside_temperature", "temperature", models.CategorySensor},
		{"climate.hall", "", models.CategoryThermostat},
		{"binary_sensor.landing", "occupancy", models.CategoryOccupancy},
		{"binary_sensor.porch", "motion", models.CategoryOccupancy},
		{"binary_sensor.office", "presence", models.CategoryOccupancy},
		{"binary_sensor.back_door", "door", models.CategoryOther},
		{"media_player.tv", "", models.CategoryOther},
		{"not-an-entity-id", "", models.CategoryOther},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			e := models.Entity{ID: tt.id, Attributes: map[string]any{}}
			if tt.deviceClass != "" {
				e.Attributes["device_class"] = tt.deviceClass
			}
			assert.Equal(t, tt.expected, e.Category())
		})
	}
}

func Test_Entity(t *testing.T) {

	t.Run("should decode a hub state", func(t *testing.T) {
		t.Parallel()
		raw := `{
			"entity_id": "light.office",
			"state": "on",
			"attributes": {
				"friendly_name": "Office Lamp",
				"brightness": 180,
				"supported_color_modes": ["color_temp", "xy"]
			},
			"last_changed": "2024-01-02T10:00:00+00:00",
			"last_updated": "2024-01-02T10:00:01+00:00"
		}`

		var e models.Entity
		require.NoError(t, json.Unmarshal([]byte(raw), &e))

		assert.Equal(t, "light", e.Domain())
		assert.Equal(t, "Office Lamp", e.DisplayName())
		assert.True(t, e.IsOn())
		brightness, ok := e.Int("brightness")
		assert.True(t, ok)
		assert.Equal(t, 180, brightness)
		assert.True(t, e.SupportsColorMode("color_temp"))
		assert.False(t, e.SupportsColorMode("hs"))
	})

	t.Run("should treat missing and mistyped attributes as absent", func(t *testing.T) {
		t.Parallel()
		e := models.Entity{ID: "light.hall", Attributes: map[string]any{"brightness": "bright", "friendly_name": nil}}

		_, ok := e.Number("brightness")
		assert.False(t, ok)
		_, ok = e.Number("color_temp_kelvin")
		assert.False(t, ok)
		assert.Equal(t, "light.hall", e.DisplayName())
		assert.Nil(t, e.StringList("supported_color_modes"))
	})

	t.Run("should accept the numeric shapes callers produce", func(t *testing.T) {
		t.Parallel()
		e := models.Entity{Attributes: map[string]any{
			"a": 1.5,
			"b": 2,
			"c": int64(3),
			"d": json.Number("4.25"),
			"e": float32(0.5),
			"f": "21.5",
		}}

		for key, expected := range map[string]float64{"a": 1.5, "b": 2, "c": 3, "d": 4.25, "e": 0.5, "f": 21.5} {
			n, ok := e.Number(key)
			assert.True(t, ok, key)
			assert.Equal(t, expected, n, key)
		}
	})

	t.Run("should treat booleans and non-finite numbers as absent", func(t *testing.T) {
		t.Parallel()
		e := models.Entity{Attributes: map[string]any{
			"flag":    true,
			"nan64":   math.NaN(),
			"nan32":   float32(math.NaN()),
			"inf":     math.Inf(1),
			"nanText": "NaN",
		}}

		for key := range e.Attributes {
			_, ok := e.Number(key)
			assert.False(t, ok, key)
		}
	})

	t.Run("should report unavailable", func(t *testing.T) {
		t.Parallel()
		e := models.Entity{ID: "switch.kettle", State: "unavailable"}

		assert.True(t, e.IsUnavailable())
		assert.False(t, e.IsOn())
	})
}
