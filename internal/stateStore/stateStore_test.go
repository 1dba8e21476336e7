package statestore_test

import (
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/hadash/internal/models"
	statestore "github.com/wheelibin/hadash/internal/stateStore"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})

func entity(id string, state string) models.Entity {
	return models.Entity{ID: id, State: state, Attributes: map[string]any{}}
}

func Test_EntityFilter(t *testing.T) {

	t.Run("should include everything by default", func(t *testing.T) {
		t.Parallel()
		filter, err := statestore.NewEntityFilter(nil, nil)
		require.NoError(t, err)

		assert.True(t, filter.Allows("light.kitchen"))
	})

	t.Run("should apply excludes after includes", func(t *testing.T) {
		t.Parallel()
		filter, err := statestore.NewEntityFilter([]string{`^light\.`, `^switch\.`}, []string{`_debug$`})
		require.NoError(t, err)

		assert.True(t, filter.Allows("light.kitchen"))
		assert.True(t, filter.Allows("switch.kettle"))
		assert.False(t, filter.Allows("sensor.outside"))
		assert.False(t, filter.Allows("light.kitchen_debug"))
	})

	t.Run("should reject invalid patterns", func(t *testing.T) {
		t.Parallel()
		_, err := statestore.NewEntityFilter([]string{"("}, nil)

		assert.Error(t, err)
	})
}

func Test_HandleStateChanged(t *testing.T) {

	t.Run("should store new snapshots", func(t *testing.T) {
		t.Parallel()
		store := statestore.NewStateStore(logger, nil)
		newState := entity("light.kitchen", "on")

		change, changed := store.HandleStateChanged(models.StateChangedEvent{EntityID: "light.kitchen", NewState: &newState})

		assert.True(t, changed)
		assert.False(t, change.Removed)
		stored := store.All()
		require.Len(t, stored, 1)
		assert.Equal(t, "on", stored[0].State)
	})

	t.Run("should ignore snapshots that change nothing", func(t *testing.T) {
		t.Parallel()
		store := statestore.NewStateStore(logger, nil)
		newState := entity("light.kitchen", "on")
		store.HandleStateChanged(models.StateChangedEvent{EntityID: "light.kitchen", NewState: &newState})

		_, changed := store.HandleStateChanged(models.StateChangedEvent{EntityID: "light.kitchen", NewState: &newState})

		assert.False(t, changed)
	})

	t.Run("should remove entities when the new state is null", func(t *testing.T) {
		t.Parallel()
		store := statestore.NewStateStore(logger, nil)
		store.Replace([]models.Entity{entity("light.kitchen", "on")})

		change, changed := store.HandleStateChanged(models.StateChangedEvent{EntityID: "light.kitchen"})

		assert.True(t, changed)
		assert.True(t, change.Removed)
		assert.Equal(t, "light.kitchen", change.Entity.ID)
		assert.Empty(t, store.All())
	})

	t.Run("should ignore filtered entities", func(t *testing.T) {
		t.Parallel()
		filter, _ := statestore.NewEntityFilter([]string{`^light\.`}, nil)
		store := statestore.NewStateStore(logger, filter)
		newState := entity("sensor.outside", "12")

		_, changed := store.HandleStateChanged(models.StateChangedEvent{EntityID: "sensor.outside", NewState: &newState})

		assert.False(t, changed)
		assert.Empty(t, store.All())
	})
}

func Test_Replace(t *testing.T) {

	t.Run("should replace the full set and report what changed", func(t *testing.T) {
		t.Parallel()
		// arrange
		store := statestore.NewStateStore(logger, nil)
		store.Replace([]models.Entity{
			entity("light.a", "on"),
			entity("light.b", "on"),
			entity("light.c", "off"),
		})

		// act
		changes := store.Replace([]models.Entity{
			entity("light.c", "off"),
			entity("light.b", "off"),
			entity("light.d", "on"),
		})

		// assert
		summary := lo.Map(changes, func(c statestore.Change, _ int) string {
			if c.Removed {
				return "-" + c.Entity.ID
			}
			return "+" + c.Entity.ID
		})
		assert.Equal(t, []string{"-light.a", "+light.b", "+light.d"}, summary)

		ids := lo.Map(store.All(), func(e models.Entity, _ int) string { return e.ID })
		assert.Equal(t, []string{"light.b", "light.c", "light.d"}, ids)
	})
}
