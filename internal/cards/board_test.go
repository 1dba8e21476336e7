package cards_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/hadash/internal/cards"
	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/models"
	"github.com/wheelibin/hadash/mocks"
)

func named(id string, name string, state string) models.Entity {
	return models.Entity{ID: id, State: state, Attributes: map[string]any{constants.AttrFriendlyName: name}}
}

func Test_BoardViews(t *testing.T) {

	t.Run("should order cards by room, then name, then id", func(t *testing.T) {
		t.Parallel()
		// arrange
		board := cards.NewBoard(nil)
		board.SetRooms(map[string]string{
			"light.b":  "Kitchen",
			"switch.a": "Bedroom",
		})
		board.SyncAll([]models.Entity{
			named("light.b", "Ceiling", constants.StateOn),
			named("switch.a", "Fan", constants.StateOff),
			named("sensor.z", "alpha", "12"),
			named("sensor.y", "Alpha", "13"),
		})

		// act
		views := board.Views()

		// assert
		ids := lo.Map(views, func(v cards.View, _ int) string { return v.EntityID })
		assert.Equal(t, []string{"switch.a", "light.b", "sensor.y", "sensor.z"}, ids)
		assert.Equal(t, "Bedroom", views[0].Room)
	})

	t.Run("should unmount entities missing from a full sync", func(t *testing.T) {
		t.Parallel()
		board := cards.NewBoard(nil)
		board.SyncAll([]models.Entity{named("light.a", "A", constants.StateOn), named("light.b", "B", constants.StateOn)})

		board.SyncAll([]models.Entity{named("light.b", "B", constants.StateOff)})

		_, found := board.View("light.a")
		assert.False(t, found)
		assert.Len(t, board.Views(), 1)
	})
}

func Test_BoardSync(t *testing.T) {

	t.Run("should keep card state for the same entity and kind", func(t *testing.T) {
		t.Parallel()
		// arrange
		commander := mocks.NewMockCardsCommander(t)
		commander.On("SetAttributes", mock.Anything, "light.office", mock.Anything).Return(nil)
		board := cards.NewBoard(commander)
		board.Sync(colorTempLight(constants.StateOn, map[string]any{constants.AttrColorTempKelvin: 3000.0}))

		// act
		_, err := board.Act(context.Background(), "light.office", cards.SliderAction(cards.ControlColorTemp, 5000))
		require.NoError(t, err)
		view, _ := board.View("light.office")

		// assert
		slider, _ := view.Control(cards.ControlColorTemp)
		assert.Equal(t, 5000.0, slider.Value)
	})

	t.Run("should remount when a snapshot changes the card kind", func(t *testing.T) {
		t.Parallel()
		board := cards.NewBoard(nil)
		board.Sync(models.Entity{ID: "binary_sensor.hall", State: constants.StateOn, Attributes: map[string]any{"device_class": "motion"}})

		view := board.Sync(models.Entity{ID: "binary_sensor.hall", State: constants.StateOn, Attributes: map[string]any{"device_class": "door"}})

		assert.Equal(t, cards.KindDefault, view.Kind)
	})

	t.Run("should clear a room assignment", func(t *testing.T) {
		t.Parallel()
		board := cards.NewBoard(nil)
		board.Sync(named("switch.kettle", "Kettle", constants.StateOff))
		board.SetRoom("switch.kettle", "Kitchen")

		view, found := board.SetRoom("switch.kettle", "")

		assert.True(t, found)
		assert.Empty(t, view.Room)
	})

	t.Run("should not assign a room to an unknown entity", func(t *testing.T) {
		t.Parallel()
		board := cards.NewBoard(nil)

		_, found := board.SetRoom("switch.kettle", "Kitchen")
		view := board.Sync(named("switch.kettle", "Kettle", constants.StateOff))

		assert.False(t, found)
		assert.Empty(t, view.Room)
	})
}

func Test_BoardAct(t *testing.T) {

	t.Run("should route the action to the entity's card", func(t *testing.T) {
		t.Parallel()
		commander := mocks.NewMockCardsCommander(t)
		commander.On("ToggleEntity", mock.Anything, "switch.kettle").Return(nil).Once()
		board := cards.NewBoard(commander)
		board.Sync(named("switch.kettle", "Kettle", constants.StateOff))

		view, err := board.Act(context.Background(), "switch.kettle", cards.ToggleAction())

		assert.NoError(t, err)
		assert.False(t, view.Active)
	})

	t.Run("should return not found for unknown entities", func(t *testing.T) {
		t.Parallel()
		board := cards.NewBoard(mocks.NewMockCardsCommander(t))

		_, err := board.Act(context.Background(), "light.nowhere", cards.ToggleAction())

		assert.ErrorIs(t, err, cards.ErrNotFound)
	})

	t.Run("should not command unavailable entities", func(t *testing.T) {
		t.Parallel()
		board := cards.NewBoard(mocks.NewMockCardsCommander(t))
		board.Sync(named("switch.kettle", "Kettle", constants.StateUnavailable))

		view, err := board.Act(context.Background(), "switch.kettle", cards.ToggleAction())

		assert.ErrorIs(t, err, cards.ErrUnavailable)
		assert.Equal(t, constants.UnavailableTooltip, view.Tooltip)
	})
}
