package commands_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/hadash/internal/commands"
	"github.com/wheelibin/hadash/internal/concurrency"
	"github.com/wheelibin/hadash/internal/config"
	"github.com/wheelibin/hadash/internal/homeassistant"
	"github.com/wheelibin/hadash/mocks"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})

func Test_ServiceCalls(t *testing.T) {
	tests := []struct {
		name     string
		entityID string
		attrs    map[string]any
		domain   string
		service  string
	}{
		{"light attributes", "light.office", map[string]any{"brightness": 128}, "light", "turn_on"},
		{"climate temperature", "climate.hall", map[string]any{"temperature": 21.5}, "climate", "set_temperature"},
		{"other domains", "fan.bedroom", map[string]any{"percentage": 50}, "homeassistant", "turn_on"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			call, err := commands.SetAttributesCall(tt.entityID, tt.attrs)

			require.NoError(t, err)
			assert.Equal(t, homeassistant.ServiceCall{Domain: tt.domain, Service: tt.service, EntityID: tt.entityID, Data: tt.attrs}, call)
		})
	}

	t.Run("should toggle in the entity's own domain", func(t *testing.T) {
		t.Parallel()
		call, err := commands.ToggleCall("switch.kettle")

		require.NoError(t, err)
		assert.Equal(t, homeassistant.ServiceCall{Domain: "switch", Service: "toggle", EntityID: "switch.kettle"}, call)
	})

	t.Run("should reject invalid entity ids and empty attributes", func(t *testing.T) {
		t.Parallel()
		_, err := commands.ToggleCall("kettle")
		assert.Error(t, err)

		_, err = commands.SetAttributesCall("light.office", map[string]any{})
		assert.Error(t, err)
	})
}

func Test_Dispatcher(t *testing.T) {

	t.Run("should send commands in the order they were issued", func(t *testing.T) {
		t.Parallel()
		// arrange
		var (
			mu   sync.Mutex
			sent []string
		)
		allSent := make(chan struct{})
		api := mocks.NewMockCommandsHaApiService(t)
		api.On("CallService", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			call := args.Get(1).(homeassistant.ServiceCall)
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, call.EntityID+" "+call.Service)
			if len(sent) == 3 {
				close(allSent)
			}
		})
		d := commands.NewDispatcher(logger, config.Commands{RatePerSecond: 1000}, api)

		// act
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.NoError(t, d.ToggleEntity(ctx, "light.a"))
		require.NoError(t, d.SetAttributes(ctx, "light.b", map[string]any{"brightness": 10}))
		require.NoError(t, d.ToggleEntity(ctx, "switch.c"))
		go d.Run(ctx)

		// assert
		select {
		case <-allSent:
		case <-time.After(2 * time.Second):
			t.Fatal("commands were not sent")
		}
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"light.a toggle", "light.b turn_on", "switch.c toggle"}, sent)
	})

	t.Run("should report failed commands on the failure channel", func(t *testing.T) {
		t.Parallel()
		// arrange
		api := mocks.NewMockCommandsHaApiService(t)
		api.On("CallService", mock.Anything, mock.Anything).Return(errors.New("bad gateway"))
		d := commands.NewDispatcher(logger, config.Commands{}, api)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go d.Run(ctx)

		// act
		require.NoError(t, d.ToggleEntity(ctx, "light.office"))

		// assert
		select {
		case failure := <-d.Failures():
			assert.Equal(t, "light.office", failure.EntityID)
			assert.Equal(t, "light.toggle", failure.Service)
			assert.Equal(t, "bad gateway", failure.Error)
			assert.NotEmpty(t, failure.CommandID)
		case <-time.After(2 * time.Second):
			t.Fatal("no failure reported")
		}
	})

	t.Run("should refuse commands when the queue is full", func(t *testing.T) {
		t.Parallel()
		d := commands.NewDispatcher(logger, config.Commands{QueueSize: 1}, mocks.NewMockCommandsHaApiService(t))

		require.NoError(t, d.ToggleEntity(context.Background(), "light.a"))
		err := d.ToggleEntity(context.Background(), "light.b")

		assert.ErrorIs(t, err, commands.ErrQueueFull)
		assert.ErrorIs(t, err, concurrency.ErrQueueFull)
		assert.Contains(t, err.Error(), "light.b")
	})
}
