package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/hadash/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// viper is global, so these tests do not run in parallel
func Test_ReadConfig(t *testing.T) {

	t.Run("should read the file and apply defaults", func(t *testing.T) {
		viper.Reset()
		path := writeConfig(t, `{
			"homeAssistant": {"url": "http://homeassistant.local:8123/", "token": "abc"},
			"entities": {"exclude": ["^sensor\\.debug_"]},
			"rooms": [{"name": "Office", "entities": ["light.office", "switch.desk_fan"]}],
			"commands": {"ratePerSecond": 2}
		}`)

		require.NoError(t, config.InitialiseConfig(path))
		cfg, err := config.ReadConfig()

		require.NoError(t, err)
		assert.Equal(t, "http://homeassistant.local:8123", cfg.HomeAssistant.URL)
		assert.Equal(t, "abc", cfg.HomeAssistant.Token)
		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, []string{".*"}, cfg.Entities.Include)
		assert.Equal(t, []string{`^sensor\.debug_`}, cfg.Entities.Exclude)
		assert.Equal(t, map[string]string{"light.office": "Office", "switch.desk_fan": "Office"}, cfg.RoomAssignments())
		assert.Equal(t, 2.0, cfg.Commands.RatePerSecond)
		assert.Equal(t, 64, cfg.Commands.QueueSize)
		assert.Equal(t, 10*time.Second, cfg.Commands.Timeout)
		assert.Equal(t, "05:00", cfg.Daylight.SunriseMin)
		assert.Equal(t, "hadash", cfg.MQTT.TopicPrefix)
	})

	t.Run("should let the environment override the file", func(t *testing.T) {
		viper.Reset()
		t.Setenv("HADASH_HOMEASSISTANT_TOKEN", "from-env")
		path := writeConfig(t, `{"homeAssistant": {"url": "http://ha:8123", "token": "from-file"}}`)

		require.NoError(t, config.InitialiseConfig(path))
		cfg, err := config.ReadConfig()

		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.HomeAssistant.Token)
	})

	t.Run("should read keys that only the environment sets", func(t *testing.T) {
		viper.Reset()
		t.Setenv("HADASH_HOMEASSISTANT_TOKEN", "from-env")
		t.Setenv("HADASH_MQTT_BROKER", "tcp://broker:1883")
		t.Setenv("HADASH_MQTT_PASSWORD", "secret")
		path := writeConfig(t, `{"homeAssistant": {"url": "http://ha:8123"}}`)

		require.NoError(t, config.InitialiseConfig(path))
		cfg, err := config.ReadConfig()

		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.HomeAssistant.Token)
		assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
		assert.Equal(t, "secret", cfg.MQTT.Password)
		assert.Empty(t, cfg.Rooms)
	})

	t.Run("should let a flag override the file", func(t *testing.T) {
		viper.Reset()
		path := writeConfig(t, `{"homeAssistant": {"url": "http://ha:8123"}, "listenAddr": ":9000"}`)
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("listen", "", "")
		require.NoError(t, flags.Parse([]string{"--listen", ":7000"}))

		require.NoError(t, config.InitialiseConfig(path))
		require.NoError(t, config.BindFlag("listenAddr", flags.Lookup("listen")))
		cfg, err := config.ReadConfig()

		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.ListenAddr)
	})

	t.Run("should require the home assistant url", func(t *testing.T) {
		viper.Reset()
		path := writeConfig(t, `{"homeAssistant": {"token": "abc"}}`)

		require.NoError(t, config.InitialiseConfig(path))
		_, err := config.ReadConfig()

		assert.Error(t, err)
	})

	t.Run("should fail when the file is missing", func(t *testing.T) {
		viper.Reset()

		err := config.InitialiseConfig(filepath.Join(t.TempDir(), "missing.json"))

		assert.Error(t, err)
	})
}
