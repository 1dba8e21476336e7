package daylight_test

import (
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/hadash/internal/config"
	"github.com/wheelibin/hadash/internal/daylight"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})

var window = config.Daylight{SunriseMin: "05:00", SunriseMax: "08:00", SunsetMin: "17:00", SunsetMax: "22:00"}

func Test_NewService(t *testing.T) {
	tests := []struct {
		name        string
		geoLocation string
		window      config.Daylight
	}{
		{"missing longitude", "51.5", window},
		{"bad latitude", "north,0", window},
		{"bad window", "51.5,-0.1", config.Daylight{SunriseMin: "5am", SunriseMax: "08:00", SunsetMin: "17:00", SunsetMax: "22:00"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("should reject "+tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := daylight.NewService(logger, tt.geoLocation, tt.window)
			assert.Error(t, err)
		})
	}
}

func Test_SunriseSunset(t *testing.T) {

	t.Run("should clamp to the configured window", func(t *testing.T) {
		t.Parallel()
		// London in midsummer rises before 05:00 UTC
		s, err := daylight.NewService(logger, "51.5,-0.1", window)
		require.NoError(t, err)
		midsummer := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)

		rise, set := s.SunriseSunset(midsummer)

		assert.Equal(t, time.Date(2024, 6, 21, 5, 0, 0, 0, time.UTC), rise)
		assert.True(t, set.After(time.Date(2024, 6, 21, 19, 0, 0, 0, time.UTC)))
		assert.False(t, set.After(time.Date(2024, 6, 21, 22, 0, 0, 0, time.UTC)))
	})

	t.Run("should use the window edges during polar night", func(t *testing.T) {
		t.Parallel()
		s, err := daylight.NewService(logger, "78.2,15.6", window)
		require.NoError(t, err)
		midwinter := time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC)

		rise, set := s.SunriseSunset(midwinter)

		assert.Equal(t, 5, rise.Hour())
		assert.Equal(t, 17, set.Hour())
	})
}

func Test_Theme(t *testing.T) {
	s, err := daylight.NewService(logger, "51.5,-0.1", window)
	require.NoError(t, err)

	tests := []struct {
		at       time.Time
		expected daylight.Theme
	}{
		{time.Date(2024, 3, 20, 3, 0, 0, 0, time.UTC), daylight.ThemeNight},
		{time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), daylight.ThemeDay},
		{time.Date(2024, 3, 20, 23, 0, 0, 0, time.UTC), daylight.ThemeNight},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.at.Format(time.Kitchen), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, s.Theme(tt.at))
		})
	}
}

func Test_TimeFromConfigTimeString(t *testing.T) {
	base := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	got, err := daylight.TimeFromConfigTimeString("06:30", base)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 20, 6, 30, 0, 0, time.UTC), got)

	for _, bad := range []string{"6", "25:00", "06:61", "aa:bb"} {
		_, err := daylight.TimeFromConfigTimeString(bad, base)
		assert.Error(t, err, bad)
	}
}
