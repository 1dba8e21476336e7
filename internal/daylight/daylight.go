package daylight

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nathan-osman/go-sunrise"
	"github.com/wheelibin/hadash/internal/config"
)

type Theme string

const (
	ThemeDay   Theme = "day"
	ThemeNight Theme = "night"
)

// decides the dashboard theme from local sunrise and sunset
type Service struct {
	logger *log.Logger
	lat    float64
	lng    float64
	window config.Daylight
}

func NewService(logger *log.Logger, geoLocation string, window config.Daylight) (*Service, error) {
	latLng := strings.Split(geoLocation, ",")
	if len(latLng) != 2 {
		return nil, fmt.Errorf("geoLocation must be \"lat,lng\", got %q", geoLocation)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latLng[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geoLocation: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(latLng[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geoLocation: %w", err)
	}

	for _, v := range []string{window.SunriseMin, window.SunriseMax, window.SunsetMin, window.SunsetMax} {
		if _, err := TimeFromConfigTimeString(v, time.Now()); err != nil {
			return nil, err
		}
	}

	return &Service{logger: logger, lat: lat, lng: lng, window: window}, nil
}

// sunrise and sunset on the base date, kept inside the configured min/max window
func (s *Service) SunriseSunset(baseDate time.Time) (time.Time, time.Time) {
	rise, set := sunrise.SunriseSunset(
		s.lat, s.lng,
		baseDate.Year(), baseDate.Month(), baseDate.Day(),
	)
	rise, set = rise.In(baseDate.Location()), set.In(baseDate.Location())

	sunriseMin, _ := TimeFromConfigTimeString(s.window.SunriseMin, baseDate)
	sunriseMax, _ := TimeFromConfigTimeString(s.window.SunriseMax, baseDate)
	sunsetMin, _ := TimeFromConfigTimeString(s.window.SunsetMin, baseDate)
	sunsetMax, _ := TimeFromConfigTimeString(s.window.SunsetMax, baseDate)

	// polar day/night gives zero times, which the clamps below turn into the window edges
	if rise.Before(sunriseMin) {
		rise = sunriseMin
	}
	if rise.After(sunriseMax) {
		rise = sunriseMax
	}
	if set.Before(sunsetMin) {
		set = sunsetMin
	}
	if set.After(sunsetMax) {
		set = sunsetMax
	}
	return rise, set
}

func (s *Service) Theme(t time.Time) Theme {
	rise, set := s.SunriseSunset(t)
	if t.Before(rise) || !t.Before(set) {
		return ThemeNight
	}
	return ThemeDay
}

// returns a Time built from the supplied time string (e.g. "06:30") on the base date
func TimeFromConfigTimeString(timeString string, baseDate time.Time) (time.Time, error) {
	timeHM := strings.Split(timeString, ":")
	if len(timeHM) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", timeString)
	}
	hour, err := strconv.Atoi(timeHM[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", timeString)
	}
	mins, err := strconv.Atoi(timeHM[1])
	if err != nil || mins < 0 || mins > 59 {
		return time.Time{}, fmt.Errorf("invalid minutes in %q", timeString)
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), hour, mins, 0, 0, baseDate.Location()), nil
}
