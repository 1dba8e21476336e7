package cards

import (
	"context"
	"fmt"
	"strings"

	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/models"
)

// a read-only measurement, e.g temperature or humidity
type SensorCard struct {
	serviceCard
}

func NewSensorCard(entity models.Entity) *SensorCard {
	return &SensorCard{serviceCard{entity: entity}}
}

func (c *SensorCard) Kind() Kind {
	return KindSensor
}

func (c *SensorCard) View() View {
	v := c.baseView(KindSensor)
	v.Active = false

	deviceClass := c.entity.DeviceClass()
	switch deviceClass {
	case "temperature":
		v.Icon = "thermometer"
	case "humidity":
		v.Icon = "droplet"
	default:
		v.Icon = "gauge"
	}

	label := "Value"
	if deviceClass != "" {
		label = strings.ToUpper(deviceClass[:1]) + strings.ReplaceAll(deviceClass[1:], "_", " ")
	}

	value := c.entity.State
	if unit, ok := c.entity.String(constants.AttrUnitOfMeasurement); ok && unit != "" && !v.Unavailable {
		value = fmt.Sprintf("%s %s", c.entity.State, unit)
	}
	v.Readings = []Reading{{Label: label, Value: value}}
	return v
}

func (c *SensorCard) Act(_ context.Context, action Action) error {
	return fmt.Errorf("%w: %s", ErrUnknownControl, action.Control)
}

// occupancy, motion and presence binary sensors
type OccupancyCard struct {
	serviceCard
}

func NewOccupancyCard(entity models.Entity) *OccupancyCard {
	return &OccupancyCard{serviceCard{entity: entity}}
}

func (c *OccupancyCard) Kind() Kind {
	return KindOccupancy
}

func (c *OccupancyCard) View() View {
	v := c.baseView(KindOccupancy)

	status := "Clear"
	v.Icon = "user-off"
	if c.entity.IsOn() {
		status = "Occupied"
		v.Icon = "user"
	}
	if v.Unavailable {
		status = constants.StateUnavailable
	}
	v.Readings = []Reading{{Label: "Occupancy", Value: status}}
	return v
}

func (c *OccupancyCard) Act(_ context.Context, action Action) error {
	return fmt.Errorf("%w: %s", ErrUnknownControl, action.Control)
}
