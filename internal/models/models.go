package models

import (
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/wheelibin/hadash/internal/constants"
)

// an entity snapshot as pushed by the hub
type Entity struct {
	ID          string         `json:"entity_id"`
	State       string         `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastChanged time.Time      `json:"last_changed"`
	LastUpdated time.Time      `json:"last_updated"`
}

// which card family an entity belongs to
type Category string

const (
	CategoryLight      Category = "light"
	CategorySwitch     Category = "switch"
	CategorySensor     Category = "sensor"
	CategoryOccupancy  Category = "occupancy"
	CategoryThermostat Category = "thermostat"
	CategoryOther      Category = "other"
)

var occupancyDeviceClasses = []string{"occupancy", "motion", "presence"}

// the part of the entity id before the dot, e.g "light" for "light.bedroom"
func (e Entity) Domain() string {
	domain, _, found := strings.Cut(e.ID, ".")
	if !found {
		return ""
	}
	return domain
}

func (e Entity) Category() Category {
	switch e.Domain() {
	case constants.DomainLight:
		return CategoryLight
	case constants.DomainSwitch:
		return CategorySwitch
	case constants.DomainSensor:
		return CategorySensor
	case constants.DomainClimate:
		return CategoryThermostat
	case constants.DomainBinarySensor:
		if lo.Contains(occupancyDeviceClasses, e.DeviceClass()) {
			return CategoryOccupancy
		}
	}
	return CategoryOther
}

func (e Entity) IsOn() bool {
	return e.State == constants.StateOn
}

func (e Entity) IsUnavailable() bool {
	return e.State == constants.StateUnavailable
}

// friendly_name, falling back to the entity id
func (e Entity) DisplayName() string {
	if name, ok := e.String(constants.AttrFriendlyName); ok && name != "" {
		return name
	}
	return e.ID
}

func (e Entity) DeviceClass() string {
	dc, _ := e.String(constants.AttrDeviceClass)
	return dc
}

func (e Entity) String(key string) (string, bool) {
	v, ok := e.Attributes[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// reads a numeric attribute, numeric strings included; booleans and non-finite values are absent
func (e Entity) Number(key string) (float64, bool) {
	v, ok := e.Attributes[key]
	if !ok || v == nil {
		return 0, false
	}
	if _, isBool := v.(bool); isBool {
		return 0, false
	}
	n, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func (e Entity) Int(key string) (int, bool) {
	n, ok := e.Number(key)
	if !ok {
		return 0, false
	}
	return int(math.Round(n)), true
}

func (e Entity) StringList(key string) []string {
	switch list := e.Attributes[key].(type) {
	case []string:
		return list
	case []any:
		return lo.FilterMap(list, func(item any, _ int) (string, bool) {
			s, ok := item.(string)
			return s, ok
		})
	}
	return nil
}

func (e Entity) SupportsColorMode(mode string) bool {
	return lo.Contains(e.StringList(constants.AttrSupportedColorModes), mode)
}

// the data of a state_changed event; a nil NewState means the entity was removed
type StateChangedEvent struct {
	EntityID string  `json:"entity_id"`
	OldState *Entity `json:"old_state"`
	NewState *Entity `json:"new_state"`
}
