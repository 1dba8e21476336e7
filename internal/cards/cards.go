// Package cards turns entity snapshots into card views and card actions into
// hub commands.
//
// A card never changes its rendered state in response to its own commands:
// commands go out through the Commander and the result is only seen when the
// next snapshot is synced. The one piece of card-local state is the light's
// cached colour temperature slider position, which every new snapshot resets.
package cards

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/models"
)

var (
	ErrUnavailable    = errors.New("entity is unavailable")
	ErrUnknownControl = errors.New("card has no such control")
	ErrMissingValue   = errors.New("control needs a value")
	ErrNotFound       = errors.New("no card for entity")
)

// the integration hook the cards send commands through
type Commander interface {
	ToggleEntity(ctx context.Context, entityID string) error
	SetAttributes(ctx context.Context, entityID string, attrs map[string]any) error
}

type Kind string

const (
	KindLight      Kind = "light"
	KindSwitch     Kind = "switch"
	KindSensor     Kind = "sensor"
	KindOccupancy  Kind = "occupancy"
	KindThermostat Kind = "thermostat"
	KindDefault    Kind = "default"
)

// control names, also used as action names
const (
	ControlToggle      = "toggle"
	ControlBrightness  = "brightness"
	ControlColorTemp   = "color_temp"
	ControlTemperature = "temperature"
)

type ControlType string

const (
	ControlTypeToggle ControlType = "toggle"
	ControlTypeSlider ControlType = "slider"
)

type Control struct {
	Name     string      `json:"name"`
	Type     ControlType `json:"type"`
	Label    string      `json:"label"`
	Display  string      `json:"display,omitempty"`
	Value    float64     `json:"value"`
	Min      float64     `json:"min,omitempty"`
	Max      float64     `json:"max,omitempty"`
	Step     float64     `json:"step,omitempty"`
	Disabled bool        `json:"disabled"`
}

type Reading struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// everything a renderer needs to draw a card
type View struct {
	Kind        Kind      `json:"kind"`
	EntityID    string    `json:"entity_id"`
	Name        string    `json:"name"`
	Room        string    `json:"room,omitempty"`
	State       string    `json:"state,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Active      bool      `json:"active"`
	Unavailable bool      `json:"unavailable"`
	Tooltip     string    `json:"tooltip,omitempty"`
	Readings    []Reading `json:"readings,omitempty"`
	Controls    []Control `json:"controls,omitempty"`
}

func (v View) Control(name string) (Control, bool) {
	for _, c := range v.Controls {
		if c.Name == name {
			return c, true
		}
	}
	return Control{}, false
}

// a user interaction with one of a card's controls
type Action struct {
	Control string   `json:"control"`
	Value   *float64 `json:"value,omitempty"`
}

func ToggleAction() Action {
	return Action{Control: ControlToggle}
}

func SliderAction(control string, value float64) Action {
	return Action{Control: control, Value: &value}
}

type Card interface {
	Kind() Kind
	EntityID() string
	// takes a new snapshot of the entity
	Sync(entity models.Entity)
	View() View
	Act(ctx context.Context, action Action) error
}

// picks the card for the entity's category
func ForEntity(entity models.Entity, commander Commander) Card {
	switch entity.Category() {
	case models.CategoryLight:
		return NewLightCard(entity, commander)
	case models.CategorySwitch:
		return NewSwitchCard(entity, commander)
	case models.CategorySensor:
		return NewSensorCard(entity)
	case models.CategoryOccupancy:
		return NewOccupancyCard(entity)
	case models.CategoryThermostat:
		return NewThermostatCard(entity, commander)
	default:
		return NewDefaultCard(entity)
	}
}

func kindFor(category models.Category) Kind {
	switch category {
	case models.CategoryLight:
		return KindLight
	case models.CategorySwitch:
		return KindSwitch
	case models.CategorySensor:
		return KindSensor
	case models.CategoryOccupancy:
		return KindOccupancy
	case models.CategoryThermostat:
		return KindThermostat
	default:
		return KindDefault
	}
}

// the shared service-card layout: name, state, availability and the toggle
type serviceCard struct {
	entity    models.Entity
	commander Commander
}

func (c *serviceCard) EntityID() string {
	return c.entity.ID
}

func (c *serviceCard) Sync(entity models.Entity) {
	c.entity = entity
}

func (c *serviceCard) baseView(kind Kind) View {
	v := View{
		Kind:        kind,
		EntityID:    c.entity.ID,
		Name:        c.entity.DisplayName(),
		State:       c.entity.State,
		Active:      c.entity.IsOn(),
		Unavailable: c.entity.IsUnavailable(),
	}
	if v.Unavailable {
		v.Tooltip = constants.UnavailableTooltip
	}
	return v
}

func (c *serviceCard) toggleControl() Control {
	value := 0.0
	if c.entity.IsOn() {
		value = 1
	}
	return Control{
		Name:     ControlToggle,
		Type:     ControlTypeToggle,
		Label:    "Power",
		Value:    value,
		Disabled: c.entity.IsUnavailable(),
	}
}

func (c *serviceCard) toggle(ctx context.Context) error {
	if c.entity.IsUnavailable() {
		return ErrUnavailable
	}
	if err := c.commander.ToggleEntity(ctx, c.entity.ID); err != nil {
		return fmt.Errorf("error toggling %s: %w", c.entity.ID, err)
	}
	return nil
}

func sliderValue(action Action) (float64, error) {
	if action.Value == nil || math.IsNaN(*action.Value) {
		return 0, fmt.Errorf("%w: %s", ErrMissingValue, action.Control)
	}
	return *action.Value, nil
}

func clamp(v, lower, upper float64) float64 {
	return math.Max(lower, math.Min(upper, v))
}
