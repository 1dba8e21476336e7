package cards

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/models"
)

const defaultTargetTempStep = 0.5

type ThermostatCard struct {
	serviceCard
}

func NewThermostatCard(entity models.Entity, commander Commander) *ThermostatCard {
	return &ThermostatCard{serviceCard{entity: entity, commander: commander}}
}

func (c *ThermostatCard) Kind() Kind {
	return KindThermostat
}

// [min_temp, max_temp] and target_temp_step, with defaults for whatever is missing
func ThermostatRange(entity models.Entity) (float64, float64, float64) {
	lower, ok := entity.Number(constants.AttrMinTemp)
	if !ok {
		lower = constants.DefaultThermostatMin
	}
	upper, ok := entity.Number(constants.AttrMaxTemp)
	if !ok {
		upper = constants.DefaultThermostatMax
	}
	if upper < lower {
		lower, upper = upper, lower
	}
	step, ok := entity.Number(constants.AttrTargetTempStep)
	if !ok || step <= 0 {
		step = defaultTargetTempStep
	}
	return lower, upper, step
}

func (c *ThermostatCard) View() View {
	v := c.baseView(KindThermostat)
	v.Icon = "thermostat"
	v.Active = c.entity.State != constants.StateOff && !v.Unavailable && c.entity.State != constants.StateUnknown

	current := "-"
	if t, ok := c.entity.Number(constants.AttrCurrentTemperature); ok {
		current = formatDegrees(t)
	}
	v.Readings = []Reading{{Label: "Current", Value: current}}
	v.Controls = []Control{c.toggleControl()}

	lower, upper, step := ThermostatRange(c.entity)
	target, ok := c.entity.Number(constants.AttrTemperature)
	display := "-"
	if ok {
		display = formatDegrees(target)
	} else {
		target = lower
	}
	v.Controls = append(v.Controls, Control{
		Name:     ControlTemperature,
		Type:     ControlTypeSlider,
		Label:    "Target",
		Display:  display,
		Value:    clamp(target, lower, upper),
		Min:      lower,
		Max:      upper,
		Step:     step,
		Disabled: v.Unavailable,
	})
	return v
}

func (c *ThermostatCard) Act(ctx context.Context, action Action) error {
	if c.entity.IsUnavailable() {
		return ErrUnavailable
	}

	switch action.Control {
	case ControlToggle:
		return c.toggle(ctx)
	case ControlTemperature:
		value, err := sliderValue(action)
		if err != nil {
			return err
		}
		lower, upper, step := ThermostatRange(c.entity)
		target := clamp(math.Round(value/step)*step, lower, upper)
		err = c.commander.SetAttributes(ctx, c.entity.ID, map[string]any{constants.AttrTemperature: target})
		if err != nil {
			return fmt.Errorf("error setting target temperature of %s: %w", c.entity.ID, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownControl, action.Control)
}

func formatDegrees(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64) + "°"
}
