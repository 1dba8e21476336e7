package cards

import (
	"context"
	"fmt"
	"math"

	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/models"
)

// used when a colour temperature light doesn't report its range
const (
	defaultMinColorTempKelvin = 2000
	defaultMaxColorTempKelvin = 6535
)

type LightCard struct {
	serviceCard

	// slider position, reset from every new snapshot
	colorTempKelvin int
}

func NewLightCard(entity models.Entity, commander Commander) *LightCard {
	c := &LightCard{serviceCard: serviceCard{commander: commander}}
	c.Sync(entity)
	return c
}

func (c *LightCard) Kind() Kind {
	return KindLight
}

func (c *LightCard) Sync(entity models.Entity) {
	c.entity = entity
	minK, maxK := ColorTempBounds(entity)
	kelvin, ok := entity.Int(constants.AttrColorTempKelvin)
	if !ok {
		kelvin = minK
	}
	c.colorTempKelvin = int(clamp(float64(kelvin), float64(minK), float64(maxK)))
}

// the cached slider position, which may run ahead of the snapshot while a change is pending
func (c *LightCard) ColorTempSliderKelvin() int {
	return c.colorTempKelvin
}

func (c *LightCard) View() View {
	v := c.baseView(KindLight)
	v.Icon = "sun"
	v.Controls = []Control{c.toggleControl()}

	if !SupportsColorTemp(c.entity) {
		return v
	}

	disabled := c.entity.IsUnavailable()
	brightness, ok := c.entity.Number(constants.AttrBrightness)
	if !ok {
		brightness = constants.BrightnessMin
	}
	minK, maxK := ColorTempBounds(c.entity)

	v.Controls = append(v.Controls,
		Control{
			Name:     ControlBrightness,
			Type:     ControlTypeSlider,
			Label:    "Brightness",
			Display:  fmt.Sprintf("%d%%", BrightnessPercent(c.entity)),
			Value:    clamp(brightness, constants.BrightnessMin, constants.BrightnessMax),
			Min:      constants.BrightnessMin,
			Max:      constants.BrightnessMax,
			Step:     1,
			Disabled: disabled,
		},
		Control{
			Name:     ControlColorTemp,
			Type:     ControlTypeSlider,
			Label:    "Colour temperature",
			Display:  fmt.Sprintf("%dK", DisplayColorTempKelvin(c.entity)),
			Value:    float64(c.colorTempKelvin),
			Min:      float64(minK),
			Max:      float64(maxK),
			Step:     1,
			Disabled: disabled,
		},
	)
	return v
}

func (c *LightCard) Act(ctx context.Context, action Action) error {
	if c.entity.IsUnavailable() {
		return ErrUnavailable
	}

	switch action.Control {
	case ControlToggle:
		return c.toggle(ctx)

	case ControlBrightness:
		if !SupportsColorTemp(c.entity) {
			return fmt.Errorf("%w: %s", ErrUnknownControl, action.Control)
		}
		value, err := sliderValue(action)
		if err != nil {
			return err
		}
		brightness := int(math.Round(clamp(value, constants.BrightnessMin, constants.BrightnessMax)))
		return c.setAttribute(ctx, constants.AttrBrightness, brightness)

	case ControlColorTemp:
		if !SupportsColorTemp(c.entity) {
			return fmt.Errorf("%w: %s", ErrUnknownControl, action.Control)
		}
		value, err := sliderValue(action)
		if err != nil {
			return err
		}
		minK, maxK := ColorTempBounds(c.entity)
		kelvin := int(math.Round(clamp(value, float64(minK), float64(maxK))))
		if err := c.setAttribute(ctx, constants.AttrColorTempKelvin, kelvin); err != nil {
			return err
		}
		// the slider keeps the sent value until the next snapshot
		c.colorTempKelvin = kelvin
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownControl, action.Control)
}

func (c *LightCard) setAttribute(ctx context.Context, name string, value int) error {
	if err := c.commander.SetAttributes(ctx, c.entity.ID, map[string]any{name: value}); err != nil {
		return fmt.Errorf("error setting %s of %s: %w", name, c.entity.ID, err)
	}
	return nil
}

func SupportsColorTemp(entity models.Entity) bool {
	return entity.SupportsColorMode(constants.ColorModeColorTemp)
}

// round(brightness/255*100) clamped to [0,100], 0 when brightness is absent
func BrightnessPercent(entity models.Entity) int {
	brightness, ok := entity.Number(constants.AttrBrightness)
	if !ok {
		return 0
	}
	percent := math.Round(brightness / constants.BrightnessMax * 100)
	return int(clamp(percent, 0, 100))
}

// the device-reported colour temperature range
func ColorTempBounds(entity models.Entity) (int, int) {
	minK, minOk := entity.Int(constants.AttrMinColorTempKelvin)
	maxK, maxOk := entity.Int(constants.AttrMaxColorTempKelvin)
	if !minOk {
		minK = defaultMinColorTempKelvin
	}
	if !maxOk {
		maxK = defaultMaxColorTempKelvin
	}
	if maxK < minK {
		minK, maxK = maxK, minK
	}
	return minK, maxK
}

// the reported colour temperature clamped to the device range, 0 when absent
func DisplayColorTempKelvin(entity models.Entity) int {
	kelvin, ok := entity.Int(constants.AttrColorTempKelvin)
	if !ok {
		return 0
	}
	minK, maxK := ColorTempBounds(entity)
	return int(clamp(float64(kelvin), float64(minK), float64(maxK)))
}
