package cards

import (
	"context"
	"fmt"

	"github.com/wheelibin/hadash/internal/models"
)

// the "one switch" card: an on/off icon and a toggle
type SwitchCard struct {
	serviceCard
}

func NewSwitchCard(entity models.Entity, commander Commander) *SwitchCard {
	return &SwitchCard{serviceCard{entity: entity, commander: commander}}
}

func (c *SwitchCard) Kind() Kind {
	return KindSwitch
}

func (c *SwitchCard) View() View {
	v := c.baseView(KindSwitch)
	v.Icon = "power-off"
	if c.entity.IsOn() {
		v.Icon = "power"
	}
	v.Controls = []Control{c.toggleControl()}
	return v
}

func (c *SwitchCard) Act(ctx context.Context, action Action) error {
	if c.entity.IsUnavailable() {
		return ErrUnavailable
	}
	if action.Control != ControlToggle {
		return fmt.Errorf("%w: %s", ErrUnknownControl, action.Control)
	}
	return c.toggle(ctx)
}
