package cards

import (
	"context"
	"fmt"

	"github.com/wheelibin/hadash/internal/models"
)

// the fallback for entities without a specialised card: id and name, nothing else
type DefaultCard struct {
	entity models.Entity
}

func NewDefaultCard(entity models.Entity) *DefaultCard {
	return &DefaultCard{entity: entity}
}

func (c *DefaultCard) Kind() Kind {
	return KindDefault
}

func (c *DefaultCard) EntityID() string {
	return c.entity.ID
}

func (c *DefaultCard) Sync(entity models.Entity) {
	c.entity = entity
}

func (c *DefaultCard) View() View {
	return View{
		Kind:     KindDefault,
		EntityID: c.entity.ID,
		Name:     c.entity.DisplayName(),
	}
}

func (c *DefaultCard) Act(_ context.Context, action Action) error {
	return fmt.Errorf("%w: %s", ErrUnknownControl, action.Control)
}
