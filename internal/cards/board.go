package cards

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/wheelibin/hadash/internal/models"
)

// the mounted cards, one per entity
//
// Safe for concurrent use.
type Board struct {
	commander Commander

	mu    sync.RWMutex
	cards map[string]Card
	rooms map[string]string
}

func NewBoard(commander Commander) *Board {
	return &Board{
		commander: commander,
		cards:     map[string]Card{},
		rooms:     map[string]string{},
	}
}

// mounts a card for a new entity or hands the snapshot to the mounted one
func (b *Board) Sync(entity models.Entity) View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.syncLocked(entity)
}

func (b *Board) syncLocked(entity models.Entity) View {
	card, found := b.cards[entity.ID]
	if found && card.Kind() == kindFor(entity.Category()) {
		card.Sync(entity)
	} else {
		card = ForEntity(entity, b.commander)
		b.cards[entity.ID] = card
	}
	return b.viewLocked(card)
}

// mounts, updates and unmounts so the board shows exactly these entities
func (b *Board) SyncAll(entities []models.Entity) []View {
	b.mu.Lock()
	defer b.mu.Unlock()

	keep := lo.SliceToMap(entities, func(e models.Entity) (string, bool) { return e.ID, true })
	for id := range b.cards {
		if !keep[id] {
			delete(b.cards, id)
		}
	}
	return lo.Map(entities, func(e models.Entity, _ int) View { return b.syncLocked(e) })
}

// discards the card and its local state
func (b *Board) Unmount(entityID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, found := b.cards[entityID]
	delete(b.cards, entityID)
	return found
}

func (b *Board) SetRooms(rooms map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rooms = lo.Assign(rooms)
}

// an empty room clears the assignment, unknown entities are left untouched
func (b *Board) SetRoom(entityID string, room string) (View, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	card, found := b.cards[entityID]
	if !found {
		return View{}, false
	}
	if room == "" {
		delete(b.rooms, entityID)
	} else {
		b.rooms[entityID] = room
	}
	return b.viewLocked(card), true
}

func (b *Board) View(entityID string) (View, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	card, found := b.cards[entityID]
	if !found {
		return View{}, false
	}
	return b.viewLocked(card), true
}

// every card, ordered by room, name, then entity id
func (b *Board) Views() []View {
	b.mu.RLock()
	views := lo.MapToSlice(b.cards, func(_ string, card Card) View { return b.viewLocked(card) })
	b.mu.RUnlock()

	SortViews(views)
	return views
}

// orders views by room, name, then entity id
func SortViews(views []View) {
	sort.Slice(views, func(i, j int) bool {
		a, c := views[i], views[j]
		if a.Room != c.Room {
			// cards without a room go last
			if a.Room == "" || c.Room == "" {
				return c.Room == ""
			}
			return a.Room < c.Room
		}
		if an, cn := strings.ToLower(a.Name), strings.ToLower(c.Name); an != cn {
			return an < cn
		}
		return a.EntityID < c.EntityID
	})
}

// routes the action to the entity's card, returning the card's view afterwards
func (b *Board) Act(ctx context.Context, entityID string, action Action) (View, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	card, found := b.cards[entityID]
	if !found {
		return View{}, fmt.Errorf("%w: %s", ErrNotFound, entityID)
	}
	if err := card.Act(ctx, action); err != nil {
		return b.viewLocked(card), err
	}
	return b.viewLocked(card), nil
}

func (b *Board) viewLocked(card Card) View {
	v := card.View()
	v.Room = b.rooms[card.EntityID()]
	return v
}
