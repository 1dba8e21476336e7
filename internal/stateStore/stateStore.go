package statestore

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/hadash/internal/models"
)

// the result of applying a snapshot, Removed means the entity is gone
type Change struct {
	Entity  models.Entity
	Removed bool
}

// selects entity ids by include/exclude regular expressions
type EntityFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

func NewEntityFilter(includes []string, excludes []string) (*EntityFilter, error) {
	compile := func(patterns []string) ([]*regexp.Regexp, error) {
		out := []*regexp.Regexp{}
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("invalid entity pattern %q: %w", p, err)
			}
			out = append(out, re)
		}
		return out, nil
	}

	incl, err := compile(includes)
	if err != nil {
		return nil, err
	}
	excl, err := compile(excludes)
	if err != nil {
		return nil, err
	}
	return &EntityFilter{include: incl, exclude: excl}, nil
}

// no include patterns means everything is included
func (f *EntityFilter) Allows(entityID string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(entityID) }
	included := len(f.include) == 0 || lo.ContainsBy(f.include, matches)
	return included && !lo.ContainsBy(f.exclude, matches)
}

// the latest known snapshot of every entity shown on the dashboard
type StateStore struct {
	logger *log.Logger
	filter *EntityFilter

	mu       sync.RWMutex
	entities map[string]models.Entity
}

func NewStateStore(logger *log.Logger, filter *EntityFilter) *StateStore {
	return &StateStore{
		logger:   logger,
		filter:   filter,
		entities: map[string]models.Entity{},
	}
}

// applies a state_changed event, returns false when nothing visible changed
func (s *StateStore) HandleStateChanged(event models.StateChangedEvent) (Change, bool) {
	entityID := event.EntityID
	if entityID == "" && event.NewState != nil {
		entityID = event.NewState.ID
	}
	if !s.filter.Allows(entityID) {
		return Change{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.NewState == nil {
		old, found := s.entities[entityID]
		if !found {
			return Change{}, false
		}
		delete(s.entities, entityID)
		s.logger.Debug("entity removed", "entity", entityID)
		return Change{Entity: old, Removed: true}, true
	}

	entity := *event.NewState
	entity.ID = entityID
	if old, found := s.entities[entityID]; found && reflect.DeepEqual(old, entity) {
		return Change{}, false
	}
	s.entities[entityID] = entity
	return Change{Entity: entity}, true
}

// replaces every snapshot (a full resync), returning what changed
func (s *StateStore) Replace(entities []models.Entity) []Change {
	incoming := lo.SliceToMap(
		lo.Filter(entities, func(e models.Entity, _ int) bool { return s.filter.Allows(e.ID) }),
		func(e models.Entity) (string, models.Entity) { return e.ID, e },
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	changes := []Change{}
	for id, old := range s.entities {
		if _, found := incoming[id]; !found {
			changes = append(changes, Change{Entity: old, Removed: true})
		}
	}
	for id, entity := range incoming {
		if old, found := s.entities[id]; found && reflect.DeepEqual(old, entity) {
			continue
		}
		changes = append(changes, Change{Entity: entity})
	}
	s.entities = incoming

	sort.Slice(changes, func(i, j int) bool { return changes[i].Entity.ID < changes[j].Entity.ID })
	s.logger.Debug("store replaced", "entities", len(incoming), "changes", len(changes))
	return changes
}

// every snapshot, ordered by entity id
func (s *StateStore) All() []models.Entity {
	s.mu.RLock()
	all := lo.Values(s.entities)
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
