package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/hadash/internal/cards"
	"github.com/wheelibin/hadash/internal/commands"
	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/models"
	statestore "github.com/wheelibin/hadash/internal/stateStore"
)

type haApiService interface {
	GetStates(ctx context.Context) ([]models.Entity, error)
}

type EventConsumer interface {
	Subscribe(ctx context.Context, eventChannel chan<- models.StateChangedEvent)
}

type entityRepo interface {
	Save(entities []models.Entity) error
	Replace(entities []models.Entity) error
	Delete(entityID string) error
	GetAll() ([]models.Entity, error)
	SetRoom(entityID string, room string) error
	GetRooms() (map[string]string, error)
}

// a renderer that is told about every card change
type Publisher interface {
	PublishCard(view cards.View)
	PublishRemoved(entityID string)
	PublishFailure(failure commands.Failure)
}

type Dashboard struct {
	logger        *log.Logger
	haApiService  haApiService
	eventConsumer EventConsumer
	entityRepo    entityRepo
	store         *statestore.StateStore
	board         *cards.Board
	failures      <-chan commands.Failure
	publishers    []Publisher

	resync         chan struct{}
	resyncInterval time.Duration
}

func NewDashboard(
	logger *log.Logger,
	haApiService haApiService,
	eventConsumer EventConsumer,
	entityRepo entityRepo,
	store *statestore.StateStore,
	board *cards.Board,
	failures <-chan commands.Failure,
) *Dashboard {
	return &Dashboard{
		logger:         logger,
		haApiService:   haApiService,
		eventConsumer:  eventConsumer,
		entityRepo:     entityRepo,
		store:          store,
		board:          board,
		failures:       failures,
		resync:         make(chan struct{}, 1),
		resyncInterval: constants.MainUpdateInterval,
	}
}

// publishers must be added before Run
func (d *Dashboard) AddPublisher(p Publisher) {
	d.publishers = append(d.publishers, p)
}

func (d *Dashboard) Board() *cards.Board {
	return d.board
}

// shows the last saved snapshots straight away, then reads the live ones
func (d *Dashboard) Initialise(ctx context.Context) error {
	d.logger.Debug("Dashboard.Initialise")

	rooms, err := d.entityRepo.GetRooms()
	if err != nil {
		return err
	}
	d.board.SetRooms(rooms)

	saved, err := d.entityRepo.GetAll()
	if err != nil {
		return err
	}
	d.store.Replace(saved)
	for _, view := range d.board.SyncAll(d.store.All()) {
		for _, p := range d.publishers {
			p.PublishCard(view)
		}
	}
	d.logger.Info("Loaded saved entities", "total", len(saved))

	return d.Resync(ctx)
}

// replaces every snapshot with the hub's current states
func (d *Dashboard) Resync(ctx context.Context) error {
	states, err := d.haApiService.GetStates(ctx)
	if err != nil {
		return fmt.Errorf("error resyncing with home assistant: %w", err)
	}

	changes := d.store.Replace(states)
	d.apply(changes)
	d.logger.Info("Resynced with Home Assistant", "entities", len(d.store.All()), "changes", len(changes))

	if err := d.entityRepo.Replace(d.store.All()); err != nil {
		d.logger.Error(err)
	}
	return nil
}

// asks the run loop for a resync without blocking, e.g after a reconnect
func (d *Dashboard) RequestResync() {
	select {
	case d.resync <- struct{}{}:
	default:
	}
}

func (d *Dashboard) HandleStateChanged(event models.StateChangedEvent) {
	change, changed := d.store.HandleStateChanged(event)
	if !changed {
		return
	}
	d.apply([]statestore.Change{change})

	var err error
	if change.Removed {
		err = d.entityRepo.Delete(change.Entity.ID)
	} else {
		err = d.entityRepo.Save([]models.Entity{change.Entity})
	}
	if err != nil {
		d.logger.Error(err)
	}
}

// only entities on the board can be given a room
func (d *Dashboard) SetRoom(entityID string, room string) (cards.View, error) {
	if _, found := d.board.View(entityID); !found {
		return cards.View{}, fmt.Errorf("%w: %s", cards.ErrNotFound, entityID)
	}
	if err := d.entityRepo.SetRoom(entityID, room); err != nil {
		return cards.View{}, err
	}
	view, found := d.board.SetRoom(entityID, room)
	if !found {
		return cards.View{}, fmt.Errorf("%w: %s", cards.ErrNotFound, entityID)
	}
	for _, p := range d.publishers {
		p.PublishCard(view)
	}
	return view, nil
}

func (d *Dashboard) Run(ctx context.Context) {
	d.logger.Debug("Dashboard.Run")

	// start listening to hub events
	eventChannel := make(chan models.StateChangedEvent)
	go d.eventConsumer.Subscribe(ctx, eventChannel)

	// start the resync timer
	resyncTimer := time.NewTicker(d.resyncInterval)
	defer resyncTimer.Stop()

	// start the main application loop
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Dashboard.Run: stop signal received")
			return

		case event := <-eventChannel:
			d.logger.Debug("Dashboard.Run: received state change", "entity", event.EntityID)
			d.HandleStateChanged(event)

		case failure := <-d.failures:
			for _, p := range d.publishers {
				p.PublishFailure(failure)
			}

		case <-d.resync:
			d.logger.Debug("Dashboard.Run: resync requested")
			if err := d.Resync(ctx); err != nil {
				d.logger.Error(err)
			}

		case <-resyncTimer.C:
			d.logger.Debug("Dashboard.Run: periodic resync")
			if err := d.Resync(ctx); err != nil {
				d.logger.Error(err)
			}
		}
	}
}

func (d *Dashboard) apply(changes []statestore.Change) {
	for _, change := range changes {
		if change.Removed {
			d.board.Unmount(change.Entity.ID)
			for _, p := range d.publishers {
				p.PublishRemoved(change.Entity.ID)
			}
			continue
		}

		view := d.board.Sync(change.Entity)
		for _, p := range d.publishers {
			p.PublishCard(view)
		}
	}
}
