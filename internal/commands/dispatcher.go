// Package commands carries card commands upstream to the hub.
//
// Commands are fire-and-forget: ToggleEntity and SetAttributes only queue the
// command. A single throttled worker sends queued commands in order; failures
// are logged and reported on the Failures channel, never to the caller.
package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/wheelibin/hadash/internal/concurrency"
	"github.com/wheelibin/hadash/internal/config"
	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/homeassistant"
)

// the worker's sentinel, so callers need not import concurrency
var ErrQueueFull = concurrency.ErrQueueFull

const failureBufferSize = 32

type haApiService interface {
	CallService(ctx context.Context, call homeassistant.ServiceCall) error
}

type Command struct {
	ID       string
	EntityID string
	Call     homeassistant.ServiceCall
	QueuedAt time.Time
}

// a command the hub did not accept
type Failure struct {
	CommandID string    `json:"command_id"`
	EntityID  string    `json:"entity_id"`
	Service   string    `json:"service"`
	Error     string    `json:"error"`
	Time      time.Time `json:"time"`
}

type Dispatcher struct {
	logger       *log.Logger
	haApiService haApiService
	worker       *concurrency.ThrottledWorker[Command]
	timeout      time.Duration
	failures     chan Failure
}

func NewDispatcher(logger *log.Logger, cfg config.Commands, haApiService haApiService) *Dispatcher {
	d := &Dispatcher{
		logger:       logger,
		haApiService: haApiService,
		timeout:      cfg.Timeout,
		failures:     make(chan Failure, failureBufferSize),
	}
	if d.timeout <= 0 {
		d.timeout = 10 * time.Second
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	ratePerSecond := cfg.RatePerSecond
	if ratePerSecond <= 0 {
		ratePerSecond = 10
	}
	d.worker = concurrency.NewThrottledWorker(ratePerSecond, queueSize, d.send)
	return d
}

// drains the command queue until ctx is done
func (d *Dispatcher) Run(ctx context.Context) {
	d.worker.Run(ctx)
}

// commands the hub did not accept, reported out of band
func (d *Dispatcher) Failures() <-chan Failure {
	return d.failures
}

func (d *Dispatcher) ToggleEntity(ctx context.Context, entityID string) error {
	call, err := ToggleCall(entityID)
	if err != nil {
		return err
	}
	return d.enqueue(entityID, call)
}

func (d *Dispatcher) SetAttributes(ctx context.Context, entityID string, attrs map[string]any) error {
	call, err := SetAttributesCall(entityID, attrs)
	if err != nil {
		return err
	}
	return d.enqueue(entityID, call)
}

func (d *Dispatcher) enqueue(entityID string, call homeassistant.ServiceCall) error {
	cmd := Command{
		ID:       uuid.NewString(),
		EntityID: entityID,
		Call:     call,
		QueuedAt: time.Now(),
	}
	if err := d.worker.Enqueue(cmd); err != nil {
		return fmt.Errorf("error queueing %s.%s for %s: %w", call.Domain, call.Service, entityID, err)
	}
	d.logger.Debug("Queued command", "id", cmd.ID, "entity", entityID, "service", call.Domain+"."+call.Service)
	return nil
}

func (d *Dispatcher) send(ctx context.Context, cmd Command) {
	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.haApiService.CallService(callCtx, cmd.Call)
	if err == nil {
		d.logger.Debug("Command sent", "id", cmd.ID, "entity", cmd.EntityID, "latency", time.Since(cmd.QueuedAt))
		return
	}

	d.logger.Error("Command failed", "id", cmd.ID, "entity", cmd.EntityID, "err", err)
	failure := Failure{
		CommandID: cmd.ID,
		EntityID:  cmd.EntityID,
		Service:   cmd.Call.Domain + "." + cmd.Call.Service,
		Error:     err.Error(),
		Time:      time.Now(),
	}
	select {
	case d.failures <- failure:
	default:
		d.logger.Warn("Failure channel full, dropping failure report", "id", cmd.ID)
	}
}

// <domain>.toggle for the entity
func ToggleCall(entityID string) (homeassistant.ServiceCall, error) {
	domain, err := domainOf(entityID)
	if err != nil {
		return homeassistant.ServiceCall{}, err
	}
	return homeassistant.ServiceCall{Domain: domain, Service: "toggle", EntityID: entityID}, nil
}

// picks the service that applies the attributes for the entity's domain
func SetAttributesCall(entityID string, attrs map[string]any) (homeassistant.ServiceCall, error) {
	domain, err := domainOf(entityID)
	if err != nil {
		return homeassistant.ServiceCall{}, err
	}
	if len(attrs) == 0 {
		return homeassistant.ServiceCall{}, fmt.Errorf("no attributes to set for %s", entityID)
	}

	call := homeassistant.ServiceCall{EntityID: entityID, Data: attrs}
	switch domain {
	case constants.DomainLight:
		call.Domain, call.Service = constants.DomainLight, "turn_on"
	case constants.DomainClimate:
		call.Domain, call.Service = constants.DomainClimate, "set_temperature"
	default:
		call.Domain, call.Service = constants.DomainHomeAssistant, "turn_on"
	}
	return call, nil
}

func domainOf(entityID string) (string, error) {
	domain, object, found := strings.Cut(entityID, ".")
	if !found || domain == "" || object == "" {
		return "", fmt.Errorf("invalid entity id %q", entityID)
	}
	return domain, nil
}
