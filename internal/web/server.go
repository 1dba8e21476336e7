// Package web serves the dashboard to browsers: the HTML page, a JSON API for
// card views and actions, and a server-sent event stream of card changes.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/r3labs/sse/v2"
	"github.com/wheelibin/hadash/internal/cards"
	"github.com/wheelibin/hadash/internal/commands"
	"github.com/wheelibin/hadash/internal/daylight"
)

const (
	cardsStream = "cards"

	eventCard          = "card"
	eventRemoved       = "removed"
	eventCommandFailed = "command_failed"

	gracefulShutdownTimeout = 5 * time.Second
)

//go:embed templates/*.html static/*
var content embed.FS

type cardBoard interface {
	Views() []cards.View
	View(entityID string) (cards.View, bool)
	Act(ctx context.Context, entityID string, action cards.Action) (cards.View, error)
}

type roomSetter interface {
	SetRoom(entityID string, room string) (cards.View, error)
}

type themer interface {
	Theme(t time.Time) daylight.Theme
}

type Server struct {
	logger    *log.Logger
	addr      string
	version   string
	board     cardBoard
	rooms     roomSetter
	themer    themer
	events    *sse.Server
	templates *template.Template
	server    *http.Server

	now func() time.Time
}

// themer may be nil, in which case the page always uses the day palette
func NewServer(logger *log.Logger, addr string, version string, board cardBoard, rooms roomSetter, themer themer) (*Server, error) {
	templates, err := template.ParseFS(content, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing dashboard templates: %w", err)
	}

	events := sse.New()
	// browsers fetch the full board on load, so old events are never replayed
	events.AutoReplay = false
	events.CreateStream(cardsStream)

	return &Server{
		logger:    logger,
		addr:      addr,
		version:   version,
		board:     board,
		rooms:     rooms,
		themer:    themer,
		events:    events,
		templates: templates,
		now:       time.Now,
	}, nil
}

// serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Web dashboard listening", "addr", s.addr)
		errs <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error serving web dashboard: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Web dashboard shutting down")
	// event streams only end when the sse server closes them
	s.events.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down web dashboard: %w", err)
	}
	return nil
}

func (s *Server) PublishCard(view cards.View) {
	s.publish(eventCard, view)
}

func (s *Server) PublishRemoved(entityID string) {
	s.publish(eventRemoved, map[string]string{"entity_id": entityID})
}

func (s *Server) PublishFailure(failure commands.Failure) {
	s.publish(eventCommandFailed, failure)
}

func (s *Server) publish(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Error encoding event", "event", event, "err", err)
		return
	}
	s.events.Publish(cardsStream, &sse.Event{Event: []byte(event), Data: data})
}

func (s *Server) theme() daylight.Theme {
	if s.themer == nil {
		return daylight.ThemeDay
	}
	return s.themer.Theme(s.now())
}
