package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wheelibin/hadash/internal/cards"
	"github.com/wheelibin/hadash/internal/commands"
	"github.com/wheelibin/hadash/internal/daylight"
)

type dashboardPage struct {
	Theme daylight.Theme
	Cards []cards.View
}

type roomRequest struct {
	Room string `json:"room"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.version,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "dashboard.html", dashboardPage{Theme: s.theme(), Cards: s.board.Views()})
}

func (s *Server) handleCardFragment(w http.ResponseWriter, r *http.Request) {
	view, found := s.board.View(chi.URLParam(r, "id"))
	if !found {
		http.NotFound(w, r)
		return
	}
	s.render(w, "card", view)
}

func (s *Server) handleListCards(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Views())
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "id")
	view, found := s.board.View(entityID)
	if !found {
		writeError(w, http.StatusNotFound, errCodeNotFound, "no card for "+entityID)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// queues the card's command; the new state arrives later as a card event
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var action cards.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, "invalid action: "+err.Error())
		return
	}
	if action.Control == "" {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, "action needs a control")
		return
	}

	view, err := s.board.Act(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		s.writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, view)
}

func (s *Server) handleSetRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, "invalid room: "+err.Error())
		return
	}

	view, err := s.rooms.SetRoom(chi.URLParam(r, "id"), req.Room)
	if err != nil {
		s.writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("stream") == "" {
		q.Set("stream", cardsStream)
		r.URL.RawQuery = q.Encode()
	}
	s.events.ServeHTTP(w, r)
}

func (s *Server) writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cards.ErrNotFound):
		writeError(w, http.StatusNotFound, errCodeNotFound, err.Error())
	case errors.Is(err, cards.ErrUnavailable):
		writeError(w, http.StatusConflict, errCodeUnavailable, err.Error())
	case errors.Is(err, cards.ErrUnknownControl), errors.Is(err, cards.ErrMissingValue):
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
	case errors.Is(err, commands.ErrQueueFull):
		writeError(w, http.StatusServiceUnavailable, errCodeBusy, err.Error())
	default:
		s.logger.Error("Error handling card request", "err", err)
		writeError(w, http.StatusInternalServerError, errCodeInternal, "internal server error")
	}
}

// renders into a buffer first so a template error can still become a 500
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("Error rendering template", "template", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck // the client may already be gone
	buf.WriteTo(w)
}
