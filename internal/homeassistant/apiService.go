package homeassistant

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/hadash/internal/config"
	"github.com/wheelibin/hadash/internal/models"
)

var ErrUnauthorized = errors.New("home assistant rejected the access token")

type APIService struct {
	logger  *log.Logger
	baseURL string
	token   string
	client  *http.Client
}

func NewAPIService(logger *log.Logger, cfg config.HomeAssistant) *APIService {
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
	}
	return &APIService{
		logger:  logger,
		baseURL: cfg.URL,
		token:   cfg.Token,
		client:  &http.Client{Transport: tr, Timeout: 30 * time.Second},
	}
}

func (h *APIService) GET(ctx context.Context, url string) ([]byte, error) {
	return h.makeRequest(ctx, http.MethodGet, url, nil)
}

func (h *APIService) POST(ctx context.Context, url string, body []byte) ([]byte, error) {
	return h.makeRequest(ctx, http.MethodPost, url, body)
}

// reads the current snapshot of every entity
func (h *APIService) GetStates(ctx context.Context) ([]models.Entity, error) {
	body, err := h.GET(ctx, "/api/states")
	if err != nil {
		return nil, fmt.Errorf("error reading states from home assistant: %w", err)
	}

	entities := []models.Entity{}
	if err := json.Unmarshal(body, &entities); err != nil {
		return nil, fmt.Errorf("error parsing states response: %w", err)
	}
	return entities, nil
}

func (h *APIService) CallService(ctx context.Context, call ServiceCall) error {
	data := map[string]any{}
	for k, v := range call.Data {
		data[k] = v
	}
	if call.EntityID != "" {
		data["entity_id"] = call.EntityID
	}
	requestBody, err := json.Marshal(data)
	if err != nil {
		return err
	}

	h.logger.Debug("Calling service", "domain", call.Domain, "service", call.Service, "entity", call.EntityID)
	_, err = h.POST(ctx, fmt.Sprintf("/api/services/%s/%s", call.Domain, call.Service), requestBody)
	if err != nil {
		return fmt.Errorf("error calling %s.%s for %s: %w", call.Domain, call.Service, call.EntityID, err)
	}
	return nil
}

func (h *APIService) makeRequest(ctx context.Context, verb string, url string, body []byte) ([]byte, error) {

	bodyReader := bytes.NewReader(body)
	req, err := http.NewRequestWithContext(ctx, verb, h.baseURL+url, bodyReader)
	if err != nil {
		return nil, err
	}

	// set headers
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", h.token))
	req.Header.Set("Content-Type", "application/json")

	// make the request
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return io.ReadAll(resp.Body)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		h.logger.Error("Error making Home Assistant API call", "url", url, "status", resp.Status)
		return nil, fmt.Errorf("unexpected status from home assistant: %s", resp.Status)
	}

}
