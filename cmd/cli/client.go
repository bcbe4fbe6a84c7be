package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aguxez/fitplan/models"
	"github.com/aguxez/fitplan/planner"
)

// client talks to the fitplan HTTP API.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Generation requests block until both plans are back.
		http: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *client) State() (planner.Snapshot, error) {
	return c.do(http.MethodGet, "/api/v1/state", nil)
}

func (c *client) SubmitProfile(u models.User) (planner.Snapshot, error) {
	return c.do(http.MethodPost, "/api/v1/profile", u)
}

func (c *client) Recalculate() (planner.Snapshot, error) {
	return c.do(http.MethodPost, "/api/v1/recalculate", nil)
}

func (c *client) GeneratePlans() (planner.Snapshot, error) {
	return c.do(http.MethodPost, "/api/v1/plans", nil)
}

func (c *client) SetLanguage(lang models.Language) (planner.Snapshot, error) {
	return c.do(http.MethodPut, "/api/v1/language", map[string]string{"language": string(lang)})
}

// do sends the request and decodes the snapshot. A failed generation comes
// back as 502 with a snapshot carrying the message, so it is not an error
// here.
func (c *client) do(method, path string, payload any) (planner.Snapshot, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return planner.Snapshot{}, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return planner.Snapshot{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return planner.Snapshot{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return planner.Snapshot{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadGateway:
		var snap planner.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return planner.Snapshot{}, fmt.Errorf("decoding state: %w", err)
		}
		return snap, nil
	default:
		var e struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &e); err == nil && e.Error != "" {
			return planner.Snapshot{}, errors.New(e.Error)
		}
		return planner.Snapshot{}, fmt.Errorf("HTTP error: %s", resp.Status)
	}
}
