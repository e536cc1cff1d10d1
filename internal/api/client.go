// Package api is the HTTP JSON client for the TaskManager backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/D-ASA-D/TaskManager/internal/model"
)

// ErrNotFound is returned when the backend answers 404 for a lookup or delete.
var ErrNotFound = errors.New("not found")

// StatusError carries a non-2xx backend response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error: status %d, body %s", e.Status, e.Body)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given API base URL, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// UserByUsername fetches a user record including the stored password, which
// the backend returns in plain text. Returns ErrNotFound on 404.
func (c *Client) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/users/username/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	req := model.User{Username: username, Password: password}
	var created model.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) EventsByUser(ctx context.Context, userID int64) ([]model.Event, error) {
	var events []model.Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/user/%d", userID), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) UpcomingEvents(ctx context.Context, userID int64) ([]model.Event, error) {
	var events []model.Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/upcoming/%d", userID), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) EventByID(ctx context.Context, id int64) (*model.Event, error) {
	var event model.Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) CreateEvent(ctx context.Context, event model.Event) (*model.Event, error) {
	var created model.Event
	if err := c.do(ctx, http.MethodPost, "/events", event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteEvent removes an event. Returns ErrNotFound if the id is unknown.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil)
}

// NotificationsByUser fetches server-computed pending notifications.
func (c *Client) NotificationsByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notifications/user/%d", userID), nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// do performs one JSON request. A nil in skips the body, a nil out discards
// the response body. 404 maps to ErrNotFound, any other non-2xx to a
// StatusError with the response text attached.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Status: resp.StatusCode, Body: string(text)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
