// Package client talks to the truco game backend over its REST API.
//
// It is used both by the front server (to follow matches on behalf of a
// browser) and by the WASM frontend (lobby and room pages, through the
// server's /api proxy).
package client

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

	"github.com/google/uuid"
	"github.com/truco-front/truco/internal/game"
	"github.com/truco-front/truco/internal/truco"
	"k8s.io/klog/v2"
)

// Transport errors. Backend failures are wrapped with the request that
// triggered them.
var (
	ErrMatchNotFound = errors.New("match not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrBackend       = errors.New("backend error")
	ErrInvalidInput  = errors.New("invalid input")
)

// Client is a backend client acting on behalf of one identity. It is safe
// for concurrent use.
type Client struct {
	base string
	http *http.Client
	id   truco.Identity
}

// New creates a client for the backend at baseURL. A zero timeout means no
// per-request timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}
	return &Client{
		base: strings.TrimSuffix(u.String(), "/"),
		http: &http.Client{Timeout: timeout},
	}, nil
}

// WithIdentity returns a copy of c sending requests as id.
func (c *Client) WithIdentity(id truco.Identity) *Client {
	cp := *c
	cp.id = id
	return &cp
}

// Identity returns who the client acts as.
func (c *Client) Identity() truco.Identity {
	return c.id
}

// ParseID validates a player or match UUID and returns its canonical form.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: id %q: %w", ErrInvalidInput, s, err)
	}
	return id.String(), nil
}

// do sends a JSON request and decodes the JSON response into out, if out is
// not nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("name", c.id.Name)
	req.Header.Set("uuid", c.id.ID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrBackend, method, path, err)
	}
	defer resp.Body.Close()
	klog.V(2).Infof("%s %s -> %d", method, path, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrMatchNotFound, method, path)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s", ErrUnauthorized, method, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrBackend, method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decoding %s %s: %w", ErrBackend, method, path, err)
	}
	return nil
}

// CreatePlayer registers a new player name and returns its identity.
func (c *Client) CreatePlayer(ctx context.Context, name string) (truco.Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > game.MaxPlayerNameLength {
		return truco.Identity{}, fmt.Errorf("%w: player name must have 1 to %d characters", ErrInvalidInput, game.MaxPlayerNameLength)
	}
	var p game.Player
	if err := c.do(ctx, http.MethodPost, "/players", game.CreatePlayerRequest{Name: name}, &p); err != nil {
		return truco.Identity{}, err
	}
	id, err := ParseID(p.ID)
	if err != nil {
		return truco.Identity{}, fmt.Errorf("%w: player created with %w", ErrBackend, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return truco.Identity{Name: p.Name, ID: id}, nil
}
