package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/truco-front/truco/internal/config"
	"github.com/truco-front/truco/internal/game"
)

// fakeBackend serves one four-player match, "match-1", and records the
// actions posted to it.
type fakeBackend struct {
	mu      sync.Mutex
	details game.Details
	gone    bool
	posts   []string
	headers http.Header
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{details: game.Details{
		UUID:   "match-1",
		RoomID: "room-1",
		Chairs: game.Chairs{ChairA: "alice", ChairB: "bob", ChairC: "carol", ChairD: "dave"},
		Owner:  game.Owner{Name: "alice"},
		Step: game.Step{
			Number:      1,
			Vira:        "4O",
			PlayerTime:  game.Ptr("alice"),
			CardsChairA: []string{"5Z", "AO", "KC"},
		},
	}}
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.headers = r.Header.Clone()
	if fb.gone && strings.HasPrefix(r.URL.Path, "/games/") {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/games/match-1":
		_ = json.NewEncoder(w).Encode(fb.details)
	case r.Method == http.MethodGet && r.URL.Path == "/rooms":
		_ = json.NewEncoder(w).Encode([]game.Room{{UUID: "room-1", Name: "Sala"}})
	case r.Method == http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		fb.posts = append(fb.posts, r.URL.Path+" "+strings.TrimSpace(string(body)))
		_, _ = w.Write([]byte("{}"))
	default:
		http.NotFound(w, r)
	}
}

func (fb *fakeBackend) postsSnapshot() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.posts...)
}

// startServer runs a server in front of fb until the test ends.
func startServer(t *testing.T, fb *fakeBackend) *State {
	t.Helper()
	backend := httptest.NewServer(fb)
	t.Cleanup(backend.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.Defaults()
	cfg.BackendURL = backend.URL
	cfg.PollInterval = 20 * time.Millisecond
	cfg.WebDir = t.TempDir()

	started := make(chan *State, 1)
	errCh := make(chan error, 1)
	go func() { errCh <- Run(ctx, cfg, started) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Server shut down with error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Errorf("Server took too long to shut down")
		}
	})
	select {
	case s := <-started:
		return s
	case err := <-errCh:
		t.Fatalf("Server failed to start: %v", err)
	}
	return nil
}

func TestServerRun(t *testing.T) {
	s := startServer(t, newFakeBackend())

	resp, err := http.Get("http://" + s.Address + "/manifest.webmanifest")
	if err != nil {
		t.Fatalf("Failed to connect to server: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status OK, got %v", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "Truco") {
		t.Errorf("Expected manifest to contain 'Truco', got: %s", body)
	}
}

func TestBackendProxy(t *testing.T) {
	fb := newFakeBackend()
	s := startServer(t, fb)

	req, err := http.NewRequest(http.MethodGet, "http://"+s.Address+"/api/rooms", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("name", "alice")
	req.Header.Set("uuid", "0b6e2c8e-6a8f-4a43-9c0a-8f0f3f1f0a01")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Proxy request failed: %v", err)
	}
	defer resp.Body.Close()

	var rooms []game.Room
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		t.Fatalf("Failed to decode rooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Name != "Sala" {
		t.Errorf("Unexpected rooms %+v", rooms)
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.headers.Get("name") != "alice" || fb.headers.Get("uuid") == "" {
		t.Errorf("Identity headers were not forwarded: %v", fb.headers)
	}
}
