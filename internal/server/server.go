// Package server serves the truco web client: the go-app pages, the static
// assets, a /api proxy to the game backend and the /ws match relay.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/truco-front/truco/internal/client"
	"github.com/truco-front/truco/internal/config"
	"github.com/truco-front/truco/internal/frontend"
	"github.com/truco-front/truco/internal/game"
	"k8s.io/klog/v2"
)

// State of a running server. It is sent on the started channel once the
// server listens.
type State struct {
	// Address the server listens on, host:port.
	Address string

	cfg     *config.Config
	backend *client.Client

	mu     sync.Mutex
	relays map[*relay]struct{}
}

// Followers returns how many relay connections are open.
func (s *State) Followers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.relays)
}

// Run starts the server and blocks until ctx is canceled. started, if not
// nil, receives the server State once it listens.
func Run(ctx context.Context, cfg *config.Config, started chan<- *State) error {
	backendURL, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", cfg.BackendURL, err)
	}
	backend, err := client.New(cfg.BackendURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}

	// Global frontend state is needed for server-side prerendering.
	frontend.InitState()
	frontend.Routes()

	h := &app.Handler{
		Name:        "Truco",
		Description: "Truco paulista online, for two or four players",
		Styles: []string{
			"/web/css/pico.min.css",
			"/web/css/main.css",
		},
		Version: game.Version,
		Env: map[string]string{
			frontend.EnvPollInterval: cfg.PollInterval.String(),
		},
	}

	listenAddr := cfg.Addr
	if listenAddr == "" {
		listenAddr = "localhost:0"
	}
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", listenAddr, err)
	}

	s := &State{
		Address: ln.Addr().String(),
		cfg:     cfg,
		backend: backend,
		relays:  make(map[*relay]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.Handle("/api/", http.StripPrefix("/api", newBackendProxy(backendURL)))
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir(cfg.WebDir))))
	mux.Handle("/", h)

	srv := &http.Server{
		Handler:     mux,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		klog.Infof("Server started on %s, backend %s", s.Address, cfg.BackendURL)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	if started != nil {
		started <- s
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}

// newBackendProxy forwards /api/* to the backend, identity headers included.
func newBackendProxy(target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			klog.Warningf("Proxy %s %s failed: %v", r.Method, r.URL.Path, err)
			http.Error(w, "backend unavailable", http.StatusBadGateway)
		},
	}
}
