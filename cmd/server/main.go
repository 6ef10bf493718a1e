package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/truco-front/truco/internal/config"
	"github.com/truco-front/truco/internal/server"
	"k8s.io/klog/v2"
)

var (
	flagAddr    = flag.String("addr", "", "Address to listen on, overrides TRUCO_ADDR (default: auto-port on localhost)")
	flagBackend = flag.String("backend", "", "Base URL of the game backend, overrides TRUCO_BACKEND_URL")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg := config.Load()
	if *flagAddr != "" {
		cfg.Addr = *flagAddr
	}
	if *flagBackend != "" {
		cfg.BackendURL = *flagBackend
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := make(chan *server.State, 1)
	go func() {
		state := <-started
		fmt.Printf("Truco server listening on http://%s (backend %s)\n", state.Address, cfg.BackendURL)
	}()

	if err := server.Run(ctx, cfg, started); err != nil {
		klog.Fatalf("Server failed: %v", err)
	}
}
