package client

import (
	"context"
	"errors"
	"time"

	"k8s.io/klog/v2"
)

// Poller fetches a document at a fixed interval until cancelled. The
// relay polls *game.Details; the lobby and room pages poll room lists and
// rooms.
type Poller[T any] struct {
	Interval time.Duration
	// Fetch retrieves the latest document. Required.
	Fetch func(ctx context.Context) (T, error)
	// OnFetch and OnError receive the outcome of every fetch. Both are
	// optional and called from the goroutine running Run.
	OnFetch func(T)
	OnError func(error)
}

// Run polls until ctx is done or the document disappears. The first fetch
// happens immediately. It returns ctx.Err() on cancellation, or an error
// wrapping ErrMatchNotFound.
func (p *Poller[T]) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := p.poll(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller[T]) poll(ctx context.Context) error {
	d, err := p.Fetch(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		klog.V(1).Infof("Poll failed: %v", err)
		if p.OnError != nil {
			p.OnError(err)
		}
		if errors.Is(err, ErrMatchNotFound) {
			return err
		}
		return nil
	}
	if p.OnFetch != nil {
		p.OnFetch(d)
	}
	return nil
}
