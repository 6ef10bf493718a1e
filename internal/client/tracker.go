package client

import (
	"fmt"
	"sync"

	"github.com/truco-front/truco/internal/game"
	"github.com/truco-front/truco/internal/truco"
	"k8s.io/klog/v2"
)

// Tracker holds the last good view of a match for one viewer. Every
// document goes through truco.Decode, truco.CheckProgress and
// truco.BuildView; a document failing any of them leaves the view
// untouched.
type Tracker struct {
	mu   sync.Mutex
	id   truco.Identity
	last *truco.Snapshot
	view *truco.View
	err  error
}

// NewTracker creates a tracker for the viewer id.
func NewTracker(id truco.Identity) *Tracker {
	return &Tracker{id: id}
}

// Apply projects d. On failure the previous view is kept and returned
// together with the error.
func (t *Tracker) Apply(d *game.Details) (*truco.View, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := truco.Decode(d)
	if err == nil {
		err = truco.CheckProgress(t.last, s)
	}
	if err != nil {
		klog.Warningf("Keeping previous view of match %q: %v", d.UUID, err)
		t.err = err
		return t.view, err
	}
	t.last, t.view, t.err = s, truco.BuildView(s, t.id), nil
	return t.view, nil
}

// Fail records a transport error without touching the view.
func (t *Tracker) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
}

// View returns the last good view, nil before the first one.
func (t *Tracker) View() *truco.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Err returns the error of the last Apply or Fail, nil after a success.
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Validate checks a against the actions offered by the last good view.
func (t *Tracker) Validate(a truco.Action) error {
	v := t.View()
	if v == nil {
		return fmt.Errorf("%w: no game state yet", truco.ErrInvalidTransition)
	}
	return v.Actions.Validate(a)
}
