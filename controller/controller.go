// Package controller owns the in-memory view state for every console
// page: the authoritative fetched collections, the UI-only derived
// state (search, filters, sort, expanded rows) and the add/edit/delete
// flows with their confirm-then-merge protocol.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"backoffice/models"
)

// Phase is a page collection's load state.
type Phase int

const (
	Unloaded Phase = iota
	Loading
	Ready
	Errored
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "error"
	default:
		return "unloaded"
	}
}

// base carries the load state machine and lifetime shared by every page
// controller. The lifetime context is cancelled by Close so responses
// that resolve after the page is gone are discarded instead of being
// merged into a dead controller.
type base struct {
	mu       sync.Mutex
	phase    Phase
	loadErr  string
	lifetime context.Context
	cancel   context.CancelFunc
	notify   Notifier
}

func newBase(n Notifier) base {
	if n == nil {
		n = LogNotifier()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return base{lifetime: ctx, cancel: cancel, notify: n}
}

// Phase returns the page's current load state.
func (b *base) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// LoadError returns the message shown when the page is Errored.
func (b *base) LoadError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadErr
}

// Close cancels the controller's lifetime. In-flight requests are
// aborted and any late responses are dropped.
func (b *base) Close() {
	b.cancel()
}

// load runs the fetches concurrently and joins them: the page leaves
// Loading only once every fetch has settled. If any fetch fails the
// whole page becomes Errored with no partial Ready state. commit applies
// the fetched results under lock after a fully successful join.
func (b *base) load(commit func(), fetches ...func(context.Context) error) error {
	b.mu.Lock()
	b.phase = Loading
	b.loadErr = ""
	b.mu.Unlock()

	g, ctx := errgroup.WithContext(b.lifetime)
	for _, fetch := range fetches {
		fetch := fetch
		g.Go(func() error { return fetch(ctx) })
	}
	err := g.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lifetime.Err() != nil {
		// Closed while the fetch was in flight; drop the results.
		return b.lifetime.Err()
	}
	if err != nil {
		b.phase = Errored
		b.loadErr = errMessage(err)
		return err
	}
	commit()
	b.phase = Ready
	return nil
}

// runMutation is the confirm-then-merge protocol shared by every
// add/edit/delete flow: issue the request, and only after the server
// confirms, splice the result into the collection. On failure the
// collection is left untouched; onFail receives the user-facing message
// for the inline error area and failMsg goes to the toast.
func (b *base) runMutation(successMsg, failMsg string, call func(context.Context) error, merge func(), onFail func(msg string)) error {
	if err := call(b.lifetime); err != nil {
		if b.lifetime.Err() != nil {
			return err
		}
		if onFail != nil {
			onFail(errMessage(err))
		}
		b.notify.Error(failMsg)
		return err
	}
	b.mu.Lock()
	merge()
	b.mu.Unlock()
	b.notify.Success(successMsg)
	return nil
}

func errMessage(err error) string {
	var apiErr *models.ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// matchesSearch reports whether any field contains term,
// case-insensitively. An empty term matches everything.
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
