// Package fetch issues the one request for orders and reports its lifecycle
// as store events. There is no retry and no cancellation hook: the request runs
// with the caller's root context and the client timeout only.
package fetch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jask/orderdesk/internal/store"
)

// Dispatcher receives lifecycle events. *store.Store satisfies it.
type Dispatcher interface {
	Dispatch(store.Event)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(store.Event)

func (f DispatchFunc) Dispatch(ev store.Event) { f(ev) }

// Orchestrator guards the single request of an activation.
type Orchestrator struct {
	source Source
	log    *zap.Logger
	once   sync.Once
}

func New(source Source, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{source: source, log: log}
}

// Begin claims the request. It returns Requested and true the first time only.
func (o *Orchestrator) Begin() (store.Event, bool) {
	first := false
	o.once.Do(func() { first = true })
	if !first {
		return nil, false
	}
	return store.Requested{}, true
}

// Resolve performs the request and returns Succeeded or Failed.
// Callers must have claimed the request with Begin.
func (o *Orchestrator) Resolve(ctx context.Context) store.Event {
	start := time.Now()
	raw, err := o.source.FetchOrders(ctx)
	if err != nil {
		o.log.Warn("orders fetch failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return store.Failed{Err: err}
	}
	o.log.Info("orders fetched", zap.Int("count", len(raw)), zap.Duration("elapsed", time.Since(start)))
	return store.Succeeded{Orders: raw}
}

// Run dispatches Requested, performs the request and dispatches its outcome.
// It reports false without doing anything when the request was already issued.
func (o *Orchestrator) Run(ctx context.Context, d Dispatcher) bool {
	ev, ok := o.Begin()
	if !ok {
		return false
	}
	d.Dispatch(ev)
	d.Dispatch(o.Resolve(ctx))
	return true
}
