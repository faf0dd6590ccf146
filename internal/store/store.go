package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jask/orderdesk/internal/orders"
)

// OrdersState is the order list plus fetch flags. The zero value is the initial state.
type OrdersState struct {
	Orders  []orders.DisplayOrder
	Loading bool
	Error   string
	Success string
}

// Event is one of the fetch lifecycle events.
//
//sumtype:decl
type Event interface {
	lifecycle()
}

// Requested marks the outbound request as issued.
type Requested struct{}

// Succeeded carries the raw payload of a completed request.
type Succeeded struct {
	Orders []orders.RawOrder
}

// Failed carries the reason a request did not produce orders.
type Failed struct {
	Err error
}

func (Requested) lifecycle() {}
func (Succeeded) lifecycle() {}
func (Failed) lifecycle()    {}

// Reduce applies ev to s and returns the next state. s is not modified.
func Reduce(s OrdersState, ev Event) OrdersState {
	switch e := ev.(type) {
	case Requested:
		s.Loading = true
		return s
	case Succeeded:
		normalized, err := orders.Normalize(e.Orders)
		if err != nil {
			return Reduce(s, Failed{Err: err})
		}
		s.Orders = normalized
		s.Loading = false
		s.Success = fmt.Sprintf("loaded %d orders", len(normalized))
		return s
	case Failed:
		s.Loading = false
		if e.Err != nil {
			s.Error = e.Err.Error()
		} else {
			s.Error = "request failed"
		}
		return s
	default:
		return s
	}
}

// Store holds the current OrdersState and applies events in dispatch order.
// It is owned by a single goroutine; callers must not dispatch concurrently.
type Store struct {
	state OrdersState
	log   *zap.Logger
}

func New(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{log: log}
}

// Dispatch runs ev through Reduce and keeps the result.
func (s *Store) Dispatch(ev Event) {
	prev := s.state
	s.state = Reduce(prev, ev)
	s.log.Debug("orders event",
		zap.String("event", eventName(ev)),
		zap.Bool("loading", s.state.Loading),
		zap.Int("orders", len(s.state.Orders)),
		zap.String("error", s.state.Error))
	if s.state.Error != prev.Error && s.state.Error != "" {
		s.log.Warn("orders request failed", zap.String("error", s.state.Error))
	}
}

// State returns the current state. The Orders slice is shared and must be treated as read-only.
func (s *Store) State() OrdersState {
	return s.state
}

func eventName(ev Event) string {
	switch ev.(type) {
	case Requested:
		return "requested"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
