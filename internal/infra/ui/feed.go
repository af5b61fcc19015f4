package ui

import (
	"log/slog"
	"sync"
	"time"

	"github.com/yanqian/pairhealth/internal/infra/request"
)

// Kind names the UI side effect an event stands for.
type Kind string

const (
	KindToast    Kind = "toast"
	KindLoading  Kind = "loading"
	KindNavigate Kind = "navigate"
)

// DefaultCapacity bounds the number of events a feed retains.
const DefaultCapacity = 256

// Event is one side effect published to the UI shell.
type Event struct {
	Seq     uint64    `json:"seq"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message,omitempty"`
	Route   string    `json:"route,omitempty"`
	Visible *bool     `json:"visible,omitempty"`
	At      time.Time `json:"at"`
}

// LoadingState is the current loading indicator.
type LoadingState struct {
	Visible bool   `json:"visible"`
	Title   string `json:"title,omitempty"`
}

// Feed records toasts, loading changes and navigation so a UI shell can poll
// them. It satisfies request.Surface.
type Feed struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	next     uint64
	loading  LoadingState
	logger   *slog.Logger
	now      func() time.Time
}

// NewFeed builds a feed retaining at most capacity events.
func NewFeed(capacity int, logger *slog.Logger) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		events:   make([]Event, 0, capacity),
		capacity: capacity,
		next:     1,
		logger:   logger.With("component", "ui.feed"),
		now:      time.Now,
	}
}

// Toast implements request.Notifier.
func (f *Feed) Toast(message string) {
	f.publish(Event{Kind: KindToast, Message: message})
}

// ReLaunch implements request.Navigator.
func (f *Feed) ReLaunch(route string) {
	f.logger.Info("navigation requested", "route", route)
	f.publish(Event{Kind: KindNavigate, Route: route})
}

// ShowLoading implements request.Indicator.
func (f *Feed) ShowLoading(title string) {
	f.setLoading(LoadingState{Visible: true, Title: title})
}

// HideLoading implements request.Indicator.
func (f *Feed) HideLoading() {
	f.setLoading(LoadingState{})
}

// Loading returns the current indicator state.
func (f *Feed) Loading() LoadingState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

// Since returns retained events with Seq > seq, oldest first, and the latest
// sequence number handed out so far.
func (f *Feed) Since(seq uint64) ([]Event, uint64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Event, 0)
	for _, e := range f.events {
		if e.Seq > seq {
			out = append(out, e)
		}
	}
	return out, f.next - 1
}

func (f *Feed) setLoading(state LoadingState) {
	visible := state.Visible
	f.mu.Lock()
	f.loading = state
	f.mu.Unlock()
	f.publish(Event{Kind: KindLoading, Message: state.Title, Visible: &visible})
}

func (f *Feed) publish(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.Seq = f.next
	e.At = f.now()
	f.next++
	if len(f.events) == f.capacity {
		copy(f.events, f.events[1:])
		f.events = f.events[:len(f.events)-1]
	}
	f.events = append(f.events, e)
}

var _ request.Surface = (*Feed)(nil)
