package request

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yanqian/pairhealth/pkg/logger"
)

type stubSession struct {
	mu      sync.Mutex
	token   string
	cleared int
	err     error
}

func (s *stubSession) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.err
}

func (s *stubSession) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	s.token = ""
	return nil
}

func (s *stubSession) clearedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

type recordingSurface struct {
	mu       sync.Mutex
	toasts   []string
	routes   []string
	shows    int
	hides    int
	visible  bool
	maxShown int
}

func (r *recordingSurface) Toast(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, message)
}

func (r *recordingSurface) ReLaunch(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recordingSurface) ShowLoading(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shows++
	r.visible = true
}

func (r *recordingSurface) HideLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hides++
	r.visible = false
}

func (r *recordingSurface) snapshot() (toasts, routes []string, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.toasts...), append([]string(nil), r.routes...), r.visible
}

type roundTripFunc func(ctx context.Context, out Outbound) (RawResponse, error)

func (f roundTripFunc) RoundTrip(ctx context.Context, out Outbound) (RawResponse, error) {
	return f(ctx, out)
}

type scriptedTransport struct {
	mu    sync.Mutex
	urls  []string
	times []time.Time
	steps []func(out Outbound) (RawResponse, error)
}

func (s *scriptedTransport) RoundTrip(_ context.Context, out Outbound) (RawResponse, error) {
	s.mu.Lock()
	idx := len(s.urls)
	s.urls = append(s.urls, out.URL)
	s.times = append(s.times, time.Now())
	s.mu.Unlock()
	if idx >= len(s.steps) {
		return RawResponse{}, errors.New("unexpected call")
	}
	return s.steps[idx](out)
}

func (s *scriptedTransport) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.urls...)
}

func okBody(data any) func(Outbound) (RawResponse, error) {
	return func(Outbound) (RawResponse, error) {
		return RawResponse{Status: 200, Body: map[string]any{"code": 200, "data": data}}, nil
	}
}

func failWith(msg string) func(Outbound) (RawResponse, error) {
	return func(Outbound) (RawResponse, error) {
		return RawResponse{}, errors.New(msg)
	}
}

func newTestClient(cfg Config, transport Transport, session *stubSession, ui *recordingSurface) *Client {
	c := NewClient(cfg, transport, session, session, ui, logger.Discard())
	c.effects.afterFunc = func(_ time.Duration, f func()) { f() }
	return c
}
