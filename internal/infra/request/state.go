package request

import (
	"log/slog"
	"strings"
	"sync"
)

// DefaultBaseURL is used when no override is configured.
const DefaultBaseURL = "https://sanchuang1.tcim.me"

// TransportState owns the process-wide runtime base URL.
type TransportState struct {
	mu         sync.RWMutex
	baseURL    string
	downgraded bool
	logger     *slog.Logger
}

// NewTransportState seeds the runtime base URL.
func NewTransportState(baseURL string, logger *slog.Logger) *TransportState {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &TransportState{baseURL: base, logger: logger}
}

// BaseURL returns the current runtime base URL.
func (s *TransportState) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL
}

// Resolve prefixes relative paths with the runtime base URL. Absolute
// http(s) URLs pass through untouched.
func (s *TransportState) Resolve(rawURL string) string {
	if strings.HasPrefix(rawURL, "http") {
		return rawURL
	}
	return s.BaseURL() + rawURL
}

// Downgrade switches the base URL to plain HTTP for the rest of the process.
// It reports whether this call performed the transition.
func (s *TransportState) Downgrade() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.downgraded || !strings.HasPrefix(s.baseURL, "https://") {
		return false
	}
	previous := s.baseURL
	s.baseURL = "http://" + strings.TrimPrefix(previous, "https://")
	s.downgraded = true
	if s.logger != nil {
		s.logger.Info("runtime base url downgraded to http", "from", previous, "to", s.baseURL)
	}
	return true
}

// Downgraded reports whether the one-time transition has happened.
func (s *TransportState) Downgraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.downgraded
}
