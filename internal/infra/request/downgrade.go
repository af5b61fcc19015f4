package request

import (
	"strings"
)

// DefaultDowngradeMarkers are the failure fragments that suggest a local
// TLS or proxy problem rather than a real outage.
var DefaultDowngradeMarkers = []string{
	"timeout",
	"ssl",
	"tls",
	"connection",
	"closed",
	"request:fail",
	"x509",
	"certificate",
	"deadline exceeded",
}

// DowngradePolicy decides whether a failed HTTPS call is retried once over HTTP.
// Only development builds enable it.
type DowngradePolicy struct {
	Enabled bool
	Markers []string
}

// NewDowngradePolicy returns the policy for the given build mode.
func NewDowngradePolicy(development bool) DowngradePolicy {
	return DowngradePolicy{Enabled: development, Markers: DefaultDowngradeMarkers}
}

// ShouldRetry applies the gate: enabled, HTTPS url, no prior attempt for this
// call, and a matching failure message.
func (p DowngradePolicy) ShouldRetry(rawURL string, attempted bool, err error) bool {
	if !p.Enabled || attempted || err == nil {
		return false
	}
	if !strings.HasPrefix(strings.ToLower(rawURL), "https://") {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range p.Markers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Apply rewrites the scheme to plain HTTP.
func (p DowngradePolicy) Apply(rawURL string) string {
	if len(rawURL) >= len("https://") && strings.EqualFold(rawURL[:len("https://")], "https://") {
		return "http://" + rawURL[len("https://"):]
	}
	return rawURL
}
