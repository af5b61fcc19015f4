package request

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// PublicPaths never receive the bearer credential.
var PublicPaths = []string{
	"/api/user/login",
	"/api/user/login/password",
	"/api/user/login/phone",
	"/api/user/login/wechat",
	"/api/user/register",
	"/api/user/sms/send",
}

// TokenSource exposes the locally stored credential.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// HeaderInjector builds the outbound header set for a call.
type HeaderInjector struct {
	tokens TokenSource
	public map[string]struct{}
	logger *slog.Logger
}

// NewHeaderInjector constructs an injector using PublicPaths.
func NewHeaderInjector(tokens TokenSource, logger *slog.Logger) *HeaderInjector {
	public := make(map[string]struct{}, len(PublicPaths))
	for _, p := range PublicPaths {
		public[p] = struct{}{}
	}
	return &HeaderInjector{tokens: tokens, public: public, logger: logger}
}

// Build returns a fresh header set; caller is never modified.
func (h *HeaderInjector) Build(ctx context.Context, rawURL string, caller http.Header) http.Header {
	header := caller.Clone()
	if header == nil {
		header = make(http.Header)
	}

	if token := h.token(ctx); token != "" && !h.IsPublic(rawURL) {
		header.Set("Authorization", "Bearer "+token)
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}
	return header
}

// IsPublic reports whether the URL's pathname is allow-listed.
func (h *HeaderInjector) IsPublic(rawURL string) bool {
	_, ok := h.public[Pathname(rawURL)]
	return ok
}

func (h *HeaderInjector) token(ctx context.Context) string {
	if h.tokens == nil {
		return ""
	}
	token, err := h.tokens.Token(ctx)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("read stored token failed", "error", err)
		}
		return ""
	}
	return token
}

// Pathname returns the path part of an absolute or relative URL.
func Pathname(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if strings.HasPrefix(rawURL, "/") {
		return stripQuery(rawURL)
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return stripQuery(rawURL)
	}
	if parsed.Path == "" {
		return "/"
	}
	return parsed.Path
}

func stripQuery(raw string) string {
	if idx := strings.IndexByte(raw, '?'); idx >= 0 {
		return raw[:idx]
	}
	return raw
}
