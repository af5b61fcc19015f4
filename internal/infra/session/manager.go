package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yanqian/pairhealth/pkg/coerce"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
)

// Claims is what the gateway can read from the bearer token without the
// backend's signing key. Opaque tokens yield zero Claims.
type Claims struct {
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Expired   bool       `json:"expired"`
}

// Manager owns the token and cached profile in the key-value store.
type Manager struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewManager constructs a manager over store.
func NewManager(store Store, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger.With("component", "session.manager"),
		now:    time.Now,
	}
}

// Token returns the stored token or "" when logged out.
func (m *Manager) Token(ctx context.Context) (string, error) {
	raw, ok, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return "", apperrors.Wrap("session_read_failed", "failed to read token", err)
	}
	if !ok {
		return "", nil
	}
	return string(raw), nil
}

// SaveLogin stores the token and, when present, the profile that came with it.
func (m *Manager) SaveLogin(ctx context.Context, token string, profile coerce.Object) error {
	if token == "" {
		return apperrors.Wrap("invalid_token", "login returned no token", nil)
	}
	if err := m.store.Set(ctx, KeyToken, []byte(token)); err != nil {
		return apperrors.Wrap("session_write_failed", "failed to store token", err)
	}
	if profile == nil {
		return nil
	}
	return m.SaveProfile(ctx, profile)
}

// SaveProfile caches the user profile.
func (m *Manager) SaveProfile(ctx context.Context, profile coerce.Object) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return apperrors.Wrap("session_write_failed", "failed to encode profile", err)
	}
	if err := m.store.Set(ctx, KeyUserInfo, payload); err != nil {
		return apperrors.Wrap("session_write_failed", "failed to store profile", err)
	}
	return nil
}

// Profile returns the cached profile.
func (m *Manager) Profile(ctx context.Context) (coerce.Object, bool, error) {
	raw, ok, err := m.store.Get(ctx, KeyUserInfo)
	if err != nil {
		return nil, false, apperrors.Wrap("session_read_failed", "failed to read profile", err)
	}
	if !ok {
		return nil, false, nil
	}
	decoded, err := coerce.Decode(raw)
	if err != nil {
		m.logger.Warn("discarding unreadable profile", "error", err)
		return nil, false, nil
	}
	profile := coerce.ObjectOrNil(decoded)
	return profile, profile != nil, nil
}

// Clear removes token and profile. Both removals are attempted.
func (m *Manager) Clear(ctx context.Context) error {
	errToken := m.store.Remove(ctx, KeyToken)
	errProfile := m.store.Remove(ctx, KeyUserInfo)
	if err := errors.Join(errToken, errProfile); err != nil {
		return apperrors.Wrap("session_clear_failed", "failed to clear session", err)
	}
	m.logger.Info("session cleared")
	return nil
}

// LoggedIn reports whether a token is stored.
func (m *Manager) LoggedIn(ctx context.Context) bool {
	token, err := m.Token(ctx)
	return err == nil && token != ""
}

// Claims parses the stored token without verifying its signature.
func (m *Manager) Claims(ctx context.Context) (Claims, error) {
	token, err := m.Token(ctx)
	if err != nil || token == "" {
		return Claims{}, err
	}
	return m.parseClaims(token), nil
}

func (m *Manager) parseClaims(token string) Claims {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		m.logger.Debug("token is not a jwt", "error", err)
		return Claims{}
	}
	var out Claims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		out.ExpiresAt = &t
		out.Expired = !t.After(m.now())
	}
	return out
}
