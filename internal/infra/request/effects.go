package request

import (
	"context"
	"log/slog"
	"time"
)

// Effect is a side effect requested by classification.
type Effect interface {
	effect()
}

// ToastEffect shows a short user-visible message.
type ToastEffect struct {
	Message string
}

// ClearSessionEffect drops the stored credential and cached profile.
type ClearSessionEffect struct{}

// RedirectEffect replaces the screen stack with Route after Delay.
type RedirectEffect struct {
	Route string
	Delay time.Duration
}

func (ToastEffect) effect()        {}
func (ClearSessionEffect) effect() {}
func (RedirectEffect) effect()     {}

// Notifier is the fire-and-forget toast surface.
type Notifier interface {
	Toast(message string)
}

// Navigator replaces the current screen stack.
type Navigator interface {
	ReLaunch(route string)
}

// SessionClearer removes the locally stored session.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// Surface bundles the UI collaborators the pipeline talks to.
type Surface interface {
	Notifier
	Navigator
	Indicator
}

// EffectRunner performs effects against the UI and session collaborators.
type EffectRunner struct {
	notifier  Notifier
	navigator Navigator
	session   SessionClearer
	logger    *slog.Logger
	afterFunc func(d time.Duration, f func())
}

// NewEffectRunner builds a runner; nil collaborators turn their effects into no-ops.
func NewEffectRunner(notifier Notifier, navigator Navigator, session SessionClearer, logger *slog.Logger) *EffectRunner {
	return &EffectRunner{
		notifier:  notifier,
		navigator: navigator,
		session:   session,
		logger:    logger,
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Run executes effects in order. Session clearing completes before Run returns;
// redirects are scheduled.
func (r *EffectRunner) Run(ctx context.Context, effects []Effect) {
	for _, e := range effects {
		switch eff := e.(type) {
		case ClearSessionEffect:
			if r.session == nil {
				continue
			}
			if err := r.session.Clear(context.WithoutCancel(ctx)); err != nil {
				r.logger.Error("clear session failed", "error", err)
			}
		case ToastEffect:
			if r.notifier != nil {
				r.notifier.Toast(eff.Message)
			}
		case RedirectEffect:
			if r.navigator == nil {
				continue
			}
			route := eff.Route
			r.afterFunc(eff.Delay, func() { r.navigator.ReLaunch(route) })
		}
	}
}
