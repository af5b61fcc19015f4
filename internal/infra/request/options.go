package request

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single transport attempt.
const DefaultTimeout = 30 * time.Second

// Options controls the per-call behavior of the pipeline.
type Options struct {
	ShowLoading bool
	ShowError   bool
	Timeout     time.Duration
	Header      http.Header
}

// Option mutates Options.
type Option func(*Options)

// WithoutLoading keeps the call out of the shared loading indicator.
func WithoutLoading() Option {
	return func(o *Options) { o.ShowLoading = false }
}

// WithoutErrorToast suppresses user-visible failure notices. The session
// teardown on 401 still happens.
func WithoutErrorToast() Option {
	return func(o *Options) { o.ShowError = false }
}

// WithTimeout overrides the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

// WithHeader adds a caller header. Authorization set here is left alone only
// for allow-listed paths.
func WithHeader(key, value string) Option {
	return func(o *Options) {
		if o.Header == nil {
			o.Header = make(http.Header)
		}
		o.Header.Set(key, value)
	}
}

func defaultOptions(timeout time.Duration) Options {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Options{ShowLoading: true, ShowError: true, Timeout: timeout}
}

func buildOptions(timeout time.Duration, opts []Option) Options {
	out := defaultOptions(timeout)
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}
