package request

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/pairhealth/pkg/coerce"
)

// Config carries the environment-dependent settings of the pipeline.
type Config struct {
	BaseURL       string
	Development   bool
	Timeout       time.Duration
	LoginRoute    string
	RedirectDelay time.Duration
}

// Call is one logical request.
type Call struct {
	Method string
	URL    string
	Body   any
	Options
}

// Envelope is a successful backend reply: {code, message, data}.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
	Body    any    `json:"-"`
}

// Result is an envelope whose data went through a normalizer.
type Result[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// MapResult normalizes env.Data with fn.
func MapResult[T any](env Envelope, fn func(any) T) Result[T] {
	return Result[T]{Code: env.Code, Message: env.Message, Data: fn(env.Data)}
}

// Requester is the verb-shaped surface domain wrappers depend on.
type Requester interface {
	Get(ctx context.Context, path string, params any, opts ...Option) (Envelope, error)
	Post(ctx context.Context, path string, body any, opts ...Option) (Envelope, error)
	Put(ctx context.Context, path string, body any, opts ...Option) (Envelope, error)
	Delete(ctx context.Context, path string, body any, opts ...Option) (Envelope, error)
}

// Client is the request facade shared by every domain wrapper.
type Client struct {
	cfg        Config
	state      *TransportState
	transport  Transport
	headers    *HeaderInjector
	loading    *LoadingCounter
	policy     DowngradePolicy
	classifier Classifier
	effects    *EffectRunner
	logger     *slog.Logger
	newID      func() string
}

// NewClient wires the pipeline. tokens and session are usually the same
// session manager; ui is the surface that renders toasts, loading and navigation.
func NewClient(cfg Config, transport Transport, tokens TokenSource, session SessionClearer, ui Surface, logger *slog.Logger) *Client {
	logger = logger.With("component", "request.client")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	var (
		indicator Indicator
		notifier  Notifier
		navigator Navigator
	)
	if ui != nil {
		indicator, notifier, navigator = ui, ui, ui
	}
	return &Client{
		cfg:        cfg,
		state:      NewTransportState(cfg.BaseURL, logger),
		transport:  transport,
		headers:    NewHeaderInjector(tokens, logger),
		loading:    NewLoadingCounter(indicator),
		policy:     NewDowngradePolicy(cfg.Development),
		classifier: NewClassifier(cfg.LoginRoute, cfg.RedirectDelay),
		effects:    NewEffectRunner(notifier, navigator, session, logger),
		logger:     logger,
		newID:      func() string { return uuid.NewString() },
	}
}

// State exposes the runtime base URL holder.
func (c *Client) State() *TransportState {
	return c.state
}

// Loading exposes the shared loading counter.
func (c *Client) Loading() *LoadingCounter {
	return c.loading
}

// Get issues a GET; params become the query string.
func (c *Client) Get(ctx context.Context, path string, params any, opts ...Option) (Envelope, error) {
	return c.Do(ctx, c.newCall(http.MethodGet, path, params, opts))
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...Option) (Envelope, error) {
	return c.Do(ctx, c.newCall(http.MethodPost, path, body, opts))
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...Option) (Envelope, error) {
	return c.Do(ctx, c.newCall(http.MethodPut, path, body, opts))
}

// Delete issues a DELETE with a JSON body.
func (c *Client) Delete(ctx context.Context, path string, body any, opts ...Option) (Envelope, error) {
	return c.Do(ctx, c.newCall(http.MethodDelete, path, body, opts))
}

func (c *Client) newCall(method, path string, body any, opts []Option) Call {
	return Call{Method: method, URL: path, Body: body, Options: buildOptions(c.cfg.Timeout, opts)}
}

// Do runs a call through the whole pipeline. It resolves with the backend body
// or fails with *Error; the loading counter is released on every exit path.
func (c *Client) Do(ctx context.Context, call Call) (Envelope, error) {
	method := strings.ToUpper(call.Method)
	if method == "" {
		method = http.MethodGet
	}
	if call.Timeout <= 0 {
		call.Timeout = c.cfg.Timeout
	}

	requestID := c.newID()
	target := c.state.Resolve(call.URL)
	header := c.headers.Build(ctx, target, call.Header)
	header.Set("X-Request-Id", requestID)

	if call.ShowLoading {
		c.loading.Increment()
		defer c.loading.Decrement()
	}

	// Once issued a call runs to completion; only the per-call timeout bounds it.
	ctx = context.WithoutCancel(ctx)
	out := Outbound{Method: method, URL: target, Header: header, Body: call.Body, Timeout: call.Timeout}
	log := c.logger.With("request_id", requestID, "method", method)

	// downgradeAttempted is scoped to this logical call.
	downgradeAttempted := false
	for {
		start := time.Now()
		resp, err := c.transport.RoundTrip(ctx, out)
		if err != nil {
			if c.policy.ShouldRetry(out.URL, downgradeAttempted, err) {
				downgradeAttempted = true
				previous := out.URL
				out.URL = c.policy.Apply(out.URL)
				c.state.Downgrade()
				log.Warn("https request failed, retrying over http", "url", previous, "retry_url", out.URL, "error", err)
				continue
			}
			log.Warn("transport failure", "url", out.URL, "error", err, "latency_ms", time.Since(start).Milliseconds())
			outcome := c.classifier.ClassifyTransport(err, call.Options)
			c.effects.Run(ctx, outcome.Effects)
			return Envelope{}, outcome.Err
		}

		log.Debug("request settled", "url", out.URL, "status", resp.Status, "latency_ms", time.Since(start).Milliseconds())
		outcome := c.classifier.Classify(resp, call.Options)
		c.effects.Run(ctx, outcome.Effects)
		if outcome.Err != nil {
			return Envelope{}, outcome.Err
		}
		return newEnvelope(outcome.Body), nil
	}
}

var _ Requester = (*Client)(nil)

func newEnvelope(body any) Envelope {
	env := Envelope{Code: CodeSuccess, Body: body}
	obj := coerce.ObjectOrNil(body)
	if obj == nil {
		return env
	}
	env.Code = coerce.Int(obj["code"], CodeSuccess)
	env.Message = coerce.String(obj, "message")
	env.Data = obj["data"]
	return env
}
