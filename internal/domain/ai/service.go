package ai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/pairhealth/internal/infra/request"
	"github.com/yanqian/pairhealth/pkg/coerce"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
)

// Service exposes the AI consultation endpoints.
type Service interface {
	Consult(ctx context.Context, req ConsultRequest) (request.Result[ConsultResult], error)
	History(ctx context.Context, page, size int) (request.Result[coerce.Page[any]], error)
	QuickQuestions(ctx context.Context) (request.Result[[]string], error)
}

type service struct {
	cfg    Config
	client request.Requester
	logger *slog.Logger
	sleep  func(d time.Duration)
}

// NewService wires the AI domain onto the request pipeline.
func NewService(cfg Config, client request.Requester, logger *slog.Logger) Service {
	if cfg.MaxAttempts <= 0 || cfg.MaxAttempts > DefaultMaxAttempts {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	return &service{
		cfg:    cfg,
		client: client,
		logger: logger.With("component", "ai.service"),
		sleep:  time.Sleep,
	}
}

// Consult asks a question without the shared loading indicator or error
// toasts, retrying transient failures.
func (s *service) Consult(ctx context.Context, req ConsultRequest) (request.Result[ConsultResult], error) {
	if strings.TrimSpace(req.Question) == "" {
		return request.Result[ConsultResult]{}, apperrors.Wrap("invalid_input", "question is required", nil)
	}

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		env, err := s.client.Post(ctx, "/api/ai/consult", req, request.WithoutLoading(), request.WithoutErrorToast())
		if err == nil {
			return request.MapResult(env, NormalizeConsult), nil
		}
		lastErr = err

		reqErr, ok := request.AsError(err)
		if !ok || !reqErr.Transient() || attempt == s.cfg.MaxAttempts {
			break
		}
		s.logger.Warn("consult failed, retrying", "attempt", attempt, "code", reqErr.Code, "error", reqErr.Message)
		s.sleep(s.cfg.Backoff)
	}
	return request.Result[ConsultResult]{}, lastErr
}

func (s *service) History(ctx context.Context, page, size int) (request.Result[coerce.Page[any]], error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultHistorySize
	}
	env, err := s.client.Get(ctx, "/api/ai/history", map[string]any{"page": page, "size": size})
	if err != nil {
		return request.Result[coerce.Page[any]]{}, err
	}
	return request.MapResult(env, NormalizePage), nil
}

func (s *service) QuickQuestions(ctx context.Context) (request.Result[[]string], error) {
	env, err := s.client.Get(ctx, "/api/ai/questions", nil, request.WithoutLoading())
	if err != nil {
		return request.Result[[]string]{}, err
	}
	return request.MapResult(env, NormalizeQuickQuestions), nil
}
