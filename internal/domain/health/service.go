package health

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/pairhealth/internal/infra/request"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
)

// Service exposes the check-in and statistics endpoints.
type Service interface {
	SubmitCheckin(ctx context.Context, req CheckinRequest) (request.Envelope, error)
	TodayCheckin(ctx context.Context) (request.Result[TodayCheckin], error)
	CheckinHistory(ctx context.Context, page, size int) (request.Result[History], error)
	Score(ctx context.Context) (request.Result[Score], error)
	Streak(ctx context.Context) (request.Result[Streak], error)
	CheckinStats(ctx context.Context, period string) (request.Envelope, error)
	Trend(ctx context.Context, days int) (request.Envelope, error)
	Stats(ctx context.Context) (request.Result[Stats], error)
}

type service struct {
	client request.Requester
	logger *slog.Logger
}

// NewService wires the health domain onto the request pipeline.
func NewService(client request.Requester, logger *slog.Logger) Service {
	return &service{client: client, logger: logger.With("component", "health.service")}
}

func (s *service) SubmitCheckin(ctx context.Context, req CheckinRequest) (request.Envelope, error) {
	if strings.TrimSpace(req.CheckinDate) == "" {
		return request.Envelope{}, apperrors.Wrap("invalid_input", "checkinDate is required", nil)
	}
	env, err := s.client.Post(ctx, "/api/health/checkin", req)
	if err != nil {
		return request.Envelope{}, err
	}
	s.logger.Info("checkin submitted", "date", req.CheckinDate)
	return env, nil
}

// TodayCheckin is silent: no loading indicator and no error toast.
func (s *service) TodayCheckin(ctx context.Context) (request.Result[TodayCheckin], error) {
	env, err := s.client.Get(ctx, "/api/health/checkin/today", nil, request.WithoutLoading(), request.WithoutErrorToast())
	if err != nil {
		return request.Result[TodayCheckin]{}, err
	}
	return request.MapResult(env, NormalizeToday), nil
}

func (s *service) CheckinHistory(ctx context.Context, page, size int) (request.Result[History], error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultHistorySize
	}
	env, err := s.client.Get(ctx, "/api/health/checkins", map[string]any{"page": page, "size": size})
	if err != nil {
		return request.Result[History]{}, err
	}
	return request.MapResult(env, NormalizeHistory), nil
}

func (s *service) Score(ctx context.Context) (request.Result[Score], error) {
	env, err := s.client.Get(ctx, "/api/health/score", nil, request.WithoutLoading())
	if err != nil {
		return request.Result[Score]{}, err
	}
	return request.MapResult(env, NormalizeScore), nil
}

func (s *service) Streak(ctx context.Context) (request.Result[Streak], error) {
	env, err := s.client.Get(ctx, "/api/health/streak", nil, request.WithoutLoading())
	if err != nil {
		return request.Result[Streak]{}, err
	}
	return request.MapResult(env, NormalizeStreak), nil
}

// CheckinStats returns the backend body unnormalized.
func (s *service) CheckinStats(ctx context.Context, period string) (request.Envelope, error) {
	if period == "" {
		period = DefaultStatsPeriod
	}
	return s.client.Get(ctx, "/api/health/stats", map[string]any{"period": period})
}

// Trend returns the backend body unnormalized.
func (s *service) Trend(ctx context.Context, days int) (request.Envelope, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	return s.client.Get(ctx, "/api/health/trend", map[string]any{"days": days})
}

func (s *service) Stats(ctx context.Context) (request.Result[Stats], error) {
	env, err := s.client.Get(ctx, "/api/health/statistics", nil, request.WithoutLoading())
	if err != nil {
		return request.Result[Stats]{}, err
	}
	return request.MapResult(env, NormalizeStats), nil
}
