package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/pairhealth/internal/infra/request"
	"github.com/yanqian/pairhealth/pkg/coerce"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
	"github.com/yanqian/pairhealth/pkg/logger"
)

type call struct {
	method string
	path   string
	body   any
	opts   request.Options
}

type stubRequester struct {
	calls []call
	env   request.Envelope
	err   error
}

func (s *stubRequester) record(method, path string, body any, opts []request.Option) (request.Envelope, error) {
	o := request.Options{ShowLoading: true, ShowError: true}
	for _, opt := range opts {
		opt(&o)
	}
	s.calls = append(s.calls, call{method: method, path: path, body: body, opts: o})
	return s.env, s.err
}

func (s *stubRequester) Get(_ context.Context, path string, params any, opts ...request.Option) (request.Envelope, error) {
	return s.record("GET", path, params, opts)
}

func (s *stubRequester) Post(_ context.Context, path string, body any, opts ...request.Option) (request.Envelope, error) {
	return s.record("POST", path, body, opts)
}

func (s *stubRequester) Put(_ context.Context, path string, body any, opts ...request.Option) (request.Envelope, error) {
	return s.record("PUT", path, body, opts)
}

func (s *stubRequester) Delete(_ context.Context, path string, body any, opts ...request.Option) (request.Envelope, error) {
	return s.record("DELETE", path, body, opts)
}

func TestTodayCheckinIsSilent(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200, Data: coerce.Object{"hasChecked": true}}}
	svc := NewService(stub, logger.Discard())

	res, err := svc.TodayCheckin(context.Background())
	require.NoError(t, err)
	require.True(t, res.Data.HasChecked)
	require.Equal(t, "/api/health/checkin/today", stub.calls[0].path)
	require.False(t, stub.calls[0].opts.ShowLoading)
	require.False(t, stub.calls[0].opts.ShowError)
}

func TestListDefaults(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200}}
	svc := NewService(stub, logger.Discard())
	ctx := context.Background()

	_, err := svc.CheckinHistory(ctx, 0, 0)
	require.NoError(t, err)
	_, err = svc.CheckinStats(ctx, "")
	require.NoError(t, err)
	_, err = svc.Trend(ctx, 0)
	require.NoError(t, err)

	require.Equal(t, map[string]any{"page": 1, "size": DefaultHistorySize}, stub.calls[0].body)
	require.Equal(t, map[string]any{"period": "week"}, stub.calls[1].body)
	require.Equal(t, "/api/health/trend", stub.calls[2].path)
	require.Equal(t, map[string]any{"days": 30}, stub.calls[2].body)
}

func TestSubmitCheckin(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200}}
	svc := NewService(stub, logger.Discard())

	_, err := svc.SubmitCheckin(context.Background(), CheckinRequest{})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Empty(t, stub.calls)

	req := CheckinRequest{CheckinDate: "2026-03-01", MoodScore: 8}
	_, err = svc.SubmitCheckin(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "POST", stub.calls[0].method)
	require.Equal(t, req, stub.calls[0].body)
	require.True(t, stub.calls[0].opts.ShowLoading)
}

func TestErrorsPassThrough(t *testing.T) {
	failure := &request.Error{Code: 502, Message: "bad gateway", Kind: request.KindServer}
	stub := &stubRequester{err: failure}
	svc := NewService(stub, logger.Discard())

	_, err := svc.Stats(context.Background())
	require.Same(t, failure, err)
	_, err = svc.Score(context.Background())
	require.Same(t, failure, err)
}
