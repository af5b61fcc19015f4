package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/pairhealth/internal/infra/request"
	"github.com/yanqian/pairhealth/pkg/coerce"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
	"github.com/yanqian/pairhealth/pkg/logger"
)

type transportFunc func(ctx context.Context, out request.Outbound) (request.RawResponse, error)

func (f transportFunc) RoundTrip(ctx context.Context, out request.Outbound) (request.RawResponse, error) {
	return f(ctx, out)
}

type recordedCall struct {
	url string
	at  time.Time
}

type callLog struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (l *callLog) add(url string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, recordedCall{url: url, at: time.Now()})
	return len(l.calls)
}

func (l *callLog) snapshot() []recordedCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]recordedCall(nil), l.calls...)
}

func newPipeline(t *testing.T, fn transportFunc) *request.Client {
	t.Helper()
	return request.NewClient(request.Config{BaseURL: "https://api.example.com"}, fn, nil, nil, nil, logger.Discard())
}

func TestConsultRetriesTransientFailure(t *testing.T) {
	log := &callLog{}
	client := newPipeline(t, func(_ context.Context, out request.Outbound) (request.RawResponse, error) {
		if log.add(out.URL) == 1 {
			return request.RawResponse{Status: 500, Body: coerce.Object{"message": "boom"}}, nil
		}
		return request.RawResponse{Status: 200, Body: coerce.Object{
			"code": 200,
			"data": coerce.Object{"answer": "drink water"},
		}}, nil
	})

	svc := NewService(Config{}, client, logger.Discard())
	res, err := svc.Consult(context.Background(), ConsultRequest{Question: "tired?"})
	require.NoError(t, err)
	require.Equal(t, "drink water", res.Data.Answer)
	require.Equal(t, 200, res.Code)

	calls := log.snapshot()
	require.Len(t, calls, 2)
	require.GreaterOrEqual(t, calls[1].at.Sub(calls[0].at), DefaultBackoff)
	require.Equal(t, "https://api.example.com/api/ai/consult", calls[0].url)
	require.Equal(t, 0, client.Loading().InFlight())
}

func TestConsultDoesNotRetryAuthFailure(t *testing.T) {
	log := &callLog{}
	client := newPipeline(t, func(_ context.Context, out request.Outbound) (request.RawResponse, error) {
		log.add(out.URL)
		return request.RawResponse{Status: 401}, nil
	})

	svc := NewService(Config{}, client, logger.Discard())
	_, err := svc.Consult(context.Background(), ConsultRequest{Question: "hello"})
	require.True(t, request.IsAuth(err))
	require.Len(t, log.snapshot(), 1)
}

func TestConsultGivesUpAfterMaxAttempts(t *testing.T) {
	log := &callLog{}
	client := newPipeline(t, func(_ context.Context, out request.Outbound) (request.RawResponse, error) {
		log.add(out.URL)
		return request.RawResponse{}, errors.New("network unreachable")
	})

	svc := NewService(Config{MaxAttempts: 2, Backoff: time.Millisecond}, client, logger.Discard())
	_, err := svc.Consult(context.Background(), ConsultRequest{Question: "hello"})
	reqErr, ok := request.AsError(err)
	require.True(t, ok)
	require.Equal(t, request.CodeTransport, reqErr.Code)
	require.Len(t, log.snapshot(), 2)
}

func TestConsultSettlesAfterCallerCancels(t *testing.T) {
	log := &callLog{}
	client := newPipeline(t, func(ctx context.Context, out request.Outbound) (request.RawResponse, error) {
		if err := ctx.Err(); err != nil {
			return request.RawResponse{}, err
		}
		if log.add(out.URL) == 1 {
			return request.RawResponse{Status: 503}, nil
		}
		return request.RawResponse{Status: 200, Body: coerce.Object{"code": 200, "data": coerce.Object{"answer": "rest"}}}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	s := NewService(Config{}, client, logger.Discard()).(*service)
	var waited time.Duration
	s.sleep = func(d time.Duration) {
		cancel()
		waited = d
	}
	res, err := s.Consult(ctx, ConsultRequest{Question: "hello"})
	require.NoError(t, err)
	require.Equal(t, "rest", res.Data.Answer)
	require.Equal(t, DefaultBackoff, waited)
	require.Len(t, log.snapshot(), 2)
}

func TestConsultAttemptsAreCapped(t *testing.T) {
	log := &callLog{}
	client := newPipeline(t, func(_ context.Context, out request.Outbound) (request.RawResponse, error) {
		log.add(out.URL)
		return request.RawResponse{Status: 500}, nil
	})

	s := NewService(Config{MaxAttempts: 5}, client, logger.Discard()).(*service)
	s.sleep = func(time.Duration) {}
	_, err := s.Consult(context.Background(), ConsultRequest{Question: "hello"})
	require.Error(t, err)
	require.Len(t, log.snapshot(), DefaultMaxAttempts)
}

func TestConsultRejectsEmptyQuestion(t *testing.T) {
	svc := NewService(Config{}, newPipeline(t, nil), logger.Discard())
	_, err := svc.Consult(context.Background(), ConsultRequest{Question: "  "})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

type stubRequester struct {
	path   string
	params any
	opts   int
	env    request.Envelope
	err    error
}

func (s *stubRequester) Get(_ context.Context, path string, params any, opts ...request.Option) (request.Envelope, error) {
	s.path, s.params, s.opts = path, params, len(opts)
	return s.env, s.err
}

func (s *stubRequester) Post(ctx context.Context, path string, body any, opts ...request.Option) (request.Envelope, error) {
	return s.Get(ctx, path, body, opts...)
}

func (s *stubRequester) Put(ctx context.Context, path string, body any, opts ...request.Option) (request.Envelope, error) {
	return s.Get(ctx, path, body, opts...)
}

func (s *stubRequester) Delete(ctx context.Context, path string, body any, opts ...request.Option) (request.Envelope, error) {
	return s.Get(ctx, path, body, opts...)
}

func TestHistoryDefaults(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200, Data: []any{"m1"}}}
	svc := NewService(Config{}, stub, logger.Discard())

	res, err := svc.History(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Equal(t, "/api/ai/history", stub.path)
	require.Equal(t, map[string]any{"page": 1, "size": DefaultHistorySize}, stub.params)
	require.Equal(t, []any{"m1"}, res.Data.Records)
}

func TestQuickQuestionsPropagatesError(t *testing.T) {
	stub := &stubRequester{err: &request.Error{Code: 403, Message: "no permission", Kind: request.KindPermission}}
	svc := NewService(Config{}, stub, logger.Discard())

	_, err := svc.QuickQuestions(context.Background())
	reqErr, ok := request.AsError(err)
	require.True(t, ok)
	require.Equal(t, 403, reqErr.Code)
	require.Equal(t, 1, stub.opts)
}
