package partner

import (
	"context"
	"encoding/json"
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
	silent bool
}

type stubRequester struct {
	calls []call
	env   request.Envelope
}

func (s *stubRequester) record(method, path string, body any, opts []request.Option) (request.Envelope, error) {
	o := request.Options{ShowLoading: true}
	for _, opt := range opts {
		opt(&o)
	}
	s.calls = append(s.calls, call{method: method, path: path, body: body, silent: !o.ShowLoading})
	return s.env, nil
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

func TestEndpointsAndBodies(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200}}
	svc := NewService(stub, logger.Discard())
	ctx := context.Background()

	_, err := svc.GenerateInviteCode(ctx)
	require.NoError(t, err)
	_, err = svc.Bind(ctx, " AB12 ")
	require.NoError(t, err)
	_, err = svc.RespondToBind(ctx, "9", true)
	require.NoError(t, err)
	_, err = svc.Unbind(ctx, "9")
	require.NoError(t, err)
	_, err = svc.CompleteContract(ctx, "3", coerce.Object{"note": "done"})
	require.NoError(t, err)
	_, err = svc.ConfirmContract(ctx, "3", "77", false)
	require.NoError(t, err)
	_, err = svc.CancelContract(ctx, "a/b")
	require.NoError(t, err)
	_, err = svc.PointsRecords(ctx, 2, 0)
	require.NoError(t, err)

	require.Equal(t, []call{
		{method: "POST", path: "/api/partner/invite-code"},
		{method: "POST", path: "/api/partner/bind", body: map[string]any{"inviteCode": "AB12"}},
		{method: "POST", path: "/api/partner/respond", body: map[string]any{"relationshipId": coerce.ID("9"), "accept": true}},
		{method: "POST", path: "/api/partner/unbind/9"},
		{method: "POST", path: "/api/partner/contracts/3/complete", body: coerce.Object{"note": "done"}},
		{method: "POST", path: "/api/partner/contracts/3/confirm", body: map[string]any{"recordId": coerce.ID("77"), "accept": false}},
		{method: "POST", path: "/api/partner/contracts/a%2Fb/cancel"},
		{method: "GET", path: "/api/partner/points/records", body: map[string]any{"page": 2, "size": DefaultPageSize}},
	}, stub.calls)

	payload, err := json.Marshal(stub.calls[2].body)
	require.NoError(t, err)
	require.JSONEq(t, `{"relationshipId":9,"accept":true}`, string(payload))
}

func TestListContractsStatusFilter(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200, Data: []any{coerce.Object{"id": 1, "title": "t"}}}}
	svc := NewService(stub, logger.Discard())

	res, err := svc.ListContracts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.Nil(t, stub.calls[0].body)
	require.True(t, stub.calls[0].silent)

	_, err = svc.ListContracts(context.Background(), "ACTIVE")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"status": "ACTIVE"}, stub.calls[1].body)
}

func TestValidation(t *testing.T) {
	stub := &stubRequester{}
	svc := NewService(stub, logger.Discard())
	ctx := context.Background()

	_, err := svc.Bind(ctx, "  ")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	_, err = svc.Unbind(ctx, "")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	_, err = svc.CreateContract(ctx, ContractRequest{})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Empty(t, stub.calls)
}

func TestStatusNormalized(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200, Data: coerce.Object{"hasPartner": true}}}
	svc := NewService(stub, logger.Discard())

	res, err := svc.RelationshipStatus(context.Background())
	require.NoError(t, err)
	require.True(t, res.Data.HasPartner)
	require.Equal(t, 50.0, res.Data.HealthScore)
}
