package partner

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/yanqian/pairhealth/internal/infra/request"
	"github.com/yanqian/pairhealth/pkg/coerce"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
)

// Service exposes pairing, shared check-in, contract and points endpoints.
type Service interface {
	GenerateInviteCode(ctx context.Context) (request.Envelope, error)
	Bind(ctx context.Context, inviteCode string) (request.Envelope, error)
	RelationshipStatus(ctx context.Context) (request.Result[RelationshipStatus], error)
	RespondToBind(ctx context.Context, relationshipID coerce.ID, accept bool) (request.Envelope, error)
	Unbind(ctx context.Context, relationshipID coerce.ID) (request.Envelope, error)
	CheckinStatus(ctx context.Context) (request.Result[CheckinStatus], error)
	CheckinHistory(ctx context.Context, page, size int) (request.Result[[]CheckinRecord], error)
	RelationshipHealth(ctx context.Context) (request.Result[RelationshipHealth], error)
	CreateContract(ctx context.Context, req ContractRequest) (request.Envelope, error)
	ListContracts(ctx context.Context, status string) (request.Result[[]Contract], error)
	CompleteContract(ctx context.Context, contractID coerce.ID, body coerce.Object) (request.Envelope, error)
	ConfirmContract(ctx context.Context, contractID, recordID coerce.ID, accept bool) (request.Envelope, error)
	CancelContract(ctx context.Context, contractID coerce.ID) (request.Envelope, error)
	Points(ctx context.Context) (request.Result[Points], error)
	PointsRecords(ctx context.Context, page, size int) (request.Result[[]PointsRecord], error)
}

type service struct {
	client request.Requester
	logger *slog.Logger
}

// NewService wires the partner domain onto the request pipeline.
func NewService(client request.Requester, logger *slog.Logger) Service {
	return &service{client: client, logger: logger.With("component", "partner.service")}
}

func (s *service) GenerateInviteCode(ctx context.Context) (request.Envelope, error) {
	return s.client.Post(ctx, "/api/partner/invite-code", nil)
}

func (s *service) Bind(ctx context.Context, inviteCode string) (request.Envelope, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return request.Envelope{}, apperrors.Wrap("invalid_input", "inviteCode is required", nil)
	}
	return s.client.Post(ctx, "/api/partner/bind", map[string]any{"inviteCode": inviteCode})
}

func (s *service) RelationshipStatus(ctx context.Context) (request.Result[RelationshipStatus], error) {
	env, err := s.client.Get(ctx, "/api/partner/status", nil, request.WithoutLoading())
	if err != nil {
		return request.Result[RelationshipStatus]{}, err
	}
	return request.MapResult(env, NormalizeRelationshipStatus), nil
}

func (s *service) RespondToBind(ctx context.Context, relationshipID coerce.ID, accept bool) (request.Envelope, error) {
	if !relationshipID.Valid() {
		return request.Envelope{}, errMissingID("relationshipId")
	}
	return s.client.Post(ctx, "/api/partner/respond", map[string]any{"relationshipId": relationshipID, "accept": accept})
}

func (s *service) Unbind(ctx context.Context, relationshipID coerce.ID) (request.Envelope, error) {
	if !relationshipID.Valid() {
		return request.Envelope{}, errMissingID("relationshipId")
	}
	env, err := s.client.Post(ctx, "/api/partner/unbind/"+pathID(relationshipID), nil)
	if err == nil {
		s.logger.Info("partner unbound", "relationship_id", relationshipID.String())
	}
	return env, err
}

func (s *service) CheckinStatus(ctx context.Context) (request.Result[CheckinStatus], error) {
	env, err := s.client.Get(ctx, "/api/partner/checkin/today", nil, request.WithoutLoading())
	if err != nil {
		return request.Result[CheckinStatus]{}, err
	}
	return request.MapResult(env, NormalizeCheckinStatus), nil
}

func (s *service) CheckinHistory(ctx context.Context, page, size int) (request.Result[[]CheckinRecord], error) {
	env, err := s.client.Get(ctx, "/api/partner/checkin/history", pageParams(page, size))
	if err != nil {
		return request.Result[[]CheckinRecord]{}, err
	}
	return request.MapResult(env, NormalizeCheckinRecords), nil
}

func (s *service) RelationshipHealth(ctx context.Context) (request.Result[RelationshipHealth], error) {
	env, err := s.client.Get(ctx, "/api/partner/health", nil, request.WithoutLoading())
	if err != nil {
		return request.Result[RelationshipHealth]{}, err
	}
	return request.MapResult(env, NormalizeRelationshipHealth), nil
}

func (s *service) CreateContract(ctx context.Context, req ContractRequest) (request.Envelope, error) {
	if strings.TrimSpace(req.Title) == "" {
		return request.Envelope{}, apperrors.Wrap("invalid_input", "contract title is required", nil)
	}
	return s.client.Post(ctx, "/api/partner/contracts", req)
}

// ListContracts filters by status when one is given.
func (s *service) ListContracts(ctx context.Context, status string) (request.Result[[]Contract], error) {
	var params map[string]any
	if status != "" {
		params = map[string]any{"status": status}
	}
	env, err := s.client.Get(ctx, "/api/partner/contracts", params, request.WithoutLoading())
	if err != nil {
		return request.Result[[]Contract]{}, err
	}
	return request.MapResult(env, NormalizeContracts), nil
}

func (s *service) CompleteContract(ctx context.Context, contractID coerce.ID, body coerce.Object) (request.Envelope, error) {
	if !contractID.Valid() {
		return request.Envelope{}, errMissingID("contractId")
	}
	var payload any
	if body != nil {
		payload = body
	}
	return s.client.Post(ctx, fmt.Sprintf("/api/partner/contracts/%s/complete", pathID(contractID)), payload)
}

func (s *service) ConfirmContract(ctx context.Context, contractID, recordID coerce.ID, accept bool) (request.Envelope, error) {
	if !contractID.Valid() {
		return request.Envelope{}, errMissingID("contractId")
	}
	return s.client.Post(ctx, fmt.Sprintf("/api/partner/contracts/%s/confirm", pathID(contractID)),
		map[string]any{"recordId": recordID, "accept": accept})
}

func (s *service) CancelContract(ctx context.Context, contractID coerce.ID) (request.Envelope, error) {
	if !contractID.Valid() {
		return request.Envelope{}, errMissingID("contractId")
	}
	return s.client.Post(ctx, fmt.Sprintf("/api/partner/contracts/%s/cancel", pathID(contractID)), nil)
}

func (s *service) Points(ctx context.Context) (request.Result[Points], error) {
	env, err := s.client.Get(ctx, "/api/partner/points", nil, request.WithoutLoading())
	if err != nil {
		return request.Result[Points]{}, err
	}
	return request.MapResult(env, NormalizePoints), nil
}

func (s *service) PointsRecords(ctx context.Context, page, size int) (request.Result[[]PointsRecord], error) {
	env, err := s.client.Get(ctx, "/api/partner/points/records", pageParams(page, size))
	if err != nil {
		return request.Result[[]PointsRecord]{}, err
	}
	return request.MapResult(env, NormalizePointsRecords), nil
}

func pageParams(page, size int) map[string]any {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return map[string]any{"page": page, "size": size}
}

func pathID(id coerce.ID) string {
	return url.PathEscape(id.String())
}

func errMissingID(field string) error {
	return apperrors.Wrap("invalid_input", field+" is required", nil)
}
