package user

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/yanqian/pairhealth/internal/infra/request"
	"github.com/yanqian/pairhealth/pkg/coerce"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

const minSMSCodeLength = 4

// Service covers login, profile and logout.
type Service interface {
	WechatLogin(ctx context.Context, code string) (LoginResult, error)
	SendSMSCode(ctx context.Context, phone string) (request.Envelope, error)
	PhoneLogin(ctx context.Context, req PhoneLoginRequest) (LoginResult, error)
	Profile(ctx context.Context) (request.Result[coerce.Object], error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (request.Envelope, error)
	Logout(ctx context.Context) error
}

type service struct {
	cfg       Config
	client    request.Requester
	session   SessionStore
	navigator Navigator
	logger    *slog.Logger
}

// NewService wires the user flows. navigator may be nil.
func NewService(cfg Config, client request.Requester, session SessionStore, navigator Navigator, logger *slog.Logger) Service {
	if cfg.LoginRoute == "" {
		cfg.LoginRoute = request.DefaultLoginRoute
	}
	return &service{
		cfg:       cfg,
		client:    client,
		session:   session,
		navigator: navigator,
		logger:    logger.With("component", "user.service"),
	}
}

// ValidPhone reports whether phone is a mainland mobile number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func (s *service) WechatLogin(ctx context.Context, code string) (LoginResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return LoginResult{}, apperrors.Wrap("invalid_input", "wechat login code is required", nil)
	}
	env, err := s.client.Post(ctx, "/api/user/login/wechat", map[string]any{"code": code})
	if err != nil {
		return LoginResult{}, err
	}
	return s.persistLogin(ctx, env, "wechat")
}

func (s *service) SendSMSCode(ctx context.Context, phone string) (request.Envelope, error) {
	phone = normalizePhone(phone)
	if !ValidPhone(phone) {
		return request.Envelope{}, apperrors.Wrap("invalid_input", "invalid phone number", nil)
	}
	return s.client.Post(ctx, "/api/user/sms/send", map[string]any{"phone": phone})
}

func (s *service) PhoneLogin(ctx context.Context, req PhoneLoginRequest) (LoginResult, error) {
	req.Phone = normalizePhone(req.Phone)
	req.Code = strings.TrimSpace(req.Code)
	if !ValidPhone(req.Phone) {
		return LoginResult{}, apperrors.Wrap("invalid_input", "invalid phone number", nil)
	}
	if len(req.Code) < minSMSCodeLength {
		return LoginResult{}, apperrors.Wrap("invalid_input", "verification code is required", nil)
	}
	env, err := s.client.Post(ctx, "/api/user/login/phone", req)
	if err != nil {
		return LoginResult{}, err
	}
	return s.persistLogin(ctx, env, "phone")
}

// Profile fetches the profile and refreshes the cached copy.
func (s *service) Profile(ctx context.Context) (request.Result[coerce.Object], error) {
	env, err := s.client.Get(ctx, "/api/user/info", nil)
	if err != nil {
		return request.Result[coerce.Object]{}, err
	}
	res := request.MapResult(env, coerce.ObjectOrNil)
	if res.Data != nil {
		if err := s.session.SaveProfile(ctx, res.Data); err != nil {
			s.logger.Warn("cache profile failed", "error", err)
		}
	}
	return res, nil
}

func (s *service) UpdateProfile(ctx context.Context, update ProfileUpdate) (request.Envelope, error) {
	return s.client.Put(ctx, "/api/user/info", update)
}

// Logout tells the backend, then clears the local session whatever the
// backend answered and returns to the login screen.
func (s *service) Logout(ctx context.Context) error {
	if _, err := s.client.Post(ctx, "/api/user/logout", nil); err != nil {
		s.logger.Warn("backend logout failed, clearing local session anyway", "error", err)
	}
	if err := s.session.Clear(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	if s.navigator != nil {
		s.navigator.ReLaunch(s.cfg.LoginRoute)
	}
	return nil
}

func (s *service) persistLogin(ctx context.Context, env request.Envelope, method string) (LoginResult, error) {
	data := coerce.AsObject(env.Data)
	result := LoginResult{
		Token:    coerce.String(data, "token"),
		UserInfo: coerce.ObjectOrNil(data["userInfo"]),
	}
	if err := s.session.SaveLogin(ctx, result.Token, result.UserInfo); err != nil {
		return LoginResult{}, err
	}
	s.logger.Info("login succeeded", "method", method)
	return result, nil
}

func normalizePhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}
