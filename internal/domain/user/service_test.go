package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/pairhealth/internal/infra/request"
	"github.com/yanqian/pairhealth/internal/infra/session"
	"github.com/yanqian/pairhealth/pkg/coerce"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
	"github.com/yanqian/pairhealth/pkg/logger"
)

type stubRequester struct {
	paths  []string
	bodies []any
	env    request.Envelope
	err    error
}

func (s *stubRequester) record(path string, body any) (request.Envelope, error) {
	s.paths = append(s.paths, path)
	s.bodies = append(s.bodies, body)
	return s.env, s.err
}

func (s *stubRequester) Get(_ context.Context, path string, params any, _ ...request.Option) (request.Envelope, error) {
	return s.record("GET "+path, params)
}

func (s *stubRequester) Post(_ context.Context, path string, body any, _ ...request.Option) (request.Envelope, error) {
	return s.record("POST "+path, body)
}

func (s *stubRequester) Put(_ context.Context, path string, body any, _ ...request.Option) (request.Envelope, error) {
	return s.record("PUT "+path, body)
}

func (s *stubRequester) Delete(_ context.Context, path string, body any, _ ...request.Option) (request.Envelope, error) {
	return s.record("DELETE "+path, body)
}

type stubNavigator struct {
	routes []string
}

func (n *stubNavigator) ReLaunch(route string) {
	n.routes = append(n.routes, route)
}

func newService(stub *stubRequester) (Service, *session.Manager, *stubNavigator) {
	manager := session.NewManager(session.NewMemoryStore(), logger.Discard())
	nav := &stubNavigator{}
	return NewService(Config{}, stub, manager, nav, logger.Discard()), manager, nav
}

func TestValidPhone(t *testing.T) {
	require.True(t, ValidPhone("13800138000"))
	require.True(t, ValidPhone("19912345678"))
	require.False(t, ValidPhone("12800138000"))
	require.False(t, ValidPhone("1380013800"))
	require.False(t, ValidPhone("138001380001"))
	require.False(t, ValidPhone("+8613800138000"))
}

func TestPhoneLoginPersistsSession(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200, Data: coerce.Object{
		"token":    "tok-1",
		"userInfo": coerce.Object{"nickname": "kai"},
	}}}
	svc, manager, _ := newService(stub)
	ctx := context.Background()

	res, err := svc.PhoneLogin(ctx, PhoneLoginRequest{Phone: "138 0013 8000", Code: "1234"})
	require.NoError(t, err)
	require.Equal(t, "tok-1", res.Token)
	require.Equal(t, []string{"POST /api/user/login/phone"}, stub.paths)
	require.Equal(t, PhoneLoginRequest{Phone: "13800138000", Code: "1234"}, stub.bodies[0])

	token, err := manager.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)
	profile, ok, err := manager.Profile(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "kai", profile["nickname"])
}

func TestLoginWithoutTokenFails(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200, Data: coerce.Object{}}}
	svc, manager, _ := newService(stub)

	_, err := svc.WechatLogin(context.Background(), "wx-code")
	require.True(t, apperrors.IsCode(err, "invalid_token"))
	require.False(t, manager.LoggedIn(context.Background()))
}

func TestInputValidation(t *testing.T) {
	stub := &stubRequester{}
	svc, _, _ := newService(stub)
	ctx := context.Background()

	_, err := svc.SendSMSCode(ctx, "12345")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	_, err = svc.PhoneLogin(ctx, PhoneLoginRequest{Phone: "13800138000", Code: "12"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	_, err = svc.WechatLogin(ctx, " ")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Empty(t, stub.paths)

	_, err = svc.SendSMSCode(ctx, "13800138000")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"phone": "13800138000"}, stub.bodies[0])
}

func TestLogoutClearsSessionOnBackendFailure(t *testing.T) {
	stub := &stubRequester{err: &request.Error{Code: request.CodeTransport, Message: "network error", Kind: request.KindTransport}}
	svc, manager, nav := newService(stub)
	ctx := context.Background()
	require.NoError(t, manager.SaveLogin(ctx, "tok", coerce.Object{"id": 1}))

	require.NoError(t, svc.Logout(ctx))
	require.False(t, manager.LoggedIn(ctx))
	_, ok, err := manager.Profile(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []string{request.DefaultLoginRoute}, nav.routes)
	require.Equal(t, []string{"POST /api/user/logout"}, stub.paths)
}

func TestProfileRefreshesCache(t *testing.T) {
	stub := &stubRequester{env: request.Envelope{Code: 200, Data: coerce.Object{"nickname": "new"}}}
	svc, manager, _ := newService(stub)
	ctx := context.Background()

	res, err := svc.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", res.Data["nickname"])
	cached, ok, err := manager.Profile(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new", cached["nickname"])

	_, err = svc.UpdateProfile(ctx, ProfileUpdate{Nickname: "newer"})
	require.NoError(t, err)
	require.Equal(t, "PUT /api/user/info", stub.paths[1])
}
