package user

import (
	"context"

	"github.com/yanqian/pairhealth/pkg/coerce"
)

// LoginResult is what a successful login hands back to the shell.
type LoginResult struct {
	Token    string        `json:"token"`
	UserInfo coerce.Object `json:"userInfo"`
}

// PhoneLoginRequest logs in with an SMS verification code.
type PhoneLoginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// ProfileUpdate carries the editable profile fields; empty ones are omitted.
type ProfileUpdate struct {
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Gender   *int   `json:"gender,omitempty"`
	Birthday string `json:"birthday,omitempty"`
}

// SessionStore is the part of the session manager the user flows mutate.
type SessionStore interface {
	SaveLogin(ctx context.Context, token string, profile coerce.Object) error
	SaveProfile(ctx context.Context, profile coerce.Object) error
	Clear(ctx context.Context) error
}

// Navigator replaces the screen stack after logout.
type Navigator interface {
	ReLaunch(route string)
}

// Config holds the route logout navigates to.
type Config struct {
	LoginRoute string
}
