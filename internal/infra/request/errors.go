package request

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CodeTransport marks failures that happened before any HTTP response arrived.
	CodeTransport = -1
	// CodeSuccess is the business success sentinel carried in response bodies.
	CodeSuccess = 200
)

// Kind groups error codes into the outcomes callers react to.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindAuth       Kind = "auth"
	KindPermission Kind = "permission"
	KindServer     Kind = "server"
	KindProtocol   Kind = "protocol"
	KindBusiness   Kind = "business"
)

// Error is the only failure shape the request pipeline produces.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("request failed: code=%d message=%s", e.Code, e.Message)
}

// Transient reports whether a retry has a reasonable chance of succeeding.
func (e *Error) Transient() bool {
	if e == nil {
		return false
	}
	if e.Code == CodeTransport || e.Code >= 500 {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "network")
}

// AsError extracts a pipeline error from err's chain.
func AsError(err error) (*Error, bool) {
	var reqErr *Error
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// IsAuth reports whether err is the session-expired failure.
func IsAuth(err error) bool {
	reqErr, ok := AsError(err)
	return ok && reqErr.Kind == KindAuth
}
