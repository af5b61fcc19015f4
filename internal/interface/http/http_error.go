package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pairhealth/internal/infra/request"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status      int
	Code        string
	Message     string
	BackendCode *int
	Err         error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromPipelineError maps a backend failure onto the gateway status:
// auth and permission keep their status, business failures become 422 and
// everything else is a bad gateway.
func fromPipelineError(reqErr *request.Error) *HTTPError {
	code := reqErr.Code
	out := &HTTPError{Message: reqErr.Message, BackendCode: &code, Err: reqErr}
	switch kindOf(reqErr) {
	case request.KindAuth:
		out.Status, out.Code = http.StatusUnauthorized, "session_expired"
	case request.KindPermission:
		out.Status, out.Code = http.StatusForbidden, "forbidden"
	case request.KindTransport:
		out.Status, out.Code = http.StatusBadGateway, "backend_unreachable"
	case request.KindBusiness:
		out.Status, out.Code = http.StatusUnprocessableEntity, "business_error"
	default:
		out.Status, out.Code = http.StatusBadGateway, "backend_error"
	}
	return out
}

func kindOf(e *request.Error) request.Kind {
	if e.Kind != "" {
		return e.Kind
	}
	switch {
	case e.Code == request.CodeTransport:
		return request.KindTransport
	case e.Code == http.StatusUnauthorized:
		return request.KindAuth
	case e.Code == http.StatusForbidden:
		return request.KindPermission
	case e.Code >= http.StatusInternalServerError:
		return request.KindServer
	default:
		return request.KindBusiness
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if reqErr, ok := request.AsError(err); ok {
		return fromPipelineError(reqErr)
	}
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		return NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err)
	case apperrors.IsCode(err, "invalid_token"):
		return NewHTTPError(http.StatusBadGateway, "invalid_login_response", err.Error(), err)
	}
	if code := apperrors.CodeOf(err); code != "" {
		return NewHTTPError(http.StatusInternalServerError, code, err.Error(), err)
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(asHTTPError(err))
	c.Abort()
}
