package request

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yanqian/pairhealth/pkg/coerce"
)

// User-facing notices.
const (
	msgSessionExpiredToast = "Session expired, please log in again"
	msgSessionExpired      = "session expired"
	msgNoPermissionToast   = "No permission to access"
	msgNoPermission        = "no permission"
	msgServerBusyToast     = "Server busy, please try again later"
	msgServerError         = "server error"
	msgRequestFailed       = "request failed"
	msgOperationFailed     = "operation failed"
	msgNetworkFailedToast  = "Network connection failed, please check your network"
	msgNetworkError        = "network error"
)

// DefaultLoginRoute is where a session teardown sends the user.
const DefaultLoginRoute = "/pages/login/index"

// DefaultRedirectDelay lets the expiry notice stay readable before navigation.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Outcome is the classification of one response: either Body or Err is set,
// and Effects lists the side effects the caller must perform.
type Outcome struct {
	Body    any
	Err     *Error
	Effects []Effect
}

// Classifier maps raw responses to outcomes without touching the UI.
type Classifier struct {
	LoginRoute    string
	RedirectDelay time.Duration
}

// NewClassifier fills in defaults.
func NewClassifier(loginRoute string, redirectDelay time.Duration) Classifier {
	if loginRoute == "" {
		loginRoute = DefaultLoginRoute
	}
	if redirectDelay <= 0 {
		redirectDelay = DefaultRedirectDelay
	}
	return Classifier{LoginRoute: loginRoute, RedirectDelay: redirectDelay}
}

// Classify applies the decision table in order: 401, 403, >=500, other
// non-200, business code, success.
func (c Classifier) Classify(resp RawResponse, opts Options) Outcome {
	body := coerce.ObjectOrNil(resp.Body)
	backendMessage := coerce.String(body, "message")

	switch {
	case resp.Status == http.StatusUnauthorized:
		return Outcome{
			Err: &Error{Code: http.StatusUnauthorized, Message: msgSessionExpired, Kind: KindAuth},
			Effects: []Effect{
				ClearSessionEffect{},
				ToastEffect{Message: msgSessionExpiredToast},
				RedirectEffect{Route: c.LoginRoute, Delay: c.RedirectDelay},
			},
		}
	case resp.Status == http.StatusForbidden:
		return failure(opts, &Error{Code: http.StatusForbidden, Message: msgNoPermission, Kind: KindPermission}, msgNoPermissionToast)
	case resp.Status >= http.StatusInternalServerError:
		return failure(opts, &Error{Code: resp.Status, Message: orDefault(backendMessage, msgServerError), Kind: KindServer}, msgServerBusyToast)
	case resp.Status != http.StatusOK:
		msg := orDefault(backendMessage, msgRequestFailed)
		return failure(opts, &Error{Code: resp.Status, Message: msg, Kind: KindProtocol}, msg)
	}

	if code, failed := businessFailure(body); failed {
		msg := orDefault(backendMessage, msgOperationFailed)
		return failure(opts, &Error{Code: code, Message: msg, Kind: KindBusiness}, msg)
	}

	return Outcome{Body: resp.Body}
}

// ClassifyTransport turns a network-level failure into the transport error.
func (c Classifier) ClassifyTransport(err error, opts Options) Outcome {
	msg := msgNetworkError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return failure(opts, &Error{Code: CodeTransport, Message: msg, Kind: KindTransport}, msgNetworkFailedToast)
}

func failure(opts Options, err *Error, toast string) Outcome {
	out := Outcome{Err: err}
	if opts.ShowError {
		out.Effects = []Effect{ToastEffect{Message: toast}}
	}
	return out
}

// businessFailure reports whether body carries a failing business code. Only
// an absent or null code, or a JSON number exactly equal to 200, succeeds.
// Strings, fractions and booleans fail; the reported code is their best-effort
// integer reading.
func businessFailure(body coerce.Object) (int, bool) {
	raw, ok := body["code"]
	if !ok || raw == nil {
		return 0, false
	}
	if n, numeric := jsonNumber(raw); numeric && n == CodeSuccess {
		return 0, false
	}
	return coerce.Int(raw, 0), true
}

func jsonNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
