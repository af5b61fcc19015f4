package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/yanqian/pairhealth/pkg/coerce"
)

const maxResponseBytes = 8 << 20 // 8 MiB

// Outbound is a fully prepared network call.
type Outbound struct {
	Method  string
	URL     string
	Header  http.Header
	Body    any
	Timeout time.Duration
}

// RawResponse is whatever the server answered, before classification.
type RawResponse struct {
	Status  int
	Body    any
	RawBody []byte
}

// Transport performs the network I/O. A non-nil error means no HTTP response
// was received.
type Transport interface {
	RoundTrip(ctx context.Context, out Outbound) (RawResponse, error)
}

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPTransport is the net/http backed Transport.
type HTTPTransport struct {
	client Doer
}

// NewHTTPTransport wraps client; nil uses a client without its own timeout
// since every call carries one.
func NewHTTPTransport(client Doer) *HTTPTransport {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPTransport{client: client}
}

// RoundTrip issues the call and decodes the body.
func (t *HTTPTransport) RoundTrip(ctx context.Context, out Outbound) (RawResponse, error) {
	if out.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, out.Timeout)
		defer cancel()
	}

	req, err := newHTTPRequest(ctx, out)
	if err != nil {
		return RawResponse{}, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return RawResponse{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return RawResponse{}, fmt.Errorf("read response body: %w", err)
	}

	return RawResponse{Status: resp.StatusCode, Body: decodeBody(raw), RawBody: raw}, nil
}

func newHTTPRequest(ctx context.Context, out Outbound) (*http.Request, error) {
	method := strings.ToUpper(out.Method)
	if method == "" {
		method = http.MethodGet
	}
	endpoint := out.URL

	var body io.Reader
	if method == http.MethodGet {
		query, err := encodeQuery(out.Body)
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}
		if query != "" {
			sep := "?"
			if strings.Contains(endpoint, "?") {
				sep = "&"
			}
			endpoint += sep + query
		}
	} else if out.Body != nil {
		payload, err := json.Marshal(out.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range out.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}

// encodeQuery flattens a params value into a query string. Null fields are skipped.
func encodeQuery(params any) (string, error) {
	switch p := params.(type) {
	case nil:
		return "", nil
	case url.Values:
		return p.Encode(), nil
	case map[string]string:
		values := make(url.Values, len(p))
		for k, v := range p {
			values.Set(k, v)
		}
		return values.Encode(), nil
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	decoded, err := coerce.Decode(payload)
	if err != nil {
		return "", err
	}
	obj, ok := decoded.(coerce.Object)
	if !ok {
		return "", fmt.Errorf("query params must be an object, got %T", params)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(url.Values, len(obj))
	for _, k := range keys {
		if s, ok := coerce.Text(obj[k]); ok {
			values.Set(k, s)
		}
	}
	return values.Encode(), nil
}

func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	decoded, err := coerce.Decode(trimmed)
	if err != nil {
		return string(raw)
	}
	return decoded
}
