package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/utils"
)

const maxResponseBytes = 4 << 20

// APIClient talks to the booking backend REST API. Every call is a single
// attempt; callers decide whether to retry.
type APIClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// envelope is the {status, message, data} wrapper every backend answer uses.
// Status is a pointer so an absent flag can be told apart from false.
type envelope struct {
	Status  *bool           `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) hasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}

func (e envelope) rejected() bool {
	return e.Status != nil && !*e.Status
}

func (c *APIClient) do(ctx context.Context, op, method, path string, query url.Values, body any) (envelope, error) {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return envelope{}, domain.InternalError{Msg: op + ": encode request", Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return envelope{}, domain.InternalError{Msg: op + ": build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := utils.RequestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return envelope{}, domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return envelope{}, domain.UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstream := domain.UpstreamError{Op: op, StatusCode: resp.StatusCode}
		if decodeErr == nil && strings.TrimSpace(env.Message) != "" {
			upstream.Err = domain.RejectedError{Op: op, Msg: strings.TrimSpace(env.Message)}
		}
		return envelope{}, upstream
	}
	if decodeErr != nil {
		return envelope{}, domain.MalformedResponseError{Op: op, Reason: "body is not a JSON object", Err: decodeErr}
	}
	if env.rejected() {
		return env, domain.RejectedError{Op: op, Msg: strings.TrimSpace(env.Message)}
	}
	return env, nil
}

// decodeData unmarshals the data member into dst. A missing data member
// is malformed when required.
func decodeData(op string, env envelope, dst any, required bool) error {
	if !env.hasData() {
		if required {
			return domain.MalformedResponseError{Op: op, Reason: "missing data"}
		}
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return domain.MalformedResponseError{Op: op, Reason: "unexpected data shape", Err: err}
	}
	return nil
}

func isStatus(err error, code int) bool {
	var up domain.UpstreamError
	return errors.As(err, &up) && up.StatusCode == code
}

func pathEscape(name, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", domain.ValidationError{Field: name, Msg: fmt.Sprintf("%s is required", name)}
	}
	return url.PathEscape(v), nil
}
