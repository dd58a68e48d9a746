package apiclient

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/tijarah-io/tijarah/pkg/errors"
)

// StatusCode is the backend's body-level status. Some deployments emit
// it as a number, some as a numeric string; both decode here so the
// rest of the client only ever compares ints. The body-level status is
// authoritative over the transport HTTP status.
type StatusCode int

// UnmarshalJSON accepts 200 and "200" alike.
func (s *StatusCode) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	raw = strings.Trim(raw, `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*s = 0
		return nil
	}
	*s = StatusCode(n)
	return nil
}

// FieldMessages normalizes the backend's errors map. The backend
// usually sends field → message, but some endpoints send field →
// [messages]; the first message wins.
type FieldMessages map[string]string

// UnmarshalJSON accepts both string and string-array values.
func (f *FieldMessages) UnmarshalJSON(b []byte) error {
	var loose map[string]json.RawMessage
	if err := sonic.Unmarshal(b, &loose); err != nil {
		return err
	}

	out := make(map[string]string, len(loose))
	for field, raw := range loose {
		var single string
		if err := sonic.Unmarshal(raw, &single); err == nil {
			out[field] = single
			continue
		}
		var many []string
		if err := sonic.Unmarshal(raw, &many); err == nil && len(many) > 0 {
			out[field] = many[0]
		}
	}
	*f = out
	return nil
}

// Envelope is the backend's uniform response body.
type Envelope struct {
	Status  StatusCode      `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  FieldMessages   `json:"errors"`
}

// Result is the normalized outcome every call returns, regardless of
// HTTP-level outcome. Success is true iff the body-level status is 200.
type Result struct {
	Success      bool              `json:"success"`
	Status       int               `json:"status"`
	Message      string            `json:"message,omitempty"`
	Data         json.RawMessage   `json:"data,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
	NetworkError bool              `json:"network_error,omitempty"`
}

const bodySuccessStatus = 200

func resultFromEnvelope(env Envelope) Result {
	r := Result{
		Status:  int(env.Status),
		Message: env.Message,
		Data:    env.Data,
	}
	if len(env.Errors) > 0 {
		r.Errors = env.Errors
	}
	r.Success = int(env.Status) == bodySuccessStatus
	if !r.Success && r.Message == "" {
		r.Message = errors.ErrBusiness.MessageEN
	}
	return r
}

func networkResult() Result {
	return Result{
		Success:      false,
		NetworkError: true,
		Message:      errors.ErrNetwork.MessageEN,
	}
}

// Err converts a failed Result into the error taxonomy. Nil for
// successful results.
func (r Result) Err() *errors.Errno {
	if r.Success {
		return nil
	}
	if r.NetworkError {
		return errors.ErrNetwork
	}
	if r.Status == 401 {
		return errors.ErrNotAuthenticated.WithMessage(r.Message)
	}
	e := errors.ErrBusiness
	if r.Message != "" {
		e = e.WithMessage(r.Message)
	}
	if len(r.Errors) > 0 {
		e = e.WithFields(r.Errors)
	}
	return e
}

// DecodeData unmarshals a successful result's data payload into T.
func DecodeData[T any](r Result) (T, error) {
	var out T
	if len(r.Data) == 0 {
		return out, nil
	}
	err := sonic.Unmarshal(r.Data, &out)
	return out, err
}

// Page is the backend's pagination block for list endpoints. A nil
// NextPageURL means the last page has been reached.
type Page[T any] struct {
	CurrentPage int     `json:"current_page"`
	Data        []T     `json:"data"`
	NextPageURL *string `json:"next_page_url"`
	PerPage     int     `json:"per_page"`
	Total       int     `json:"total"`
}

// HasMore reports whether another page follows.
func (p Page[T]) HasMore() bool {
	return p.NextPageURL != nil && *p.NextPageURL != ""
}
