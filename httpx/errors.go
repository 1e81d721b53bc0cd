package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend. It carries the HTTP
// status, the provider's error message (when one could be parsed) and the
// raw body for callers that need more.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// IsNotFound reports whether the error is an HTTP 404.
func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// IsUnauthorized reports whether the error is an HTTP 401.
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// wireError covers the error body shapes the auth and storage endpoints
// produce. Auth responds with either {error, error_description} or
// {code, msg}; storage with {statusCode, error, message}.
type wireError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
	Code             any    `json:"code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: body}

	var w wireError
	if err := json.Unmarshal(body, &w); err != nil {
		e.Message = strings.TrimSpace(string(body))
		return e
	}

	switch {
	case w.ErrorDescription != "":
		e.Message = w.ErrorDescription
	case w.Msg != "":
		e.Message = w.Msg
	case w.Message != "":
		e.Message = w.Message
	case w.Error != "":
		e.Message = w.Error
	default:
		e.Message = strings.TrimSpace(string(body))
	}

	switch {
	case w.ErrorCode != "":
		e.ErrorCode = w.ErrorCode
	case w.Error != "" && w.ErrorDescription != "":
		e.ErrorCode = w.Error
	case w.Code != nil:
		e.ErrorCode = fmt.Sprint(w.Code)
	}
	return e
}

// DecodeError is a 2xx response whose body could not be decoded into the
// expected type.
type DecodeError struct {
	Err  error
	Body []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
