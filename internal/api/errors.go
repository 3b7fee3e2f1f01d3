package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yetria/yetria/internal/i18n"
)

// Kind classifies a failed request.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork means no response was received.
	KindNetwork
	// KindClient is a 4xx other than 401.
	KindClient
	// KindUnauthenticated is a 401.
	KindUnauthenticated
	// KindServer is a 5xx.
	KindServer
	// KindDecode means the body did not match the expected shape.
	KindDecode
	// KindCanceled means the caller cancelled the request.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindClient:
		return "client"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is the single normalized error shape returned by every gateway method.
type Error struct {
	Kind      Kind
	Status    int    // HTTP status; 0 when no response was received
	Code      string // short machine-readable label, e.g. "unauthenticated"
	Message   string // localized, user-facing
	Detail    string // server-provided detail, if any
	Method    string
	Path      string
	Timestamp time.Time
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", e.Method, e.Path, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// IsClientError reports whether the server answered with a 4xx status,
// including 401.
func (e *Error) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsUnauthenticated reports whether err signals an invalid or expired credential.
func IsUnauthenticated(err error) bool {
	return KindOf(err) == KindUnauthenticated
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// UserMessage returns a localized message for err suitable for a toast or
// banner. Errors that did not come from the gateway get the generic message.
func UserMessage(err error, tr *i18n.Translator) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return tr.T(i18n.KeyErrClientGeneric)
}

// kindForStatus maps an HTTP error status to a Kind.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthenticated
	case status >= 500:
		return KindServer
	default:
		return KindClient
	}
}

// messageFor picks the user-facing message: server detail first, then a
// status-specific message, then a generic one.
func messageFor(kind Kind, status int, detail string, tr *i18n.Translator) string {
	switch kind {
	case KindNetwork:
		return tr.T(i18n.KeyErrNetwork)
	case KindCanceled:
		return tr.T(i18n.KeyErrCanceled)
	case KindDecode:
		return tr.T(i18n.KeyErrDecode)
	case KindServer:
		return tr.T(i18n.KeyErrServer)
	}
	if detail != "" {
		return detail
	}
	switch status {
	case http.StatusUnauthorized:
		return tr.T(i18n.KeyErrUnauthorized)
	case http.StatusConflict:
		return tr.T(i18n.KeyErrConflict)
	case http.StatusUnprocessableEntity:
		return tr.T(i18n.KeyErrUnprocessable)
	case http.StatusBadRequest:
		return tr.T(i18n.KeyErrBadRequest)
	case http.StatusNotFound:
		return tr.T(i18n.KeyErrNotFound)
	}
	return tr.T(i18n.KeyErrClientGeneric)
}

// errorBody is the error envelope sent by the backend. detail is either a
// string or a list of validation issues.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
	Loc []any  `json:"loc"`
}

// parseDetail extracts a human-readable detail from an error response body.
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var issues []validationIssue
	if err := json.Unmarshal(eb.Detail, &issues); err == nil && len(issues) > 0 {
		return strings.TrimSpace(issues[0].Msg)
	}
	return ""
}
