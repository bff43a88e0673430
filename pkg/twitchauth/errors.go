package twitchauth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrorKind classifies a failed operation.
type ErrorKind int

const (
	// KindTransport covers connection, TLS, timeout and cancellation failures.
	KindTransport ErrorKind = iota + 1

	// KindStatus means the server answered with a non-2xx status.
	KindStatus

	// KindDecode means a 2xx body could not be read or lacked required fields.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrTransport = errors.New("twitchauth: transport failure")
	ErrStatus    = errors.New("twitchauth: unexpected http status")
	ErrDecode    = errors.New("twitchauth: malformed response body")
)

// Operation names carried on *Error.
const (
	OpToken    = "token"
	OpValidate = "validate"
	OpRevoke   = "revoke"
)

// Error is returned by every Client operation.
type Error struct {
	// Op is one of OpToken, OpValidate, OpRevoke.
	Op string

	Kind ErrorKind

	// StatusCode is set for KindStatus.
	StatusCode int

	// Message is the server supplied reason for KindStatus, or the status
	// text when the body carried none.
	Message string

	// Err is the underlying cause. Request URLs inside it are redacted.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("twitchauth: %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	default:
		if e.Err == nil {
			return fmt.Sprintf("twitchauth: %s: %s failure", e.Op, e.Kind)
		}
		return fmt.Sprintf("twitchauth: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrStatus:
		return e.Kind == KindStatus
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// ErrorResponse is the error body the identity provider sends with non-2xx
// answers, e.g. {"status":403,"message":"invalid client secret"}.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Query parameters whose values never leave the process in an error.
var sensitiveParams = []string{"client_secret", "token"}

const redacted = "REDACTED"

func transportError(op string, err error) *Error {
	var ue *url.Error
	if errors.As(err, &ue) {
		cp := *ue
		cp.URL = redactURL(ue.URL)
		err = &cp
	}
	return &Error{Op: op, Kind: KindTransport, Err: err}
}

func statusError(op string, code int, body ErrorResponse) *Error {
	msg := strings.TrimSpace(body.Message)
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &Error{Op: op, Kind: KindStatus, StatusCode: code, Message: msg}
}

func decodeError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindDecode, Err: err}
}

// redactURL masks sensitive query values. Unparsable input loses its query.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		base, _, _ := strings.Cut(raw, "?")
		return base
	}

	q := u.Query()
	for _, key := range sensitiveParams {
		if q.Has(key) {
			q.Set(key, redacted)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
