package solr

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies every failure the client can surface. The set is
// closed; callers branch on Kind rather than matching message text.
type ErrorKind int

const (
	// KindNetwork covers transport failures before or during the HTTP
	// exchange (DNS, connect, timeout).
	KindNetwork ErrorKind = iota

	// KindNotFound maps HTTP 404, typically a missing collection or handler.
	KindNotFound

	// KindSyntax maps non-2xx responses carrying a Solr error.msg, usually a
	// malformed or unsatisfiable query.
	KindSyntax

	// KindOther maps non-2xx responses without a parseable message; the raw
	// body is preserved.
	KindOther

	// KindSerialization covers typed decode failures when reading a cached
	// response into a caller-chosen document type.
	KindSerialization

	// KindInvalidState covers misuse of the request builder, e.g. updating a
	// cursor mark on a request that never set one.
	KindInvalidState
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not found"
	case KindSyntax:
		return "syntax"
	case KindOther:
		return "other"
	case KindSerialization:
		return "serialization"
	case KindInvalidState:
		return "invalid state"
	}

	return "unknown"
}

// Error is the single error type returned by the client. Status is the HTTP
// status for server-side failures and zero otherwise; Message carries the
// decoded Solr error.msg or the raw body text depending on Kind.
type Error struct {
	kind    ErrorKind
	status  int
	message string
	cause   error
}

// Kind returns the failure classification.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Status returns the HTTP status code, or zero when no response was received.
func (e *Error) Status() int {
	return e.status
}

// Message returns the server-provided message or raw body text, if any.
func (e *Error) Message() string {
	return e.message
}

// Unwrap exposes the underlying cause (e.g. the transport error for
// KindNetwork) for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Error() string {
	switch {
	case e.cause != nil && e.message != "":
		return fmt.Sprintf("solr: %s: %s: %s", e.kind, e.message, e.cause.Error())
	case e.cause != nil:
		return fmt.Sprintf("solr: %s: %s", e.kind, e.cause.Error())
	case e.status != 0 && e.message != "":
		return fmt.Sprintf("solr: %s (%d): %s", e.kind, e.status, e.message)
	case e.message != "":
		return fmt.Sprintf("solr: %s: %s", e.kind, e.message)
	case e.status != 0:
		return fmt.Sprintf("solr: %s (%d)", e.kind, e.status)
	}

	return fmt.Sprintf("solr: %s", e.kind)
}

func networkError(cause error) *Error {
	return &Error{kind: KindNetwork, cause: errors.Wrap(cause, "request failed")}
}

func notFoundError() *Error {
	return &Error{kind: KindNotFound, status: 404}
}

func syntaxError(status int, message string) *Error {
	return &Error{kind: KindSyntax, status: status, message: message}
}

func otherError(status int, body string) *Error {
	return &Error{kind: KindOther, status: status, message: body}
}

func serializationError(cause error) *Error {
	return &Error{kind: KindSerialization, message: cause.Error(), cause: cause}
}

func invalidStateError(message string) *Error {
	return &Error{kind: KindInvalidState, message: message, cause: errors.New(message)}
}
