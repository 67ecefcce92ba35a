package chat

import (
	"errors"
	"fmt"
)

// Kind partitions fetch-layer failures by how the caller should react.
type Kind int

const (
	// KindInvalidIdentifier means the broadcast URL/id does not resolve to
	// any broadcast. No fetch was attempted.
	KindInvalidIdentifier Kind = iota
	// KindChatUnavailable means the broadcast exists but has no active
	// chat (ended, disabled, or never started). Terminal for the session.
	KindChatUnavailable
	// KindUpstream is an API-level fault (quota, malformed request, server
	// fault). Terminal for the current loop/step; the session survives and
	// a fresh step or drain may be attempted later.
	KindUpstream
	// KindTransport is a network or otherwise unexpected fault. Handled
	// like KindUpstream.
	KindTransport
)

// String returns a stable lowercase name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindChatUnavailable:
		return "chat_unavailable"
	case KindUpstream:
		return "upstream"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Message returns the user-facing description for the kind.
func (k Kind) Message() string {
	switch k {
	case KindInvalidIdentifier:
		return "the URL does not point to a known broadcast"
	case KindChatUnavailable:
		return "the broadcast has no active live chat (it may have ended or have chat disabled)"
	case KindUpstream:
		return "the chat API reported an error"
	case KindTransport:
		return "could not reach the chat API"
	default:
		return "unknown error"
	}
}

// Error is the typed failure propagated from the fetch layer through the
// polling loop. The kind is never changed in flight; callers map it to
// user-visible behavior.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps an underlying error under a kind with optional context.
func NewError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Errorf builds a typed error from a format string.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind from an error chain. The second return
// is false when err carries no *Error.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// IsTerminal reports whether the error ends the session (as opposed to
// just the current loop/step).
func IsTerminal(err error) bool {
	k, ok := KindOf(err)
	return ok && (k == KindInvalidIdentifier || k == KindChatUnavailable)
}
