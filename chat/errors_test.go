package chat

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInvalidIdentifier, "invalid_identifier"},
		{KindChatUnavailable, "chat_unavailable"},
		{KindUpstream, "upstream"},
		{KindTransport, "transport"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindMessagesAreDistinct(t *testing.T) {
	kinds := []Kind{KindInvalidIdentifier, KindChatUnavailable, KindUpstream, KindTransport}
	seen := map[string]Kind{}
	for _, k := range kinds {
		msg := k.Message()
		if msg == "" {
			t.Errorf("%s has empty message", k)
		}
		if prev, dup := seen[msg]; dup {
			t.Errorf("%s and %s share the message %q", prev, k, msg)
		}
		seen[msg] = k
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	base := NewError(KindUpstream, "quota exceeded", errors.New("googleapi: 403"))
	wrapped := fmt.Errorf("poll step: %w", base)

	k, ok := KindOf(wrapped)
	if !ok || k != KindUpstream {
		t.Fatalf("KindOf = (%v, %v), want (KindUpstream, true)", k, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf matched a plain error")
	}
}

func TestErrorRendering(t *testing.T) {
	e := NewError(KindChatUnavailable, "chat ended", errors.New("400"))
	if got := e.Error(); got != "chat_unavailable: chat ended: 400" {
		t.Errorf("Error() = %q", got)
	}
	if got := Errorf(KindTransport, "dial %s", "example").Error(); got != "transport: dial example" {
		t.Errorf("Errorf rendering = %q", got)
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(NewError(KindChatUnavailable, "", nil)) {
		t.Error("chat_unavailable should be terminal")
	}
	if !IsTerminal(NewError(KindInvalidIdentifier, "", nil)) {
		t.Error("invalid_identifier should be terminal")
	}
	if IsTerminal(NewError(KindUpstream, "", nil)) {
		t.Error("upstream should not be terminal")
	}
	if IsTerminal(errors.New("plain")) {
		t.Error("plain error should not be terminal")
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	e := NewError(KindTransport, "fetch", inner)
	if !errors.Is(e, inner) {
		t.Error("errors.Is did not reach the wrapped error")
	}
}
