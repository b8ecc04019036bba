package http

import (
	"context"
	"testing"
)

func TestRequestIDGeneration(t *testing.T) {
	id := generateRequestID()
	if id == "" {
		t.Fatal("expected generated id")
	}
	if fb := fallbackRequestID(); fb == "" {
		t.Fatal("expected fallback id")
	}
}

func TestRequestIDSanitization(t *testing.T) {
	if got := sanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected valid id to pass through, got %s", got)
	}
	if got := sanitizeRequestID("bad id\n"); got != "badid" {
		t.Fatalf("expected unsafe characters stripped, got %s", got)
	}
	if got := sanitizeRequestID("\n\t"); got == "" {
		t.Fatal("expected a generated replacement for an empty sanitized id")
	}

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	if got := sanitizeRequestID(string(long)); len(got) != maxRequestIDLen {
		t.Fatalf("expected id capped at %d characters, got %d", maxRequestIDLen, len(got))
	}
}

func TestRequestIDContextHelpers(t *testing.T) {
	ctx := context.Background()
	if got := requestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := requestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
}
