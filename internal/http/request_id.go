package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	headerRequestID = "X-Request-ID"
	maxRequestIDLen = 64
)

type requestIDKey struct{}

func generateRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fallbackRequestID()
	}
	return hex.EncodeToString(b[:])
}

func fallbackRequestID() string {
	return hex.EncodeToString([]byte(time.Now().Format("20060102150405.000000000")))
}

// sanitizeRequestID keeps caller-supplied ids out of log injection territory:
// only alphanumerics, dot, dash, and underscore survive, capped in length.
// An id that sanitizes to nothing is replaced with a generated one.
func sanitizeRequestID(raw string) string {
	if len(raw) > maxRequestIDLen {
		raw = raw[:maxRequestIDLen]
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		case c == '.', c == '-', c == '_':
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return generateRequestID()
	}
	return string(out)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(requestIDKey{}).(string); ok {
		return val
	}
	return ""
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
