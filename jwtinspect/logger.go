package jwtinspect

import (
	"log/slog"
	"time"
)

// SecurityEvent represents a structured security log entry
type SecurityEvent struct {
	EventType     string        // "success", "failure" or "inspect"
	Timestamp     time.Time     // Event timestamp
	RequestID     string        // Correlation ID
	UserID        string        // Subject from claims (empty on failure)
	Algorithm     string        // Algorithm declared in the token header
	FailureReason string        // Error code (on failure)
	ExpiryStatus  string        // Expiry tri-state (on inspect)
	MatchedSecret string        // Label of the matching candidate (on inspect); never the secret itself
	TokenPreview  string        // Redacted token preview
	Latency       time.Duration // Processing latency
}

// LogValue implements slog.LogValuer for structured logging with redaction
func (e SecurityEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("event", e.EventType),
		slog.Time("timestamp", e.Timestamp),
		slog.String("request_id", e.RequestID),
		slog.String("user_id", e.UserID),
		slog.String("algorithm", e.Algorithm),
		slog.String("failure_reason", e.FailureReason),
		slog.String("expiry", e.ExpiryStatus),
		slog.String("matched_secret", e.MatchedSecret),
		slog.String("token", redactToken(e.TokenPreview)),
		slog.Duration("latency", e.Latency),
	)
}

// redactToken redacts sensitive token data
func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

// logSecurityEvent emits a security event via the configured logger
func logSecurityEvent(logger *slog.Logger, event SecurityEvent) {
	if logger == nil {
		return // Logging disabled
	}

	switch event.EventType {
	case "failure":
		logger.Warn("authentication failed", "auth_event", event)
	case "inspect":
		logger.Info("token inspected", "auth_event", event)
	default:
		logger.Info("authentication succeeded", "auth_event", event)
	}
}
