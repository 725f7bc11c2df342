package jwtinspect

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireAuth returns a Gin middleware handler that enforces token
// authentication: requests without a valid token are rejected with 401
func RequireAuth(cfg *Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := requestIDFor(c)

		// Extract token from request
		token, err := extractToken(c.Request, cfg)
		if err != nil {
			logAuthFailure(cfg, requestID, token, err, time.Since(startTime))
			c.AbortWithStatusJSON(401, buildErrorResponse(err))
			return
		}

		// Validate token
		claims, err := cfg.Validate(token)
		if err != nil {
			logAuthFailure(cfg, requestID, token, err, time.Since(startTime))
			c.AbortWithStatusJSON(401, buildErrorResponse(err))
			return
		}

		// Inject claims and request ID into context
		ctx := WithClaims(c.Request.Context(), claims)
		ctx = WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		logAuthSuccess(cfg, requestID, claims, token, time.Since(startTime))

		c.Next()
	}
}

// InspectTokens returns a diagnostic Gin middleware handler: any bearer token
// on the request is inspected and the resulting Report is attached to the
// request context, but the request is never rejected. Requests without a
// token pass through with no report.
func InspectTokens(cfg *Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := requestIDFor(c)
		ctx := WithRequestID(c.Request.Context(), requestID)

		token, err := extractToken(c.Request, cfg)
		if err == nil {
			report, inspectErr := cfg.Inspect(token)
			if inspectErr != nil {
				logAuthFailure(cfg, requestID, token, inspectErr, time.Since(startTime))
			} else {
				ctx = WithReport(ctx, report)
				logInspection(cfg, requestID, report, token, time.Since(startTime))
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// requestIDFor extracts the caller-supplied correlation ID or generates one
func requestIDFor(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return requestID
}

// logAuthSuccess logs a successful authentication event
func logAuthSuccess(cfg *Config, requestID string, claims *Claims, token string, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}

	event := SecurityEvent{
		EventType:    "success",
		Timestamp:    time.Now(),
		RequestID:    requestID,
		UserID:       claims.Subject,
		Algorithm:    peekAlgorithm(token),
		TokenPreview: token,
		Latency:      latency,
	}

	logSecurityEvent(cfg.Logger(), event)
}

// logAuthFailure logs a failed authentication or inspection event
func logAuthFailure(cfg *Config, requestID string, token string, err error, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}

	event := SecurityEvent{
		EventType:     "failure",
		Timestamp:     time.Now(),
		RequestID:     requestID,
		Algorithm:     peekAlgorithm(token),
		FailureReason: getErrorCode(err),
		TokenPreview:  token,
		Latency:       latency,
	}

	logSecurityEvent(cfg.Logger(), event)
}

// logInspection logs a completed token inspection
func logInspection(cfg *Config, requestID string, report *Report, token string, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}

	matched, _ := report.MatchedLabel()
	event := SecurityEvent{
		EventType:     "inspect",
		Timestamp:     time.Now(),
		RequestID:     requestID,
		UserID:        report.Subject(),
		Algorithm:     report.Header.Algorithm,
		ExpiryStatus:  string(report.Expiry),
		MatchedSecret: matched,
		TokenPreview:  token,
		Latency:       latency,
	}

	logSecurityEvent(cfg.Logger(), event)
}

// getErrorCode extracts the error code from a validation error
func getErrorCode(err error) string {
	if valErr, ok := err.(*ValidationError); ok {
		return string(valErr.Code)
	}
	return "UNKNOWN"
}

// buildErrorResponse constructs the 401 response body. UNSUPPORTED_ALGORITHM
// and MALFORMED-class errors carry the ValidationError message to help the
// caller debug; everything else stays terse.
func buildErrorResponse(err error) gin.H {
	response := gin.H{
		"error":  "unauthorized",
		"reason": getErrorCode(err),
	}

	if valErr, ok := err.(*ValidationError); ok {
		if valErr.Code == ErrUnsupportedAlgorithm || valErr.Code == ErrNoneAlgorithm {
			if valErr.Message != "" {
				response["message"] = valErr.Message
			}
		}
	}

	return response
}

// peekAlgorithm extracts the algorithm from a token header without verifying
// anything. Returns "MALFORMED" if the header cannot be decoded (the token
// will be logged as invalid anyway).
func peekAlgorithm(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return "MALFORMED"
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "MALFORMED"
	}

	var header map[string]interface{}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return "MALFORMED"
	}

	if alg, ok := header["alg"].(string); ok {
		return alg
	}

	return "MALFORMED"
}
