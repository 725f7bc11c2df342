package jwtinspect

import (
	"fmt"
	"log/slog"
	"time"
)

// Candidate is one labeled secret to try during signature verification.
// The label identifies the candidate in reports and logs; the secret bytes
// themselves are never logged.
type Candidate struct {
	Label  string
	Secret []byte
}

// Config holds immutable configuration for token inspection and validation
type Config struct {
	candidates       []Candidate
	clock            func() time.Time
	clockSkewLeeway  time.Duration
	cookieName       string
	requiredClaims   []string
	logger           *slog.Logger
	contextKeyPrefix string
}

// ConfigOption is a functional option for configuring the inspector
type ConfigOption func(*Config) error

// NewConfig creates a new immutable configuration with the given options
func NewConfig(opts ...ConfigOption) (*Config, error) {
	cfg := &Config{
		clock:            time.Now,
		clockSkewLeeway:  60 * time.Second, // Default 60 seconds
		contextKeyPrefix: "jwtinspect",
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, NewValidationError(ErrConfigError, fmt.Sprintf("configuration error: %v", err), err)
		}
	}

	// Validate required fields
	if len(cfg.candidates) == 0 {
		return nil, NewValidationError(ErrConfigError, "at least one candidate secret must be configured (use WithCandidateSecret)", nil)
	}

	seen := make(map[string]bool, len(cfg.candidates))
	for _, cand := range cfg.candidates {
		if len(cand.Secret) == 0 {
			return nil, NewValidationError(ErrConfigError, fmt.Sprintf("candidate secret %q cannot be empty", cand.Label), nil)
		}
		if seen[cand.Label] {
			return nil, NewValidationError(ErrConfigError, fmt.Sprintf("duplicate candidate label %q", cand.Label), nil)
		}
		seen[cand.Label] = true
	}

	return cfg, nil
}

// WithCandidateSecret appends one labeled candidate secret. Candidates are
// tried in the order they were added; the first one is the primary secret
// used by the strict validation path.
func WithCandidateSecret(label string, secret []byte) ConfigOption {
	return func(c *Config) error {
		if label == "" {
			return fmt.Errorf("candidate label cannot be empty")
		}
		c.candidates = append(c.candidates, Candidate{Label: label, Secret: secret})
		return nil
	}
}

// WithCandidateSecrets appends multiple candidates, preserving their order
func WithCandidateSecrets(candidates ...Candidate) ConfigOption {
	return func(c *Config) error {
		for _, cand := range candidates {
			if cand.Label == "" {
				return fmt.Errorf("candidate label cannot be empty")
			}
			c.candidates = append(c.candidates, cand)
		}
		return nil
	}
}

// WithClock overrides the wall clock used for expiry checks. Intended for
// callers that need deterministic results; defaults to time.Now.
func WithClock(clock func() time.Time) ConfigOption {
	return func(c *Config) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		c.clock = clock
		return nil
	}
}

// WithClockSkew sets the clock skew tolerance for exp/nbf checks in the
// strict validation path. Inspection reports expiry against the raw clock.
func WithClockSkew(skew time.Duration) ConfigOption {
	return func(c *Config) error {
		if skew < 0 {
			return fmt.Errorf("clock skew must be non-negative, got %v", skew)
		}
		c.clockSkewLeeway = skew
		return nil
	}
}

// WithCookie enables token extraction from a cookie with the given name
func WithCookie(cookieName string) ConfigOption {
	return func(c *Config) error {
		c.cookieName = cookieName
		return nil
	}
}

// WithLogger sets a structured logger for security events
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// WithRequiredClaims specifies claim names that must be present in the token
// for the strict validation path to accept it
func WithRequiredClaims(claims ...string) ConfigOption {
	return func(c *Config) error {
		c.requiredClaims = append(c.requiredClaims, claims...)
		return nil
	}
}

// Getter methods for internal use

// Candidates returns the ordered candidate secrets. The returned slice is a
// copy; the underlying secret bytes are shared and must not be mutated.
func (c *Config) Candidates() []Candidate {
	out := make([]Candidate, len(c.candidates))
	copy(out, c.candidates)
	return out
}

// primarySecret returns the first candidate, used by the strict validation path
func (c *Config) primarySecret() Candidate {
	return c.candidates[0]
}

func (c *Config) now() time.Time {
	return c.clock()
}

func (c *Config) ClockSkewLeeway() time.Duration {
	return c.clockSkewLeeway
}

func (c *Config) CookieName() string {
	return c.cookieName
}

func (c *Config) RequiredClaims() []string {
	return c.requiredClaims
}

func (c *Config) Logger() *slog.Logger {
	return c.logger
}
