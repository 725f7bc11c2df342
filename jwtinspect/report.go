package jwtinspect

import "time"

// ExpiryStatus is the three-valued result of comparing a token's exp claim
// against the clock: a missing exp is reported as unknown rather than
// assumed valid or expired.
type ExpiryStatus string

const (
	ExpiryValid   ExpiryStatus = "valid"
	ExpiryExpired ExpiryStatus = "expired"
	ExpiryUnknown ExpiryStatus = "unknown"
)

// Header is the decoded JOSE header of an inspected token
type Header struct {
	Algorithm string                 `json:"alg"`
	Type      string                 `json:"typ,omitempty"`
	Raw       map[string]interface{} `json:"-"` // full decoded header, including non-standard fields
}

// SecretMatch records whether one candidate secret reproduced the token's
// signature. Matches are reported in the caller-supplied candidate order.
type SecretMatch struct {
	Label   string `json:"label"`
	Matched bool   `json:"matched"`
}

// Report is the structured result of inspecting a token. It is a pure value:
// the inspector has no side effects beyond producing it, and callers decide
// how to present it.
type Report struct {
	Header    Header                 `json:"header"`
	Payload   map[string]interface{} `json:"payload"`
	Expiry    ExpiryStatus           `json:"expiry"`
	ExpiresAt time.Time              `json:"expires_at,omitzero"` // zero when the exp claim is absent
	Matches   []SecretMatch          `json:"matches"`
}

// MatchedLabel returns the label of the first candidate secret that
// reproduced the signature. Returns "", false if none matched.
func (r *Report) MatchedLabel() (string, bool) {
	for _, m := range r.Matches {
		if m.Matched {
			return m.Label, true
		}
	}
	return "", false
}

// Subject returns the payload's sub claim, or "" if absent or not a string
func (r *Report) Subject() string {
	sub, _ := r.Payload["sub"].(string)
	return sub
}
