package jwtinspect

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash"
	"strings"
	"time"
)

// hmacHashForAlg maps a JOSE HMAC algorithm name to its hash constructor.
// Only the HMAC-SHA-2 family is verifiable here; anything else is rejected
// before any candidate secret is touched.
func hmacHashForAlg(alg string) (func() hash.Hash, bool) {
	switch alg {
	case "HS256":
		return sha256.New, true
	case "HS384":
		return sha512.New384, true
	case "HS512":
		return sha512.New, true
	}
	return nil, false
}

// Inspect decodes tokenString and recomputes its signature under every
// configured candidate secret, using the configured clock for the expiry
// check. See InspectAt for the full contract.
func (c *Config) Inspect(tokenString string) (*Report, error) {
	return c.InspectAt(tokenString, c.now())
}

// InspectAt decodes a compact signed token and reports, per candidate secret,
// whether that candidate reproduces the token's signature, plus whether the
// token is expired at the supplied time.
//
// The token must be three non-empty dot-separated segments whose header and
// payload decode as base64-RawURL JSON; anything else fails with a MALFORMED
// error and no report. A declared algorithm outside HS256/HS384/HS512 fails
// with UNSUPPORTED_ALGORITHM (or NONE_ALGORITHM for the "none" variants).
// The signature segment is compared in constant time against the recomputed
// value and is never itself decoded.
//
// InspectAt is a pure function of its inputs and the config's candidate
// list: identical calls yield identical reports, and it is safe for
// concurrent use.
func (c *Config) InspectAt(tokenString string, now time.Time) (*Report, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, NewValidationError(ErrMalformed, fmt.Sprintf("token must have 3 segments, got %d", len(parts)), nil)
	}
	for _, part := range parts {
		if part == "" {
			return nil, NewValidationError(ErrMalformed, "token segment is empty", nil)
		}
	}

	header, err := decodeSegment(parts[0], "header")
	if err != nil {
		return nil, err
	}
	payload, err := decodeSegment(parts[1], "payload")
	if err != nil {
		return nil, err
	}

	alg, ok := header["alg"].(string)
	if !ok {
		return nil, NewValidationError(ErrMalformed, "missing or non-string algorithm in token header", nil)
	}
	if strings.EqualFold(alg, "none") {
		return nil, NewValidationError(ErrNoneAlgorithm, "none algorithm cannot be verified", nil)
	}
	newHash, ok := hmacHashForAlg(alg)
	if !ok {
		return nil, NewValidationError(ErrUnsupportedAlgorithm, fmt.Sprintf("algorithm %s not supported (supported: HS256, HS384, HS512)", alg), nil)
	}

	// The signing input is the original encoded bytes, not a re-serialization
	signingInput := tokenString[:len(parts[0])+1+len(parts[1])]

	matches := make([]SecretMatch, 0, len(c.candidates))
	for _, cand := range c.candidates {
		mac := hmac.New(newHash, cand.Secret)
		mac.Write([]byte(signingInput))
		expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
		matches = append(matches, SecretMatch{
			Label:   cand.Label,
			Matched: hmac.Equal([]byte(expected), []byte(parts[2])),
		})
	}

	typ, _ := header["typ"].(string)
	report := &Report{
		Header:  Header{Algorithm: alg, Type: typ, Raw: header},
		Payload: payload,
		Matches: matches,
	}
	report.Expiry, report.ExpiresAt = expiryAt(payload, now)

	return report, nil
}

// decodeSegment base64-RawURL decodes one token segment and parses it as a
// JSON object
func decodeSegment(segment, name string) (map[string]interface{}, error) {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil, NewValidationError(ErrMalformed, fmt.Sprintf("%s is not valid base64url", name), err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, NewValidationError(ErrMalformed, fmt.Sprintf("%s is not a JSON object", name), err)
	}
	return decoded, nil
}

// expiryAt reads the exp claim (Unix epoch seconds) and compares it against
// now. A token is expired once now reaches exp; a missing or non-numeric exp
// yields ExpiryUnknown.
func expiryAt(payload map[string]interface{}, now time.Time) (ExpiryStatus, time.Time) {
	raw, ok := payload["exp"]
	if !ok {
		return ExpiryUnknown, time.Time{}
	}

	exp, ok := raw.(float64)
	if !ok {
		return ExpiryUnknown, time.Time{}
	}

	expiresAt := time.Unix(int64(exp), 0)
	if !now.Before(expiresAt) {
		return ExpiryExpired, expiresAt
	}
	return ExpiryValid, expiresAt
}
