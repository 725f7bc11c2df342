package jwtinspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Validate parses tokenString and strictly verifies it against the primary
// (first) candidate secret: signature, algorithm family, exp/nbf with clock
// skew tolerance, and any required claims. Unlike Inspect, it rejects rather
// than reports — use it for enforcement surfaces.
func (c *Config) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return c.signingKeyForToken(token)
	})

	if err != nil {
		// The JWT library may wrap our ValidationError; unwrap before classifying
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			return nil, valErr
		}

		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewValidationError(ErrExpired, "token has expired", err)
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, NewValidationError(ErrInvalidSignature, "invalid signature", err)
		}
		if strings.Contains(err.Error(), "signature") {
			return nil, NewValidationError(ErrInvalidSignature, "signature verification failed", err)
		}

		return nil, NewValidationError(ErrMalformed, "malformed token", err)
	}

	if !token.Valid {
		return nil, NewValidationError(ErrInvalidSignature, "token is invalid", nil)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewValidationError(ErrMalformed, "invalid claims format", nil)
	}

	claims := mapJWTClaimsToClaims(mapClaims)

	if err := c.validateTimeClaims(claims); err != nil {
		return nil, err
	}
	if err := c.validateRequiredClaims(mapClaims); err != nil {
		return nil, err
	}

	return claims, nil
}

// signingKeyForToken gates the token's declared algorithm to the HMAC-SHA-2
// family and returns the primary candidate secret
func (c *Config) signingKeyForToken(token *jwt.Token) (interface{}, error) {
	alg, ok := token.Header["alg"].(string)
	if !ok {
		return nil, NewValidationError(ErrMalformed, "missing or non-string algorithm in token header", nil)
	}

	if strings.EqualFold(alg, "none") {
		return nil, NewValidationError(ErrNoneAlgorithm, "none algorithm not allowed", nil)
	}

	if _, supported := hmacHashForAlg(alg); !supported {
		return nil, NewValidationError(
			ErrUnsupportedAlgorithm,
			fmt.Sprintf("algorithm %s not supported (supported: HS256, HS384, HS512)", alg),
			nil,
		)
	}

	// Reject key-type confusion: the parsed method must be the HMAC method
	// the header declares
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok || token.Method.Alg() != alg {
		return nil, NewValidationError(
			ErrInvalidSignature,
			fmt.Sprintf("algorithm confusion detected: token method %s does not match header algorithm %s",
				token.Method.Alg(), alg),
			nil,
		)
	}

	return c.primarySecret().Secret, nil
}

// mapJWTClaimsToClaims converts jwt.MapClaims to our Claims struct
func mapJWTClaimsToClaims(mapClaims jwt.MapClaims) *Claims {
	claims := &Claims{
		Custom: make(map[string]interface{}),
	}

	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if iss, ok := mapClaims["iss"].(string); ok {
		claims.Issuer = iss
	}
	if aud, ok := mapClaims["aud"].(string); ok {
		claims.Audience = aud
	}
	if jti, ok := mapClaims["jti"].(string); ok {
		claims.JWTID = jti
	}

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if nbf, err := mapClaims.GetNotBefore(); err == nil && nbf != nil {
		claims.NotBefore = nbf.Time
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	standardClaims := map[string]bool{
		"sub": true, "iss": true, "aud": true, "exp": true,
		"nbf": true, "iat": true, "jti": true,
	}
	for key, value := range mapClaims {
		if !standardClaims[key] {
			claims.Custom[key] = value
		}
	}

	return claims
}

// validateTimeClaims validates time-based claims with clock skew tolerance
func (c *Config) validateTimeClaims(claims *Claims) error {
	now := c.now()
	skew := c.ClockSkewLeeway()

	if !claims.ExpiresAt.IsZero() {
		if now.After(claims.ExpiresAt.Add(skew)) {
			return NewValidationError(
				ErrExpired,
				fmt.Sprintf("token expired at %v", claims.ExpiresAt),
				nil,
			)
		}
	}

	if !claims.NotBefore.IsZero() {
		if now.Before(claims.NotBefore.Add(-skew)) {
			return NewValidationError(
				ErrExpired,
				fmt.Sprintf("token not valid until %v", claims.NotBefore),
				nil,
			)
		}
	}

	return nil
}

// validateRequiredClaims ensures all required claims are present
func (c *Config) validateRequiredClaims(mapClaims jwt.MapClaims) error {
	for _, claimName := range c.RequiredClaims() {
		if _, ok := mapClaims[claimName]; !ok {
			return NewValidationError(
				ErrMalformed,
				fmt.Sprintf("required claim missing: %s", claimName),
				nil,
			)
		}
	}
	return nil
}
