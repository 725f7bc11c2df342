package jwtinspect

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestAlgorithmConfusionPrevention verifies an RS256 token is rejected
// outright by the HMAC-only strict path
func TestAlgorithmConfusionPrevention(t *testing.T) {
	secret := testSecret(t)
	cfg := mustConfig(t, WithCandidateSecret("primary", secret))

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}

	rs256Token := signedToken(t, jwt.SigningMethodRS256, rsaKey, jwt.MapClaims{
		"sub": "attacker",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = cfg.Validate(rs256Token)
	if err == nil {
		t.Fatal("RS256 token must be rejected by HMAC-only validation")
	}
	if !IsUnsupportedAlgorithm(err) {
		t.Errorf("Expected unsupported-algorithm rejection, got %v", err)
	}
}

// TestNoneAlgorithmRejection verifies unsigned "alg: none" tokens are
// rejected by both the strict and the inspection path
func TestNoneAlgorithmRejection(t *testing.T) {
	secret := testSecret(t)
	cfg := mustConfig(t, WithCandidateSecret("primary", secret))

	header, _ := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	payload, _ := json.Marshal(map[string]interface{}{"sub": "attacker", "role": "admin"})
	noneToken := base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString([]byte("x"))

	if _, err := cfg.Validate(noneToken); err == nil {
		t.Error("Strict validation must reject alg=none")
	}

	_, err := cfg.Inspect(noneToken)
	if err == nil {
		t.Fatal("Inspection must reject alg=none")
	}
	valErr, ok := err.(*ValidationError)
	if !ok || valErr.Code != ErrNoneAlgorithm {
		t.Errorf("Expected NONE_ALGORITHM, got %v", err)
	}
}

// TestSignatureStripping verifies a token whose signature segment was
// replaced does not validate and does not match on inspection
func TestSignatureStripping(t *testing.T) {
	secret := testSecret(t)
	cfg := mustConfig(t, WithCandidateSecret("primary", secret))

	tokenString := signedToken(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
		"sub": "user123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	parts := strings.Split(tokenString, ".")
	forged := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString([]byte("forged-signature"))

	if _, err := cfg.Validate(forged); err == nil {
		t.Error("Strict validation must reject a forged signature")
	}

	report, err := cfg.Inspect(forged)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if _, ok := report.MatchedLabel(); ok {
		t.Error("Forged signature must not match any candidate")
	}
}

// TestSignatureNeverDecoded verifies inspection treats the signature segment
// as opaque text: a signature that is not even valid base64url still yields
// a report with all-false matches rather than a decode error
func TestSignatureNeverDecoded(t *testing.T) {
	secret := testSecret(t)
	cfg := mustConfig(t, WithCandidateSecret("primary", secret))

	header := map[string]interface{}{"alg": "HS256", "typ": "JWT"}
	token := mintHS256(t, secret, header, map[string]interface{}{"sub": "user123"})
	parts := strings.Split(token, ".")
	garbled := parts[0] + "." + parts[1] + ".!!!not-base64!!!"

	report, err := cfg.InspectAt(garbled, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("InspectAt failed: %v", err)
	}
	if _, ok := report.MatchedLabel(); ok {
		t.Error("Garbled signature must not match any candidate")
	}
}

// TestSecretsNeverInReport verifies reports identify candidates by label only
func TestSecretsNeverInReport(t *testing.T) {
	secret := []byte("super-sensitive-secret-material-!!")
	cfg := mustConfig(t, WithCandidateSecret("primary", secret))

	header := map[string]interface{}{"alg": "HS256", "typ": "JWT"}
	token := mintHS256(t, secret, header, map[string]interface{}{"sub": "user123"})

	report, err := cfg.InspectAt(token, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("InspectAt failed: %v", err)
	}

	serialized, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Failed to marshal report: %v", err)
	}
	if strings.Contains(string(serialized), string(secret)) {
		t.Error("Serialized report must not contain secret bytes")
	}
}
