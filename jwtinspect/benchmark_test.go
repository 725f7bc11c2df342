package jwtinspect

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BenchmarkInspectSingleCandidate measures one-candidate inspection
func BenchmarkInspectSingleCandidate(b *testing.B) {
	secret := make([]byte, 32)
	rand.Read(secret)

	cfg, _ := NewConfig(WithCandidateSecret("primary", secret))

	claims := jwt.MapClaims{
		"sub": "user123",
		"exp": time.Now().Add(1 * time.Hour).Unix(),
	}
	tokenString, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	now := time.Now()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := cfg.InspectAt(tokenString, now); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkInspectManyCandidates measures inspection cost growth with the
// candidate list
func BenchmarkInspectManyCandidates(b *testing.B) {
	secret := make([]byte, 32)
	rand.Read(secret)

	opts := []ConfigOption{WithCandidateSecret("match", secret)}
	for i := 0; i < 9; i++ {
		wrong := make([]byte, 32)
		rand.Read(wrong)
		opts = append(opts, WithCandidateSecret(string(rune('a'+i)), wrong))
	}
	cfg, _ := NewConfig(opts...)

	claims := jwt.MapClaims{
		"sub": "user123",
		"exp": time.Now().Add(1 * time.Hour).Unix(),
	}
	tokenString, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	now := time.Now()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := cfg.InspectAt(tokenString, now); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkValidate measures the strict golang-jwt validation path
func BenchmarkValidate(b *testing.B) {
	secret := make([]byte, 32)
	rand.Read(secret)

	cfg, _ := NewConfig(WithCandidateSecret("primary", secret))

	claims := jwt.MapClaims{
		"sub": "user123",
		"exp": time.Now().Add(1 * time.Hour).Unix(),
	}
	tokenString, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := cfg.Validate(tokenString); err != nil {
			b.Fatal(err)
		}
	}
}
