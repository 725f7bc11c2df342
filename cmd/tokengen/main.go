package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	var (
		secret  = flag.String("secret", "", "Secret key (defaults to TOKENGEN_SECRET env)")
		subject = flag.String("sub", "user123", "Subject (user ID)")
		email   = flag.String("email", "user@example.com", "Email address")
		role    = flag.String("role", "user", "User role")
		hours   = flag.Int("hours", 1, "Token validity in hours")
	)

	flag.Parse()

	key := *secret
	if key == "" {
		key = os.Getenv("TOKENGEN_SECRET")
	}
	if key == "" {
		log.Fatal("Secret required: pass -secret or set TOKENGEN_SECRET")
	}

	claims := jwt.MapClaims{
		"sub":   *subject,
		"email": *email,
		"role":  *role,
		"exp":   time.Now().Add(time.Duration(*hours) * time.Hour).Unix(),
		"nbf":   time.Now().Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(key))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println("\n=== JWT Token Generated ===")
	fmt.Printf("\nToken: %s\n\n", tokenString)
	fmt.Println("Claims:")
	fmt.Printf("  Subject: %s\n", *subject)
	fmt.Printf("  Email:   %s\n", *email)
	fmt.Printf("  Role:    %s\n", *role)
	fmt.Printf("  Expires: %s\n\n", time.Now().Add(time.Duration(*hours)*time.Hour).Format(time.RFC3339))
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/debug/token\n\n", tokenString)
}
