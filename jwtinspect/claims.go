package jwtinspect

import "time"

// Claims represents parsed and validated JWT claims
type Claims struct {
	Subject   string                 // User identifier (sub claim)
	Issuer    string                 // Token issuer (iss claim)
	Audience  string                 // Intended audience (aud claim)
	ExpiresAt time.Time              // Expiration time (exp claim)
	NotBefore time.Time              // Not-before time (nbf claim)
	IssuedAt  time.Time              // Issue time (iat claim)
	JWTID     string                 // JWT ID (jti claim)
	Custom    map[string]interface{} // Custom application-specific claims
}

// Role returns the "role" custom claim, or "" if absent or not a string
func (c *Claims) Role() string {
	role, _ := c.Custom["role"].(string)
	return role
}

// Email returns the "email" custom claim, or "" if absent or not a string
func (c *Claims) Email() string {
	email, _ := c.Custom["email"].(string)
	return email
}
