// Package auth holds the decoded-token type and the per-entity-type
// ownership rules checked before any mutation.
//
// Token verification happens upstream; this package trusts the decoded
// claims verbatim and only answers "does this token own that entity".
package auth

import (
	"github.com/dgrijalva/jwt-go"
)

// Token is a decoded, already-verified token. Either identifier may be
// empty; an empty identifier never satisfies an ownership rule.
type Token struct {
	// User is the token holder's user document id.
	User string

	// Charity is the charity document id the token holder administers.
	Charity string
}

// FromClaims extracts the platform identifiers from verified JWT claims.
// Missing or non-string claims are left empty.
func FromClaims(claims jwt.MapClaims) Token {
	tok := Token{}
	if v, ok := claims["user"].(string); ok {
		tok.User = v
	}
	if v, ok := claims["charity"].(string); ok {
		tok.Charity = v
	}
	return tok
}
