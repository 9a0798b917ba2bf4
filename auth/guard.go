package auth

import "errors"

// ErrNotAuthorized is returned when a token does not satisfy an entity's
// ownership rule. Mutating operations check ownership before any write, so
// this error never leaves partial state behind.
var ErrNotAuthorized = errors.New("openalms: token does not own this entity")

// Claim selects which token identifier an ownership rule compares.
type Claim int

const (
	// ClaimUser compares Token.User (e.g., a post's owner).
	ClaimUser Claim = iota

	// ClaimCharity compares Token.Charity (e.g., a charity's administrator).
	ClaimCharity
)

// Rule is an ownership predicate. Each entity type declares its rule once
// and every mutating operation on that type applies it identically.
type Rule struct {
	Claim Claim
}

// Check compares the rule's token claim against the entity's identifying
// field value. An empty claim never matches.
func (r Rule) Check(tok Token, owner string) error {
	var got string
	switch r.Claim {
	case ClaimUser:
		got = tok.User
	case ClaimCharity:
		got = tok.Charity
	}
	if got == "" || got != owner {
		return ErrNotAuthorized
	}
	return nil
}
