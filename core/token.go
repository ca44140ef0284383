package core

import (
	"context"
	"time"
)

// TokenTTL is how long a granted access token stays valid.
const TokenTTL = 10 * time.Minute

type AccessGrant struct {
	Key       ChallengeKey
	Token     string
	ExpiresAt time.Time
}

type TokenStore interface {
	// Grant issues an opaque access token for key, replacing and
	// invalidating any prior token for the same key.
	Grant(ctx context.Context, key ChallengeKey) (*AccessGrant, error)
	// Validate resolves token to the key it was granted for.
	// Expired or unknown tokens yield ok false.
	Validate(ctx context.Context, token string) (ChallengeKey, bool)
}
