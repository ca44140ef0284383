package core

import (
	"context"
	"time"
)

// OtpTTL is how long an issued challenge can be verified.
const OtpTTL = 5 * time.Minute

// ChallengeKey identifies one OTP flow. At most one live challenge
// exists per key at any instant.
type ChallengeKey struct {
	Phone     string
	Bank      string
	AccountID string
}

type Challenge struct {
	Key       ChallengeKey
	Code      string
	ExpiresAt time.Time
}

type VerifyResult uint8

const (
	_ VerifyResult = iota
	VerifySuccess
	VerifyExpired
	VerifyWrong
	VerifyNotFound
)

func (r VerifyResult) String() string {
	switch r {
	case VerifySuccess:
		return "success"
	case VerifyExpired:
		return "expired"
	case VerifyWrong:
		return "wrong"
	case VerifyNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type OtpStore interface {
	// Issue generates a fresh 6-digit code for key, replacing any live
	// challenge for the same key. The caller delivers the code.
	Issue(ctx context.Context, key ChallengeKey) (*Challenge, error)
	// Verify checks code against the live challenge for key. Success
	// consumes the challenge; Wrong and Expired leave it in place.
	Verify(ctx context.Context, key ChallengeKey, code string) VerifyResult
}
