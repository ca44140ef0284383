package otp

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/thaongo/openbank-hub/core"
)

const codeDigits = 6

func New() core.OtpStore {
	return &store{
		challenges: make(map[core.ChallengeKey]*core.Challenge),
		nowF:       time.Now,
	}
}

type store struct {
	mux        sync.Mutex
	challenges map[core.ChallengeKey]*core.Challenge
	nowF       func() time.Time
}

func (s *store) Issue(ctx context.Context, key core.ChallengeKey) (*core.Challenge, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	challenge := &core.Challenge{
		Key:       key,
		Code:      code,
		ExpiresAt: s.nowF().Add(core.OtpTTL),
	}

	s.mux.Lock()
	s.challenges[key] = challenge
	s.mux.Unlock()

	return challenge, nil
}

func (s *store) Verify(ctx context.Context, key core.ChallengeKey, code string) core.VerifyResult {
	s.mux.Lock()
	defer s.mux.Unlock()

	challenge, ok := s.challenges[key]
	if !ok {
		return core.VerifyNotFound
	}

	// expired means strictly past the deadline; the record stays so a
	// later verify still reports expired rather than not found
	if s.nowF().After(challenge.ExpiresAt) {
		return core.VerifyExpired
	}

	if code != challenge.Code {
		return core.VerifyWrong
	}

	delete(s.challenges, key)
	return core.VerifySuccess
}

// generateCode returns a uniformly random 6-digit numeric string,
// leading zeros allowed.
func generateCode() (string, error) {
	b := make([]byte, codeDigits)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	s := make([]byte, codeDigits)
	for i := range b {
		s[i] = '0' + b[i]%10
	}

	return string(s), nil
}
