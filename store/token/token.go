package token

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thaongo/openbank-hub/core"
)

func New() core.TokenStore {
	return &store{
		grants: make(map[string]*core.AccessGrant),
		byKey:  make(map[core.ChallengeKey]string),
		nowF:   time.Now,
	}
}

type store struct {
	mux    sync.Mutex
	grants map[string]*core.AccessGrant
	byKey  map[core.ChallengeKey]string
	nowF   func() time.Time
}

func (s *store) Grant(ctx context.Context, key core.ChallengeKey) (*core.AccessGrant, error) {
	grant := &core.AccessGrant{
		Key:       key,
		Token:     uuid.NewString(),
		ExpiresAt: s.nowF().Add(core.TokenTTL),
	}

	s.mux.Lock()
	// a fresh grant revokes the key's prior token outright
	if prev, ok := s.byKey[key]; ok {
		delete(s.grants, prev)
	}
	s.grants[grant.Token] = grant
	s.byKey[key] = grant.Token
	s.mux.Unlock()

	return grant, nil
}

func (s *store) Validate(ctx context.Context, token string) (core.ChallengeKey, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	grant, ok := s.grants[token]
	if !ok {
		return core.ChallengeKey{}, false
	}

	if s.nowF().After(grant.ExpiresAt) {
		return core.ChallengeKey{}, false
	}

	return grant.Key, true
}
