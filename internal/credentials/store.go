// Package credentials holds the bearer token used for record store calls.
package credentials

import (
	"errors"
	"strings"
	"time"

	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/cache"
)

const tokenKey = "record_store_bearer"

var ErrMissingCredential = errors.New("missing_credential")

// Store is a process-wide holder for the record store bearer credential.
// Tokens expire after the configured TTL so a stale session is surfaced as a
// missing credential rather than a rejected call.
type Store struct {
	tokens *cache.TTLCache[string, string]
	ttl    time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		tokens: cache.New[string, string](),
		ttl:    ttl,
	}
}

// Put stores the bearer token.
func (s *Store) Put(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	s.tokens.Set(tokenKey, token, s.ttl)
}

// Token returns the current bearer token.
func (s *Store) Token() (string, error) {
	token, ok := s.tokens.Get(tokenKey)
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrMissingCredential
	}
	return token, nil
}

// Clear drops the stored credential. Called after the record store rejects a
// token so the next caller is forced to re-authenticate.
func (s *Store) Clear() {
	s.tokens.Delete(tokenKey)
}
