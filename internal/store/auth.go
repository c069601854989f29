// Package store holds client-side state containers for the session and the
// product catalogue. Every action returns a result value instead of an error so
// callers can render the outcome directly.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/teran1416/InventarioApp/internal/client"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

type Result struct {
	Success bool
	Message string
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (client.Identity, error)
	Register(ctx context.Context, fullName, email, password string) (client.Identity, error)
}

type AuthStore struct {
	api     AuthAPI
	storage Storage

	mu    sync.RWMutex
	user  *client.Identity
	token string
}

// NewAuthStore restores any session previously saved in storage.
func NewAuthStore(api AuthAPI, storage Storage) (*AuthStore, error) {
	s := &AuthStore{api: api, storage: storage}

	token, ok, err := storage.Get(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if ok {
		s.token = token
	}

	raw, ok, err := storage.Get(userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if ok {
		var u client.Identity
		if json.Unmarshal([]byte(raw), &u) == nil {
			s.user = &u
		}
	}
	return s, nil
}

func (s *AuthStore) Login(ctx context.Context, email, password string) Result {
	identity, err := s.api.Login(ctx, email, password)
	if err != nil {
		return Result{Message: messageFrom(err, "Error signing in")}
	}
	return s.start(identity)
}

func (s *AuthStore) Register(ctx context.Context, fullName, email, password string) Result {
	identity, err := s.api.Register(ctx, fullName, email, password)
	if err != nil {
		return Result{Message: messageFrom(err, "Error registering")}
	}
	return s.start(identity)
}

func (s *AuthStore) start(identity client.Identity) Result {
	raw, err := json.Marshal(identity)
	if err != nil {
		return Result{Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(userKey, string(raw)); err != nil {
		return Result{Message: err.Error()}
	}
	if err := s.storage.Set(tokenKey, identity.Token); err != nil {
		// A stored user without its token would restore as a half session.
		return Result{Message: errors.Join(err, s.storage.Delete(userKey)).Error()}
	}
	s.user = &identity
	s.token = identity.Token
	return Result{Success: true}
}

// Logout forgets the session in memory and in storage.
func (s *AuthStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	return errors.Join(s.storage.Delete(userKey), s.storage.Delete(tokenKey))
}

func (s *AuthStore) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *AuthStore) User() (client.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return client.Identity{}, false
	}
	return *s.user, true
}

// messageFrom prefers the server's message and falls back to def.
func messageFrom(err error, def string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return def
}
