package planner

import (
	"context"
	"fmt"
	"strings"

	"studyplanner/internal/logging"
	"studyplanner/internal/storage"
)

// DefaultDisplayName is shown when no user name was ever stored.
const DefaultDisplayName = "Student"

type Session struct {
	UserName           string
	LoggedIn           bool
	OnboardingComplete bool
}

// DisplayName never returns an empty string.
func (s Session) DisplayName() string {
	if strings.TrimSpace(s.UserName) == "" {
		return DefaultDisplayName
	}
	return s.UserName
}

// SessionStore owns the session flags and the single simulated account.
// Credentials are stored and compared in plain text.
type SessionStore struct {
	kv            storage.KV
	log           logging.Logger
	session       Session
	accountExists bool
}

func LoadSessionStore(ctx context.Context, kv storage.KV, log logging.Logger) (*SessionStore, error) {
	s := &SessionStore{kv: kv, log: log.With("component", "session")}

	name, _, err := kv.Get(ctx, keyUserName)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	loggedIn, err := s.flag(ctx, keyLoggedIn)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	onboarded, err := s.flag(ctx, keyOnboardingComplete)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	exists, err := s.flag(ctx, keyAccountExists)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	s.session = Session{UserName: name, LoggedIn: loggedIn, OnboardingComplete: onboarded}
	if s.session.LoggedIn && s.session.UserName == "" {
		s.session.UserName = DefaultDisplayName
	}
	s.accountExists = exists
	return s, nil
}

func (s *SessionStore) flag(ctx context.Context, key string) (bool, error) {
	v, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return found && v == flagTrue, nil
}

func (s *SessionStore) Current() Session {
	return s.session
}

func (s *SessionStore) AccountExists() bool {
	return s.accountExists
}

// CompleteOnboarding is one-way; repeated calls are harmless.
func (s *SessionStore) CompleteOnboarding(ctx context.Context) error {
	s.session.OnboardingComplete = true
	if err := s.kv.Set(ctx, keyOnboardingComplete, flagTrue); err != nil {
		return fmt.Errorf("persist onboarding flag: %w", err)
	}
	return nil
}

// SignUp overwrites the stored account. It does not log the user in.
func (s *SessionStore) SignUp(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return ErrMissingField
	}
	writes := []struct{ key, value string }{
		{keyAccountExists, flagTrue},
		{keyUserName, name},
		{keyAccountEmail, email},
		{keyAccountPassword, password},
	}
	for _, w := range writes {
		if err := s.kv.Set(ctx, w.key, w.value); err != nil {
			return fmt.Errorf("sign up: %w", err)
		}
	}
	s.accountExists = true
	s.log.Info(ctx, "account created", "email", email)
	return nil
}

// Login succeeds only when both fields equal the stored account exactly.
// A mismatch leaves the session untouched.
func (s *SessionStore) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return s.session, ErrMissingField
	}
	savedEmail, emailFound, err := s.kv.Get(ctx, keyAccountEmail)
	if err != nil {
		return s.session, fmt.Errorf("login: %w", err)
	}
	savedPass, passFound, err := s.kv.Get(ctx, keyAccountPassword)
	if err != nil {
		return s.session, fmt.Errorf("login: %w", err)
	}
	if !emailFound || !passFound || email != savedEmail || password != savedPass {
		s.log.Warn(ctx, "login rejected", "email", email)
		return s.session, ErrInvalidCredentials
	}

	name, _, err := s.kv.Get(ctx, keyUserName)
	if err != nil {
		return s.session, fmt.Errorf("login: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultDisplayName
	}
	if err := s.kv.Set(ctx, keyUserName, name); err != nil {
		return s.session, fmt.Errorf("login: %w", err)
	}
	if err := s.kv.Set(ctx, keyLoggedIn, flagTrue); err != nil {
		return s.session, fmt.Errorf("login: %w", err)
	}
	s.session.UserName = name
	s.session.LoggedIn = true
	s.log.Info(ctx, "logged in", "user", name)
	return s.session, nil
}
