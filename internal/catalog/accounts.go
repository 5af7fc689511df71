package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"myshop/internal/domain"
)

// LoginProviders lists the social providers accepted by Login.
var LoginProviders = []string{"google", "apple", "naver"}

// ErrUnsupportedProvider is returned by Login for unknown providers.
var ErrUnsupportedProvider = errors.New("unsupported login provider")

// Accounts keeps the demo user accounts, one per login provider.
type Accounts struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
	newID   func(prefix string) string
}

// NewAccounts returns an empty account registry.
func NewAccounts() *Accounts {
	return &Accounts{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
		newID:   domain.NewID,
	}
}

// Login returns the demo account of provider, creating it on first use as
// "<provider>_user@example.com" named "<Provider> Demo".
func (a *Accounts) Login(_ context.Context, provider string) (domain.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(provider))
	if !supportedProvider(normalized) {
		return domain.User{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
	email := normalized + "_user@example.com"

	a.mu.Lock()
	defer a.mu.Unlock()
	if id, ok := a.byEmail[email]; ok {
		user := a.byID[id]
		if user.Name == "" {
			user.Name = demoName(normalized)
		}
		return *user, nil
	}
	user := &domain.User{ID: a.newID("user"), Email: email, Name: demoName(normalized)}
	a.byID[user.ID] = user
	a.byEmail[email] = user.ID
	return *user, nil
}

// Get returns the account with id.
func (a *Accounts) Get(_ context.Context, id string) (domain.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	user, ok := a.byID[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %q: %w", id, domain.ErrNotFound)
	}
	return *user, nil
}

// Rename changes the display name of the account with id.
func (a *Accounts) Rename(_ context.Context, id, name string) (domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	user, ok := a.byID[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %q: %w", id, domain.ErrNotFound)
	}
	user.Name = name
	return *user, nil
}

// DisplayName returns the user's name, falling back to the local part of the
// email address.
func DisplayName(user domain.User) string {
	if user.Name != "" {
		return user.Name
	}
	local, _, _ := strings.Cut(user.Email, "@")
	return local
}

func supportedProvider(provider string) bool {
	for _, p := range LoginProviders {
		if p == provider {
			return true
		}
	}
	return false
}

func demoName(provider string) string {
	return cases.Title(language.English).String(provider) + " Demo"
}
