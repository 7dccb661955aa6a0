package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/domain"
)

// MemoryUserStore is a UserStore backed by maps. Users are copied on the
// way in and out so callers never share state with the store.
type MemoryUserStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*domain.User
	byUsername map[string]uuid.UUID
	byEmail    map[string]uuid.UUID
}

var _ UserStore = (*MemoryUserStore)(nil)

// NewMemoryUserStore creates an empty store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:       make(map[uuid.UUID]*domain.User),
		byUsername: make(map[string]uuid.UUID),
		byEmail:    make(map[string]uuid.UUID),
	}
}

// Create implements UserStore.
func (s *MemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return NewStoreError("user", "create", "validation failed", fmt.Errorf("%w: %w", ErrInvalidEntity, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	username := normalize(user.Username)
	if _, ok := s.byUsername[username]; ok {
		return NewStoreError("user", "create", user.Username, ErrUsernameExists)
	}
	email := normalize(user.Email)
	if email != "" {
		if _, ok := s.byEmail[email]; ok {
			return NewStoreError("user", "create", "email taken", ErrEmailExists)
		}
	}
	if _, ok := s.byID[user.ID]; ok {
		return NewStoreError("user", "create", user.ID.String(), ErrDuplicate)
	}

	stored := *user
	s.byID[user.ID] = &stored
	s.byUsername[username] = user.ID
	if email != "" {
		s.byEmail[email] = user.ID
	}
	return nil
}

// GetByID implements UserStore.
func (s *MemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(id)
}

// GetByUsername implements UserStore. Usernames compare case-insensitively.
func (s *MemoryUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[normalize(username)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return s.get(id)
}

// GetByEmail implements UserStore. Emails compare case-insensitively.
func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalize(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return s.get(id)
}

// List implements UserStore.
func (s *MemoryUserStore) List(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.byID))
	for _, u := range s.byID {
		c := *u
		users = append(users, &c)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *MemoryUserStore) get(id uuid.UUID) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Seed provisions the configured accounts into s.
func Seed(ctx context.Context, s UserStore, users []config.UserConfig) error {
	for _, uc := range users {
		user, err := domain.NewUser(uc.Username, uc.Email, uc.PasswordHash)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", uc.Username, err)
		}
		user.IsActive = uc.Active
		user.EmailConfirmed = uc.EmailConfirmed
		if err := s.Create(ctx, user); err != nil {
			if IsDuplicateError(err) {
				return fmt.Errorf("seed user %q: username or email configured twice: %w", uc.Username, err)
			}
			return fmt.Errorf("seed user %q: %w", uc.Username, err)
		}
	}
	return nil
}
