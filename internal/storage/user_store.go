package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"prep-pilot/internal/domain/user"
)

// UserStore is a JSON-file implementation of user.Repository. The whole file
// is rewritten through a temp-file rename on every create, which is fine at
// this scale.
type UserStore struct {
	path string
	mu   sync.Mutex
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

type storedUser struct {
	user.User
	PasswordHash string `json:"password_hash"`
}

func (s *UserStore) Create(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("user %s already exists", u.Email)
		}
	}
	users = append(users, storedUser{User: u, PasswordHash: u.PasswordHash})
	return s.write(users)
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return user.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return restore(u), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return user.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return restore(u), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func restore(su storedUser) user.User {
	u := su.User
	u.PasswordHash = su.PasswordHash
	return u
}

func (s *UserStore) read() ([]storedUser, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read users: %w", err)
	}
	var users []storedUser
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *UserStore) write(users []storedUser) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create users dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace users: %w", err)
	}
	return nil
}

var _ user.Repository = (*UserStore)(nil)
