package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	usermodel "github.com/gatehouse/gatehouse/internal/models/user"
	"github.com/google/uuid"
)

// MemoryStore is an in-process UserStore used in tests and for local runs
// without a database.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*usermodel.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*usermodel.User),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash, salt []byte) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == req.Email {
			return nil, fmt.Errorf("user with email %s already exists", req.Email)
		}
		if u.Username == req.Username {
			return nil, fmt.Errorf("user with username %s already exists", req.Username)
		}
	}

	now := time.Now()
	user := &usermodel.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.ID] = user

	copied := *user
	return &copied, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	return s.find(func(u *usermodel.User) bool { return u.Email == email })
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	return s.find(func(u *usermodel.User) bool { return u.Username == username })
}

func (s *MemoryStore) GetUserByIdentifier(ctx context.Context, identifier string) (*usermodel.User, error) {
	return s.find(func(u *usermodel.User) bool {
		return u.Email == identifier || u.Username == identifier
	})
}

func (s *MemoryStore) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	return s.find(func(u *usermodel.User) bool { return u.ID == userID })
}

func (s *MemoryStore) find(match func(*usermodel.User) bool) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}

	return nil, nil
}
