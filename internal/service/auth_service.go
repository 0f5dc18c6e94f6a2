package service

import (
	"context"
	"fmt"

	"github.com/gatehouse/gatehouse/internal/auth"
	"github.com/gatehouse/gatehouse/internal/cache"
	"github.com/gatehouse/gatehouse/internal/logger"
	usermodel "github.com/gatehouse/gatehouse/internal/models/user"
	"github.com/gatehouse/gatehouse/internal/storage"
)

// AuthService orchestrates signup, login and profile reads over the user
// store, the password hasher and the token issuer. It holds no mutable state
// of its own.
type AuthService struct {
	store  storage.UserStore
	cache  *cache.UserCache
	tokens *auth.JWTManager
	log    *logger.Logger
}

// TokenPair is the result of a successful login: both tokens serialized and
// ready for cookie transport.
type TokenPair struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

func NewAuthService(store storage.UserStore, userCache *cache.UserCache, tokens *auth.JWTManager) *AuthService {
	return &AuthService{
		store:  store,
		cache:  userCache,
		tokens: tokens,
		log:    logger.New("auth-service"),
	}
}

// Signup creates an account. Conflicts are checked email first, then
// username; the first one found is reported.
func (s *AuthService) Signup(ctx context.Context, req *usermodel.SignupRequest) (*usermodel.User, error) {
	if req.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if req.Email == "" {
		return nil, &ValidationError{Field: "email"}
	}
	if req.Username == "" {
		return nil, &ValidationError{Field: "username"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password"}
	}

	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	passwordHash, salt, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &usermodel.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
	}, passwordHash, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn("Failed to cache user %s: %v", user.ID, err)
		}
	}

	return user, nil
}

// Login verifies credentials and issues an access and a refresh token. The
// identifier matches either the email or the username column; an unknown
// identifier and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *usermodel.LoginRequest) (*TokenPair, error) {
	if req.Username == "" {
		return nil, &ValidationError{Field: "username"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password"}
	}

	user, err := s.store.GetUserByIdentifier(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(req.Password, user.Salt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, _, err := s.tokens.Issue(user.ID, auth.TokenKindAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, _, err := s.tokens.Issue(user.ID, auth.TokenKindRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &TokenPair{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUser loads a profile by id, consulting the cache first when one is
// configured. Returns (nil, nil) when the user no longer exists.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*usermodel.User, error) {
	if s.cache != nil {
		if user, found := s.cache.Get(ctx, userID); found {
			return user, nil
		}
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn("Failed to cache user %s: %v", user.ID, err)
		}
	}

	return user, nil
}
