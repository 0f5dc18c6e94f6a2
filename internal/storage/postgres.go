package storage

import (
	"context"
	"fmt"
	"time"

	usermodel "github.com/gatehouse/gatehouse/internal/models/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash, salt []byte) (*usermodel.User, error) {
	userID := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO users (id, name, email, username, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, email, username, created_at, updated_at
	`

	var user usermodel.User
	err := s.pool.QueryRow(ctx, query,
		userID,
		req.Name,
		req.Email,
		req.Username,
		passwordHash,
		salt,
		now,
		now,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Username,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	query := `
		SELECT id, name, email, username, password_hash, salt, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.queryUser(ctx, query, email)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	query := `
		SELECT id, name, email, username, password_hash, salt, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	return s.queryUser(ctx, query, username)
}

func (s *PostgresStore) GetUserByIdentifier(ctx context.Context, identifier string) (*usermodel.User, error) {
	query := `
		SELECT id, name, email, username, password_hash, salt, created_at, updated_at
		FROM users
		WHERE email = $1 OR username = $1
	`
	return s.queryUser(ctx, query, identifier)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	query := `
		SELECT id, name, email, username, password_hash, salt, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.queryUser(ctx, query, userID)
}

func (s *PostgresStore) queryUser(ctx context.Context, query string, arg any) (*usermodel.User, error) {
	var user usermodel.User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Salt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
