package storage

import (
	"context"

	usermodel "github.com/gatehouse/gatehouse/internal/models/user"
)

// UserStore is the credential lookup contract. Lookups return (nil, nil) when
// no matching user exists; an error always means the store itself failed.
type UserStore interface {
	CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash, salt []byte) (*usermodel.User, error)
	GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error)
	GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error)
	// GetUserByIdentifier matches identifier against both the email and the
	// username columns.
	GetUserByIdentifier(ctx context.Context, identifier string) (*usermodel.User, error)
	GetUserByID(ctx context.Context, userID string) (*usermodel.User, error)
}
