package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the unique email constraint rejects a write.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines the credential store operations the account service needs.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id string, ch entity.UserChanges) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
