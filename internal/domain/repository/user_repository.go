package repository

import (
	"context"

	"github.com/yogswara/gearzone/internal/domain/entity"
)

// UserRepository defines user and profile persistence operations.
type UserRepository interface {
	// Create inserts the user and its profile in one transaction.
	Create(ctx context.Context, u *entity.User, p *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	// SetActive marks the account active. Idempotent.
	SetActive(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error)
	UpdateProfile(ctx context.Context, p *entity.UserProfile) error
}
