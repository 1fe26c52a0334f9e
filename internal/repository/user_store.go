package repository

import (
	"context"

	"ticketr/internal/model"
)

// UserStore is the persistence contract for accounts. UserRepo is the
// MySQL implementation; MemoryUserStore backs tests and the DB-free
// development mode.
type UserStore interface {
	// Create persists a new user and assigns its ID. The password must
	// already be hashed. Returns ErrEmailExists on a duplicate email.
	Create(ctx context.Context, u *model.User) error
	// GetByEmail returns the user or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (model.User, error)
	// GetByID returns the user or ErrUserNotFound.
	GetByID(ctx context.Context, id uint64) (model.User, error)
	// GetByVerifyToken returns the user holding the pending
	// verification token, or ErrTokenNotFound.
	GetByVerifyToken(ctx context.Context, token string) (model.User, error)
	// ClearVerifyToken marks the account as verified.
	ClearVerifyToken(ctx context.Context, id uint64) error
}
