package users

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("user already exists")
	ErrInvalidPassword = errors.New("invalid password")
)

type CreateParams struct {
	Name         string
	Email        string
	PasswordHash string
}

// Repository owns user records. Create must atomically check email
// uniqueness (case-sensitive exact match) and assign the next id; it returns
// ErrEmailTaken when the email is already registered.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Count(ctx context.Context) int
}
