package repository

import (
	"context"

	"example.com/userapi/internal/domain"
)

// UserRepository owns id assignment: a created record gets max(existing ids)+1.
// ListUsers returns records in insertion order. GetUser and DeleteUser return
// storage.ErrNotFound when no record has the id.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	DeleteUser(ctx context.Context, id int64) (domain.User, error)
}
