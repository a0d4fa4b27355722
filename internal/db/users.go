package db

import (
	"context"

	"github.com/sidereusnuntius/gopress/internal/domain"
)

type Users interface {
	LoadUser(ctx context.Context, blogID, login string) (domain.User, error)
	ListUsers(ctx context.Context, blogID string) ([]domain.User, error)
	// SaveUser inserts or updates the user, replacing its permission set.
	SaveUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, blogID, login string) error
	SetPermission(ctx context.Context, blogID, login, permission string, granted bool) error
}
