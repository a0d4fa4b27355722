package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

// Authorize confirms the user's identity. The returned error never tells which of the two credentials was wrong.
func (s *AppService) Authorize(ctx context.Context, blog *domain.Blog, login, password string) (domain.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: missing credentials", service.ErrNotAuthenticated)
	}

	u, err := s.DB.LoadUser(ctx, blog.ID, login)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return domain.User{}, fmt.Errorf("%w: invalid credentials", service.ErrNotAuthenticated)
		}
		return domain.User{}, service.FromDB(err, "user")
	}

	if err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("blog", blog.ID).Str("login", login).Msg("password mismatch")
		return domain.User{}, fmt.Errorf("%w: invalid credentials", service.ErrNotAuthenticated)
	}
	return u, nil
}

func (s *AppService) CheckPermission(ctx context.Context, blog *domain.Blog, login, permission string) error {
	u, err := s.DB.LoadUser(ctx, blog.ID, login)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", service.ErrPermissionDenied, permission)
		}
		return service.FromDB(err, "user")
	}
	if !u.Has(permission) {
		return fmt.Errorf("%w: %s", service.ErrPermissionDenied, permission)
	}
	return nil
}

func (s *AppService) CreateUser(ctx context.Context, blogID, login, password, name, email string, permissions []string) (domain.User, error) {
	login = strings.TrimSpace(login)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.NewUser(login, password, email); err != nil {
		return domain.User{}, fmt.Errorf("%w: %s", service.ErrValidationFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		BlogID:       blogID,
		Login:        login,
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Permissions:  permissions,
	}
	if err = s.DB.SaveUser(ctx, &u); err != nil {
		return domain.User{}, service.FromDB(err, "user "+login)
	}
	return u, nil
}

func (s *AppService) DeleteUser(ctx context.Context, blogID, login string) error {
	return service.FromDB(s.DB.DeleteUser(ctx, blogID, login), "user "+login)
}

func (s *AppService) SetPermission(ctx context.Context, blogID, login, permission string, granted bool) error {
	permission = strings.TrimSpace(permission)
	if permission == "" {
		return fmt.Errorf("%w: empty permission", service.ErrValidationFailed)
	}
	return service.FromDB(s.DB.SetPermission(ctx, blogID, login, permission, granted), "user "+login)
}

func (s *AppService) Users(ctx context.Context, blogID string) ([]domain.User, error) {
	users, err := s.DB.ListUsers(ctx, blogID)
	return users, service.FromDB(err, "users")
}
