package db

import (
	"context"
	"errors"

	"github.com/sidereusnuntius/gopress/internal/domain"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInternal = errors.New("internal error")
)

// DB is the persistence collaborator. Every method runs in its own transaction.
type DB interface {
	Blogs
	Entries
	Categories
	Responses
	Users
	Media
	Instance
}

type Blogs interface {
	LoadBlog(ctx context.Context, id string) (*domain.Blog, error)
	ListBlogs(ctx context.Context) ([]*domain.Blog, error)
	// SaveBlog inserts the blog or replaces the stored row with the same id.
	SaveBlog(ctx context.Context, blog *domain.Blog) error
}

type Media interface {
	SaveMedia(ctx context.Context, media domain.MediaObject, digest, uploader string) (id int64, err error)
}
