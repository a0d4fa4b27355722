package service

import (
	"context"
	"net/url"

	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
)

type Service interface {
	AuthService
	BlogService
	EntryService
	CategoryService
	ResponseService
	MediaService
}

type AuthService interface {
	// Authorize checks the credentials of a blog user. Empty or wrong credentials yield ErrNotAuthenticated; any other
	// error means the check itself could not be made.
	Authorize(ctx context.Context, blog *domain.Blog, login, password string) (domain.User, error)
	// CheckPermission returns ErrPermissionDenied unless the user holds the permission on the blog.
	CheckPermission(ctx context.Context, blog *domain.Blog, login, permission string) error
	CreateUser(ctx context.Context, blogID, login, password, name, email string, permissions []string) (domain.User, error)
	DeleteUser(ctx context.Context, blogID, login string) error
	SetPermission(ctx context.Context, blogID, login, permission string, granted bool) error
	Users(ctx context.Context, blogID string) ([]domain.User, error)
}

type BlogService interface {
	// Blog returns the active snapshot of a blog. Snapshots are shared and must not be modified.
	Blog(ctx context.Context, id string) (*domain.Blog, error)
	// ReloadBlog reads the blog again and swaps the active snapshot.
	ReloadBlog(ctx context.Context, id string) (*domain.Blog, error)
	// UpdateBlog persists an edited copy of a blog and makes it the active snapshot.
	UpdateBlog(ctx context.Context, blog *domain.Blog) error
}

type EntryService interface {
	Entry(ctx context.Context, blogID string, id int64) (domain.Entry, error)
	EntryBySlug(ctx context.Context, blogID, slug string) (domain.Entry, error)
	Entries(ctx context.Context, blogID string, q db.EntryQuery) ([]domain.Entry, error)
	// SaveEntry validates and stores the entry, inserting it when its ID is zero.
	SaveEntry(ctx context.Context, entry *domain.Entry) error
	DeleteEntry(ctx context.Context, blogID string, id int64) error
	Revisions(ctx context.Context, blogID string, entryID int64) ([]domain.Revision, error)
}

type CategoryService interface {
	Category(ctx context.Context, blogID string, id int64) (domain.Category, error)
	CategoryByName(ctx context.Context, blogID, name string) (domain.Category, error)
	Categories(ctx context.Context, blogID string) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, blogID string, id int64) error
}

type ResponseService interface {
	AddComment(ctx context.Context, c *domain.Comment) error
	AddTrackback(ctx context.Context, t *domain.Trackback) error
	AddPingback(ctx context.Context, p *domain.Pingback) error
	FindPingback(ctx context.Context, blogID, source, target string) (domain.Pingback, error)
	RecentComments(ctx context.Context, blogID string, limit int) ([]domain.Comment, error)
	SetResponseStatus(ctx context.Context, kind domain.ResponseKind, blogID string, id int64, status domain.ResponseStatus) error
	DeleteResponse(ctx context.Context, kind domain.ResponseKind, blogID string, id int64) error
}

type MediaService interface {
	// SaveMedia stores an uploaded file under the blog's resources and returns its public url.
	SaveMedia(ctx context.Context, blog *domain.Blog, media domain.MediaObject, uploader string) (*url.URL, error)
}
