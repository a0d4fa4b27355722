package db

import (
	"context"

	"github.com/sidereusnuntius/gopress/internal/domain"
)

type Responses interface {
	SaveComment(ctx context.Context, c *domain.Comment) error
	SaveTrackback(ctx context.Context, t *domain.Trackback) error
	SavePingback(ctx context.Context, p *domain.Pingback) error
	LoadComment(ctx context.Context, blogID string, id int64) (domain.Comment, error)
	LoadTrackback(ctx context.Context, blogID string, id int64) (domain.Trackback, error)
	LoadPingback(ctx context.Context, blogID string, id int64) (domain.Pingback, error)
	// FindPingback looks up a pingback by its source and target URIs.
	FindPingback(ctx context.Context, blogID, source, target string) (domain.Pingback, error)
	RecentComments(ctx context.Context, blogID string, limit int) ([]domain.Comment, error)
	SetResponseStatus(ctx context.Context, kind domain.ResponseKind, blogID string, id int64, status domain.ResponseStatus) error
	DeleteResponse(ctx context.Context, kind domain.ResponseKind, blogID string, id int64) error
}
