package core

import (
	"context"
	"fmt"

	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/validate"
)

// destroyed guards the store against responses an interceptor marked for destruction.
func destroyed(core domain.ResponseCore) error {
	if _, ok := core.Metadata[domain.MetadataDestroy]; ok {
		return fmt.Errorf("%w: response is marked for destruction", service.ErrValidationFailed)
	}
	return nil
}

func (s *AppService) AddComment(ctx context.Context, c *domain.Comment) error {
	if err := destroyed(c.ResponseCore); err != nil {
		return err
	}
	if err := validate.Comment(c.Author, c.Content); err != nil {
		return fmt.Errorf("%w: %s", service.ErrValidationFailed, err)
	}
	return service.FromDB(s.DB.SaveComment(ctx, c), "comment")
}

func (s *AppService) AddTrackback(ctx context.Context, t *domain.Trackback) error {
	if err := destroyed(t.ResponseCore); err != nil {
		return err
	}
	if err := validate.URL(t.URL); err != nil {
		return fmt.Errorf("%w: %s", service.ErrValidationFailed, err)
	}
	return service.FromDB(s.DB.SaveTrackback(ctx, t), "trackback")
}

func (s *AppService) AddPingback(ctx context.Context, p *domain.Pingback) error {
	if err := destroyed(p.ResponseCore); err != nil {
		return err
	}
	return service.FromDB(s.DB.SavePingback(ctx, p), "pingback")
}

func (s *AppService) FindPingback(ctx context.Context, blogID, source, target string) (domain.Pingback, error) {
	p, err := s.DB.FindPingback(ctx, blogID, source, target)
	return p, service.FromDB(err, "pingback")
}

func (s *AppService) RecentComments(ctx context.Context, blogID string, limit int) ([]domain.Comment, error) {
	if limit <= 0 {
		limit = 10
	}
	comments, err := s.DB.RecentComments(ctx, blogID, limit)
	return comments, service.FromDB(err, "comments")
}

func (s *AppService) SetResponseStatus(ctx context.Context, kind domain.ResponseKind, blogID string, id int64, status domain.ResponseStatus) error {
	return service.FromDB(s.DB.SetResponseStatus(ctx, kind, blogID, id, status), kind.String())
}

func (s *AppService) DeleteResponse(ctx context.Context, kind domain.ResponseKind, blogID string, id int64) error {
	return service.FromDB(s.DB.DeleteResponse(ctx, kind, blogID, id), kind.String())
}
