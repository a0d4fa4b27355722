package core

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/service"
)

func (s *AppService) slot(id string) *atomic.Pointer[domain.Blog] {
	p, _ := s.blogs.LoadOrStore(id, &atomic.Pointer[domain.Blog]{})
	return p.(*atomic.Pointer[domain.Blog])
}

func (s *AppService) Blog(ctx context.Context, id string) (*domain.Blog, error) {
	if b := s.slot(id).Load(); b != nil {
		return b, nil
	}
	return s.ReloadBlog(ctx, id)
}

func (s *AppService) ReloadBlog(ctx context.Context, id string) (*domain.Blog, error) {
	b, err := s.DB.LoadBlog(ctx, id)
	if err != nil {
		return nil, service.FromDB(err, "blog "+id)
	}
	s.slot(id).Store(b)
	log.Debug().Str("blog", id).Msg("blog snapshot loaded")
	return b, nil
}

// UpdateBlog stores a copy of blog so later changes by the caller cannot leak into the shared snapshot.
func (s *AppService) UpdateBlog(ctx context.Context, blog *domain.Blog) error {
	if blog.URL == nil {
		return fmt.Errorf("%w: blog url is required", service.ErrValidationFailed)
	}
	if blog.DisplayEntries <= 0 {
		return fmt.Errorf("%w: display entries must be positive", service.ErrValidationFailed)
	}
	snapshot := blog.Clone()
	if err := s.DB.SaveBlog(ctx, snapshot); err != nil {
		return service.FromDB(err, "blog "+blog.ID)
	}
	s.slot(blog.ID).Store(snapshot)
	log.Info().Str("blog", blog.ID).Msg("blog configuration updated")
	return nil
}
