package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/validate"
)

func (s *AppService) Entry(ctx context.Context, blogID string, id int64) (domain.Entry, error) {
	e, err := s.DB.LoadEntry(ctx, blogID, id)
	return e, service.FromDB(err, "entry "+strconv.FormatInt(id, 10))
}

func (s *AppService) EntryBySlug(ctx context.Context, blogID, slug string) (domain.Entry, error) {
	e, err := s.DB.LoadEntryBySlug(ctx, blogID, slug)
	return e, service.FromDB(err, "entry "+slug)
}

func (s *AppService) Entries(ctx context.Context, blogID string, q db.EntryQuery) ([]domain.Entry, error) {
	entries, err := s.DB.ListEntries(ctx, blogID, q)
	return entries, service.FromDB(err, "entries")
}

func (s *AppService) SaveEntry(ctx context.Context, e *domain.Entry) error {
	e.Title = RemoveDuplicateSpaces(e.Title)
	if err := validate.Title(e.Title); err != nil {
		return fmt.Errorf("%w: %s", service.ErrValidationFailed, err)
	}
	switch e.Status {
	case "":
		e.Status = domain.Draft
	case domain.Draft, domain.Published:
	default:
		return fmt.Errorf("%w: unknown status %q", service.ErrValidationFailed, e.Status)
	}

	c, err := s.DB.LoadCategory(ctx, e.BlogID, e.CategoryID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: category %d does not exist", service.ErrValidationFailed, e.CategoryID)
		}
		return service.FromDB(err, "category")
	}
	e.Category = c.Name

	return service.FromDB(s.DB.SaveEntry(ctx, e), "entry")
}

func (s *AppService) DeleteEntry(ctx context.Context, blogID string, id int64) error {
	return service.FromDB(s.DB.DeleteEntry(ctx, blogID, id), "entry "+strconv.FormatInt(id, 10))
}

func (s *AppService) Revisions(ctx context.Context, blogID string, entryID int64) ([]domain.Revision, error) {
	if _, err := s.DB.LoadEntry(ctx, blogID, entryID); err != nil {
		return nil, service.FromDB(err, "entry "+strconv.FormatInt(entryID, 10))
	}
	revisions, err := s.DB.ListRevisions(ctx, entryID)
	return revisions, service.FromDB(err, "revisions")
}

func RemoveDuplicateSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
