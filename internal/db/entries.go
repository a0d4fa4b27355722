package db

import (
	"context"

	"github.com/sidereusnuntius/gopress/internal/domain"
)

// EntryQuery filters a listing of entries. Zero values disable a filter; Page starts at 1.
type EntryQuery struct {
	CategoryID    int64
	MetadataKey   string
	MetadataValue string
	Status        domain.Status
	Page          int
	PageSize      int
}

func (q EntryQuery) Offset() int {
	if q.Page <= 1 || q.PageSize <= 0 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

type Entries interface {
	// LoadEntry returns the entry with its comments, trackbacks and pingbacks.
	LoadEntry(ctx context.Context, blogID string, id int64) (domain.Entry, error)
	LoadEntryBySlug(ctx context.Context, blogID, slug string) (domain.Entry, error)
	// ListEntries returns entries newest first, without their responses.
	ListEntries(ctx context.Context, blogID string, q EntryQuery) ([]domain.Entry, error)
	// SaveEntry inserts the entry when its ID is zero and sets the ID; otherwise it updates the row and records a
	// revision holding the patch from the previous description.
	SaveEntry(ctx context.Context, entry *domain.Entry) error
	DeleteEntry(ctx context.Context, blogID string, id int64) error
	ListRevisions(ctx context.Context, entryID int64) ([]domain.Revision, error)
}

type Categories interface {
	LoadCategory(ctx context.Context, blogID string, id int64) (domain.Category, error)
	LoadCategoryByName(ctx context.Context, blogID, name string) (domain.Category, error)
	ListCategories(ctx context.Context, blogID string) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, blogID string, id int64) error
}
