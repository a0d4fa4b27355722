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

func (s *AppService) Category(ctx context.Context, blogID string, id int64) (domain.Category, error) {
	c, err := s.DB.LoadCategory(ctx, blogID, id)
	return c, service.FromDB(err, "category "+strconv.FormatInt(id, 10))
}

func (s *AppService) CategoryByName(ctx context.Context, blogID, name string) (domain.Category, error) {
	c, err := s.DB.LoadCategoryByName(ctx, blogID, strings.TrimSpace(name))
	return c, service.FromDB(err, "category "+name)
}

func (s *AppService) Categories(ctx context.Context, blogID string) ([]domain.Category, error) {
	categories, err := s.DB.ListCategories(ctx, blogID)
	return categories, service.FromDB(err, "categories")
}

// SaveCategory rejects a parent that does not exist or that would make the category its own ancestor.
func (s *AppService) SaveCategory(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := validate.CategoryName(c.Name); err != nil {
		return fmt.Errorf("%w: %s", service.ErrValidationFailed, err)
	}

	seen := map[int64]bool{c.ID: c.ID != 0}
	for parent := c.ParentID; parent != nil; {
		if seen[*parent] {
			return fmt.Errorf("%w: category hierarchy would contain a cycle", service.ErrValidationFailed)
		}
		seen[*parent] = true
		p, err := s.DB.LoadCategory(ctx, c.BlogID, *parent)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("%w: parent category %d does not exist", service.ErrValidationFailed, *parent)
			}
			return service.FromDB(err, "category")
		}
		parent = p.ParentID
	}

	return service.FromDB(s.DB.SaveCategory(ctx, c), "category "+c.Name)
}

func (s *AppService) DeleteCategory(ctx context.Context, blogID string, id int64) error {
	return service.FromDB(s.DB.DeleteCategory(ctx, blogID, id), "category "+strconv.FormatInt(id, 10))
}
