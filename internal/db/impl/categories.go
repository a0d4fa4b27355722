package impl

import (
	"context"
	"database/sql"

	"github.com/sidereusnuntius/gopress/internal/domain"
)

const categoryColumns = "id, blog_id, parent_id, name, description, metadata"

func scanCategory(row scanner) (domain.Category, error) {
	var (
		c        domain.Category
		parent   sql.NullInt64
		metadata string
	)
	if err := row.Scan(&c.ID, &c.BlogID, &parent, &c.Name, &c.Description, &metadata); err != nil {
		return domain.Category{}, err
	}
	c.ParentID = int64Ptr(parent)
	c.Metadata = decodeMetadata(metadata)
	return c, nil
}

func (d *dbImpl) LoadCategory(ctx context.Context, blogID string, id int64) (domain.Category, error) {
	c, err := scanCategory(d.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE blog_id = ? AND id = ?", blogID, id))
	return c, d.HandleError(err)
}

func (d *dbImpl) LoadCategoryByName(ctx context.Context, blogID, name string) (domain.Category, error) {
	c, err := scanCategory(d.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE blog_id = ? AND name = ?", blogID, name))
	return c, d.HandleError(err)
}

func (d *dbImpl) ListCategories(ctx context.Context, blogID string) ([]domain.Category, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE blog_id = ? ORDER BY name", blogID)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, d.HandleError(err)
		}
		categories = append(categories, c)
	}
	return categories, d.HandleError(rows.Err())
}

func (d *dbImpl) SaveCategory(ctx context.Context, c *domain.Category) error {
	metadata, err := encodeMetadata(c.Metadata)
	if err != nil {
		return err
	}
	return d.WithTx(func(tx *sql.Tx) error {
		if c.ID == 0 {
			res, err := tx.ExecContext(ctx,
				"INSERT INTO categories(blog_id, parent_id, name, description, metadata) VALUES (?,?,?,?,?)",
				c.BlogID, nullInt64(c.ParentID), c.Name, c.Description, metadata)
			if err != nil {
				return err
			}
			c.ID, err = res.LastInsertId()
			return err
		}
		return mustAffect(tx.ExecContext(ctx,
			"UPDATE categories SET parent_id = ?, name = ?, description = ?, metadata = ? WHERE blog_id = ? AND id = ?",
			nullInt64(c.ParentID), c.Name, c.Description, metadata, c.BlogID, c.ID))
	})
}

// DeleteCategory fails with db.ErrConflict while entries still reference the category.
func (d *dbImpl) DeleteCategory(ctx context.Context, blogID string, id int64) error {
	return d.WithTx(func(tx *sql.Tx) error {
		return mustAffect(tx.ExecContext(ctx, "DELETE FROM categories WHERE blog_id = ? AND id = ?", blogID, id))
	})
}
