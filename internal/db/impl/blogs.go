package impl

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/sidereusnuntius/gopress/internal/domain"
)

const blogColumns = `id, name, description, url, owner, owner_email, locale, display_entries, comments_enabled,
	trackbacks_enabled, pingbacks_enabled, email_enabled, xmlrpc_enabled, properties`

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner) (*domain.Blog, error) {
	var (
		b          domain.Blog
		rawURL     string
		properties string
	)
	err := row.Scan(&b.ID, &b.Name, &b.Description, &rawURL, &b.Owner, &b.OwnerEmail, &b.Locale, &b.DisplayEntries,
		&b.CommentsEnabled, &b.TrackbacksEnabled, &b.PingbacksEnabled, &b.EmailEnabled, &b.XmlrpcEnabled, &properties)
	if err != nil {
		return nil, err
	}
	if b.URL, err = url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("blog %s has an invalid url %q: %w", b.ID, rawURL, err)
	}
	b.Properties = decodeMetadata(properties)
	return &b, nil
}

func (d *dbImpl) LoadBlog(ctx context.Context, id string) (*domain.Blog, error) {
	b, err := scanBlog(d.db.QueryRowContext(ctx, "SELECT "+blogColumns+" FROM blogs WHERE id = ?", id))
	return b, d.HandleError(err)
}

func (d *dbImpl) ListBlogs(ctx context.Context) ([]*domain.Blog, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT "+blogColumns+" FROM blogs ORDER BY id")
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, d.HandleError(err)
		}
		blogs = append(blogs, b)
	}
	return blogs, d.HandleError(rows.Err())
}

func (d *dbImpl) SaveBlog(ctx context.Context, b *domain.Blog) error {
	properties, err := encodeMetadata(b.Properties)
	if err != nil {
		return err
	}
	return d.WithTx(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO blogs(`+blogColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				url = excluded.url,
				owner = excluded.owner,
				owner_email = excluded.owner_email,
				locale = excluded.locale,
				display_entries = excluded.display_entries,
				comments_enabled = excluded.comments_enabled,
				trackbacks_enabled = excluded.trackbacks_enabled,
				pingbacks_enabled = excluded.pingbacks_enabled,
				email_enabled = excluded.email_enabled,
				xmlrpc_enabled = excluded.xmlrpc_enabled,
				properties = excluded.properties`,
			b.ID, b.Name, b.Description, b.URL.String(), b.Owner, b.OwnerEmail, b.Locale, b.DisplayEntries,
			b.CommentsEnabled, b.TrackbacksEnabled, b.PingbacksEnabled, b.EmailEnabled, b.XmlrpcEnabled, properties)
		return err
	})
}
