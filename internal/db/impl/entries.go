package impl

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/utils"
)

const entryColumns = `e.id, e.blog_id, e.category_id, c.name, e.title, e.slug, e.description, e.status, e.author,
	e.created, e.modified, e.allow_comments, e.allow_trackbacks, e.allow_pingbacks, e.metadata`

const entryFrom = " FROM entries e JOIN categories c ON c.id = e.category_id "

func scanEntry(row scanner) (domain.Entry, error) {
	var (
		e        domain.Entry
		metadata string
		status   string
	)
	err := row.Scan(&e.ID, &e.BlogID, &e.CategoryID, &e.Category, &e.Title, &e.Slug, &e.Description, &status,
		&e.Author, &e.Created, &e.Modified, &e.AllowComments, &e.AllowTrackbacks, &e.AllowPingbacks, &metadata)
	if err != nil {
		return domain.Entry{}, err
	}
	e.Status = domain.Status(status)
	e.Metadata = decodeMetadata(metadata)
	return e, nil
}

func (d *dbImpl) LoadEntry(ctx context.Context, blogID string, id int64) (domain.Entry, error) {
	e, err := scanEntry(d.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+entryFrom+"WHERE e.blog_id = ? AND e.id = ?", blogID, id))
	if err != nil {
		return domain.Entry{}, d.HandleError(err)
	}
	return e, d.HandleError(d.loadResponses(ctx, &e))
}

func (d *dbImpl) LoadEntryBySlug(ctx context.Context, blogID, slug string) (domain.Entry, error) {
	e, err := scanEntry(d.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+entryFrom+"WHERE e.blog_id = ? AND e.slug = ?", blogID, slug))
	if err != nil {
		return domain.Entry{}, d.HandleError(err)
	}
	return e, d.HandleError(d.loadResponses(ctx, &e))
}

func (d *dbImpl) ListEntries(ctx context.Context, blogID string, q db.EntryQuery) ([]domain.Entry, error) {
	var (
		where = []string{"e.blog_id = ?"}
		args  = []any{blogID}
	)
	if q.CategoryID != 0 {
		where = append(where, "e.category_id = ?")
		args = append(args, q.CategoryID)
	}
	if q.Status != "" {
		where = append(where, "e.status = ?")
		args = append(args, string(q.Status))
	}
	if q.MetadataKey != "" {
		where = append(where, `json_extract(e.metadata, '$."' || ? || '"') IS NOT NULL`)
		args = append(args, q.MetadataKey)
		if q.MetadataValue != "" {
			where = append(where, `json_extract(e.metadata, '$."' || ? || '"') = ?`)
			args = append(args, q.MetadataKey, q.MetadataValue)
		}
	}

	query := "SELECT " + entryColumns + entryFrom + "WHERE " + strings.Join(where, " AND ") +
		" ORDER BY e.created DESC, e.id DESC"
	if q.PageSize > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.PageSize, q.Offset())
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, d.HandleError(err)
		}
		entries = append(entries, e)
	}
	return entries, d.HandleError(rows.Err())
}

func (d *dbImpl) SaveEntry(ctx context.Context, e *domain.Entry) error {
	metadata, err := encodeMetadata(e.Metadata)
	if err != nil {
		return err
	}
	if e.Status == "" {
		e.Status = domain.Draft
	}
	now := time.Now().UTC()
	e.Modified = now

	return d.WithTx(func(tx *sql.Tx) error {
		if e.ID == 0 {
			return d.insertEntry(ctx, tx, e, metadata, now)
		}

		var previous string
		err := tx.QueryRowContext(ctx, "SELECT description FROM entries WHERE blog_id = ? AND id = ?", e.BlogID, e.ID).
			Scan(&previous)
		if err != nil {
			return err
		}
		if e.Slug == "" {
			e.Slug = utils.Slugify(e.Title)
		}

		err = mustAffect(tx.ExecContext(ctx, `UPDATE entries SET
				category_id = ?, title = ?, slug = ?, description = ?, status = ?, author = ?, modified = ?,
				allow_comments = ?, allow_trackbacks = ?, allow_pingbacks = ?, metadata = ?
			WHERE blog_id = ? AND id = ?`,
			e.CategoryID, e.Title, e.Slug, e.Description, string(e.Status), e.Author, now,
			e.AllowComments, e.AllowTrackbacks, e.AllowPingbacks, metadata, e.BlogID, e.ID))
		if err != nil {
			return err
		}

		if previous == e.Description {
			return nil
		}
		return d.insertRevision(ctx, tx, e.ID, e.Author, previous, e.Description, now)
	})
}

func (d *dbImpl) insertEntry(ctx context.Context, tx *sql.Tx, e *domain.Entry, metadata string, now time.Time) error {
	if e.Created.IsZero() {
		e.Created = now
	}
	slug, err := uniqueSlug(ctx, tx, e.BlogID, cmp.Or(e.Slug, utils.Slugify(e.Title), "entry"))
	if err != nil {
		return err
	}
	e.Slug = slug

	res, err := tx.ExecContext(ctx, `INSERT INTO entries(
			blog_id, category_id, title, slug, description, status, author, created, modified,
			allow_comments, allow_trackbacks, allow_pingbacks, metadata
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.BlogID, e.CategoryID, e.Title, e.Slug, e.Description, string(e.Status), e.Author, e.Created.UTC(), now,
		e.AllowComments, e.AllowTrackbacks, e.AllowPingbacks, metadata)
	if err != nil {
		return err
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	log.Debug().Str("blog", e.BlogID).Int64("id", e.ID).Str("slug", e.Slug).Msg("entry created")
	return d.insertRevision(ctx, tx, e.ID, e.Author, "", e.Description, now)
}

func (d *dbImpl) insertRevision(ctx context.Context, tx *sql.Tx, entryID int64, author, before, after string, now time.Time) error {
	patch := d.DMP.PatchToText(d.DMP.PatchMake(d.DMP.DiffMain(before, after, false)))
	_, err := tx.ExecContext(ctx,
		"INSERT INTO entry_revisions(entry_id, author, diff, created) VALUES (?,?,?,?)",
		entryID, author, patch, now)
	if err != nil {
		return fmt.Errorf("failed to insert revision: %w", err)
	}
	return nil
}

// uniqueSlug appends a numeric suffix to base until no entry of the blog uses it.
func uniqueSlug(ctx context.Context, tx *sql.Tx, blogID, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var exists bool
		err := tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM entries WHERE blog_id = ? AND slug = ?)",
			blogID, slug).Scan(&exists)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (d *dbImpl) DeleteEntry(ctx context.Context, blogID string, id int64) error {
	return d.WithTx(func(tx *sql.Tx) error {
		return mustAffect(tx.ExecContext(ctx, "DELETE FROM entries WHERE blog_id = ? AND id = ?", blogID, id))
	})
}

func (d *dbImpl) ListRevisions(ctx context.Context, entryID int64) ([]domain.Revision, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT id, entry_id, author, diff, created FROM entry_revisions WHERE entry_id = ? ORDER BY id", entryID)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	revisions := []domain.Revision{}
	for rows.Next() {
		var r domain.Revision
		if err := rows.Scan(&r.ID, &r.EntryID, &r.Author, &r.Diff, &r.Created); err != nil {
			return nil, d.HandleError(err)
		}
		revisions = append(revisions, r)
	}
	return revisions, d.HandleError(rows.Err())
}
