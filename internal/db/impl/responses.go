package impl

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sidereusnuntius/gopress/internal/domain"
)

const responseColumns = `id, kind, blog_id, entry_id, parent_id, ip, status, created, author, author_email, author_url,
	content, title, excerpt, url, blog_name, source_uri, target_uri, metadata`

// responseRow is the union of the columns of every response kind.
type responseRow struct {
	kind   string
	core   domain.ResponseCore
	parent sql.NullInt64

	author, authorEmail, authorURL, content string
	title, excerpt, url, blogName          string
	sourceURI, targetURI                   string
}

func scanResponse(row scanner) (responseRow, error) {
	var (
		r        responseRow
		status   string
		metadata string
	)
	err := row.Scan(&r.core.ID, &r.kind, &r.core.BlogID, &r.core.EntryID, &r.parent, &r.core.IP, &status,
		&r.core.Created, &r.author, &r.authorEmail, &r.authorURL, &r.content, &r.title, &r.excerpt, &r.url,
		&r.blogName, &r.sourceURI, &r.targetURI, &metadata)
	if err != nil {
		return responseRow{}, err
	}
	r.core.Status = domain.ResponseStatus(status)
	r.core.Metadata = decodeMetadata(metadata)
	return r, nil
}

func (r responseRow) comment() domain.Comment {
	return domain.Comment{
		ResponseCore: r.core,
		ParentID:     int64Ptr(r.parent),
		Author:       r.author,
		AuthorEmail:  r.authorEmail,
		AuthorURL:    r.authorURL,
		Content:      r.content,
	}
}

func (r responseRow) trackback() domain.Trackback {
	return domain.Trackback{
		ResponseCore: r.core,
		Title:        r.title,
		Excerpt:      r.excerpt,
		URL:          r.url,
		BlogName:     r.blogName,
	}
}

func (r responseRow) pingback() domain.Pingback {
	return domain.Pingback{
		ResponseCore: r.core,
		Title:        r.title,
		Excerpt:      r.excerpt,
		SourceURI:    r.sourceURI,
		TargetURI:    r.targetURI,
		BlogName:     r.blogName,
	}
}

// loadResponses fills the response collections of e, oldest first.
func (d *dbImpl) loadResponses(ctx context.Context, e *domain.Entry) error {
	rows, err := d.db.QueryContext(ctx,
		"SELECT "+responseColumns+" FROM responses WHERE entry_id = ? ORDER BY created, id", e.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	e.Comments, e.Trackbacks, e.Pingbacks = []domain.Comment{}, []domain.Trackback{}, []domain.Pingback{}
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return err
		}
		switch r.kind {
		case domain.KindComment.String():
			e.Comments = append(e.Comments, r.comment())
		case domain.KindTrackback.String():
			e.Trackbacks = append(e.Trackbacks, r.trackback())
		case domain.KindPingback.String():
			e.Pingbacks = append(e.Pingbacks, r.pingback())
		}
	}
	return rows.Err()
}

func (d *dbImpl) insertResponse(ctx context.Context, kind domain.ResponseKind, core *domain.ResponseCore, r responseRow) error {
	metadata, err := encodeMetadata(core.Metadata)
	if err != nil {
		return err
	}
	if core.Status == "" {
		core.Status = domain.StatusNew
	}
	if core.Created.IsZero() {
		core.Created = time.Now().UTC()
	}

	unlock := d.lockEntry(core.EntryID)
	defer unlock()

	return d.WithTx(func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO responses(
				kind, blog_id, entry_id, parent_id, ip, status, created, author, author_email, author_url,
				content, title, excerpt, url, blog_name, source_uri, target_uri, metadata
			) SELECT ?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?
			WHERE EXISTS(SELECT 1 FROM entries WHERE blog_id = ? AND id = ?)`,
			kind.String(), core.BlogID, core.EntryID, r.parent, core.IP, string(core.Status), core.Created,
			r.author, r.authorEmail, r.authorURL, r.content, r.title, r.excerpt, r.url, r.blogName,
			r.sourceURI, r.targetURI, metadata, core.BlogID, core.EntryID)
		if err = mustAffect(res, err); err != nil {
			return err
		}
		core.ID, err = res.LastInsertId()
		return err
	})
}

func (d *dbImpl) SaveComment(ctx context.Context, c *domain.Comment) error {
	return d.insertResponse(ctx, domain.KindComment, &c.ResponseCore, responseRow{
		parent:      nullInt64(c.ParentID),
		author:      c.Author,
		authorEmail: c.AuthorEmail,
		authorURL:   c.AuthorURL,
		content:     c.Content,
	})
}

func (d *dbImpl) SaveTrackback(ctx context.Context, t *domain.Trackback) error {
	return d.insertResponse(ctx, domain.KindTrackback, &t.ResponseCore, responseRow{
		title:    t.Title,
		excerpt:  t.Excerpt,
		url:      t.URL,
		blogName: t.BlogName,
	})
}

func (d *dbImpl) SavePingback(ctx context.Context, p *domain.Pingback) error {
	return d.insertResponse(ctx, domain.KindPingback, &p.ResponseCore, responseRow{
		title:     p.Title,
		excerpt:   p.Excerpt,
		blogName:  p.BlogName,
		sourceURI: p.SourceURI,
		targetURI: p.TargetURI,
	})
}

func (d *dbImpl) loadResponse(ctx context.Context, kind domain.ResponseKind, blogID string, id int64) (responseRow, error) {
	r, err := scanResponse(d.db.QueryRowContext(ctx,
		"SELECT "+responseColumns+" FROM responses WHERE kind = ? AND blog_id = ? AND id = ?",
		kind.String(), blogID, id))
	return r, d.HandleError(err)
}

func (d *dbImpl) LoadComment(ctx context.Context, blogID string, id int64) (domain.Comment, error) {
	r, err := d.loadResponse(ctx, domain.KindComment, blogID, id)
	return r.comment(), err
}

func (d *dbImpl) LoadTrackback(ctx context.Context, blogID string, id int64) (domain.Trackback, error) {
	r, err := d.loadResponse(ctx, domain.KindTrackback, blogID, id)
	return r.trackback(), err
}

func (d *dbImpl) LoadPingback(ctx context.Context, blogID string, id int64) (domain.Pingback, error) {
	r, err := d.loadResponse(ctx, domain.KindPingback, blogID, id)
	return r.pingback(), err
}

func (d *dbImpl) FindPingback(ctx context.Context, blogID, source, target string) (domain.Pingback, error) {
	r, err := scanResponse(d.db.QueryRowContext(ctx,
		"SELECT "+responseColumns+" FROM responses WHERE kind = 'pingback' AND blog_id = ? AND source_uri = ? AND target_uri = ?",
		blogID, source, target))
	if err != nil {
		return domain.Pingback{}, d.HandleError(err)
	}
	return r.pingback(), nil
}

func (d *dbImpl) RecentComments(ctx context.Context, blogID string, limit int) ([]domain.Comment, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT "+responseColumns+" FROM responses WHERE kind = 'comment' AND blog_id = ? ORDER BY created DESC, id DESC LIMIT ?",
		blogID, limit)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, d.HandleError(err)
		}
		comments = append(comments, r.comment())
	}
	return comments, d.HandleError(rows.Err())
}

func (d *dbImpl) SetResponseStatus(ctx context.Context, kind domain.ResponseKind, blogID string, id int64, status domain.ResponseStatus) error {
	switch status {
	case domain.StatusNew, domain.StatusApproved, domain.StatusSpam:
	default:
		return fmt.Errorf("unknown response status %q", status)
	}
	return d.WithTx(func(tx *sql.Tx) error {
		return mustAffect(tx.ExecContext(ctx,
			"UPDATE responses SET status = ? WHERE kind = ? AND blog_id = ? AND id = ?",
			string(status), kind.String(), blogID, id))
	})
}

func (d *dbImpl) DeleteResponse(ctx context.Context, kind domain.ResponseKind, blogID string, id int64) error {
	return d.WithTx(func(tx *sql.Tx) error {
		return mustAffect(tx.ExecContext(ctx,
			"DELETE FROM responses WHERE kind = ? AND blog_id = ? AND id = ?", kind.String(), blogID, id))
	})
}
