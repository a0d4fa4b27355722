package impl

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
)

func (d *dbImpl) SaveMedia(ctx context.Context, m domain.MediaObject, digest, uploader string) (id int64, err error) {
	err = d.WithTx(func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO media(blog_id, name, mime_type, digest, size_bytes, url, uploaded_by) VALUES (?,?,?,?,?,?,?)",
			m.BlogID, m.Name, m.MimeType, digest, len(m.Bits), m.Url.String(), uploader)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err == nil {
		log.Debug().Str("blog", m.BlogID).Str("name", m.Name).Str("digest", digest).Msg("media saved")
	}
	return id, err
}
