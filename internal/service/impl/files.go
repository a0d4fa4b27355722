package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/storage"
)

// SaveMedia stores the object under <blog>/<digest><ext> and serves it from /resources/. An identical upload reuses
// the stored file.
func (s *AppService) SaveMedia(ctx context.Context, blog *domain.Blog, m domain.MediaObject, uploader string) (*url.URL, error) {
	if len(m.Bits) == 0 {
		return nil, fmt.Errorf("%w: empty media object", service.ErrValidationFailed)
	}
	mimeType := strings.ToLower(strings.TrimSpace(m.MimeType))
	if accepted := blog.ListProperty(domain.PropAcceptedTypes); !slices.Contains(accepted, mimeType) {
		return nil, fmt.Errorf("%w: MIME type not accepted. Received MIME type: %s", service.ErrValidationFailed, m.MimeType)
	}

	hasher := sha256.New()
	hasher.Write(m.Bits)
	digest := hex.EncodeToString(hasher.Sum(nil))

	ext := path.Ext(m.Name)
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(mimeType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	p := path.Join(blog.ID, digest+ext)

	err := s.Storage.Create(bytes.NewReader(m.Bits), p)
	created := err == nil
	if err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return nil, fmt.Errorf("%w: %w", service.ErrStorageFailure, err)
	}

	m.BlogID = blog.ID
	m.MimeType = mimeType
	m.Url = s.Config.Url.JoinPath("resources", blog.ID, digest+ext)
	if _, err = s.DB.SaveMedia(ctx, m, digest, uploader); err != nil {
		if created {
			if err := s.Storage.Delete(p); err != nil {
				log.Error().
					Str("path", p).
					Str("type", mimeType).
					Err(err).
					Msg("error when trying to delete file after failed transaction")
			}
		}
		return nil, service.FromDB(err, "media object")
	}
	return m.Url, nil
}
