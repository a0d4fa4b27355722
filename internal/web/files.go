package web

import (
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// GetResource serves a media object uploaded through the XML-RPC interface.
func GetResource(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := path.Join(chi.URLParam(r, "blogID"), chi.URLParam(r, "name"))
		file, err := h.storage.Open(p)
		if err != nil {
			code := GetCode(err)
			if code == http.StatusInternalServerError {
				log.Error().Err(err).Str("path", p).Msg("failed to open resource")
			}
			http.Error(w, http.StatusText(code), code)
			return
		}

		contentType := mime.TypeByExtension(path.Ext(p))
		if contentType == "" {
			contentType = http.DetectContentType(file)
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.Write(file)
	}
}
