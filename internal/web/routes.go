package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/sidereusnuntius/gopress/internal/wellknown"
)

func (h *Handler) Mount(r chi.Router) {
	r.Route(BlogPath, func(r chi.Router) {
		r.Use(BlogMiddleware(h))
		r.Handle("/admin", ServeAdmin(h))
		r.Handle("/admin/", ServeAdmin(h))
		r.Get("/rsd.xml", wellknown.RSDEndpoint(h.service, h.Config.Name, h.Config.Url))
		r.Handle("/entries/{slug}", ServeBlog(h))
		r.Handle("/categories/{category}", ServeBlog(h))
		r.Handle("/", ServeBlog(h))
	})

	r.Handle(XmlrpcPath, h.xmlrpc)
	r.Get(ResourcesPath+"/{blogID}/{name}", GetResource(h))

	h.MountStaticRoutes(r)
}

func (h *Handler) MountStaticRoutes(r chi.Router) {
	wd, _ := os.Getwd()
	wd = filepath.Join(wd, h.Config.StaticDir)
	f := os.DirFS(wd)

	fileServer := http.FileServer(http.FS(f))
	r.Handle("/static/{name}", http.StripPrefix(
		"/static/",
		fileServer,
	))
}
