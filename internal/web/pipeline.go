package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/fetcher"
	"github.com/sidereusnuntius/gopress/internal/plugin"
)

type key struct{}

// GetBlog returns the blog loaded by BlogMiddleware.
func GetBlog(ctx context.Context) (*domain.Blog, bool) {
	b, ok := ctx.Value(key{}).(*domain.Blog)
	return b, ok
}

// BlogMiddleware loads the snapshot of the blog named in the path.
func BlogMiddleware(h *Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "blogID")
			blog, err := h.service.Blog(r.Context(), id)
			if err != nil {
				log.Debug().Err(err).Str("blog", id).Msg("failed to load blog")
				code := GetCode(err)
				http.Error(w, http.StatusText(code), code)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), key{}, blog)))
		})
	}
}

// ServeBlog runs the public pipeline: fetch, plugin chain, cleanup, render. The entries and categories paths are
// handed to the fetcher as the permalink and category parameters.
func ServeBlog(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, _ := GetBlog(r.Context())

		q := r.URL.Query()
		if slug := chi.URLParam(r, "slug"); slug != "" {
			q.Set(fetcher.ParamPermalink, slug)
		}
		if category := chi.URLParam(r, "category"); category != "" {
			q.Set(fetcher.ParamCategory, category)
		}
		r.URL.RawQuery = q.Encode()

		pc := h.context(w, r, blog)
		entries, err := h.fetcher.FetchEntries(pc)
		if err == nil {
			_, err = h.fetcher.FetchCategories(pc)
		}
		if err != nil {
			log.Error().Err(err).Str("blog", blog.ID).Msg("failed to fetch entries")
			code := GetCode(err)
			http.Error(w, http.StatusText(code), code)
			return
		}

		h.run(w, pc, h.chain(blog, pc.Flavor), entries)
	}
}

// ServeAdmin runs the administration pipeline. Its plugins load what they edit themselves.
func ServeAdmin(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, _ := GetBlog(r.Context())
		pc := h.context(w, r, blog)
		pc.Flavor = config.HTML

		names := blog.ListProperty(domain.PropAdminPluginChain)
		if len(names) == 0 {
			names = h.Config.AdminChain
		}
		h.run(w, pc, h.registry.Chain(names), []*domain.Entry{})
	}
}

func (h *Handler) context(w http.ResponseWriter, r *http.Request, blog *domain.Blog) *plugin.Context {
	flavor := r.URL.Query().Get(paramFlavor)
	switch flavor {
	case config.HTML, config.RSS2, config.Text:
	default:
		flavor = config.HTML
	}
	pc := plugin.NewContext(w, r, blog, flavor)
	if h.SessionManager != nil {
		pc.Session = h.SessionManager.Load(r)
	}
	return pc
}

// chain is the blog's own chain for the html flavor, or the configured default for the flavor.
func (h *Handler) chain(blog *domain.Blog, flavor string) *plugin.Chain {
	names := h.Config.Chains[flavor]
	if flavor == config.HTML {
		if own := blog.ListProperty(domain.PropPluginChain); len(own) != 0 {
			names = own
		}
	}
	return h.registry.Chain(names)
}

func (h *Handler) run(w http.ResponseWriter, pc *plugin.Context, chain *plugin.Chain, entries []*domain.Entry) {
	entries, err := chain.Run(pc, entries)
	if err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Strs("chain", chain.Names()).Msg("plugin chain aborted")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if to := pc.RedirectTo(); to != "" {
		http.Redirect(w, pc.Request, to, http.StatusSeeOther)
		return
	}

	if err = h.renderer.Write(w, http.StatusOK, pc, entries); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Str("page", pc.Page()).Msg("failed to render page")
	}
}
