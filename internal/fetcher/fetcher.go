// Package fetcher loads the entries and categories a public request asks for before the plugin chain runs.
package fetcher

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/service"
)

const owner = "fetcher"

// Request parameters.
const (
	ParamPermalink = "permalink"
	ParamCategory  = "category"
	ParamPage      = "page"
)

const (
	defaultPageSize = 10
	feedPageSize    = 15
)

var (
	// CategoryKey is the category the request is limited to, if any.
	CategoryKey   = plugin.NewKey[*domain.Category](owner, "category")
	CategoriesKey = plugin.NewKey[[]domain.Category](owner, "categories")
	// PermalinkKey is set when the request named a single entry.
	PermalinkKey = plugin.NewKey[string](owner, "permalink")
	PageKey      = plugin.NewKey[int](owner, "page")
)

// Fetcher reads published entries through the service. It is safe for concurrent use.
type Fetcher struct {
	service service.Service
}

func New(s service.Service) *Fetcher {
	return &Fetcher{service: s}
}

// FetchEntries returns the entry named by the permalink parameter, or a page of published entries, optionally
// limited to the category parameter. An unknown permalink or category yields no entries rather than an error.
func (f *Fetcher) FetchEntries(pc *plugin.Context) ([]*domain.Entry, error) {
	if permalink := pc.Param(ParamPermalink); permalink != "" {
		plugin.Set(pc, PermalinkKey, permalink)
		e, err := f.permalink(pc, permalink)
		if errors.Is(err, service.ErrNotFound) {
			log.Debug().Str("blog", pc.Blog.ID).Str("permalink", permalink).Msg("no entry for permalink")
			return []*domain.Entry{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("fetch entry %q: %w", permalink, err)
		}
		if e.Status != domain.Published {
			return []*domain.Entry{}, nil
		}
		return []*domain.Entry{&e}, nil
	}

	q := db.EntryQuery{Status: domain.Published, Page: 1, PageSize: pageSize(pc)}
	if p, err := strconv.Atoi(pc.Param(ParamPage)); err == nil && p > 0 {
		q.Page = p
	}
	plugin.Set(pc, PageKey, q.Page)

	if name := strings.Trim(pc.Param(ParamCategory), "/"); name != "" {
		c, err := f.service.CategoryByName(pc.Ctx(), pc.Blog.ID, name)
		if errors.Is(err, service.ErrNotFound) {
			log.Debug().Str("blog", pc.Blog.ID).Str("category", name).Msg("unknown category")
			return []*domain.Entry{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("fetch category %q: %w", name, err)
		}
		plugin.Set(pc, CategoryKey, &c)
		q.CategoryID = c.ID
	}

	list, err := f.service.Entries(pc.Ctx(), pc.Blog.ID, q)
	if err != nil {
		return nil, fmt.Errorf("fetch entries: %w", err)
	}
	entries := make([]*domain.Entry, len(list))
	for i := range list {
		entries[i] = &list[i]
	}
	return entries, nil
}

// permalink accepts an entry slug or its numeric id.
func (f *Fetcher) permalink(pc *plugin.Context, permalink string) (domain.Entry, error) {
	permalink = strings.Trim(permalink, "/")
	if id, err := strconv.ParseInt(permalink, 10, 64); err == nil {
		return f.service.Entry(pc.Ctx(), pc.Blog.ID, id)
	}
	return f.service.EntryBySlug(pc.Ctx(), pc.Blog.ID, permalink)
}

// FetchCategories stores every category of the blog in the context and returns them.
func (f *Fetcher) FetchCategories(pc *plugin.Context) ([]domain.Category, error) {
	categories, err := f.service.Categories(pc.Ctx(), pc.Blog.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	plugin.Set(pc, CategoriesKey, categories)
	return categories, nil
}

// pageSize is the blog's display count, with feeds getting a longer page when the blog sets none.
func pageSize(pc *plugin.Context) int {
	if pc.Blog.DisplayEntries > 0 {
		return pc.Blog.DisplayEntries
	}
	if pc.Flavor == config.RSS2 {
		return feedPageSize
	}
	return defaultPageSize
}
