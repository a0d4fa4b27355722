// Package render turns the state a plugin chain leaves in its context into a response body. Pages are templ
// components selected by the flavor of the request and the page chosen by the plugins.
package render

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/plugin/admin"
	"github.com/sidereusnuntius/gopress/internal/plugin/trackback"
)

const (
	ContentHTML = "text/html; charset=utf-8"
	ContentXML  = "text/xml; charset=utf-8"
	ContentRSS  = "application/rss+xml; charset=utf-8"
	ContentText = "text/plain; charset=utf-8"
)

// Renderer is shared by every request.
type Renderer struct {
	// Site is the installation name shown in page titles.
	Site string
}

func New(site string) *Renderer {
	return &Renderer{Site: site}
}

// Page returns the component answering the request and its content type.
func (r *Renderer) Page(pc *plugin.Context, entries []*domain.Entry) (templ.Component, string) {
	switch pc.Page() {
	case trackback.PageSuccess, trackback.PageFailure:
		return TrackbackResponse(pc), ContentXML
	}

	switch pc.Flavor {
	case config.RSS2:
		return Feed(pc, entries), ContentRSS
	case config.Text:
		return Text(entries), ContentText
	}

	body := r.body(pc, entries)
	return layout(r.Site, pc, body), ContentHTML
}

func (r *Renderer) body(pc *plugin.Context, entries []*domain.Entry) templ.Component {
	switch pc.Page() {
	case admin.PageLogin:
		return Login(pc)
	case admin.PageAdministration:
		return Dashboard(pc)
	case admin.PageEntries, admin.PageEntriesList:
		return EntryList(pc)
	case admin.PageEntry, admin.PageAddEntry:
		return EntryForm(pc)
	case admin.PageCategories, admin.PageCategory:
		return Categories(pc)
	case admin.PageProperties:
		return Properties(pc)
	case admin.PageUsers:
		return Users(pc)
	}
	return Blog(pc, entries)
}

// Write renders the page into w with the given status.
func (r *Renderer) Write(w http.ResponseWriter, status int, pc *plugin.Context, entries []*domain.Entry) error {
	c, contentType := r.Page(pc, entries)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	return c.Render(pc.Ctx(), w)
}

// writer collects the first write error so components can emit markup without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

// text writes s escaped.
func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// rawf formats with escaped string arguments.
func (w *writer) rawf(format string, args ...any) {
	for i, a := range args {
		if s, ok := a.(string); ok {
			args[i] = templ.EscapeString(s)
		}
	}
	w.raw(fmt.Sprintf(format, args...))
}

func (w *writer) child(ctx context.Context, c templ.Component) {
	if w.err == nil {
		w.err = c.Render(ctx, w.w)
	}
}

func component(fn func(ctx context.Context, w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		fn(ctx, w)
		return w.err
	})
}

func layout(site string, pc *plugin.Context, body templ.Component) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		title := site
		if pc.Blog != nil {
			title = pc.Blog.Name
		}
		w.raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
		w.text(title)
		w.raw(`</title>`)
		if pc.Blog != nil && pc.Blog.URL != nil {
			w.rawf(`<link rel="EditURI" type="application/rsd+xml" title="RSD" href="%s">`, pc.Blog.URL.JoinPath("rsd.xml").String())
			w.rawf(`<link rel="alternate" type="application/rss+xml" href="%s?flavor=rss2">`, pc.Blog.URL.String())
		}
		w.raw(`</head><body>`)
		for _, m := range pc.Messages() {
			w.raw(`<p class="message">`)
			w.text(m)
			w.raw(`</p>`)
		}
		w.child(ctx, body)
		w.raw(`</body></html>`)
	})
}
