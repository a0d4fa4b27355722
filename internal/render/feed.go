package render

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/plugin/trackback"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Feed is the RSS 2.0 flavor.
func Feed(pc *plugin.Context, entries []*domain.Entry) templ.Component {
	return component(func(_ context.Context, w *writer) {
		b := pc.Blog
		w.raw(xmlHeader)
		w.raw(`<rss version="2.0"><channel><title>`)
		w.text(b.Name)
		w.raw(`</title><link>`)
		w.text(b.URL.String())
		w.raw(`</link><description>`)
		w.text(b.Description)
		w.raw(`</description>`)
		if b.Locale != "" {
			w.raw(`<language>`)
			w.text(b.Locale)
			w.raw(`</language>`)
		}
		for _, e := range entries {
			link := b.EntryURL(e.Slug).String()
			w.raw(`<item><title>`)
			w.text(e.Title)
			w.raw(`</title><link>`)
			w.text(link)
			w.raw(`</link><guid isPermaLink="true">`)
			w.text(link)
			w.raw(`</guid><pubDate>`)
			w.text(e.Created.UTC().Format(http.TimeFormat))
			w.raw(`</pubDate>`)
			if e.Category != "" {
				w.raw(`<category>`)
				w.text(e.Category)
				w.raw(`</category>`)
			}
			w.raw(`<description>`)
			w.text(e.Description)
			w.raw(`</description></item>`)
		}
		w.raw(`</channel></rss>`)
	})
}

// TrackbackResponse answers a trackback ping with its return code and, on failure, the message.
func TrackbackResponse(pc *plugin.Context) templ.Component {
	return component(func(_ context.Context, w *writer) {
		code, _ := plugin.Get(pc, trackback.ReturnCodeKey)
		w.raw(xmlHeader)
		w.rawf("<response>\n<error>%d</error>\n", code)
		if msg, ok := plugin.Get(pc, trackback.MessageKey); ok && code != trackback.CodeSuccess {
			w.rawf("<message>%s</message>\n", msg)
		}
		w.raw("</response>\n")
	})
}
