package render

import (
	"context"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/fetcher"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/plugin/comment"
	"github.com/sidereusnuntius/gopress/internal/plugin/moderation"
)

const dateLayout = "2006-01-02 15:04"

// visible reports whether a response is shown to readers. Moderated blogs only show approved responses.
func visible(blog *domain.Blog, r domain.ResponseCore) bool {
	if r.Status == domain.StatusSpam {
		return false
	}
	return !blog.BoolProperty(domain.PropModeration) || r.Status == domain.StatusApproved
}

// Blog is the public page: a list of entries, or a single entry with its responses and comment form.
func Blog(pc *plugin.Context, entries []*domain.Entry) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<header><h1>`)
		w.rawf(`<a href="%s">`, pc.Blog.URL.String())
		w.text(pc.Blog.Name)
		w.raw(`</a></h1><p>`)
		w.text(pc.Blog.Description)
		w.raw(`</p></header>`)

		if c, ok := plugin.Get(pc, fetcher.CategoryKey); ok && c != nil {
			w.raw(`<h2 class="category">`)
			w.text(c.DisplayName())
			w.raw(`</h2>`)
		}
		if len(entries) == 0 {
			w.raw(`<p>No entries.</p>`)
		}
		_, single := plugin.Get(pc, fetcher.PermalinkKey)
		for _, e := range entries {
			article(w, pc.Blog, e)
			if single {
				responses(w, pc.Blog, e)
				commentForm(w, pc, e)
			}
		}
		if !single && len(entries) > 0 {
			page, _ := plugin.Get(pc, fetcher.PageKey)
			if page < 1 {
				page = 1
			}
			w.raw(`<nav>`)
			if page > 1 {
				w.rawf(`<a rel="prev" href="?page=%d">Newer</a> `, page-1)
			}
			if len(entries) >= pc.Blog.DisplayEntries && pc.Blog.DisplayEntries > 0 {
				w.rawf(`<a rel="next" href="?page=%d">Older</a>`, page+1)
			}
			w.raw(`</nav>`)
		}
	})
}

func article(w *writer, blog *domain.Blog, e *domain.Entry) {
	w.raw(`<article><h2>`)
	w.rawf(`<a href="%s">`, blog.EntryURL(e.Slug).String())
	w.text(e.Title)
	w.raw(`</a></h2><p class="meta">`)
	w.text(e.Created.Format(dateLayout))
	if e.Author != "" {
		w.raw(` by `)
		w.text(e.Author)
	}
	if e.Category != "" {
		w.raw(` in `)
		w.rawf(`<a href="%s">`, blog.URL.JoinPath("categories", e.Category).String())
		w.text(e.Category)
		w.raw(`</a>`)
	}
	w.raw(`</p><div class="content">`)
	// Entry descriptions are authored markup.
	w.raw(e.Description)
	w.raw(`</div></article>`)
}

func responses(w *writer, blog *domain.Blog, e *domain.Entry) {
	w.raw(`<section id="comments"><h3>Comments</h3>`)
	for _, c := range e.Comments {
		if !visible(blog, c.ResponseCore) {
			continue
		}
		// Submitted names and addresses are stored escaped.
		w.rawf(`<div class="comment" id="comment-%d"><p class="meta">`, c.ID)
		if c.AuthorURL != "" {
			w.raw(`<a rel="nofollow" href="` + c.AuthorURL + `">` + c.Author + `</a>`)
		} else {
			w.raw(c.Author)
		}
		w.raw(` `)
		w.text(c.Created.Format(dateLayout))
		w.raw(`</p><p>`)
		// Comment content is escaped on submission before autoformat adds line breaks.
		w.raw(c.Content)
		w.raw(`</p></div>`)
	}
	w.raw(`</section>`)

	w.raw(`<section id="trackbacks"><h3>Trackbacks</h3>`)
	w.rawf(`<p class="trackback-url">%s?tb=y&amp;entry_id=%d</p>`, blog.URL.String(), e.ID)
	for _, t := range e.Trackbacks {
		if visible(blog, t.ResponseCore) {
			link(w, t.URL, t.Title, t.BlogName, t.Excerpt)
		}
	}
	for _, p := range e.Pingbacks {
		if visible(blog, p.ResponseCore) {
			link(w, p.SourceURI, p.Title, p.BlogName, p.Excerpt)
		}
	}
	w.raw(`</section>`)
}

// link shows a trackback or pingback. Title and site are stored escaped; href is escaped here.
func link(w *writer, href, title, site, excerpt string) {
	w.raw(`<div class="trackback">`)
	w.rawf(`<a rel="nofollow" href="%s">`, href)
	w.raw(title + `</a> ` + site)
	w.raw(`<p>`)
	w.text(excerpt)
	w.raw(`</p></div>`)
}

func commentForm(w *writer, pc *plugin.Context, e *domain.Entry) {
	enabled, ok := plugin.Get(pc, comment.EnabledKey)
	if !ok || !enabled || !e.AllowComments {
		return
	}
	author, _ := plugin.Get(pc, comment.AuthorKey)
	email, _ := plugin.Get(pc, comment.AuthorEmailKey)
	site, _ := plugin.Get(pc, comment.AuthorURLKey)
	remember, _ := plugin.Get(pc, comment.RememberMeKey)

	w.rawf(`<form method="post" action="%s">`, pc.Blog.EntryURL(e.Slug).String())
	w.raw(`<input type="hidden" name="comment" value="y">`)
	w.rawf(`<input type="hidden" name="entry_id" value="%s">`, strconv.FormatInt(e.ID, 10))
	w.rawf(`<label>Name <input name="author" value="%s"></label>`, author)
	w.rawf(`<label>E-mail <input name="authorEmail" value="%s"></label>`, email)
	w.rawf(`<label>Site <input name="authorURL" value="%s"></label>`, site)
	w.raw(`<textarea name="commentText"></textarea>`)
	if c, ok := plugin.Get(pc, moderation.ChallengeKey); ok {
		w.rawf(`<label>What is %d %s %d? <input name="mathAnswerCheck"></label>`, c.Value1, c.Operator, c.Value2)
	}
	checked := ""
	if remember {
		checked = " checked"
	}
	w.rawf(`<label><input type="checkbox" name="remember" value="y"%s> Remember me</label>`, checked)
	w.raw(`<button type="submit">Comment</button></form>`)
}

// Text is the plain text flavor: one entry per block.
func Text(entries []*domain.Entry) templ.Component {
	return component(func(_ context.Context, w *writer) {
		for _, e := range entries {
			w.raw(e.Title + "\n" + e.Created.Format(time.RFC1123) + "\n\n" + e.Description + "\n\n")
		}
	})
}
