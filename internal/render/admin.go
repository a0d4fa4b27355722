package render

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/plugin/admin"
)

func form(w *writer, pc *plugin.Context, action string) {
	w.rawf(`<form method="post" action="%s">`, pc.Blog.AdminURL().String())
	w.rawf(`<input type="hidden" name="action" value="%s">`, action)
}

func field(w *writer, label, name, value string) {
	w.rawf(`<label>%s <input name="%s" value="%s"></label>`, label, name, value)
}

func checkbox(w *writer, label, name string, on bool) {
	checked := ""
	if on {
		checked = " checked"
	}
	w.rawf(`<label><input type="checkbox" name="%s" value="true"%s> %s</label>`, name, checked, label)
}

func adminMenu(w *writer, pc *plugin.Context) {
	base := pc.Blog.AdminURL().String()
	w.raw(`<nav class="admin">`)
	for _, item := range []struct{ page, label string }{
		{admin.PageEntries, "Entries"},
		{admin.PageCategories, "Categories"},
		{admin.PageProperties, "Properties"},
		{admin.PageUsers, "Users"},
	} {
		w.rawf(`<a href="%s?action=page&amp;page=%s">%s</a> `, base, item.page, item.label)
	}
	w.rawf(`<a href="%s?action=logout">Log out</a></nav>`, base)
}

func Login(pc *plugin.Context) templ.Component {
	return component(func(_ context.Context, w *writer) {
		w.raw(`<h1>Log in</h1>`)
		form(w, pc, "login")
		field(w, "Username", "username", "")
		w.raw(`<label>Password <input type="password" name="password"></label>`)
		w.raw(`<button type="submit">Log in</button></form>`)
	})
}

func Dashboard(pc *plugin.Context) templ.Component {
	return component(func(_ context.Context, w *writer) {
		adminMenu(w, pc)
		w.raw(`<h1>`)
		w.text(pc.Blog.Name)
		w.raw(`</h1><p>Logged in as `)
		w.text(pc.Username)
		w.raw(`</p>`)
	})
}

func EntryList(pc *plugin.Context) templ.Component {
	return component(func(_ context.Context, w *writer) {
		adminMenu(w, pc)
		w.raw(`<h1>Entries</h1>`)
		if c, ok := plugin.Get(pc, admin.EntriesCategoryKey); ok {
			w.raw(`<h2>`)
			w.text(c.DisplayName())
			w.raw(`</h2>`)
		}
		base := pc.Blog.AdminURL().String()
		w.rawf(`<p><a href="%s?action=new-blog-entry">New entry</a></p>`, base)
		form(w, pc, "edit-blog-entries")
		field(w, "Category id", "blog-category-id", "")
		w.raw(`<button type="submit">List</button></form>`)

		list, _ := plugin.Get(pc, admin.EntriesListKey)
		w.raw(`<table>`)
		for _, e := range list {
			w.raw(`<tr><td>`)
			w.rawf(`<a href="%s?action=edit-blog-entry&amp;blog-entry-id=%d">`, base, e.ID)
			w.text(e.Title)
			w.raw(`</a></td><td>`)
			w.text(string(e.Status))
			w.raw(`</td><td>`)
			w.text(e.Created.Format(dateLayout))
			w.raw(`</td></tr>`)
		}
		w.raw(`</table>`)
	})
}

// EntryForm edits an existing entry, or adds one when the context holds none.
func EntryForm(pc *plugin.Context) templ.Component {
	return component(func(_ context.Context, w *writer) {
		adminMenu(w, pc)
		e, ok := plugin.Get(pc, admin.EntryKey)
		if !ok || e == nil {
			e = &domain.Entry{Status: domain.Draft, AllowComments: true, AllowTrackbacks: true, AllowPingbacks: true}
		}
		action := "add-blog-entry"
		if e.ID != 0 {
			action = "update-blog-entry"
		}

		form(w, pc, action)
		if e.ID != 0 {
			w.rawf(`<input type="hidden" name="blog-entry-id" value="%d">`, e.ID)
		}
		field(w, "Title", "blog-entry-title", e.Title)
		w.raw(`<textarea name="blog-entry-description">`)
		w.text(e.Description)
		w.raw(`</textarea>`)
		category := ""
		if e.CategoryID != 0 {
			category = strconv.FormatInt(e.CategoryID, 10)
		}
		field(w, "Category id", "blog-category-id", category)
		w.raw(`<select name="blog-entry-status">`)
		for _, s := range []domain.Status{domain.Draft, domain.Published} {
			selected := ""
			if e.Status == s {
				selected = " selected"
			}
			w.rawf(`<option value="%s"%s>%s</option>`, string(s), selected, string(s))
		}
		w.raw(`</select>`)
		published := ""
		if !e.Created.IsZero() {
			published = e.Created.UTC().Format(admin.PublishLayout)
		}
		field(w, "Publish", "blog-entry-publish-datetime", published)
		checkbox(w, "Disable comments", "comments-disabled", !e.AllowComments)
		checkbox(w, "Disable trackbacks", "trackbacks-disabled", !e.AllowTrackbacks)
		checkbox(w, "Disable pingbacks", "pingbacks-disabled", !e.AllowPingbacks)
		w.raw(`<textarea name="blog-entry-meta-data">`)
		w.text(admin.FormatMetadata(e.Metadata))
		w.raw(`</textarea><button type="submit">Save</button></form>`)

		if e.ID == 0 {
			return
		}
		form(w, pc, "delete-blog-entry")
		w.rawf(`<input type="hidden" name="blog-entry-id" value="%d">`, e.ID)
		w.raw(`<button type="submit">Delete</button></form>`)

		moderationList(w, pc, e, "comments", "blog-comment-id", len(e.Comments), func(i int) (int64, string, domain.ResponseStatus) {
			c := e.Comments[i]
			return c.ID, c.Author + ": " + c.Content, c.Status
		})
		moderationList(w, pc, e, "trackbacks", "blog-trackback-id", len(e.Trackbacks), func(i int) (int64, string, domain.ResponseStatus) {
			t := e.Trackbacks[i]
			return t.ID, t.Title + " " + t.URL, t.Status
		})
		moderationList(w, pc, e, "pingbacks", "blog-pingback-id", len(e.Pingbacks), func(i int) (int64, string, domain.ResponseStatus) {
			p := e.Pingbacks[i]
			return p.ID, p.Title + " " + p.SourceURI, p.Status
		})
	})
}

// moderationList lists the responses of one kind with approve and delete buttons.
func moderationList(w *writer, pc *plugin.Context, e *domain.Entry, kind, param string, n int,
	item func(i int) (int64, string, domain.ResponseStatus)) {
	if n == 0 {
		return
	}
	w.rawf(`<h2>%s</h2>`, strings.ToUpper(kind[:1])+kind[1:])
	w.rawf(`<form method="post" action="%s">`, pc.Blog.AdminURL().String())
	w.rawf(`<input type="hidden" name="blog-entry-id" value="%d">`, e.ID)
	for i := range n {
		id, summary, status := item(i)
		w.rawf(`<label><input type="checkbox" name="%s" value="%d"> `, param, id)
		w.text(clip(summary))
		w.rawf(` (%s)</label>`, string(status))
	}
	w.rawf(`<button name="action" value="approve-blog-%s">Approve</button>`, kind)
	w.rawf(`<button name="action" value="delete-blog-%s">Delete</button></form>`, kind)
}

func clip(s string) string {
	if r := []rune(s); len(r) > 80 {
		return string(r[:80]) + "..."
	}
	return s
}

func Categories(pc *plugin.Context) templ.Component {
	return component(func(_ context.Context, w *writer) {
		adminMenu(w, pc)
		w.raw(`<h1>Categories</h1>`)
		c, editing := plugin.Get(pc, admin.CategoryKey)
		action := "add-blog-category"
		if editing {
			action = "update-blog-category"
		}
		form(w, pc, action)
		if editing {
			w.rawf(`<input type="hidden" name="blog-category-id" value="%d">`, c.ID)
		}
		parent := ""
		if c.ParentID != nil {
			parent = strconv.FormatInt(*c.ParentID, 10)
		}
		field(w, "Name", "blog-category-name", c.Name)
		field(w, "Description", "blog-category-description", c.Description)
		field(w, "Parent id", "blog-category-parent-id", parent)
		metadata, _ := plugin.Get(pc, admin.CategoryMetadataKey)
		w.raw(`<textarea name="blog-category-meta-data">`)
		w.text(metadata)
		w.raw(`</textarea><button type="submit">Save</button></form>`)

		categories, _ := plugin.Get(pc, admin.CategoriesKey)
		base := pc.Blog.AdminURL().String()
		w.raw(`<ul>`)
		for _, c := range categories {
			w.rawf(`<li><a href="%s?action=edit-blog-category&amp;blog-category-id=%d">`, base, c.ID)
			w.text(c.Name)
			w.raw(`</a> `)
			w.rawf(`<a href="%s?action=delete-blog-category&amp;blog-category-id=%d">delete</a></li>`, base, c.ID)
		}
		w.raw(`</ul>`)
	})
}

func Properties(pc *plugin.Context) templ.Component {
	return component(func(_ context.Context, w *writer) {
		adminMenu(w, pc)
		b := pc.Blog
		if saved, ok := plugin.Get(pc, admin.SavedBlogKey); ok && saved != nil {
			b = saved
		}
		w.raw(`<h1>Properties</h1>`)
		form(w, pc, "edit-blog-properties")
		field(w, "Name", "blog-name", b.Name)
		field(w, "Description", "blog-description", b.Description)
		field(w, "Owner", "blog-owner", b.Owner)
		field(w, "Owner e-mail", "blog-owner-email", b.OwnerEmail)
		field(w, "Locale", "blog-locale", b.Locale)
		field(w, "Entries per page", "blog-display-entries", strconv.Itoa(b.DisplayEntries))
		checkbox(w, "Comments", "blog-comments-enabled", b.CommentsEnabled)
		checkbox(w, "Trackbacks", "blog-trackbacks-enabled", b.TrackbacksEnabled)
		checkbox(w, "Pingbacks", "blog-pingbacks-enabled", b.PingbacksEnabled)
		checkbox(w, "E-mail", "blog-email-enabled", b.EmailEnabled)
		checkbox(w, "XML-RPC", "xmlrpc-enabled", b.XmlrpcEnabled)
		checkbox(w, "Comment moderation", "comment-moderation-enabled", b.BoolProperty(domain.PropModeration))
		field(w, "Plugin chain", "blog-plugin-chain", b.Property(domain.PropPluginChain))
		field(w, "Admin plugin chain", "blog-admin-plugin-chain", b.Property(domain.PropAdminPluginChain))
		field(w, "Ping urls", "blog-ping-urls", b.Property(domain.PropPingURLs))
		w.raw(`<button type="submit">Save</button></form>`)

		w.raw(`<h2>All properties</h2>`)
		if v, ok := plugin.Get(pc, admin.PropertyKey); ok {
			w.raw(`<p class="property">`)
			w.text(v)
			w.raw(`</p>`)
		}
		form(w, pc, "set-blog-property")
		field(w, "Property", "blog-property-name", "")
		field(w, "Value", "blog-property-value", "")
		w.raw(`<button type="submit">Set</button></form><dl>`)
		names := make([]string, 0, len(b.Properties))
		for k := range b.Properties {
			names = append(names, k)
		}
		slices.Sort(names)
		for _, k := range names {
			w.raw(`<dt>`)
			w.text(k)
			w.raw(`</dt><dd>`)
			w.text(b.Properties[k])
			w.raw(`</dd>`)
		}
		w.raw(`</dl>`)
	})
}

func Users(pc *plugin.Context) templ.Component {
	return component(func(_ context.Context, w *writer) {
		adminMenu(w, pc)
		w.raw(`<h1>Users</h1>`)
		users, _ := plugin.Get(pc, admin.UsersKey)
		w.raw(`<table>`)
		for _, u := range users {
			w.raw(`<tr><td>`)
			w.text(u.Login)
			w.raw(`</td><td>`)
			w.text(u.Name)
			w.raw(`</td><td>`)
			w.text(strings.Join(u.Permissions, ", "))
			w.rawf(`</td><td><a href="%s?action=delete-blog-user&amp;blog-user-id=%s">delete</a></td></tr>`,
				pc.Blog.AdminURL().String(), u.Login)
		}
		w.raw(`</table>`)

		form(w, pc, "add-blog-user")
		field(w, "Login", "blog-user-id", "")
		field(w, "Name", "blog-user-name", "")
		field(w, "E-mail", "blog-user-email", "")
		w.raw(`<label>Password <input type="password" name="blog-user-password"></label>`)
		w.raw(`<label>Again <input type="password" name="blog-user-password-check"></label>`)
		w.raw(`<button type="submit">Add</button></form>`)

		w.rawf(`<form method="post" action="%s">`, pc.Blog.AdminURL().String())
		field(w, "Login", "blog-user-id", "")
		field(w, "Permission", "blog-permission", "")
		w.raw(`<button name="action" value="add-user-permission">Grant</button>`)
		w.raw(`<button name="action" value="delete-user-permission">Revoke</button></form>`)
	})
}
