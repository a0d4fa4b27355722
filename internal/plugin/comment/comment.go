// Package comment accepts visitor comments on entries.
package comment

import (
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/throttle"
	"github.com/sidereusnuntius/gopress/internal/utils"
)

const owner = "comment"

const (
	paramComment     = "comment"
	paramAuthor      = "author"
	paramAuthorEmail = "authorEmail"
	paramAuthorURL   = "authorURL"
	paramText        = "commentText"
	paramRemember    = "remember"
	paramEntryID     = "entry_id"
	paramParentID    = "comment_parent_id"
	paramRedirectTo  = "redirect_to"
)

const (
	cookieAuthor     = "gopress.cookie.author"
	cookieEmail      = "gopress.cookie.authorEmail"
	cookieURL        = "gopress.cookie.authorURL"
	cookieRememberMe = "gopress.cookie.rememberme"
)

// DefaultCookieAge is how long, in seconds, remembered visitor details are kept.
const DefaultCookieAge = 604800

// Values published for the renderer. MetadataKey may be filled by an earlier plugin of the chain; its pairs are
// attached to the submitted comment.
var (
	EnabledKey     = plugin.NewKey[bool](owner, "enabled")
	AuthorKey      = plugin.NewKey[string](owner, "author")
	AuthorEmailKey = plugin.NewKey[string](owner, "author-email")
	AuthorURLKey   = plugin.NewKey[string](owner, "author-url")
	RememberMeKey  = plugin.NewKey[bool](owner, "remember-me")
	CommentKey     = plugin.NewKey[*domain.Comment](owner, "comment")
	EntryKey       = plugin.NewKey[*domain.Entry](owner, "entry")
	MetadataKey    = plugin.NewKey[domain.Metadata](owner, "metadata")
)

// Plugin stores a comment when the request carries comment=y. Submissions are throttled per address, refused on
// entries that disallow comments or have expired, and handed to the CommentSubmitted interceptors, any of which may
// destroy them. None of these refusals is reported to the visitor.
type Plugin struct {
	plugin.Base
	name        string
	service     service.Service
	broadcaster *event.Broadcaster
	throttle    *throttle.Map
	now         func() time.Time
}

func New() plugin.Plugin {
	return &Plugin{}
}

func (p *Plugin) Init(cfg plugin.Config) error {
	if cfg.Service == nil {
		return plugin.ErrNoService
	}
	p.name = cfg.Name
	p.service = cfg.Service
	p.broadcaster = cfg.Broadcaster
	if p.broadcaster == nil {
		p.broadcaster = event.NewBroadcaster()
	}
	p.throttle = cfg.Throttles.Comments
	if p.throttle == nil {
		p.throttle = throttle.New(owner, cfg.App.ThrottleCapacity, cfg.App.ThrottleSweep)
	}
	p.now = time.Now
	return nil
}

type visitor struct {
	author, email, url string
}

// remembered fills blank visitor fields from the remember-me cookies.
func (p *Plugin) remembered(pc *plugin.Context) visitor {
	v := visitor{
		author: pc.Param(paramAuthor),
		email:  pc.Param(paramAuthorEmail),
		url:    pc.Param(paramAuthorURL),
	}
	if v.author != "" {
		return v
	}
	author := cookie(pc.Request, cookieAuthor)
	if author == "" {
		return v
	}
	v.author = author
	plugin.Set(pc, AuthorKey, author)
	if v.email == "" {
		if v.email = cookie(pc.Request, cookieEmail); v.email != "" {
			plugin.Set(pc, AuthorEmailKey, v.email)
		}
	}
	if v.url == "" {
		if v.url = cookie(pc.Request, cookieURL); v.url != "" {
			plugin.Set(pc, AuthorURLKey, v.url)
		}
	}
	if ok, _ := strconv.ParseBool(cookie(pc.Request, cookieRememberMe)); ok {
		plugin.Set(pc, RememberMeKey, true)
	}
	return v
}

func (p *Plugin) Process(pc *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	plugin.Set(pc, EnabledKey, pc.Blog.CommentsEnabled)
	if !pc.Blog.CommentsEnabled {
		log.Debug().Str("blog", pc.Blog.ID).Msg("comments are disabled")
		return entries, nil
	}
	if len(entries) == 0 || pc.Request == nil {
		return entries, nil
	}

	v := p.remembered(pc)
	if pc.Param(paramComment) != "y" {
		return entries, nil
	}
	text := pc.Request.FormValue(paramText)
	if v.author == "" || text == "" {
		return entries, nil
	}

	ip := pc.RemoteIP()
	if !p.throttle.Admit(plugin.ThrottleKey(pc.Blog, ip), plugin.ThrottleWindow(pc.Blog, domain.PropCommentThrottle)) {
		log.Debug().Str("blog", pc.Blog.ID).Str("ip", ip).Msg("comment throttled")
		return entries, nil
	}

	c := &domain.Comment{
		ResponseCore: domain.ResponseCore{BlogID: pc.Blog.ID, IP: ip, Status: domain.StatusNew},
		Author:       utils.SingleLine(v.author),
		AuthorEmail:  utils.SingleLine(v.email),
		AuthorURL:    utils.WithScheme(utils.SingleLine(v.url)),
		Content:      html.EscapeString(strings.TrimSpace(text)),
	}
	if pc.Blog.BoolProperty(domain.PropCommentAutoformat) {
		c.Content = utils.Autoformat(c.Content)
	}

	e, ok := p.target(pc)
	if !ok {
		return entries, nil
	}
	c.EntryID = e.ID

	c.Metadata = domain.Metadata{domain.MetadataIP: ip}
	if prior, ok := plugin.Get(pc, MetadataKey); ok {
		for k, val := range prior {
			c.Metadata[k] = val
		}
	}
	if parent, err := strconv.ParseInt(pc.Param(paramParentID), 10, 64); err == nil && parent > 0 {
		c.ParentID = &parent
	}

	ev := event.New(event.CommentSubmitted, p.name, pc.Blog).WithRequest(pc.Response, pc.Request)
	ev.Entry = e
	ev.Comment = c
	out := p.broadcaster.Process(pc.Ctx(), ev)
	out.ApplyComment(c)

	if out.Destroyed() {
		log.Debug().Str("blog", pc.Blog.ID).Str("by", out.By).Str("reason", out.Reason).Msg("comment destroyed")
	} else {
		p.save(pc, e, c)
	}

	if pc.Param(paramRemember) != "" {
		p.remember(pc, c)
	}
	if target := pc.Param(paramRedirectTo); target != "" {
		if withinBlog(pc.Blog, target) {
			pc.Redirect(target)
		} else {
			log.Debug().Str("blog", pc.Blog.ID).Str("target", target).Msg("ignored redirect outside the blog")
		}
	}
	return entries, nil
}

// withinBlog reports whether target, absolute or relative to the blog url, stays below the blog url.
func withinBlog(blog *domain.Blog, target string) bool {
	if blog.URL == nil || strings.HasPrefix(target, "//") || strings.ContainsAny(target, "\\\r\n") {
		return false
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	resolved := blog.URL.ResolveReference(u)
	if resolved.Scheme != blog.URL.Scheme || !strings.EqualFold(resolved.Host, blog.URL.Host) || resolved.User != nil {
		return false
	}
	base := strings.TrimSuffix(blog.URL.Path, "/") + "/"
	return strings.HasPrefix(resolved.Path+"/", base)
}

// target loads the commented entry and reports whether it takes comments now.
func (p *Plugin) target(pc *plugin.Context) (*domain.Entry, bool) {
	raw := pc.Param(paramEntryID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Error().Err(err).Str("entry", raw).Msg("malformed entry id on comment")
		return nil, false
	}
	e, err := p.service.Entry(pc.Ctx(), pc.Blog.ID, id)
	if err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Int64("entry", id).Msg("failed to load entry for comment")
		return nil, false
	}
	if !e.AllowComments {
		log.Debug().Str("blog", pc.Blog.ID).Int64("entry", id).Msg("comments disabled for entry")
		return nil, false
	}
	if plugin.Expired(pc.Blog, domain.PropCommentExpiration, &e, p.now()) {
		log.Debug().Str("blog", pc.Blog.ID).Int64("entry", id).Msg("comment period expired")
		return nil, false
	}
	return &e, true
}

func (p *Plugin) save(pc *plugin.Context, e *domain.Entry, c *domain.Comment) {
	if c.Metadata[domain.MetadataApproved] == "true" {
		c.Status = domain.StatusApproved
	}
	c.Created = p.now()
	if err := p.service.AddComment(pc.Ctx(), c); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Int64("entry", e.ID).Msg("failed to save comment")
		pc.AddMessage(err.Error())
		return
	}
	log.Info().Str("blog", pc.Blog.ID).Int64("entry", e.ID).Int64("comment", c.ID).Msg("comment added")

	plugin.Set(pc, CommentKey, c)
	plugin.Set(pc, EntryKey, e)
	ev := event.New(event.CommentAdded, p.name, pc.Blog).WithRequest(pc.Response, pc.Request)
	ev.Entry = e
	ev.Comment = c
	p.broadcaster.Broadcast(pc.Ctx(), ev)
}

func (p *Plugin) remember(pc *plugin.Context, c *domain.Comment) {
	age := pc.Blog.IntProperty(domain.PropCookieExpiration, DefaultCookieAge)
	for name, value := range map[string]string{
		cookieAuthor:     c.Author,
		cookieEmail:      c.AuthorEmail,
		cookieURL:        c.AuthorURL,
		cookieRememberMe: "true",
	} {
		http.SetCookie(pc.Response, &http.Cookie{
			Name:     name,
			Value:    url.QueryEscape(value),
			Path:     pc.Blog.URL.Path,
			MaxAge:   age,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	plugin.Set(pc, AuthorKey, c.Author)
	plugin.Set(pc, AuthorEmailKey, c.AuthorEmail)
	plugin.Set(pc, AuthorURLKey, c.AuthorURL)
	plugin.Set(pc, RememberMeKey, true)
}

func cookie(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return v
}
