// Package handler implements the Blogger, MetaWeblog, MovableType and Pingback method sets on top of the blog
// services. Every authoring method checks the caller's credentials and then the API's permission.
package handler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/throttle"
	"github.com/sidereusnuntius/gopress/internal/utils"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
)

const source = "xmlrpc"

// recentLimit caps the number of posts a client may list at once.
const recentLimit = 100

// PageFetcher retrieves the page that claims to link to an entry.
type PageFetcher interface {
	FetchPage(ctx context.Context, u *url.URL) (string, error)
}

type API struct {
	service     service.Service
	broadcaster *event.Broadcaster
	pages       PageFetcher
	throttle    *throttle.Map
	now         func() time.Time
}

func New(s service.Service, b *event.Broadcaster, pages PageFetcher) *API {
	if b == nil {
		b = event.NewBroadcaster()
	}
	return &API{service: s, broadcaster: b, pages: pages, now: time.Now}
}

// WithThrottle admits at most one pingback per address and blog within the blog's pingback throttle window.
func (a *API) WithThrottle(m *throttle.Map) *API {
	a.throttle = m
	return a
}

// Register binds every method of the four APIs.
func (a *API) Register(srv *xmlrpc.Server) {
	a.registerBlogger(srv)
	a.registerMetaWeblog(srv)
	a.registerMovableType(srv)
	srv.Register("pingback.ping", a.ping)
}

// authorize checks the credentials and the permission. Failures of the credential check are always reported
// with the generic authorization fault.
func (a *API) authorize(ctx context.Context, c *xmlrpc.Call, login, password, permission string) error {
	if _, err := a.user(ctx, c, login, password); err != nil {
		return err
	}
	if err := a.service.CheckPermission(ctx, c.Blog, login, permission); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			log.Info().Str("blog", c.Blog.ID).Str("user", login).Str("permission", permission).Msg("XML-RPC permission denied")
			return xmlrpc.ErrPermission
		}
		return err
	}
	return nil
}

func (a *API) user(ctx context.Context, c *xmlrpc.Call, login, password string) (domain.User, error) {
	u, err := a.service.Authorize(ctx, c.Blog, login, password)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			log.Info().Str("blog", c.Blog.ID).Str("user", login).Msg("XML-RPC authorization failed")
			return u, xmlrpc.ErrAuthorization
		}
		return u, err
	}
	return u, nil
}

// postID reads an entry id, tolerating surrounding slashes. Anything else is an invalid post id.
func postID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.Trim(strings.TrimSpace(raw), "/"), 10, 64)
	if err != nil || id <= 0 {
		return 0, xmlrpc.ErrInvalidPostID
	}
	return id, nil
}

// loadEntry maps a missing entry to miss and any other failure to the unknown fault.
func (a *API) loadEntry(ctx context.Context, blog *domain.Blog, id int64, miss *xmlrpc.Fault) (domain.Entry, error) {
	e, err := a.service.Entry(ctx, blog.ID, id)
	if err != nil {
		log.Error().Err(err).Str("blog", blog.ID).Int64("entry", id).Msg("failed to load entry for XML-RPC")
		if errors.Is(err, service.ErrNotFound) {
			return e, miss
		}
		return e, xmlrpc.ErrUnknown
	}
	return e, nil
}

// category resolves the category a client names, by id or by name.
func (a *API) category(ctx context.Context, blog *domain.Blog, ref string) (domain.Category, error) {
	ref = strings.Trim(strings.TrimSpace(ref), "/")
	var c domain.Category
	var err error
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		c, err = a.service.Category(ctx, blog.ID, id)
	} else if ref != "" {
		c, err = a.service.CategoryByName(ctx, blog.ID, ref)
	} else {
		return c, xmlrpc.ErrUnknown
	}
	if err != nil {
		log.Error().Err(err).Str("blog", blog.ID).Str("category", ref).Msg("failed to load category for XML-RPC")
		return c, xmlrpc.ErrUnknown
	}
	return c, nil
}

// categories lists the blog's categories; a blog without any answers with the no-blogs fault.
func (a *API) categories(ctx context.Context, blog *domain.Blog) ([]domain.Category, error) {
	cs, err := a.service.Categories(ctx, blog.ID)
	if err != nil {
		log.Error().Err(err).Str("blog", blog.ID).Msg("failed to list categories for XML-RPC")
		return nil, xmlrpc.ErrUnknown
	}
	if len(cs) == 0 {
		return nil, xmlrpc.ErrNoBlogs
	}
	return cs, nil
}

// save stores the entry, deriving a title from the body when the client sent none.
func (a *API) save(ctx context.Context, blog *domain.Blog, e *domain.Entry) error {
	if strings.TrimSpace(e.Title) == "" {
		e.Title = utils.Truncate(utils.StripHTML(e.Description), 64, "...")
	}
	if err := a.service.SaveEntry(ctx, e); err != nil {
		log.Error().Err(err).Str("blog", blog.ID).Int64("entry", e.ID).Msg("failed to save entry from XML-RPC")
		return fault(err)
	}
	return nil
}

// fault tells the client why its input was refused. Other failures stay behind the unknown fault.
func fault(err error) *xmlrpc.Fault {
	if errors.Is(err, service.ErrValidationFailed) {
		return xmlrpc.NewFault(xmlrpc.CodeUnknown, strings.TrimPrefix(err.Error(), service.ErrValidationFailed.Error()+": "))
	}
	return xmlrpc.ErrUnknown
}

func (a *API) broadcast(ctx context.Context, c *xmlrpc.Call, t event.Type, e *domain.Entry) {
	ev := event.New(t, source, c.Blog).WithRequest(nil, c.Request)
	ev.Entry = e
	a.broadcaster.Broadcast(ctx, ev)
}

func status(publish bool) domain.Status {
	if publish {
		return domain.Published
	}
	return domain.Draft
}

func categoryURL(blog *domain.Blog, c domain.Category) string {
	return blog.URL.JoinPath("categories", c.Name).String()
}

func remoteIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
