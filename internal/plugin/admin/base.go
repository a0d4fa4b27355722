// Package admin implements the administration pipeline: a login state machine shared by every admin plugin and
// the plugins that edit entries, categories, blog properties and users.
package admin

import (
	"errors"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/service"
)

// Pages selected by the admin plugins.
const (
	PageLogin          = "admin-login"
	PageAdministration = "admin"
)

const (
	paramUsername = "username"
	paramPassword = "password"
	paramAction   = "action"
	paramPage     = "page"
)

func authenticatedKey(blog *domain.Blog) string {
	return blog.ID + "_authenticated"
}

func usernameKey(blog *domain.Blog) string {
	return blog.ID + "_username"
}

func redirectKey(blog *domain.Blog) string {
	return blog.ID + "_redirect_to"
}

// loginOutcomeKey records the outcome of the login state machine for the rest of the chain.
var loginOutcomeKey = plugin.NewKey[bool]("admin", "login-outcome")

// Base holds what every admin plugin shares. Embedders call Authenticate first in Process.
type Base struct {
	plugin.Base
	Name        string
	Service     service.Service
	Broadcaster *event.Broadcaster
}

func (b *Base) Init(cfg plugin.Config) error {
	if cfg.Service == nil {
		return plugin.ErrNoService
	}
	b.Name = cfg.Name
	b.Service = cfg.Service
	b.Broadcaster = cfg.Broadcaster
	if b.Broadcaster == nil {
		b.Broadcaster = event.NewBroadcaster()
	}
	return nil
}

// Authenticate runs the login state machine and reports whether the request may proceed. A logout action clears
// the session and never authenticates, whatever else was submitted. On success pc.Username holds the login.
// The state machine runs once per request; later plugins of the chain reuse its outcome.
func (b *Base) Authenticate(pc *plugin.Context) bool {
	if ok, done := plugin.Get(pc, loginOutcomeKey); done {
		return ok
	}
	ok := b.authenticate(pc)
	plugin.Set(pc, loginOutcomeKey, ok)
	return ok
}

func (b *Base) authenticate(pc *plugin.Context) bool {
	if pc.Response != nil {
		h := pc.Response.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
	}

	sess := pc.Session
	if sess == nil || pc.Request == nil {
		log.Warn().Str("plugin", b.Name).Msg("admin request without a session")
		return false
	}

	if pc.Param(paramAction) == actionLogout {
		for _, key := range []string{authenticatedKey(pc.Blog), usernameKey(pc.Blog), redirectKey(pc.Blog)} {
			if err := sess.Remove(pc.Response, key); err != nil {
				log.Error().Err(err).Str("key", key).Msg("failed to clear session key")
			}
		}
		pc.Username = ""
		return false
	}

	if ok, _ := sess.GetBool(authenticatedKey(pc.Blog)); ok {
		pc.Username, _ = sess.GetString(usernameKey(pc.Blog))
		return true
	}

	username := pc.Param(paramUsername)
	password := pc.Request.FormValue(paramPassword)
	if username == "" || password == "" {
		b.rememberTarget(pc)
		return false
	}

	u, err := b.Service.Authorize(pc.Ctx(), pc.Blog, username, password)
	if err != nil {
		log.Debug().Err(err).Str("blog", pc.Blog.ID).Str("username", username).Msg("failed authentication")
		pc.AddMessage(text(loginErrorText, username))
		b.rememberTarget(pc)
		return false
	}

	if err = sess.PutBool(pc.Response, authenticatedKey(pc.Blog), true); err == nil {
		err = sess.PutString(pc.Response, usernameKey(pc.Blog), u.Login)
	}
	if err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Msg("failed to store admin session")
		pc.AddMessage(text(loginErrorText, username))
		return false
	}
	pc.Username = u.Login
	log.Debug().Str("blog", pc.Blog.ID).Str("username", u.Login).Msg("passed authentication")
	return true
}

// rememberTarget stores the requested admin url, without credentials, so a later login can return to it.
func (b *Base) rememberTarget(pc *plugin.Context) {
	if pc.Request == nil {
		return
	}
	target := *pc.Request.URL
	q := target.Query()
	q.Del(paramUsername)
	q.Del(paramPassword)
	target.RawQuery = q.Encode()
	if err := pc.Session.PutString(pc.Response, redirectKey(pc.Blog), target.RequestURI()); err != nil {
		log.Error().Err(err).Msg("failed to store redirect target")
	}
}

// Permit checks the permission for the authenticated user. On denial the administration page is selected and
// the message for deniedKey is added.
func (b *Base) Permit(pc *plugin.Context, permission, deniedKey string) bool {
	err := b.Service.CheckPermission(pc.Ctx(), pc.Blog, pc.Username, permission)
	if err == nil {
		return true
	}
	if !errors.Is(err, service.ErrPermissionDenied) {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Str("permission", permission).Msg("permission check failed")
	}
	pc.SetPage(b.Name, PageAdministration)
	pc.AddMessage(text(deniedKey))
	return false
}

// Broadcast sends a notification about pc's blog.
func (b *Base) Broadcast(pc *plugin.Context, e event.Event) {
	b.Broadcaster.Broadcast(pc.Ctx(), e.WithRequest(pc.Response, pc.Request))
}

func (b *Base) newEvent(pc *plugin.Context, t event.Type) event.Event {
	return event.New(t, b.Name, pc.Blog)
}

// pageRequested reports whether a page action names one of pages. Page actions for other plugins' pages are
// left to those plugins.
func pageRequested(pc *plugin.Context, pages ...string) bool {
	return slices.Contains(pages, pc.Param(paramPage))
}

// parseID parses a numeric id parameter.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

// entryLink names an entry and its permalink in messages. Messages are escaped when rendered.
func entryLink(blog *domain.Blog, e *domain.Entry) string {
	return e.Title + " (" + blog.EntryURL(e.Slug).String() + ")"
}
