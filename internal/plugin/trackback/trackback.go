// Package trackback receives trackback pings on entries.
package trackback

import (
	"html"
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

const owner = "trackback"

// Pages answered to the pinging site.
const (
	PageSuccess = "trackback-success"
	PageFailure = "trackback-failure"
)

const (
	paramTrackback = "tb"
	paramTitle     = "title"
	paramExcerpt   = "excerpt"
	paramURL       = "url"
	paramBlogName  = "blog_name"
	paramEntryID   = "entry_id"
)

const maxExcerpt = 255

// Trackback return codes.
const (
	CodeSuccess = 0
	CodeFailure = 1
)

var (
	EnabledKey    = plugin.NewKey[bool](owner, "enabled")
	ReturnCodeKey = plugin.NewKey[int](owner, "return-code")
	MessageKey    = plugin.NewKey[string](owner, "message")
	TrackbackKey  = plugin.NewKey[*domain.Trackback](owner, "trackback")
	EntryKey      = plugin.NewKey[*domain.Entry](owner, "entry")
	// MetadataKey may be filled by an earlier plugin; its pairs are attached to the trackback.
	MetadataKey = plugin.NewKey[domain.Metadata](owner, "metadata")
)

// Plugin stores a trackback when the request carries tb=y and selects the success or failure page, whose
// renderer answers with the trackback XML response.
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
	p.throttle = cfg.Throttles.Trackbacks
	if p.throttle == nil {
		p.throttle = throttle.New(owner, cfg.App.ThrottleCapacity, cfg.App.ThrottleSweep)
	}
	p.now = time.Now
	return nil
}

func (p *Plugin) fail(pc *plugin.Context, msg string) {
	plugin.Set(pc, ReturnCodeKey, CodeFailure)
	plugin.Set(pc, MessageKey, msg)
	pc.SetPage(p.name, PageFailure)
}

func (p *Plugin) Process(pc *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	plugin.Set(pc, EnabledKey, pc.Blog.TrackbacksEnabled)
	if !pc.Blog.TrackbacksEnabled {
		log.Debug().Str("blog", pc.Blog.ID).Msg("trackbacks are disabled")
		return entries, nil
	}
	if len(entries) == 0 || pc.Request == nil || pc.Param(paramTrackback) != "y" {
		return entries, nil
	}

	target := pc.Param(paramURL)
	if target == "" {
		p.fail(pc, "No url parameter for trackback. url must be specified.")
		return entries, nil
	}

	ip := pc.RemoteIP()
	if !p.throttle.Admit(plugin.ThrottleKey(pc.Blog, ip), plugin.ThrottleWindow(pc.Blog, domain.PropTrackbackThrottle)) {
		log.Debug().Str("blog", pc.Blog.ID).Str("ip", ip).Msg("trackback throttled")
		p.fail(pc, "Trackback throttling enabled.")
		return entries, nil
	}

	tb := &domain.Trackback{
		ResponseCore: domain.ResponseCore{BlogID: pc.Blog.ID, IP: ip, Status: domain.StatusNew},
		URL:          utils.WithScheme(target),
		Title:        utils.SingleLine(pc.Param(paramTitle)),
		BlogName:     utils.SingleLine(pc.Param(paramBlogName)),
		Excerpt:      excerpt(pc.Request.FormValue(paramExcerpt)),
	}
	if tb.Title == "" {
		tb.Title = html.EscapeString(tb.URL)
	}

	e, ok := p.target(pc)
	if !ok {
		p.fail(pc, "Unable to add trackback to the requested entry.")
		return entries, nil
	}
	tb.EntryID = e.ID
	tb.Metadata = domain.Metadata{domain.MetadataIP: ip}
	if prior, ok := plugin.Get(pc, MetadataKey); ok {
		for k, v := range prior {
			tb.Metadata[k] = v
		}
	}

	ev := event.New(event.TrackbackSubmitted, p.name, pc.Blog).WithRequest(pc.Response, pc.Request)
	ev.Entry = e
	ev.Trackback = tb
	out := p.broadcaster.Process(pc.Ctx(), ev)
	out.ApplyTrackback(tb)
	if out.Destroyed() {
		log.Info().Str("blog", pc.Blog.ID).Str("by", out.By).Str("reason", out.Reason).Msg("trackback destroyed")
		p.fail(pc, "Trackback was not accepted.")
		return entries, nil
	}

	if tb.Metadata[domain.MetadataApproved] == "true" {
		tb.Status = domain.StatusApproved
	}
	tb.Created = p.now()
	if err := p.service.AddTrackback(pc.Ctx(), tb); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Int64("entry", e.ID).Msg("failed to save trackback")
		p.fail(pc, "Unable to add trackback: "+err.Error())
		return entries, nil
	}
	log.Info().Str("blog", pc.Blog.ID).Int64("entry", e.ID).Str("url", tb.URL).Msg("trackback added")

	plugin.Set(pc, ReturnCodeKey, CodeSuccess)
	plugin.Set(pc, TrackbackKey, tb)
	plugin.Set(pc, EntryKey, e)
	pc.SetPage(p.name, PageSuccess)

	added := event.New(event.TrackbackAdded, p.name, pc.Blog).WithRequest(pc.Response, pc.Request)
	added.Entry = e
	added.Trackback = tb
	p.broadcaster.Broadcast(pc.Ctx(), added)
	return entries, nil
}

func (p *Plugin) target(pc *plugin.Context) (*domain.Entry, bool) {
	raw := pc.Param(paramEntryID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Error().Err(err).Str("entry", raw).Msg("malformed entry id on trackback")
		return nil, false
	}
	e, err := p.service.Entry(pc.Ctx(), pc.Blog.ID, id)
	if err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Int64("entry", id).Msg("failed to load entry for trackback")
		return nil, false
	}
	if !e.AllowTrackbacks {
		log.Debug().Str("blog", pc.Blog.ID).Int64("entry", id).Msg("trackbacks disabled for entry")
		return nil, false
	}
	if plugin.Expired(pc.Blog, domain.PropTrackbackExpiry, &e, p.now()) {
		log.Debug().Str("blog", pc.Blog.ID).Int64("entry", id).Msg("trackback period expired")
		return nil, false
	}
	return &e, true
}

// excerpt joins the lines of a submitted excerpt, strips its markup and cuts it to the stored length.
func excerpt(s string) string {
	s = utils.StripHTML(strings.TrimSpace(s))
	if len([]rune(s)) >= maxExcerpt {
		s = utils.Truncate(s, maxExcerpt-3, "...")
	}
	return s
}
