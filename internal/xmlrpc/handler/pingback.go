package handler

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/fetcher"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/utils"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
)

// Metadata recorded on every pingback.
const (
	MetadataSourceURI = "pingback-source-uri"
	MetadataTargetURI = "pingback-target-uri"
)

// excerptRadius is how much of the source around the link goes into the excerpt.
const excerptRadius = 200

var titlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

func titleFromSource(page string) string {
	m := titlePattern.FindStringSubmatch(page)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// excerptFromSource cuts the text around the link to target, dropping the partial words at both ends.
func excerptFromSource(page, target string) string {
	at := strings.Index(page, target)
	if at < 0 {
		return ""
	}
	start := max(at-excerptRadius, 0)
	end := min(at+len(target)+excerptRadius, len(page))
	excerpt := utils.StripHTML(strings.ToValidUTF8(page[start:end], ""))

	first, last := 0, len(excerpt)
	if start > 0 {
		first = strings.IndexByte(excerpt, ' ') + 1
	}
	if end < len(page) {
		if i := strings.LastIndexByte(excerpt, ' '); i >= first {
			last = i
		}
	}
	return strings.TrimSpace(excerpt[first:last])
}

// resolveTarget finds the entry a target url points at: a permalink below the blog url, or the blog url with a
// permalink parameter.
func (a *API) resolveTarget(ctx context.Context, blog *domain.Blog, target string) (domain.Entry, error) {
	u, err := url.Parse(target)
	if err != nil || !strings.EqualFold(u.Host, blog.URL.Host) {
		return domain.Entry{}, service.ErrNotFound
	}
	base := strings.TrimSuffix(blog.URL.Path, "/") + "/"
	rest, ok := strings.CutPrefix(u.Path+"/", base)
	if !ok {
		return domain.Entry{}, service.ErrNotFound
	}
	rest = strings.Trim(rest, "/")

	if slug, ok := strings.CutPrefix(rest, "entries/"); ok && slug != "" && !strings.Contains(slug, "/") {
		return a.service.EntryBySlug(ctx, blog.ID, slug)
	}
	if permalink := u.Query().Get(fetcher.ParamPermalink); rest == "" && permalink != "" {
		if id, err := strconv.ParseInt(permalink, 10, 64); err == nil {
			return a.service.Entry(ctx, blog.ID, id)
		}
		return a.service.EntryBySlug(ctx, blog.ID, permalink)
	}
	return domain.Entry{}, service.ErrNotFound
}

// pingback.ping(sourceURI, targetURI) records that the source page links to an entry of this blog.
func (a *API) ping(ctx context.Context, c *xmlrpc.Call) (any, error) {
	src, err := c.Params.String(0)
	if err != nil {
		return nil, err
	}
	target, err := c.Params.String(1)
	if err != nil {
		return nil, err
	}
	src, target = strings.TrimSpace(src), strings.TrimSpace(target)
	log.Debug().Str("blog", c.Blog.ID).Str("source", src).Str("target", target).Msg("pingback")

	if src == "" {
		return nil, xmlrpc.NewFault(xmlrpc.PingbackSourceNotFound, "Pingback must include a source URI")
	}
	srcURL, err := url.Parse(src)
	if err != nil || (srcURL.Scheme != "http" && srcURL.Scheme != "https") {
		return nil, xmlrpc.NewFault(xmlrpc.PingbackSourceNotFound, "Source URI does not exist")
	}
	ip := remoteIP(c.Request)
	window := plugin.ThrottleWindow(c.Blog, domain.PropPingbackThrottle)
	if a.throttle != nil && !a.throttle.Admit(plugin.ThrottleKey(c.Blog, ip), window) {
		log.Info().Str("blog", c.Blog.ID).Str("ip", ip).Str("source", src).Msg("pingback throttled")
		return nil, xmlrpc.NewFault(xmlrpc.PingbackAccessDenied, "Too many pingbacks from this address; try again later")
	}
	if a.pages == nil {
		return nil, xmlrpc.NewFault(xmlrpc.PingbackGeneric, "Unable to retrieve source URI")
	}
	page, err := a.pages.FetchPage(ctx, srcURL)
	if err != nil {
		log.Error().Err(err).Str("source", src).Msg("failed to fetch pingback source")
		return nil, xmlrpc.NewFault(xmlrpc.PingbackGeneric, "Unable to retrieve source URI")
	}
	if target == "" || !strings.Contains(page, target) {
		return nil, xmlrpc.NewFault(xmlrpc.PingbackNoLinkToTarget, "Target URI not found in source URI")
	}

	e, err := a.resolveTarget(ctx, c.Blog, target)
	if err != nil {
		log.Debug().Err(err).Str("blog", c.Blog.ID).Str("target", target).Msg("pingback target not resolved")
		if errors.Is(err, service.ErrNotFound) {
			return nil, xmlrpc.NewFault(xmlrpc.PingbackTargetNotFound, "Target URI does not exist")
		}
		return nil, xmlrpc.NewFault(xmlrpc.PingbackGeneric, "Unable to retrieve target URI")
	}

	if _, err := a.service.FindPingback(ctx, c.Blog.ID, src, target); err == nil {
		return nil, xmlrpc.NewFault(xmlrpc.PingbackAlreadyRegistered, "Pingback already registered")
	} else if !errors.Is(err, service.ErrNotFound) {
		log.Error().Err(err).Str("blog", c.Blog.ID).Msg("failed to look up pingback")
	}

	if !c.Blog.PingbacksEnabled || !e.AllowPingbacks {
		return nil, xmlrpc.NewFault(xmlrpc.PingbackTargetNotEnabled, "Target URI does not support pingbacks")
	}

	title := titleFromSource(page)
	pb := &domain.Pingback{
		ResponseCore: domain.ResponseCore{
			BlogID:  c.Blog.ID,
			EntryID: e.ID,
			IP:      ip,
			Status:  domain.StatusNew,
			Metadata: domain.Metadata{
				MetadataSourceURI: src,
				MetadataTargetURI: target,
				domain.MetadataIP: ip,
			},
		},
		Title:     utils.SingleLine(title),
		Excerpt:   excerptFromSource(page, target),
		SourceURI: src,
		TargetURI: target,
		BlogName:  utils.SingleLine(title),
	}

	ev := event.New(event.PingbackSubmitted, source, c.Blog).WithRequest(nil, c.Request)
	ev.Entry = &e
	ev.Pingback = pb
	out := a.broadcaster.Process(ctx, ev)
	out.ApplyPingback(pb)
	if out.Destroyed() {
		log.Info().Str("blog", c.Blog.ID).Str("by", out.By).Str("reason", out.Reason).Msg("pingback destroyed")
		return nil, xmlrpc.NewFault(xmlrpc.PingbackAccessDenied, "Pingback meta-data contained destroy key. Pingback was not saved.")
	}

	if pb.Metadata[domain.MetadataApproved] == "true" {
		pb.Status = domain.StatusApproved
	}
	pb.Created = a.now()
	if err := a.service.AddPingback(ctx, pb); err != nil {
		log.Error().Err(err).Str("blog", c.Blog.ID).Int64("entry", e.ID).Msg("failed to save pingback")
		if errors.Is(err, service.ErrValidationFailed) {
			return nil, xmlrpc.NewFault(xmlrpc.PingbackAlreadyRegistered, "Pingback already registered")
		}
		return nil, xmlrpc.NewFault(xmlrpc.PingbackGeneric, "Unable to save pingback")
	}
	log.Info().Str("blog", c.Blog.ID).Int64("entry", e.ID).Str("source", src).Msg("pingback added")

	added := event.New(event.PingbackAdded, source, c.Blog).WithRequest(nil, c.Request)
	added.Entry = &e
	added.Pingback = pb
	a.broadcaster.Broadcast(ctx, added)

	return "Registered pingback from: " + src + " to: " + target, nil
}
