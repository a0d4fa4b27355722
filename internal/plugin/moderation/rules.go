package moderation

import (
	"context"
	"regexp"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
)

// Blog properties read by the rule interceptors.
const (
	PropSpamPhrases        = "spam-phrase-blacklist"
	PropDeletePhraseSpam   = "delete-phrasespam"
	PropLinkCommentLimit   = "linkspam-comment-threshold"
	PropLinkTrackbackLimit = "linkspam-trackback-threshold"
	PropDeleteLinkSpam     = "delete-linkspam"
	PropAddressBlacklist   = "ip-blacklist"
	PropAddressWhitelist   = "ip-whitelist"
	PropDeleteAddressSpam  = "delete-ipspam"
	defaultLinkLimit       = 3
)

// Phrases flags submissions whose content or submitter fields match a line of the spam-phrase-blacklist property.
type Phrases struct {
	base
}

func NewPhrases() plugin.Plugin {
	return &Phrases{}
}

func (p *Phrases) Init(cfg plugin.Config) error {
	p.register(cfg, event.InterceptorFunc(p.Intercept), submissions)
	return nil
}

func (p *Phrases) Intercept(_ context.Context, e event.Event) event.Decision {
	phrases := lines(e.Blog.Property(PropSpamPhrases))
	content, submitter := text(e)
	if len(phrases) == 0 || content == "" {
		return event.Proceed()
	}
	fields := append([]string{content}, submitter...)
	for _, phrase := range phrases {
		for _, f := range fields {
			if matches(f, phrase) {
				log.Info().Str("blog", e.Blog.ID).Str("phrase", phrase).Str("event", string(e.Type)).Msg("spam phrase found")
				return flag(e, PropDeletePhraseSpam, "spam phrase")
			}
		}
	}
	return event.Proceed()
}

var linkPattern = regexp.MustCompile(`(?is)<a.*?href=.*?>`)

// Links flags comments and trackbacks carrying at least the blog's link threshold of anchors, three by default.
type Links struct {
	base
}

func NewLinks() plugin.Plugin {
	return &Links{}
}

func (p *Links) Init(cfg plugin.Config) error {
	p.register(cfg, event.InterceptorFunc(p.Intercept), submissions)
	return nil
}

func (p *Links) Intercept(_ context.Context, e event.Event) event.Decision {
	content, _ := text(e)
	if content == "" {
		return event.Proceed()
	}
	limit := defaultLinkLimit
	switch e.Type {
	case event.CommentSubmitted:
		limit = e.Blog.IntProperty(PropLinkCommentLimit, defaultLinkLimit)
	case event.TrackbackSubmitted:
		limit = e.Blog.IntProperty(PropLinkTrackbackLimit, defaultLinkLimit)
	}
	n := len(linkPattern.FindAllStringIndex(content, -1))
	if n < limit {
		return event.Proceed()
	}
	log.Info().Str("blog", e.Blog.ID).Int("links", n).Str("event", string(e.Type)).Msg("link spam found")
	return flag(e, PropDeleteLinkSpam, "too many links")
}

// Addresses flags submissions from addresses on the ip-blacklist property unless they are also whitelisted.
type Addresses struct {
	base
}

func NewAddresses() plugin.Plugin {
	return &Addresses{}
}

func (p *Addresses) Init(cfg plugin.Config) error {
	p.register(cfg, event.InterceptorFunc(p.Intercept), submissions)
	return nil
}

func (p *Addresses) Intercept(_ context.Context, e event.Event) event.Decision {
	core := e.ResponseCore()
	if core == nil || core.IP == "" {
		return event.Proceed()
	}
	for _, allowed := range lines(e.Blog.Property(PropAddressWhitelist)) {
		if matches(core.IP, allowed) {
			return event.Proceed()
		}
	}
	for _, blocked := range lines(e.Blog.Property(PropAddressBlacklist)) {
		if matches(core.IP, blocked) {
			log.Info().Str("blog", e.Blog.ID).Str("ip", core.IP).Str("event", string(e.Type)).Msg("blacklisted address")
			return flag(e, PropDeleteAddressSpam, "blacklisted address")
		}
	}
	return event.Proceed()
}
