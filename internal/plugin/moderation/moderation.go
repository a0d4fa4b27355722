// Package moderation holds the interceptors that screen comments, trackbacks and pingbacks before they are stored:
// a math challenge for commenters and phrase, link and address rules configured per blog.
package moderation

import (
	"regexp"
	"strings"

	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
)

var submissions = event.Types(event.CommentSubmitted, event.TrackbackSubmitted, event.PingbackSubmitted)

// base registers an interceptor when initialized and removes it when destroyed.
type base struct {
	plugin.Base
	name        string
	broadcaster *event.Broadcaster
	sub         event.Subscription
}

func (b *base) register(cfg plugin.Config, i event.Interceptor, filters ...event.Filter) {
	b.name = cfg.Name
	b.broadcaster = cfg.Broadcaster
	if b.broadcaster == nil {
		b.broadcaster = event.NewBroadcaster()
	}
	b.sub = b.broadcaster.AddListener(i, filters...)
}

func (b *base) Process(_ *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	return entries, nil
}

func (b *base) Destroy() error {
	if b.broadcaster != nil {
		b.broadcaster.RemoveListener(b.sub)
	}
	return nil
}

// flag holds back a matched submission for review, or destroys it when the blog's delete property is true.
// Pingbacks have no review state and are only ever destroyed.
func flag(e event.Event, deleteProp, reason string) event.Decision {
	if e.Blog.BoolProperty(deleteProp) {
		return event.Reject(reason)
	}
	if e.Type == event.PingbackSubmitted {
		return event.Proceed()
	}
	return event.Decision{Metadata: map[string]string{domain.MetadataApproved: "false"}}
}

// text returns the submitted content and the fields naming the submitter.
func text(e event.Event) (content string, submitter []string) {
	switch {
	case e.Comment != nil:
		return e.Comment.Content, []string{e.Comment.Author, e.Comment.AuthorEmail, e.Comment.AuthorURL}
	case e.Trackback != nil:
		return e.Trackback.Excerpt, []string{e.Trackback.BlogName, e.Trackback.Title, e.Trackback.URL}
	case e.Pingback != nil:
		return e.Pingback.Excerpt, []string{e.Pingback.BlogName, e.Pingback.Title, e.Pingback.SourceURI}
	}
	return "", nil
}

// lines splits a multi line property, dropping blank lines.
func lines(s string) []string {
	var out []string
	for line := range strings.Lines(s) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// matches reports whether s contains pattern or matches it as a whole regular expression.
func matches(s, pattern string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, pattern) {
		return true
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	return err == nil && re.MatchString(s)
}
