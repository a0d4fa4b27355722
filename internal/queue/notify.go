package queue

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
)

const (
	defaultCommentPrefix   = "[gopress] Comment on: "
	defaultTrackbackPrefix = "[gopress] Trackback on: "
	defaultPingbackPrefix  = "[gopress] Pingback on: "
)

// Notifier turns blog events into queued work. Register it on the broadcaster with the types from Types.
type Notifier struct {
	queue Queue
}

func NewNotifier(q Queue) *Notifier {
	return &Notifier{queue: q}
}

func (n *Notifier) Name() string {
	return "notifier"
}

// Types lists the events the notifier reacts to.
func (n *Notifier) Types() event.Filter {
	return event.Types(
		event.CommentAdded,
		event.TrackbackAdded,
		event.PingbackAdded,
		event.EntryAdded,
		event.EntryUpdated,
		event.EntryDeleted,
	)
}

func (n *Notifier) HandleEvent(ctx context.Context, e event.Event) error {
	if e.Blog == nil {
		return nil
	}
	switch e.Type {
	case event.CommentAdded, event.TrackbackAdded, event.PingbackAdded:
		return n.notifyOwner(e)
	case event.EntryAdded, event.EntryUpdated, event.EntryDeleted:
		return n.announce(ctx, e)
	}
	return nil
}

func (n *Notifier) notifyOwner(e event.Event) error {
	if !e.Blog.EmailEnabled || e.Blog.OwnerEmail == "" || e.Entry == nil {
		return nil
	}

	var prefix, body string
	switch {
	case e.Comment != nil:
		prefix = property(e.Blog, domain.PropCommentEmailPrefix, defaultCommentPrefix)
		c := e.Comment
		body = fmt.Sprintf("Author: %s\nE-mail: %s\nURL: %s\nIP: %s\n\n%s\n",
			c.Author, c.AuthorEmail, c.AuthorURL, c.IP, c.Content)
	case e.Trackback != nil:
		prefix = property(e.Blog, domain.PropTrackbackPrefix, defaultTrackbackPrefix)
		t := e.Trackback
		body = fmt.Sprintf("Blog: %s\nTitle: %s\nURL: %s\nIP: %s\n\n%s\n", t.BlogName, t.Title, t.URL, t.IP, t.Excerpt)
	case e.Pingback != nil:
		prefix = property(e.Blog, domain.PropPingbackPrefix, defaultPingbackPrefix)
		p := e.Pingback
		body = fmt.Sprintf("Title: %s\nSource: %s\nIP: %s\n\n%s\n", p.Title, p.SourceURI, p.IP, p.Excerpt)
	default:
		return nil
	}
	body = html.UnescapeString(body) + "\n" + e.Blog.EntryURL(e.Entry.Slug).String() + "\n"

	subject := prefix + html.UnescapeString(e.Entry.Title)
	if err := n.queue.Email(e.Blog.OwnerEmail, subject, body); err != nil {
		log.Error().Err(err).Str("blog", e.Blog.ID).Msg("failed to enqueue notification")
		return err
	}
	return nil
}

// announce pings the weblogs services on every change of a published entry and delivers webhooks for new ones.
func (n *Notifier) announce(ctx context.Context, e event.Event) error {
	if e.Entry == nil || e.Entry.Status != domain.Published {
		return nil
	}
	if _, ok := e.Entry.Metadata[domain.MetadataNoPing]; !ok {
		if err := n.queue.Ping(e.Blog); err != nil {
			log.Error().Err(err).Str("blog", e.Blog.ID).Msg("failed to enqueue ping")
		}
	}
	if e.Type != event.EntryAdded {
		return nil
	}
	return n.queue.Webhook(ctx, e.Blog, *e.Entry)
}

func property(blog *domain.Blog, key, def string) string {
	if v := strings.TrimSpace(blog.Property(key)); v != "" {
		return v + " "
	}
	return def
}
