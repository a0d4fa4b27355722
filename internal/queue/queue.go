// Package queue runs the outbound work triggered by blog events on backlite queues: owner notifications by e-mail,
// signed webhook deliveries and weblogs pings.
package queue

import (
	"context"
	"encoding/json"
	"html"
	"net/url"

	"code.superseriousbusiness.org/activity/streams"
	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/conversions"
	"github.com/sidereusnuntius/gopress/internal/domain"
)

type Queue interface {
	// Email schedules a message to one recipient.
	Email(to, subject, body string) error
	// Webhook schedules the delivery of a Create activity for e to every configured webhook.
	Webhook(ctx context.Context, blog *domain.Blog, e domain.Entry) error
	// Ping schedules a weblogs update ping to every service listed by the blog.
	Ping(blog *domain.Blog) error
}

// Client is the part of the HTTP client the jobs need.
type Client interface {
	Deliver(ctx context.Context, body []byte, to *url.URL) error
	PostXML(ctx context.Context, to *url.URL, body []byte) ([]byte, error)
}

type queueImpl struct {
	client   Client
	mailer   Mailer
	webhooks []*url.URL
	add      func(backlite.Task) error
}

func New(ctx context.Context, client Client, mailer Mailer, webhooks []string, blClient *backlite.Client) (Queue, error) {
	hooks := make([]*url.URL, 0, len(webhooks))
	for _, w := range webhooks {
		u, err := url.Parse(w)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, u)
	}

	q := &queueImpl{
		client:   client,
		mailer:   mailer,
		webhooks: hooks,
		add: func(t backlite.Task) error {
			_, err := blClient.Add(t).Save()
			return err
		},
	}
	blClient.Register(backlite.NewQueue[EmailJob](q.email()))
	blClient.Register(backlite.NewQueue[WebhookJob](q.deliver()))
	blClient.Register(backlite.NewQueue[PingJob](q.ping()))
	blClient.Start(ctx)
	log.Info().Msg("started task queue")
	return q, nil
}

func (q *queueImpl) Email(to, subject, body string) error {
	if q.mailer == nil {
		log.Debug().Str("to", to).Msg("no mailer configured, dropping notification")
		return nil
	}
	log.Debug().Str("to", to).Str("subject", subject).Msg("enqueuing email")
	return q.add(EmailJob{To: to, Subject: subject, Body: body})
}

func (q *queueImpl) Webhook(ctx context.Context, blog *domain.Blog, e domain.Entry) error {
	if len(q.webhooks) == 0 {
		return nil
	}
	data, err := streams.Serialize(conversions.NewCreate(blog, e))
	if err != nil {
		return err
	}
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for _, hook := range q.webhooks {
		if err = q.add(WebhookJob{To: hook.String(), Body: body}); err != nil {
			log.Error().Err(err).Str("to", hook.String()).Msg("failed to enqueue webhook delivery")
		}
	}
	return nil
}

func (q *queueImpl) Ping(blog *domain.Blog) error {
	services := blog.ListProperty(domain.PropPingURLs)
	if len(services) == 0 {
		log.Debug().Str("blog", blog.ID).Msg("no ping urls")
		return nil
	}

	feed := *blog.URL
	feed.RawQuery = url.Values{"flavor": {"rss2"}}.Encode()
	for _, s := range services {
		job := PingJob{
			Service: s,
			Name:    html.UnescapeString(blog.Name),
			URL:     blog.URL.String(),
			FeedURL: feed.String(),
		}
		if err := q.add(job); err != nil {
			return err
		}
	}
	return nil
}
