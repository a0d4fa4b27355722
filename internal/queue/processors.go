package queue

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
)

// ErrPingRejected is returned when a weblogs service answers with flerror set.
var ErrPingRejected = errors.New("ping rejected")

const (
	pingMethod         = "weblogUpdates.ping"
	extendedPingMethod = "weblogUpdates.extendedPing"
)

func (q *queueImpl) email() func(context.Context, EmailJob) error {
	return func(ctx context.Context, job EmailJob) error {
		if err := q.mailer.Send(ctx, job.To, job.Subject, job.Body); err != nil {
			log.Error().Err(err).Str("to", job.To).Msg("failed to send email")
			return err
		}
		log.Info().Str("to", job.To).Str("subject", job.Subject).Msg("email sent")
		return nil
	}
}

func (q *queueImpl) deliver() func(context.Context, WebhookJob) error {
	return func(ctx context.Context, job WebhookJob) error {
		to, err := url.Parse(job.To)
		if err != nil {
			return err
		}
		log.Debug().Str("to", job.To).Msg("delivering webhook")
		return q.client.Deliver(ctx, job.Body, to)
	}
}

// ping tries the extended ping first and falls back to the plain one.
func (q *queueImpl) ping() func(context.Context, PingJob) error {
	return func(ctx context.Context, job PingJob) error {
		to, err := url.Parse(job.Service)
		if err != nil {
			return err
		}

		err = q.call(ctx, to, extendedPingMethod, job.Name, job.URL, job.URL, job.FeedURL)
		if err == nil {
			log.Debug().Str("service", job.Service).Msg("extended ping sent")
			return nil
		}
		log.Debug().Err(err).Str("service", job.Service).Msg("extended ping failed")

		if err = q.call(ctx, to, pingMethod, job.Name, job.URL); err != nil {
			log.Error().Err(err).Str("service", job.Service).Msg("ping failed")
			return err
		}
		log.Debug().Str("service", job.Service).Msg("ping sent")
		return nil
	}
}

func (q *queueImpl) call(ctx context.Context, to *url.URL, method string, params ...any) error {
	body, err := xmlrpc.EncodeCall(method, params...)
	if err != nil {
		return err
	}
	res, err := q.client.PostXML(ctx, to, body)
	if err != nil {
		return err
	}
	result, err := xmlrpc.DecodeResponse(bytes.NewReader(res))
	if err != nil {
		return err
	}
	if s, ok := result.(xmlrpc.Struct); ok {
		if failed, _ := s["flerror"].(bool); failed {
			msg, _ := s["message"].(string)
			return fmt.Errorf("%w: %s", ErrPingRejected, msg)
		}
	}
	return nil
}
