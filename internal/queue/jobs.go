package queue

import (
	"time"

	"github.com/mikestefanello/backlite"
)

const (
	EmailQueue   = "Email"
	WebhookQueue = "Webhook"
	PingQueue    = "Ping"
)

// EmailJob is a plain text message to a single recipient.
type EmailJob struct {
	To      string
	Subject string
	Body    string
}

func (j EmailJob) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        EmailQueue,
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// WebhookJob is a serialized activity posted to a webhook endpoint.
type WebhookJob struct {
	To   string
	Body []byte
}

func (j WebhookJob) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        WebhookQueue,
		MaxAttempts: 5,
		Backoff:     5 * time.Second,
		Timeout:     10 * time.Second,
		Retention: &backlite.Retention{
			Duration:   12 * time.Hour,
			OnlyFailed: false,
			Data: &backlite.RetainData{
				OnlyFailed: true,
			},
		},
	}
}

// PingJob tells a weblogs update service that a blog changed.
type PingJob struct {
	Service string
	Name    string
	URL     string
	FeedURL string
}

func (j PingJob) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        PingQueue,
		MaxAttempts: 2,
		Backoff:     30 * time.Second,
		Timeout:     15 * time.Second,
		Retention: &backlite.Retention{
			Duration:   12 * time.Hour,
			OnlyFailed: true,
		},
	}
}
