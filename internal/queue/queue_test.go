package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mikestefanello/backlite"
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/plugin/plugintest"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
)

var ctx = context.Background()

type fakeClient struct {
	delivered []string
	calls     []string
	answer    func(method string) ([]byte, error)
}

func (c *fakeClient) Deliver(_ context.Context, body []byte, to *url.URL) error {
	c.delivered = append(c.delivered, to.String())
	return nil
}

func (c *fakeClient) PostXML(_ context.Context, to *url.URL, body []byte) ([]byte, error) {
	method, _, err := xmlrpc.DecodeCall(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.calls = append(c.calls, method)
	return c.answer(method)
}

func newQueue(client Client) (*queueImpl, *[]backlite.Task) {
	var tasks []backlite.Task
	q := &queueImpl{
		client: client,
		add: func(t backlite.Task) error {
			tasks = append(tasks, t)
			return nil
		},
	}
	return q, &tasks
}

func response(t *testing.T, result any) []byte {
	t.Helper()
	b, err := xmlrpc.EncodeResponse(result)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestPingEnqueue(t *testing.T) {
	q, tasks := newQueue(nil)
	blog := plugintest.Blog("main")
	blog.Name = "Fish &amp; Chips"
	blog.Properties[domain.PropPingURLs] = "https://rpc.example/ping\nhttps://other.example/RPC2"

	if err := q.Ping(blog); err != nil {
		t.Fatal(err)
	}
	want := []backlite.Task{
		PingJob{Service: "https://rpc.example/ping", Name: "Fish & Chips", URL: "https://test.blog/blog/main/", FeedURL: "https://test.blog/blog/main/?flavor=rss2"},
		PingJob{Service: "https://other.example/RPC2", Name: "Fish & Chips", URL: "https://test.blog/blog/main/", FeedURL: "https://test.blog/blog/main/?flavor=rss2"},
	}
	if diff := cmp.Diff(want, *tasks); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestWebhookEnqueue(t *testing.T) {
	q, tasks := newQueue(nil)
	hook, _ := url.Parse("https://hooks.example/in")
	q.webhooks = []*url.URL{hook}

	e := domain.Entry{Slug: "hello", Title: "Hello", Description: "<p>Hi</p>", Created: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
	if err := q.Webhook(ctx, plugintest.Blog("main"), e); err != nil {
		t.Fatal(err)
	}
	if len(*tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(*tasks))
	}
	job := (*tasks)[0].(WebhookJob)
	if job.To != hook.String() {
		t.Errorf("unexpected destination %s", job.To)
	}
	var body map[string]any
	if err := json.Unmarshal(job.Body, &body); err != nil {
		t.Fatal(err)
	}
	if body["type"] != "Create" || body["id"] != "https://test.blog/blog/main/entries/hello/create" {
		t.Errorf("unexpected activity %v", body)
	}
}

func TestEmailWithoutMailer(t *testing.T) {
	q, tasks := newQueue(nil)
	if err := q.Email("owner@test.blog", "s", "b"); err != nil {
		t.Fatal(err)
	}
	if len(*tasks) != 0 {
		t.Errorf("expected nothing to be queued without a mailer, got %v", *tasks)
	}
}

func TestPingProcessor(t *testing.T) {
	job := PingJob{Service: "https://rpc.example/ping", Name: "Blog", URL: "https://test.blog/", FeedURL: "https://test.blog/?flavor=rss2"}
	ok := xmlrpc.Struct{"flerror": false, "message": "Thanks for the ping."}

	tests := []struct {
		name    string
		answer  func(t *testing.T, method string) ([]byte, error)
		calls   []string
		wantErr bool
	}{
		{
			name: "extended ping accepted",
			answer: func(t *testing.T, method string) ([]byte, error) {
				return response(t, ok), nil
			},
			calls: []string{extendedPingMethod},
		},
		{
			name: "fallback after fault",
			answer: func(t *testing.T, method string) ([]byte, error) {
				if method == extendedPingMethod {
					b, _ := xmlrpc.EncodeFault(xmlrpc.ErrUnsupported)
					return b, nil
				}
				return response(t, ok), nil
			},
			calls: []string{extendedPingMethod, pingMethod},
		},
		{
			name: "rejected",
			answer: func(t *testing.T, method string) ([]byte, error) {
				return response(t, xmlrpc.Struct{"flerror": true, "message": "go away"}), nil
			},
			calls:   []string{extendedPingMethod, pingMethod},
			wantErr: true,
		},
		{
			name: "unreachable",
			answer: func(t *testing.T, method string) ([]byte, error) {
				return nil, errors.New("connection refused")
			},
			calls:   []string{extendedPingMethod, pingMethod},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{answer: func(m string) ([]byte, error) { return tt.answer(t, m) }}
			q, _ := newQueue(client)
			err := q.ping()(ctx, job)
			if tt.wantErr != (err != nil) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(tt.calls, client.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeliverProcessor(t *testing.T) {
	client := &fakeClient{}
	q, _ := newQueue(client)
	if err := q.deliver()(ctx, WebhookJob{To: "https://hooks.example/in", Body: []byte("{}")}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"https://hooks.example/in"}, client.delivered); diff != "" {
		t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
	}
}

func TestSMTPMailer(t *testing.T) {
	var addr, from string
	var rcpt []string
	var msg []byte
	m := &SMTPMailer{
		cfg: config.SmtpConfig{Host: "mail.test.blog", Port: 587, Username: "blog", Password: "pw", From: "blog@test.blog"},
		send: func(a string, _ smtp.Auth, f string, to []string, data []byte) error {
			addr, from, rcpt, msg = a, f, to, data
			return nil
		},
		now: func() time.Time { return time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC) },
	}
	if err := m.Send(ctx, "owner@test.blog", "Comment on: Ünïcode", "Hello"); err != nil {
		t.Fatal(err)
	}
	if addr != "mail.test.blog:587" || from != "blog@test.blog" || !cmp.Equal(rcpt, []string{"owner@test.blog"}) {
		t.Errorf("unexpected envelope %s %s %v", addr, from, rcpt)
	}
	text := string(msg)
	for _, want := range []string{
		"To: owner@test.blog\r\n",
		"Subject: =?utf-8?q?",
		"Date: Thu, 16 Oct 2025 09:00:00 +0000\r\n",
		"\r\n\r\nHello",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message lacks %q:\n%s", want, text)
		}
	}
}

func TestNewMailerDisabled(t *testing.T) {
	if m := NewMailer(config.SmtpConfig{}); m != nil {
		t.Errorf("expected no mailer, got %v", m)
	}
}
