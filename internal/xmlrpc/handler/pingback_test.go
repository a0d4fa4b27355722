package handler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/throttle"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
	"go.uber.org/mock/gomock"
)

type pages map[string]string

func (p pages) FetchPage(_ context.Context, u *url.URL) (string, error) {
	page, ok := p[u.String()]
	if !ok {
		return "", errors.New("connection refused")
	}
	return page, nil
}

const (
	sourceURI = "https://elsewhere.example/posts/reply"
	targetURI = "https://test.blog/blog/main/entries/hello"
)

var sourcePage = `<html><head><title>A reply &amp; more</title></head><body>
<p>I read a very interesting post today over at <a href="` + targetURI + `">this blog</a> and wanted to say a few words about it.</p>
</body></html>`

func TestPing(t *testing.T) {
	entry := domain.Entry{ID: 3, BlogID: "main", Slug: "hello", AllowPingbacks: true}
	notFound := fmt.Errorf("%w: pingback", service.ErrNotFound)

	tests := []struct {
		name      string
		source    string
		target    string
		disabled  bool
		intercept event.Decision
		expect    func(f *fixture)
		code      int
	}{
		{
			name:   "blank source",
			source: " ",
			target: targetURI,
			code:   xmlrpc.PingbackSourceNotFound,
		},
		{
			name:   "source unreachable",
			source: "https://down.example/",
			target: targetURI,
			code:   xmlrpc.PingbackGeneric,
		},
		{
			name:   "no link to target",
			source: sourceURI,
			target: "https://test.blog/blog/main/entries/other",
			code:   xmlrpc.PingbackNoLinkToTarget,
		},
		{
			name:   "target entry missing",
			source: sourceURI,
			target: targetURI,
			expect: func(f *fixture) {
				f.service.EXPECT().EntryBySlug(gomock.Any(), "main", "hello").Return(domain.Entry{}, fmt.Errorf("%w: entry hello", service.ErrNotFound))
			},
			code: xmlrpc.PingbackTargetNotFound,
		},
		{
			name:   "already registered",
			source: sourceURI,
			target: targetURI,
			expect: func(f *fixture) {
				f.service.EXPECT().EntryBySlug(gomock.Any(), "main", "hello").Return(entry, nil)
				f.service.EXPECT().FindPingback(gomock.Any(), "main", sourceURI, targetURI).Return(domain.Pingback{}, nil)
			},
			code: xmlrpc.PingbackAlreadyRegistered,
		},
		{
			name:     "pingbacks disabled",
			source:   sourceURI,
			target:   targetURI,
			disabled: true,
			expect: func(f *fixture) {
				f.service.EXPECT().EntryBySlug(gomock.Any(), "main", "hello").Return(entry, nil)
				f.service.EXPECT().FindPingback(gomock.Any(), "main", sourceURI, targetURI).Return(domain.Pingback{}, notFound)
			},
			code: xmlrpc.PingbackTargetNotEnabled,
		},
		{
			name:      "destroyed",
			source:    sourceURI,
			target:    targetURI,
			intercept: event.Reject("link farm"),
			expect: func(f *fixture) {
				f.service.EXPECT().EntryBySlug(gomock.Any(), "main", "hello").Return(entry, nil)
				f.service.EXPECT().FindPingback(gomock.Any(), "main", sourceURI, targetURI).Return(domain.Pingback{}, notFound)
			},
			code: xmlrpc.PingbackAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, pages{sourceURI: sourcePage})
			f.blog.PingbacksEnabled = !tt.disabled
			f.bus.AddListener(event.InterceptorFunc(func(context.Context, event.Event) event.Decision {
				return tt.intercept
			}), event.Types(event.PingbackSubmitted))
			if tt.expect != nil {
				tt.expect(f)
			}

			_, err := f.api.ping(ctx, f.call("pingback.ping", tt.source, tt.target))
			wantFault(t, err, tt.code)
			if n := f.events.count(event.PingbackAdded); n != 0 {
				t.Errorf("expected no PingbackAdded event, got %d", n)
			}
		})
	}
}

func TestPingRegistered(t *testing.T) {
	f := newFixture(t, pages{sourceURI: sourcePage})
	f.bus.AddListener(event.InterceptorFunc(func(context.Context, event.Event) event.Decision {
		return event.Decision{Metadata: map[string]string{domain.MetadataApproved: "true"}}
	}), event.Types(event.PingbackSubmitted))

	f.service.EXPECT().EntryBySlug(gomock.Any(), "main", "hello").Return(domain.Entry{ID: 3, Slug: "hello", AllowPingbacks: true}, nil)
	f.service.EXPECT().FindPingback(gomock.Any(), "main", sourceURI, targetURI).Return(domain.Pingback{}, fmt.Errorf("%w: pingback", service.ErrNotFound))
	var saved domain.Pingback
	f.service.EXPECT().AddPingback(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Pingback) error {
		saved = *p
		return nil
	})

	got, err := f.api.ping(ctx, f.call("pingback.ping", sourceURI, targetURI))
	if err != nil {
		t.Fatal(err)
	}
	if got != "Registered pingback from: "+sourceURI+" to: "+targetURI {
		t.Errorf("unexpected answer %v", got)
	}

	want := domain.Pingback{
		ResponseCore: domain.ResponseCore{
			BlogID:  "main",
			EntryID: 3,
			IP:      "198.51.100.9",
			Status:  domain.StatusApproved,
			Created: now,
			Metadata: domain.Metadata{
				MetadataSourceURI:       sourceURI,
				MetadataTargetURI:       targetURI,
				domain.MetadataIP:       "198.51.100.9",
				domain.MetadataApproved: "true",
			},
		},
		Title:     "A reply &amp;amp; more",
		Excerpt:   "A reply &amp; more I read a very interesting post today over at this blog and wanted to say a few words about it.",
		SourceURI: sourceURI,
		TargetURI: targetURI,
		BlogName:  "A reply &amp;amp; more",
	}
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Errorf("pingback mismatch (-want +got):\n%s", diff)
	}
	if n := f.events.count(event.PingbackAdded); n != 1 {
		t.Errorf("expected one PingbackAdded event, got %d", n)
	}
}

func TestPingThrottle(t *testing.T) {
	const other = "https://test.blog/blog/main/entries/other"
	f := newFixture(t, pages{sourceURI: sourcePage})
	f.api.WithThrottle(throttle.New("pingbacks", 0, time.Minute))
	f.blog.Properties[domain.PropPingbackThrottle] = "5"

	tests := []struct {
		name string
		addr string
		code int
	}{
		{name: "first ping is admitted", addr: "198.51.100.9:5050", code: xmlrpc.PingbackNoLinkToTarget},
		{name: "same address within the window", addr: "198.51.100.9:6060", code: xmlrpc.PingbackAccessDenied},
		{name: "another address", addr: "203.0.113.4:5050", code: xmlrpc.PingbackNoLinkToTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := f.call("pingback.ping", sourceURI, other)
			call.Request.RemoteAddr = tt.addr
			_, err := f.api.ping(ctx, call)
			wantFault(t, err, tt.code)
		})
	}

	f.blog.Properties[domain.PropPingbackThrottle] = ""
	_, err := f.api.ping(ctx, f.call("pingback.ping", sourceURI, other))
	wantFault(t, err, xmlrpc.PingbackNoLinkToTarget)
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name   string
		target string
		expect func(f *fixture)
		found  bool
	}{
		{
			name:   "permalink path",
			target: "https://test.blog/blog/main/entries/hello",
			expect: func(f *fixture) {
				f.service.EXPECT().EntryBySlug(gomock.Any(), "main", "hello").Return(domain.Entry{ID: 1}, nil)
			},
			found: true,
		},
		{
			name:   "permalink parameter",
			target: "https://test.blog/blog/main/?permalink=12",
			expect: func(f *fixture) {
				f.service.EXPECT().Entry(gomock.Any(), "main", int64(12)).Return(domain.Entry{ID: 12}, nil)
			},
			found: true,
		},
		{name: "other host", target: "https://evil.example/blog/main/entries/hello"},
		{name: "other blog", target: "https://test.blog/blog/second/entries/hello"},
		{name: "category page", target: "https://test.blog/blog/main/categories/news"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			if tt.expect != nil {
				tt.expect(f)
			}
			_, err := f.api.resolveTarget(ctx, f.blog, tt.target)
			if tt.found != (err == nil) {
				t.Errorf("expected found=%v, got %v", tt.found, err)
			}
			if !tt.found && !errors.Is(err, service.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestExcerptFromSource(t *testing.T) {
	padding := strings.Repeat("lorem ", 60)
	tests := []struct {
		name string
		page string
		want string
	}{
		{"no link", "no link here", ""},
		{"short page", `see <a href="` + targetURI + `">here</a> now`, "see here now"},
		{
			name: "cut at word boundaries",
			page: "x" + padding + `<a href="` + targetURI + `">here</a>` + padding + "y",
			want: strings.TrimSpace(strings.Repeat("lorem ", 31)) + " here " + strings.TrimSpace(strings.Repeat("lorem ", 31)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excerptFromSource(tt.page, targetURI); got != tt.want {
				t.Errorf("excerptFromSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitleFromSource(t *testing.T) {
	if got := titleFromSource("<html><TITLE lang=en>\n Hello </TITLE>"); got != "Hello" {
		t.Errorf("unexpected title %q", got)
	}
	if got := titleFromSource("<p>untitled</p>"); got != "" {
		t.Errorf("expected no title, got %q", got)
	}
}
