package render_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/fetcher"
	mock_service "github.com/sidereusnuntius/gopress/internal/mocks/service"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/plugin/comment"
	"github.com/sidereusnuntius/gopress/internal/plugin/plugintest"
	"github.com/sidereusnuntius/gopress/internal/plugin/trackback"
	"github.com/sidereusnuntius/gopress/internal/render"
	"github.com/sidereusnuntius/gopress/internal/throttle"
	"go.uber.org/mock/gomock"
)

// TestSubmittedMarkupIsEscaped submits responses carrying markup and renders the entry page that shows them.
func TestSubmittedMarkupIsEscaped(t *testing.T) {
	entry := domain.Entry{
		ID:              1,
		BlogID:          "main",
		Slug:            "hello",
		Title:           "Hello",
		Status:          domain.Published,
		Created:         time.Now(),
		AllowComments:   true,
		AllowTrackbacks: true,
	}

	tests := []struct {
		name     string
		p        plugin.Plugin
		form     url.Values
		expect   func(svc *mock_service.MockService, e *domain.Entry)
		excludes []string
		contains []string
	}{
		{
			name: "comment",
			p:    &comment.Plugin{},
			form: url.Values{
				"comment":     {"y"},
				"entry_id":    {"1"},
				"author":      {"<b>mallory</b>"},
				"commentText": {"<script>alert(1)</script>\nbye"},
			},
			expect: func(svc *mock_service.MockService, e *domain.Entry) {
				svc.EXPECT().AddComment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Comment) error {
					e.Comments = append(e.Comments, *c)
					return nil
				})
			},
			excludes: []string{"<script>", "<b>mallory"},
			contains: []string{"&lt;script&gt;alert(1)&lt;/script&gt;", "&lt;b&gt;mallory"},
		},
		{
			name: "trackback without title",
			p:    &trackback.Plugin{},
			form: url.Values{
				"tb":       {"y"},
				"entry_id": {"1"},
				"url":      {"http://x/<img src=x onerror=alert(2)>"},
			},
			expect: func(svc *mock_service.MockService, e *domain.Entry) {
				svc.EXPECT().AddTrackback(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tb *domain.Trackback) error {
					e.Trackbacks = append(e.Trackbacks, *tb)
					return nil
				})
			},
			excludes: []string{"<img"},
			contains: []string{"&lt;img src=x onerror=alert(2)&gt;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mock_service.NewMockService(gomock.NewController(t))
			err := tt.p.Init(plugin.Config{
				Name:        tt.name,
				Service:     svc,
				Broadcaster: event.NewBroadcaster(),
				Throttles: plugin.Throttles{
					Comments:   throttle.New("comments", 0, time.Minute),
					Trackbacks: throttle.New("trackbacks", 0, time.Minute),
				},
			})
			if err != nil {
				t.Fatal(err)
			}

			e := entry
			svc.EXPECT().Entry(gomock.Any(), "main", int64(1)).Return(entry, nil)
			tt.expect(svc, &e)

			blog := plugintest.Blog("main")
			pc, _ := plugintest.Context(blog, nil, tt.form)
			if _, err := tt.p.Process(pc, []*domain.Entry{&e}); err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			page, _ := plugintest.Context(blog, nil, nil)
			plugin.Set(page, fetcher.PermalinkKey, "hello")
			w := httptest.NewRecorder()
			if err := render.New("gopress").Write(w, http.StatusOK, page, []*domain.Entry{&e}); err != nil {
				t.Fatalf("render failed: %s", err)
			}
			body := w.Body.String()
			for _, s := range tt.excludes {
				if strings.Contains(body, s) {
					t.Errorf("page contains %q:\n%s", s, body)
				}
			}
			for _, s := range tt.contains {
				if !strings.Contains(body, s) {
					t.Errorf("page lacks %q:\n%s", s, body)
				}
			}
		})
	}
}
