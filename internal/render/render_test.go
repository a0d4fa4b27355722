package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/fetcher"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/plugin/admin"
	"github.com/sidereusnuntius/gopress/internal/plugin/comment"
	"github.com/sidereusnuntius/gopress/internal/plugin/moderation"
	"github.com/sidereusnuntius/gopress/internal/plugin/plugintest"
	"github.com/sidereusnuntius/gopress/internal/plugin/trackback"
)

func render(t *testing.T, pc *plugin.Context, entries []*domain.Entry) (string, string) {
	t.Helper()
	w := httptest.NewRecorder()
	if err := New("gopress").Write(w, http.StatusOK, pc, entries); err != nil {
		t.Fatalf("render failed: %s", err)
	}
	return w.Body.String(), w.Header().Get("Content-Type")
}

func TestPages(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entry := &domain.Entry{
		ID:            3,
		Slug:          "hello",
		Title:         "Hello <world>",
		Description:   "<p>first</p>",
		Status:        domain.Published,
		Created:       created,
		AllowComments: true,
		Comments: []domain.Comment{
			{ResponseCore: domain.ResponseCore{ID: 1, Status: domain.StatusApproved}, Author: "ann", Content: "nice"},
			{ResponseCore: domain.ResponseCore{ID: 2, Status: domain.StatusSpam}, Author: "bot", Content: "spam"},
		},
	}

	tests := []struct {
		name        string
		setup       func(pc *plugin.Context)
		entries     []*domain.Entry
		contentType string
		contains    []string
		excludes    []string
	}{
		{
			name:        "entry list",
			entries:     []*domain.Entry{entry},
			contentType: ContentHTML,
			contains:    []string{"Hello &lt;world&gt;", "<p>first</p>", "https://test.blog/blog/main/entries/hello"},
			excludes:    []string{"commentText"},
		},
		{
			name: "permalink with comment form",
			setup: func(pc *plugin.Context) {
				plugin.Set(pc, fetcher.PermalinkKey, "hello")
				plugin.Set(pc, comment.EnabledKey, true)
				plugin.Set(pc, comment.AuthorKey, `"ann"`)
				plugin.Set(pc, moderation.ChallengeKey, moderation.Challenge{Value1: 3, Value2: 4, Operator: "+"})
			},
			entries:     []*domain.Entry{entry},
			contentType: ContentHTML,
			contains:    []string{`id="comment-1"`, `name="commentText"`, "What is 3 + 4?", `value="&#34;ann&#34;"`},
			excludes:    []string{`id="comment-2"`},
		},
		{
			name: "trackback failure",
			setup: func(pc *plugin.Context) {
				plugin.Set(pc, trackback.ReturnCodeKey, trackback.CodeFailure)
				plugin.Set(pc, trackback.MessageKey, "Trackback throttling enabled.")
				pc.SetPage("trackback", trackback.PageFailure)
			},
			contentType: ContentXML,
			contains:    []string{"<error>1</error>", "<message>Trackback throttling enabled.</message>"},
		},
		{
			name: "trackback success",
			setup: func(pc *plugin.Context) {
				plugin.Set(pc, trackback.ReturnCodeKey, trackback.CodeSuccess)
				pc.SetPage("trackback", trackback.PageSuccess)
			},
			contentType: ContentXML,
			contains:    []string{"<error>0</error>"},
			excludes:    []string{"<message>"},
		},
		{
			name:        "feed",
			setup:       func(pc *plugin.Context) { pc.Flavor = config.RSS2 },
			entries:     []*domain.Entry{entry},
			contentType: ContentRSS,
			contains:    []string{`<rss version="2.0">`, "<title>Hello &lt;world&gt;</title>", "Wed, 01 May 2024 12:00:00 GMT"},
		},
		{
			name:        "login",
			setup:       func(pc *plugin.Context) { pc.SetPage("admin", admin.PageLogin) },
			contentType: ContentHTML,
			contains:    []string{`action="https://test.blog/blog/main/admin"`, `name="password"`},
		},
		{
			name: "entry moderation list",
			setup: func(pc *plugin.Context) {
				pc.SetPage("edit-blog-entries", admin.PageEntry)
				plugin.Set(pc, admin.EntryKey, entry)
			},
			contentType: ContentHTML,
			contains: []string{
				`<input type="checkbox" name="blog-comment-id" value="2"> bot: spam (spam)</label>`,
				`value="approve-blog-comments"`,
			},
			excludes: []string{"blog-trackback-id"},
		},
		{
			name: "escaped messages",
			setup: func(pc *plugin.Context) {
				pc.SetPage("admin", admin.PageAdministration)
				pc.AddMessage("<script>")
			},
			contentType: ContentHTML,
			contains:    []string{"&lt;script&gt;"},
			excludes:    []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, _ := plugintest.Context(plugintest.Blog("main"), nil, nil)
			if tt.setup != nil {
				tt.setup(pc)
			}
			body, contentType := render(t, pc, tt.entries)
			if contentType != tt.contentType {
				t.Errorf("expected content type %s, got %s", tt.contentType, contentType)
			}
			for _, s := range tt.contains {
				if !strings.Contains(body, s) {
					t.Errorf("expected body to contain %q:\n%s", s, body)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(body, s) {
					t.Errorf("expected body not to contain %q:\n%s", s, body)
				}
			}
		})
	}
}
