package comment

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	mock_service "github.com/sidereusnuntius/gopress/internal/mocks/service"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/plugin/plugintest"
	"github.com/sidereusnuntius/gopress/internal/throttle"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newPlugin(t *testing.T, bc *event.Broadcaster) (*Plugin, *mock_service.MockService) {
	ctrl := gomock.NewController(t)
	svc := mock_service.NewMockService(ctrl)
	p := &Plugin{}
	err := p.Init(plugin.Config{
		Name:        "comment",
		Service:     svc,
		Broadcaster: bc,
		Throttles:   plugin.Throttles{Comments: throttle.New("comments", 0, time.Minute)},
	})
	if err != nil {
		t.Fatal(err)
	}
	p.now = func() time.Time { return now }
	return p, svc
}

func form(entryID string) url.Values {
	return url.Values{
		"comment":     {"y"},
		"entry_id":    {entryID},
		"author":      {"Bob <b>"},
		"authorURL":   {"example.com"},
		"commentText": {"  Nice post\nreally  "},
	}
}

func openEntry() domain.Entry {
	return domain.Entry{ID: 1, BlogID: "main", Title: "Post", AllowComments: true, Created: now.AddDate(0, 0, -3)}
}

func TestCommentSaved(t *testing.T) {
	bc := event.NewBroadcaster()
	var added []*domain.Comment
	bc.AddListener(event.ListenerFunc(func(ctx context.Context, e event.Event) error {
		added = append(added, e.Comment)
		return nil
	}), event.Types(event.CommentAdded))

	p, svc := newPlugin(t, bc)
	blog := plugintest.Blog("main")
	blog.Properties[domain.PropCommentAutoformat] = "true"

	svc.EXPECT().Entry(gomock.Any(), "main", int64(1)).Return(openEntry(), nil)
	svc.EXPECT().AddComment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Comment) error {
		c.ID = 9
		return nil
	})

	pc, _ := plugintest.Context(blog, nil, form("1"))
	entries := []*domain.Entry{{ID: 1}}
	out, err := p.Process(pc, entries)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if diff := cmp.Diff(entries, out); diff != "" {
		t.Errorf("entries changed (-want +got):\n%s", diff)
	}
	if len(added) != 1 {
		t.Fatalf("expected one CommentAdded event, got %d", len(added))
	}
	want := &domain.Comment{
		ResponseCore: domain.ResponseCore{
			ID:       9,
			BlogID:   "main",
			EntryID:  1,
			IP:       "192.0.2.1",
			Status:   domain.StatusNew,
			Created:  now,
			Metadata: domain.Metadata{domain.MetadataIP: "192.0.2.1"},
		},
		Author:    "Bob &lt;b&gt;",
		AuthorURL: "http://example.com",
		Content:   "Nice post<br />\nreally",
	}
	if diff := cmp.Diff(want, added[0]); diff != "" {
		t.Errorf("comment mismatch (-want +got):\n%s", diff)
	}
	if enabled, _ := plugin.Get(pc, EnabledKey); !enabled {
		t.Error("expected the enabled flag in the context")
	}
}

func TestCommentRefused(t *testing.T) {
	closed := openEntry()
	closed.AllowComments = false
	old := openEntry()
	old.Created = now.AddDate(0, 0, -30)

	tests := []struct {
		name  string
		form  url.Values
		entry *domain.Entry
		blog  func(b *domain.Blog)
	}{
		{name: "comments disabled on blog", form: form("1"), blog: func(b *domain.Blog) { b.CommentsEnabled = false }},
		{name: "not a comment", form: url.Values{"entry_id": {"1"}, "author": {"a"}, "commentText": {"b"}}},
		{name: "missing author", form: url.Values{"comment": {"y"}, "entry_id": {"1"}, "commentText": {"b"}}},
		{name: "malformed entry id", form: form("one")},
		{name: "entry disallows comments", form: form("1"), entry: &closed},
		{
			name:  "expired",
			form:  form("1"),
			entry: &old,
			blog:  func(b *domain.Blog) { b.Properties[domain.PropCommentExpiration] = "14" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// AddComment is never expected: the mock fails the test if it is called.
			p, svc := newPlugin(t, event.NewBroadcaster())
			blog := plugintest.Blog("main")
			if tt.blog != nil {
				tt.blog(blog)
			}
			if tt.entry != nil {
				svc.EXPECT().Entry(gomock.Any(), "main", int64(1)).Return(*tt.entry, nil)
			}
			pc, _ := plugintest.Context(blog, nil, tt.form)
			entries := []*domain.Entry{{ID: 1}}
			out, err := p.Process(pc, entries)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if len(out) != 1 || out[0] != entries[0] {
				t.Errorf("expected the entries unchanged, got %v", out)
			}
		})
	}
}

func TestCommentThrottle(t *testing.T) {
	p, svc := newPlugin(t, event.NewBroadcaster())
	blog := plugintest.Blog("main")
	blog.Properties[domain.PropCommentThrottle] = "5"

	svc.EXPECT().Entry(gomock.Any(), "main", int64(1)).Return(openEntry(), nil).Times(1)
	svc.EXPECT().AddComment(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	for range 3 {
		pc, _ := plugintest.Context(blog, nil, form("1"))
		entries := []*domain.Entry{{ID: 1}}
		out, err := p.Process(pc, entries)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if diff := cmp.Diff(entries, out); diff != "" {
			t.Errorf("entries changed (-want +got):\n%s", diff)
		}
	}

	// Another blog has its own window.
	other := plugintest.Blog("other")
	other.Properties[domain.PropCommentThrottle] = "5"
	svc.EXPECT().Entry(gomock.Any(), "other", int64(1)).Return(openEntry(), nil)
	svc.EXPECT().AddComment(gomock.Any(), gomock.Any()).Return(nil)
	pc, _ := plugintest.Context(other, nil, form("1"))
	if _, err := p.Process(pc, []*domain.Entry{{ID: 1}}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestDestroyedCommentIsNotSaved(t *testing.T) {
	bc := event.NewBroadcaster()
	var seen domain.Metadata
	bc.AddListener(event.InterceptorFunc(func(ctx context.Context, e event.Event) event.Decision {
		return event.Decision{Verdict: event.Continue, Metadata: map[string]string{domain.MetadataDestroy: "true"}}
	}), event.Types(event.CommentSubmitted))
	bc.AddListener(event.InterceptorFunc(func(ctx context.Context, e event.Event) event.Decision {
		seen = e.Metadata
		return event.Proceed()
	}))
	notified := false
	bc.AddListener(event.ListenerFunc(func(ctx context.Context, e event.Event) error {
		notified = true
		return nil
	}), event.Types(event.CommentAdded))

	p, svc := newPlugin(t, bc)
	svc.EXPECT().Entry(gomock.Any(), "main", int64(1)).Return(openEntry(), nil)

	pc, _ := plugintest.Context(plugintest.Blog("main"), nil, form("1"))
	if _, err := p.Process(pc, []*domain.Entry{{ID: 1}}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if notified {
		t.Error("expected no CommentAdded event")
	}
	if seen != nil {
		t.Error("expected the walk to stop at the destroying interceptor")
	}
	if len(pc.Messages()) != 0 {
		t.Errorf("expected no visible message, got %v", pc.Messages())
	}
}

func TestApprovedAndRemembered(t *testing.T) {
	bc := event.NewBroadcaster()
	bc.AddListener(event.InterceptorFunc(func(ctx context.Context, e event.Event) event.Decision {
		return event.Decision{Metadata: map[string]string{domain.MetadataApproved: "true"}}
	}))

	p, svc := newPlugin(t, bc)
	svc.EXPECT().Entry(gomock.Any(), "main", int64(1)).Return(openEntry(), nil)
	var status domain.ResponseStatus
	svc.EXPECT().AddComment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Comment) error {
		status = c.Status
		return nil
	})

	f := form("1")
	f.Set("remember", "on")
	f.Set("redirect_to", "/blog/main/entries/post")
	pc, w := plugintest.Context(plugintest.Blog("main"), nil, f)
	if _, err := p.Process(pc, []*domain.Entry{{ID: 1}}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if status != domain.StatusApproved {
		t.Errorf("expected an approved comment, got %s", status)
	}
	if pc.RedirectTo() != "/blog/main/entries/post" {
		t.Errorf("unexpected redirect %q", pc.RedirectTo())
	}

	cookies := map[string]string{}
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	if cookies[cookieAuthor] != url.QueryEscape("Bob &lt;b&gt;") || cookies[cookieRememberMe] != "true" {
		t.Errorf("unexpected cookies %v", cookies)
	}

	// A later visit without the author field is filled from the cookies.
	pc, _ = plugintest.Context(plugintest.Blog("main"), nil, nil)
	for _, c := range w.Result().Cookies() {
		pc.Request.AddCookie(c)
	}
	if _, err := p.Process(pc, []*domain.Entry{{ID: 1}}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	author, _ := plugin.Get(pc, AuthorKey)
	remember, _ := plugin.Get(pc, RememberMeKey)
	if author != "Bob &lt;b&gt;" || !remember {
		t.Errorf("expected remembered details, got %q %v", author, remember)
	}
}

func TestRedirectWithinBlog(t *testing.T) {
	tests := []struct {
		target string
		ok     bool
	}{
		{"/blog/main/entries/post", true},
		{"https://test.blog/blog/main/?permalink=1", true},
		{"entries/post#comments", true},
		{"/blog/main", true},
		{"https://evil.example/blog/main/", false},
		{"//evil.example/blog/main/", false},
		{"/\\evil.example", false},
		{"http://test.blog/blog/main/", false},
		{"/blog/second/", false},
		{"/blog/main/../second/", false},
		{"/blog/mainly/", false},
		{"https://user@test.blog/blog/main/", false},
		{"javascript:alert(1)", false},
	}
	blog := plugintest.Blog("main")
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := withinBlog(blog, tt.target); got != tt.ok {
				t.Errorf("withinBlog(%q) = %v, want %v", tt.target, got, tt.ok)
			}
		})
	}
}

func TestForeignRedirectIgnored(t *testing.T) {
	p, svc := newPlugin(t, event.NewBroadcaster())
	svc.EXPECT().Entry(gomock.Any(), "main", int64(1)).Return(openEntry(), nil)
	svc.EXPECT().AddComment(gomock.Any(), gomock.Any()).Return(nil)

	f := form("1")
	f.Set("redirect_to", "https://evil.example/")
	pc, _ := plugintest.Context(plugintest.Blog("main"), nil, f)
	if _, err := p.Process(pc, []*domain.Entry{{ID: 1}}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if pc.RedirectTo() != "" {
		t.Errorf("expected no redirect, got %q", pc.RedirectTo())
	}
}
