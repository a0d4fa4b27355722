package handler

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
	"go.uber.org/mock/gomock"
)

func TestNewPost(t *testing.T) {
	created := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		blogID  string
		post    xmlrpc.Struct
		publish bool
		lookup  func(f *fixture)
		want    domain.Entry
	}{
		{
			name:    "published",
			blogID:  "2",
			post:    xmlrpc.Struct{"title": "Hello", "description": "<p>First</p>", "dateCreated": created},
			publish: true,
			lookup: func(f *fixture) {
				f.service.EXPECT().Category(gomock.Any(), "main", int64(2)).Return(domain.Category{ID: 2, Name: "news"}, nil)
			},
			want: domain.Entry{
				ID: 7, BlogID: "main", CategoryID: 2, Title: "Hello", Description: "<p>First</p>",
				Status: domain.Published, Author: "alice", Created: created, Modified: created,
				AllowComments: true, AllowTrackbacks: true, AllowPingbacks: true,
			},
		},
		{
			name:    "draft in a named category",
			blogID:  "1",
			post:    xmlrpc.Struct{"description": "Just a body", "categories": xmlrpc.Array{"notes"}},
			publish: false,
			lookup: func(f *fixture) {
				f.service.EXPECT().CategoryByName(gomock.Any(), "main", "notes").Return(domain.Category{ID: 3, Name: "notes"}, nil)
			},
			want: domain.Entry{
				ID: 7, BlogID: "main", CategoryID: 3, Title: "Just a body", Description: "Just a body",
				Status: domain.Draft, Author: "alice", Created: now, Modified: now,
				AllowComments: true, AllowTrackbacks: true, AllowPingbacks: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.allow(domain.PermissionMetaWeblogAPI)
			tt.lookup(f)
			var saved domain.Entry
			f.service.EXPECT().SaveEntry(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.Entry) error {
				e.ID = 7
				saved = *e
				return nil
			})

			got, err := f.api.newPost(ctx, f.call("metaWeblog.newPost", tt.blogID, "alice", "secret", tt.post, tt.publish))
			if err != nil {
				t.Fatal(err)
			}
			if got != "7" {
				t.Errorf("expected post id 7, got %v", got)
			}
			if diff := cmp.Diff(tt.want, saved); diff != "" {
				t.Errorf("entry mismatch (-want +got):\n%s", diff)
			}
			if n := f.events.count(event.EntryAdded); n != 1 {
				t.Errorf("expected exactly one EntryAdded event, got %d", n)
			}
		})
	}
}

func TestNewPostFailures(t *testing.T) {
	t.Run("unknown category", func(t *testing.T) {
		f := newFixture(t, nil)
		f.allow(domain.PermissionMetaWeblogAPI)
		f.service.EXPECT().Category(gomock.Any(), "main", int64(9)).Return(domain.Category{}, fmt.Errorf("%w: category", service.ErrNotFound))

		_, err := f.api.newPost(ctx, f.call("metaWeblog.newPost", "9", "alice", "secret", xmlrpc.Struct{"title": "x"}, true))
		wantFault(t, err, xmlrpc.CodeUnknown)
		if n := f.events.count(event.EntryAdded); n != 0 {
			t.Errorf("expected no EntryAdded event, got %d", n)
		}
	})
	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t, nil)
		f.allow(domain.PermissionMetaWeblogAPI)
		f.service.EXPECT().Category(gomock.Any(), "main", int64(2)).Return(domain.Category{ID: 2}, nil)
		f.service.EXPECT().SaveEntry(gomock.Any(), gomock.Any()).Return(fmt.Errorf("%w: entry: disk full", service.ErrStorageFailure))

		_, err := f.api.newPost(ctx, f.call("metaWeblog.newPost", "2", "alice", "secret", xmlrpc.Struct{"title": "x"}, true))
		if err != xmlrpc.ErrUnknown {
			t.Errorf("expected the unknown fault, got %v", err)
		}
		if n := f.events.count(event.EntryAdded); n != 0 {
			t.Errorf("expected no EntryAdded event, got %d", n)
		}
	})
	t.Run("missing struct", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.api.newPost(ctx, f.call("metaWeblog.newPost", "2", "alice", "secret"))
		wantFault(t, err, xmlrpc.CodeUnknown)
	})
}

func TestEditPost(t *testing.T) {
	f := newFixture(t, nil)
	f.allow(domain.PermissionMetaWeblogAPI)
	existing := domain.Entry{ID: 5, BlogID: "main", CategoryID: 2, Title: "Old", Description: "old", Status: domain.Draft, Created: now.Add(-time.Hour)}
	f.service.EXPECT().Entry(gomock.Any(), "main", int64(5)).Return(existing, nil)
	var saved domain.Entry
	f.service.EXPECT().SaveEntry(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.Entry) error {
		saved = *e
		return nil
	})

	got, err := f.api.editPost(ctx, f.call("metaWeblog.editPost", "/5/", "alice", "secret", xmlrpc.Struct{"title": "New", "description": "new"}, true))
	if err != nil {
		t.Fatal(err)
	}
	if got != true {
		t.Errorf("expected true, got %v", got)
	}
	want := existing
	want.Title, want.Description, want.Status, want.Modified = "New", "new", domain.Published, now
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
	if n := f.events.count(event.EntryUpdated); n != 1 {
		t.Errorf("expected one EntryUpdated event, got %d", n)
	}
}

func TestGetPost(t *testing.T) {
	f := newFixture(t, nil)
	f.allow(domain.PermissionMetaWeblogAPI)
	f.service.EXPECT().Entry(gomock.Any(), "main", int64(5)).
		Return(domain.Entry{ID: 5, CategoryID: 2, Title: "Hi", Slug: "hi", Description: "body", Created: now}, nil)

	got, err := f.api.getPost(ctx, f.call("metaWeblog.getPost", "5", "alice", "secret"))
	if err != nil {
		t.Fatal(err)
	}
	want := xmlrpc.Struct{
		"title":       "Hi",
		"link":        "https://test.blog/blog/main/entries/hi",
		"permaLink":   "https://test.blog/blog/main/entries/hi",
		"description": "body",
		"dateCreated": now,
		"postid":      "5",
		"categories":  []string{"2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("post mismatch (-want +got):\n%s", diff)
	}

	f.allow(domain.PermissionMetaWeblogAPI)
	f.service.EXPECT().Entry(gomock.Any(), "main", int64(6)).Return(domain.Entry{}, fmt.Errorf("%w: entry 6", service.ErrNotFound))
	_, err = f.api.getPost(ctx, f.call("metaWeblog.getPost", "6", "alice", "secret"))
	wantFault(t, err, xmlrpc.CodeInvalidPostID)
}

func TestDeletePost(t *testing.T) {
	t.Run("non numeric id", func(t *testing.T) {
		f := newFixture(t, nil)
		f.allow(domain.PermissionMetaWeblogAPI)
		// No Entry or DeleteEntry expectation: gomock fails the test on any load or delete.
		_, err := f.api.deletePost(ctx, f.call("metaWeblog.deletePost", "appkey", "hello-world", "alice", "secret", true))
		wantFault(t, err, xmlrpc.CodeInvalidPostID)
		if n := f.events.count(event.EntryDeleted); n != 0 {
			t.Errorf("expected no EntryDeleted event, got %d", n)
		}
	})
	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t, nil)
		f.allow(domain.PermissionMetaWeblogAPI)
		f.service.EXPECT().Entry(gomock.Any(), "main", int64(5)).Return(domain.Entry{ID: 5, BlogID: "main"}, nil)
		f.service.EXPECT().DeleteEntry(gomock.Any(), "main", int64(5)).Return(nil)

		got, err := f.api.deletePost(ctx, f.call("metaWeblog.deletePost", "appkey", "5", "alice", "secret", true))
		if err != nil || got != true {
			t.Fatalf("expected true, got %v, %v", got, err)
		}
		if n := f.events.count(event.EntryDeleted); n != 1 {
			t.Errorf("expected one EntryDeleted event, got %d", n)
		}
		if f.events.last.Entry == nil || f.events.last.Entry.ID != 5 {
			t.Errorf("expected the deleted entry on the event, got %+v", f.events.last.Entry)
		}
	})
	t.Run("missing entry", func(t *testing.T) {
		f := newFixture(t, nil)
		f.allow(domain.PermissionMetaWeblogAPI)
		f.service.EXPECT().Entry(gomock.Any(), "main", int64(5)).Return(domain.Entry{}, fmt.Errorf("%w: entry 5", service.ErrNotFound))

		_, err := f.api.deletePost(ctx, f.call("metaWeblog.deletePost", "appkey", "5", "alice", "secret", true))
		wantFault(t, err, xmlrpc.CodeUnknown)
	})
}

func TestCategories(t *testing.T) {
	cats := []domain.Category{
		{ID: 1, Name: "news", Description: "News and updates"},
		{ID: 2, Name: "notes"},
	}

	f := newFixture(t, nil)
	f.allow(domain.PermissionMetaWeblogAPI)
	f.service.EXPECT().Categories(gomock.Any(), "main").Return(cats, nil)
	got, err := f.api.getCategories(ctx, f.call("metaWeblog.getCategories", "main", "alice", "secret"))
	if err != nil {
		t.Fatal(err)
	}
	want := xmlrpc.Struct{
		"1": xmlrpc.Struct{
			"description": "News and updates",
			"htmlUrl":     "https://test.blog/blog/main/categories/news",
			"rssUrl":      "https://test.blog/blog/main/categories/news?flavor=rss2",
		},
		"2": xmlrpc.Struct{
			"description": "notes",
			"htmlUrl":     "https://test.blog/blog/main/categories/notes",
			"rssUrl":      "https://test.blog/blog/main/categories/notes?flavor=rss2",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	f.allow(domain.PermissionMetaWeblogAPI)
	f.service.EXPECT().Categories(gomock.Any(), "main").Return(nil, nil)
	_, err = f.api.getUsersBlogs(ctx, f.call("metaWeblog.getUsersBlogs", "appkey", "alice", "secret"))
	wantFault(t, err, xmlrpc.CodeNoBlogs)
}

func TestGetRecentPosts(t *testing.T) {
	f := newFixture(t, nil)
	f.allow(domain.PermissionMetaWeblogAPI)
	f.service.EXPECT().Entries(gomock.Any(), "main", db.EntryQuery{CategoryID: 2, Page: 1, PageSize: 3}).
		Return([]domain.Entry{{ID: 9, Slug: "nine", CategoryID: 2}, {ID: 8, Slug: "eight", CategoryID: 2}}, nil)

	got, err := f.api.getRecentPosts(ctx, f.call("metaWeblog.getRecentPosts", "2", "alice", "secret", 3))
	if err != nil {
		t.Fatal(err)
	}
	posts := got.([]xmlrpc.Struct)
	if len(posts) != 2 || posts[0]["postid"] != "9" || posts[1]["postid"] != "8" {
		t.Errorf("unexpected posts %v", posts)
	}

	f.allow(domain.PermissionMetaWeblogAPI)
	f.service.EXPECT().Entries(gomock.Any(), "main", db.EntryQuery{Page: 1, PageSize: recentLimit}).Return(nil, nil)
	if _, err := f.api.getRecentPosts(ctx, f.call("metaWeblog.getRecentPosts", "main", "alice", "secret", 0)); err != nil {
		t.Error(err)
	}

	f.allow(domain.PermissionMetaWeblogAPI)
	_, err = f.api.getRecentPosts(ctx, f.call("metaWeblog.getRecentPosts", "other", "alice", "secret", 3))
	wantFault(t, err, xmlrpc.CodeUnknown)
}

func TestNewMediaObject(t *testing.T) {
	media := xmlrpc.Struct{"name": `C:\photos\cat.png`, "type": "image/png", "bits": []byte{0x89, 'P', 'N', 'G'}}

	f := newFixture(t, nil)
	f.allow(domain.PermissionMetaWeblogAPI)
	stored, _ := url.Parse("https://test.blog/resources/main/abc.png")
	f.service.EXPECT().SaveMedia(gomock.Any(), f.blog, domain.MediaObject{
		BlogID:   "main",
		Name:     "cat.png",
		MimeType: "image/png",
		Bits:     []byte{0x89, 'P', 'N', 'G'},
	}, "alice").Return(stored, nil)

	got, err := f.api.newMediaObject(ctx, f.call("metaWeblog.newMediaObject", "main", "alice", "secret", media))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(xmlrpc.Struct{"url": stored.String()}, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	f.allow(domain.PermissionMetaWeblogAPI)
	f.service.EXPECT().SaveMedia(gomock.Any(), f.blog, gomock.Any(), "alice").
		Return(nil, fmt.Errorf("%w: MIME type not accepted. Received MIME type: image/png", service.ErrValidationFailed))
	_, err = f.api.newMediaObject(ctx, f.call("metaWeblog.newMediaObject", "main", "alice", "secret", media))
	wantFault(t, err, xmlrpc.CodeUnknown)
	if msg := err.(*xmlrpc.Fault).Message; msg != "MIME type not accepted. Received MIME type: image/png" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestTemplatesUnsupported(t *testing.T) {
	f := newFixture(t, nil)
	_, err := unsupported(ctx, f.call("metaWeblog.getTemplate"))
	wantFault(t, err, xmlrpc.CodeUnsupported)
}
