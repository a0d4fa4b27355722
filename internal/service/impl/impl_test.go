package core

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
	mock_db "github.com/sidereusnuntius/gopress/internal/mocks"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/storage/filestore"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var ctx = context.Background()

func testBlog() *domain.Blog {
	u, _ := url.Parse("https://test.blog/blog/main/")
	return &domain.Blog{
		ID:             "main",
		Name:           "Main",
		URL:            u,
		DisplayEntries: 10,
		Properties: map[string]string{
			domain.PropAcceptedTypes: "image/png, image/jpeg",
		},
	}
}

func newService(t *testing.T) (*AppService, *mock_db.MockDB) {
	ctrl := gomock.NewController(t)
	DB := mock_db.NewMockDB(ctrl)
	base, _ := url.Parse("https://test.blog")
	return &AppService{Config: config.Configuration{Url: base}, DB: DB}, DB
}

func TestAuthorize(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := domain.User{BlogID: "main", Login: "alice", PasswordHash: string(hash)}
	broken := errors.New("disk on fire")

	tests := []struct {
		name     string
		login    string
		password string
		stored   domain.User
		dbErr    error
		queried  bool
		want     error
	}{
		{name: "empty login", login: " ", password: "secret", want: service.ErrNotAuthenticated},
		{name: "empty password", login: "alice", want: service.ErrNotAuthenticated},
		{name: "unknown user", login: "bob", password: "secret", dbErr: db.ErrNotFound, queried: true, want: service.ErrNotAuthenticated},
		{name: "wrong password", login: "alice", password: "guess", stored: user, queried: true, want: service.ErrNotAuthenticated},
		{name: "storage failure", login: "alice", password: "secret", dbErr: broken, queried: true, want: service.ErrStorageFailure},
		{name: "valid", login: "alice", password: "secret", stored: user, queried: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, DB := newService(t)
			if tt.queried {
				DB.EXPECT().LoadUser(ctx, "main", tt.login).Return(tt.stored, tt.dbErr)
			}
			u, err := s.Authorize(ctx, testBlog(), tt.login, tt.password)
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Fatalf("expected error %v, got %v", tt.want, err)
			}
			if tt.want == nil && u.Login != "alice" {
				t.Errorf("expected alice, got %q", u.Login)
			}
		})
	}
}

func TestCheckPermission(t *testing.T) {
	tests := []struct {
		name        string
		permissions []string
		dbErr       error
		want        error
	}{
		{name: "granted", permissions: []string{domain.PermissionEditEntries}},
		{name: "wildcard", permissions: []string{domain.PermissionAll}},
		{name: "missing", permissions: []string{domain.PermissionEditUsers}, want: service.ErrPermissionDenied},
		{name: "unknown user", dbErr: db.ErrNotFound, want: service.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, DB := newService(t)
			DB.EXPECT().LoadUser(ctx, "main", "alice").
				Return(domain.User{Login: "alice", Permissions: tt.permissions}, tt.dbErr)
			err := s.CheckPermission(ctx, testBlog(), "alice", domain.PermissionEditEntries)
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Errorf("expected error %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBlogSnapshot(t *testing.T) {
	s, DB := newService(t)
	DB.EXPECT().LoadBlog(ctx, "main").Return(testBlog(), nil).Times(1)

	first, err := s.Blog(ctx, "main")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := s.Blog(ctx, "main")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first != second {
		t.Error("expected the cached snapshot to be reused")
	}

	edited := first.Clone()
	edited.Name = "Renamed"
	DB.EXPECT().SaveBlog(ctx, gomock.Any()).Return(nil)
	if err = s.UpdateBlog(ctx, edited); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	edited.Name = "changed after update"

	current, _ := s.Blog(ctx, "main")
	if current.Name != "Renamed" {
		t.Errorf("expected the updated snapshot, got %q", current.Name)
	}
	if first.Name != "Main" {
		t.Errorf("expected the old snapshot to stay untouched, got %q", first.Name)
	}
}

func TestUpdateBlogValidation(t *testing.T) {
	s, _ := newService(t)
	b := testBlog()
	b.DisplayEntries = 0
	if err := s.UpdateBlog(ctx, b); !errors.Is(err, service.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestSaveCategoryCycle(t *testing.T) {
	one, two := int64(1), int64(2)

	s, DB := newService(t)
	DB.EXPECT().LoadCategory(ctx, "main", two).Return(domain.Category{ID: two, ParentID: &one}, nil)

	c := domain.Category{ID: one, BlogID: "main", Name: "loop", ParentID: &two}
	if err := s.SaveCategory(ctx, &c); !errors.Is(err, service.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestSaveEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    domain.Entry
		category error
		saved    bool
		want     error
	}{
		{
			name:  "empty title",
			entry: domain.Entry{BlogID: "main", CategoryID: 1, Title: "   "},
			want:  service.ErrValidationFailed,
		},
		{
			name:  "unknown status",
			entry: domain.Entry{BlogID: "main", CategoryID: 1, Title: "t", Status: "hidden"},
			want:  service.ErrValidationFailed,
		},
		{
			name:     "missing category",
			entry:    domain.Entry{BlogID: "main", CategoryID: 7, Title: "t"},
			category: db.ErrNotFound,
			want:     service.ErrValidationFailed,
		},
		{
			name:  "saved as draft",
			entry: domain.Entry{BlogID: "main", CategoryID: 1, Title: "  A   title "},
			saved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, DB := newService(t)
			if tt.category != nil || tt.saved {
				DB.EXPECT().LoadCategory(ctx, "main", tt.entry.CategoryID).
					Return(domain.Category{ID: tt.entry.CategoryID, Name: "general"}, tt.category)
			}
			if tt.saved {
				DB.EXPECT().SaveEntry(ctx, gomock.Any()).Return(nil)
			}

			e := tt.entry
			err := s.SaveEntry(ctx, &e)
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Fatalf("expected error %v, got %v", tt.want, err)
			}
			if tt.saved {
				want := domain.Entry{BlogID: "main", CategoryID: 1, Category: "general", Title: "A title", Status: domain.Draft}
				if diff := cmp.Diff(want, e); diff != "" {
					t.Errorf("entry mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestAddCommentDestroyed(t *testing.T) {
	s, _ := newService(t)
	c := domain.Comment{
		ResponseCore: domain.ResponseCore{Metadata: domain.Metadata{domain.MetadataDestroy: "true"}},
		Author:       "spammer",
		Content:      "buy now",
	}
	if err := s.AddComment(ctx, &c); !errors.Is(err, service.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestSaveMedia(t *testing.T) {
	fs, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	s, DB := newService(t)
	s.Storage = fs

	_, err = s.SaveMedia(ctx, testBlog(), domain.MediaObject{Name: "a.exe", MimeType: "application/x-msdownload", Bits: []byte{1}}, "alice")
	if !errors.Is(err, service.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	DB.EXPECT().SaveMedia(ctx, gomock.Any(), gomock.Any(), "alice").Return(int64(1), nil).Times(2)
	m := domain.MediaObject{Name: "cat.png", MimeType: "image/png", Bits: []byte("meow")}
	first, err := s.SaveMedia(ctx, testBlog(), m, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// An identical upload resolves to the same file.
	second, err := s.SaveMedia(ctx, testBlog(), m, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first.String() != second.String() {
		t.Errorf("expected identical urls, got %s and %s", first, second)
	}
	if first.Host != "test.blog" {
		t.Errorf("unexpected url %s", first)
	}
}
