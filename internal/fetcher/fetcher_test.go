package fetcher

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
	mock_service "github.com/sidereusnuntius/gopress/internal/mocks/service"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/plugin/plugintest"
	"github.com/sidereusnuntius/gopress/internal/service"
	"go.uber.org/mock/gomock"
)

func TestFetchEntries(t *testing.T) {
	published := domain.Entry{ID: 4, Slug: "hello", Status: domain.Published}
	draft := domain.Entry{ID: 5, Slug: "draft", Status: domain.Draft}
	notFound := fmt.Errorf("%w: entry", service.ErrNotFound)

	tests := []struct {
		name   string
		form   url.Values
		expect func(s *mock_service.MockService)
		want   []int64
	}{
		{
			name: "front page",
			expect: func(s *mock_service.MockService) {
				s.EXPECT().Entries(gomock.Any(), "main", db.EntryQuery{Status: domain.Published, Page: 1, PageSize: 10}).
					Return([]domain.Entry{{ID: 2}, {ID: 1}}, nil)
			},
			want: []int64{2, 1},
		},
		{
			name: "second page of a category",
			form: url.Values{"category": {"/go/"}, "page": {"2"}},
			expect: func(s *mock_service.MockService) {
				s.EXPECT().CategoryByName(gomock.Any(), "main", "go").Return(domain.Category{ID: 7, Name: "go"}, nil)
				s.EXPECT().Entries(gomock.Any(), "main", db.EntryQuery{CategoryID: 7, Status: domain.Published, Page: 2, PageSize: 10}).
					Return([]domain.Entry{{ID: 3}}, nil)
			},
			want: []int64{3},
		},
		{
			name: "unknown category",
			form: url.Values{"category": {"nope"}},
			expect: func(s *mock_service.MockService) {
				s.EXPECT().CategoryByName(gomock.Any(), "main", "nope").Return(domain.Category{}, notFound)
			},
			want: []int64{},
		},
		{
			name: "permalink slug",
			form: url.Values{"permalink": {"hello"}},
			expect: func(s *mock_service.MockService) {
				s.EXPECT().EntryBySlug(gomock.Any(), "main", "hello").Return(published, nil)
			},
			want: []int64{4},
		},
		{
			name: "permalink id",
			form: url.Values{"permalink": {"4"}},
			expect: func(s *mock_service.MockService) {
				s.EXPECT().Entry(gomock.Any(), "main", int64(4)).Return(published, nil)
			},
			want: []int64{4},
		},
		{
			name: "draft permalink",
			form: url.Values{"permalink": {"draft"}},
			expect: func(s *mock_service.MockService) {
				s.EXPECT().EntryBySlug(gomock.Any(), "main", "draft").Return(draft, nil)
			},
			want: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mock_service.NewMockService(gomock.NewController(t))
			tt.expect(svc)
			pc, _ := plugintest.Context(plugintest.Blog("main"), nil, tt.form)

			entries, err := New(svc).FetchEntries(pc)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			got := []int64{}
			for _, e := range entries {
				got = append(got, e.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchEntriesFailure(t *testing.T) {
	svc := mock_service.NewMockService(gomock.NewController(t))
	svc.EXPECT().Entries(gomock.Any(), "main", gomock.Any()).Return(nil, service.ErrStorageFailure)
	pc, _ := plugintest.Context(plugintest.Blog("main"), nil, nil)

	if _, err := New(svc).FetchEntries(pc); err == nil {
		t.Error("expected the storage failure to be returned")
	}
}

func TestFetchCategories(t *testing.T) {
	svc := mock_service.NewMockService(gomock.NewController(t))
	categories := []domain.Category{{ID: 1, Name: "go"}, {ID: 2, Name: "rust"}}
	svc.EXPECT().Categories(gomock.Any(), "main").Return(categories, nil)
	pc, _ := plugintest.Context(plugintest.Blog("main"), nil, nil)

	if _, err := New(svc).FetchCategories(pc); err != nil {
		t.Fatal(err)
	}
	got, _ := plugin.Get(pc, CategoriesKey)
	if diff := cmp.Diff(categories, got); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}
