package xmlrpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	mock_service "github.com/sidereusnuntius/gopress/internal/mocks/service"
	"github.com/sidereusnuntius/gopress/internal/plugin/plugintest"
	"github.com/sidereusnuntius/gopress/internal/service"
	"go.uber.org/mock/gomock"
)

func call(method string) string {
	return `<?xml version="1.0"?><methodCall><methodName>` + method + `</methodName><params>` +
		`<param><value><string>hello</string></value></param></params></methodCall>`
}

func newServer(t *testing.T) (http.Handler, *mock_service.MockService) {
	s := mock_service.NewMockService(gomock.NewController(t))
	srv := NewServer(s)
	srv.Register("demo.echo", func(ctx context.Context, c *Call) (any, error) {
		word, err := c.Params.String(0)
		if err != nil {
			return nil, err
		}
		return c.Blog.ID + ":" + word, nil
	})
	srv.Register("demo.denied", func(context.Context, *Call) (any, error) {
		return nil, ErrPermission
	})
	srv.Register("demo.broken", func(context.Context, *Call) (any, error) {
		return nil, errors.New("disk on fire")
	})
	srv.Register("demo.panic", func(context.Context, *Call) (any, error) {
		panic("boom")
	})

	r := chi.NewRouter()
	r.Handle("/xmlrpc/{blogID}", srv)
	return r, s
}

func TestServer(t *testing.T) {
	disabled := plugintest.Blog("quiet")
	disabled.XmlrpcEnabled = false

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		expect func(s *mock_service.MockService)
		status int
		want   string
	}{
		{
			name:   "get is refused",
			method: http.MethodGet,
			path:   "/xmlrpc/main",
			status: http.StatusMethodNotAllowed,
			want:   "XML-RPC server only accepts POST requests.",
		},
		{
			name:   "unknown blog",
			method: http.MethodPost,
			path:   "/xmlrpc/missing",
			body:   call("demo.echo"),
			expect: func(s *mock_service.MockService) {
				s.EXPECT().Blog(gomock.Any(), "missing").Return(nil, fmt.Errorf("%w: blog", service.ErrNotFound))
			},
			status: http.StatusNotFound,
			want:   "Unable to load blog ID",
		},
		{
			name:   "xmlrpc disabled",
			method: http.MethodPost,
			path:   "/xmlrpc/quiet",
			body:   call("demo.echo"),
			expect: func(s *mock_service.MockService) {
				s.EXPECT().Blog(gomock.Any(), "quiet").Return(disabled, nil)
			},
			status: http.StatusNotFound,
			want:   "Unable to load blog ID",
		},
		{
			name:   "dispatch",
			method: http.MethodPost,
			path:   "/xmlrpc/main",
			body:   call("demo.echo"),
			status: http.StatusOK,
			want:   "<string>main:hello</string>",
		},
		{
			name:   "unsupported method",
			method: http.MethodPost,
			path:   "/xmlrpc/main",
			body:   call("demo.nothing"),
			status: http.StatusOK,
			want:   "<int>1001</int>",
		},
		{
			name:   "fault",
			method: http.MethodPost,
			path:   "/xmlrpc/main",
			body:   call("demo.denied"),
			status: http.StatusOK,
			want:   "<int>4000</int>",
		},
		{
			name:   "plain error",
			method: http.MethodPost,
			path:   "/xmlrpc/main",
			body:   call("demo.broken"),
			status: http.StatusOK,
			want:   "<int>1000</int>",
		},
		{
			name:   "panic",
			method: http.MethodPost,
			path:   "/xmlrpc/main",
			body:   call("demo.panic"),
			status: http.StatusOK,
			want:   "<int>1000</int>",
		},
		{
			name:   "malformed",
			method: http.MethodPost,
			path:   "/xmlrpc/main",
			body:   "<methodCall>",
			status: http.StatusOK,
			want:   "Malformed XML-RPC request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s := newServer(t)
			if tt.expect != nil {
				tt.expect(s)
			} else if tt.method == http.MethodPost {
				s.EXPECT().Blog(gomock.Any(), "main").Return(plugintest.Blog("main"), nil)
			}

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("expected %q in body:\n%s", tt.want, rec.Body.String())
			}
		})
	}
}

func TestMethods(t *testing.T) {
	srv := NewServer(nil)
	srv.Register("b.two", nil)
	srv.Register("a.one", nil)
	if got := strings.Join(srv.Methods(), ","); got != "a.one,b.two" {
		t.Errorf("unexpected methods %s", got)
	}
}
