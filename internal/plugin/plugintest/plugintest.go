// Package plugintest provides helpers to run plugins against recorded HTTP exchanges.
package plugintest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/plugin"
)

// Session is an in memory plugin.Session. It may be shared by several contexts to simulate one visitor.
type Session struct {
	mu     sync.Mutex
	values map[string]any
}

func NewSession() *Session {
	return &Session{values: map[string]any{}}
}

func (s *Session) GetString(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _ := s.values[key].(string)
	return v, nil
}

func (s *Session) PutString(_ http.ResponseWriter, key string, val string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = val
	return nil
}

func (s *Session) GetBool(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _ := s.values[key].(bool)
	return v, nil
}

func (s *Session) PutBool(_ http.ResponseWriter, key string, val bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = val
	return nil
}

func (s *Session) Remove(_ http.ResponseWriter, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *Session) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

// Blog returns a blog rooted at https://test.blog/blog/<id>/ with every response kind enabled.
func Blog(id string) *domain.Blog {
	u, _ := url.Parse("https://test.blog/blog/" + id + "/")
	return &domain.Blog{
		ID:                id,
		Name:              "Test blog",
		URL:               u,
		DisplayEntries:    10,
		CommentsEnabled:   true,
		TrackbacksEnabled: true,
		PingbacksEnabled:  true,
		XmlrpcEnabled:     true,
		Properties:        map[string]string{},
	}
}

// Context builds a plugin context for a form POST, or a GET when form is nil.
func Context(blog *domain.Blog, session plugin.Session, form url.Values) (*plugin.Context, *httptest.ResponseRecorder) {
	var r *http.Request
	if form == nil {
		r = httptest.NewRequest(http.MethodGet, blog.URL.String(), nil)
	} else {
		r = httptest.NewRequest(http.MethodPost, blog.URL.String(), strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	r.RemoteAddr = "192.0.2.1:4321"
	w := httptest.NewRecorder()
	pc := plugin.NewContext(w, r, blog, config.HTML)
	pc.Session = session
	return pc, w
}
