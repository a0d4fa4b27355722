package plugin

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/service"
)

// stub is a plugin whose Process behavior is scripted per test and which counts its cleanups.
type stub struct {
	Base
	name     string
	process  func(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error)
	cleanups int
	cleanErr error
	panicky  bool
	trace    *[]string
}

func (p *stub) Process(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	*p.trace = append(*p.trace, p.name)
	if p.process == nil {
		return entries, nil
	}
	return p.process(pc, entries)
}

func (p *stub) Cleanup(pc *Context) error {
	p.cleanups++
	if p.panicky {
		panic("cleanup panic")
	}
	return p.cleanErr
}

func newChain(stubs ...*stub) *Chain {
	c := &Chain{}
	for _, p := range stubs {
		c.members = append(c.members, member{name: p.name, plugin: p})
	}
	return c
}

func newContext() *Context {
	r := httptest.NewRequest("GET", "/blog/default/", nil)
	return NewContext(httptest.NewRecorder(), r, &domain.Blog{ID: "default"}, "html")
}

func TestCleanupRunsOncePerPlugin(t *testing.T) {
	fail := func(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error) {
		return nil, errors.New("database is gone")
	}
	boom := func(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error) {
		panic("nil map")
	}
	denied := func(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error) {
		return nil, fmt.Errorf("%w: edit_blog_entries_permission", service.ErrPermissionDenied)
	}

	tests := []struct {
		name      string
		behaviors []func(*Context, []*domain.Entry) ([]*domain.Entry, error)
		wantTrace []string
		wantErr   bool
	}{
		{"all succeed", []func(*Context, []*domain.Entry) ([]*domain.Entry, error){nil, nil, nil},
			[]string{"p0", "p1", "p2"}, false},
		{"middle fails", []func(*Context, []*domain.Entry) ([]*domain.Entry, error){nil, fail, nil},
			[]string{"p0", "p1"}, true},
		{"first panics", []func(*Context, []*domain.Entry) ([]*domain.Entry, error){boom, nil, nil},
			[]string{"p0"}, true},
		{"recoverable error continues", []func(*Context, []*domain.Entry) ([]*domain.Entry, error){denied, nil, nil},
			[]string{"p0", "p1", "p2"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trace []string
			var stubs []*stub
			for i, b := range tt.behaviors {
				stubs = append(stubs, &stub{name: fmt.Sprintf("p%d", i), process: b, trace: &trace})
			}
			// A failing and a panicking cleanup must not stop the others.
			stubs[0].cleanErr = errors.New("close failed")
			stubs[1].panicky = true

			_, err := newChain(stubs...).Run(newContext(), nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr = %v, got %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(tt.wantTrace, trace); diff != "" {
				t.Errorf("unexpected process order (-want +got):\n%s", diff)
			}
			for _, p := range stubs {
				if p.cleanups != 1 {
					t.Errorf("plugin %s cleaned up %d times", p.name, p.cleanups)
				}
			}
		})
	}
}

func TestPanicIsReported(t *testing.T) {
	var trace []string
	c := newChain(&stub{name: "p", trace: &trace, process: func(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error) {
		panic("nil map")
	}})
	if _, err := c.Run(newContext(), nil); !errors.Is(err, ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", err)
	}
}

func TestRecoverableErrorBecomesMessage(t *testing.T) {
	var trace []string
	first := &domain.Entry{ID: 1}
	c := newChain(
		&stub{name: "denied", trace: &trace, process: func(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error) {
			return nil, fmt.Errorf("%w: cannot edit", service.ErrPermissionDenied)
		}},
		&stub{name: "after", trace: &trace},
	)
	pc := newContext()
	out, err := c.Run(pc, []*domain.Entry{first})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(out) != 1 || out[0] != first {
		t.Errorf("entries should pass through unchanged, got %v", out)
	}
	if diff := cmp.Diff([]string{"permission denied: cannot edit"}, pc.Messages()); diff != "" {
		t.Errorf("unexpected messages (-want +got):\n%s", diff)
	}
}

func TestNilEntriesAreStripped(t *testing.T) {
	var trace []string
	var seen int
	c := newChain(
		&stub{name: "sloppy", trace: &trace, process: func(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error) {
			return append(entries, nil, &domain.Entry{ID: 2}, nil), nil
		}},
		&stub{name: "counter", trace: &trace, process: func(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error) {
			for _, e := range entries {
				if e == nil {
					t.Error("received a nil entry")
				}
			}
			seen = len(entries)
			return entries, nil
		}},
	)
	out, err := c.Run(newContext(), []*domain.Entry{{ID: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if seen != 2 || len(out) != 2 {
		t.Errorf("expected two entries, counter saw %d and Run returned %d", seen, len(out))
	}
}

func TestEmptyChainReturnsEmptySlice(t *testing.T) {
	out, err := (&Chain{}).Run(newContext(), nil)
	if err != nil || out == nil || len(out) != 0 {
		t.Errorf("expected an empty non nil slice, got %v, %v", out, err)
	}
}
