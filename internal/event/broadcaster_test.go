package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/gopress/internal/domain"
)

var ctx = context.Background()

func recorder(name string, calls *[]string) ListenerFunc {
	return func(ctx context.Context, e Event) error {
		*calls = append(*calls, name)
		return nil
	}
}

func TestBroadcastOrderAndIsolation(t *testing.T) {
	var calls []string
	b := NewBroadcaster()
	b.AddListener(recorder("first", &calls))
	b.AddListener(ListenerFunc(func(ctx context.Context, e Event) error {
		calls = append(calls, "failing")
		return errors.New("smtp down")
	}))
	b.AddListener(ListenerFunc(func(ctx context.Context, e Event) error {
		calls = append(calls, "panicking")
		panic("boom")
	}))
	b.AddListener(recorder("last", &calls))

	b.Broadcast(ctx, New(CommentAdded, "test", nil))

	want := []string{"first", "failing", "panicking", "last"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("unexpected calls (-want +got):\n%s", diff)
	}
}

func TestFiltersAndRemoval(t *testing.T) {
	var calls []string
	b := NewBroadcaster()
	blog := &domain.Blog{ID: "a"}
	b.AddListener(recorder("entries", &calls), Types(EntryAdded))
	b.AddListener(recorder("blog-b", &calls), Blog("b"))
	sub := b.AddListener(recorder("removed", &calls))

	if !b.RemoveListener(sub) {
		t.Fatal("expected the subscription to be removed")
	}
	if b.RemoveListener(sub) {
		t.Error("removing twice should report false")
	}

	b.Broadcast(ctx, New(EntryAdded, "test", blog))
	b.Broadcast(ctx, New(CommentAdded, "test", blog))

	if diff := cmp.Diff([]string{"entries"}, calls); diff != "" {
		t.Errorf("unexpected calls (-want +got):\n%s", diff)
	}
}

func TestProcess(t *testing.T) {
	approve := InterceptorFunc(func(ctx context.Context, e Event) Decision {
		return Decision{Verdict: Continue, Metadata: map[string]string{domain.MetadataApproved: "true"}}
	})
	markDestroy := InterceptorFunc(func(ctx context.Context, e Event) Decision {
		return Decision{Metadata: map[string]string{domain.MetadataDestroy: "true"}}
	})
	reject := InterceptorFunc(func(ctx context.Context, e Event) Decision {
		return Reject("wrong answer")
	})
	panics := InterceptorFunc(func(ctx context.Context, e Event) Decision {
		panic("bad script")
	})

	tests := []struct {
		name          string
		interceptors  []Interceptor
		wantDestroyed bool
		wantReason    string
		wantMetadata  map[string]string
	}{
		{"no interceptors", nil, false, "", map[string]string{"ip": "10.0.0.1"}},
		{"continue merges metadata", []Interceptor{approve}, false, "",
			map[string]string{"ip": "10.0.0.1", domain.MetadataApproved: "true"}},
		{"destroy key counts as destroy", []Interceptor{markDestroy}, true, "",
			map[string]string{"ip": "10.0.0.1", domain.MetadataDestroy: "true"}},
		{"reject short circuits", []Interceptor{reject, approve}, true, "wrong answer",
			map[string]string{"ip": "10.0.0.1"}},
		{"panic is skipped", []Interceptor{panics, approve}, false, "",
			map[string]string{"ip": "10.0.0.1", domain.MetadataApproved: "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBroadcaster()
			for _, i := range tt.interceptors {
				b.AddListener(i)
			}
			c := &domain.Comment{ResponseCore: domain.ResponseCore{Metadata: domain.Metadata{"ip": "10.0.0.1"}}}
			e := New(CommentSubmitted, "test", nil)
			e.Comment = c

			out := b.Process(ctx, e)
			if out.Destroyed() != tt.wantDestroyed {
				t.Errorf("Destroyed() = %v, want %v", out.Destroyed(), tt.wantDestroyed)
			}
			if out.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", out.Reason, tt.wantReason)
			}
			if diff := cmp.Diff(tt.wantMetadata, out.Metadata); diff != "" {
				t.Errorf("unexpected metadata (-want +got):\n%s", diff)
			}
			if _, ok := c.Metadata[domain.MetadataDestroy]; ok {
				t.Error("Process must not modify the sender's comment")
			}
		})
	}
}

func TestProcessSkipsPlainListeners(t *testing.T) {
	var calls []string
	b := NewBroadcaster()
	b.AddListener(recorder("plain", &calls))
	out := b.Process(ctx, New(CommentSubmitted, "test", nil))
	if out.Destroyed() || len(calls) != 0 {
		t.Errorf("plain listeners must not take part in Process, calls: %v", calls)
	}
}

func TestInterceptorSeesMergedMetadata(t *testing.T) {
	b := NewBroadcaster()
	b.AddListener(InterceptorFunc(func(ctx context.Context, e Event) Decision {
		return Decision{Metadata: map[string]string{"score": "3"}}
	}))
	var seen string
	b.AddListener(InterceptorFunc(func(ctx context.Context, e Event) Decision {
		seen = e.Metadata["score"]
		return Proceed()
	}))
	b.Process(ctx, New(PingbackSubmitted, "test", nil))
	if seen != "3" {
		t.Errorf("second interceptor saw score %q", seen)
	}
}

func TestApplyComment(t *testing.T) {
	out := Outcome{
		Metadata:   map[string]string{domain.MetadataApproved: "true"},
		Amendments: map[Field]string{FieldContent: "cleaned", FieldStatus: string(domain.StatusApproved)},
	}
	c := domain.Comment{Content: "raw"}
	out.ApplyComment(&c)

	want := domain.Comment{
		ResponseCore: domain.ResponseCore{
			Status:   domain.StatusApproved,
			Metadata: domain.Metadata{domain.MetadataApproved: "true"},
		},
		Content: "cleaned",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("unexpected comment (-want +got):\n%s", diff)
	}
}
