package event

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

type Listener interface {
	HandleEvent(ctx context.Context, e Event) error
}

// Interceptor is a listener consulted by Process.
type Interceptor interface {
	Listener
	Intercept(ctx context.Context, e Event) Decision
}

type ListenerFunc func(ctx context.Context, e Event) error

func (f ListenerFunc) HandleEvent(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// InterceptorFunc is an interceptor that ignores broadcasts.
type InterceptorFunc func(ctx context.Context, e Event) Decision

func (f InterceptorFunc) HandleEvent(context.Context, Event) error {
	return nil
}

func (f InterceptorFunc) Intercept(ctx context.Context, e Event) Decision {
	return f(ctx, e)
}

// Filter selects the events a listener receives.
type Filter func(e Event) bool

// Types accepts events of the given types.
func Types(types ...Type) Filter {
	return func(e Event) bool {
		return slices.Contains(types, e.Type)
	}
}

// Blog accepts events of one blog.
func Blog(id string) Filter {
	return func(e Event) bool {
		return e.Blog != nil && e.Blog.ID == id
	}
}

// Subscription identifies a registration returned by AddListener.
type Subscription uint64

type registration struct {
	id       Subscription
	name     string
	listener Listener
	filters  []Filter
}

func (r registration) accepts(e Event) bool {
	for _, f := range r.filters {
		if !f(e) {
			return false
		}
	}
	return true
}

type Broadcaster struct {
	mu        sync.RWMutex
	next      Subscription
	listeners []registration
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// AddListener registers l after every listener added before it. The listener only receives events accepted by all
// of its filters.
func (b *Broadcaster) AddListener(l Listener, filters ...Filter) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.listeners = append(b.listeners, registration{
		id:       b.next,
		name:     listenerName(l),
		listener: l,
		filters:  filters,
	})
	log.Debug().Str("listener", listenerName(l)).Uint64("subscription", uint64(b.next)).Msg("listener added")
	return b.next
}

// RemoveListener reports whether the subscription was registered.
func (b *Broadcaster) RemoveListener(id Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.listeners, func(r registration) bool { return r.id == id })
	if i < 0 {
		return false
	}
	b.listeners = slices.Delete(b.listeners, i, i+1)
	return true
}

func (b *Broadcaster) snapshot() []registration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.listeners)
}

// Broadcast delivers e to every accepting listener in registration order. Listener errors and panics are logged
// and never reach the caller.
func (b *Broadcaster) Broadcast(ctx context.Context, e Event) {
	for _, r := range b.snapshot() {
		if !r.accepts(e) {
			continue
		}
		if err := deliver(ctx, r, e); err != nil {
			log.Error().Err(err).
				Str("listener", r.name).
				Str("event", string(e.Type)).
				Str("id", e.ID.String()).
				Msg("listener failed")
		}
	}
}

func deliver(ctx context.Context, r registration, e Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.listener.HandleEvent(ctx, e)
}

// Process asks every accepting interceptor, in registration order, for a decision on e. The first Destroy verdict
// stops the walk. A panicking interceptor is logged and counts as Continue.
func (b *Broadcaster) Process(ctx context.Context, e Event) Outcome {
	out := Outcome{
		Verdict:    Continue,
		Metadata:   map[string]string{},
		Amendments: map[Field]string{},
	}
	if core := e.ResponseCore(); core != nil {
		maps.Copy(out.Metadata, core.Metadata)
	} else if e.Entry != nil {
		maps.Copy(out.Metadata, e.Entry.Metadata)
	}

	for _, r := range b.snapshot() {
		i, ok := r.listener.(Interceptor)
		if !ok || !r.accepts(e) {
			continue
		}

		d, err := intercept(ctx, i, e.withMetadata(out.Metadata))
		if err != nil {
			log.Error().Err(err).Str("interceptor", r.name).Str("event", string(e.Type)).Msg("interceptor failed")
			continue
		}
		maps.Copy(out.Metadata, d.Metadata)
		maps.Copy(out.Amendments, d.Amendments)

		if d.Verdict == Destroy || out.Destroyed() {
			out.Verdict = Destroy
			out.Reason = d.Reason
			out.By = r.name
			log.Debug().
				Str("interceptor", r.name).
				Str("event", string(e.Type)).
				Str("reason", d.Reason).
				Msg("submission destroyed")
			break
		}
	}
	return out
}

func intercept(ctx context.Context, i Interceptor, e Event) (d Decision, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return i.Intercept(ctx, e), nil
}

// Named listeners are logged under their name instead of their type.
type Named interface {
	Name() string
}

func listenerName(l Listener) string {
	if n, ok := l.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", l)
}
