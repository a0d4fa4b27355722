package plugin

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// Factory builds a fresh plugin instance.
type Factory func() Plugin

// Registry owns the plugin instances of the process. Plugins are built and initialized once by Init and then
// shared by every chain.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
	active    map[string]Plugin
	failed    map[string]*InitError
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		active:    make(map[string]Plugin),
		failed:    make(map[string]*InitError),
	}
}

// Register adds a factory under name, replacing any earlier one.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; !ok {
		r.order = append(r.order, name)
	}
	r.factories[name] = f
}

// Init builds and initializes every registered plugin. Plugins that fail are excluded from all chains; their
// errors are joined in the result.
func (r *Registry) Init(cfg Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, name := range r.order {
		p := r.factories[name]()
		c := cfg
		c.Name = name
		if err := p.Init(c); err != nil {
			ie := &InitError{Plugin: name, Err: err}
			r.failed[name] = ie
			log.Error().Err(err).Str("plugin", name).Msg("plugin excluded from every chain")
			errs = append(errs, ie)
			continue
		}
		r.active[name] = p
		log.Debug().Str("plugin", name).Msg("plugin initialized")
	}
	return errors.Join(errs...)
}

// Lookup returns an initialized plugin.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.active[name]
	return p, ok
}

// Chain resolves names to initialized plugins, skipping unknown and failed ones.
func (r *Registry) Chain(names []string) *Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &Chain{}
	for _, name := range names {
		p, ok := r.active[name]
		if !ok {
			if _, failed := r.failed[name]; !failed {
				log.Warn().Str("plugin", name).Msg("unknown plugin in chain")
			}
			continue
		}
		c.members = append(c.members, member{name: name, plugin: p})
	}
	return c
}

// Destroy retires every initialized plugin.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range r.order {
		p, ok := r.active[name]
		if !ok {
			continue
		}
		if err := p.Destroy(); err != nil {
			log.Error().Err(err).Str("plugin", name).Msg("plugin destroy failed")
		}
		delete(r.active, name)
	}
}
