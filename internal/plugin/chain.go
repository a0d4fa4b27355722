package plugin

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/service"
)

// ErrPanic wraps a panic raised by a plugin.
var ErrPanic = errors.New("plugin panicked")

type member struct {
	name   string
	plugin Plugin
}

// Chain is an ordered list of initialized plugins. It holds no request state and is safe for concurrent use.
type Chain struct {
	members []member
}

func (c *Chain) Names() []string {
	names := make([]string, len(c.members))
	for i, m := range c.members {
		names[i] = m.name
	}
	return names
}

func (c *Chain) Len() int {
	return len(c.members)
}

// Run hands entries through every plugin in order. A plugin error wrapping a service error kind becomes a message
// on pc and the chain continues with the entries the plugin received; any other error or a panic stops the chain.
// Cleanup runs for every plugin of the chain once Run is done, whatever happened.
func (c *Chain) Run(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	defer c.cleanup(pc)

	if entries == nil {
		entries = []*domain.Entry{}
	}
	for _, m := range c.members {
		out, err := process(m, pc, entries)
		if err != nil {
			if service.Kind(err) != nil {
				log.Debug().Err(err).Str("plugin", m.name).Msg("plugin reported a recoverable failure")
				pc.AddMessage(err.Error())
				continue
			}
			log.Error().Err(err).Str("plugin", m.name).Msg("plugin failed; aborting chain")
			return entries, fmt.Errorf("plugin %s: %w", m.name, err)
		}
		entries = stripNil(m.name, out)
	}
	return entries, nil
}

func process(m member, pc *Context, entries []*domain.Entry) (out []*domain.Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("plugin", m.name).Bytes("stack", debug.Stack()).Msg("panic in plugin")
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return m.plugin.Process(pc, entries)
}

func (c *Chain) cleanup(pc *Context) {
	for _, m := range c.members {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Str("plugin", m.name).Interface("panic", r).Msg("panic in plugin cleanup")
				}
			}()
			if err := m.plugin.Cleanup(pc); err != nil {
				log.Error().Err(err).Str("plugin", m.name).Msg("plugin cleanup failed")
			}
		}()
	}
}

func stripNil(name string, entries []*domain.Entry) []*domain.Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}
	if len(out) != len(entries) {
		log.Warn().Str("plugin", name).Int("dropped", len(entries)-len(out)).Msg("plugin returned nil entries")
	}
	if out == nil {
		out = []*domain.Entry{}
	}
	return out
}
