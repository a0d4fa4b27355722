// Package plugin runs the ordered chains of plugins that handle a request.
package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/throttle"
)

type Plugin interface {
	// Init runs once before the plugin joins any chain. An error excludes the plugin from every chain.
	Init(cfg Config) error
	// Process must accept an empty slice and must not return nil elements. Errors wrapping a service error kind
	// become messages; any other error aborts the rest of the chain.
	Process(pc *Context, entries []*domain.Entry) ([]*domain.Entry, error)
	// Cleanup runs exactly once per request for every plugin of the chain.
	Cleanup(pc *Context) error
	// Destroy runs once at shutdown.
	Destroy() error
}

// Config carries the process wide collaborators a plugin may keep.
type Config struct {
	Name        string
	App         config.Configuration
	Service     service.Service
	Broadcaster *event.Broadcaster
	Throttles   Throttles
}

// Throttles are the per address admission maps, one per response kind.
type Throttles struct {
	Comments   *throttle.Map
	Trackbacks *throttle.Map
	Pingbacks  *throttle.Map
}

// ErrNoService is returned by Init when a plugin needing the application service is configured without one.
var ErrNoService = errors.New("plugin requires the application service")

// InitError records a plugin that failed to initialize.
type InitError struct {
	Plugin string
	Err    error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("plugin %s failed to initialize: %s", e.Plugin, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Base gives plugins no-op lifecycle methods to embed.
type Base struct{}

func (Base) Init(Config) error { return nil }

func (Base) Cleanup(*Context) error { return nil }

func (Base) Destroy() error { return nil }

func trim(s string) string {
	return strings.TrimSpace(s)
}
