// Package web is the HTTP surface: the public and administration pipelines of every blog, the XML-RPC endpoint
// and the uploaded media.
package web

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs"
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/fetcher"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/render"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/storage"
)

const (
	BlogPath      = "/blog/{blogID}"
	XmlrpcPath    = "/xmlrpc/{blogID}"
	ResourcesPath = "/resources"
	paramFlavor   = "flavor"
)

var _ plugin.Session = (*scs.Session)(nil)

type Handler struct {
	Config         *config.Configuration
	service        service.Service
	SessionManager *scs.Manager
	registry       *plugin.Registry
	fetcher        *fetcher.Fetcher
	renderer       *render.Renderer
	storage        storage.Storage
	xmlrpc         http.Handler
}

func New(config *config.Configuration, service service.Service, manager *scs.Manager, registry *plugin.Registry,
	storage storage.Storage, xmlrpc http.Handler) Handler {
	return Handler{
		Config:         config,
		service:        service,
		SessionManager: manager,
		registry:       registry,
		fetcher:        fetcher.New(service),
		renderer:       render.New(config.Name),
		storage:        storage,
		xmlrpc:         xmlrpc,
	}
}

// GetCode maps an error kind to the HTTP status answering it.
func GetCode(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, storage.ErrNotExist), errors.Is(err, storage.ErrInvalidPath):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
