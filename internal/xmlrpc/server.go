// Package xmlrpc serves the remote authoring APIs of a blog. It decodes method calls, dispatches them to the
// registered methods and writes their results or faults.
package xmlrpc

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
)

// MaxRequest bounds the size of a call; media uploads travel inside it.
const MaxRequest = 16 << 20

const (
	postOnlyMessage = "XML-RPC server only accepts POST requests."
	noBlogMessage   = "Unable to load blog ID"
)

// Call is a decoded request bound to the blog named by the url.
type Call struct {
	Method  string
	Params  Params
	Blog    *domain.Blog
	Request *http.Request
}

// Method answers a call with a value or an error. Errors other than *Fault reach the client as ErrUnknown.
type Method func(ctx context.Context, c *Call) (any, error)

type BlogSource interface {
	Blog(ctx context.Context, id string) (*domain.Blog, error)
}

type Server struct {
	blogs   BlogSource
	methods map[string]Method
}

func NewServer(blogs BlogSource) *Server {
	return &Server{blogs: blogs, methods: map[string]Method{}}
}

// Register binds a method name such as "metaWeblog.newPost". A later registration of the same name replaces the
// earlier one.
func (s *Server) Register(name string, m Method) {
	s.methods[name] = m
}

// Methods lists the registered method names in order.
func (s *Server) Methods() []string {
	names := make([]string, 0, len(s.methods))
	for name := range s.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(postOnlyMessage)))
		w.WriteHeader(http.StatusMethodNotAllowed)
		io.WriteString(w, postOnlyMessage)
		return
	}

	blogID := chi.URLParam(r, "blogID")
	if blogID == "" {
		http.Error(w, noBlogMessage, http.StatusNotFound)
		return
	}
	blog, err := s.blogs.Blog(r.Context(), blogID)
	if err != nil {
		log.Error().Err(err).Str("blog", blogID).Msg("failed to load blog for XML-RPC")
		http.Error(w, noBlogMessage, http.StatusNotFound)
		return
	}
	if !blog.XmlrpcEnabled {
		log.Error().Str("blog", blogID).Msg("XML-RPC disabled for the requested blog")
		http.Error(w, noBlogMessage, http.StatusNotFound)
		return
	}

	method, params, err := DecodeCall(http.MaxBytesReader(w, r.Body, MaxRequest))
	if err != nil {
		log.Debug().Err(err).Str("blog", blogID).Msg("malformed XML-RPC call")
		s.write(w, nil, NewFault(CodeUnknown, "Malformed XML-RPC request"))
		return
	}

	m, ok := s.methods[method]
	if !ok {
		log.Debug().Str("blog", blogID).Str("method", method).Msg("unsupported XML-RPC method")
		s.write(w, nil, ErrUnsupported)
		return
	}

	result, err := s.invoke(r.Context(), m, &Call{Method: method, Params: params, Blog: blog, Request: r})
	if err != nil {
		f := AsFault(err)
		if f == ErrUnknown && !errors.Is(err, ErrUnknown) {
			log.Error().Err(err).Str("blog", blogID).Str("method", method).Msg("XML-RPC method failed")
		} else {
			log.Debug().Int("code", f.Code).Str("blog", blogID).Str("method", method).Msg(f.Message)
		}
		s.write(w, nil, f)
		return
	}
	s.write(w, result, nil)
}

func (s *Server) invoke(ctx context.Context, m Method, c *Call) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("method", c.Method).Msg("XML-RPC method panicked")
			result, err = nil, ErrUnknown
		}
	}()
	return m(ctx, c)
}

func (s *Server) write(w http.ResponseWriter, result any, f *Fault) {
	var body []byte
	var err error
	if f != nil {
		body, err = EncodeFault(f)
	} else {
		body, err = EncodeResponse(result)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to encode XML-RPC response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml; charset=UTF-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
