package plugin

import (
	"context"
	"net"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
)

// Key is a typed context key owned by one plugin. Keys compare by identity, so two plugins declaring the same name
// never collide.
type Key[T any] struct {
	owner string
	name  string
}

func NewKey[T any](owner, name string) *Key[T] {
	return &Key[T]{owner: owner, name: name}
}

// Name is the key as the renderer sees it.
func (k *Key[T]) Name() string {
	return k.owner + "." + k.name
}

func (k *Key[T]) Owner() string {
	return k.owner
}

type entry struct {
	name  string
	value any
}

// Context is the request scoped state shared by the plugins of a chain and the renderer. It is never shared
// between requests and none of its operations fail.
type Context struct {
	Request  *http.Request
	Response http.ResponseWriter
	// Blog is the snapshot every plugin of the request observes.
	Blog   *domain.Blog
	Flavor string
	// Username is set once the admin pipeline has authenticated the request.
	Username string
	// Session is the visitor's session, nil when the pipeline runs without one.
	Session Session

	values    map[any]*entry
	order     []any
	page      string
	pageOwner string
	messages  []string
	redirect  string
}

func NewContext(w http.ResponseWriter, r *http.Request, blog *domain.Blog, flavor string) *Context {
	return &Context{
		Request:  r,
		Response: w,
		Blog:     blog,
		Flavor:   flavor,
		values:   make(map[any]*entry),
	}
}

func Get[T any](pc *Context, k *Key[T]) (T, bool) {
	e, ok := pc.values[k]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value.(T), true
}

// Set stores v under k. Replacing a value keeps the key's original position.
func Set[T any](pc *Context, k *Key[T], v T) {
	if e, ok := pc.values[k]; ok {
		e.value = v
		return
	}
	pc.values[k] = &entry{name: k.Name(), value: v}
	pc.order = append(pc.order, k)
}

func Delete[T any](pc *Context, k *Key[T]) {
	if _, ok := pc.values[k]; !ok {
		return
	}
	delete(pc.values, k)
	for i, o := range pc.order {
		if o == any(k) {
			pc.order = append(pc.order[:i], pc.order[i+1:]...)
			break
		}
	}
}

// Keys lists the names of the stored values in insertion order.
func (pc *Context) Keys() []string {
	names := make([]string, 0, len(pc.order))
	for _, k := range pc.order {
		names = append(names, pc.values[k].name)
	}
	return names
}

// Values is a name to value view of the context for the renderer.
func (pc *Context) Values() map[string]any {
	m := make(map[string]any, len(pc.order))
	for _, k := range pc.order {
		e := pc.values[k]
		m[e.name] = e.value
	}
	return m
}

// SetPage selects the page to render. The last call wins; overwriting a page chosen by another plugin is logged.
func (pc *Context) SetPage(owner, page string) {
	if pc.page != "" && pc.pageOwner != owner && pc.page != page {
		log.Debug().
			Str("page", pc.page).
			Str("owner", pc.pageOwner).
			Str("new_page", page).
			Str("new_owner", owner).
			Msg("target page overwritten")
	}
	pc.page, pc.pageOwner = page, owner
}

func (pc *Context) Page() string {
	return pc.page
}

func (pc *Context) PageOwner() string {
	return pc.pageOwner
}

// AddMessage appends an operation result shown on the rendered page.
func (pc *Context) AddMessage(msg string) {
	pc.messages = append(pc.messages, msg)
}

func (pc *Context) Messages() []string {
	return pc.messages
}

// Ctx is the request's context, or a background context when the plugin runs outside of a request. It carries
// the visitor's session, if any, for interceptors reached through it.
func (pc *Context) Ctx() context.Context {
	ctx := context.Background()
	if pc.Request != nil {
		ctx = pc.Request.Context()
	}
	if pc.Session != nil {
		ctx = WithSession(ctx, pc.Session)
	}
	return ctx
}

// Redirect asks the pipeline to answer with a redirect to url instead of rendering a page.
func (pc *Context) Redirect(url string) {
	pc.redirect = url
}

func (pc *Context) RedirectTo() string {
	return pc.redirect
}

// RemoteIP is the address of the client, without the port.
func (pc *Context) RemoteIP() string {
	if pc.Request == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(pc.Request.RemoteAddr)
	if err != nil {
		return pc.Request.RemoteAddr
	}
	return host
}

// Param is the trimmed request parameter, empty when the context has no request.
func (pc *Context) Param(name string) string {
	if pc.Request == nil {
		return ""
	}
	return trim(pc.Request.FormValue(name))
}

// Params returns every value submitted for name.
func (pc *Context) Params(name string) []string {
	if pc.Request == nil {
		return nil
	}
	if err := pc.Request.ParseForm(); err != nil {
		log.Debug().Err(err).Msg("failed to parse form")
	}
	return pc.Request.Form[name]
}
