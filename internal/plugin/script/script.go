// Package script runs a per-blog Lua function over every submitted comment, trackback and pingback.
//
// The blog's moderation-script property holds Lua source defining a global moderate(submission) function. The
// submission table carries type, blog, entry, ip, author, email, url, title and content fields. moderate returns a
// verdict and an optional reason:
//
//	function moderate(s)
//	  if string.find(s.content, "casino") then return "destroy", "gambling" end
//	  if s.ip == "192.0.2.7" then return "approve" end
//	end
//
// "destroy" discards the submission, "approve" stores it approved and "hold" stores it for review. Any other value
// leaves the submission to the remaining interceptors.
package script

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	lua "github.com/yuin/gopher-lua"
)

const (
	entryPoint     = "moderate"
	defaultTimeout = time.Second
)

// Verdicts a script may return.
const (
	VerdictDestroy = "destroy"
	VerdictApprove = "approve"
	VerdictHold    = "hold"
)

var (
	ErrNoEntryPoint = errors.New("script does not define " + entryPoint)
	ErrDestroyed    = errors.New("script plugin destroyed")
)

type failure struct {
	source string
	err    error
}

// state is a compiled script. gopher-lua states are not safe for concurrent use, so every call holds mu.
type state struct {
	mu     sync.Mutex
	source string
	L      *lua.LState
}

// compile runs the script's top level under ctx, so a script that never returns fails once ctx is done.
func compile(ctx context.Context, source string) (*state, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetContext(ctx)
	err := L.DoString(source)
	L.RemoveContext()
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("compile moderation script: %w", err)
	}
	if L.GetGlobal(entryPoint).Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoEntryPoint
	}
	return &state{source: source, L: L}, nil
}

// call runs moderate with the submission table and returns its verdict and reason.
func (s *state) call(ctx context.Context, fields map[string]string) (verdict, reason string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	tbl := s.L.NewTable()
	for k, v := range fields {
		s.L.SetField(tbl, k, lua.LString(v))
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	if err = s.L.CallByParam(lua.P{Fn: s.L.GetGlobal(entryPoint), NRet: 2, Protect: true}, tbl); err != nil {
		return "", "", err
	}
	reasonValue := s.L.Get(-1)
	verdictValue := s.L.Get(-2)
	s.L.Pop(2)

	if verdictValue != lua.LNil {
		verdict = lua.LVAsString(verdictValue)
	}
	if reasonValue != lua.LNil {
		reason = lua.LVAsString(reasonValue)
	}
	return verdict, reason, nil
}

func (s *state) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.L.Close()
}

// Plugin installs the script interceptor. Compiled scripts are cached per blog and recompiled when the property
// changes.
type Plugin struct {
	plugin.Base
	name        string
	broadcaster *event.Broadcaster
	sub         event.Subscription
	timeout     time.Duration

	mu        sync.Mutex
	states    map[string]*state
	destroyed bool
	// failed holds the last source of each blog that did not compile, with its error.
	failed map[string]failure
}

func New() plugin.Plugin {
	return &Plugin{}
}

func (p *Plugin) Init(cfg plugin.Config) error {
	p.name = cfg.Name
	p.broadcaster = cfg.Broadcaster
	if p.broadcaster == nil {
		p.broadcaster = event.NewBroadcaster()
	}
	p.timeout = defaultTimeout
	p.states = map[string]*state{}
	p.failed = map[string]failure{}
	p.sub = p.broadcaster.AddListener(event.InterceptorFunc(p.Intercept),
		event.Types(event.CommentSubmitted, event.TrackbackSubmitted, event.PingbackSubmitted))
	return nil
}

func (p *Plugin) Process(_ *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	return entries, nil
}

func (p *Plugin) Destroy() error {
	p.broadcaster.RemoveListener(p.sub)
	p.mu.Lock()
	states := p.states
	p.states = map[string]*state{}
	p.destroyed = true
	p.mu.Unlock()
	for _, s := range states {
		s.close()
	}
	return nil
}

// script returns the compiled script of a blog, compiling it when the source changed. Compilation runs outside
// the plugin lock under the call timeout; a source that failed is not compiled again until it changes.
func (p *Plugin) script(ctx context.Context, blogID, source string) (*state, error) {
	p.mu.Lock()
	if s, ok := p.states[blogID]; ok && s.source == source {
		p.mu.Unlock()
		return s, nil
	}
	if f, ok := p.failed[blogID]; ok && f.source == source {
		p.mu.Unlock()
		return nil, f.err
	}
	p.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	compiled, err := compile(cctx, source)

	p.mu.Lock()
	if err != nil {
		// A cancelled request says nothing about the script.
		if ctx.Err() == nil {
			p.failed[blogID] = failure{source: source, err: err}
		}
		p.mu.Unlock()
		return nil, err
	}
	if p.destroyed {
		p.mu.Unlock()
		compiled.close()
		return nil, ErrDestroyed
	}
	delete(p.failed, blogID)
	current, ok := p.states[blogID]
	if ok && current.source == source {
		p.mu.Unlock()
		compiled.close()
		return current, nil
	}
	p.states[blogID] = compiled
	p.mu.Unlock()
	if ok {
		current.close()
	}
	return compiled, nil
}

func submission(e event.Event) map[string]string {
	fields := map[string]string{"type": string(e.Type)}
	if e.Blog != nil {
		fields["blog"] = e.Blog.ID
	}
	if core := e.ResponseCore(); core != nil {
		fields["ip"] = core.IP
		fields["entry"] = strconv.FormatInt(core.EntryID, 10)
	}
	switch {
	case e.Comment != nil:
		fields["author"] = e.Comment.Author
		fields["email"] = e.Comment.AuthorEmail
		fields["url"] = e.Comment.AuthorURL
		fields["content"] = e.Comment.Content
	case e.Trackback != nil:
		fields["author"] = e.Trackback.BlogName
		fields["url"] = e.Trackback.URL
		fields["title"] = e.Trackback.Title
		fields["content"] = e.Trackback.Excerpt
	case e.Pingback != nil:
		fields["author"] = e.Pingback.BlogName
		fields["url"] = e.Pingback.SourceURI
		fields["title"] = e.Pingback.Title
		fields["content"] = e.Pingback.Excerpt
	}
	return fields
}

// Intercept leaves the submission untouched when the script is missing, broken or too slow.
func (p *Plugin) Intercept(ctx context.Context, e event.Event) event.Decision {
	if e.Blog == nil {
		return event.Proceed()
	}
	source := e.Blog.Property(domain.PropModerationScript)
	if source == "" {
		return event.Proceed()
	}

	s, err := p.script(ctx, e.Blog.ID, source)
	if err != nil {
		log.Error().Err(err).Str("blog", e.Blog.ID).Msg("unusable moderation script")
		return event.Proceed()
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	verdict, reason, err := s.call(ctx, submission(e))
	if err != nil {
		log.Error().Err(err).Str("blog", e.Blog.ID).Str("event", string(e.Type)).Msg("moderation script failed")
		return event.Proceed()
	}

	switch verdict {
	case VerdictDestroy:
		if reason == "" {
			reason = "rejected by moderation script"
		}
		log.Debug().Str("blog", e.Blog.ID).Str("reason", reason).Msg("moderation script destroyed submission")
		return event.Reject(reason)
	case VerdictApprove:
		return event.Decision{Metadata: map[string]string{domain.MetadataApproved: "true"}}
	case VerdictHold:
		return event.Decision{Metadata: map[string]string{domain.MetadataApproved: "false"}}
	}
	return event.Proceed()
}
