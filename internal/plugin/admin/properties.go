package admin

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
)

const PageProperties = "admin-edit-blog-properties"

const (
	paramBlogName          = "blog-name"
	paramBlogDescription   = "blog-description"
	paramBlogOwner         = "blog-owner"
	paramBlogOwnerEmail    = "blog-owner-email"
	paramBlogLocale        = "blog-locale"
	paramDisplayEntries    = "blog-display-entries"
	paramCommentsEnabled   = "blog-comments-enabled"
	paramTrackbacksEnabled = "blog-trackbacks-enabled"
	paramPingbacksEnabled  = "blog-pingbacks-enabled"
	paramEmailEnabled      = "blog-email-enabled"
	paramXmlrpcEnabled     = "xmlrpc-enabled"
	paramPropertyName      = "blog-property-name"
	paramPropertyValue     = "blog-property-value"
	paramPluginChain       = "blog-plugin-chain"
	paramAdminPluginChain  = "blog-admin-plugin-chain"
	paramPingURLs          = "blog-ping-urls"
	paramModerationEnabled = "comment-moderation-enabled"
)

// SavedBlogKey holds the blog as saved by this request. The request's own snapshot in pc.Blog is never replaced.
var SavedBlogKey = plugin.NewKey[*domain.Blog]("edit-blog-properties", "saved")

// PropertyKey holds the value looked up by check-blog-property.
var PropertyKey = plugin.NewKey[string]("edit-blog-properties", "property")

type PropertiesAction uint8

const (
	PropertiesActionUnknown PropertiesAction = iota
	PropertiesActionNone
	PropertiesActionPage
	PropertiesActionEdit
	PropertiesActionSet
	PropertiesActionCheck
)

func ParsePropertiesAction(s string) PropertiesAction {
	switch s {
	case "":
		return PropertiesActionNone
	case actionPage:
		return PropertiesActionPage
	case "edit-blog-properties":
		return PropertiesActionEdit
	case "set-blog-property":
		return PropertiesActionSet
	case "check-blog-property":
		return PropertiesActionCheck
	}
	return PropertiesActionUnknown
}

// Properties edits the configuration of a blog. Changes are made on a copy of the request's snapshot and become
// visible to later requests once saved; the rest of this request sees the copy through SavedBlogKey.
type Properties struct {
	Base
}

func NewProperties() plugin.Plugin {
	return &Properties{}
}

func (p *Properties) Process(pc *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	if !p.Authenticate(pc) {
		pc.SetPage(p.Name, PageLogin)
		return entries, nil
	}
	a := ParsePropertiesAction(pc.Param(paramAction))
	switch {
	case a == PropertiesActionUnknown, a == PropertiesActionNone:
		return entries, nil
	case a == PropertiesActionPage && !pageRequested(pc, PageProperties):
		return entries, nil
	}
	if !p.Permit(pc, domain.PermissionEditProperties, failedPropertiesText) {
		return entries, nil
	}

	switch a {
	case PropertiesActionPage:
		pc.SetPage(p.Name, PageProperties)
	case PropertiesActionEdit:
		p.edit(pc)
	case PropertiesActionSet:
		p.set(pc)
	case PropertiesActionCheck:
		pc.SetPage(p.Name, PageProperties)
		name := pc.Param(paramPropertyName)
		if v, ok := current(pc).Properties[name]; ok {
			plugin.Set(pc, PropertyKey, v)
			pc.AddMessage(text(propertyHasValueText, name, v))
		} else {
			pc.AddMessage(text(propertyNotFoundText, name))
		}
	case PropertiesActionUnknown, PropertiesActionNone:
	}
	return entries, nil
}

func (p *Properties) edit(pc *plugin.Context) {
	pc.SetPage(p.Name, PageProperties)
	b := current(pc).Clone()

	b.Name = pc.Param(paramBlogName)
	b.Description = pc.Param(paramBlogDescription)
	b.Owner = pc.Param(paramBlogOwner)
	b.OwnerEmail = pc.Param(paramBlogOwnerEmail)
	if l := pc.Param(paramBlogLocale); l != "" {
		b.Locale = l
	}
	if raw := pc.Param(paramDisplayEntries); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			pc.AddMessage(text(failedSavePropertiesText, fmt.Sprintf("%s: %s", paramDisplayEntries, raw)))
			return
		}
		b.DisplayEntries = n
	}
	b.CommentsEnabled = checked(pc, paramCommentsEnabled)
	b.TrackbacksEnabled = checked(pc, paramTrackbacksEnabled)
	b.PingbacksEnabled = checked(pc, paramPingbacksEnabled)
	b.EmailEnabled = checked(pc, paramEmailEnabled)
	b.XmlrpcEnabled = checked(pc, paramXmlrpcEnabled)
	b.Properties[domain.PropModeration] = strconv.FormatBool(checked(pc, paramModerationEnabled))

	for param, prop := range map[string]string{
		paramPluginChain:      domain.PropPluginChain,
		paramAdminPluginChain: domain.PropAdminPluginChain,
		paramPingURLs:         domain.PropPingURLs,
	} {
		if pc.Request.Form.Has(param) {
			b.Properties[prop] = pc.Param(param)
		}
	}

	p.save(pc, b)
}

func (p *Properties) set(pc *plugin.Context) {
	pc.SetPage(p.Name, PageProperties)
	name := pc.Param(paramPropertyName)
	if name == "" {
		pc.AddMessage(text(missingParametersText))
		return
	}
	b := current(pc).Clone()
	if v := pc.Param(paramPropertyValue); v != "" {
		b.Properties[name] = v
	} else {
		delete(b.Properties, name)
	}
	p.save(pc, b)
}

func (p *Properties) save(pc *plugin.Context, b *domain.Blog) {
	if err := p.Service.UpdateBlog(pc.Ctx(), b); err != nil {
		log.Error().Err(err).Str("blog", b.ID).Msg("failed to save blog properties")
		pc.AddMessage(text(failedSavePropertiesText, err))
		return
	}
	pc.AddMessage(text(updatedPropertiesText))
	ev := event.New(event.BlogUpdated, p.Name, b)
	p.Broadcast(pc, ev)
	plugin.Set(pc, SavedBlogKey, b)
}

// current is the blog saved earlier in this request, or the request's snapshot.
func current(pc *plugin.Context) *domain.Blog {
	if b, ok := plugin.Get(pc, SavedBlogKey); ok && b != nil {
		return b
	}
	return pc.Blog
}

// checked reports whether a checkbox was submitted as on.
func checked(pc *plugin.Context, name string) bool {
	switch pc.Param(name) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
