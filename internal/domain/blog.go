package domain

import (
	"maps"
	"net/url"
	"strconv"
	"strings"
)

// Well known blog property names.
const (
	PropPluginChain        = "plugin-chain"
	PropAdminPluginChain   = "admin-plugin-chain"
	PropCommentThrottle    = "plugin-comment-throttle"
	PropCommentExpiration  = "plugin-comment-days-expiration"
	PropCommentAutoformat  = "plugin-comment-autoformat"
	PropCookieExpiration   = "plugin-comment-expiration-duration"
	PropCommentEmailPrefix = "plugin-comment-email-prefix"
	PropTrackbackThrottle  = "plugin-trackback-throttle"
	PropTrackbackExpiry    = "plugin-trackback-days-expiration"
	PropTrackbackPrefix    = "plugin-trackback-email-prefix"
	PropPingbackPrefix     = "plugin-pingback-email-prefix"
	PropPingbackThrottle   = "plugin-pingback-throttle"
	PropModeration         = "comment-moderation-enabled"
	PropMathModeration     = "math-comment-moderation-enabled"
	PropMathBound          = "math-comment-authentication-bound"
	PropMathOperations     = "math-comment-authentication-operations"
	PropAcceptedTypes      = "xmlrpc-metaweblog-accepted-types"
	PropPingURLs           = "blog-ping-urls"
	PropModerationScript   = "moderation-script"
)

// Blog is the per tenant configuration. A value handed to a request is a snapshot and must not be modified;
// use Clone to derive an edited copy.
type Blog struct {
	ID                string
	Name              string
	Description       string
	URL               *url.URL
	Owner             string
	OwnerEmail        string
	Locale            string
	DisplayEntries    int
	CommentsEnabled   bool
	TrackbacksEnabled bool
	PingbacksEnabled  bool
	EmailEnabled      bool
	XmlrpcEnabled     bool
	Properties        map[string]string
}

func (b *Blog) Clone() *Blog {
	c := *b
	if b.URL != nil {
		u := *b.URL
		c.URL = &u
	}
	c.Properties = maps.Clone(b.Properties)
	if c.Properties == nil {
		c.Properties = map[string]string{}
	}
	return &c
}

// AdminURL is the url of the blog's administration pipeline.
func (b *Blog) AdminURL() *url.URL {
	return b.URL.JoinPath("admin")
}

// EntryURL is the permalink of an entry.
func (b *Blog) EntryURL(slug string) *url.URL {
	return b.URL.JoinPath("entries", slug)
}

func (b *Blog) Property(key string) string {
	return b.Properties[key]
}

// IntProperty returns the property parsed as an integer, or def if it is missing or malformed.
func (b *Blog) IntProperty(key string, def int) int {
	v := strings.TrimSpace(b.Properties[key])
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func (b *Blog) BoolProperty(key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(b.Properties[key]))
	return v
}

// ListProperty splits a comma or whitespace separated property, dropping empty items.
func (b *Blog) ListProperty(key string) []string {
	return strings.FieldsFunc(b.Properties[key], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
}
