package domain

import "time"

type ResponseStatus string

const (
	StatusNew      ResponseStatus = "new"
	StatusApproved ResponseStatus = "approved"
	StatusSpam     ResponseStatus = "spam"
)

// Metadata keys shared by the submission plugins and the moderation interceptors.
const (
	MetadataDestroy  = "destroy"
	MetadataApproved = "approved"
	MetadataIP       = "ip"
)

type ResponseKind uint8

const (
	KindComment ResponseKind = iota + 1
	KindTrackback
	KindPingback
)

func (k ResponseKind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindTrackback:
		return "trackback"
	case KindPingback:
		return "pingback"
	}
	return "unknown"
}

// ResponseCore holds what comments, trackbacks and pingbacks have in common.
type ResponseCore struct {
	ID       int64
	BlogID   string
	EntryID  int64
	IP       string
	Status   ResponseStatus
	Created  time.Time
	Metadata Metadata
}

type Comment struct {
	ResponseCore
	ParentID    *int64
	Author      string
	AuthorEmail string
	AuthorURL   string
	Content     string
}

type Trackback struct {
	ResponseCore
	Title    string
	Excerpt  string
	URL      string
	BlogName string
}

type Pingback struct {
	ResponseCore
	Title     string
	Excerpt   string
	SourceURI string
	TargetURI string
	BlogName  string
}
