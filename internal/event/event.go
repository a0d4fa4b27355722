// Package event delivers events to listeners registered for the life of the process. Broadcast notifies every
// listener and ignores what they do; Process asks interceptors for a decision before the sender proceeds.
package event

import (
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sidereusnuntius/gopress/internal/domain"
)

type Type string

// Notifications, sent with Broadcast after the fact.
const (
	EntryAdded      Type = "entry-added"
	EntryUpdated    Type = "entry-updated"
	EntryDeleted    Type = "entry-deleted"
	CategoryAdded   Type = "category-added"
	CategoryUpdated Type = "category-updated"
	CategoryDeleted Type = "category-deleted"
	CommentAdded    Type = "comment-added"
	TrackbackAdded  Type = "trackback-added"
	PingbackAdded   Type = "pingback-added"
	// ResponseApproved and ResponseDeleted carry the comment, trackback or pingback an administrator moderated.
	ResponseApproved Type = "response-approved"
	ResponseDeleted  Type = "response-deleted"
	BlogUpdated      Type = "blog-updated"
)

// Submissions, sent with Process before anything is stored.
const (
	CommentSubmitted   Type = "comment-submitted"
	TrackbackSubmitted Type = "trackback-submitted"
	PingbackSubmitted  Type = "pingback-submitted"
	ProcessEntry       Type = "process-entry"
)

// Event is an immutable record handed to listeners. The pointed to domain values belong to the sender; listeners
// must treat them as read only and use a Decision to request changes.
type Event struct {
	ID     uuid.UUID
	Type   Type
	Time   time.Time
	Source string
	Blog   *domain.Blog
	// Request and Response are set when the event originates from an HTTP request.
	Request  *http.Request
	Response http.ResponseWriter

	Entry     *domain.Entry
	Category  *domain.Category
	Comment   *domain.Comment
	Trackback *domain.Trackback
	Pingback  *domain.Pingback

	// Metadata is the submission metadata merged so far. Process refreshes it before each interceptor.
	Metadata map[string]string
}

func New(t Type, source string, blog *domain.Blog) Event {
	return Event{
		ID:     uuid.New(),
		Type:   t,
		Time:   time.Now(),
		Source: source,
		Blog:   blog,
	}
}

// WithRequest returns a copy of e bound to an HTTP exchange.
func (e Event) WithRequest(w http.ResponseWriter, r *http.Request) Event {
	e.Request, e.Response = r, w
	return e
}

// ResponseCore returns the core of whichever response the event carries.
func (e Event) ResponseCore() *domain.ResponseCore {
	switch {
	case e.Comment != nil:
		return &e.Comment.ResponseCore
	case e.Trackback != nil:
		return &e.Trackback.ResponseCore
	case e.Pingback != nil:
		return &e.Pingback.ResponseCore
	}
	return nil
}

func (e Event) withMetadata(m map[string]string) Event {
	e.Metadata = maps.Clone(m)
	return e
}
