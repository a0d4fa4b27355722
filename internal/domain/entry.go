package domain

import "time"

type Status string

const (
	Draft     Status = "draft"
	Published Status = "published"
)

// MetadataNoPing on an entry suppresses the weblogs ping for it.
const MetadataNoPing = "no-ping-weblogs"

// Metadata is a free form string map attached to entries, categories and responses.
type Metadata map[string]string

type Entry struct {
	ID              int64
	BlogID          string
	CategoryID      int64
	Category        string
	Title           string
	Slug            string
	Description     string
	Status          Status
	Author          string
	Created         time.Time
	Modified        time.Time
	AllowComments   bool
	AllowTrackbacks bool
	AllowPingbacks  bool
	Metadata        Metadata
	Comments        []Comment
	Trackbacks      []Trackback
	Pingbacks       []Pingback
}

// DaysSince returns the number of whole days between the entry's creation and now.
func (e *Entry) DaysSince(now time.Time) int {
	return int(now.Sub(e.Created).Hours() / 24)
}

type Category struct {
	ID          int64
	BlogID      string
	ParentID    *int64
	Name        string
	Description string
	Metadata    Metadata
}

// DisplayName is the description when present, otherwise the name.
func (c *Category) DisplayName() string {
	if c.Description != "" {
		return c.Description
	}
	return c.Name
}

type Revision struct {
	ID      int64
	EntryID int64
	Author  string
	Diff    string
	Created time.Time
}
