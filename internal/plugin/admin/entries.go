package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/utils"
)

const entriesOwner = "edit-blog-entries"

// Pages of the entries plugin.
const (
	PageEntries     = "admin-edit-blog-entries"
	PageEntriesList = "admin-edit-blog-entries-list"
	PageEntry       = "admin-edit-blog-entry"
	PageAddEntry    = "admin-add-blog-entry"
)

const (
	paramCategoryID         = "blog-category-id"
	paramEntryID            = "blog-entry-id"
	paramEntryTitle         = "blog-entry-title"
	paramEntryDescription   = "blog-entry-description"
	paramEntryStatus        = "blog-entry-status"
	paramEntryMetadata      = "blog-entry-meta-data"
	paramEntryPublished     = "blog-entry-publish-datetime"
	paramCommentsDisabled   = "comments-disabled"
	paramTrackbacksDisabled = "trackbacks-disabled"
	paramPingbacksDisabled  = "pingbacks-disabled"
	paramCommentID          = "blog-comment-id"
	paramTrackbackID        = "blog-trackback-id"
	paramPingbackID         = "blog-pingback-id"
)

// PublishLayout is the format of the publish date field.
const PublishLayout = "01/02/2006 15:04:05"

// Values the entries plugin leaves for the renderer.
var (
	EntriesListKey     = plugin.NewKey[[]domain.Entry](entriesOwner, "list")
	EntriesCategoryKey = plugin.NewKey[domain.Category](entriesOwner, "category")
	EntryKey           = plugin.NewKey[*domain.Entry](entriesOwner, "entry")
)

type EntryAction uint8

const (
	EntryActionUnknown EntryAction = iota
	EntryActionNone
	EntryActionPage
	EntryActionList
	EntryActionEdit
	EntryActionUpdate
	EntryActionDelete
	EntryActionNew
	EntryActionAdd
	EntryActionDeleteComments
	EntryActionDeleteTrackbacks
	EntryActionDeletePingbacks
	EntryActionApproveComments
	EntryActionApproveTrackbacks
	EntryActionApprovePingbacks
)

var entryActions = map[string]EntryAction{
	"":                        EntryActionNone,
	actionPage:                EntryActionPage,
	"edit-blog-entries":       EntryActionList,
	"edit-blog-entry":         EntryActionEdit,
	"update-blog-entry":       EntryActionUpdate,
	"delete-blog-entry":       EntryActionDelete,
	"new-blog-entry":          EntryActionNew,
	"add-blog-entry":          EntryActionAdd,
	"delete-blog-comments":    EntryActionDeleteComments,
	"delete-blog-trackbacks":  EntryActionDeleteTrackbacks,
	"delete-blog-pingbacks":   EntryActionDeletePingbacks,
	"approve-blog-comments":   EntryActionApproveComments,
	"approve-blog-trackbacks": EntryActionApproveTrackbacks,
	"approve-blog-pingbacks":  EntryActionApprovePingbacks,
}

func ParseEntryAction(s string) EntryAction {
	if a, ok := entryActions[s]; ok {
		return a
	}
	return EntryActionUnknown
}

// Entries lists, adds, edits and deletes entries and moderates their responses. Entries being added or
// updated are handed to the ProcessEntry interceptors first.
type Entries struct {
	Base
}

func NewEntries() plugin.Plugin {
	return &Entries{}
}

func (p *Entries) Process(pc *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	if !p.Authenticate(pc) {
		pc.SetPage(p.Name, PageLogin)
		return entries, nil
	}
	action := pc.Param(paramAction)
	a := ParseEntryAction(action)
	switch {
	case a == EntryActionUnknown, a == EntryActionNone:
		return entries, nil
	case a == EntryActionPage && !pageRequested(pc, PageEntries):
		return entries, nil
	}
	if !p.Permit(pc, domain.PermissionEditEntries, failedPermissionEditText) {
		return entries, nil
	}

	switch a {
	case EntryActionPage:
		pc.SetPage(p.Name, PageEntries)
	case EntryActionList:
		return p.list(pc), nil
	case EntryActionEdit:
		return p.edit(pc, entries), nil
	case EntryActionUpdate:
		return p.update(pc, entries), nil
	case EntryActionDelete:
		return p.delete(pc, entries), nil
	case EntryActionNew:
		p.intercept(pc, nil)
		pc.SetPage(p.Name, PageAddEntry)
	case EntryActionAdd:
		p.add(pc)
	case EntryActionDeleteComments:
		p.moderate(pc, domain.KindComment, paramCommentID, false)
	case EntryActionDeleteTrackbacks:
		p.moderate(pc, domain.KindTrackback, paramTrackbackID, false)
	case EntryActionDeletePingbacks:
		p.moderate(pc, domain.KindPingback, paramPingbackID, false)
	case EntryActionApproveComments:
		p.moderate(pc, domain.KindComment, paramCommentID, true)
	case EntryActionApproveTrackbacks:
		p.moderate(pc, domain.KindTrackback, paramTrackbackID, true)
	case EntryActionApprovePingbacks:
		p.moderate(pc, domain.KindPingback, paramPingbackID, true)
	case EntryActionUnknown, EntryActionNone:
	}
	return entries, nil
}

// intercept runs the ProcessEntry interceptors on e, which is nil when a blank form is about to be shown.
func (p *Entries) intercept(pc *plugin.Context, e *domain.Entry) event.Outcome {
	ev := p.newEvent(pc, event.ProcessEntry).WithRequest(pc.Response, pc.Request)
	ev.Entry = e
	if e != nil {
		ev.Metadata = e.Metadata
	}
	out := p.Broadcaster.Process(pc.Ctx(), ev)
	if e != nil {
		out.ApplyEntry(e)
	}
	return out
}

func (p *Entries) list(pc *plugin.Context) []*domain.Entry {
	pc.SetPage(p.Name, PageEntriesList)
	categoryID, _ := parseID(pc.Param(paramCategoryID))

	list, err := p.Service.Entries(pc.Ctx(), pc.Blog.ID, db.EntryQuery{CategoryID: categoryID})
	if err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Msg("failed to list entries")
		pc.AddMessage(err.Error())
		list = []domain.Entry{}
	}
	plugin.Set(pc, EntriesListKey, list)

	if categoryID != 0 {
		if c, err := p.Service.Category(pc.Ctx(), pc.Blog.ID, categoryID); err == nil {
			plugin.Set(pc, EntriesCategoryKey, c)
		}
	}

	out := make([]*domain.Entry, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out
}

// load reads the entry named by the entry id parameter, reporting failures as messages.
func (p *Entries) load(pc *plugin.Context, failedKey string) (*domain.Entry, bool) {
	raw := pc.Param(paramEntryID)
	id, ok := parseID(raw)
	if !ok {
		pc.AddMessage(text(failedKey, raw))
		return nil, false
	}
	e, err := p.Service.Entry(pc.Ctx(), pc.Blog.ID, id)
	if err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Int64("entry", id).Msg("failed to load entry")
		pc.AddMessage(text(failedKey, raw))
		return nil, false
	}
	return &e, true
}

func (p *Entries) edit(pc *plugin.Context, entries []*domain.Entry) []*domain.Entry {
	pc.SetPage(p.Name, PageEntry)
	e, ok := p.load(pc, failedRetrieveEntryText)
	if !ok {
		return []*domain.Entry{}
	}
	p.intercept(pc, e)
	plugin.Set(pc, EntryKey, e)
	return entries
}

// readForm copies the submitted entry fields onto e.
func (p *Entries) readForm(pc *plugin.Context, e *domain.Entry) {
	e.Title = pc.Param(paramEntryTitle)
	e.Description = pc.Request.FormValue(paramEntryDescription)
	if id, ok := parseID(pc.Param(paramCategoryID)); ok {
		e.CategoryID = id
	}
	if s := domain.Status(pc.Param(paramEntryStatus)); s != "" {
		e.Status = s
	}
	e.AllowComments = pc.Param(paramCommentsDisabled) == ""
	e.AllowTrackbacks = pc.Param(paramTrackbacksDisabled) == ""
	e.AllowPingbacks = pc.Param(paramPingbacksDisabled) == ""

	if raw := pc.Request.FormValue(paramEntryMetadata); strings.TrimSpace(raw) != "" {
		if e.Metadata == nil {
			e.Metadata = domain.Metadata{}
		}
		for k, v := range utils.ParseKeyValues(raw) {
			e.Metadata[k] = v
		}
	}
	if raw := pc.Param(paramEntryPublished); raw != "" {
		if t, err := time.ParseInLocation(PublishLayout, raw, time.UTC); err == nil {
			e.Created = t
		} else {
			log.Debug().Err(err).Str("value", raw).Msg("ignoring malformed publish date")
		}
	}
}

func (p *Entries) add(pc *plugin.Context) {
	if pc.Param(paramEntryTitle) == "" && strings.TrimSpace(pc.Request.FormValue(paramEntryDescription)) == "" {
		pc.SetPage(p.Name, PageAddEntry)
		p.intercept(pc, nil)
		pc.AddMessage(text(blankEntryText))
		return
	}

	e := &domain.Entry{
		BlogID: pc.Blog.ID,
		Author: pc.Username,
		Status: domain.Published,
	}
	p.readForm(pc, e)
	if e.Title == "" {
		e.Title = utils.Truncate(utils.StripHTML(e.Description), 64, "...")
	}

	if out := p.intercept(pc, e); out.Destroyed() {
		log.Info().Str("blog", pc.Blog.ID).Str("by", out.By).Str("reason", out.Reason).Msg("entry rejected")
		pc.AddMessage(text(destroyedEntryText, out.Reason))
		pc.SetPage(p.Name, PageAddEntry)
		return
	}

	if err := p.Service.SaveEntry(pc.Ctx(), e); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Msg("failed to add entry")
		pc.AddMessage(text(failedAddEntryText, err))
		pc.SetPage(p.Name, PageAddEntry)
		return
	}

	pc.AddMessage(text(addedEntryText, entryLink(pc.Blog, e)))
	ev := p.newEvent(pc, event.EntryAdded)
	ev.Entry = e
	p.Broadcast(pc, ev)

	plugin.Set(pc, EntryKey, e)
	pc.SetPage(p.Name, PageEntry)
}

func (p *Entries) update(pc *plugin.Context, entries []*domain.Entry) []*domain.Entry {
	e, ok := p.load(pc, failedRetrieveEntryText)
	if !ok {
		pc.SetPage(p.Name, PageEntries)
		return []*domain.Entry{}
	}
	p.readForm(pc, e)

	if out := p.intercept(pc, e); out.Destroyed() {
		pc.AddMessage(text(destroyedEntryText, out.Reason))
		plugin.Set(pc, EntryKey, e)
		pc.SetPage(p.Name, PageEntry)
		return entries
	}

	if err := p.Service.SaveEntry(pc.Ctx(), e); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Int64("entry", e.ID).Msg("failed to update entry")
		pc.AddMessage(text(failedRetrieveEntryText, strconv.FormatInt(e.ID, 10)))
		pc.SetPage(p.Name, PageEntries)
		return []*domain.Entry{}
	}

	pc.AddMessage(text(updatedEntryText, entryLink(pc.Blog, e)))
	ev := p.newEvent(pc, event.EntryUpdated)
	ev.Entry = e
	p.Broadcast(pc, ev)

	plugin.Set(pc, EntryKey, e)
	pc.SetPage(p.Name, PageEntry)
	return entries
}

func (p *Entries) delete(pc *plugin.Context, entries []*domain.Entry) []*domain.Entry {
	pc.SetPage(p.Name, PageEntries)
	e, ok := p.load(pc, failedDeleteEntryText)
	if !ok {
		return []*domain.Entry{}
	}
	if err := p.Service.DeleteEntry(pc.Ctx(), pc.Blog.ID, e.ID); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Int64("entry", e.ID).Msg("failed to delete entry")
		pc.AddMessage(text(failedDeleteEntryText, strconv.FormatInt(e.ID, 10)))
		return []*domain.Entry{}
	}

	pc.AddMessage(text(deletedEntryText, e.Title))
	ev := p.newEvent(pc, event.EntryDeleted)
	ev.Entry = e
	p.Broadcast(pc, ev)
	return entries
}

// moderate approves or deletes the selected responses of one kind. Ids that do not belong to the entry are
// ignored.
func (p *Entries) moderate(pc *plugin.Context, kind domain.ResponseKind, param string, approve bool) {
	pc.SetPage(p.Name, PageEntry)
	e, ok := p.load(pc, failedRetrieveEntryText)
	if !ok {
		return
	}

	done := 0
	for _, raw := range pc.Params(param) {
		id, ok := parseID(strings.TrimSpace(raw))
		if !ok {
			continue
		}
		ev := p.newEvent(pc, event.ResponseDeleted)
		if approve {
			ev.Type = event.ResponseApproved
		}
		ev.Entry = e
		if !attach(&ev, e, kind, id) {
			log.Debug().Str("kind", kind.String()).Int64("id", id).Int64("entry", e.ID).Msg("response not on entry")
			continue
		}

		var err error
		if approve {
			err = p.Service.SetResponseStatus(pc.Ctx(), kind, pc.Blog.ID, id, domain.StatusApproved)
		} else {
			err = p.Service.DeleteResponse(pc.Ctx(), kind, pc.Blog.ID, id)
		}
		if err != nil {
			log.Error().Err(err).Str("kind", kind.String()).Int64("id", id).Msg("failed to moderate response")
			continue
		}
		done++
		p.Broadcast(pc, ev)
	}

	if approve {
		pc.AddMessage(text(approvedResponsesText, done, kind))
	} else {
		pc.AddMessage(text(deletedResponsesText, done, kind))
	}

	if fresh, err := p.Service.Entry(pc.Ctx(), pc.Blog.ID, e.ID); err == nil {
		e = &fresh
	}
	plugin.Set(pc, EntryKey, e)
}

// attach points ev at the response of e with the given kind and id.
func attach(ev *event.Event, e *domain.Entry, kind domain.ResponseKind, id int64) bool {
	switch kind {
	case domain.KindComment:
		for i := range e.Comments {
			if e.Comments[i].ID == id {
				ev.Comment = &e.Comments[i]
				return true
			}
		}
	case domain.KindTrackback:
		for i := range e.Trackbacks {
			if e.Trackbacks[i].ID == id {
				ev.Trackback = &e.Trackbacks[i]
				return true
			}
		}
	case domain.KindPingback:
		for i := range e.Pingbacks {
			if e.Pingbacks[i].ID == id {
				ev.Pingback = &e.Pingbacks[i]
				return true
			}
		}
	}
	return false
}
