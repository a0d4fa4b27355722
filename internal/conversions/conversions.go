// Package conversions maps blog entries to and from ActivityStreams objects, the payload of webhook deliveries.
package conversions

import (
	"errors"
	"fmt"
	"net/url"

	"code.superseriousbusiness.org/activity/streams"
	"code.superseriousbusiness.org/activity/streams/vocab"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/utils"
)

const summaryLength = 200

var (
	ErrMissingProperty        = errors.New("missing property")
	ErrUnprocessablePropValue = errors.New("unprocessable property value")
)

// EntryToArticle describes an entry as an Article identified and addressed by its permalink.
func EntryToArticle(blog *domain.Blog, e domain.Entry) vocab.ActivityStreamsArticle {
	o := streams.NewActivityStreamsArticle()
	link := blog.EntryURL(e.Slug)

	id := streams.NewJSONLDIdProperty()
	id.SetIRI(link)
	o.SetJSONLDId(id)

	if e.Title != "" {
		title := streams.NewActivityStreamsNameProperty()
		title.AppendXMLSchemaString(e.Title)
		o.SetActivityStreamsName(title)
	}

	if s := utils.Truncate(utils.StripHTML(e.Description), summaryLength, "..."); s != "" {
		summary := streams.NewActivityStreamsSummaryProperty()
		summary.AppendXMLSchemaString(s)
		o.SetActivityStreamsSummary(summary)
	}

	mt := streams.NewActivityStreamsMediaTypeProperty()
	mt.Set("text/html")
	o.SetActivityStreamsMediaType(mt)

	u := streams.NewActivityStreamsUrlProperty()
	u.AppendIRI(link)
	o.SetActivityStreamsUrl(u)

	attributedTo := streams.NewActivityStreamsAttributedToProperty()
	attributedTo.AppendIRI(blog.URL)
	o.SetActivityStreamsAttributedTo(attributedTo)

	content := streams.NewActivityStreamsContentProperty()
	content.AppendXMLSchemaString(e.Description)
	o.SetActivityStreamsContent(content)

	if !e.Created.IsZero() {
		published := streams.NewActivityStreamsPublishedProperty()
		published.Set(e.Created)
		o.SetActivityStreamsPublished(published)
	}
	if !e.Modified.IsZero() {
		updated := streams.NewActivityStreamsUpdatedProperty()
		updated.Set(e.Modified)
		o.SetActivityStreamsUpdated(updated)
	}

	return o
}

// NewCreate wraps an entry's Article in a Create activity by the blog.
func NewCreate(blog *domain.Blog, e domain.Entry) vocab.ActivityStreamsCreate {
	a := streams.NewActivityStreamsCreate()
	idProp := streams.NewJSONLDIdProperty()
	idProp.SetIRI(blog.EntryURL(e.Slug).JoinPath("create"))
	a.SetJSONLDId(idProp)

	actorProp := streams.NewActivityStreamsActorProperty()
	actorProp.AppendIRI(blog.URL)
	a.SetActivityStreamsActor(actorProp)

	objProp := streams.NewActivityStreamsObjectProperty()
	objProp.AppendActivityStreamsArticle(EntryToArticle(blog, e))
	a.SetActivityStreamsObject(objProp)

	if !e.Created.IsZero() {
		published := streams.NewActivityStreamsPublishedProperty()
		published.Set(e.Created)
		a.SetActivityStreamsPublished(published)
	}
	return a
}

// ArticleFromCreate extracts the entry fields carried by a Create{Article} activity.
func ArticleFromCreate(t vocab.Type) (e domain.Entry, link *url.URL, err error) {
	create, ok := t.(vocab.ActivityStreamsCreate)
	if !ok {
		err = fmt.Errorf("%w: %s", errors.ErrUnsupported, t.GetTypeName())
		return
	}
	obj := create.GetActivityStreamsObject()
	if obj == nil || obj.Len() == 0 || !obj.Begin().IsActivityStreamsArticle() {
		err = fmt.Errorf("%w: object", ErrMissingProperty)
		return
	}
	article := obj.Begin().GetActivityStreamsArticle()

	id := article.GetJSONLDId()
	if id == nil {
		err = fmt.Errorf("%w: id", ErrMissingProperty)
		return
	}
	link = id.Get()

	if title := article.GetActivityStreamsName(); title != nil && title.Len() != 0 {
		e.Title = title.Begin().GetXMLSchemaString()
	}
	content := article.GetActivityStreamsContent()
	if content == nil || content.Len() == 0 {
		err = fmt.Errorf("%w: content", ErrMissingProperty)
		return
	}
	if !content.Begin().IsXMLSchemaString() {
		err = fmt.Errorf("%w: content", ErrUnprocessablePropValue)
		return
	}
	e.Description = content.Begin().GetXMLSchemaString()

	if published := article.GetActivityStreamsPublished(); published != nil {
		e.Created = published.Get()
	}
	if updated := article.GetActivityStreamsUpdated(); updated != nil {
		e.Modified = updated.Get()
	}
	return e, link, nil
}
