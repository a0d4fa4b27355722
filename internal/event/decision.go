package event

import "github.com/sidereusnuntius/gopress/internal/domain"

type Verdict uint8

const (
	Continue Verdict = iota
	Destroy
)

func (v Verdict) String() string {
	switch v {
	case Continue:
		return "continue"
	case Destroy:
		return "destroy"
	}
	return "unknown"
}

// Field names a submission field an interceptor may amend.
type Field uint8

const (
	FieldAuthor Field = iota + 1
	FieldContent
	FieldTitle
	FieldExcerpt
	FieldStatus
)

// Decision is what an interceptor returns from Intercept.
type Decision struct {
	Verdict Verdict
	Reason  string
	// Metadata is merged into the submission metadata, later interceptors overriding earlier ones.
	Metadata map[string]string
	// Amendments replace submission fields.
	Amendments map[Field]string
}

func Proceed() Decision {
	return Decision{Verdict: Continue}
}

func Reject(reason string) Decision {
	return Decision{Verdict: Destroy, Reason: reason}
}

// Outcome is the combined result of Process.
type Outcome struct {
	Verdict Verdict
	Reason  string
	// By is the interceptor that destroyed the submission.
	By         string
	Metadata   map[string]string
	Amendments map[Field]string
}

// Destroyed reports whether the submission must not be persisted.
func (o Outcome) Destroyed() bool {
	if o.Verdict == Destroy {
		return true
	}
	_, ok := o.Metadata[domain.MetadataDestroy]
	return ok
}

// ApplyComment copies the merged metadata and amendments onto c.
func (o Outcome) ApplyComment(c *domain.Comment) {
	o.applyCore(&c.ResponseCore)
	for f, v := range o.Amendments {
		switch f {
		case FieldAuthor:
			c.Author = v
		case FieldContent:
			c.Content = v
		case FieldTitle, FieldExcerpt, FieldStatus:
		}
	}
}

func (o Outcome) ApplyTrackback(t *domain.Trackback) {
	o.applyCore(&t.ResponseCore)
	for f, v := range o.Amendments {
		switch f {
		case FieldAuthor:
			t.BlogName = v
		case FieldTitle:
			t.Title = v
		case FieldContent, FieldExcerpt:
			t.Excerpt = v
		case FieldStatus:
		}
	}
}

func (o Outcome) ApplyPingback(p *domain.Pingback) {
	o.applyCore(&p.ResponseCore)
	for f, v := range o.Amendments {
		switch f {
		case FieldAuthor:
			p.BlogName = v
		case FieldTitle:
			p.Title = v
		case FieldContent, FieldExcerpt:
			p.Excerpt = v
		case FieldStatus:
		}
	}
}

// ApplyEntry copies title and content amendments and the merged metadata onto e.
func (o Outcome) ApplyEntry(e *domain.Entry) {
	if len(o.Metadata) > 0 && e.Metadata == nil {
		e.Metadata = domain.Metadata{}
	}
	for k, v := range o.Metadata {
		e.Metadata[k] = v
	}
	for f, v := range o.Amendments {
		switch f {
		case FieldTitle:
			e.Title = v
		case FieldContent:
			e.Description = v
		case FieldStatus:
			if s := domain.Status(v); s == domain.Draft || s == domain.Published {
				e.Status = s
			}
		case FieldAuthor, FieldExcerpt:
		}
	}
}

func (o Outcome) applyCore(core *domain.ResponseCore) {
	if len(o.Metadata) > 0 && core.Metadata == nil {
		core.Metadata = domain.Metadata{}
	}
	for k, v := range o.Metadata {
		core.Metadata[k] = v
	}
	if v, ok := o.Amendments[FieldStatus]; ok {
		switch s := domain.ResponseStatus(v); s {
		case domain.StatusNew, domain.StatusApproved, domain.StatusSpam:
			core.Status = s
		}
	}
}
