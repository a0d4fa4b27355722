package moderation

import (
	"context"
	"math/rand/v2"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
)

const mathOwner = "math-comment-authentication"

const (
	paramAnswer  = "mathAnswerCheck"
	paramComment = "comment"

	sessionValue1   = "math_value1"
	sessionValue2   = "math_value2"
	sessionOperator = "math_operator"
	sessionAnswer   = "math_answer"

	defaultBound = 10
	operations   = 3
)

// Challenge is the question shown next to the comment form.
type Challenge struct {
	Value1   int
	Value2   int
	Operator string
}

var ChallengeKey = plugin.NewKey[Challenge](mathOwner, "challenge")

// Math asks commenters a small arithmetic question. Process stores a fresh question in the visitor's session; the
// interceptor consumes it, destroying comments with a wrong answer and approving the others. It only acts on blogs where both
// comment-moderation-enabled and math-comment-moderation-enabled are true.
type Math struct {
	base
	intn func(n int) int
}

func NewMath() plugin.Plugin {
	return &Math{}
}

func (m *Math) Init(cfg plugin.Config) error {
	m.intn = rand.IntN
	m.register(cfg, event.InterceptorFunc(m.Intercept), event.Types(event.CommentSubmitted))
	return nil
}

func apply(v1, v2, op int) (int, string) {
	switch op {
	case 1:
		return v1 - v2, "-"
	case 2:
		return v1 * v2, "*"
	}
	return v1 + v2, "+"
}

func (m *Math) Process(pc *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	sess := pc.Session
	if sess == nil {
		return entries, nil
	}

	// A submission keeps the question it was answering, whatever the chain order.
	if pc.Param(paramComment) == "y" {
		if c, ok := current(sess); ok {
			plugin.Set(pc, ChallengeKey, c)
			return entries, nil
		}
	}
	m.issue(pc)
	return entries, nil
}

// Cleanup replaces a question the interceptor consumed during this request, so the form rendered next asks a new
// one.
func (m *Math) Cleanup(pc *plugin.Context) error {
	if pc.Session == nil || pc.Param(paramComment) != "y" {
		return nil
	}
	if answer, _ := pc.Session.GetString(sessionAnswer); answer == "" {
		m.issue(pc)
	}
	return nil
}

// issue draws a question, stores it with its answer in the session and publishes it on pc.
func (m *Math) issue(pc *plugin.Context) {
	bound := pc.Blog.IntProperty(domain.PropMathBound, defaultBound)
	if bound <= 0 {
		bound = defaultBound
	}
	available := pc.Blog.IntProperty(domain.PropMathOperations, operations)
	if available < 1 || available > operations {
		available = operations
	}

	v1, v2 := m.intn(bound), m.intn(bound)
	answer, operator := apply(v1, v2, m.intn(available))

	for key, val := range map[string]string{
		sessionValue1:   strconv.Itoa(v1),
		sessionValue2:   strconv.Itoa(v2),
		sessionOperator: operator,
		sessionAnswer:   strconv.Itoa(answer),
	} {
		if err := pc.Session.PutString(pc.Response, key, val); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to store math challenge")
			return
		}
	}
	plugin.Set(pc, ChallengeKey, Challenge{Value1: v1, Value2: v2, Operator: operator})
}

func current(sess plugin.Session) (Challenge, bool) {
	var c Challenge
	var err error
	raw1, _ := sess.GetString(sessionValue1)
	raw2, _ := sess.GetString(sessionValue2)
	if c.Value1, err = strconv.Atoi(raw1); err != nil {
		return c, false
	}
	if c.Value2, err = strconv.Atoi(raw2); err != nil {
		return c, false
	}
	c.Operator, _ = sess.GetString(sessionOperator)
	return c, c.Operator != ""
}

func (m *Math) Intercept(ctx context.Context, e event.Event) event.Decision {
	if !e.Blog.BoolProperty(domain.PropModeration) || !e.Blog.BoolProperty(domain.PropMathModeration) {
		return event.Proceed()
	}
	if e.Request == nil {
		return event.Proceed()
	}

	passed := false
	if sess, ok := plugin.SessionFrom(ctx); ok {
		want, _ := sess.GetString(sessionAnswer)
		got := e.Request.FormValue(paramAnswer)
		expected, err1 := strconv.Atoi(want)
		answered, err2 := strconv.Atoi(got)
		passed = err1 == nil && err2 == nil && expected == answered
		// Every answer is checked once, right or wrong.
		if e.Response != nil {
			for _, key := range []string{sessionValue1, sessionValue2, sessionOperator, sessionAnswer} {
				if err := sess.Remove(e.Response, key); err != nil {
					log.Error().Err(err).Str("key", key).Msg("failed to consume math challenge")
				}
			}
		}
	}

	if !passed {
		log.Debug().Str("blog", e.Blog.ID).Msg("failed math comment authentication check")
		return event.Reject("Failed math comment authentication check.")
	}
	return event.Decision{Metadata: map[string]string{domain.MetadataApproved: "true"}}
}
