package admin

import (
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/plugin"
)

const (
	actionLogin  = "login"
	actionLogout = "logout"
	actionPage   = "page"
)

// Action is what the administration plugin itself understands. Actions of other admin plugins parse as
// ActionOther.
type Action uint8

const (
	ActionNone Action = iota
	ActionLogin
	ActionLogout
	ActionPage
	ActionOther
)

func ParseAction(s string) Action {
	switch s {
	case "":
		return ActionNone
	case actionLogin:
		return ActionLogin
	case actionLogout:
		return ActionLogout
	case actionPage:
		return ActionPage
	}
	return ActionOther
}

// Administration authenticates the request and selects the page named by the page parameter, or the
// administration root. After a login it sends the visitor back to the page that asked for credentials.
type Administration struct {
	Base
}

func NewAdministration() plugin.Plugin {
	return &Administration{}
}

func (a *Administration) Process(pc *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	if !a.Authenticate(pc) {
		pc.SetPage(a.Name, PageLogin)
		return entries, nil
	}

	switch ParseAction(pc.Param(paramAction)) {
	case ActionLogout:
		pc.SetPage(a.Name, PageLogin)
		return entries, nil
	case ActionNone, ActionLogin, ActionPage, ActionOther:
		if page := pc.Param(paramPage); page != "" {
			pc.SetPage(a.Name, page)
		} else {
			pc.SetPage(a.Name, PageAdministration)
		}
	}

	if target, _ := pc.Session.GetString(redirectKey(pc.Blog)); target != "" {
		if err := pc.Session.Remove(pc.Response, redirectKey(pc.Blog)); err != nil {
			log.Error().Err(err).Msg("failed to clear redirect target")
		}
		pc.Redirect(target)
	}
	return entries, nil
}
