package admin

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/plugin"
)

const PageUsers = "admin-edit-blog-users"

const (
	paramUserLogin         = "blog-user-id"
	paramUserName          = "blog-user-name"
	paramUserEmail         = "blog-user-email"
	paramUserPassword      = "blog-user-password"
	paramUserPasswordCheck = "blog-user-password-check"
	paramPermission        = "blog-permission"
)

var UsersKey = plugin.NewKey[[]domain.User]("edit-blog-users", "users")

type UsersAction uint8

const (
	UsersActionUnknown UsersAction = iota
	UsersActionNone
	UsersActionPage
	UsersActionAdd
	UsersActionDelete
	UsersActionGrant
	UsersActionRevoke
)

func ParseUsersAction(s string) UsersAction {
	switch s {
	case "":
		return UsersActionNone
	case actionPage:
		return UsersActionPage
	case "add-blog-user":
		return UsersActionAdd
	case "delete-blog-user":
		return UsersActionDelete
	case "add-user-permission":
		return UsersActionGrant
	case "delete-user-permission":
		return UsersActionRevoke
	}
	return UsersActionUnknown
}

// Users manages the accounts of a blog and their permissions.
type Users struct {
	Base
}

func NewUsers() plugin.Plugin {
	return &Users{}
}

func (p *Users) Process(pc *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	if !p.Authenticate(pc) {
		pc.SetPage(p.Name, PageLogin)
		return entries, nil
	}
	a := ParseUsersAction(pc.Param(paramAction))
	switch {
	case a == UsersActionUnknown, a == UsersActionNone:
		return entries, nil
	case a == UsersActionPage && !pageRequested(pc, PageUsers):
		return entries, nil
	}
	if !p.Permit(pc, domain.PermissionEditUsers, failedUsersPermissionText) {
		return entries, nil
	}

	switch a {
	case UsersActionPage:
	case UsersActionAdd:
		p.add(pc)
	case UsersActionDelete:
		p.delete(pc)
	case UsersActionGrant, UsersActionRevoke:
		p.permission(pc, a == UsersActionGrant)
	case UsersActionUnknown, UsersActionNone:
	}

	pc.SetPage(p.Name, PageUsers)
	users, err := p.Service.Users(pc.Ctx(), pc.Blog.ID)
	if err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Msg("failed to list users")
		users = []domain.User{}
	}
	plugin.Set(pc, UsersKey, users)
	return entries, nil
}

func (p *Users) add(pc *plugin.Context) {
	login := pc.Param(paramUserLogin)
	password := pc.Request.FormValue(paramUserPassword)
	if login == "" || password == "" {
		pc.AddMessage(text(missingParametersText))
		return
	}
	if password != pc.Request.FormValue(paramUserPasswordCheck) {
		pc.AddMessage(text(passwordCheckFailedText))
		return
	}

	var permissions []string
	for _, perm := range pc.Params(paramPermission) {
		if perm = strings.TrimSpace(perm); perm != "" {
			permissions = append(permissions, perm)
		}
	}

	_, err := p.Service.CreateUser(pc.Ctx(), pc.Blog.ID, login, password,
		pc.Param(paramUserName), pc.Param(paramUserEmail), permissions)
	if err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Str("login", login).Msg("failed to add user")
		pc.AddMessage(text(userAddFailedText, login, err))
		return
	}
	log.Info().Str("blog", pc.Blog.ID).Str("login", login).Str("by", pc.Username).Msg("user added")
	pc.AddMessage(text(userAddedText, login))
}

func (p *Users) delete(pc *plugin.Context) {
	login := pc.Param(paramUserLogin)
	if login == "" {
		pc.AddMessage(text(missingParametersText))
		return
	}
	if login == pc.Username {
		pc.AddMessage(text(cannotDeleteYourselfText))
		return
	}
	if err := p.Service.DeleteUser(pc.Ctx(), pc.Blog.ID, login); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Str("login", login).Msg("failed to delete user")
		pc.AddMessage(text(userDeleteFailedText, login))
		return
	}
	log.Info().Str("blog", pc.Blog.ID).Str("login", login).Str("by", pc.Username).Msg("user deleted")
	pc.AddMessage(text(userDeletedText, login))
}

func (p *Users) permission(pc *plugin.Context, grant bool) {
	login := pc.Param(paramUserLogin)
	permission := pc.Param(paramPermission)
	if login == "" {
		pc.AddMessage(text(missingParametersText))
		return
	}
	if permission == "" {
		pc.AddMessage(text(noPermissionSpecifiedText))
		return
	}
	if err := p.Service.SetPermission(pc.Ctx(), pc.Blog.ID, login, permission, grant); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Str("login", login).Msg("failed to change permission")
		pc.AddMessage(text(permissionSaveFailedText, login))
		return
	}
	if grant {
		pc.AddMessage(text(permissionSavedText, permission, login))
	} else {
		pc.AddMessage(text(permissionDeletedText, permission, login))
	}
}
