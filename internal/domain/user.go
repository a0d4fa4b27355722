package domain

import "slices"

// Permissions checked by the admin plugins and the XML-RPC handlers.
const (
	PermissionEditEntries    = "edit_blog_entries_permission"
	PermissionEditCategories = "edit_blog_categories_permission"
	PermissionEditProperties = "edit_blog_properties_permission"
	PermissionEditUsers      = "edit_blog_users_permission"
	PermissionBloggerAPI     = "post_via_blogger_api_permission"
	PermissionMetaWeblogAPI  = "post_via_metaweblog_api_permission"
	PermissionMovableTypeAPI = "post_via_movabletype_api_permission"
	PermissionAll            = "*"
)

// AllPermissions is granted to the account created on first run.
var AllPermissions = []string{
	PermissionEditEntries,
	PermissionEditCategories,
	PermissionEditProperties,
	PermissionEditUsers,
	PermissionBloggerAPI,
	PermissionMetaWeblogAPI,
	PermissionMovableTypeAPI,
}

type User struct {
	ID           int64
	BlogID       string
	Login        string
	Name         string
	Email        string
	PasswordHash string
	Permissions  []string
}

func (u *User) Has(permission string) bool {
	return slices.Contains(u.Permissions, PermissionAll) || slices.Contains(u.Permissions, permission)
}
