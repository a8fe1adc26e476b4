package models

import "strings"

type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleViewer:
		return RoleViewer, true
	case RoleEditor:
		return RoleEditor, true
	default:
		return "", false
	}
}

// AppUser is a dashboard login. Password holds whatever the caller stored,
// hashed only when APP_USERS_HASH_PASSWORDS is enabled.
type AppUser struct {
	Username string
	Password *string
	Role     Role
}
