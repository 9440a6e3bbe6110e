package constants

import "fmt"

// Role values stored on user_profiles.profile_role.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Forbidden-message templates
const (
	ErrOnlyModeratorsCanAccess = "Only moderators or admins may access %s."
	ErrOnlyAdminsCanAccess     = "Only admins may access %s."
)

func RoleErrorModerator(feature string) string {
	return fmt.Sprintf(ErrOnlyModeratorsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleModerator,
		RoleAdmin,
	}

	ModeratorAndAbove = []string{
		RoleModerator,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// IsValidRole reports whether role belongs to the closed role set.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
