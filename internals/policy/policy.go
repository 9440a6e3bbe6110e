// Package policy is the single place that decides what a principal may do.
// Controllers never compare role strings themselves; they ask Decide and
// dispatch on the returned Decision.
package policy

import "eventorganizer_backend/internals/constants"

// Decision is the outcome of an access check. Defer means the write is not
// applied directly but converted into a moderation request instead.
type Decision int

const (
	Deny Decision = iota
	Allow
	Defer
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Defer:
		return "defer"
	default:
		return "deny"
	}
}

type Action string

const (
	ActionList   Action = "list"
	ActionDetail Action = "detail"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceEvent    Resource = "event"
	ResourceCategory Resource = "category"
	ResourceLocation Resource = "location"
	ResourceUser     Resource = "user"
)

// Principal is what the gateway knows about the caller. Role comes from the
// profile lookup; a missing profile is reported as the default "user" role.
type Principal struct {
	Authenticated bool
	Role          string
}

// Anonymous is the unauthenticated caller.
var Anonymous = Principal{}

func isWrite(a Action) bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// Decide maps (principal, action, resource) to a Decision.
//
// Unauthenticated callers may only read events (the handler restricts the
// result set to public ones). The "user" role reads everything but its
// writes on events/categories/locations defer into the moderation queue.
// Moderators and admins write directly. User management is admin-only.
// Unknown roles degrade to "user" — the same fail-open default applied when
// no profile row exists.
func Decide(p Principal, action Action, resource Resource) Decision {
	if !p.Authenticated {
		if resource == ResourceEvent && (action == ActionList || action == ActionDetail) {
			return Allow
		}
		return Deny
	}

	if resource == ResourceUser {
		if p.Role == constants.RoleAdmin {
			return Allow
		}
		return Deny
	}

	switch p.Role {
	case constants.RoleModerator, constants.RoleAdmin:
		return Allow
	default: // "user" and anything unrecognized
		if isWrite(action) {
			return Defer
		}
		return Allow
	}
}
