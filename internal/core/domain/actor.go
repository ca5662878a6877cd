package domain

// Role names used by the built-in step flow templates. Roles are plain
// strings resolved against the actor's role set; RoleAdmin short-circuits
// every step rule.
const (
	RoleAdmin               = "admin"
	RoleAccountingHead      = "accounting head"
	RoleAuditor             = "auditor"
	RoleSVP                 = "svp"
	RoleAccountingAssistant = "accounting assistant"
)

// Actor is the acting user's identity and resolved role set. It is passed
// explicitly into every engine call; there is no ambient current-user state.
type Actor struct {
	UserID string
	Roles  map[string]struct{}
}

// NewActor builds an Actor from a user ID and a list of role names.
func NewActor(userID string, roles ...string) Actor {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return Actor{UserID: userID, Roles: set}
}

// HasRole reports whether the actor holds the named role.
func (a Actor) HasRole(role string) bool {
	_, ok := a.Roles[role]
	return ok
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// Satisfies reports whether the actor may act on a step gated by the given
// rule. Administrators always may. A pinned user beats the role: when the
// rule names a user, only that user qualifies. A rule with neither user nor
// role is never independently actionable.
func (a Actor) Satisfies(rule StepRule) bool {
	if a.IsAdmin() {
		return true
	}
	if rule.User != nil {
		return *rule.User == a.UserID
	}
	if rule.Role != nil {
		return a.HasRole(*rule.Role)
	}
	return false
}
