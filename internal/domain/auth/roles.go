package auth

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleLeader   = "leader"
	RoleEmployee = "employee"
)

var AllRoles = []string{RoleAdmin, RoleHR, RoleLeader, RoleEmployee}

// Capabilities is resolved once from the role at the permission-check
// boundary. Handlers and services branch on capabilities, never on raw
// role strings.
type Capabilities struct {
	ReviewOrgWide bool
	ReviewTeam    bool
	ManageCycles  bool
	EditMatrix    bool
	ManageUsers   bool
}

var roleCapabilities = map[string]Capabilities{
	RoleAdmin: {
		ReviewOrgWide: true,
		ReviewTeam:    true,
		ManageCycles:  true,
		EditMatrix:    true,
		ManageUsers:   true,
	},
	RoleHR: {
		ReviewOrgWide: true,
		ReviewTeam:    true,
		ManageCycles:  true,
		EditMatrix:    true,
		ManageUsers:   true,
	},
	RoleLeader: {
		ReviewTeam: true,
	},
	RoleEmployee: {},
}

func CapabilitiesFor(role string) Capabilities {
	return roleCapabilities[role]
}

func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}

// Actor is the authenticated caller as seen by domain services.
type Actor struct {
	UserID string
	Role   string
	Caps   Capabilities
}

func NewActor(userID, role string) Actor {
	return Actor{UserID: userID, Role: role, Caps: CapabilitiesFor(role)}
}
