package domain

// Role is the flat permission level carried in a caller's token.
type Role string

const (
	RoleCoach     Role = "coach"
	RoleAssistant Role = "assistant"
	RoleAthlete   Role = "athlete"
	RoleManager   Role = "manager"
	RoleParent    Role = "parent"
)

// WriterRoles may create, change or delete log entries.
var WriterRoles = []Role{RoleCoach, RoleAssistant, RoleManager}

func (r Role) Valid() bool {
	switch r {
	case RoleCoach, RoleAssistant, RoleAthlete, RoleManager, RoleParent:
		return true
	}
	return false
}

func (r Role) CanWrite() bool {
	for _, w := range WriterRoles {
		if r == w {
			return true
		}
	}
	return false
}
