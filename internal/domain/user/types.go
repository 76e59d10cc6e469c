package user

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor identifies who is performing an operation. Commands receive it
// explicitly instead of reading identity from any ambient request context.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsCustomer() bool { return a.Role == RoleCustomer }
func (a Actor) IsProvider() bool { return a.Role == RoleProvider }
func (a Actor) IsAdmin() bool    { return a.Role == RoleAdmin }
