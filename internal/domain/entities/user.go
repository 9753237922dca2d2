package entities

// Role is the backend's user role enum.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTechnician Role = "TECHNICIAN"
	RoleFrontDesk  Role = "FRONT_DESK"
)

// User is the authenticated profile the backend returns at login
// (the `usuario` half of the login response).
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"nombre"`
	Email  string `json:"email"`
	Role   Role   `json:"rol"`
	SiteID *int64 `json:"sedeId"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
