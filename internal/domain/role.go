package domain

import "fmt"

// Role identifies what kind of account a subject holds.
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePetugas  Role = "petugas"
	RoleUMKM     Role = "umkm"
	RoleResident Role = "user"
)

// roleHomes is the single source of truth for role landing paths.
var roleHomes = map[Role]string{
	RoleAdmin:    "/admin-dashboard",
	RolePetugas:  "/petugas-dashboard",
	RoleUMKM:     "/umkm-dashboard",
	RoleResident: "/dashboard",
}

// ParseRole validates a role string coming off the wire.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if _, ok := roleHomes[role]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// HomePath returns the dashboard path for the role. Unmapped roles land on
// the public root.
func (r Role) HomePath() string {
	if home, ok := roleHomes[r]; ok {
		return home
	}
	return "/"
}

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleHomes[r]
	return ok
}
