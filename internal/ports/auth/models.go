package auth

import "strings"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Claims es la identidad ya verificada del caller.
// Se devuelve tal cual en GET /users/token.
type Claims struct {
	UserID   string `json:"id"`
	UserName string `json:"user_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// Authenticated indica si hay una identidad presente.
func (c Claims) Authenticated() bool {
	return strings.TrimSpace(c.UserID) != ""
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
