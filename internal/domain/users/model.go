package users

import "cat-registry/internal/ports/auth"

// User tal como vive en el store. PasswordHash y Role nunca salen por la API.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	Role         auth.Role
	Revision     int
}

// Public es la vista sin campos sensibles.
type Public struct {
	ID       string
	UserName string
	Email    string
}

func (u User) Public() Public {
	return Public{ID: u.ID, UserName: u.UserName, Email: u.Email}
}
