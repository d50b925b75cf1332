package domain

import (
	"errors"
	"time"
)

// Role names are a static seeded set; they never change at runtime.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// SeededRoles lists every role the platform knows about.
var SeededRoles = []string{RoleAdmin, RoleManager, RoleUser}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already taken")
var ErrEmailTaken = errors.New("email already in use")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")

// ValidRole reports whether name belongs to the seeded role set.
func ValidRole(name string) bool {
	for _, r := range SeededRoles {
		if r == name {
			return true
		}
	}
	return false
}

// User models an account in the credential store. Username is immutable
// once set; deactivation flips Active rather than deleting the record.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole reports whether the user currently holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Identity is the explicit per-request authentication value threaded through
// handlers: the token subject plus the role snapshot taken at issuance.
// It reflects the token, not the live user record.
type Identity struct {
	Subject string   `json:"subject"`
	Roles   []string `json:"roles"`
}

// HasAnyRole reports whether the identity holds at least one of the given
// roles (OR semantics).
func (id Identity) HasAnyRole(names ...string) bool {
	for _, want := range names {
		for _, have := range id.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
