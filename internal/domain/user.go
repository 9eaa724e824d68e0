package domain

import (
	"strings"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Role is decoded once at session hydration; call sites switch on the enum
// instead of re-parsing the raw string.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

// ParseRole maps the server's role string onto the closed enum.
// Anything that is not "admin" (case-insensitive) is a regular user.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), "admin") {
		return RoleAdmin
	}
	return RoleUser
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
