package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role selects which identity collection and session marker an operation uses.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a request value onto a Role; blank means RoleUser.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(RoleUser):
		return RoleUser, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
}

// Identity is a registered shopper or a seeded admin. Passwords are kept
// as entered.
type Identity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

type (
	User  = Identity
	Admin = Identity
)

// Validate checks the fields required to store an identity.
func (i Identity) Validate() error {
	switch {
	case strings.TrimSpace(i.Name) == "":
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	case strings.TrimSpace(i.Email) == "":
		return fmt.Errorf("%w: email required", ErrInvalidInput)
	case i.Password == "":
		return fmt.Errorf("%w: password required", ErrInvalidInput)
	}
	return nil
}
