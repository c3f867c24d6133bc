package domain

import (
	"strings"
	"time"
)

// User owns wallets. The ledger only references the id; the name is a
// display label.
type User struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewUser creates a user with a trimmed, non-blank name.
func NewUser(id, name string) (User, error) {
	if id == "" {
		return User{}, ErrMissingUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrBlankUserName
	}

	return User{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}
