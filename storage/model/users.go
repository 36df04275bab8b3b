package model

import (
	"time"
)

// Role is the role of a User
type Role string

// Known roles
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// NormalizeRole maps arbitrary input to a known Role; anything other than
// "admin" becomes RoleUser.
func NormalizeRole(role string) Role {
	if Role(role) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User is a registered account that can author articles.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Username is unique identifier for login
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	// PasswordHash stores a PHC-formatted argon2id hash of the user's password
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"type:varchar(16);not null;default:user" json:"role"`
}

// Actor is the authenticated identity executing a request. It is derived from
// a verified token and never persisted.
type Actor struct {
	ID       uint
	Username string
	Role     Role
}

// UsersStore abstracts user persistence and authentication helpers.
type UsersStore interface {
	// Count returns the number of users present in the store
	Count() (int64, error)
	// List returns all users (without password hashes)
	List() ([]User, error)
	// Get returns a user by username
	Get(username string) (*User, error)
	// Create creates a user; the implementation must hash the password and
	// coerce the role
	Create(username, password, role string) (*User, error)
	// Authenticate checks a username/password combo and returns the user
	Authenticate(username, password string) (*User, error)
}
