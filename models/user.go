package models

import "time"

// User represents an account entity used for authentication and ownership
// of catalog entries and recipes. Sensitive fields must never be exposed
// outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique login identifier. The domain portion is stored
	// lowercased.
	Email string `json:"email"`

	// Username is the display name of the user.
	Username string `json:"username"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is used only for authentication and is never serialized.
	PasswordHash string `json:"-"`

	// IsActive marks whether the account may authenticate.
	IsActive bool `json:"-"`

	// IsStaff and IsSuperuser are privileged-account flags set only by the
	// bootstrap path.
	IsStaff     bool `json:"-"`
	IsSuperuser bool `json:"-"`

	// DateJoined is the timestamp when the account was created.
	// Set once at creation, immutable afterwards.
	DateJoined time.Time `json:"date_joined"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
