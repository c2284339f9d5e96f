package models

import "time"

// Role is the authorization role carried by a user account and its tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status is the presence state of a user account.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// NoteKind distinguishes free-text notes from sample file markers stored in
// the user_notes table.
type NoteKind string

const (
	NoteKindNote       NoteKind = "note"
	NoteKindSampleFile NoteKind = "sample_file"
)

// Seeded on the first successful login of an account.
const (
	WelcomeNote      = "Welcome to your dashboard! Start by uploading a file."
	SampleFileMarker = "Sample File.txt"
)

// User represents an account entity used for authentication and authorization.
// PasswordHash is a bcrypt digest and never leaves the server.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique, lower-cased login identifier.
	Email string `json:"email"`

	// Name is an optional display name. Admin views show "N/A" when empty.
	Name string `json:"name,omitempty"`

	// PasswordHash stores the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	Role   Role   `json:"role"`
	Status Status `json:"status"`

	// FirstLogin is true until the first successful login seeds the
	// welcome note and the sample file marker.
	FirstLogin bool `json:"-"`

	// LastSeenAt is refreshed on every login. A session older than the
	// token lifetime is reported offline.
	LastSeenAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Info returns the public subset of the user returned by auth endpoints.
func (u User) Info() UserInfo {
	return UserInfo{ID: u.UserID, Email: u.Email, Role: u.Role}
}

// PresenceAt reports the presence status as observed at now. Online users
// whose last login is older than sessionTTL are considered offline.
func (u User) PresenceAt(now time.Time, sessionTTL time.Duration) Status {
	if u.Status != StatusOnline {
		return StatusOffline
	}
	if sessionTTL > 0 && (u.LastSeenAt == nil || now.Sub(*u.LastSeenAt) > sessionTTL) {
		return StatusOffline
	}
	return StatusOnline
}

// Credentials is the body of register and login requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
	Name     string `json:"name,omitempty"`
}

// UserInfo is the public projection of a user.
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Note is a single entry of the user_notes table.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Kind      NoteKind  `json:"kind"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// FileRef is a lightweight reference to a file shown on the profile page.
// Sample is set for the marker seeded on first login, which has no ID.
type FileRef struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Sample bool   `json:"sample,omitempty"`
}

// Profile is the caller's own account view.
type Profile struct {
	Email string    `json:"email"`
	Role  Role      `json:"role"`
	Files []FileRef `json:"files"`
	Notes []string  `json:"notes"`
}
