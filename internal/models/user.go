// Package models contains data structures for the application's domain models.
package models

import "time"

// UserRole is the platform-wide role carried by a user.
type UserRole string

const (
	// UserRoleUser is the default role.
	UserRoleUser UserRole = "user"
	// UserRoleOrganizer can run CTF events.
	UserRoleOrganizer UserRole = "organizer"
	// UserRoleAdmin has global admin privileges.
	UserRoleAdmin UserRole = "admin"
)

// User is a registered player. Username is the stable key used by every
// team and friend relationship.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email     *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	Password  string    `gorm:"size:64;not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(64);not null;default:'user'" json:"role"`
	TeamName  *string   `gorm:"size:64;index" json:"team_name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// HasTeam reports whether the user currently points at a team.
func (u *User) HasTeam() bool {
	return u.TeamName != nil && *u.TeamName != ""
}

// Principal is the authenticated caller bound by the HTTP layer.
type Principal struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role,omitempty"`
}
