package models

import "time"

// Team is a CTF team. CaptainName always references a current member and
// MembersCount mirrors the number of TeamMember rows for the team.
type Team struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Name         string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	CaptainName  string    `gorm:"size:64;not null;index" json:"captain_name"`
	MembersCount int       `gorm:"not null;default:1" json:"members_count"`
	Description  string    `gorm:"type:text;not null;default:''" json:"description"`
	IsLocked     bool      `gorm:"not null;default:false" json:"is_locked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Team) TableName() string {
	return "teams"
}

// TeamMember is the membership edge between a team and a user. A user holds
// at most one edge system-wide.
type TeamMember struct {
	TeamName   string    `gorm:"primaryKey;size:64" json:"team_name"`
	MemberName string    `gorm:"primaryKey;size:64;uniqueIndex:idx_team_members_member" json:"member_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (TeamMember) TableName() string {
	return "team_members"
}

// TeamJoinRequest is a pending offer from a user to join a team.
type TeamJoinRequest struct {
	TeamName  string    `gorm:"primaryKey;size:64" json:"team_name"`
	Username  string    `gorm:"primaryKey;size:64;index" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (TeamJoinRequest) TableName() string {
	return "team_join_requests"
}
