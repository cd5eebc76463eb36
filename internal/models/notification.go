package models

import (
	"encoding/json"
	"time"
)

// NotificationContents is the structured payload stored with a notification.
type NotificationContents struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notification is a single message fanned out to one or more users through
// NotificationUser rows. IsPublished flips to true only after every
// recipient row has been written.
type Notification struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Contents    json.RawMessage `gorm:"type:json;not null" json:"contents"`
	IsPublished bool            `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NotificationUser links a notification to one recipient.
type NotificationUser struct {
	NotificationID uint `gorm:"primaryKey;autoIncrement:false" json:"notification_id"`
	UserID         uint `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	IsRead         bool `gorm:"not null;default:false" json:"is_read"`
	IsDismissed    bool `gorm:"not null;default:false" json:"is_dismissed"`
}

// TableName specifies the table name for GORM
func (NotificationUser) TableName() string {
	return "notification_users"
}
