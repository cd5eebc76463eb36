package models

import "time"

// FriendshipStatus describes the relationship between two users as seen by
// one of them.
type FriendshipStatus string

const (
	// FriendshipStatusNone means no edge of any kind exists.
	FriendshipStatusNone FriendshipStatus = "none"
	// FriendshipStatusPendingSent means the viewer sent a pending request.
	FriendshipStatusPendingSent FriendshipStatus = "pending_sent"
	// FriendshipStatusPendingReceived means the viewer received a pending request.
	FriendshipStatusPendingReceived FriendshipStatus = "pending_received"
	// FriendshipStatusFriends means an accepted friendship exists.
	FriendshipStatusFriends FriendshipStatus = "friends"
)

// Friend is an unordered friendship edge. The orientation of Username1 and
// Username2 carries no meaning; lookups always check both.
type Friend struct {
	Username1 string    `gorm:"column:username_1;primaryKey;size:64" json:"username_1"`
	Username2 string    `gorm:"column:username_2;primaryKey;size:64;index" json:"username_2"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Friend) TableName() string {
	return "friends"
}

// Other returns the username on the opposite end of the edge from username.
func (f Friend) Other(username string) string {
	if f.Username1 == username {
		return f.Username2
	}
	return f.Username1
}

// FriendRequest is a directed pending offer to become friends. At most one
// request exists per unordered pair.
type FriendRequest struct {
	SenderName   string    `gorm:"primaryKey;size:64" json:"sender_name"`
	ReceiverName string    `gorm:"primaryKey;size:64;index" json:"receiver_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}
