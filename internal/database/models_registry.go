package database

import "foilctf/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamJoinRequest{},
		&models.Friend{},
		&models.FriendRequest{},
		&models.Notification{},
		&models.NotificationUser{},
	}
}
