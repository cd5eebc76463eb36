package database

import (
	"testing"

	"foilctf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestPersistentModels_IncludesRelationshipTables(t *testing.T) {
	var haveMembers, haveFriendRequests bool
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *models.TeamMember:
			haveMembers = true
		case *models.FriendRequest:
			haveFriendRequests = true
		}
	}
	assert.True(t, haveMembers, "PersistentModels should include TeamMember")
	assert.True(t, haveFriendRequests, "PersistentModels should include FriendRequest")
}

func TestPersistentModels_AutoMigrateOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, runAutoMigrate(db))

	for _, table := range []string{"users", "teams", "team_members", "team_join_requests", "friends", "friend_requests", "notifications", "notification_users"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.TeamMember{}, "idx_team_members_member"))
}
