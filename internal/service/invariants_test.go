package service

import (
	"context"
	"testing"

	"foilctf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvariantAuditor_CleanStore(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	f.createTeamWith(t, "alice", "Foxes", "bob")

	report, err := f.auditor.Audit(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestInvariantAuditor_DetectsCorruption(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol", "dave")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes", "bob")

	require.NoError(t, f.db.Model(&models.Team{}).Where("name = ?", "Foxes").Update("members_count", 5).Error)
	require.NoError(t, f.db.Model(&models.User{}).Where("username = ?", "bob").Update("team_name", nil).Error)
	require.NoError(t, f.db.Create(&models.Friend{Username1: "carol", Username2: "dave"}).Error)
	require.NoError(t, f.db.Create(&models.FriendRequest{SenderName: "dave", ReceiverName: "carol"}).Error)
	require.NoError(t, f.db.Create(&models.TeamJoinRequest{TeamName: "Ghosts", Username: "carol"}).Error)

	report, err := f.auditor.Audit(ctx)
	require.NoError(t, err)
	assert.False(t, report.OK())

	kinds := report.Kinds()
	assert.Equal(t, 1, kinds[ViolationCountDrift])
	assert.Equal(t, 1, kinds[ViolationTeamPointer])
	assert.Equal(t, 1, kinds[ViolationFriendAndRequest])
	assert.Equal(t, 1, kinds[ViolationOrphanJoinRequest])
	assert.Zero(t, kinds[ViolationCaptainNotMember])
}

func TestInvariantAuditor_RepairCounts(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes", "bob")
	f.createTeamWith(t, "carol", "Wolves")

	require.NoError(t, f.db.Model(&models.Team{}).Where("name = ?", "Foxes").Update("members_count", 7).Error)

	repaired, err := f.auditor.RepairCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)
	assert.Equal(t, 2, f.team(t, "Foxes").MembersCount)

	repaired, err = f.auditor.RepairCounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, repaired)
	f.assertConsistent(t)
}

func TestInvariantAuditor_DetectsUnpublishedNotification(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes")

	require.NoError(t, f.db.Create(&models.Notification{Contents: []byte(`{"title":"x","message":"y"}`)}).Error)

	report, err := f.auditor.Audit(ctx)
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, ViolationUnpublished, report.Violations[0].Kind)
	assert.Equal(t, "1 unpublished", report.Violations[0].Detail)
}
