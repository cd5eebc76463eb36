package service

import (
	"context"
	"sync"
	"testing"

	"foilctf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendJoinRequest(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol", "dave")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes", "carol")
	f.createTeamWith(t, "dave", "Locked")
	locked := true
	_, err := f.teams.UpdateTeam(ctx, "dave", TeamPatch{IsLocked: &locked})
	require.NoError(t, err)

	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"))
	assert.Contains(t, f.inbox(t, "alice"), "bob sent a join request")
	assert.NotContains(t, f.inbox(t, "carol"), "bob sent a join request")

	assertCode(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"), models.CodeForbidden, "Request already sent")
	assertCode(t, f.membership.SendJoinRequest(ctx, "carol", "Locked"), models.CodeForbidden, "You are already in a team")
	assertCode(t, f.membership.SendJoinRequest(ctx, "bob", "Nowhere"), models.CodeNotFound, "Team not found")
	assertCode(t, f.membership.SendJoinRequest(ctx, "bob", "Locked"), models.CodeForbidden, "Team is locked")

	sent, err := f.membership.ListSentRequests(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "Foxes", sent[0].TeamName)
}

func TestAcceptJoinRequest_JoinsAndWithdrawsOtherRequests(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol", "erin")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes", "erin")
	f.createTeamWith(t, "carol", "Wolves")

	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"))
	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Wolves"))

	require.NoError(t, f.membership.AcceptJoinRequest(ctx, "alice", "Foxes", "bob"))

	team := f.team(t, "Foxes")
	assert.Equal(t, 3, team.MembersCount)
	bob := f.user(t, "bob")
	require.NotNil(t, bob.TeamName)
	assert.Equal(t, "Foxes", *bob.TeamName)

	sent, err := f.membership.ListSentRequests(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, sent)

	assert.Contains(t, f.inbox(t, "erin"), "bob joined the team")
	assert.NotContains(t, f.inbox(t, "alice"), "bob joined the team")
	f.assertConsistent(t)
}

func TestAcceptJoinRequest_Rejections(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol", "dave")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes")
	f.createTeamWith(t, "dave", "Wolves")

	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"))

	assertCode(t, f.membership.AcceptJoinRequest(ctx, "bob", "Foxes", "bob"), models.CodeForbidden, "You are not a team captain")
	assertCode(t, f.membership.AcceptJoinRequest(ctx, "alice", "Nowhere", "bob"), models.CodeForbidden, "")
	assertCode(t, f.membership.AcceptJoinRequest(ctx, "alice", "Foxes", "carol"), models.CodeNotFound, "Join request not found")

	locked := true
	_, err := f.teams.UpdateTeam(ctx, "alice", TeamPatch{IsLocked: &locked})
	require.NoError(t, err)
	assertCode(t, f.membership.AcceptJoinRequest(ctx, "alice", "Foxes", "bob"), models.CodeForbidden, "Team is locked")

	// a request that predates the sender founding a team cannot be accepted
	unlocked := false
	_, err = f.teams.UpdateTeam(ctx, "alice", TeamPatch{IsLocked: &unlocked})
	require.NoError(t, err)
	require.NoError(t, f.membership.SendJoinRequest(ctx, "carol", "Foxes"))
	_, err = f.teams.CreateTeam(ctx, "carol", "Owls")
	require.NoError(t, err)
	assertCode(t, f.membership.AcceptJoinRequest(ctx, "alice", "Foxes", "carol"), models.CodeForbidden, "User is already in a team")

	assert.Equal(t, 1, f.team(t, "Foxes").MembersCount)
}

func TestAcceptJoinRequest_FirstAcceptanceWins(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes")
	f.createTeamWith(t, "carol", "Wolves")

	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"))
	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Wolves"))

	require.NoError(t, f.membership.AcceptJoinRequest(ctx, "alice", "Foxes", "bob"))
	assertCode(t, f.membership.AcceptJoinRequest(ctx, "carol", "Wolves", "bob"), models.CodeNotFound, "Join request not found")

	assert.Equal(t, 1, f.team(t, "Wolves").MembersCount)
	f.assertConsistent(t)
}

func TestAcceptJoinRequest_ConcurrentCaptains(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes")
	f.createTeamWith(t, "carol", "Wolves")

	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"))
	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Wolves"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, pair := range [][2]string{{"alice", "Foxes"}, {"carol", "Wolves"}} {
		wg.Add(1)
		go func(i int, captain, team string) {
			defer wg.Done()
			errs[i] = f.membership.AcceptJoinRequest(ctx, captain, team, "bob")
		}(i, pair[0], pair[1])
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	}
	assert.Equal(t, 1, succeeded)

	edges, err := f.store.Members.All(ctx)
	require.NoError(t, err)
	bobEdges := 0
	for _, e := range edges {
		if e.MemberName == "bob" {
			bobEdges++
		}
	}
	assert.Equal(t, 1, bobEdges)
	f.assertConsistent(t)
}

func TestCancelJoinRequest_Idempotent(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes")
	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"))

	require.NoError(t, f.membership.CancelJoinRequest(ctx, "bob", "Foxes"))
	require.NoError(t, f.membership.CancelJoinRequest(ctx, "bob", "Foxes"))
	require.NoError(t, f.membership.CancelJoinRequest(ctx, "bob", "Nowhere"))

	pending, err := f.membership.ListTeamRequests(ctx, "alice", "Foxes")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDeclineJoinRequest_SilentByDefault(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes")
	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"))

	assertCode(t, f.membership.DeclineJoinRequest(ctx, "bob", "Foxes", "bob"), models.CodeForbidden, "You are not a team captain")
	require.NoError(t, f.membership.DeclineJoinRequest(ctx, "alice", "Foxes", "bob"))

	sent, err := f.membership.ListSentRequests(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, sent)
	assert.Empty(t, f.inbox(t, "bob"))
}

func TestDeclineJoinRequest_NotifiesWhenFlagEnabled(t *testing.T) {
	f := newFixtureWithFlags(t, "notify_declined_requests=on", "alice", "bob")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes")
	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"))

	require.NoError(t, f.membership.DeclineJoinRequest(ctx, "alice", "Foxes", "bob"))
	assert.Equal(t, []string{"Your request to join Foxes was declined"}, f.inbox(t, "bob"))

	// nothing left to decline, nothing sent
	require.NoError(t, f.membership.DeclineJoinRequest(ctx, "alice", "Foxes", "bob"))
	assert.Len(t, f.inbox(t, "bob"), 1)
}

func TestListTeamRequests_CaptainOnly(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol")
	ctx := context.Background()
	f.createTeamWith(t, "alice", "Foxes")
	require.NoError(t, f.membership.SendJoinRequest(ctx, "bob", "Foxes"))
	require.NoError(t, f.membership.SendJoinRequest(ctx, "carol", "Foxes"))

	reqs, err := f.membership.ListTeamRequests(ctx, "alice", "Foxes")
	require.NoError(t, err)
	assert.Len(t, reqs, 2)

	_, err = f.membership.ListTeamRequests(ctx, "bob", "Foxes")
	assertCode(t, err, models.CodeForbidden, "")
	_, err = f.membership.ListTeamRequests(ctx, "alice", "Nowhere")
	assertCode(t, err, models.CodeNotFound, "")
}
