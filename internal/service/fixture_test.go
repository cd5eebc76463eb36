package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"foilctf/internal/featureflags"
	"foilctf/internal/models"
	"foilctf/internal/notifications"
	"foilctf/internal/repository"
	"foilctf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	store      *repository.Store
	teams      *TeamService
	membership *MembershipService
	friends    *FriendService
	auditor    *InvariantAuditor
	users      map[string]models.User
}

func newFixture(t *testing.T, names ...string) *fixture {
	return newFixtureWithFlags(t, "", names...)
}

func newFixtureWithFlags(t *testing.T, flags string, names ...string) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	store := repository.NewStore(db)
	dispatcher := notifications.NewDispatcher(nil)

	users := make(map[string]models.User, len(names))
	for _, u := range testutil.CreateUsers(t, db, names...) {
		users[u.Username] = u
	}

	return &fixture{
		db:         db,
		store:      store,
		teams:      NewTeamService(store, dispatcher),
		membership: NewMembershipService(store, dispatcher, featureflags.NewManager(flags)),
		friends:    NewFriendService(store, dispatcher),
		auditor:    NewInvariantAuditor(store),
		users:      users,
	}
}

// assertConsistent fails the test when any stored invariant is broken.
func (f *fixture) assertConsistent(t *testing.T) {
	t.Helper()
	report, err := f.auditor.Audit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := f.store.Users.FindByUsername(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func (f *fixture) team(t *testing.T, name string) *models.Team {
	t.Helper()
	team, err := f.store.Teams.FindByName(context.Background(), name)
	require.NoError(t, err)
	return team
}

// inbox returns the messages delivered to username, newest first.
func (f *fixture) inbox(t *testing.T, username string) []string {
	t.Helper()
	list, err := f.store.Notifications.ListForUser(context.Background(), f.users[username].ID, 100)
	require.NoError(t, err)

	messages := make([]string, 0, len(list))
	for _, n := range list {
		var c models.NotificationContents
		require.NoError(t, json.Unmarshal(n.Contents, &c))
		messages = append(messages, c.Message)
	}
	return messages
}

func (f *fixture) createTeamWith(t *testing.T, captain, name string, members ...string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.teams.CreateTeam(ctx, captain, name)
	require.NoError(t, err)
	for _, m := range members {
		require.NoError(t, f.membership.SendJoinRequest(ctx, m, name))
		require.NoError(t, f.membership.AcceptJoinRequest(ctx, captain, name, m))
	}
}

func assertCode(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, models.ErrorCode(err))
	if message != "" {
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, message, appErr.Message)
	}
}

// injectBeforeCreate runs stmt once, inside the same transaction, right
// before the next insert into table. It simulates a concurrent writer that
// commits between a service's pre-checks and its insert.
func (f *fixture) injectBeforeCreate(t *testing.T, table, stmt string, args ...interface{}) {
	t.Helper()

	var once sync.Once
	name := "test:inject_" + table
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register(name, func(db *gorm.DB) {
		if db.Statement.Table != table {
			return
		}
		once.Do(func() {
			if _, err := db.Statement.ConnPool.ExecContext(db.Statement.Context, stmt, args...); err != nil {
				_ = db.AddError(err)
			}
		})
	}))
	t.Cleanup(func() { _ = f.db.Callback().Create().Remove(name) })
}
