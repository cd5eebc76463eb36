// Package service holds the team, membership and friendship business logic.
// Every mutating operation runs in exactly one database transaction and
// publishes its notification only after that transaction commits.
package service

import (
	"context"
	"log/slog"

	"foilctf/internal/models"
	"foilctf/internal/notifications"
	"foilctf/internal/observability"
	"foilctf/internal/repository"
	"foilctf/internal/validation"
)

// txFunc is one operation's transactional body. It returns the fan-out to
// publish once the transaction commits, or nil.
type txFunc func(tx *repository.Store) (*notifications.Delivery, error)

// runner is embedded by every service.
type runner struct {
	store      *repository.Store
	dispatcher *notifications.Dispatcher
}

func (r runner) run(ctx context.Context, operation string, fn txFunc) error {
	done := observability.TrackQuery(operation)
	var delivery *notifications.Delivery
	err := r.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		delivery, err = fn(tx)
		return err
	})
	done()
	if err != nil {
		return err
	}

	r.dispatcher.Publish(ctx, delivery)
	return nil
}

// refreshRequestGauges recomputes the pending request gauges. Errors only
// leave the gauges stale.
func (r runner) refreshRequestGauges(ctx context.Context) {
	if n, err := r.store.JoinRequests.Count(ctx); err == nil {
		observability.ActiveTeamJoinRequests.Set(float64(n))
	} else {
		observability.GlobalLogger.DebugContext(ctx, "join request gauge refresh failed", slog.String("error", err.Error()))
	}
	if n, err := r.store.FriendRequests.Count(ctx); err == nil {
		observability.ActiveFriendRequests.Set(float64(n))
	} else {
		observability.GlobalLogger.DebugContext(ctx, "friend request gauge refresh failed", slog.String("error", err.Error()))
	}
}

func validTeamName(name string) error {
	if err := validation.ValidateTeamName(name); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// without returns names minus every occurrence of skip.
func without(names []string, skip string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != skip {
			out = append(out, n)
		}
	}
	return out
}

var (
	errAlreadyInTeam  = models.NewForbiddenError("You are already in a team")
	errNotCaptain     = models.NewForbiddenError("You are not a team captain")
	errTeamNotFound   = models.NewNotFoundError("Team not found")
	errTeamLocked     = models.NewForbiddenError("Team is locked")
	errNotTeamMember  = models.NewForbiddenError("User is not a member of this team")
	errUserNotFound   = models.NewForbiddenError("No such user")
	errAlreadyFriends = models.NewForbiddenError("Already friends")
)
