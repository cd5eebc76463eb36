package service

import (
	"context"

	"foilctf/internal/featureflags"
	"foilctf/internal/models"
	"foilctf/internal/notifications"
	"foilctf/internal/observability"
	"foilctf/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// MembershipService brokers team join requests.
type MembershipService struct {
	runner
	flags *featureflags.Manager
}

// NewMembershipService returns a new MembershipService. flags may be nil.
func NewMembershipService(store *repository.Store, dispatcher *notifications.Dispatcher, flags *featureflags.Manager) *MembershipService {
	return &MembershipService{
		runner: runner{store: store, dispatcher: dispatcher},
		flags:  flags,
	}
}

// SendJoinRequest files a request from requester to join teamName and tells
// the captain.
func (s *MembershipService) SendJoinRequest(ctx context.Context, requester, teamName string) (err error) {
	span, ctx := observability.StartSpan(ctx, "MembershipService.SendJoinRequest",
		attribute.String("team.name", teamName), attribute.String("user.name", requester))
	defer span.Finish(&err)

	err = s.run(ctx, "join_request.send", func(tx *repository.Store) (*notifications.Delivery, error) {
		user, err := tx.Users.FindByUsername(ctx, requester)
		if err != nil {
			return nil, err
		}
		if user == nil || user.HasTeam() {
			return nil, errAlreadyInTeam
		}

		team, err := tx.Teams.FindByName(ctx, teamName)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, errTeamNotFound
		}
		if team.IsLocked {
			return nil, errTeamLocked
		}

		exists, err := tx.JoinRequests.Exists(ctx, teamName, requester)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, models.NewForbiddenError("Request already sent")
		}
		if err := tx.JoinRequests.Create(ctx, teamName, requester); err != nil {
			return nil, err
		}

		return s.dispatcher.Fanout(ctx, tx, models.NotificationContents{
			Title:   "Join request",
			Message: requester + " sent a join request",
		}, []string{team.CaptainName})
	})
	if err == nil {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// CancelJoinRequest withdraws requester's request to teamName. Missing
// requests are not an error.
func (s *MembershipService) CancelJoinRequest(ctx context.Context, requester, teamName string) (err error) {
	span, ctx := observability.StartSpan(ctx, "MembershipService.CancelJoinRequest",
		attribute.String("team.name", teamName), attribute.String("user.name", requester))
	defer span.Finish(&err)

	err = s.run(ctx, "join_request.cancel", func(tx *repository.Store) (*notifications.Delivery, error) {
		_, err := tx.JoinRequests.Delete(ctx, teamName, requester)
		return nil, err
	})
	if err == nil {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// AcceptJoinRequest admits target into teamName. Every other pending request
// of target is withdrawn in the same transaction, so the first captain to
// accept wins and later ones see the request as gone.
func (s *MembershipService) AcceptJoinRequest(ctx context.Context, captain, teamName, target string) (err error) {
	span, ctx := observability.StartSpan(ctx, "MembershipService.AcceptJoinRequest",
		attribute.String("team.name", teamName), attribute.String("user.name", captain))
	defer span.Finish(&err)

	observability.LogServiceCall(ctx, "MembershipService", "AcceptJoinRequest", map[string]interface{}{"team": teamName, "target": target})

	err = s.run(ctx, "join_request.accept", func(tx *repository.Store) (*notifications.Delivery, error) {
		team, err := tx.Teams.FindByNameForUpdate(ctx, teamName)
		if err != nil {
			return nil, err
		}
		if team == nil || team.CaptainName != captain {
			return nil, errNotCaptain
		}

		exists, err := tx.JoinRequests.Exists(ctx, teamName, target)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.NewNotFoundError("Join request not found")
		}
		if team.IsLocked {
			return nil, errTeamLocked
		}

		user, err := tx.Users.FindByUsername(ctx, target)
		if err != nil {
			return nil, err
		}
		if user == nil || user.HasTeam() {
			return nil, models.NewForbiddenError("User is already in a team")
		}

		if _, err := tx.JoinRequests.DeleteAllForUser(ctx, target); err != nil {
			return nil, err
		}
		// A concurrent accept by another captain surfaces here as Conflict.
		if err := tx.Members.Add(ctx, teamName, target); err != nil {
			return nil, err
		}
		if err := tx.Teams.AdjustMembersCount(ctx, teamName, 1); err != nil {
			return nil, err
		}
		if err := tx.Users.SetTeam(ctx, target, &teamName); err != nil {
			return nil, err
		}

		members, err := tx.Members.ListMembers(ctx, teamName)
		if err != nil {
			return nil, err
		}
		return s.dispatcher.Fanout(ctx, tx, models.NotificationContents{
			Title:   "new member!",
			Message: target + " joined the team",
		}, without(members, captain))
	})
	if err == nil {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// DeclineJoinRequest drops target's request to teamName. The requester is
// only told when notify_declined_requests is enabled for them.
func (s *MembershipService) DeclineJoinRequest(ctx context.Context, captain, teamName, target string) (err error) {
	span, ctx := observability.StartSpan(ctx, "MembershipService.DeclineJoinRequest",
		attribute.String("team.name", teamName), attribute.String("user.name", captain))
	defer span.Finish(&err)

	notify := s.flags.Enabled(featureflags.NotifyDeclinedRequests, target)

	err = s.run(ctx, "join_request.decline", func(tx *repository.Store) (*notifications.Delivery, error) {
		team, err := tx.Teams.FindByName(ctx, teamName)
		if err != nil {
			return nil, err
		}
		if team == nil || team.CaptainName != captain {
			return nil, errNotCaptain
		}

		deleted, err := tx.JoinRequests.Delete(ctx, teamName, target)
		if err != nil {
			return nil, err
		}
		if !deleted || !notify {
			return nil, nil
		}
		return s.dispatcher.Fanout(ctx, tx, models.NotificationContents{
			Title:   "Join request declined",
			Message: "Your request to join " + teamName + " was declined",
		}, []string{target})
	})
	if err == nil {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// ListSentRequests returns the join requests requester has pending.
func (s *MembershipService) ListSentRequests(ctx context.Context, requester string) ([]models.TeamJoinRequest, error) {
	return s.store.JoinRequests.ListForUser(ctx, requester)
}

// ListTeamRequests returns the pending requests to teamName. Captain only.
func (s *MembershipService) ListTeamRequests(ctx context.Context, captain, teamName string) ([]models.TeamJoinRequest, error) {
	team, err := s.store.Teams.FindByName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, errTeamNotFound
	}
	if team.CaptainName != captain {
		return nil, errNotCaptain
	}
	return s.store.JoinRequests.ListForTeam(ctx, teamName)
}
