package service

import (
	"context"

	"foilctf/internal/models"
	"foilctf/internal/notifications"
	"foilctf/internal/observability"
	"foilctf/internal/repository"
	"foilctf/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// TeamPatch carries optional team settings. Nil fields are left untouched.
type TeamPatch struct {
	IsLocked    *bool
	Description *string
}

func (p TeamPatch) updates() map[string]interface{} {
	updates := make(map[string]interface{}, 2)
	if p.IsLocked != nil {
		updates["is_locked"] = *p.IsLocked
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	return updates
}

// TeamService provides the team lifecycle: creation, settings, departures,
// removals, captaincy transfer and deletion.
type TeamService struct {
	runner
}

// NewTeamService returns a new TeamService.
func NewTeamService(store *repository.Store, dispatcher *notifications.Dispatcher) *TeamService {
	return &TeamService{runner{store: store, dispatcher: dispatcher}}
}

// CreateTeam creates a team captained by requester, who becomes its only member.
func (s *TeamService) CreateTeam(ctx context.Context, requester, name string) (team *models.Team, err error) {
	span, ctx := observability.StartSpan(ctx, "TeamService.CreateTeam",
		attribute.String("team.name", name), attribute.String("user.name", requester))
	defer span.Finish(&err)

	if err := validTeamName(name); err != nil {
		return nil, err
	}
	observability.LogServiceCall(ctx, "TeamService", "CreateTeam", map[string]interface{}{"team": name})

	err = s.run(ctx, "team.create", func(tx *repository.Store) (*notifications.Delivery, error) {
		user, err := tx.Users.FindByUsername(ctx, requester)
		if err != nil {
			return nil, err
		}
		if user == nil || user.HasTeam() {
			return nil, errAlreadyInTeam
		}

		existing, err := tx.Teams.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewConflictError("Team name already taken", nil)
		}

		created := &models.Team{Name: name, CaptainName: requester, MembersCount: 1}
		if err := tx.Teams.Create(ctx, created); err != nil {
			return nil, err
		}
		if err := tx.Members.Add(ctx, name, requester); err != nil {
			return nil, err
		}
		if err := tx.Users.SetTeam(ctx, requester, &name); err != nil {
			return nil, err
		}
		team = created
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	observability.TeamsCreated.Inc()
	return team, nil
}

// UpdateTeam applies patch to the team captained by requester. An empty
// patch changes nothing and returns the current team.
func (s *TeamService) UpdateTeam(ctx context.Context, requester string, patch TeamPatch) (team *models.Team, err error) {
	span, ctx := observability.StartSpan(ctx, "TeamService.UpdateTeam", attribute.String("user.name", requester))
	defer span.Finish(&err)

	if patch.Description != nil {
		if err := validation.ValidateDescription(*patch.Description); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	err = s.run(ctx, "team.update", func(tx *repository.Store) (*notifications.Delivery, error) {
		current, err := tx.Teams.FindByCaptainForUpdate(ctx, requester)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, errNotCaptain
		}

		updates := patch.updates()
		if len(updates) == 0 {
			team = current
			return nil, nil
		}
		if err := tx.Teams.Update(ctx, current.Name, updates); err != nil {
			return nil, err
		}
		team, err = tx.Teams.FindByName(ctx, current.Name)
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// LeaveTeam removes requester from teamName. A captain may only leave as the
// last member, which dissolves the team together with its pending requests.
func (s *TeamService) LeaveTeam(ctx context.Context, requester, teamName string) (err error) {
	span, ctx := observability.StartSpan(ctx, "TeamService.LeaveTeam",
		attribute.String("team.name", teamName), attribute.String("user.name", requester))
	defer span.Finish(&err)

	observability.LogServiceCall(ctx, "TeamService", "LeaveTeam", map[string]interface{}{"team": teamName})

	dissolved := false
	err = s.run(ctx, "team.leave", func(tx *repository.Store) (*notifications.Delivery, error) {
		team, err := tx.Teams.FindByNameForUpdate(ctx, teamName)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, errTeamNotFound
		}

		member, err := tx.Members.IsMember(ctx, teamName, requester)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, models.NewForbiddenError("You are not a member of this team")
		}
		if team.CaptainName == requester && team.MembersCount != 1 {
			return nil, models.NewForbiddenError("Hand over leadership before leaving")
		}

		if _, err := tx.Members.Remove(ctx, teamName, requester); err != nil {
			return nil, err
		}
		if err := tx.Teams.AdjustMembersCount(ctx, teamName, -1); err != nil {
			return nil, err
		}
		if err := tx.Users.SetTeam(ctx, requester, nil); err != nil {
			return nil, err
		}

		count, err := tx.Teams.MembersCount(ctx, teamName)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			if _, err := tx.JoinRequests.DeleteAllForTeam(ctx, teamName); err != nil {
				return nil, err
			}
			dissolved = true
			return nil, tx.Teams.Delete(ctx, teamName)
		}

		remaining, err := tx.Members.ListMembers(ctx, teamName)
		if err != nil {
			return nil, err
		}
		return s.dispatcher.Fanout(ctx, tx, models.NotificationContents{
			Title:   "Member left",
			Message: requester + " has left the team",
		}, remaining)
	})
	if err == nil && dissolved {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// DeleteMember lets the captain of teamName remove target from the team.
func (s *TeamService) DeleteMember(ctx context.Context, captain, teamName, target string) (err error) {
	span, ctx := observability.StartSpan(ctx, "TeamService.DeleteMember",
		attribute.String("team.name", teamName), attribute.String("user.name", captain))
	defer span.Finish(&err)

	observability.LogServiceCall(ctx, "TeamService", "DeleteMember", map[string]interface{}{"team": teamName, "target": target})

	return s.run(ctx, "team.delete_member", func(tx *repository.Store) (*notifications.Delivery, error) {
		team, err := tx.Teams.FindByNameForUpdate(ctx, teamName)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, errTeamNotFound
		}
		if team.CaptainName != captain {
			return nil, errNotCaptain
		}
		if target == captain {
			return nil, models.NewForbiddenError("You can not kick yourself!")
		}

		removed, err := tx.Members.Remove(ctx, teamName, target)
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, errNotTeamMember
		}
		if err := tx.Teams.AdjustMembersCount(ctx, teamName, -1); err != nil {
			return nil, err
		}
		if err := tx.Users.SetTeam(ctx, target, nil); err != nil {
			return nil, err
		}

		remaining, err := tx.Members.ListMembers(ctx, teamName)
		if err != nil {
			return nil, err
		}
		return s.dispatcher.Fanout(ctx, tx, models.NotificationContents{
			Title:   "Member removed",
			Message: target + " has been removed from the team",
		}, without(remaining, captain))
	})
}

// HandOverLeadership moves the captaincy of teamName from captain to target.
func (s *TeamService) HandOverLeadership(ctx context.Context, captain, teamName, target string) (err error) {
	span, ctx := observability.StartSpan(ctx, "TeamService.HandOverLeadership",
		attribute.String("team.name", teamName), attribute.String("user.name", captain))
	defer span.Finish(&err)

	return s.run(ctx, "team.hand_over", func(tx *repository.Store) (*notifications.Delivery, error) {
		team, err := tx.Teams.FindByNameForUpdate(ctx, teamName)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, errTeamNotFound
		}
		if team.CaptainName != captain {
			return nil, errNotCaptain
		}
		if target == captain {
			return nil, models.NewForbiddenError("You can not demote yourself!")
		}

		member, err := tx.Members.IsMember(ctx, teamName, target)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, errNotTeamMember
		}
		if err := tx.Teams.SetCaptain(ctx, teamName, target); err != nil {
			return nil, err
		}

		return s.dispatcher.Fanout(ctx, tx, models.NotificationContents{
			Title:   "New captain",
			Message: captain + " made you the captain of the team",
		}, []string{target})
	})
}

// DeleteTeam dissolves teamName. Only its captain may do so; every former
// member is told.
func (s *TeamService) DeleteTeam(ctx context.Context, captain, teamName string) (err error) {
	span, ctx := observability.StartSpan(ctx, "TeamService.DeleteTeam",
		attribute.String("team.name", teamName), attribute.String("user.name", captain))
	defer span.Finish(&err)

	observability.LogServiceCall(ctx, "TeamService", "DeleteTeam", map[string]interface{}{"team": teamName})

	err = s.run(ctx, "team.delete", func(tx *repository.Store) (*notifications.Delivery, error) {
		team, err := tx.Teams.FindByNameForUpdate(ctx, teamName)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, errTeamNotFound
		}
		if team.CaptainName != captain {
			return nil, errNotCaptain
		}

		members, err := tx.Members.ListMembers(ctx, teamName)
		if err != nil {
			return nil, err
		}
		if _, err := tx.JoinRequests.DeleteAllForTeam(ctx, teamName); err != nil {
			return nil, err
		}
		if err := tx.Members.RemoveAll(ctx, teamName); err != nil {
			return nil, err
		}
		if err := tx.Users.ClearTeam(ctx, members); err != nil {
			return nil, err
		}
		if err := tx.Teams.Delete(ctx, teamName); err != nil {
			return nil, err
		}

		return s.dispatcher.Fanout(ctx, tx, models.NotificationContents{
			Title:   "Team deleted",
			Message: teamName + " has been deleted",
		}, members)
	})
	if err == nil {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// GetTeam returns the team by name.
func (s *TeamService) GetTeam(ctx context.Context, name string) (*models.Team, error) {
	team, err := s.store.Teams.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, errTeamNotFound
	}
	return team, nil
}

// GetMyTeam returns the team username belongs to, resolved from the
// membership edge rather than the cached users.team_name pointer.
func (s *TeamService) GetMyTeam(ctx context.Context, username string) (*models.Team, error) {
	edge, err := s.store.Members.FindByMember(ctx, username)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		return nil, models.NewNotFoundError("You are not in a team")
	}
	return s.GetTeam(ctx, edge.TeamName)
}

// ListMembers returns member names of a team in join order.
func (s *TeamService) ListMembers(ctx context.Context, name string) ([]string, error) {
	members, err := s.store.Members.ListMembers(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, errTeamNotFound
	}
	return members, nil
}

// ListTeams returns one page of teams and the total number of matches.
func (s *TeamService) ListTeams(ctx context.Context, filter repository.TeamFilter) ([]models.Team, int64, error) {
	return s.store.Teams.List(ctx, filter)
}
