package server

import (
	"time"

	"foilctf/internal/models"
	"foilctf/internal/repository"
	"foilctf/internal/service"

	"github.com/gofiber/fiber/v2"
)

// TeamDTO is the API response model for team endpoints.
type TeamDTO struct {
	Name         string `json:"name"`
	CaptainName  string `json:"captain_name"`
	MembersCount int    `json:"members_count"`
	Description  string `json:"description"`
	IsLocked     bool   `json:"is_locked"`
	CreatedAt    string `json:"created_at"`
}

func toTeamDTO(t *models.Team) TeamDTO {
	return TeamDTO{
		Name:         t.Name,
		CaptainName:  t.CaptainName,
		MembersCount: t.MembersCount,
		Description:  t.Description,
		IsLocked:     t.IsLocked,
		CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type createTeamRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type updateTeamRequest struct {
	IsLocked    *bool   `json:"is_locked"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// CreateTeam handles POST /api/teams
// @Summary Create team
// @Description Create a team captained by the caller.
// @Tags teams
// @Accept json
// @Produce json
// @Param request body createTeamRequest true "Team"
// @Success 201 {object} TeamDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams [post]
func (s *Server) CreateTeam(c *fiber.Ctx) error {
	var req createTeamRequest
	if err := bindBody(c, &req); err != nil {
		return nil
	}

	team, err := s.teamService.CreateTeam(c.UserContext(), caller(c), req.Name)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTeamDTO(team))
}

// ListTeams handles GET /api/teams
// @Summary List teams
// @Tags teams
// @Produce json
// @Param q query string false "Name contains"
// @Param open query bool false "Only unlocked teams"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} Page[TeamDTO]
// @Security BearerAuth
// @Router /teams [get]
func (s *Server) ListTeams(c *fiber.Ctx) error {
	q := parseListQuery(c)
	teams, total, err := s.teamService.ListTeams(c.UserContext(), repository.TeamFilter{
		ListQuery: q,
		OpenOnly:  c.QueryBool("open", false),
	})
	if err != nil {
		return respond(c, err)
	}

	items := make([]TeamDTO, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamDTO(&teams[i]))
	}
	return c.JSON(newPage(items, total, q))
}

// UpdateTeam handles PATCH /api/teams
// @Summary Update own team
// @Description Change lock state or description of the team the caller captains.
// @Tags teams
// @Accept json
// @Produce json
// @Param request body updateTeamRequest true "Patch"
// @Success 200 {object} TeamDTO
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams [patch]
func (s *Server) UpdateTeam(c *fiber.Ctx) error {
	var req updateTeamRequest
	if err := bindBody(c, &req); err != nil {
		return nil
	}

	team, err := s.teamService.UpdateTeam(c.UserContext(), caller(c), service.TeamPatch{
		IsLocked:    req.IsLocked,
		Description: req.Description,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(toTeamDTO(team))
}

// GetTeam handles GET /api/teams/:teamName
// @Summary Get team
// @Tags teams
// @Produce json
// @Param teamName path string true "Team name"
// @Success 200 {object} TeamDTO
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName} [get]
func (s *Server) GetTeam(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}

	team, err := s.teamService.GetTeam(c.UserContext(), name)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(toTeamDTO(team))
}

// GetTeamMembers handles GET /api/teams/:teamName/members
// @Summary List team members
// @Tags teams
// @Produce json
// @Param teamName path string true "Team name"
// @Success 200 {array} string
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName}/members [get]
func (s *Server) GetTeamMembers(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}

	members, err := s.teamService.ListMembers(c.UserContext(), name)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(members)
}

// DeleteTeam handles DELETE /api/teams/:teamName
// @Summary Delete team
// @Tags teams
// @Param teamName path string true "Team name"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName} [delete]
func (s *Server) DeleteTeam(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}

	if err := s.teamService.DeleteTeam(c.UserContext(), caller(c), name); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LeaveTeam handles DELETE /api/teams/:teamName/members/me
// @Summary Leave team
// @Tags teams
// @Param teamName path string true "Team name"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName}/members/me [delete]
func (s *Server) LeaveTeam(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}

	if err := s.teamService.LeaveTeam(c.UserContext(), caller(c), name); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMember handles DELETE /api/teams/:teamName/members/:username
// @Summary Remove member
// @Tags teams
// @Param teamName path string true "Team name"
// @Param username path string true "Member"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName}/members/{username} [delete]
func (s *Server) DeleteMember(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}
	target, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	if err := s.teamService.DeleteMember(c.UserContext(), caller(c), name, target); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandOverLeadership handles PATCH /api/teams/:teamName/captain/:username
// @Summary Hand over captaincy
// @Tags teams
// @Param teamName path string true "Team name"
// @Param username path string true "New captain"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName}/captain/{username} [patch]
func (s *Server) HandOverLeadership(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}
	target, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	if err := s.teamService.HandOverLeadership(c.UserContext(), caller(c), name, target); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
