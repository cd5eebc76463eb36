package server

import (
	"time"

	"foilctf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// JoinRequestDTO is the API response model for team join requests.
type JoinRequestDTO struct {
	TeamName  string `json:"team_name"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func toJoinRequestDTOs(reqs []models.TeamJoinRequest) []JoinRequestDTO {
	out := make([]JoinRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, JoinRequestDTO{
			TeamName:  r.TeamName,
			Username:  r.Username,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}

// GetSentJoinRequests handles GET /api/teams/requests/sent
// @Summary List own join requests
// @Tags teams
// @Produce json
// @Success 200 {array} JoinRequestDTO
// @Security BearerAuth
// @Router /teams/requests/sent [get]
func (s *Server) GetSentJoinRequests(c *fiber.Ctx) error {
	reqs, err := s.membershipService.ListSentRequests(c.UserContext(), caller(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(toJoinRequestDTOs(reqs))
}

// GetTeamJoinRequests handles GET /api/teams/:teamName/requests
// @Summary List join requests to a team
// @Description Captain only.
// @Tags teams
// @Produce json
// @Param teamName path string true "Team name"
// @Success 200 {array} JoinRequestDTO
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName}/requests [get]
func (s *Server) GetTeamJoinRequests(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}

	reqs, err := s.membershipService.ListTeamRequests(c.UserContext(), caller(c), name)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(toJoinRequestDTOs(reqs))
}

// SendJoinRequest handles POST /api/teams/:teamName/requests
// @Summary Request to join a team
// @Tags teams
// @Param teamName path string true "Team name"
// @Success 201
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName}/requests [post]
func (s *Server) SendJoinRequest(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}

	if err := s.membershipService.SendJoinRequest(c.UserContext(), caller(c), name); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// CancelJoinRequest handles DELETE /api/teams/:teamName/requests
// @Summary Withdraw a join request
// @Tags teams
// @Param teamName path string true "Team name"
// @Success 204
// @Security BearerAuth
// @Router /teams/{teamName}/requests [delete]
func (s *Server) CancelJoinRequest(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}

	if err := s.membershipService.CancelJoinRequest(c.UserContext(), caller(c), name); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AcceptJoinRequest handles POST /api/teams/:teamName/requests/:username/accept
// @Summary Accept a join request
// @Tags teams
// @Param teamName path string true "Team name"
// @Param username path string true "Requester"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName}/requests/{username}/accept [post]
func (s *Server) AcceptJoinRequest(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}
	target, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	if err := s.membershipService.AcceptJoinRequest(c.UserContext(), caller(c), name, target); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeclineJoinRequest handles POST /api/teams/:teamName/requests/:username/decline
// @Summary Decline a join request
// @Tags teams
// @Param teamName path string true "Team name"
// @Param username path string true "Requester"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /teams/{teamName}/requests/{username}/decline [post]
func (s *Server) DeclineJoinRequest(c *fiber.Ctx) error {
	name, err := teamParam(c)
	if err != nil {
		return nil
	}
	target, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	if err := s.membershipService.DeclineJoinRequest(c.UserContext(), caller(c), name, target); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
