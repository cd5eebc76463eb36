package server

import (
	"encoding/json"
	"time"

	"foilctf/internal/featureflags"
	"foilctf/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxInboxLimit = 100

// NotificationDTO is the API response model for one inbox entry.
type NotificationDTO struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// FeatureFlagsDTO reports configured and evaluated flags for the caller.
type FeatureFlagsDTO struct {
	Known     []featureflags.Flag `json:"known"`
	Raw       map[string]string   `json:"raw"`
	Evaluated map[string]bool     `json:"evaluated"`
}

// GetMyTeam handles GET /api/me/team
// @Summary Get own team
// @Tags me
// @Produce json
// @Success 200 {object} TeamDTO
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /me/team [get]
func (s *Server) GetMyTeam(c *fiber.Ctx) error {
	team, err := s.teamService.GetMyTeam(c.UserContext(), caller(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(toTeamDTO(team))
}

// GetNotifications handles GET /api/me/notifications
// @Summary List own notifications
// @Description Published notifications addressed to the caller, newest first.
// @Tags me
// @Produce json
// @Param limit query int false "Max entries (default 10, max 100)"
// @Success 200 {array} NotificationDTO
// @Security BearerAuth
// @Router /me/notifications [get]
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit > maxInboxLimit {
		limit = maxInboxLimit
	}

	list, err := s.notificationService.Inbox(c.UserContext(), caller(c), limit)
	if err != nil {
		return respond(c, err)
	}

	items := make([]NotificationDTO, 0, len(list))
	for _, n := range list {
		var contents models.NotificationContents
		if err := json.Unmarshal(n.Contents, &contents); err != nil {
			return respond(c, models.NewInternalError(err))
		}
		items = append(items, NotificationDTO{
			ID:        n.ID,
			Title:     contents.Title,
			Message:   contents.Message,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return c.JSON(items)
}

// GetFeatureFlags handles GET /api/me/feature-flags
// @Summary Get feature flags
// @Description Known flags, raw configuration and evaluation for the caller.
// @Tags me
// @Produce json
// @Success 200 {object} FeatureFlagsDTO
// @Security BearerAuth
// @Router /me/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(FeatureFlagsDTO{
		Known:     featureflags.Known(),
		Raw:       s.featureFlags.Raw(),
		Evaluated: s.featureFlags.Snapshot(caller(c)),
	})
}
