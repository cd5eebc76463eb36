package server

import (
	"time"

	"foilctf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FriendRequestDTO is the API response model for a received friend request.
type FriendRequestDTO struct {
	SenderName string `json:"sender_name"`
	CreatedAt  string `json:"created_at"`
}

// SentFriendRequestDTO is the API response model for a request the caller
// is waiting on.
type SentFriendRequestDTO struct {
	ReceiverName string `json:"receiver_name"`
	CreatedAt    string `json:"created_at"`
}

// FriendshipStatusDTO reports how the caller relates to another user.
type FriendshipStatusDTO struct {
	Username string                  `json:"username"`
	Status   models.FriendshipStatus `json:"status"`
}

// GetFriends handles GET /api/friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Param q query string false "Friend name contains"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} Page[string]
// @Security BearerAuth
// @Router /friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	q := parseListQuery(c)
	names, total, err := s.friendService.ListFriends(c.UserContext(), caller(c), q)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(newPage(names, total, q))
}

// GetFriendRequests handles GET /api/friends/requests
// @Summary List received friend requests
// @Tags friends
// @Produce json
// @Param q query string false "Sender name contains"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} Page[FriendRequestDTO]
// @Security BearerAuth
// @Router /friends/requests [get]
func (s *Server) GetFriendRequests(c *fiber.Ctx) error {
	q := parseListQuery(c)
	reqs, total, err := s.friendService.ListFriendRequests(c.UserContext(), caller(c), q)
	if err != nil {
		return respond(c, err)
	}

	items := make([]FriendRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, FriendRequestDTO{
			SenderName: r.SenderName,
			CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return c.JSON(newPage(items, total, q))
}

// GetSentFriendRequests handles GET /api/friends/requests/sent
// @Summary List sent friend requests
// @Tags friends
// @Produce json
// @Success 200 {array} SentFriendRequestDTO
// @Security BearerAuth
// @Router /friends/requests/sent [get]
func (s *Server) GetSentFriendRequests(c *fiber.Ctx) error {
	reqs, err := s.friendService.ListSentFriendRequests(c.UserContext(), caller(c))
	if err != nil {
		return respond(c, err)
	}

	items := make([]SentFriendRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, SentFriendRequestDTO{
			ReceiverName: r.ReceiverName,
			CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return c.JSON(items)
}

// SendFriendRequest handles POST /api/friends/requests/:username
// @Summary Send friend request
// @Tags friends
// @Param username path string true "Target user"
// @Success 201
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/requests/{username} [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	target, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	if err := s.friendService.SendFriendRequest(c.UserContext(), caller(c), target); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// CancelFriendRequest handles DELETE /api/friends/requests/:username
// @Summary Cancel sent friend request
// @Tags friends
// @Param username path string true "Target user"
// @Success 204
// @Security BearerAuth
// @Router /friends/requests/{username} [delete]
func (s *Server) CancelFriendRequest(c *fiber.Ctx) error {
	target, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	if err := s.friendService.CancelFriendRequest(c.UserContext(), caller(c), target); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AcceptFriendRequest handles POST /api/friends/requests/:username/accept
// @Summary Accept friend request
// @Tags friends
// @Param username path string true "Sender"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/requests/{username}/accept [post]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	sender, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	if err := s.friendService.AcceptFriendRequest(c.UserContext(), caller(c), sender); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RejectFriendRequest handles POST /api/friends/requests/:username/reject
// @Summary Reject friend request
// @Tags friends
// @Param username path string true "Sender"
// @Success 204
// @Security BearerAuth
// @Router /friends/requests/{username}/reject [post]
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	sender, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	if err := s.friendService.RejectFriendRequest(c.UserContext(), caller(c), sender); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFriendshipStatus handles GET /api/friends/status/:username
// @Summary Friendship status
// @Tags friends
// @Produce json
// @Param username path string true "Other user"
// @Success 200 {object} FriendshipStatusDTO
// @Security BearerAuth
// @Router /friends/status/{username} [get]
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	other, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	status, err := s.friendService.FriendshipStatus(c.UserContext(), caller(c), other)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(FriendshipStatusDTO{Username: other, Status: status})
}

// RemoveFriend handles DELETE /api/friends/:username
// @Summary Remove friend
// @Tags friends
// @Param username path string true "Friend"
// @Success 204
// @Security BearerAuth
// @Router /friends/{username} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	target, err := usernameParam(c, "username")
	if err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(c.UserContext(), caller(c), target); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
