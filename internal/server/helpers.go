package server

import (
	"errors"
	"strings"

	"foilctf/internal/middleware"
	"foilctf/internal/models"
	"foilctf/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

var validate = validator.New()

// Page is the envelope for paginated list responses.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func newPage[T any](items []T, total int64, q repository.ListQuery) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: q.Page, Limit: q.Limit}
}

// respond writes err with the status matching its kind.
func respond(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusFor(err), err)
}

// caller returns the authenticated username. AuthRequired guarantees it on
// protected routes.
func caller(c *fiber.Ctx) string {
	if p, ok := middleware.GetPrincipal(c); ok {
		return p.Username
	}
	return ""
}

// parseListQuery reads q, page and limit query parameters.
func parseListQuery(c *fiber.Ctx) repository.ListQuery {
	return repository.ListQuery{
		Search: c.Query("q"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
	}.Normalize()
}

// usernameParam extracts a username route parameter. Only emptiness is
// checked; names that match no user surface from the services.
func usernameParam(c *fiber.Ctx, param string) (string, error) {
	name := strings.TrimSpace(c.Params(param))
	if name == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Username is required"))
		return "", errResponseWritten
	}
	return name, nil
}

// teamParam extracts the :teamName route parameter. Only emptiness is
// checked; unknown names surface from the services.
func teamParam(c *fiber.Ctx) (string, error) {
	name := c.Params("teamName")
	if name == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Team name is required"))
		return "", errResponseWritten
	}
	return name, nil
}

// bindBody parses the JSON body into dst and runs struct validation.
func bindBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	if err := validate.Struct(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(validationMessage(err)))
		return errResponseWritten
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}
