// Package validation holds input rules shared by the HTTP layer and services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,15}$`)

const (
	// MaxTeamNameLength matches the teams.name column, in runes.
	MaxTeamNameLength = 64
	// MaxDescriptionLength bounds team descriptions, in runes.
	MaxDescriptionLength = 500
)

// ValidateTeamName rejects names that cannot be stored or addressed as a
// single /teams/:teamName path segment. Anything else is allowed.
func ValidateTeamName(name string) error {
	if name == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("team name cannot start or end with whitespace")
	}
	if utf8.RuneCountInString(name) > MaxTeamNameLength {
		return fmt.Errorf("team name must be at most %d characters", MaxTeamNameLength)
	}
	if strings.Contains(name, "/") || name == "." || name == ".." {
		return fmt.Errorf("team name cannot be used as a path segment")
	}
	return nil
}

// ValidateUsername validates the username format issued by the auth service.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-15 characters and contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}

// ValidateDescription bounds the team description length.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	return nil
}
