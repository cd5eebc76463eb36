package seed

import (
	"context"
	"embed"
	"fmt"
	"os"

	"foilctf/internal/featureflags"
	"foilctf/internal/models"
	"foilctf/internal/notifications"
	"foilctf/internal/repository"
	"foilctf/internal/service"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed scenarios/*.yml
var scenarioFS embed.FS

// Scenario describes a social graph to build. Every relationship is created
// through the services so the resulting rows satisfy the same rules as
// live traffic.
type Scenario struct {
	Name         string            `yaml:"name"`
	Users        []ScenarioUser    `yaml:"users"`
	Teams        []ScenarioTeam    `yaml:"teams"`
	JoinRequests []ScenarioRequest `yaml:"join_requests"`
	Friendships  [][2]string       `yaml:"friendships"`
	// FriendRequests are left pending, sender first.
	FriendRequests [][2]string `yaml:"friend_requests"`
}

// ScenarioUser is a named player.
type ScenarioUser struct {
	Username string          `yaml:"username"`
	Role     models.UserRole `yaml:"role"`
}

// ScenarioTeam is a team with its captain and accepted members.
type ScenarioTeam struct {
	Name        string   `yaml:"name"`
	Captain     string   `yaml:"captain"`
	Members     []string `yaml:"members"`
	Description string   `yaml:"description"`
	Locked      bool     `yaml:"locked"`
}

// ScenarioRequest is a pending join request.
type ScenarioRequest struct {
	Username string `yaml:"username"`
	Team     string `yaml:"team"`
}

// ParseScenario decodes a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Name == "" {
		s.Name = "unnamed"
	}
	return &s, nil
}

// LoadScenario reads a YAML scenario from disk.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// DemoScenario returns the built-in demo graph.
func DemoScenario() (*Scenario, error) {
	data, err := scenarioFS.ReadFile("scenarios/demo.yml")
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// Apply creates the scenario's users and relationships. Users that already
// exist are reused.
func (s *Scenario) Apply(ctx context.Context, db *gorm.DB) error {
	for _, u := range s.Users {
		if _, err := CreateUser(db, u.Username, u.Role); err != nil {
			return err
		}
	}

	store := repository.NewStore(db)
	dispatcher := notifications.NewDispatcher(nil)
	teams := service.NewTeamService(store, dispatcher)
	membership := service.NewMembershipService(store, dispatcher, featureflags.NewManager(""))
	friends := service.NewFriendService(store, dispatcher)

	for _, t := range s.Teams {
		if _, err := teams.CreateTeam(ctx, t.Captain, t.Name); err != nil {
			return fmt.Errorf("team %s: %w", t.Name, err)
		}
		for _, member := range t.Members {
			if err := membership.SendJoinRequest(ctx, member, t.Name); err != nil {
				return fmt.Errorf("team %s request from %s: %w", t.Name, member, err)
			}
			if err := membership.AcceptJoinRequest(ctx, t.Captain, t.Name, member); err != nil {
				return fmt.Errorf("team %s accept %s: %w", t.Name, member, err)
			}
		}

		patch := service.TeamPatch{}
		if t.Description != "" {
			patch.Description = &t.Description
		}
		if t.Locked {
			locked := true
			patch.IsLocked = &locked
		}
		if _, err := teams.UpdateTeam(ctx, t.Captain, patch); err != nil {
			return fmt.Errorf("team %s update: %w", t.Name, err)
		}
	}

	for _, r := range s.JoinRequests {
		if err := membership.SendJoinRequest(ctx, r.Username, r.Team); err != nil {
			return fmt.Errorf("join request %s -> %s: %w", r.Username, r.Team, err)
		}
	}

	for _, pair := range s.Friendships {
		if err := friends.SendFriendRequest(ctx, pair[0], pair[1]); err != nil {
			return fmt.Errorf("friendship %s/%s: %w", pair[0], pair[1], err)
		}
		if err := friends.AcceptFriendRequest(ctx, pair[1], pair[0]); err != nil {
			return fmt.Errorf("friendship %s/%s: %w", pair[0], pair[1], err)
		}
	}

	for _, pair := range s.FriendRequests {
		if err := friends.SendFriendRequest(ctx, pair[0], pair[1]); err != nil {
			return fmt.Errorf("friend request %s -> %s: %w", pair[0], pair[1], err)
		}
	}
	return nil
}
