// Package seed populates a database with demo players, teams and friendships.
// It is intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"foilctf/internal/models"
	"foilctf/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is assigned to every seeded user.
const DefaultPassword = "password123"

// Options configuration for the seeder
type Options struct {
	// NumUsers extra random players created besides the scenario's users.
	NumUsers int
	// ScenarioPath points to a YAML scenario. Empty uses the built-in demo.
	ScenarioPath string
	ShouldClean  bool
	// FakerSeed makes generated names reproducible when non-zero.
	FakerSeed int64
}

// Seed populates the database with test data
func Seed(ctx context.Context, db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d random users...", opts.NumUsers)

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	scenario, err := loadScenario(opts.ScenarioPath)
	if err != nil {
		return err
	}

	if opts.FakerSeed != 0 {
		gofakeit.Seed(opts.FakerSeed)
	}
	random, err := CreateRandomUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d random users created", len(random))

	if err := scenario.Apply(ctx, db); err != nil {
		return fmt.Errorf("failed to apply scenario %q: %w", scenario.Name, err)
	}
	log.Printf("✓ scenario %q applied: %d users, %d teams, %d friendships",
		scenario.Name, len(scenario.Users), len(scenario.Teams), len(scenario.Friendships))

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

func loadScenario(path string) (*Scenario, error) {
	if path == "" {
		return DemoScenario()
	}
	return LoadScenario(path)
}

// Clean removes every row the seeder can create, children first.
func Clean(db *gorm.DB) error {
	tables := []string{
		"notification_users",
		"notifications",
		"team_join_requests",
		"team_members",
		"friend_requests",
		"friends",
		"teams",
		"users",
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

var invalidUsernameChars = regexp.MustCompile(`[^a-z0-9_-]`)

// fakeUsername returns a lower-case name that satisfies the username rules.
func fakeUsername() string {
	name := invalidUsernameChars.ReplaceAllString(strings.ToLower(gofakeit.Username()), "")
	if len(name) > 12 {
		name = name[:12]
	}
	for len(name) < 3 {
		name += gofakeit.Letter()
	}
	return strings.ToLower(name)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CreateUser inserts a user with a hashed DefaultPassword, or returns the
// existing row when the username is taken. Usernames must be ones the auth
// service would issue.
func CreateUser(db *gorm.DB, username string, role models.UserRole) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("seed user %q: %w", username, err)
	}

	var existing models.User
	err := db.Where("username = ?", username).Limit(1).Find(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing.ID != 0 {
		return &existing, nil
	}

	hashed, err := hashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = models.UserRoleUser
	}
	email := username + "@foilctf.local"
	user := &models.User{
		Username: username,
		Email:    &email,
		Password: hashed,
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}
	return user, nil
}

// CreateRandomUsers inserts n players with generated usernames. Names that
// collide with existing rows get a numeric suffix.
func CreateRandomUsers(db *gorm.DB, n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	seen := make(map[string]struct{}, n)
	for len(users) < n {
		name := fakeUsername()
		if _, dup := seen[name]; dup {
			name = fmt.Sprintf("%s%d", name, gofakeit.Number(10, 99))
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		u, err := CreateUser(db, name, models.UserRoleUser)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}
