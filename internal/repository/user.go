package repository

import (
	"context"
	"errors"

	"foilctf/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	SetTeam(ctx context.Context, username string, teamName *string) error
	ClearTeam(ctx context.Context, usernames []string) error
	IDsByUsernames(ctx context.Context, usernames []string) ([]uint, error)
	ListWithTeam(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return wrapWriteError(r.db.WithContext(ctx).Create(user).Error, "Username already taken")
}

// FindByUsername returns nil, nil when no user has that name.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) SetTeam(ctx context.Context, username string, teamName *string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("team_name", teamName).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) ClearTeam(ctx context.Context, usernames []string) error {
	if len(usernames) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username IN ?", usernames).
		Update("team_name", nil).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// IDsByUsernames resolves usernames to ids, silently skipping unknown names.
func (r *userRepository) IDsByUsernames(ctx context.Context, usernames []string) ([]uint, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username IN ?", usernames).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *userRepository) ListWithTeam(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("team_name IS NOT NULL").
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
