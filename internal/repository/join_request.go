package repository

import (
	"context"

	"foilctf/internal/models"

	"gorm.io/gorm"
)

// JoinRequestRepository defines the interface for team join requests
type JoinRequestRepository interface {
	Create(ctx context.Context, teamName, username string) error
	Exists(ctx context.Context, teamName, username string) (bool, error)
	Delete(ctx context.Context, teamName, username string) (bool, error)
	DeleteAllForUser(ctx context.Context, username string) (int64, error)
	DeleteAllForTeam(ctx context.Context, teamName string) (int64, error)
	ListForUser(ctx context.Context, username string) ([]models.TeamJoinRequest, error)
	ListForTeam(ctx context.Context, teamName string) ([]models.TeamJoinRequest, error)
	Count(ctx context.Context) (int64, error)
	All(ctx context.Context) ([]models.TeamJoinRequest, error)
}

type joinRequestRepository struct {
	db *gorm.DB
}

// NewJoinRequestRepository creates a new join request repository
func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

func (r *joinRequestRepository) Create(ctx context.Context, teamName, username string) error {
	req := &models.TeamJoinRequest{TeamName: teamName, Username: username}
	return wrapWriteError(r.db.WithContext(ctx).Create(req).Error, "Request already sent")
}

func (r *joinRequestRepository) Exists(ctx context.Context, teamName, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TeamJoinRequest{}).
		Where("team_name = ? AND username = ?", teamName, username).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Delete removes one request and reports whether it existed.
func (r *joinRequestRepository) Delete(ctx context.Context, teamName, username string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("team_name = ? AND username = ?", teamName, username).
		Delete(&models.TeamJoinRequest{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAllForUser withdraws every pending request the user has open.
func (r *joinRequestRepository) DeleteAllForUser(ctx context.Context, username string) (int64, error) {
	res := r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.TeamJoinRequest{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *joinRequestRepository) DeleteAllForTeam(ctx context.Context, teamName string) (int64, error) {
	res := r.db.WithContext(ctx).Where("team_name = ?", teamName).Delete(&models.TeamJoinRequest{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *joinRequestRepository) list(ctx context.Context, column, value string) ([]models.TeamJoinRequest, error) {
	var reqs []models.TeamJoinRequest
	if err := r.db.WithContext(ctx).
		Where(eq(column, value)).
		Order("created_at DESC").
		Order("team_name ASC").
		Order("username ASC").
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *joinRequestRepository) ListForUser(ctx context.Context, username string) ([]models.TeamJoinRequest, error) {
	return r.list(ctx, "username", username)
}

func (r *joinRequestRepository) ListForTeam(ctx context.Context, teamName string) ([]models.TeamJoinRequest, error) {
	return r.list(ctx, "team_name", teamName)
}

func (r *joinRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TeamJoinRequest{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *joinRequestRepository) All(ctx context.Context) ([]models.TeamJoinRequest, error) {
	var reqs []models.TeamJoinRequest
	if err := r.db.WithContext(ctx).Order("team_name ASC, username ASC").Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}
