package repository

import (
	"context"
	"errors"

	"foilctf/internal/models"

	"gorm.io/gorm"
)

// MemberRepository defines the interface for team membership edges
type MemberRepository interface {
	Add(ctx context.Context, teamName, member string) error
	Remove(ctx context.Context, teamName, member string) (bool, error)
	RemoveAll(ctx context.Context, teamName string) error
	IsMember(ctx context.Context, teamName, member string) (bool, error)
	FindByMember(ctx context.Context, member string) (*models.TeamMember, error)
	ListMembers(ctx context.Context, teamName string) ([]string, error)
	CountByTeam(ctx context.Context) (map[string]int, error)
	All(ctx context.Context) ([]models.TeamMember, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new membership repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Add inserts the edge. A user already on any team surfaces as Conflict
// through the member_name unique index.
func (r *memberRepository) Add(ctx context.Context, teamName, member string) error {
	edge := &models.TeamMember{TeamName: teamName, MemberName: member}
	return wrapWriteError(r.db.WithContext(ctx).Create(edge).Error, "User is already in a team")
}

// Remove deletes the edge and reports whether one existed.
func (r *memberRepository) Remove(ctx context.Context, teamName, member string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("team_name = ? AND member_name = ?", teamName, member).
		Delete(&models.TeamMember{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *memberRepository) RemoveAll(ctx context.Context, teamName string) error {
	if err := r.db.WithContext(ctx).
		Where("team_name = ?", teamName).
		Delete(&models.TeamMember{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *memberRepository) IsMember(ctx context.Context, teamName, member string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_name = ? AND member_name = ?", teamName, member).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// FindByMember returns the member's single edge, or nil, nil.
func (r *memberRepository) FindByMember(ctx context.Context, member string) (*models.TeamMember, error) {
	var edge models.TeamMember
	if err := r.db.WithContext(ctx).Where("member_name = ?", member).First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

// ListMembers returns member names in join order.
func (r *memberRepository) ListMembers(ctx context.Context, teamName string) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_name = ?", teamName).
		Order("created_at ASC").
		Order("member_name ASC").
		Pluck("member_name", &names).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}

func (r *memberRepository) CountByTeam(ctx context.Context) (map[string]int, error) {
	type row struct {
		TeamName string
		Total    int
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Select("team_name, COUNT(*) AS total").
		Group("team_name").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.TeamName] = r.Total
	}
	return out, nil
}

func (r *memberRepository) All(ctx context.Context) ([]models.TeamMember, error) {
	var edges []models.TeamMember
	if err := r.db.WithContext(ctx).Order("team_name ASC, member_name ASC").Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}
