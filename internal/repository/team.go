package repository

import (
	"context"
	"errors"

	"foilctf/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByName(ctx context.Context, name string) (*models.Team, error)
	FindByNameForUpdate(ctx context.Context, name string) (*models.Team, error)
	FindByCaptainForUpdate(ctx context.Context, captain string) (*models.Team, error)
	Update(ctx context.Context, name string, updates map[string]interface{}) error
	AdjustMembersCount(ctx context.Context, name string, delta int) error
	SetMembersCount(ctx context.Context, name string, count int) error
	MembersCount(ctx context.Context, name string) (int, error)
	SetCaptain(ctx context.Context, name, captain string) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, filter TeamFilter) ([]models.Team, int64, error)
	All(ctx context.Context) ([]models.Team, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	return wrapWriteError(r.db.WithContext(ctx).Create(team).Error, "Team name already taken")
}

func (r *teamRepository) first(query *gorm.DB) (*models.Team, error) {
	var team models.Team
	if err := query.First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &team, nil
}

// FindByName returns nil, nil when the team does not exist.
func (r *teamRepository) FindByName(ctx context.Context, name string) (*models.Team, error) {
	return r.first(r.db.WithContext(ctx).Where("name = ?", name))
}

// FindByNameForUpdate reads the team row and locks it until the surrounding
// transaction ends.
func (r *teamRepository) FindByNameForUpdate(ctx context.Context, name string) (*models.Team, error) {
	return r.first(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name))
}

func (r *teamRepository) FindByCaptainForUpdate(ctx context.Context, captain string) (*models.Team, error) {
	return r.first(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("captain_name = ?", captain))
}

func (r *teamRepository) Update(ctx context.Context, name string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("name = ?", name).
		Updates(updates).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// AdjustMembersCount changes the counter in SQL so concurrent writers never
// lose an update.
func (r *teamRepository) AdjustMembersCount(ctx context.Context, name string, delta int) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("name = ?", name).
		Update("members_count", gorm.Expr("members_count + ?", delta)).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *teamRepository) SetMembersCount(ctx context.Context, name string, count int) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("name = ?", name).
		Update("members_count", count).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *teamRepository) MembersCount(ctx context.Context, name string) (int, error) {
	var counts []int
	if err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("name = ?", name).
		Pluck("members_count", &counts).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if len(counts) == 0 {
		return 0, models.NewNotFoundError("Team not found")
	}
	return counts[0], nil
}

func (r *teamRepository) SetCaptain(ctx context.Context, name, captain string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("name = ?", name).
		Update("captain_name", captain).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *teamRepository) Delete(ctx context.Context, name string) error {
	if err := r.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Team{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *teamRepository) List(ctx context.Context, filter TeamFilter) ([]models.Team, int64, error) {
	q := filter.ListQuery.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Team{})
	if q.Search != "" {
		query = query.Where(containsFold("name", q.Search))
	}
	if filter.OpenOnly {
		query = query.Where(eq("is_locked", false))
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var teams []models.Team
	if err := query.
		Order("created_at DESC").
		Order("name ASC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&teams).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return teams, total, nil
}

func (r *teamRepository) All(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&teams).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return teams, nil
}
