package repository

import (
	"context"

	"foilctf/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friendship edges. Every lookup
// treats an edge as unordered.
type FriendRepository interface {
	Create(ctx context.Context, username1, username2 string) error
	Exists(ctx context.Context, a, b string) (bool, error)
	Delete(ctx context.Context, a, b string) (bool, error)
	List(ctx context.Context, username string, q ListQuery) ([]models.Friend, int64, error)
	All(ctx context.Context) ([]models.Friend, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, username1, username2 string) error {
	edge := &models.Friend{Username1: username1, Username2: username2}
	return wrapWriteError(r.db.WithContext(ctx).Create(edge).Error, "Already friends")
}

func (r *friendRepository) Exists(ctx context.Context, a, b string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Friend{}).
		Where(unorderedPair("username_1", "username_2", a, b)).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Delete removes the edge in whichever orientation it was stored.
func (r *friendRepository) Delete(ctx context.Context, a, b string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where(unorderedPair("username_1", "username_2", a, b)).
		Delete(&models.Friend{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// List returns username's friendship edges, optionally filtered by the
// other user's name, newest first.
func (r *friendRepository) List(ctx context.Context, username string, q ListQuery) ([]models.Friend, int64, error) {
	q = q.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Friend{})
	if q.Search != "" {
		query = query.Where(counterpartMatches("username_1", "username_2", username, q.Search))
	} else {
		query = query.Where(involving("username_1", "username_2", username))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var edges []models.Friend
	if err := query.
		Order("created_at DESC").
		Order("username_1 ASC").
		Order("username_2 ASC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&edges).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return edges, total, nil
}

func (r *friendRepository) All(ctx context.Context) ([]models.Friend, error) {
	var edges []models.Friend
	if err := r.db.WithContext(ctx).Order("username_1 ASC, username_2 ASC").Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}
