package repository

import (
	"context"

	"foilctf/internal/models"

	"gorm.io/gorm"
)

// FriendRequestRepository defines the interface for pending friend requests
type FriendRequestRepository interface {
	Create(ctx context.Context, sender, receiver string) error
	Exists(ctx context.Context, sender, receiver string) (bool, error)
	ExistsEitherWay(ctx context.Context, a, b string) (bool, error)
	Delete(ctx context.Context, sender, receiver string) (bool, error)
	ListReceived(ctx context.Context, receiver string, q ListQuery) ([]models.FriendRequest, int64, error)
	ListSent(ctx context.Context, sender string) ([]models.FriendRequest, error)
	Count(ctx context.Context) (int64, error)
	All(ctx context.Context) ([]models.FriendRequest, error)
}

type friendRequestRepository struct {
	db *gorm.DB
}

// NewFriendRequestRepository creates a new friend request repository
func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) Create(ctx context.Context, sender, receiver string) error {
	req := &models.FriendRequest{SenderName: sender, ReceiverName: receiver}
	return wrapWriteError(r.db.WithContext(ctx).Create(req).Error, "Request already exists")
}

// Exists checks the directed request sender -> receiver.
func (r *friendRequestRepository) Exists(ctx context.Context, sender, receiver string) (bool, error) {
	return r.exists(ctx, clauseDirected(sender, receiver))
}

func (r *friendRequestRepository) ExistsEitherWay(ctx context.Context, a, b string) (bool, error) {
	return r.exists(ctx, unorderedPair("sender_name", "receiver_name", a, b))
}

func (r *friendRequestRepository) exists(ctx context.Context, cond interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where(cond).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Delete removes the directed request and reports whether it existed.
func (r *friendRequestRepository) Delete(ctx context.Context, sender, receiver string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where(clauseDirected(sender, receiver)).
		Delete(&models.FriendRequest{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListReceived returns requests addressed to receiver, optionally filtered
// by sender name, newest first.
func (r *friendRequestRepository) ListReceived(ctx context.Context, receiver string, q ListQuery) ([]models.FriendRequest, int64, error) {
	q = q.Normalize()

	query := r.db.WithContext(ctx).Model(&models.FriendRequest{}).Where(eq("receiver_name", receiver))
	if q.Search != "" {
		query = query.Where(containsFold("sender_name", q.Search))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var reqs []models.FriendRequest
	if err := query.
		Order("created_at DESC").
		Order("sender_name ASC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&reqs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return reqs, total, nil
}

func (r *friendRequestRepository) ListSent(ctx context.Context, sender string) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where(eq("sender_name", sender)).
		Order("created_at DESC").
		Order("receiver_name ASC").
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *friendRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FriendRequest{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *friendRequestRepository) All(ctx context.Context) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	if err := r.db.WithContext(ctx).Order("sender_name ASC, receiver_name ASC").Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}
