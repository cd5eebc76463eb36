// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"foilctf/internal/models"

	"gorm.io/gorm"
)

// Store groups the per-table repositories over one *gorm.DB handle. Inside
// Transaction every repository shares the same transaction.
type Store struct {
	db *gorm.DB

	Users          UserRepository
	Teams          TeamRepository
	Members        MemberRepository
	JoinRequests   JoinRequestRepository
	Friends        FriendRepository
	FriendRequests FriendRequestRepository
	Notifications  NotificationRepository
}

// NewStore creates a Store backed by db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Users:          NewUserRepository(db),
		Teams:          NewTeamRepository(db),
		Members:        NewMemberRepository(db),
		JoinRequests:   NewJoinRequestRepository(db),
		Friends:        NewFriendRepository(db),
		FriendRequests: NewFriendRequestRepository(db),
		Notifications:  NewNotificationRepository(db),
	}
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside one database transaction. Any error returned by
// fn rolls everything back and is returned unchanged; commit failures come
// back as Internal errors.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	var opts []*sql.TxOptions
	if s.db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	}, opts...)
	if err == nil {
		return nil
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
