package service

import (
	"context"

	"foilctf/internal/models"
	"foilctf/internal/notifications"
	"foilctf/internal/observability"
	"foilctf/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FriendService provides friend-request and friendship business logic.
// For any pair of users at most one of {request either way, friendship}
// exists at a time.
type FriendService struct {
	runner
}

// NewFriendService returns a new FriendService.
func NewFriendService(store *repository.Store, dispatcher *notifications.Dispatcher) *FriendService {
	return &FriendService{runner{store: store, dispatcher: dispatcher}}
}

// SendFriendRequest sends a friend request to the target user.
func (s *FriendService) SendFriendRequest(ctx context.Context, sender, target string) (err error) {
	span, ctx := observability.StartSpan(ctx, "FriendService.SendFriendRequest",
		attribute.String("user.name", sender), attribute.String("target.name", target))
	defer span.Finish(&err)

	if sender == target {
		return models.NewForbiddenError("No self requests allowed")
	}

	err = s.run(ctx, "friend_request.send", func(tx *repository.Store) (*notifications.Delivery, error) {
		user, err := tx.Users.FindByUsername(ctx, target)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, errUserNotFound
		}

		friends, err := tx.Friends.Exists(ctx, sender, target)
		if err != nil {
			return nil, err
		}
		if friends {
			return nil, errAlreadyFriends
		}

		pending, err := tx.FriendRequests.ExistsEitherWay(ctx, sender, target)
		if err != nil {
			return nil, err
		}
		if pending {
			return nil, models.NewForbiddenError("Request already exists")
		}
		if err := tx.FriendRequests.Create(ctx, sender, target); err != nil {
			return nil, err
		}

		return s.dispatcher.Fanout(ctx, tx, models.NotificationContents{
			Title:   "New Friend Request",
			Message: sender + " has sent a request to you",
		}, []string{target})
	})
	if err == nil {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// CancelFriendRequest withdraws sender's request to target, if any.
func (s *FriendService) CancelFriendRequest(ctx context.Context, sender, target string) (err error) {
	span, ctx := observability.StartSpan(ctx, "FriendService.CancelFriendRequest",
		attribute.String("user.name", sender), attribute.String("target.name", target))
	defer span.Finish(&err)

	err = s.run(ctx, "friend_request.cancel", func(tx *repository.Store) (*notifications.Delivery, error) {
		_, err := tx.FriendRequests.Delete(ctx, sender, target)
		return nil, err
	})
	if err == nil {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// AcceptFriendRequest turns the pending request sender→accepter into a
// friendship and tells the sender.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, accepter, sender string) (err error) {
	span, ctx := observability.StartSpan(ctx, "FriendService.AcceptFriendRequest",
		attribute.String("user.name", accepter), attribute.String("target.name", sender))
	defer span.Finish(&err)

	err = s.run(ctx, "friend_request.accept", func(tx *repository.Store) (*notifications.Delivery, error) {
		deleted, err := tx.FriendRequests.Delete(ctx, sender, accepter)
		if err != nil {
			return nil, err
		}
		if !deleted {
			return nil, models.NewForbiddenError("No such friend request")
		}

		friends, err := tx.Friends.Exists(ctx, accepter, sender)
		if err != nil {
			return nil, err
		}
		if friends {
			return nil, errAlreadyFriends
		}
		if err := tx.Friends.Create(ctx, accepter, sender); err != nil {
			return nil, err
		}

		return s.dispatcher.Fanout(ctx, tx, models.NotificationContents{
			Title:   "New Friend",
			Message: "you can start your conversation with " + accepter,
		}, []string{sender})
	})
	if err == nil {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// RejectFriendRequest drops the pending request sender→accepter, if any.
func (s *FriendService) RejectFriendRequest(ctx context.Context, accepter, sender string) (err error) {
	span, ctx := observability.StartSpan(ctx, "FriendService.RejectFriendRequest",
		attribute.String("user.name", accepter), attribute.String("target.name", sender))
	defer span.Finish(&err)

	err = s.run(ctx, "friend_request.reject", func(tx *repository.Store) (*notifications.Delivery, error) {
		_, err := tx.FriendRequests.Delete(ctx, sender, accepter)
		return nil, err
	})
	if err == nil {
		s.refreshRequestGauges(ctx)
	}
	return err
}

// RemoveFriend deletes the friendship between requester and target in
// either orientation. Removing a missing friendship is not an error.
func (s *FriendService) RemoveFriend(ctx context.Context, requester, target string) (err error) {
	span, ctx := observability.StartSpan(ctx, "FriendService.RemoveFriend",
		attribute.String("user.name", requester), attribute.String("target.name", target))
	defer span.Finish(&err)

	return s.run(ctx, "friend.remove", func(tx *repository.Store) (*notifications.Delivery, error) {
		_, err := tx.Friends.Delete(ctx, requester, target)
		return nil, err
	})
}

// ListFriends returns one page of username's friends and the total count.
func (s *FriendService) ListFriends(ctx context.Context, username string, q repository.ListQuery) ([]string, int64, error) {
	edges, total, err := s.store.Friends.List(ctx, username, q)
	if err != nil {
		return nil, 0, err
	}
	names := make([]string, 0, len(edges))
	for _, e := range edges {
		names = append(names, e.Other(username))
	}
	return names, total, nil
}

// ListFriendRequests returns one page of requests addressed to username.
func (s *FriendService) ListFriendRequests(ctx context.Context, username string, q repository.ListQuery) ([]models.FriendRequest, int64, error) {
	return s.store.FriendRequests.ListReceived(ctx, username, q)
}

// ListSentFriendRequests returns the requests username is still waiting on,
// newest first.
func (s *FriendService) ListSentFriendRequests(ctx context.Context, username string) ([]models.FriendRequest, error) {
	return s.store.FriendRequests.ListSent(ctx, username)
}

// FriendshipStatus describes the relationship between viewer and other as
// seen by viewer.
func (s *FriendService) FriendshipStatus(ctx context.Context, viewer, other string) (models.FriendshipStatus, error) {
	friends, err := s.store.Friends.Exists(ctx, viewer, other)
	if err != nil {
		return "", err
	}
	if friends {
		return models.FriendshipStatusFriends, nil
	}

	sent, err := s.store.FriendRequests.Exists(ctx, viewer, other)
	if err != nil {
		return "", err
	}
	if sent {
		return models.FriendshipStatusPendingSent, nil
	}

	received, err := s.store.FriendRequests.Exists(ctx, other, viewer)
	if err != nil {
		return "", err
	}
	if received {
		return models.FriendshipStatusPendingReceived, nil
	}
	return models.FriendshipStatusNone, nil
}
