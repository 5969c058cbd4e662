package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

// PendingStore holds a booking draft while the user is off paying at a
// gateway. One slot per gateway order; the slot expires if the user
// never comes back.
type PendingStore interface {
	Stage(ctx context.Context, pb models.PendingBooking) error
	Peek(ctx context.Context, provider, orderID string) (models.PendingBooking, error)
	// Claim atomically reads and removes the slot so a replayed return
	// URL cannot create a second booking.
	Claim(ctx context.Context, provider, orderID string) (models.PendingBooking, error)
	Delete(ctx context.Context, provider, orderID string) error
}

type RedisPendingStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func pendingKey(provider, orderID string) string {
	return "pending:" + provider + ":" + orderID
}

func (s RedisPendingStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 30 * time.Minute
}

func (s RedisPendingStore) Stage(ctx context.Context, pb models.PendingBooking) error {
	payload, err := json.Marshal(pb)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.Client.Set(ctx, pendingKey(pb.Provider, pb.OrderID), payload, s.ttl()).Err(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (s RedisPendingStore) Peek(ctx context.Context, provider, orderID string) (models.PendingBooking, error) {
	raw, err := s.Client.Get(ctx, pendingKey(provider, orderID)).Bytes()
	return decodePending(raw, err)
}

func (s RedisPendingStore) Claim(ctx context.Context, provider, orderID string) (models.PendingBooking, error) {
	raw, err := s.Client.GetDel(ctx, pendingKey(provider, orderID)).Bytes()
	return decodePending(raw, err)
}

func (s RedisPendingStore) Delete(ctx context.Context, provider, orderID string) error {
	if err := s.Client.Del(ctx, pendingKey(provider, orderID)).Err(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func decodePending(raw []byte, err error) (models.PendingBooking, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.PendingBooking{}, domain.NotFoundError{Resource: "pending booking", Err: err}
		}
		return models.PendingBooking{}, domain.InternalError{Err: err}
	}
	var pb models.PendingBooking
	if err := json.Unmarshal(raw, &pb); err != nil {
		return models.PendingBooking{}, domain.InternalError{Err: err}
	}
	return pb, nil
}
