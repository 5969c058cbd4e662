package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"travelbooking/internal/utils"
)

// Notifier pushes operational events at the admin side. Delivery is
// best effort; a lost notification never fails the booking that
// produced it.
type Notifier interface {
	Notify(ctx context.Context, event string, payload map[string]any)
}

// RedisNotifier publishes JSON events on a pub/sub channel the admin
// dashboard subscribes to.
type RedisNotifier struct {
	Client  *redis.Client
	Channel string
}

func (n RedisNotifier) Notify(ctx context.Context, event string, payload map[string]any) {
	if n.Client == nil || n.Channel == "" {
		return
	}
	msg := map[string]any{
		"event": event,
		"at":    time.Now().UTC().Format(time.RFC3339),
		"data":  payload,
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		utils.LogError("", "notifier", "marshal", err)
		return
	}
	if err := n.Client.Publish(ctx, n.Channel, raw).Err(); err != nil {
		utils.LogError("", "notifier", "publish", err)
	}
}

// NoopNotifier is used when Redis is not configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, string, map[string]any) {}
