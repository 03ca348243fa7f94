// Package redis persists cart snapshots in Redis, one JSON record per
// session, and relays change notifications between sessions over pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raincoat98/lumina/internal/cart"
)

// Versioned key layout so unrelated stores never collide.
const (
	keyPrefix   = "lumina:cart:v1:"
	syncChannel = "lumina:cart:v1:sync"
)

// Repository implements cart.Repository on top of Redis.
type Repository struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRepository creates a Redis-backed cart repository. Carts expire after
// ttl of inactivity.
func NewRepository(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Repository {
	return &Repository{client: client, ttl: ttl, logger: logger}
}

func cartKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Load fetches the stored snapshot for a session. A missing key is not an
// error; it just means the session has no persisted cart yet.
func (r *Repository) Load(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", sessionID, err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt record is logged and treated as absent; the last known
		// good in-memory state wins.
		r.logger.WarnContext(ctx, "discarding corrupt cart record",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return &snap, nil
}

// Save stores the snapshot with the configured TTL and publishes it on the
// sync channel for other listeners.
func (r *Repository) Save(ctx context.Context, snap *cart.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(snap.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", snap.SessionID, err)
	}

	if err := r.client.Publish(ctx, syncChannel, data).Err(); err != nil {
		// Persisting succeeded; the notification is advisory.
		r.logger.WarnContext(ctx, "cart sync publish failed",
			slog.String("session_id", snap.SessionID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Delete removes a session's stored snapshot.
func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", sessionID, err)
	}
	return nil
}

// Watch subscribes to the sync channel and forwards decodable snapshots
// until ctx is canceled. Unparseable payloads are logged and dropped.
func (r *Repository) Watch(ctx context.Context) (<-chan *cart.Snapshot, error) {
	sub := r.client.Subscribe(ctx, syncChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe cart sync: %w", err)
	}

	out := make(chan *cart.Snapshot)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var snap cart.Snapshot
				if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
					r.logger.Warn("ignoring unparseable cart sync payload",
						slog.String("error", err.Error()),
					)
					continue
				}
				select {
				case out <- &snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Ping checks Redis connectivity for health probes.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
