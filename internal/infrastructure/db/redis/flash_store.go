package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

// flashTTL bounds how long an unconsumed flash queue lingers. One request
// cycle is the intent; an hour covers abandoned tabs.
const flashTTL = time.Hour

// FlashStore queues flash messages per session in a Redis list under
// flash:<session-id>. Consume drains the list atomically so each message is
// rendered exactly once.
type FlashStore struct {
	client *redis.Client
}

func NewFlashStore(client *redis.Client) *FlashStore {
	return &FlashStore{client: client}
}

func (s *FlashStore) Push(ctx context.Context, sessionID string, f domain.Flash) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key(sessionID), raw)
	pipe.Expire(ctx, s.key(sessionID), flashTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

func (s *FlashStore) Consume(ctx context.Context, sessionID string) ([]domain.Flash, error) {
	pipe := s.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, s.key(sessionID), 0, -1)
	pipe.Del(ctx, s.key(sessionID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("consume flashes: %w", err)
	}

	raws := rangeCmd.Val()
	if len(raws) == 0 {
		return nil, nil
	}

	flashes := make([]domain.Flash, 0, len(raws))
	for _, raw := range raws {
		var f domain.Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, fmt.Errorf("decode flash: %w", err)
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

func (s *FlashStore) key(sessionID string) string {
	return "flash:" + sessionID
}
