package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/go-redis/redis/v8"
)

const DefaultHistoryKey = "tms_harness:history"

// RedisHistoryRepository stores history as a JSON list so several harness
// instances can share one view.
type RedisHistoryRepository struct {
	client *redis.Client
	key    string
}

func NewRedisHistoryRepository(client *redis.Client, key string) record.Repository {
	if key == "" {
		key = DefaultHistoryKey
	}
	return &RedisHistoryRepository{client: client, key: key}
}

func (r *RedisHistoryRepository) Append(ctx context.Context, rec record.TestRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal test record: %w", err)
	}
	if err := r.client.RPush(ctx, r.key, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to append test record: %w", err)
	}
	return nil
}

func (r *RedisHistoryRepository) List(ctx context.Context, limit int) ([]record.TestRecord, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	raw, err := r.client.LRange(ctx, r.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	records := make([]record.TestRecord, 0, len(raw))
	for _, item := range raw {
		var rec record.TestRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *RedisHistoryRepository) Count(ctx context.Context) (int, error) {
	n, err := r.client.LLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return int(n), nil
}

func (r *RedisHistoryRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
