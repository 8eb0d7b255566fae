package lifecycle

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/limonericx/community-bot/pkg/util"
)

const archiveQueueKey = "tickets:archive:due"

// ArchiveQueue is a Redis-backed queue of workspaces pending deletion.
// Entries are a sorted set scored by their due unix timestamp, so the
// schedule survives process restarts.
type ArchiveQueue struct {
	client *redis.Client
	logger *zap.Logger
}

// NewArchiveQueue constructs the queue on an existing Redis client.
func NewArchiveQueue(client *redis.Client, logger *zap.Logger) *ArchiveQueue {
	return &ArchiveQueue{client: client, logger: logger}
}

// Schedule records a channel for deletion at the given time. Rescheduling
// an already queued channel moves its due time.
func (q *ArchiveQueue) Schedule(ctx context.Context, channelID string, due time.Time) error {
	err := q.client.ZAdd(ctx, archiveQueueKey, redis.Z{
		Score:  float64(due.Unix()),
		Member: channelID,
	}).Err()
	if err != nil {
		return util.NewResourceError("failed to schedule workspace archival", err)
	}
	q.logger.Info("workspace archival scheduled",
		zap.String("channel_id", channelID),
		zap.Time("due", due))
	return nil
}

// ClaimDue removes and returns every channel whose due time has passed.
// Claimed entries are gone from the queue even if the caller's deletion
// later fails; a channel that vanished on its own resolves the same way.
func (q *ArchiveQueue) ClaimDue(ctx context.Context, before time.Time) ([]string, error) {
	max := strconv.FormatInt(before.Unix(), 10)
	ids, err := q.client.ZRangeByScore(ctx, archiveQueueKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: max,
	}).Result()
	if err != nil {
		return nil, util.NewResourceError("failed to read archival queue", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := q.client.ZRem(ctx, archiveQueueKey, members...).Err(); err != nil {
		return nil, util.NewResourceError("failed to claim archival entries", err)
	}
	return ids, nil
}

// Pending reports how many workspaces await deletion.
func (q *ArchiveQueue) Pending(ctx context.Context) (int64, error) {
	count, err := q.client.ZCard(ctx, archiveQueueKey).Result()
	if err != nil {
		return 0, util.NewResourceError("failed to count archival entries", err)
	}
	return count, nil
}
