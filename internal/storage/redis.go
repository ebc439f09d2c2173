package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key the store writes.
const DefaultRedisPrefix = "arcade"

// watchRetries bounds optimistic retries when another client raced a
// high score update.
const watchRetries = 5

// RedisStore keeps scores in Redis. The high score of a game is a string
// key; runs are members of a sorted set scored by their points.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// OpenRedis connects to the Redis server at url (redis://host:port/db) and
// verifies the connection.
func OpenRedis(url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)
	store := NewRedisStore(client, DefaultRedisPrefix)

	ctx, cancel := store.ctx()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot connect to redis: %w", err)
	}

	return store, nil
}

// NewRedisStore wraps an existing client. Keys are written under prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, timeout: 2 * time.Second}
}

func (r *RedisStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *RedisStore) highKey(gameID string) string {
	return r.prefix + ":high:" + gameID
}

func (r *RedisStore) runsKey(gameID string) string {
	return r.prefix + ":runs:" + gameID
}

func (r *RedisStore) seqKey(gameID string) string {
	return r.prefix + ":seq:" + gameID
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// HighScore returns the stored high score for the given game.
// Returns 0 if none exists.
func (r *RedisStore) HighScore(gameID string) (int, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	score, err := r.client.Get(ctx, r.highKey(gameID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// SetHighScore raises the high score inside a WATCH/MULTI transaction, so a
// concurrent writer with a larger value is never overwritten.
func (r *RedisStore) SetHighScore(gameID string, score int) error {
	ctx, cancel := r.ctx()
	defer cancel()

	key := r.highKey(gameID)
	raise := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil && score <= current {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, score, 0)
			return nil
		})
		return err
	}

	for range watchRetries {
		err := r.client.Watch(ctx, raise, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("storage: cannot set high score: %w", err)
		}
		return nil
	}
	return fmt.Errorf("storage: cannot set high score: %w", redis.TxFailedErr)
}

// SaveScore records a finished run for the given game and raises the high
// score when the run beat it. Returns the ID of the inserted record.
func (r *RedisStore) SaveScore(gameID string, score int, outcome string) (int64, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	id, err := r.client.Incr(ctx, r.seqKey(gameID)).Result()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot allocate score id: %w", err)
	}

	member := encodeRun(id, outcome, time.Now().UTC())
	err = r.client.ZAdd(ctx, r.runsKey(gameID), redis.Z{Score: float64(score), Member: member}).Err()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	if err := r.SetHighScore(gameID, score); err != nil {
		return id, err
	}
	return id, nil
}

// TopScores retrieves the top N runs for the given game.
// Results are ordered by score descending.
func (r *RedisStore) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	ctx, cancel := r.ctx()
	defer cancel()

	zs, err := r.client.ZRevRangeWithScores(ctx, r.runsKey(gameID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return decodeRuns(gameID, zs), nil
}

// Stats retrieves aggregated statistics for the given game.
func (r *RedisStore) Stats(gameID string) (*GameStats, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	zs, err := r.client.ZRangeWithScores(ctx, r.runsKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	stats := &GameStats{GameID: gameID}
	for _, e := range decodeRuns(gameID, zs) {
		stats.GamesCount++
		stats.TotalScore += int64(e.Score)
		if e.Outcome == OutcomeWin {
			stats.Wins++
		}
		if e.CreatedAt.After(stats.LastPlayed) {
			stats.LastPlayed = e.CreatedAt
		}
	}
	if stats.GamesCount > 0 {
		stats.AvgScore = float64(stats.TotalScore) / float64(stats.GamesCount)
	}

	high, err := r.HighScore(gameID)
	if err != nil {
		return nil, err
	}
	stats.HighScore = high

	return stats, nil
}

// ClearScores deletes all runs and the high score for the given game.
func (r *RedisStore) ClearScores(gameID string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	err := r.client.Del(ctx, r.runsKey(gameID), r.highKey(gameID), r.seqKey(gameID)).Err()
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Run members are "id|outcome|unix-nanos"; the id keeps equal scores unique.
func encodeRun(id int64, outcome string, at time.Time) string {
	return strconv.FormatInt(id, 10) + "|" + outcome + "|" + strconv.FormatInt(at.UnixNano(), 10)
}

func decodeRuns(gameID string, zs []redis.Z) []ScoreEntry {
	entries := make([]ScoreEntry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		parts := strings.SplitN(member, "|", 3)
		if len(parts) != 3 {
			continue
		}
		id, _ := strconv.ParseInt(parts[0], 10, 64)
		nanos, _ := strconv.ParseInt(parts[2], 10, 64)
		entries = append(entries, ScoreEntry{
			ID:        id,
			GameID:    gameID,
			Score:     int(z.Score),
			Outcome:   parts[1],
			CreatedAt: time.Unix(0, nanos).UTC(),
		})
	}
	return entries
}
