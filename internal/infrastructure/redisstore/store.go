// Package redisstore keeps the small amount of shared cycle state in
// Redis: a lock so only one replica scrapes at a time, and the outcome
// of the last completed cycle for status reporting.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"jobcrawler/internal/ports"
)

const (
	lockKey    = "jobcrawler:cycle:lock"
	lastRunKey = "jobcrawler:cycle:last_run"
)

// NewClient connects to Redis and verifies the connection before
// returning it.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// CycleState implements both the cycle lock and the last-run record on
// one Redis client.
type CycleState struct {
	client *redis.Client
}

var (
	_ ports.CycleLock       = (*CycleState)(nil)
	_ ports.CycleStateStore = (*CycleState)(nil)
)

func NewCycleState(client *redis.Client) *CycleState {
	return &CycleState{client: client}
}

// Acquire takes the cycle lock for at most ttl. It returns false when
// another replica already holds it.
func (s *CycleState) Acquire(ctx context.Context, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockKey, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire cycle lock: %w", err)
	}
	return ok, nil
}

// Release drops the cycle lock. Releasing a lock that already expired
// is harmless.
func (s *CycleState) Release(ctx context.Context) error {
	if err := s.client.Del(ctx, lockKey).Err(); err != nil {
		return fmt.Errorf("release cycle lock: %w", err)
	}
	return nil
}

// SetLastRun records when the last cycle completed and how many new
// postings it stored.
func (s *CycleState) SetLastRun(ctx context.Context, at time.Time, newJobs int) error {
	err := s.client.HSet(ctx, lastRunKey,
		"at", at.UTC().Format(time.RFC3339),
		"new_jobs", strconv.Itoa(newJobs),
	).Err()
	if err != nil {
		return fmt.Errorf("record last run: %w", err)
	}
	return nil
}

// LastRun returns the completion time of the last recorded cycle, or a
// zero time when no cycle has completed yet.
func (s *CycleState) LastRun(ctx context.Context) (time.Time, error) {
	raw, err := s.client.HGet(ctx, lastRunKey, "at").Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read last run: %w", err)
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last run: %w", err)
	}
	return at, nil
}
