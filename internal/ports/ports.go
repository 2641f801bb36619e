package ports

import (
	"context"
	"time"

	"jobcrawler/internal/domain"
)

// SearchFilter narrows the persisted-postings read path. Location accepts
// the sentinels "india" and "remote" in addition to plain city names.
type SearchFilter struct {
	Query    string
	Location string
	Limit    int
}

// JobRepository persists deduplicated postings and serves the read path.
type JobRepository interface {
	// Upsert inserts the posting unless its apply link already exists.
	// A duplicate is not an error; inserted reports whether a row was added.
	Upsert(ctx context.Context, posting domain.JobPosting) (inserted bool, err error)
	Search(ctx context.Context, filter SearchFilter) ([]domain.JobPosting, error)
}

// UserStore supplies the profiles that drive personalized scraping.
type UserStore interface {
	ListUsersWithSkills(ctx context.Context) ([]domain.UserProfile, error)
	GetUser(ctx context.Context, id string) (domain.UserProfile, error)
}

// AlertSender delivers a digest of matched jobs to one user. A failed send
// is logged by the caller and never retried.
type AlertSender interface {
	SendAlert(ctx context.Context, email string, skills []string, matched []domain.ScoredJob) error
}

// CycleLock guards against overlapping aggregation cycles across instances.
type CycleLock interface {
	Acquire(ctx context.Context, ttl time.Duration) (bool, error)
	Release(ctx context.Context) error
}

// CycleStateStore records last-run bookkeeping for observability.
type CycleStateStore interface {
	SetLastRun(ctx context.Context, at time.Time, newJobs int) error
	LastRun(ctx context.Context) (time.Time, error)
}

// Scheduler controls when aggregation cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
