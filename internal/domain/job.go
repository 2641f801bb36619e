package domain

import "time"

// SourceName identifies an external job board.
type SourceName string

const (
	SourceIndeed    SourceName = "indeed"
	SourceLinkedIn  SourceName = "linkedin"
	SourceTimesJobs SourceName = "timesjobs"
)

// JobPosting is one externally observed listing. ApplyLink is the sole
// identity: in-memory dedup and the storage unique constraint both key on it.
type JobPosting struct {
	ID        int64
	Title     string
	Company   string
	Location  string
	ApplyLink string
	Source    SourceName
	ScrapedAt time.Time
}

// UserProfile is the read-only shape consumed from the user store. The
// engine never mutates it; skills and location drive query generation
// and scoring.
type UserProfile struct {
	ID                string
	Email             string
	Skills            []string
	PreferredLocation string // empty means no preference
	AlertsEnabled     bool
}

// MatchResult pairs a 0-100 score with the skills that produced it.
// Computed per (job, user) at read time, never persisted.
type MatchResult struct {
	Score         float64
	MatchedSkills []string
}

// ScoredJob annotates a posting with its match against one user.
type ScoredJob struct {
	JobPosting
	Match MatchResult
}
