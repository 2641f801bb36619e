package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobcrawler/internal/aggregate"
	"jobcrawler/internal/domain"
	"jobcrawler/internal/match"
	"jobcrawler/internal/ports"
	"jobcrawler/internal/query"
	"jobcrawler/internal/source"
)

// ErrCycleInFlight is returned when a cycle is requested while another
// one holds the cycle lock.
var ErrCycleInFlight = errors.New("scrape cycle already running")

// lockTTL bounds how long a crashed replica can block the others.
const lockTTL = 30 * time.Minute

// defaultLocations is the curated location set used when a profile has
// no usable preference. Ordering matters: truncated slices of this list
// are what users actually get.
var defaultLocations = []string{
	"Bangalore, Karnataka",
	"Chandigarh",
	"Delhi",
	"Gurgaon, Haryana",
	"Noida, Uttar Pradesh",
	"Pune, Maharashtra",
	"Hyderabad, Telangana",
	"Mumbai, Maharashtra",
	"Chennai, Tamil Nadu",
	"Remote",
}

// fallbackQueries seed a cycle when no user has skills on file, so the
// database still accumulates postings for the search path.
var fallbackQueries = []string{
	"python developer",
	"python engineer",
	"python backend developer",
}

// Limits cap the work one cycle performs. Every user contributes at
// most QueriesPerUser x LocationsPerUser scrape combos.
type Limits struct {
	QueriesPerUser   int
	LocationsPerUser int
	JobsPerQuery     int
	ComboDelay       time.Duration
}

// DefaultLimits mirror the politeness envelope the boards tolerate.
func DefaultLimits() Limits {
	return Limits{
		QueriesPerUser:   3,
		LocationsPerUser: 3,
		JobsPerQuery:     5,
		ComboDelay:       2 * time.Second,
	}
}

// CycleReport summarizes one completed cycle.
type CycleReport struct {
	ID             string
	StartedAt      time.Time
	Duration       time.Duration
	UsersProcessed int
	CombosScraped  int
	JobsCollected  int
	NewJobs        int
	SourceErrors   int
}

// Orchestrator runs the full scrape cycle: queries per user, boards per
// query/location combo, dedup through storage, then alert digests.
type Orchestrator struct {
	users      ports.UserStore
	jobs       ports.JobRepository
	aggregator *aggregate.Aggregator
	alerts     ports.AlertSender
	lock       ports.CycleLock
	state      ports.CycleStateStore
	logger     *slog.Logger
	limits     Limits
}

// OrchestratorDeps carries the orchestrator's collaborators. Alerts,
// Lock and State are optional; a nil value disables that concern.
type OrchestratorDeps struct {
	Users      ports.UserStore
	Jobs       ports.JobRepository
	Aggregator *aggregate.Aggregator
	Alerts     ports.AlertSender
	Lock       ports.CycleLock
	State      ports.CycleStateStore
	Logger     *slog.Logger
	Limits     Limits
}

func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limits := deps.Limits
	if limits.QueriesPerUser <= 0 || limits.LocationsPerUser <= 0 || limits.JobsPerQuery <= 0 {
		limits = DefaultLimits()
	}
	return &Orchestrator{
		users:      deps.Users,
		jobs:       deps.Jobs,
		aggregator: deps.Aggregator,
		alerts:     deps.Alerts,
		lock:       deps.Lock,
		state:      deps.State,
		logger:     logger,
		limits:     limits,
	}
}

// RunCycle executes one full scrape cycle and returns its report. Board
// failures and per-posting storage failures are absorbed into the
// report; only infrastructure failures that make the whole cycle
// meaningless (user listing, lock backend) surface as errors.
func (o *Orchestrator) RunCycle(ctx context.Context) (CycleReport, error) {
	report := CycleReport{ID: uuid.NewString(), StartedAt: time.Now()}

	if o.lock != nil {
		ok, err := o.lock.Acquire(ctx, lockTTL)
		if err != nil {
			return report, err
		}
		if !ok {
			return report, ErrCycleInFlight
		}
		defer func() {
			if err := o.lock.Release(context.WithoutCancel(ctx)); err != nil {
				o.logger.Warn("release cycle lock failed", "error", err)
			}
		}()
	}

	o.logger.Info("scrape cycle started", "cycle", report.ID)
	if o.state != nil {
		if last, err := o.state.LastRun(ctx); err != nil {
			o.logger.Warn("read last run failed", "error", err)
		} else if !last.IsZero() {
			o.logger.Info("previous cycle completed", "at", last, "ago", time.Since(last))
		}
	}

	users, err := o.users.ListUsersWithSkills(ctx)
	if err != nil {
		return report, err
	}

	if len(users) == 0 {
		o.logger.Info("no users with skills, running fallback queries", "cycle", report.ID)
		o.scrapeCombos(ctx, &report, fallbackQueries, defaultLocations[:3])
	}

	for _, user := range users {
		if ctx.Err() != nil {
			break
		}
		o.processUser(ctx, &report, user)
		report.UsersProcessed++
	}

	report.Duration = time.Since(report.StartedAt)
	o.logger.Info("scrape cycle finished",
		"cycle", report.ID,
		"duration", report.Duration,
		"users", report.UsersProcessed,
		"combos", report.CombosScraped,
		"collected", report.JobsCollected,
		"new", report.NewJobs,
		"source_errors", report.SourceErrors,
	)

	if o.state != nil {
		if err := o.state.SetLastRun(context.WithoutCancel(ctx), time.Now(), report.NewJobs); err != nil {
			o.logger.Warn("record last run failed", "error", err)
		}
	}
	return report, ctx.Err()
}

func (o *Orchestrator) processUser(ctx context.Context, report *CycleReport, user domain.UserProfile) {
	queries := query.BuildSearchQueries(user.Skills)
	if len(queries) == 0 {
		o.logger.Debug("no usable queries from skills", "user", user.ID)
		return
	}
	if len(queries) > o.limits.QueriesPerUser {
		queries = queries[:o.limits.QueriesPerUser]
	}
	locations := resolveLocations(user.PreferredLocation)
	if len(locations) > o.limits.LocationsPerUser {
		locations = locations[:o.limits.LocationsPerUser]
	}

	o.scrapeCombos(ctx, report, queries, locations)
	o.sendAlert(ctx, user, locations[0])
}

func (o *Orchestrator) scrapeCombos(ctx context.Context, report *CycleReport, queries, locations []string) {
	for _, location := range locations {
		for _, q := range queries {
			if ctx.Err() != nil {
				return
			}
			jobs, sourceReports := o.aggregator.Collect(ctx, source.Request{
				Query:      q,
				Location:   location,
				MaxResults: o.limits.JobsPerQuery,
			})
			report.CombosScraped++
			report.JobsCollected += len(jobs)
			for _, sr := range sourceReports {
				if sr.Err != nil {
					report.SourceErrors++
				}
			}

			for _, job := range jobs {
				inserted, err := o.jobs.Upsert(ctx, job)
				if err != nil {
					o.logger.Warn("store posting failed", "link", job.ApplyLink, "error", err)
					continue
				}
				if inserted {
					report.NewJobs++
				}
			}

			o.pause(ctx)
		}
	}
}

// sendAlert mails the user a digest of stored postings that match their
// skills. Alert failures never fail the cycle.
func (o *Orchestrator) sendAlert(ctx context.Context, user domain.UserProfile, location string) {
	if o.alerts == nil || !user.AlertsEnabled || user.Email == "" {
		return
	}

	filter := ports.SearchFilter{Limit: 50}
	// A concrete city narrows the digest; the broad sentinels would
	// exclude most stored rows, so they leave the filter open.
	if l := strings.ToLower(location); l != "india" && l != "" {
		filter.Location = location
	}

	stored, err := o.jobs.Search(ctx, filter)
	if err != nil {
		o.logger.Warn("alert search failed", "user", user.ID, "error", err)
		return
	}

	ranked := match.Rank(stored, user.Skills)
	var matched []domain.ScoredJob
	for _, sj := range ranked {
		if sj.Match.Score <= 0 {
			break
		}
		matched = append(matched, sj)
		if len(matched) == 10 {
			break
		}
	}
	if len(matched) == 0 {
		return
	}

	if err := o.alerts.SendAlert(ctx, user.Email, user.Skills, matched); err != nil {
		o.logger.Warn("alert send failed", "user", user.ID, "error", err)
		return
	}
	o.logger.Info("alert sent", "user", user.ID, "matches", len(matched))
}

func (o *Orchestrator) pause(ctx context.Context) {
	if o.limits.ComboDelay <= 0 {
		return
	}
	select {
	case <-time.After(o.limits.ComboDelay):
	case <-ctx.Done():
	}
}

// resolveLocations expands one stated preference into the set of
// locations a cycle scrapes for that user.
func resolveLocations(preferred string) []string {
	switch strings.ToLower(strings.TrimSpace(preferred)) {
	case "":
		return defaultLocations[:5]
	case "india":
		return defaultLocations
	case "remote":
		return []string{"Remote"}
	default:
		out := []string{strings.TrimSpace(preferred)}
		return append(out, defaultLocations[:2]...)
	}
}
