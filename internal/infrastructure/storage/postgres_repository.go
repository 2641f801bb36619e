// Package storage implements the persistence ports on PostgreSQL.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobcrawler/internal/domain"
	"jobcrawler/internal/ports"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// JobRepository stores scraped postings. The apply link is the natural
// key: a posting seen in a later cycle with the same link is not a new
// posting, regardless of which board delivered it.
type JobRepository struct {
	pool *pgxpool.Pool
}

var _ ports.JobRepository = (*JobRepository)(nil)

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// Upsert inserts the posting and reports whether it was actually new.
// Replays of already-stored postings are silent no-ops.
func (r *JobRepository) Upsert(ctx context.Context, posting domain.JobPosting) (bool, error) {
	sql, args, err := upsertSQL(posting)
	if err != nil {
		return false, fmt.Errorf("build upsert: %w", err)
	}
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("upsert posting: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Search returns stored postings matching the filter, newest first.
func (r *JobRepository) Search(ctx context.Context, filter ports.SearchFilter) ([]domain.JobPosting, error) {
	sql, args, err := searchSQL(filter)
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search postings: %w", err)
	}
	defer rows.Close()

	var jobs []domain.JobPosting
	for rows.Next() {
		var j domain.JobPosting
		var src string
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.ApplyLink, &src, &j.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		j.Source = domain.SourceName(src)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func upsertSQL(p domain.JobPosting) (string, []any, error) {
	return psql.Insert("jobs").
		Columns("title", "company", "location", "apply_link", "source").
		Values(p.Title, p.Company, p.Location, p.ApplyLink, string(p.Source)).
		Suffix("ON CONFLICT (apply_link) DO NOTHING").
		ToSql()
}

func searchSQL(filter ports.SearchFilter) (string, []any, error) {
	q := psql.Select("id", "title", "company", "location", "apply_link", "source", "scraped_at").
		From("jobs").
		OrderBy("scraped_at DESC")

	if term := strings.TrimSpace(filter.Query); term != "" {
		q = q.Where(squirrel.ILike{"title": "%" + term + "%"})
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		q = q.Where(squirrel.ILike{"location": "%" + loc + "%"})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	return q.ToSql()
}
