package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobcrawler/internal/domain"
	"jobcrawler/internal/ports"
)

func TestUpsertSQLIgnoresConflicts(t *testing.T) {
	sql, args, err := upsertSQL(domain.JobPosting{
		Title:     "Python Developer",
		Company:   "Tech Corp",
		Location:  "Remote",
		ApplyLink: "https://in.indeed.com/viewjob?jk=abc",
		Source:    domain.SourceIndeed,
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO jobs")
	assert.Contains(t, sql, "ON CONFLICT (apply_link) DO NOTHING")
	require.Len(t, args, 5)
	assert.Equal(t, "https://in.indeed.com/viewjob?jk=abc", args[3])
	assert.Equal(t, "indeed", args[4])
}

func TestSearchSQLFilters(t *testing.T) {
	sql, args, err := searchSQL(ports.SearchFilter{Query: "python", Location: "Bangalore", Limit: 20})
	require.NoError(t, err)

	assert.Contains(t, sql, "title ILIKE $1")
	assert.Contains(t, sql, "location ILIKE $2")
	assert.Contains(t, sql, "ORDER BY scraped_at DESC")
	assert.Contains(t, sql, "LIMIT 20")
	assert.Equal(t, []any{"%python%", "%Bangalore%"}, args)
}

func TestSearchSQLNoFilters(t *testing.T) {
	sql, args, err := searchSQL(ports.SearchFilter{})
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "LIMIT")
	assert.Empty(t, args)
}

func TestSearchSQLTrimsWhitespaceOnlyTerms(t *testing.T) {
	sql, _, err := searchSQL(ports.SearchFilter{Query: "   ", Location: "\t"})
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
}

func TestSearchSQLUsesDollarPlaceholders(t *testing.T) {
	sql, _, err := searchSQL(ports.SearchFilter{Query: "go"})
	require.NoError(t, err)
	assert.Contains(t, sql, "$1")
}
