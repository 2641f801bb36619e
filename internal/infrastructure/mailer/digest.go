package mailer

import (
	"fmt"
	"html"
	"strings"

	"jobcrawler/internal/domain"
)

const (
	maxDigestJobs   = 10
	maxDigestSkills = 5
)

// renderDigest builds the HTML body for one alert email. All scraped
// text goes through html.EscapeString since it originates from pages we
// do not control.
func renderDigest(skills []string, matched []domain.ScoredJob) string {
	if len(matched) > maxDigestJobs {
		matched = matched[:maxDigestJobs]
	}
	if len(skills) > maxDigestSkills {
		skills = skills[:maxDigestSkills]
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h2>Your latest job matches</h2>")
	if len(skills) > 0 {
		escaped := make([]string, len(skills))
		for i, s := range skills {
			escaped[i] = html.EscapeString(s)
		}
		fmt.Fprintf(&b, "<p>Based on your skills: %s</p>", strings.Join(escaped, ", "))
	}
	b.WriteString("<ul>")
	for _, job := range matched {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a> at %s &mdash; %s (match %.1f%%`,
			html.EscapeString(job.ApplyLink),
			html.EscapeString(job.Title),
			html.EscapeString(job.Company),
			html.EscapeString(job.Location),
			job.Match.Score,
		)
		if len(job.Match.MatchedSkills) > 0 {
			matchedSkills := make([]string, len(job.Match.MatchedSkills))
			for i, s := range job.Match.MatchedSkills {
				matchedSkills[i] = html.EscapeString(s)
			}
			fmt.Fprintf(&b, ", skills: %s", strings.Join(matchedSkills, ", "))
		}
		b.WriteString(")</li>")
	}
	b.WriteString("</ul>")
	b.WriteString("</body></html>")
	return b.String()
}
