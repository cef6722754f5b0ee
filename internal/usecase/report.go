package usecase

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/org-commits/internal/domain"
)

// DefaultReportPath is where the report is written unless told otherwise.
const DefaultReportPath = "output.txt"

// BuildReport keeps, per repository, the URLs of the commits authored by
// username, compared case-insensitively. Repositories without a match are
// left out. Order follows commits.
func BuildReport(commits *domain.CommitsByRepo, username string) *domain.ReportByRepo {
	report := domain.NewOrderedMap[[]string]()
	target := strings.ToLower(username)

	for repo, list := range commits.All() {
		var urls []string
		for _, c := range list {
			if c.AuthorLogin != "" && strings.ToLower(c.AuthorLogin) == target {
				urls = append(urls, c.HTMLURL)
			}
		}
		if len(urls) > 0 {
			report.Set(repo, urls)
		}
	}
	return report
}

// RenderReport formats the report as text: for each repository its name, a
// blank line, one URL per line, then a blank line.
func RenderReport(report *domain.ReportByRepo) string {
	var b strings.Builder
	for repo, urls := range report.All() {
		b.WriteString(repo)
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRightFunc(strings.Join(urls, "\n"), unicode.IsSpace))
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteReport replaces the file at path with the rendered report.
func WriteReport(path string, report *domain.ReportByRepo) error {
	if err := os.WriteFile(path, []byte(RenderReport(report)), 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}

// PrintSummary prints the number of matching commits per repository and the
// time the run took.
func PrintSummary(console Console, username string, report *domain.ReportByRepo, elapsed time.Duration) {
	console.Printf("The following is the summary of commits by %s: \n\n", username)

	counts := make(stats.Float64Data, 0, report.Len())
	for repo, urls := range report.All() {
		console.Printf("%s: %d commits\n", repo, len(urls))
		counts = append(counts, float64(len(urls)))
	}

	if len(counts) > 0 {
		total, _ := counts.Sum()
		mean, _ := counts.Mean()
		median, _ := counts.Median()
		console.Printf("\n%d commits in %d repositories (mean %.2f, median %.2f per repository)\n",
			int(total), len(counts), mean, median)
	}

	seconds := float64(elapsed.Milliseconds()) / 1000
	console.Printf("\nTotal time taken: %s seconds\n\n", strconv.FormatFloat(seconds, 'f', -1, 64))
}
