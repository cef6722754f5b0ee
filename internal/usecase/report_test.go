package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/naka-gawa/org-commits/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitsFixture() *domain.CommitsByRepo {
	commits := domain.NewOrderedMap[[]domain.Commit]()
	commits.Set("zeta", []domain.Commit{
		{SHA: "z1", AuthorLogin: "Alice", HTMLURL: "https://github.com/acme/zeta/commit/z1"},
		{SHA: "z2", AuthorLogin: "bob", HTMLURL: "https://github.com/acme/zeta/commit/z2"},
		{SHA: "z3", AuthorLogin: "ALICE", HTMLURL: "https://github.com/acme/zeta/commit/z3"},
	})
	commits.Set("empty", []domain.Commit{})
	commits.Set("others", []domain.Commit{
		{SHA: "o1", AuthorLogin: "carol", HTMLURL: "https://github.com/acme/others/commit/o1"},
		{SHA: "o2", AuthorLogin: "", HTMLURL: "https://github.com/acme/others/commit/o2"},
	})
	commits.Set("alpha", []domain.Commit{
		{SHA: "a1", AuthorLogin: "alice", HTMLURL: "https://github.com/acme/alpha/commit/a1"},
	})
	return commits
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(commitsFixture(), "alice")

	// Insertion order, not key order.
	assert.Equal(t, []string{"zeta", "alpha"}, report.Keys())

	zeta, _ := report.Get("zeta")
	assert.Equal(t, []string{
		"https://github.com/acme/zeta/commit/z1",
		"https://github.com/acme/zeta/commit/z3",
	}, zeta)

	commits := commitsFixture()
	for repo, urls := range report.All() {
		assert.NotEmpty(t, urls, "repo %s", repo)
		_, ok := commits.Get(repo)
		assert.True(t, ok, "repo %s missing from commits", repo)
	}
}

func TestBuildReport_CaseInsensitiveTarget(t *testing.T) {
	commits := domain.NewOrderedMap[[]domain.Commit]()
	commits.Set("r", []domain.Commit{{AuthorLogin: "Alice", HTMLURL: "u1"}})

	for _, user := range []string{"alice", "ALICE", "Alice"} {
		report := BuildReport(commits, user)
		urls, ok := report.Get("r")
		assert.True(t, ok, "user %s", user)
		assert.Equal(t, []string{"u1"}, urls)
	}
}

func TestBuildReport_BlankUserMatchesNothing(t *testing.T) {
	report := BuildReport(commitsFixture(), "")
	assert.Equal(t, 0, report.Len())
}

func TestBuildReport_Idempotent(t *testing.T) {
	commits := commitsFixture()
	first := BuildReport(commits, "alice")
	second := BuildReport(commits, "alice")

	assert.Equal(t, first, second)
	assert.Equal(t, RenderReport(first), RenderReport(second))
}

func TestRenderReport(t *testing.T) {
	report := domain.NewOrderedMap[[]string]()
	report.Set("r1", []string{"https://github.com/acme/r1/commit/a", "https://github.com/acme/r1/commit/b"})
	report.Set("r0", []string{"https://github.com/acme/r0/commit/c"})

	expected := "r1\n\nhttps://github.com/acme/r1/commit/a\nhttps://github.com/acme/r1/commit/b\n\n" +
		"r0\n\nhttps://github.com/acme/r0/commit/c\n\n"
	assert.Equal(t, expected, RenderReport(report))
	assert.Empty(t, RenderReport(domain.NewOrderedMap[[]string]()))
}

func TestRenderReport_TrimsTrailingUnicodeSpace(t *testing.T) {
	report := domain.NewOrderedMap[[]string]()
	report.Set("r1", []string{"u1", "u2\u00a0\u3000\t"})

	assert.Equal(t, "r1\n\nu1\nu2\n\n", RenderReport(report))
}

func TestWriteReport_OverwritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale\n", 100)), 0o644))

	report := domain.NewOrderedMap[[]string]()
	report.Set("r1", []string{"u"})
	require.NoError(t, WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "r1\n\nu\n\n", string(data))
}

func TestWriteReport_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "output.txt")
	err := WriteReport(path, domain.NewOrderedMap[[]string]())
	assert.ErrorContains(t, err, "failed to write report to")
}

func TestPrintSummary(t *testing.T) {
	report := domain.NewOrderedMap[[]string]()
	report.Set("r1", []string{"a"})
	report.Set("r2", []string{"b", "c", "d"})
	console := &recordingConsole{}

	PrintSummary(console, "bob", report, 1500*time.Millisecond)

	assert.Equal(t, []string{
		"The following is the summary of commits by bob: \n\n",
		"r1: 1 commits\n",
		"r2: 3 commits\n",
		"\n4 commits in 2 repositories (mean 2.00, median 2.00 per repository)\n",
		"\nTotal time taken: 1.5 seconds\n\n",
	}, console.lines)
}

func TestPrintSummary_EmptyReport(t *testing.T) {
	console := &recordingConsole{}
	PrintSummary(console, "bob", domain.NewOrderedMap[[]string](), 2*time.Second)

	assert.Equal(t, []string{
		"The following is the summary of commits by bob: \n\n",
		"\nTotal time taken: 2 seconds\n\n",
	}, console.lines)
}
