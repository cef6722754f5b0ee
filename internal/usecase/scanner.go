// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"github.com/naka-gawa/org-commits/internal/config"
	"github.com/naka-gawa/org-commits/internal/domain"
	"github.com/naka-gawa/org-commits/internal/gateway"
	"github.com/sirupsen/logrus"
)

// DefaultPageSize is the number of records requested per page.
const DefaultPageSize = 100

// Console receives the user-facing output of a scan.
type Console interface {
	Progress(format string, a ...any)
	Success(format string, a ...any)
	Error(format string, a ...any)
	Printf(format string, a ...any)
	List(items []string)
}

// EnumerationError reports that the organization's repositories could not be listed.
type EnumerationError struct {
	Org string
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("unable to fetch repos from %s: %v", e.Org, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// Scanner is the use case for collecting an organization's commits.
// It walks the repositories one at a time.
type Scanner struct {
	fetcher  gateway.Fetcher
	console  Console
	logger   logrus.FieldLogger
	pageSize int
}

// NewScanner creates a new Scanner instance. A pageSize below 1 selects DefaultPageSize.
func NewScanner(fetcher gateway.Fetcher, console Console, logger logrus.FieldLogger, pageSize int) *Scanner {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Scanner{
		fetcher:  fetcher,
		console:  console,
		logger:   logger,
		pageSize: pageSize,
	}
}

// DescribeOrganization prints the organization's name and size when it can be
// resolved. A failed lookup is logged and otherwise ignored.
func (s *Scanner) DescribeOrganization(ctx context.Context, org string) {
	info, err := s.fetcher.LookupOrganization(ctx, org)
	if err != nil {
		s.logger.WithError(err).Warn("organization lookup failed")
		return
	}
	name := info.Name
	if name == "" {
		name = info.Login
	}
	s.console.Printf("Organization: %s (%d repositories)\n", name, info.RepositoryCount)
}

// EnumerateRepositories lists every repository of org.
// Any failure is returned: nothing downstream can run without the list.
func (s *Scanner) EnumerateRepositories(ctx context.Context, org string) ([]domain.RepositoryRef, error) {
	s.logger.WithField("org", org).Debug("enumerating repositories")

	fetch := func(ctx context.Context, opts gateway.PageOptions) ([]domain.RepositoryRef, error) {
		return s.fetcher.ListOrgRepos(ctx, org, opts)
	}
	progress := func(page int) {
		s.console.Progress("Fetching repos page: %d", page)
	}

	repos, err := gateway.Collect(gateway.Paginate(ctx, s.pageSize, fetch, progress))
	if err != nil {
		return nil, &EnumerationError{Org: org, Err: err}
	}

	items := make([]string, 0, len(repos))
	for _, r := range repos {
		items = append(items, fmt.Sprintf("%s (%s)", r.Name, r.FullName))
	}
	s.console.List(items)

	s.logger.WithField("count", len(repos)).Debug("repositories enumerated")
	return repos, nil
}

// CollectCommits fetches the commit history of each repository in turn,
// limited to commits after since when it is not blank.
// A repository whose commits cannot be fetched is reported and left out of
// the result; the remaining repositories are still processed. An unparsable
// since fails every repository this way.
func (s *Scanner) CollectCommits(ctx context.Context, org string, repos []domain.RepositoryRef, since string) *domain.CommitsByRepo {
	commits := domain.NewOrderedMap[[]domain.Commit]()

	for _, repo := range repos {
		if ctx.Err() != nil {
			s.logger.WithError(ctx.Err()).Warn("commit collection interrupted")
			break
		}

		list, err := s.repoCommits(ctx, org, repo.Name, since)
		if err != nil {
			s.console.Error("%s [repo: %s]", err.Error(), repo.Name)
			continue
		}
		commits.Set(repo.Name, list)
		s.console.Success("Fetched commits for %s", repo.Name)
	}

	s.console.Printf("\nFinished fetching commits ... \n\n")
	return commits
}

func (s *Scanner) repoCommits(ctx context.Context, org, repo, since string) ([]domain.Commit, error) {
	sinceTime, err := config.ParseSince(since)
	if err != nil {
		return nil, err
	}
	fetch := func(ctx context.Context, opts gateway.PageOptions) ([]domain.Commit, error) {
		return s.fetcher.ListCommits(ctx, org, repo, sinceTime, opts)
	}
	progress := func(page int) {
		s.console.Progress("Fetching commits page: %d [repo: %s]", page, repo)
	}

	list, err := gateway.Collect(gateway.Paginate(ctx, s.pageSize, fetch, progress))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Commit{}
	}
	return list, nil
}
