// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/org-commits/internal/domain"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// HTTPError reports a non-success status returned by the API.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	LookupOrganization(ctx context.Context, org string) (*domain.Organization, error)
	ListOrgRepos(ctx context.Context, org string, opts PageOptions) ([]domain.RepositoryRef, error)
	ListCommits(ctx context.Context, owner, repo string, since *time.Time, opts PageOptions) ([]domain.Commit, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        logrus.FieldLogger
}

// organizationQuery fetches the display details of an organization.
type organizationQuery struct {
	Organization struct {
		Login        string
		Name         string
		Repositories struct {
			TotalCount int
		}
	} `graphql:"organization(login: $login)"`
}

// NewGitHubGateway creates a GitHubGateway that presents token on every request.
// apiURL is the REST base URL and graphqlURL the GraphQL endpoint.
func NewGitHubGateway(token, apiURL, graphqlURL string, logger logrus.FieldLogger) (*GitHubGateway, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   http.DefaultTransport,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	baseURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}
	restClient.BaseURL = baseURL

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: githubv4.NewEnterpriseClient(graphqlURL, httpClient),
		logger:        logger,
	}, nil
}

// LookupOrganization resolves the organization's display name and repository count.
func (g *GitHubGateway) LookupOrganization(ctx context.Context, org string) (*domain.Organization, error) {
	var q organizationQuery
	variables := map[string]interface{}{"login": githubv4.String(org)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to look up organization %s: %w", org, err)
	}
	return &domain.Organization{
		Login:           q.Organization.Login,
		Name:            q.Organization.Name,
		RepositoryCount: q.Organization.Repositories.TotalCount,
	}, nil
}

// ListOrgRepos fetches one page of the organization's repositories.
func (g *GitHubGateway) ListOrgRepos(ctx context.Context, org string, opts PageOptions) ([]domain.RepositoryRef, error) {
	g.logger.WithFields(logrus.Fields{"org": org, "page": opts.Page}).Debug("listing repositories")
	listOpts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{Page: opts.Page, PerPage: opts.PerPage},
	}
	repos, resp, err := g.restClient.Repositories.ListByOrg(ctx, org, listOpts)
	if err != nil {
		return nil, asHTTPError(resp, err)
	}
	refs := make([]domain.RepositoryRef, 0, len(repos))
	for _, r := range repos {
		refs = append(refs, domain.RepositoryRef{Name: r.GetName(), FullName: r.GetFullName()})
	}
	return refs, nil
}

// ListCommits fetches one page of a repository's commits, newer than since when set.
func (g *GitHubGateway) ListCommits(ctx context.Context, owner, repo string, since *time.Time, opts PageOptions) ([]domain.Commit, error) {
	g.logger.WithFields(logrus.Fields{"repo": owner + "/" + repo, "page": opts.Page}).Debug("listing commits")
	listOpts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{Page: opts.Page, PerPage: opts.PerPage},
	}
	if since != nil {
		listOpts.Since = *since
	}
	commits, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, listOpts)
	if err != nil {
		return nil, asHTTPError(resp, err)
	}
	result := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		result = append(result, domain.Commit{
			SHA:         c.GetSHA(),
			AuthorLogin: c.GetAuthor().GetLogin(),
			HTMLURL:     c.GetHTMLURL(),
		})
	}
	return result, nil
}

// asHTTPError converts an error carrying a non-success response into an *HTTPError.
// Transport and decoding errors are returned unchanged.
func asHTTPError(resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &HTTPError{StatusCode: resp.StatusCode, Err: err}
	}
	return err
}
