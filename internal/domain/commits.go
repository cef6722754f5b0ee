// Package domain contains the core data structures and domain logic for the application.
package domain

// Organization describes the GitHub organization being scanned.
type Organization struct {
	Login           string
	Name            string
	RepositoryCount int
}

// RepositoryRef identifies a repository owned by the organization.
type RepositoryRef struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// Commit is the part of a commit record the report needs.
// AuthorLogin is empty when the commit is not linked to a GitHub account.
type Commit struct {
	SHA         string `json:"sha"`
	AuthorLogin string `json:"author_login"`
	HTMLURL     string `json:"html_url"`
}

// CommitsByRepo maps a repository name to its commits in page-fetch order.
type CommitsByRepo = OrderedMap[[]Commit]

// ReportByRepo maps a repository name to the URLs of the matching commits.
type ReportByRepo = OrderedMap[[]string]
