// Package config loads the process configuration from the environment
// and collects the run parameters from the user.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrMissingToken is returned by Load when no credential is set.
var ErrMissingToken = errors.New("GitHub token not found. Please set GTOKEN env variable and export it.")

// Config holds the values read from the environment.
type Config struct {
	Token       string `envconfig:"GTOKEN"`
	GitHubToken string `envconfig:"GITHUB_TOKEN"`
	APIURL      string `envconfig:"GITHUB_API_URL" default:"https://api.github.com/"`
	GraphQLURL  string `envconfig:"GITHUB_GRAPHQL_URL" default:"https://api.github.com/graphql"`
}

// Load reads the configuration from the environment.
// GTOKEN takes precedence over GITHUB_TOKEN.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if cfg.Token == "" {
		cfg.Token = cfg.GitHubToken
	}
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasSuffix(cfg.APIURL, "/") {
		cfg.APIURL += "/"
	}
	return &cfg, nil
}

// Layouts carrying their own zone, as "Z", "+05:30" or "+0530".
// Fractional seconds are accepted after the seconds field by time.Parse.
var zonedSinceLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
}

// Date-time layouts without a zone; these are read in local time.
var localSinceLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseSince parses the optional since timestamp and normalizes it to UTC.
// Blank input yields nil. A date-time without a zone is read in local time,
// while a bare date (YYYY-MM-DD) is read as UTC midnight.
func ParseSince(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range zonedSinceLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	for _, layout := range localSinceLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid since timestamp %q, expected YYYY-MM-DDTHH:MM:SSZ", s)
}
