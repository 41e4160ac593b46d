// Package version reports build information and checks GitHub releases for
// a newer reviewwatch.
package version

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v58/github"
)

// Release source
const (
	Owner = "reviewwatch"
	Repo  = "reviewwatch"
)

// Comparison is the result of comparing the running version to a release.
type Comparison int

const (
	Newer Comparison = iota // Running version is newer than the release
	Same
	Older // An update is available
)

// Release is the subset of a GitHub release the CLI shows.
type Release struct {
	TagName     string
	Prerelease  bool
	PublishedAt time.Time
	HTMLURL     string
}

// Checker looks up the latest release.
type Checker struct {
	client *github.Client
	owner  string
	repo   string
}

// NewChecker creates a checker against api.github.com. Release lookups are
// anonymous.
func NewChecker() *Checker {
	return &Checker{
		client: github.NewClient(&http.Client{Timeout: 10 * time.Second}),
		owner:  Owner,
		repo:   Repo,
	}
}

// NewCheckerWithBaseURL creates a checker against another API root.
func NewCheckerWithBaseURL(baseURL string) (*Checker, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	c := NewChecker()
	c.client.BaseURL = u
	return c, nil
}

// LatestRelease fetches the latest published release.
func (c *Checker) LatestRelease(ctx context.Context) (*Release, error) {
	rel, _, err := c.client.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release info: %w", err)
	}
	return &Release{
		TagName:     rel.GetTagName(),
		Prerelease:  rel.GetPrerelease(),
		PublishedAt: rel.GetPublishedAt().Time,
		HTMLURL:     rel.GetHTMLURL(),
	}, nil
}

// Compare compares the running version to a release tag.
func Compare(current, latest string) (Comparison, error) {
	cur, err := parseVersion(current)
	if err != nil {
		return Same, fmt.Errorf("failed to parse current version: %w", err)
	}
	lat, err := parseVersion(latest)
	if err != nil {
		return Same, fmt.Errorf("failed to parse latest version: %w", err)
	}

	switch compareSemanticVersions(cur, lat) {
	case 1:
		return Newer, nil
	case -1:
		return Older, nil
	default:
		return Same, nil
	}
}

// UpdateMessage returns a message when a newer stable release than current
// exists, and "" otherwise.
func (c *Checker) UpdateMessage(ctx context.Context, current string) (string, error) {
	rel, err := c.LatestRelease(ctx)
	if err != nil {
		return "", err
	}
	if rel.Prerelease {
		return "", nil
	}

	cmpResult, err := Compare(current, rel.TagName)
	if err != nil {
		return "", err
	}
	if cmpResult != Older {
		return "", nil
	}
	return fmt.Sprintf("Update available: %s → %s\nRelease notes: %s", current, rel.TagName, rel.HTMLURL), nil
}

type semanticVersion struct {
	major int
	minor int
	patch int
}

// parseVersion accepts "1.2.3", "v1.2.3" and "1.2.3-rc.1". "dev" sorts
// after every release.
func parseVersion(version string) (*semanticVersion, error) {
	version = strings.TrimPrefix(version, "v")

	if version == "dev" {
		return &semanticVersion{major: 999, minor: 999, patch: 999}, nil
	}

	version, _, _ = strings.Cut(version, "-")

	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid version format: %s (expected major.minor.patch)", version)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid version component %q in %s", p, version)
		}
		nums[i] = n
	}
	return &semanticVersion{major: nums[0], minor: nums[1], patch: nums[2]}, nil
}

// compareSemanticVersions returns 1 if a > b, 0 if a == b, -1 if a < b.
func compareSemanticVersions(a, b *semanticVersion) int {
	if c := cmp.Compare(a.major, b.major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.minor, b.minor); c != 0 {
		return c
	}
	return cmp.Compare(a.patch, b.patch)
}
