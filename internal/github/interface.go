package github

import "context"

// PullRequestFetcher retrieves the viewer and the pull requests that need
// the viewer's attention. This allows for easy mocking in tests.
type PullRequestFetcher interface {
	Fetch(ctx context.Context) (*FetchResult, error)
}

// AuthTokenProvider defines the interface for authentication token retrieval
type AuthTokenProvider interface {
	GetToken() (string, error)
	GetTokenWithSource() (source, token string, err error)
}

var (
	_ PullRequestFetcher = (*Fetcher)(nil)
	_ AuthTokenProvider  = (*ChainTokenProvider)(nil)
	_ AuthTokenProvider  = StaticTokenProvider{}
)
