package github

import (
	"context"
	"time"
)

// Fetcher retrieves the viewer's login and the open pull requests where the
// viewer is an assignee or a requested reviewer. A fresh client is built for
// every fetch so that a token changed between cycles is picked up.
type Fetcher struct {
	tokens  AuthTokenProvider
	apiURL  string
	timeout time.Duration
}

// NewFetcher creates a fetcher that authenticates with tokens against apiURL.
func NewFetcher(tokens AuthTokenProvider, apiURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		tokens:  tokens,
		apiURL:  apiURL,
		timeout: timeout,
	}
}

func (f *Fetcher) client(ctx context.Context) (*Client, error) {
	token, err := f.tokens.GetToken()
	if err != nil {
		if IsAuthError(err) {
			return nil, err
		}
		return nil, &AuthError{Reason: "credential unavailable", Err: err}
	}
	return NewClient(ctx, token, f.apiURL, f.timeout)
}

// Fetch performs one query and filters the result to the relevant set.
// It fails with *AuthError, *UpstreamError or *TransportError and never
// retries; the caller's next cycle is the retry.
func (f *Fetcher) Fetch(ctx context.Context) (*FetchResult, error) {
	client, err := f.client(ctx)
	if err != nil {
		return nil, err
	}
	return client.FetchRelevantPullRequests(ctx)
}

// CurrentUser verifies the configured token by asking GitHub who it belongs to.
func (f *Fetcher) CurrentUser(ctx context.Context) (string, error) {
	client, err := f.client(ctx)
	if err != nil {
		return "", err
	}
	return client.CurrentUser(ctx)
}

// FetchRelevantPullRequests runs the pull request query and keeps only pull
// requests assigned to, or awaiting review from, the viewer.
func (c *Client) FetchRelevantPullRequests(ctx context.Context) (*FetchResult, error) {
	data, err := executeGraphQL[viewerData](ctx, c, pullRequestsQuery, nil)
	if err != nil {
		return nil, err
	}
	return filterRelevant(data), nil
}

func filterRelevant(data *viewerData) *FetchResult {
	login := data.Viewer.Login
	result := &FetchResult{
		Viewer:       login,
		PullRequests: []PullRequest{},
	}

	seen := make(map[string]bool)
	for _, repo := range data.Viewer.Repositories.Nodes {
		for _, node := range repo.PullRequests.Nodes {
			if seen[node.URL] {
				continue
			}
			pr := node.toPullRequest(repo.NameWithOwner)
			if !pr.IsRelevantTo(login) {
				continue
			}
			seen[pr.URL] = true
			result.PullRequests = append(result.PullRequests, pr)
		}
	}
	return result
}
