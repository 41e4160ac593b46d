package github

import (
	"context"
	"sync"
)

// MockFetcher provides a mock PullRequestFetcher for testing
type MockFetcher struct {
	mu sync.Mutex

	// Data to return
	result *FetchResult

	// Error control
	err error

	// FetchFunc, when set, overrides the configured result and error.
	FetchFunc func(ctx context.Context) (*FetchResult, error)

	// Call tracking
	FetchCalls int
}

// NewMockFetcher creates a mock returning an empty result for viewer.
func NewMockFetcher(viewer string) *MockFetcher {
	return &MockFetcher{
		result: &FetchResult{Viewer: viewer, PullRequests: []PullRequest{}},
	}
}

// SetPullRequests replaces the pull requests returned by Fetch.
func (m *MockFetcher) SetPullRequests(prs ...PullRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = &FetchResult{Viewer: m.result.Viewer, PullRequests: prs}
}

// SetError makes Fetch fail with err until cleared with SetError(nil).
func (m *MockFetcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockFetcher) Fetch(ctx context.Context) (*FetchResult, error) {
	m.mu.Lock()
	m.FetchCalls++
	fn := m.FetchFunc
	result, err := m.result, m.err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	if err != nil {
		return nil, err
	}

	// Hand out a copy so callers cannot mutate the mock's state.
	prs := make([]PullRequest, len(result.PullRequests))
	copy(prs, result.PullRequests)
	return &FetchResult{Viewer: result.Viewer, PullRequests: prs}, nil
}

// Calls returns the number of Fetch calls so far.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchCalls
}

var _ PullRequestFetcher = (*MockFetcher)(nil)
