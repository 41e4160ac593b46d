package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v58/github"
	"golang.org/x/oauth2"
)

// DefaultAPIURL is the public GitHub API root. The GraphQL endpoint lives at
// DefaultAPIURL + "graphql".
const DefaultAPIURL = "https://api.github.com/"

// Client is an authenticated GitHub API client. REST and GraphQL calls share
// the same go-github transport so that errors are classified in one place.
type Client struct {
	client *github.Client
}

// NewClient creates a client authenticated with token against apiURL.
// An empty apiURL means DefaultAPIURL; a zero timeout means none.
func NewClient(ctx context.Context, token, apiURL string, timeout time.Duration) (*Client, error) {
	if token == "" {
		return nil, &AuthError{Reason: "credential missing", Err: ErrNoToken}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout

	return NewClientWithHTTPClient(tc, apiURL)
}

// NewClientWithHTTPClient wraps an existing HTTP client. Authentication is
// the HTTP client's responsibility.
func NewClientWithHTTPClient(httpClient *http.Client, apiURL string) (*Client, error) {
	client := github.NewClient(httpClient)

	if apiURL != "" && apiURL != DefaultAPIURL {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
		client.BaseURL = baseURL
	}

	return &Client{client: client}, nil
}

// CurrentUser returns the authenticated user's login name
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", classifyError("get current user", err)
	}
	return user.GetLogin(), nil
}

// classifyError maps go-github and net/http failures onto the error taxonomy.
// A 401 is an AuthError; every other failure to obtain a decodable response
// is a TransportError.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &TransportError{Op: op, StatusCode: statusCode(rateErr.Response), Err: err}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &TransportError{Op: op, StatusCode: statusCode(abuseErr.Response), Err: err}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		code := statusCode(respErr.Response)
		if code == http.StatusUnauthorized {
			return &AuthError{Reason: "credential rejected", Err: err}
		}
		return &TransportError{Op: op, StatusCode: code, Err: err}
	}

	return &TransportError{Op: op, Err: err}
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
