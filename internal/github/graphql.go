package github

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Fixed page sizes of the pull request query. Anything beyond a cap is not
// observed; this is not an error.
const (
	MaxRepositories   = 50
	MaxPullRequests   = 50
	MaxReviews        = 50
	MaxComments       = 50
	MaxAssignees      = 20
	MaxReviewRequests = 20
)

var pullRequestsQuery = fmt.Sprintf(`{
  viewer {
    login
    repositories(first: %d, affiliations: [OWNER, COLLABORATOR, ORGANIZATION_MEMBER]) {
      nodes {
        nameWithOwner
        pullRequests(first: %d, states: [OPEN]) {
          nodes {
            url
            title
            updatedAt
            author { login }
            reviews(first: %d) {
              nodes {
                author { login }
                createdAt
                state
              }
            }
            comments(first: %d) {
              nodes {
                author { login }
                createdAt
              }
            }
            assignees(first: %d) {
              nodes { login }
            }
            reviewRequests(first: %d) {
              nodes {
                requestedReviewer {
                  ... on User { login }
                }
              }
            }
          }
        }
      }
    }
  }
}`, MaxRepositories, MaxPullRequests, MaxReviews, MaxComments, MaxAssignees, MaxReviewRequests)

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Type    string        `json:"type,omitempty"`
	Path    []interface{} `json:"path,omitempty"`
}

type graphQLResponse[T any] struct {
	Data   *T             `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// actor is nullable: deleted accounts come back as null authors, and team
// review requests have no login.
type actor struct {
	Login string `json:"login"`
}

type viewerData struct {
	Viewer struct {
		Login        string `json:"login"`
		Repositories struct {
			Nodes []struct {
				NameWithOwner string `json:"nameWithOwner"`
				PullRequests  struct {
					Nodes []pullRequestNode `json:"nodes"`
				} `json:"pullRequests"`
			} `json:"nodes"`
		} `json:"repositories"`
	} `json:"viewer"`
}

type pullRequestNode struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    *actor    `json:"author"`
	Reviews   struct {
		Nodes []struct {
			Author    *actor    `json:"author"`
			CreatedAt time.Time `json:"createdAt"`
			State     string    `json:"state"`
		} `json:"nodes"`
	} `json:"reviews"`
	Comments struct {
		Nodes []struct {
			Author    *actor    `json:"author"`
			CreatedAt time.Time `json:"createdAt"`
		} `json:"nodes"`
	} `json:"comments"`
	Assignees struct {
		Nodes []actor `json:"nodes"`
	} `json:"assignees"`
	ReviewRequests struct {
		Nodes []struct {
			RequestedReviewer *actor `json:"requestedReviewer"`
		} `json:"nodes"`
	} `json:"reviewRequests"`
}

func (a *actor) login() string {
	if a == nil {
		return ""
	}
	return a.Login
}

func (n pullRequestNode) toPullRequest(repository string) PullRequest {
	pr := PullRequest{
		URL:        n.URL,
		Title:      n.Title,
		Repository: repository,
		Author:     n.Author.login(),
		UpdatedAt:  n.UpdatedAt,
		Reviews:    make([]Review, 0, len(n.Reviews.Nodes)),
		Comments:   make([]Comment, 0, len(n.Comments.Nodes)),
	}
	for _, r := range n.Reviews.Nodes {
		pr.Reviews = append(pr.Reviews, Review{
			Author:    r.Author.login(),
			CreatedAt: r.CreatedAt,
			State:     ReviewState(r.State),
		})
	}
	for _, c := range n.Comments.Nodes {
		pr.Comments = append(pr.Comments, Comment{
			Author:    c.Author.login(),
			CreatedAt: c.CreatedAt,
		})
	}
	for _, a := range n.Assignees.Nodes {
		pr.Assignees = append(pr.Assignees, a.Login)
	}
	for _, rr := range n.ReviewRequests.Nodes {
		if login := rr.RequestedReviewer.login(); login != "" {
			pr.RequestedReviewers = append(pr.RequestedReviewers, login)
		}
	}
	return pr
}

// executeGraphQL posts a query to the GraphQL endpoint. An error payload
// takes precedence over data and surfaces as a single UpstreamError built
// from the first error.
func executeGraphQL[T any](ctx context.Context, c *Client, query string, variables map[string]interface{}) (*T, error) {
	req, err := c.client.NewRequest(http.MethodPost, "graphql", GraphQLRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL request: %w", err)
	}

	var resp graphQLResponse[T]
	if _, err := c.client.Do(ctx, req, &resp); err != nil {
		return nil, classifyError("graphql request", err)
	}

	if len(resp.Errors) > 0 {
		first := resp.Errors[0]
		upstream := &UpstreamError{
			Message: first.Message,
			Type:    first.Type,
			Count:   len(resp.Errors),
		}
		for _, p := range first.Path {
			upstream.Path = append(upstream.Path, fmt.Sprint(p))
		}
		return nil, upstream
	}

	if resp.Data == nil {
		return nil, &TransportError{Op: "graphql request", Err: fmt.Errorf("response carried neither data nor errors")}
	}

	return resp.Data, nil
}
