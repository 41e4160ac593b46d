package github

import "time"

// ReviewState is the state of a pull request review as reported by GitHub.
// Values outside the constants below are carried through verbatim.
type ReviewState string

const (
	ReviewApproved         ReviewState = "APPROVED"
	ReviewCommented        ReviewState = "COMMENTED"
	ReviewChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewDismissed        ReviewState = "DISMISSED"
	ReviewPending          ReviewState = "PENDING"
)

// PullRequest is an open pull request together with the activity history
// needed to decide whether the viewer still owes it a review.
// URL is the identity: it is globally unique and stable.
type PullRequest struct {
	URL                string    `json:"url"`
	Title              string    `json:"title"`
	Repository         string    `json:"repository"`
	Author             string    `json:"author"`
	UpdatedAt          time.Time `json:"updated_at"`
	Reviews            []Review  `json:"reviews"`
	Comments           []Comment `json:"comments"`
	Assignees          []string  `json:"assignees"`
	RequestedReviewers []string  `json:"requested_reviewers"`
}

type Review struct {
	Author    string      `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
	State     ReviewState `json:"state"`
}

type Comment struct {
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// FetchResult is what one fetch returns: the viewer's login and the pull
// requests where the viewer is an assignee or a requested reviewer,
// de-duplicated by URL in first-seen order.
type FetchResult struct {
	Viewer       string        `json:"viewer"`
	PullRequests []PullRequest `json:"pull_requests"`
}

// LastUpdatedMillis returns UpdatedAt in epoch milliseconds, the unit used by
// both the classifier and the notification record.
func (pr PullRequest) LastUpdatedMillis() int64 {
	return pr.UpdatedAt.UnixMilli()
}

// IsRelevantTo reports whether login is an assignee or a requested reviewer.
func (pr PullRequest) IsRelevantTo(login string) bool {
	if login == "" {
		return false
	}
	for _, a := range pr.Assignees {
		if a == login {
			return true
		}
	}
	for _, r := range pr.RequestedReviewers {
		if r == login {
			return true
		}
	}
	return false
}
