// Package review decides whether the viewer has caught up with a pull request.
//
// An approval by the viewer is durable: the pull request stays reviewed even
// if it is updated afterwards. Any other review or comment only counts when it
// is strictly newer than the pull request's last update.
package review

import "reviewwatch/internal/github"

// Verdict explains a classification.
type Verdict struct {
	Unreviewed bool
	// Approved is true when the viewer has an APPROVED review.
	Approved bool
	// LastActivity is the viewer's most recent review or comment in epoch
	// milliseconds; 0 when the viewer never engaged.
	LastActivity int64
	// LastUpdated is the pull request's update time in epoch milliseconds.
	LastUpdated int64
}

// Classify scans the viewer's reviews and comments on pr.
func Classify(viewer string, pr github.PullRequest) Verdict {
	v := Verdict{LastUpdated: pr.LastUpdatedMillis()}

	for _, r := range pr.Reviews {
		if r.Author != viewer {
			continue
		}
		if r.State == github.ReviewApproved {
			v.Approved = true
		}
		v.LastActivity = max(v.LastActivity, r.CreatedAt.UnixMilli())
	}

	// Comments share the running maximum with reviews.
	for _, c := range pr.Comments {
		if c.Author != viewer {
			continue
		}
		v.LastActivity = max(v.LastActivity, c.CreatedAt.UnixMilli())
	}

	// Strictly after: acting in the same millisecond as the update is not
	// caught up.
	reviewed := v.Approved || v.LastActivity > v.LastUpdated
	v.Unreviewed = !reviewed
	return v
}

// IsUnreviewed reports whether pr still needs the viewer's attention.
func IsUnreviewed(viewer string, pr github.PullRequest) bool {
	return Classify(viewer, pr).Unreviewed
}

// Unreviewed returns the subset of prs that still need the viewer's
// attention, in input order.
func Unreviewed(viewer string, prs []github.PullRequest) []github.PullRequest {
	result := make([]github.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if IsUnreviewed(viewer, pr) {
			result = append(result, pr)
		}
	}
	return result
}

// Reason is a short human readable explanation of v.
func (v Verdict) Reason() string {
	switch {
	case v.Approved:
		return "approved"
	case !v.Unreviewed:
		return "caught up"
	case v.LastActivity == 0:
		return "never reviewed"
	default:
		return "updated since your last activity"
	}
}
