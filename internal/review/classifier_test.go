package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reviewwatch/internal/github"
)

const viewer = "alice"

func at(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func pullRequest(updatedAt int64) github.PullRequest {
	return github.PullRequest{
		URL:       "https://github.com/acme/api/pull/1",
		Title:     "Add feature",
		UpdatedAt: at(updatedAt),
		Assignees: []string{viewer},
	}
}

func TestIsUnreviewed(t *testing.T) {
	tests := []struct {
		name       string
		updatedAt  int64
		reviews    []github.Review
		comments   []github.Comment
		unreviewed bool
	}{
		{
			name:       "no viewer activity",
			updatedAt:  100,
			unreviewed: true,
		},
		{
			name:      "activity by others only",
			updatedAt: 100,
			reviews: []github.Review{
				{Author: "bob", CreatedAt: at(500), State: github.ReviewApproved},
			},
			comments: []github.Comment{
				{Author: "bob", CreatedAt: at(600)},
			},
			unreviewed: true,
		},
		{
			name:       "viewer commented after update",
			updatedAt:  100,
			comments:   []github.Comment{{Author: viewer, CreatedAt: at(120)}},
			unreviewed: false,
		},
		{
			name:       "viewer commented before update",
			updatedAt:  200,
			comments:   []github.Comment{{Author: viewer, CreatedAt: at(120)}},
			unreviewed: true,
		},
		{
			name:       "activity at exactly the update time is not caught up",
			updatedAt:  100,
			reviews:    []github.Review{{Author: viewer, CreatedAt: at(100), State: github.ReviewCommented}},
			unreviewed: true,
		},
		{
			name:       "approval survives later updates",
			updatedAt:  200,
			reviews:    []github.Review{{Author: viewer, CreatedAt: at(50), State: github.ReviewApproved}},
			unreviewed: false,
		},
		{
			name:      "approval among older non-approving reviews",
			updatedAt: 1000,
			reviews: []github.Review{
				{Author: viewer, CreatedAt: at(10), State: github.ReviewChangesRequested},
				{Author: viewer, CreatedAt: at(20), State: github.ReviewApproved},
				{Author: viewer, CreatedAt: at(30), State: github.ReviewDismissed},
			},
			unreviewed: false,
		},
		{
			name:      "changes requested after update counts as caught up",
			updatedAt: 100,
			reviews: []github.Review{
				{Author: viewer, CreatedAt: at(150), State: github.ReviewChangesRequested},
			},
			unreviewed: false,
		},
		{
			name:      "review and comment share one maximum",
			updatedAt: 300,
			reviews: []github.Review{
				{Author: viewer, CreatedAt: at(200), State: github.ReviewCommented},
			},
			comments: []github.Comment{
				{Author: viewer, CreatedAt: at(350)},
			},
			unreviewed: false,
		},
		{
			name:      "unknown review state is carried but not an approval",
			updatedAt: 300,
			reviews: []github.Review{
				{Author: viewer, CreatedAt: at(100), State: github.ReviewState("SOMETHING_NEW")},
			},
			unreviewed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := pullRequest(tt.updatedAt)
			pr.Reviews = tt.reviews
			pr.Comments = tt.comments

			assert.Equal(t, tt.unreviewed, IsUnreviewed(viewer, pr))
		})
	}
}

func TestClassify_Scenario3_CaughtUpThenUpdated(t *testing.T) {
	pr := pullRequest(100)
	pr.Comments = []github.Comment{{Author: viewer, CreatedAt: at(120)}}

	v := Classify(viewer, pr)
	assert.False(t, v.Unreviewed)
	assert.Equal(t, int64(120), v.LastActivity)
	assert.Equal(t, "caught up", v.Reason())

	pr.UpdatedAt = at(200)
	v = Classify(viewer, pr)
	assert.True(t, v.Unreviewed)
	assert.Equal(t, "updated since your last activity", v.Reason())
}

func TestClassify_Reasons(t *testing.T) {
	pr := pullRequest(100)
	assert.Equal(t, "never reviewed", Classify(viewer, pr).Reason())

	pr.Reviews = []github.Review{{Author: viewer, CreatedAt: at(1), State: github.ReviewApproved}}
	v := Classify(viewer, pr)
	assert.True(t, v.Approved)
	assert.Equal(t, "approved", v.Reason())
}

func TestUnreviewed_PreservesOrder(t *testing.T) {
	a := pullRequest(100)
	a.URL = "a"
	b := pullRequest(100)
	b.URL = "b"
	b.Reviews = []github.Review{{Author: viewer, CreatedAt: at(1), State: github.ReviewApproved}}
	c := pullRequest(100)
	c.URL = "c"

	result := Unreviewed(viewer, []github.PullRequest{a, b, c})
	assert.Len(t, result, 2)
	assert.Equal(t, "a", result[0].URL)
	assert.Equal(t, "c", result[1].URL)

	assert.Empty(t, Unreviewed(viewer, nil))
}
