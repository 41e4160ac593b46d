// Package testutil holds fixtures shared by reviewwatch tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"reviewwatch/internal/github"
)

// Viewer is the login used by fixtures.
const Viewer = "octocat"

// BaseTime is a fixed reference point for fixture timestamps.
var BaseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// At returns BaseTime shifted by the given number of minutes.
func At(minutes int) time.Time {
	return BaseTime.Add(time.Duration(minutes) * time.Minute)
}

// PROption customizes a fixture pull request.
type PROption func(*github.PullRequest)

// NewPR builds a pull request updated at BaseTime+updatedMinutes, requesting
// a review from Viewer.
func NewPR(url string, updatedMinutes int, opts ...PROption) github.PullRequest {
	pr := github.PullRequest{
		URL:                url,
		Title:              "Change " + filepath.Base(url),
		Repository:         "acme/widgets",
		Author:             "hubot",
		UpdatedAt:          At(updatedMinutes),
		Reviews:            []github.Review{},
		Comments:           []github.Comment{},
		Assignees:          []string{},
		RequestedReviewers: []string{Viewer},
	}
	for _, opt := range opts {
		opt(&pr)
	}
	return pr
}

// WithTitle sets the title.
func WithTitle(title string) PROption {
	return func(pr *github.PullRequest) { pr.Title = title }
}

// WithReview adds a review by author at BaseTime+minutes.
func WithReview(author string, state github.ReviewState, minutes int) PROption {
	return func(pr *github.PullRequest) {
		pr.Reviews = append(pr.Reviews, github.Review{Author: author, State: state, CreatedAt: At(minutes)})
	}
}

// WithComment adds a conversation comment by author at BaseTime+minutes.
func WithComment(author string, minutes int) PROption {
	return func(pr *github.PullRequest) {
		pr.Comments = append(pr.Comments, github.Comment{Author: author, CreatedAt: At(minutes)})
	}
}

// Assigned makes login an assignee instead of a requested reviewer.
func Assigned(login string) PROption {
	return func(pr *github.PullRequest) {
		pr.Assignees = append(pr.Assignees, login)
		pr.RequestedReviewers = nil
	}
}

// CreateExecutable creates a mock executable file with proper permissions for the current platform
func CreateExecutable(t *testing.T, dir, name, content string) string {
	t.Helper()

	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		name += ".exe"
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("Failed to create executable: %v", err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(path, 0o755); err != nil {
			t.Fatalf("Failed to set executable permissions: %v", err)
		}
	}
	return path
}

// FakeCommand installs a shell script named name in front of PATH and
// returns its directory. It skips the test on Windows.
func FakeCommand(t *testing.T, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake commands need a POSIX shell")
	}

	dir := t.TempDir()
	CreateExecutable(t, dir, name, "#!/bin/sh\n"+script)
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return dir
}
