package interfaces

import (
	"context"

	"github.com/google/go-github/v75/github"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// GetPullRequest fetches the pull request metadata
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)

	// ListPullRequestFiles returns every changed file of the pull request in
	// platform-reported order
	ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error)

	// GetFileContent fetches the raw contents of a file at the given ref
	GetFileContent(ctx context.Context, owner, repo, path, ref string) ([]byte, error)

	// CreateReview creates a pull request review
	CreateReview(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) error

	// CreateIssueComment posts a standalone timeline comment
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) error
}
