package usecase_test

import (
	"context"
	"errors"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/collie/pkg/domain/model"
)

// mockGitHubClient is a hand-rolled mock of interfaces.GitHubClient
type mockGitHubClient struct {
	getPullRequestFunc func(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	listFilesFunc      func(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error)
	getFileContentFunc func(ctx context.Context, owner, repo, path, ref string) ([]byte, error)
	createReviewFunc   func(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) error
	createCommentFunc  func(ctx context.Context, owner, repo string, number int, body string) error

	createdReviews  []*github.PullRequestReviewRequest
	createdComments []string
}

func (m *mockGitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	if m.getPullRequestFunc != nil {
		return m.getPullRequestFunc(ctx, owner, repo, number)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockGitHubClient) ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error) {
	if m.listFilesFunc != nil {
		return m.listFilesFunc(ctx, owner, repo, number)
	}
	return nil, nil
}

func (m *mockGitHubClient) GetFileContent(ctx context.Context, owner, repo, path, ref string) ([]byte, error) {
	if m.getFileContentFunc != nil {
		return m.getFileContentFunc(ctx, owner, repo, path, ref)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockGitHubClient) CreateReview(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) error {
	if m.createReviewFunc != nil {
		if err := m.createReviewFunc(ctx, owner, repo, number, review); err != nil {
			return err
		}
	}
	m.createdReviews = append(m.createdReviews, review)
	return nil
}

func (m *mockGitHubClient) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) error {
	if m.createCommentFunc != nil {
		if err := m.createCommentFunc(ctx, owner, repo, number, body); err != nil {
			return err
		}
	}
	m.createdComments = append(m.createdComments, body)
	return nil
}

// mockReviewTool is a hand-rolled mock of interfaces.ReviewTool
type mockReviewTool struct {
	invokeFunc func(ctx context.Context, pr *model.PRContext) (*model.ReviewResult, error)
	invoked    int
}

func (m *mockReviewTool) Invoke(ctx context.Context, pr *model.PRContext) (*model.ReviewResult, error) {
	m.invoked++
	if m.invokeFunc != nil {
		return m.invokeFunc(ctx, pr)
	}
	return &model.ReviewResult{
		SummaryMarkdown: "summary",
		ReviewDecision:  model.DecisionComment,
		ReviewBody:      "body",
	}, nil
}

// prFixture builds a GetPullRequest response with the given labels and
// assignees.
func prFixture(labels, assignees []string) *github.PullRequest {
	pr := &github.PullRequest{
		Title: github.Ptr("Refactor storage layer"),
		Body:  github.Ptr("Cleans up the storage layer."),
		User:  &github.User{Login: github.Ptr("dev")},
		Base:  &github.PullRequestBranch{Ref: github.Ptr("main")},
		Head: &github.PullRequestBranch{
			Ref: github.Ptr("feature/storage"),
			SHA: github.Ptr("abc1234"),
		},
	}
	for _, l := range labels {
		pr.Labels = append(pr.Labels, &github.Label{Name: github.Ptr(l)})
	}
	for _, a := range assignees {
		pr.Assignees = append(pr.Assignees, &github.User{Login: github.Ptr(a)})
	}
	return pr
}

func commitFileFixture(path string, additions, deletions int) *github.CommitFile {
	return &github.CommitFile{
		Filename:  github.Ptr(path),
		Status:    github.Ptr("modified"),
		Patch:     github.Ptr("@@ -1 +1 @@"),
		Additions: github.Ptr(additions),
		Deletions: github.Ptr(deletions),
	}
}
