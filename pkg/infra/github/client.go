package github

import (
	"context"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/collie/pkg/domain/interfaces"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a GitHub client authenticated with a personal or
// installation access token.
func NewClient(token string) interfaces.GitHubClient {
	return &client{
		githubClient: github.NewClient(nil).WithAuthToken(token),
	}
}

// NewAppClient creates a GitHub client with App installation authentication
func NewAppClient(appID, installationID int64, privateKey []byte) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.T(types.ErrTagConfig),
			goerr.V("app_id", appID),
		)
	}

	return &client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
	}, nil
}

// GetPullRequest fetches the pull request metadata
func (c *client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := c.githubClient.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get pull request",
			goerr.T(types.ErrTagCollect),
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("number", number),
		)
	}
	return pr, nil
}

// ListPullRequestFiles returns every changed file in platform-reported order,
// following pagination to the end.
func (c *client) ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error) {
	var files []*github.CommitFile
	opts := &github.ListOptions{PerPage: 100}

	for {
		page, resp, err := c.githubClient.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list pull request files",
				goerr.T(types.ErrTagCollect),
				goerr.V("owner", owner),
				goerr.V("repo", repo),
				goerr.V("number", number),
			)
		}

		files = append(files, page...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// GetFileContent fetches the raw contents of a file at the given ref
func (c *client) GetFileContent(ctx context.Context, owner, repo, path, ref string) ([]byte, error) {
	fileContent, _, _, err := c.githubClient.Repositories.GetContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{
		Ref: ref,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get file contents",
			goerr.T(types.ErrTagCollect),
			goerr.V("path", path),
			goerr.V("ref", ref),
		)
	}
	if fileContent == nil {
		return nil, goerr.New("path is not a file",
			goerr.T(types.ErrTagCollect),
			goerr.V("path", path),
		)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode file contents",
			goerr.T(types.ErrTagCollect),
			goerr.V("path", path),
		)
	}

	return []byte(content), nil
}

// CreateReview creates a pull request review
func (c *client) CreateReview(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) error {
	if _, _, err := c.githubClient.PullRequests.CreateReview(ctx, owner, repo, number, review); err != nil {
		return goerr.Wrap(err, "failed to create review",
			goerr.T(types.ErrTagPublish),
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("number", number),
		)
	}
	return nil
}

// CreateIssueComment posts a standalone timeline comment
func (c *client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	if _, _, err := c.githubClient.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return goerr.Wrap(err, "failed to create issue comment",
			goerr.T(types.ErrTagPublish),
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("number", number),
		)
	}
	return nil
}
