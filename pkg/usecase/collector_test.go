package usecase_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/collie/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

func testEvent() *model.TriggerEvent {
	return &model.TriggerEvent{
		Type:   model.EventTypePullRequest,
		Action: "opened",
		Owner:  "owner",
		Repo:   "repo",
		Number: 123,
		Sender: "alice",
		RunID:  "run-1",
	}
}

func TestCollector_Collect_Basic(t *testing.T) {
	ctx := context.Background()

	mockClient := &mockGitHubClient{
		getPullRequestFunc: func(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
			gt.Equal(t, owner, "owner")
			gt.Equal(t, repo, "repo")
			gt.Equal(t, number, 123)
			return prFixture([]string{"backend", "cleanup"}, []string{"bob"}), nil
		},
		listFilesFunc: func(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error) {
			return []*github.CommitFile{
				commitFileFixture("pkg/a.go", 10, 2),
				commitFileFixture("pkg/b.go", 3, 1),
			}, nil
		},
	}

	uc := usecase.NewCollector(mockClient, model.ContextConfig{MaxFiles: 100, WorkDir: "."})

	snapshot, err := uc.Collect(ctx, testEvent())
	gt.NoError(t, err)

	gt.Equal(t, snapshot.Owner, "owner")
	gt.Equal(t, snapshot.Number, 123)
	gt.Equal(t, snapshot.BaseRef, "main")
	gt.Equal(t, snapshot.HeadSHA, "abc1234")
	gt.Equal(t, snapshot.Labels, []string{"backend", "cleanup"})
	gt.Equal(t, snapshot.Assignees, []string{"bob"})
	gt.Equal(t, snapshot.TriggeredBy, "alice")
	gt.Equal(t, snapshot.EventName, "pull_request")
	gt.Equal(t, snapshot.RunID, "run-1")

	gt.Number(t, len(snapshot.ChangedFiles)).Equal(2)
	gt.Equal(t, snapshot.ChangedFiles[0].Path, "pkg/a.go")
	gt.Equal(t, snapshot.ChangedFiles[0].Status, model.FileModified)
	gt.True(t, !snapshot.ChangedFiles[0].ContentsOmitted)
	gt.Equal(t, snapshot.ChangedFiles[0].ContentsB64, "")
}

func TestCollector_Collect_FileCapKeepsPrefix(t *testing.T) {
	ctx := context.Background()

	var files []*github.CommitFile
	for i := 0; i < 7; i++ {
		files = append(files, commitFileFixture(fmt.Sprintf("file%d.go", i), 1, 0))
	}

	mockClient := &mockGitHubClient{
		getPullRequestFunc: func(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
			return prFixture(nil, nil), nil
		},
		listFilesFunc: func(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error) {
			return files, nil
		},
	}

	uc := usecase.NewCollector(mockClient, model.ContextConfig{MaxFiles: 3, WorkDir: "."})

	snapshot, err := uc.Collect(ctx, testEvent())
	gt.NoError(t, err)

	// Exactly the cap-sized prefix, in original order
	gt.Number(t, len(snapshot.ChangedFiles)).Equal(3)
	for i, f := range snapshot.ChangedFiles {
		gt.Equal(t, f.Path, fmt.Sprintf("file%d.go", i))
	}
}

func TestCollector_Collect_ContentInclusion(t *testing.T) {
	ctx := context.Background()

	small := []byte("package a\n")
	large := []byte(strings.Repeat("x", 128))

	removed := commitFileFixture("gone.go", 0, 5)
	removed.Status = github.Ptr("removed")

	mockClient := &mockGitHubClient{
		getPullRequestFunc: func(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
			return prFixture(nil, nil), nil
		},
		listFilesFunc: func(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error) {
			return []*github.CommitFile{
				commitFileFixture("small.go", 1, 0),
				commitFileFixture("large.go", 1, 0),
				removed,
			}, nil
		},
		getFileContentFunc: func(ctx context.Context, owner, repo, path, ref string) ([]byte, error) {
			gt.Equal(t, ref, "abc1234")
			if path == "small.go" {
				return small, nil
			}
			return large, nil
		},
	}

	uc := usecase.NewCollector(mockClient, model.ContextConfig{
		IncludeContents: true,
		MaxFiles:        100,
		MaxFileBytes:    64,
		WorkDir:         ".",
	})

	snapshot, err := uc.Collect(ctx, testEvent())
	gt.NoError(t, err)
	gt.Number(t, len(snapshot.ChangedFiles)).Equal(3)

	// Small file: embedded whole
	gt.Equal(t, snapshot.ChangedFiles[0].ContentsB64, base64.StdEncoding.EncodeToString(small))
	gt.True(t, !snapshot.ChangedFiles[0].ContentsOmitted)

	// Large file: omitted, and the omission is distinguishable from
	// "no content requested"
	gt.Equal(t, snapshot.ChangedFiles[1].ContentsB64, "")
	gt.True(t, snapshot.ChangedFiles[1].ContentsOmitted)

	// Removed file: never fetched
	gt.Equal(t, snapshot.ChangedFiles[2].ContentsB64, "")
	gt.True(t, !snapshot.ChangedFiles[2].ContentsOmitted)
}

func TestCollector_Collect_GuidelinesAndExtraFiles(t *testing.T) {
	ctx := context.Background()

	workDir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(workDir, "REVIEW.md"), []byte("# Guidelines"), 0644))
	gt.NoError(t, os.MkdirAll(filepath.Join(workDir, "docs"), 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(workDir, "docs", "a.md"), []byte("alpha"), 0644))
	gt.NoError(t, os.WriteFile(filepath.Join(workDir, "docs", "b.md"), []byte("beta"), 0644))

	mockClient := &mockGitHubClient{
		getPullRequestFunc: func(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
			return prFixture(nil, nil), nil
		},
	}

	uc := usecase.NewCollector(mockClient, model.ContextConfig{
		MaxFiles:       100,
		MaxFileBytes:   1 << 20,
		GuidelineFile:  "REVIEW.md",
		ExtraFileGlobs: []string{"docs/*.md"},
		WorkDir:        workDir,
	})

	snapshot, err := uc.Collect(ctx, testEvent())
	gt.NoError(t, err)

	gt.Equal(t, snapshot.GuidelinesB64, base64.StdEncoding.EncodeToString([]byte("# Guidelines")))
	gt.Number(t, len(snapshot.ExtraFiles)).Equal(2)
	gt.Equal(t, snapshot.ExtraFiles[0].Path, "docs/a.md")
	gt.Equal(t, snapshot.ExtraFiles[1].Path, "docs/b.md")
	gt.Equal(t, snapshot.ExtraFiles[1].ContentsB64, base64.StdEncoding.EncodeToString([]byte("beta")))
}

func TestCollector_Collect_GeneratesRunID(t *testing.T) {
	ctx := context.Background()

	mockClient := &mockGitHubClient{
		getPullRequestFunc: func(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
			return prFixture(nil, nil), nil
		},
	}

	uc := usecase.NewCollector(mockClient, model.ContextConfig{MaxFiles: 10, WorkDir: "."})

	event := testEvent()
	event.RunID = ""
	snapshot, err := uc.Collect(ctx, event)
	gt.NoError(t, err)
	gt.Value(t, snapshot.RunID).NotEqual("")
}

func TestCollector_Collect_MissingRefs(t *testing.T) {
	ctx := context.Background()

	mockClient := &mockGitHubClient{
		getPullRequestFunc: func(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
			return &github.PullRequest{Title: github.Ptr("broken")}, nil
		},
	}

	uc := usecase.NewCollector(mockClient, model.ContextConfig{MaxFiles: 10, WorkDir: "."})

	_, err := uc.Collect(ctx, testEvent())
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagCollect))
}

func TestCollector_Collect_NoCredential(t *testing.T) {
	uc := usecase.NewCollector(nil, model.ContextConfig{MaxFiles: 10, WorkDir: "."})

	_, err := uc.Collect(context.Background(), testEvent())
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagAuth))
}
