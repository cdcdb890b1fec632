package usecase

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/collie/pkg/domain/interfaces"
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Collector builds the immutable, size-bounded snapshot of a pull request.
// For a fixed event payload and checkout state its output is reproducible:
// file order follows the platform, caps drop whole entries, and the only
// generated field is the run identifier when the caller supplied none.
type Collector struct {
	githubClient interfaces.GitHubClient
	cfg          model.ContextConfig
}

// NewCollector creates a new Collector
func NewCollector(githubClient interfaces.GitHubClient, cfg model.ContextConfig) *Collector {
	return &Collector{
		githubClient: githubClient,
		cfg:          cfg,
	}
}

// Collect produces exactly one PRContext for the trigger event
func (uc *Collector) Collect(ctx context.Context, event *model.TriggerEvent) (*model.PRContext, error) {
	logger := ctxlog.From(ctx)

	if uc.githubClient == nil {
		return nil, goerr.New("credential token is not configured, cannot read pull request data",
			goerr.T(types.ErrTagAuth),
		)
	}
	if event.Owner == "" || event.Repo == "" || event.Number == 0 {
		return nil, goerr.New("trigger event is missing required pull request fields",
			goerr.T(types.ErrTagCollect),
			goerr.V("owner", event.Owner),
			goerr.V("repo", event.Repo),
			goerr.V("number", event.Number),
		)
	}

	pr, err := uc.githubClient.GetPullRequest(ctx, event.Owner, event.Repo, event.Number)
	if err != nil {
		return nil, err
	}
	if pr.GetBase().GetRef() == "" || pr.GetHead().GetRef() == "" {
		return nil, goerr.New("pull request is missing base/head refs",
			goerr.T(types.ErrTagCollect),
			goerr.V("number", event.Number),
		)
	}

	runID := event.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	snapshot := &model.PRContext{
		Owner:     event.Owner,
		Repo:      event.Repo,
		Number:    event.Number,
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		BaseRef:   pr.GetBase().GetRef(),
		HeadRef:   pr.GetHead().GetRef(),
		HeadSHA:   pr.GetHead().GetSHA(),
		UserLogin: pr.GetUser().GetLogin(),

		TriggeredBy: event.Sender,
		EventName:   string(event.Type),
		TriggerText: event.CommentBody,
		RunID:       runID,
	}

	for _, label := range pr.Labels {
		snapshot.Labels = append(snapshot.Labels, label.GetName())
	}
	for _, assignee := range pr.Assignees {
		snapshot.Assignees = append(snapshot.Assignees, assignee.GetLogin())
	}

	if err := uc.collectChangedFiles(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := uc.collectGuidelines(snapshot); err != nil {
		return nil, err
	}
	if err := uc.collectExtraFiles(ctx, snapshot); err != nil {
		return nil, err
	}

	logger.Info("Collected pull request snapshot",
		"owner", snapshot.Owner,
		"repo", snapshot.Repo,
		"number", snapshot.Number,
		"changed_files", len(snapshot.ChangedFiles),
		"extra_files", len(snapshot.ExtraFiles),
		"run_id", snapshot.RunID,
	)

	return snapshot, nil
}

// collectChangedFiles fetches the file list, truncates the candidate set to
// the file cap, and embeds contents where enabled and within the byte cap.
func (uc *Collector) collectChangedFiles(ctx context.Context, snapshot *model.PRContext) error {
	logger := ctxlog.From(ctx)

	files, err := uc.githubClient.ListPullRequestFiles(ctx, snapshot.Owner, snapshot.Repo, snapshot.Number)
	if err != nil {
		return err
	}

	if uc.cfg.MaxFiles > 0 && len(files) > uc.cfg.MaxFiles {
		logger.Warn("Changed file list exceeds cap, dropping excess files",
			"total", len(files),
			"cap", uc.cfg.MaxFiles,
			"dropped", len(files)-uc.cfg.MaxFiles,
		)
		files = files[:uc.cfg.MaxFiles]
	}

	for _, f := range files {
		changed := model.ChangedFile{
			Path:      f.GetFilename(),
			Status:    model.FileStatus(f.GetStatus()),
			Patch:     f.GetPatch(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			BlobURL:   f.GetBlobURL(),
			RawURL:    f.GetRawURL(),
		}

		if uc.cfg.IncludeContents && changed.Status != model.FileRemoved {
			contents, err := uc.githubClient.GetFileContent(ctx, snapshot.Owner, snapshot.Repo, changed.Path, snapshot.HeadSHA)
			switch {
			case err != nil:
				logger.Warn("Failed to fetch file contents, omitting",
					"path", changed.Path,
					"error", err,
				)
				changed.ContentsOmitted = true
			case uc.cfg.MaxFileBytes > 0 && int64(len(contents)) > uc.cfg.MaxFileBytes:
				logger.Debug("File contents exceed byte cap, omitting",
					"path", changed.Path,
					"size", len(contents),
					"cap", uc.cfg.MaxFileBytes,
				)
				changed.ContentsOmitted = true
			default:
				changed.ContentsB64 = base64.StdEncoding.EncodeToString(contents)
			}
		}

		snapshot.ChangedFiles = append(snapshot.ChangedFiles, changed)
	}

	return nil
}

// collectGuidelines embeds the configured guideline document from the checkout
func (uc *Collector) collectGuidelines(snapshot *model.PRContext) error {
	if uc.cfg.GuidelineFile == "" {
		return nil
	}

	path := filepath.Join(uc.cfg.WorkDir, uc.cfg.GuidelineFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read guideline file",
			goerr.T(types.ErrTagCollect),
			goerr.V("path", path),
		)
	}

	snapshot.GuidelinesB64 = base64.StdEncoding.EncodeToString(data)
	return nil
}

// collectExtraFiles embeds checkout files matched by the configured glob
// patterns, in pattern order then lexical match order. Oversized files are
// skipped whole.
func (uc *Collector) collectExtraFiles(ctx context.Context, snapshot *model.PRContext) error {
	logger := ctxlog.From(ctx)

	for _, pattern := range uc.cfg.ExtraFileGlobs {
		matches, err := filepath.Glob(filepath.Join(uc.cfg.WorkDir, pattern))
		if err != nil {
			return goerr.Wrap(err, "invalid extra file glob pattern",
				goerr.T(types.ErrTagConfig),
				goerr.V("pattern", pattern),
			)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if uc.cfg.MaxFileBytes > 0 && info.Size() > uc.cfg.MaxFileBytes {
				logger.Debug("Extra file exceeds byte cap, skipping",
					"path", match,
					"size", info.Size(),
				)
				continue
			}

			data, err := os.ReadFile(match)
			if err != nil {
				return goerr.Wrap(err, "failed to read extra file",
					goerr.T(types.ErrTagCollect),
					goerr.V("path", match),
				)
			}

			rel, err := filepath.Rel(uc.cfg.WorkDir, match)
			if err != nil {
				rel = match
			}

			snapshot.ExtraFiles = append(snapshot.ExtraFiles, model.ExtraFile{
				Path:        filepath.ToSlash(rel),
				ContentsB64: base64.StdEncoding.EncodeToString(data),
			})
		}
	}

	return nil
}
