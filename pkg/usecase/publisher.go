package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/collie/pkg/domain/interfaces"
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/collie/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Publisher fans one review result out to the enabled output channels. The
// channels are independent platform objects: every enabled channel is
// attempted, failures are aggregated after all of them ran, and a channel
// that succeeded stays in effect even when a sibling failed.
type Publisher struct {
	githubClient interfaces.GitHubClient // nil when no credential is configured
	cfg          model.OutputConfig
	stdout       io.Writer
}

// PublisherOption is a functional option for Publisher configuration
type PublisherOption func(*Publisher)

// WithStdout redirects the stdout channel, mainly for tests
func WithStdout(w io.Writer) PublisherOption {
	return func(p *Publisher) {
		p.stdout = w
	}
}

// NewPublisher creates a new Publisher
func NewPublisher(githubClient interfaces.GitHubClient, cfg model.OutputConfig, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		githubClient: githubClient,
		cfg:          cfg,
		stdout:       os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish maps the result onto every enabled channel and returns one
// aggregated error naming each channel that failed, or nil when all enabled
// channels succeeded.
func (uc *Publisher) Publish(ctx context.Context, pr *model.PRContext, result *model.ReviewResult) error {
	var tasks []async.Task

	for _, ch := range model.AllChannels {
		if !uc.cfg.Enabled(ch) {
			continue
		}

		run := uc.channelFunc(ch, pr, result)
		tasks = append(tasks, async.Task{Name: string(ch), Run: run})
	}

	results := uc.attachResults(tasks, async.Gather(ctx, tasks))

	var failed []string
	var errs []error
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, r.channel)
			errs = append(errs, goerr.Wrap(r.err, fmt.Sprintf("channel %s failed", r.channel)))
		}
	}

	if len(failed) > 0 {
		return goerr.Wrap(errors.Join(errs...),
			fmt.Sprintf("publishing failed on %d of %d channel(s)", len(failed), len(tasks)),
			goerr.T(types.ErrTagPublish),
			goerr.V("failed_channels", strings.Join(failed, ", ")),
		)
	}

	return nil
}

type channelResult struct {
	channel string
	err     error
}

func (uc *Publisher) attachResults(tasks []async.Task, errs []error) []channelResult {
	results := make([]channelResult, len(tasks))
	for i, t := range tasks {
		results[i] = channelResult{channel: t.Name, err: errs[i]}
	}
	return results
}

func (uc *Publisher) channelFunc(ch model.Channel, pr *model.PRContext, result *model.ReviewResult) func(ctx context.Context) error {
	switch ch {
	case model.ChannelSummary:
		return func(ctx context.Context) error { return uc.publishSummary(ctx, result) }
	case model.ChannelStdout:
		return func(ctx context.Context) error { return uc.publishStdout(ctx, result) }
	case model.ChannelComment:
		return func(ctx context.Context) error { return uc.publishComment(ctx, pr, result) }
	case model.ChannelReview:
		return func(ctx context.Context) error { return uc.publishReview(ctx, pr, result) }
	default:
		return func(ctx context.Context) error {
			return goerr.New("unknown output channel", goerr.V("channel", string(ch)))
		}
	}
}

// publishSummary appends the summary markdown to the run's summary surface
func (uc *Publisher) publishSummary(ctx context.Context, result *model.ReviewResult) error {
	logger := ctxlog.From(ctx)

	if uc.cfg.SummaryPath == "" {
		logger.Info("Summary path is not configured, skipping summary channel")
		return nil
	}

	f, err := os.OpenFile(uc.cfg.SummaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open summary file",
			goerr.V("path", uc.cfg.SummaryPath),
		)
	}
	defer f.Close()

	if _, err := f.WriteString(result.SummaryMarkdown + "\n"); err != nil {
		return goerr.Wrap(err, "failed to write summary file",
			goerr.V("path", uc.cfg.SummaryPath),
		)
	}

	return nil
}

// publishStdout writes the summary, or the full result when configured, to
// the process's standard output.
func (uc *Publisher) publishStdout(ctx context.Context, result *model.ReviewResult) error {
	if uc.cfg.StdoutFull {
		enc := json.NewEncoder(uc.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return goerr.Wrap(err, "failed to encode result to stdout")
		}
		return nil
	}

	if _, err := fmt.Fprintln(uc.stdout, result.SummaryMarkdown); err != nil {
		return goerr.Wrap(err, "failed to write summary to stdout")
	}
	return nil
}

// publishComment posts the standalone timeline comment, independent of the
// review object. This channel works for runs without diff context.
func (uc *Publisher) publishComment(ctx context.Context, pr *model.PRContext, result *model.ReviewResult) error {
	if result.IssueComment == "" {
		return nil
	}
	if uc.githubClient == nil {
		return uc.missingCredential()
	}

	return uc.githubClient.CreateIssueComment(ctx, pr.Owner, pr.Repo, pr.Number, result.IssueComment)
}

// publishReview creates the platform review object with the mapped decision
// and up to MaxComments entries, in result order.
func (uc *Publisher) publishReview(ctx context.Context, pr *model.PRContext, result *model.ReviewResult) error {
	logger := ctxlog.From(ctx)

	if uc.githubClient == nil {
		return uc.missingCredential()
	}

	event, err := mapDecision(result.ReviewDecision)
	if err != nil {
		return err
	}

	comments := result.Comments

	// Line anchors require the run to be anchored to a specific diff.
	if !pr.HasDiffContext() {
		var fileLevel []model.Comment
		for _, c := range comments {
			if _, ok := c.Anchor.(model.FileAnchor); ok {
				fileLevel = append(fileLevel, c)
			}
		}
		if dropped := len(comments) - len(fileLevel); dropped > 0 {
			logger.Warn("Dropping line-anchored comments, run has no diff context",
				"dropped", dropped,
				"event_name", pr.EventName,
			)
		}
		comments = fileLevel
	}

	if uc.cfg.MaxComments > 0 && len(comments) > uc.cfg.MaxComments {
		logger.Warn("Review comments exceed cap, dropping excess comments",
			"total", len(comments),
			"cap", uc.cfg.MaxComments,
			"dropped", len(comments)-uc.cfg.MaxComments,
		)
		comments = comments[:uc.cfg.MaxComments]
	}

	var drafts []*github.DraftReviewComment
	for _, c := range comments {
		draft := &github.DraftReviewComment{
			Path: github.Ptr(c.Path),
			Body: github.Ptr(c.Body),
		}

		if anchor, ok := c.Anchor.(model.LineAnchor); ok {
			draft.Line = github.Ptr(anchor.Line)
			draft.Side = github.Ptr(string(anchor.Side))
			if anchor.StartLine > 0 {
				draft.StartLine = github.Ptr(anchor.StartLine)
				draft.StartSide = github.Ptr(string(anchor.StartSide))
			}
		}

		drafts = append(drafts, draft)
	}

	review := &github.PullRequestReviewRequest{
		CommitID: github.Ptr(pr.HeadSHA),
		Body:     github.Ptr(result.ReviewBody),
		Event:    github.Ptr(event),
		Comments: drafts,
	}

	return uc.githubClient.CreateReview(ctx, pr.Owner, pr.Repo, pr.Number, review)
}

func (uc *Publisher) missingCredential() error {
	return goerr.New("credential token is not configured, cannot write to the platform",
		goerr.T(types.ErrTagAuth),
	)
}

// mapDecision maps the wire decision onto the platform's review state
// vocabulary.
func mapDecision(d model.ReviewDecision) (string, error) {
	switch d {
	case model.DecisionApprove:
		return "APPROVE", nil
	case model.DecisionRequestChanges:
		return "REQUEST_CHANGES", nil
	case model.DecisionComment:
		return "COMMENT", nil
	default:
		return "", d.Validate()
	}
}
