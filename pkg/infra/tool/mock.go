package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/collie/pkg/domain/interfaces"
	"github.com/m-mizutani/collie/pkg/domain/model"
)

type mockTool struct{}

// NewMock creates the deterministic in-process reviewer. Its verdict is a
// pure function of the snapshot: no network, no subprocess, no clock.
func NewMock() interfaces.ReviewTool {
	return &mockTool{}
}

// Invoke computes a deterministic verdict from the snapshot alone
func (t *mockTool) Invoke(ctx context.Context, pr *model.PRContext) (*model.ReviewResult, error) {
	summary := formatSummary(pr)

	result := &model.ReviewResult{
		SummaryMarkdown: summary,
		ReviewDecision:  model.DecisionComment,
		ReviewBody:      fmt.Sprintf("Reviewed `%s/%s#%d` at %s.", pr.Owner, pr.Repo, pr.Number, pr.HeadSHA),
	}

	if len(pr.ChangedFiles) > 0 {
		first := pr.ChangedFiles[0]
		result.Comments = []model.Comment{
			{
				Path:   first.Path,
				Body:   fmt.Sprintf("`%s` (%s): +%d/-%d", first.Path, first.Status, first.Additions, first.Deletions),
				Anchor: model.FileAnchor{},
			},
		}
	}

	return result, nil
}

// formatSummary formats the snapshot digest as a markdown summary
func formatSummary(pr *model.PRContext) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Review of %s/%s#%d\n\n", pr.Owner, pr.Repo, pr.Number))
	sb.WriteString(fmt.Sprintf("**%s**\n\n", pr.Title))
	sb.WriteString(fmt.Sprintf("%d changed file(s), +%d/-%d\n\n", len(pr.ChangedFiles), totalAdditions(pr), totalDeletions(pr)))

	if len(pr.Labels) > 0 {
		sb.WriteString(fmt.Sprintf("Labels: %s\n\n", strings.Join(pr.Labels, ", ")))
	}
	if pr.GuidelinesB64 != "" {
		sb.WriteString("Review guidelines were provided.\n\n")
	}

	for _, f := range pr.ChangedFiles {
		sb.WriteString(fmt.Sprintf("- `%s` (%s) +%d/-%d\n", f.Path, f.Status, f.Additions, f.Deletions))
	}

	return sb.String()
}

func totalAdditions(pr *model.PRContext) int {
	var n int
	for _, f := range pr.ChangedFiles {
		n += f.Additions
	}
	return n
}

func totalDeletions(pr *model.PRContext) int {
	var n int
	for _, f := range pr.ChangedFiles {
		n += f.Deletions
	}
	return n
}
