package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func TestReviewDecision_Validate(t *testing.T) {
	tests := []struct {
		name     string
		decision model.ReviewDecision
		wantErr  bool
	}{
		{name: "approve", decision: model.DecisionApprove, wantErr: false},
		{name: "request_changes", decision: model.DecisionRequestChanges, wantErr: false},
		{name: "comment", decision: model.DecisionComment, wantErr: false},
		{name: "reject is not in the enumerated set", decision: "reject", wantErr: true},
		{name: "empty decision", decision: "", wantErr: true},
		{name: "uppercase is not accepted", decision: "APPROVE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decision.Validate()
			if !tt.wantErr {
				gt.NoError(t, err)
				return
			}

			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagToolContract))
			gt.Equal(t, goerr.Values(err)["field"], "review_decision")
		})
	}
}

func TestDecodeReviewResult_UnknownDecision(t *testing.T) {
	body := `{"summary_markdown":"s","review_decision":"reject","review_body":"b"}`

	_, err := model.DecodeReviewResult([]byte(body))
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagToolContract))
	gt.Equal(t, goerr.Values(err)["field"], "review_decision")
}

func TestComment_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantErr    bool
		wantAnchor model.CommentAnchor
	}{
		{
			name:       "File-level comment",
			input:      `{"path":"a.go","body":"note","subject_type":"file"}`,
			wantAnchor: model.FileAnchor{},
		},
		{
			name:       "Line-anchored comment",
			input:      `{"path":"a.go","body":"note","line":12,"side":"LEFT"}`,
			wantAnchor: model.LineAnchor{Line: 12, Side: model.SideLeft},
		},
		{
			name:       "Side defaults to RIGHT",
			input:      `{"path":"a.go","body":"note","line":3}`,
			wantAnchor: model.LineAnchor{Line: 3, Side: model.SideRight},
		},
		{
			name:       "Multi-line range",
			input:      `{"path":"a.go","body":"note","line":20,"side":"RIGHT","start_line":10,"start_side":"RIGHT"}`,
			wantAnchor: model.LineAnchor{Line: 20, Side: model.SideRight, StartLine: 10, StartSide: model.SideRight},
		},
		{
			name:    "Both file-level and line-anchored",
			input:   `{"path":"a.go","body":"note","subject_type":"file","line":3}`,
			wantErr: true,
		},
		{
			name:    "Neither file-level nor line-anchored",
			input:   `{"path":"a.go","body":"note"}`,
			wantErr: true,
		},
		{
			name:    "Unknown subject type",
			input:   `{"path":"a.go","body":"note","subject_type":"hunk"}`,
			wantErr: true,
		},
		{
			name:    "Unknown side",
			input:   `{"path":"a.go","body":"note","line":3,"side":"MIDDLE"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c model.Comment
			err := json.Unmarshal([]byte(tt.input), &c)

			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.ErrTagToolContract))
				return
			}

			gt.NoError(t, err)
			gt.Equal(t, c.Path, "a.go")
			gt.Equal(t, c.Anchor, tt.wantAnchor)
		})
	}
}

func TestReviewResult_RoundTrip(t *testing.T) {
	original := model.ReviewResult{
		SummaryMarkdown: "## Summary\n\nAll good.",
		ReviewDecision:  model.DecisionRequestChanges,
		ReviewBody:      "Please fix the error handling.",
		IssueComment:    "See the review.",
		Comments: []model.Comment{
			{Path: "a.go", Body: "whole-file note", Anchor: model.FileAnchor{}},
			{Path: "b.go", Body: "single line", Anchor: model.LineAnchor{Line: 42, Side: model.SideRight}},
			{Path: "c.go", Body: "range", Anchor: model.LineAnchor{Line: 20, Side: model.SideLeft, StartLine: 10, StartSide: model.SideLeft}},
		},
	}

	data, err := json.Marshal(original)
	gt.NoError(t, err)

	decoded, err := model.DecodeReviewResult(data)
	gt.NoError(t, err)
	gt.Equal(t, *decoded, original)
}
