package model

import (
	"encoding/json"

	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ReviewDecision is the tool's verdict on the pull request
type ReviewDecision string

const (
	DecisionApprove        ReviewDecision = "approve"
	DecisionRequestChanges ReviewDecision = "request_changes"
	DecisionComment        ReviewDecision = "comment"
)

// Validate rejects any value outside the enumerated set. An unrecognized
// decision is a contract violation, never a silent default.
func (d ReviewDecision) Validate() error {
	switch d {
	case DecisionApprove, DecisionRequestChanges, DecisionComment:
		return nil
	default:
		return goerr.New("unrecognized review decision",
			goerr.T(types.ErrTagToolContract),
			goerr.V("field", "review_decision"),
			goerr.V("value", string(d)),
		)
	}
}

// Side identifies which side of the diff a line anchor refers to
type Side string

const (
	SideLeft  Side = "LEFT"
	SideRight Side = "RIGHT"
)

// CommentAnchor is the anchoring mode of a review comment. A comment is
// either file-level or line-anchored, never both; the closed implementations
// are FileAnchor and LineAnchor.
type CommentAnchor interface {
	anchor()
}

// FileAnchor marks a comment attached to a file as a whole
type FileAnchor struct{}

func (FileAnchor) anchor() {}

// LineAnchor marks a comment attached to a diff line, optionally spanning a
// range starting at StartLine.
type LineAnchor struct {
	Line      int
	Side      Side
	StartLine int
	StartSide Side
}

func (LineAnchor) anchor() {}

// Comment is one review comment of a ReviewResult
type Comment struct {
	Path   string
	Body   string
	Anchor CommentAnchor
}

// commentWire is the flat JSON form of Comment defined by the tool-response
// wire contract.
type commentWire struct {
	Path        string `json:"path"`
	Body        string `json:"body"`
	SubjectType string `json:"subject_type,omitempty"`
	Line        *int   `json:"line,omitempty"`
	Side        string `json:"side,omitempty"`
	StartLine   *int   `json:"start_line,omitempty"`
	StartSide   string `json:"start_side,omitempty"`
}

// MarshalJSON flattens the anchor union into the wire form
func (c Comment) MarshalJSON() ([]byte, error) {
	w := commentWire{Path: c.Path, Body: c.Body}

	switch a := c.Anchor.(type) {
	case FileAnchor:
		w.SubjectType = "file"
	case LineAnchor:
		line := a.Line
		w.Line = &line
		w.Side = string(a.Side)
		if a.StartLine > 0 {
			start := a.StartLine
			w.StartLine = &start
			w.StartSide = string(a.StartSide)
		}
	default:
		return nil, goerr.New("comment has no anchoring mode",
			goerr.T(types.ErrTagToolContract),
			goerr.V("field", "comments"),
			goerr.V("path", c.Path),
		)
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire form and enforces the either/or anchoring
// invariant, naming the violated field.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var w commentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return goerr.Wrap(err, "failed to decode comment",
			goerr.T(types.ErrTagToolContract),
			goerr.V("field", "comments"),
		)
	}

	c.Path = w.Path
	c.Body = w.Body

	switch {
	case w.SubjectType == "file" && w.Line != nil:
		return goerr.New("comment is both file-level and line-anchored",
			goerr.T(types.ErrTagToolContract),
			goerr.V("field", "comments.subject_type"),
			goerr.V("path", w.Path),
		)

	case w.SubjectType == "file":
		c.Anchor = FileAnchor{}
		return nil

	case w.SubjectType != "":
		return goerr.New("unrecognized comment subject type",
			goerr.T(types.ErrTagToolContract),
			goerr.V("field", "comments.subject_type"),
			goerr.V("value", w.SubjectType),
		)

	case w.Line != nil:
		anchor := LineAnchor{Line: *w.Line}
		var err error
		if anchor.Side, err = parseSide(w.Side, "comments.side"); err != nil {
			return err
		}
		if w.StartLine != nil {
			anchor.StartLine = *w.StartLine
			if anchor.StartSide, err = parseSide(w.StartSide, "comments.start_side"); err != nil {
				return err
			}
		}
		c.Anchor = anchor
		return nil

	default:
		return goerr.New("comment is neither file-level nor line-anchored",
			goerr.T(types.ErrTagToolContract),
			goerr.V("field", "comments"),
			goerr.V("path", w.Path),
		)
	}
}

// parseSide maps a wire side value to Side. An absent side defaults to RIGHT,
// matching the platform's own default for single-sided anchors.
func parseSide(v, field string) (Side, error) {
	switch Side(v) {
	case SideLeft, SideRight:
		return Side(v), nil
	case "":
		return SideRight, nil
	default:
		return "", goerr.New("unrecognized diff side",
			goerr.T(types.ErrTagToolContract),
			goerr.V("field", field),
			goerr.V("value", v),
		)
	}
}

// ReviewResult is the structured verdict returned by a review tool. It is
// constructed once by the tool adapter and only read by the publisher.
type ReviewResult struct {
	SummaryMarkdown string         `json:"summary_markdown"`
	ReviewDecision  ReviewDecision `json:"review_decision"`
	ReviewBody      string         `json:"review_body"`
	IssueComment    string         `json:"issue_comment,omitempty"`
	Comments        []Comment      `json:"comments,omitempty"`
}

// Validate checks the invariants that the comment decoder cannot see on its
// own, currently the decision enum.
func (r *ReviewResult) Validate() error {
	if err := r.ReviewDecision.Validate(); err != nil {
		return err
	}
	return nil
}

// DecodeReviewResult parses and validates a wire-format review result. Any
// violation is reported with the violated field named.
func DecodeReviewResult(data []byte) (*ReviewResult, error) {
	var result ReviewResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode review result",
			goerr.T(types.ErrTagToolContract),
		)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}
