package model

// TriggerEventType represents the type of platform event that started the run
type TriggerEventType string

const (
	EventTypePullRequest   TriggerEventType = "pull_request"
	EventTypeIssueComment  TriggerEventType = "issue_comment"
	EventTypeReviewComment TriggerEventType = "pull_request_review_comment"
	EventTypeUnknown       TriggerEventType = "unknown"
)

// TriggerEvent is the distilled form of the platform event payload that
// started the run. The collector resolves it into a full PRContext.
type TriggerEvent struct {
	Type        TriggerEventType
	Action      string // Event action (e.g., opened, created)
	Owner       string
	Repo        string
	Number      int    // Pull request number
	Sender      string // Login of whoever caused the event
	CommentBody string // Comment text for comment-driven events, empty otherwise
	RunID       string
}

// IsSupported checks if the event starts a review cycle
func (e *TriggerEvent) IsSupported() bool {
	switch e.Type {
	case EventTypePullRequest:
		return e.Action == "opened" || e.Action == "synchronize" || e.Action == "reopened"
	case EventTypeIssueComment, EventTypeReviewComment:
		return e.Action == "created"
	default:
		return false
	}
}

// HasDiffContext reports whether the run is anchored to a specific diff.
// Line-anchored review comments are only valid when this holds.
func (e *TriggerEvent) HasDiffContext() bool {
	return e.Type == EventTypePullRequest || e.Type == EventTypeReviewComment
}
