package model

// FileStatus represents how a file changed in the pull request
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileRemoved  FileStatus = "removed"
	FileRenamed  FileStatus = "renamed"
)

// ChangedFile is one entry of the pull request's file list. ContentsB64 is
// present only when content inclusion is enabled and the file fits the byte
// cap; ContentsOmitted distinguishes "over the cap, dropped" from "inclusion
// not requested".
type ChangedFile struct {
	Path            string     `json:"path"`
	Status          FileStatus `json:"status"`
	Patch           string     `json:"patch,omitempty"`
	Additions       int        `json:"additions"`
	Deletions       int        `json:"deletions"`
	BlobURL         string     `json:"blob_url,omitempty"`
	RawURL          string     `json:"raw_url,omitempty"`
	ContentsB64     string     `json:"contents_b64,omitempty"`
	ContentsOmitted bool       `json:"contents_omitted,omitempty"`
}

// ExtraFile is a checkout file pulled in via a configured glob pattern
type ExtraFile struct {
	Path        string `json:"path"`
	ContentsB64 string `json:"contents_b64"`
}

// PRContext is the immutable snapshot of a pull request handed to a review
// tool. It is constructed once by the collector and only read downstream.
type PRContext struct {
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	BaseRef   string `json:"base_ref"`
	HeadRef   string `json:"head_ref"`
	HeadSHA   string `json:"head_sha"`
	UserLogin string `json:"user_login"`

	Labels    []string `json:"labels"`
	Assignees []string `json:"assignees"`

	ChangedFiles []ChangedFile `json:"changed_files"`

	GuidelinesB64 string      `json:"guidelines_b64,omitempty"`
	ExtraFiles    []ExtraFile `json:"extra_files,omitempty"`

	TriggeredBy string `json:"triggered_by"`
	EventName   string `json:"event_name"`
	TriggerText string `json:"trigger_text"`
	RunID       string `json:"run_id"`
}

// HasDiffContext reports whether the run was started by an event that is
// anchored to a specific diff. See TriggerEvent.HasDiffContext.
func (c *PRContext) HasDiffContext() bool {
	e := TriggerEvent{Type: TriggerEventType(c.EventName)}
	return e.HasDiffContext()
}

// HasLabel checks label membership
func (c *PRContext) HasLabel(label string) bool {
	for _, l := range c.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// HasAssignee checks assignee membership
func (c *PRContext) HasAssignee(login string) bool {
	for _, a := range c.Assignees {
		if a == login {
			return true
		}
	}
	return false
}
