package model

import "time"

// TriggerConfig holds the configured run gates. A zero value means no gate is
// configured and every supported event authorizes a run.
type TriggerConfig struct {
	Phrase   string
	Label    string
	Assignee string
}

// Empty reports whether no gate is configured
func (c TriggerConfig) Empty() bool {
	return c.Phrase == "" && c.Label == "" && c.Assignee == ""
}

// ContextConfig bounds what the collector embeds into a PRContext
type ContextConfig struct {
	IncludeContents bool
	MaxFiles        int
	MaxFileBytes    int64
	GuidelineFile   string
	ExtraFileGlobs  []string
	WorkDir         string
}

// ToolKind selects one of the closed set of tool adapters
type ToolKind string

const (
	ToolMock    ToolKind = "mock"
	ToolRemote  ToolKind = "remote"
	ToolCommand ToolKind = "command"
)

// ToolConfig carries the per-transport parameters of the selected tool
type ToolConfig struct {
	Kind ToolKind

	// Remote transport
	Endpoint string
	Method   string
	Headers  map[string]string
	Token    string

	// Command transport
	Command []string
	Dir     string

	Timeout time.Duration
}

// Channel is one independent output surface of the publisher
type Channel string

const (
	ChannelSummary Channel = "summary"
	ChannelStdout  Channel = "stdout"
	ChannelComment Channel = "comment"
	ChannelReview  Channel = "review"
)

// AllChannels lists every channel in the publisher's reporting order
var AllChannels = []Channel{ChannelSummary, ChannelStdout, ChannelComment, ChannelReview}

// OutputConfig selects channels and caps review comment fan-out
type OutputConfig struct {
	Channels    []Channel
	MaxComments int
	SummaryPath string
	StdoutFull  bool
}

// Enabled checks channel membership
func (c OutputConfig) Enabled(ch Channel) bool {
	for _, v := range c.Channels {
		if v == ch {
			return true
		}
	}
	return false
}
