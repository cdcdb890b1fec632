package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures by the stage that produced them. The CLI uses
// the tag to name the stage in the final log line, and tests assert on them.
var (
	// ErrTagConfig marks malformed or contradictory settings detected before
	// any platform access.
	ErrTagConfig = goerr.NewTag("config")

	// ErrTagCollect marks failures to obtain required pull request data.
	ErrTagCollect = goerr.NewTag("collect")

	// ErrTagToolTransport marks tool invocation failures outside the tool's
	// control flow: unreachable endpoint, non-zero exit, exceeded timeout.
	ErrTagToolTransport = goerr.NewTag("tool_transport")

	// ErrTagToolContract marks tool output that does not satisfy the review
	// result contract.
	ErrTagToolContract = goerr.NewTag("tool_contract")

	// ErrTagPublish marks output channel failures. These are aggregated, not
	// propagated one by one.
	ErrTagPublish = goerr.NewTag("publish")

	// ErrTagAuth marks a write attempt without a configured credential.
	ErrTagAuth = goerr.NewTag("auth")
)

// Stage returns the stage name of a tagged error, or "unknown" when the error
// carries no stage tag.
func Stage(err error) string {
	switch {
	case goerr.HasTag(err, ErrTagConfig):
		return "config"
	case goerr.HasTag(err, ErrTagCollect):
		return "collect"
	case goerr.HasTag(err, ErrTagToolTransport):
		return "tool_transport"
	case goerr.HasTag(err, ErrTagToolContract):
		return "tool_contract"
	case goerr.HasTag(err, ErrTagPublish):
		return "publish"
	case goerr.HasTag(err, ErrTagAuth):
		return "auth"
	}
	return "unknown"
}
