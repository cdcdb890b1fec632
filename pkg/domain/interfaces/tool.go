package interfaces

import (
	"context"

	"github.com/m-mizutani/collie/pkg/domain/model"
)

// ReviewTool is the polymorphic boundary to a review backend. The three
// implementations (mock, remote, command) share this contract and the same
// failure taxonomy: transport-tagged errors for unreachable backends and
// contract-tagged errors for malformed verdicts.
type ReviewTool interface {
	// Invoke runs one review over the snapshot and returns the verdict
	Invoke(ctx context.Context, pr *model.PRContext) (*model.ReviewResult, error)
}
