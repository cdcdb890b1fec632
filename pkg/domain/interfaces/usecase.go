package interfaces

import (
	"context"

	"github.com/m-mizutani/collie/pkg/domain/model"
)

// ReviewUseCase defines the interface for one review cycle
type ReviewUseCase interface {
	// Run processes exactly one trigger event and terminates
	Run(ctx context.Context, event *model.TriggerEvent) (*model.RunReport, error)
}
