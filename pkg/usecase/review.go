package usecase

import (
	"context"

	"github.com/m-mizutani/collie/pkg/domain/interfaces"
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type reviewUseCase struct {
	collector  *Collector
	tool       interfaces.ReviewTool
	publisher  *Publisher
	triggerCfg model.TriggerConfig
}

// NewReview creates the use case driving one review cycle: collect the
// snapshot, evaluate the trigger gates, invoke the selected tool, publish
// the verdict. A fatal error in one stage stops the sequence.
func NewReview(
	collector *Collector,
	tool interfaces.ReviewTool,
	publisher *Publisher,
	triggerCfg model.TriggerConfig,
) interfaces.ReviewUseCase {
	return &reviewUseCase{
		collector:  collector,
		tool:       tool,
		publisher:  publisher,
		triggerCfg: triggerCfg,
	}
}

// Run processes exactly one trigger event and terminates
func (uc *reviewUseCase) Run(ctx context.Context, event *model.TriggerEvent) (*model.RunReport, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Processing trigger event",
		"type", event.Type,
		"action", event.Action,
		"repository", event.Owner+"/"+event.Repo,
		"number", event.Number,
		"sender", event.Sender,
	)

	if !event.IsSupported() {
		logger.Info("Event does not start a review cycle, nothing to do",
			"type", event.Type,
			"action", event.Action,
		)
		return &model.RunReport{
			Outcome: model.OutcomeUnsupported,
			Reason:  "event type/action is not supported",
		}, nil
	}

	snapshot, err := uc.collector.Collect(ctx, event)
	if err != nil {
		return nil, goerr.Wrap(err, "collection failed")
	}

	decision := EvaluateTrigger(snapshot, uc.triggerCfg)
	if !decision.Run {
		logger.Info("Trigger evaluation declined, skipping review",
			"reason", decision.Reason,
		)
		return &model.RunReport{
			Outcome: model.OutcomeSkipped,
			Reason:  decision.Reason,
		}, nil
	}
	logger.Info("Trigger evaluation authorized the run", "reason", decision.Reason)

	result, err := uc.tool.Invoke(ctx, snapshot)
	if err != nil {
		return nil, goerr.Wrap(err, "tool invocation failed",
			goerr.V("stage", types.Stage(err)),
		)
	}

	logger.Info("Review tool returned a verdict",
		"decision", result.ReviewDecision,
		"comments", len(result.Comments),
	)

	if err := uc.publisher.Publish(ctx, snapshot, result); err != nil {
		return nil, err
	}

	logger.Info("Review cycle completed",
		"run_id", snapshot.RunID,
	)

	return &model.RunReport{Outcome: model.OutcomeCompleted}, nil
}
