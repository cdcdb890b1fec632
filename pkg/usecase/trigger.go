package usecase

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/collie/pkg/domain/model"
)

// TriggerDecision is the evaluator's verdict on whether a review runs
type TriggerDecision struct {
	Run    bool
	Reason string
}

// EvaluateTrigger is a pure predicate over the snapshot and the configured
// gates. Gates combine by logical OR: any configured gate that matches
// authorizes the run, unconfigured gates are ignored, and zero configured
// gates means the run is always authorized. Phrase matching is a
// case-sensitive substring check against the triggering comment text and the
// pull request body.
func EvaluateTrigger(pr *model.PRContext, cfg model.TriggerConfig) TriggerDecision {
	if cfg.Empty() {
		return TriggerDecision{Run: true, Reason: "no trigger configured"}
	}

	if cfg.Phrase != "" {
		if strings.Contains(pr.TriggerText, cfg.Phrase) || strings.Contains(pr.Body, cfg.Phrase) {
			return TriggerDecision{Run: true, Reason: fmt.Sprintf("phrase %q matched", cfg.Phrase)}
		}
	}
	if cfg.Label != "" && pr.HasLabel(cfg.Label) {
		return TriggerDecision{Run: true, Reason: fmt.Sprintf("label %q matched", cfg.Label)}
	}
	if cfg.Assignee != "" && pr.HasAssignee(cfg.Assignee) {
		return TriggerDecision{Run: true, Reason: fmt.Sprintf("assignee %q matched", cfg.Assignee)}
	}

	return TriggerDecision{Run: false, Reason: "no configured trigger matched"}
}
