package model

// RunOutcome is the terminal state of a review cycle
type RunOutcome string

const (
	OutcomeCompleted   RunOutcome = "completed"
	OutcomeSkipped     RunOutcome = "skipped"
	OutcomeUnsupported RunOutcome = "unsupported"
)

// RunReport summarizes a finished run for the caller
type RunReport struct {
	Outcome RunOutcome
	Reason  string // Populated for skipped/unsupported outcomes
}
