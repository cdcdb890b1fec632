package config

import (
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Trigger holds the run gate configuration. All gates are optional; leaving
// every gate empty means every supported event runs a review.
type Trigger struct {
	Phrase   string
	Label    string
	Assignee string
}

// Flags returns CLI flags for trigger configuration
func (c *Trigger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "trigger-phrase",
			Usage:       "Phrase that must appear in the trigger comment or PR body",
			Destination: &c.Phrase,
			Sources:     cli.EnvVars("COLLIE_TRIGGER_PHRASE"),
		},
		&cli.StringFlag{
			Name:        "trigger-label",
			Usage:       "Label that authorizes a run",
			Destination: &c.Label,
			Sources:     cli.EnvVars("COLLIE_TRIGGER_LABEL"),
		},
		&cli.StringFlag{
			Name:        "trigger-assignee",
			Usage:       "Assignee login that authorizes a run",
			Destination: &c.Assignee,
			Sources:     cli.EnvVars("COLLIE_TRIGGER_ASSIGNEE"),
		},
	}
}

// Config compiles the section into the immutable form the core consumes
func (c *Trigger) Config() model.TriggerConfig {
	return model.TriggerConfig{
		Phrase:   c.Phrase,
		Label:    c.Label,
		Assignee: c.Assignee,
	}
}
