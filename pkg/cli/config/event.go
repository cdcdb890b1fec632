package config

import (
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Event holds the trigger event source: the event name and payload file as
// delivered to an action-style run.
type Event struct {
	Name  string
	Path  string
	RunID string
}

// Flags returns CLI flags for event configuration
func (c *Event) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "event-name",
			Usage:       "Name of the event that started the run (e.g. pull_request)",
			Destination: &c.Name,
			Sources:     cli.EnvVars("COLLIE_EVENT_NAME", "GITHUB_EVENT_NAME"),
		},
		&cli.StringFlag{
			Name:        "event-path",
			Usage:       "Path to the event payload JSON file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("COLLIE_EVENT_PATH", "GITHUB_EVENT_PATH"),
		},
		&cli.StringFlag{
			Name:        "run-id",
			Usage:       "Run identifier embedded into the snapshot (generated when empty)",
			Destination: &c.RunID,
			Sources:     cli.EnvVars("COLLIE_RUN_ID", "GITHUB_RUN_ID"),
		},
	}
}

// Validate checks that an event source is configured
func (c *Event) Validate() error {
	if c.Name == "" || c.Path == "" {
		return goerr.New("event-name and event-path are required",
			goerr.T(types.ErrTagConfig),
			goerr.V("event_name", c.Name),
			goerr.V("event_path", c.Path),
		)
	}
	return nil
}
