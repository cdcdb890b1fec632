package config

import (
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Output holds the publisher configuration: enabled channels and caps
type Output struct {
	Channels    []string
	MaxComments int64
	SummaryPath string
	StdoutFull  bool
}

// Flags returns CLI flags for output configuration
func (c *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "channel",
			Usage:       "Output channel to enable (summary, stdout, comment, review; repeatable, default all)",
			Destination: &c.Channels,
			Sources:     cli.EnvVars("COLLIE_CHANNELS"),
		},
		&cli.Int64Flag{
			Name:        "max-comments",
			Usage:       "Cap on inline comments attached to one review (default 30)",
			Destination: &c.MaxComments,
			Sources:     cli.EnvVars("COLLIE_MAX_COMMENTS"),
		},
		&cli.StringFlag{
			Name:        "summary-path",
			Usage:       "File backing the run's summary surface",
			Destination: &c.SummaryPath,
			Sources:     cli.EnvVars("COLLIE_SUMMARY_PATH", "GITHUB_STEP_SUMMARY"),
		},
		&cli.BoolFlag{
			Name:        "stdout-full",
			Usage:       "Write the full result JSON to stdout instead of the summary",
			Value:       false,
			Destination: &c.StdoutFull,
			Sources:     cli.EnvVars("COLLIE_STDOUT_FULL"),
		},
	}
}

// Validate rejects unknown channel names and malformed caps
func (c *Output) Validate() error {
	for _, ch := range c.Channels {
		switch model.Channel(ch) {
		case model.ChannelSummary, model.ChannelStdout, model.ChannelComment, model.ChannelReview:
		default:
			return goerr.New("unknown output channel",
				goerr.T(types.ErrTagConfig),
				goerr.V("channel", ch),
			)
		}
	}
	if c.MaxComments < 0 {
		return goerr.New("max-comments must not be negative",
			goerr.T(types.ErrTagConfig),
			goerr.V("max_comments", c.MaxComments),
		)
	}
	return nil
}

// Config compiles the section into the immutable form the core consumes
func (c *Output) Config() (model.OutputConfig, error) {
	if err := c.Validate(); err != nil {
		return model.OutputConfig{}, err
	}

	channels := make([]model.Channel, 0, len(c.Channels))
	for _, ch := range c.Channels {
		channels = append(channels, model.Channel(ch))
	}
	if len(channels) == 0 {
		channels = append(channels, model.AllChannels...)
	}

	maxComments := int(c.MaxComments)
	if maxComments == 0 {
		maxComments = 30
	}

	return model.OutputConfig{
		Channels:    channels,
		MaxComments: maxComments,
		SummaryPath: c.SummaryPath,
		StdoutFull:  c.StdoutFull,
	}, nil
}
