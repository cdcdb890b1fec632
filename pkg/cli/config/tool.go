package config

import (
	"strings"
	"time"

	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Tool holds the review tool selection and its per-transport parameters
type Tool struct {
	Kind     string
	Endpoint string
	Method   string
	Headers  []string
	Token    string
	Command  []string
	Dir      string
	Timeout  time.Duration
}

// Flags returns CLI flags for tool configuration
func (c *Tool) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tool",
			Usage:       "Review tool to run (mock, remote, command; default mock)",
			Destination: &c.Kind,
			Sources:     cli.EnvVars("COLLIE_TOOL"),
		},
		&cli.StringFlag{
			Name:        "tool-endpoint",
			Usage:       "Endpoint URL of the remote tool",
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("COLLIE_TOOL_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "tool-method",
			Usage:       "HTTP method for the remote tool (default POST)",
			Destination: &c.Method,
			Sources:     cli.EnvVars("COLLIE_TOOL_METHOD"),
		},
		&cli.StringSliceFlag{
			Name:        "tool-header",
			Usage:       "Extra request header for the remote tool as 'Name: value' (repeatable)",
			Destination: &c.Headers,
			Sources:     cli.EnvVars("COLLIE_TOOL_HEADER"),
		},
		&cli.StringFlag{
			Name:        "tool-token",
			Usage:       "Bearer token for the remote tool",
			Destination: &c.Token,
			Sources:     cli.EnvVars("COLLIE_TOOL_TOKEN"),
		},
		&cli.StringSliceFlag{
			Name:        "tool-command",
			Usage:       "Command and arguments of the subprocess tool (repeatable)",
			Destination: &c.Command,
			Sources:     cli.EnvVars("COLLIE_TOOL_COMMAND"),
		},
		&cli.StringFlag{
			Name:        "tool-dir",
			Usage:       "Working directory of the subprocess tool",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("COLLIE_TOOL_DIR"),
		},
		&cli.DurationFlag{
			Name:        "tool-timeout",
			Usage:       "Upper bound on one tool invocation (default 60s)",
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("COLLIE_TOOL_TIMEOUT"),
		},
	}
}

// Validate checks that the selected transport has its required parameters
func (c *Tool) Validate() error {
	switch model.ToolKind(c.kind()) {
	case model.ToolMock:
		return nil

	case model.ToolRemote:
		if c.Endpoint == "" {
			return goerr.New("remote tool requires tool-endpoint",
				goerr.T(types.ErrTagConfig),
			)
		}
		if _, err := c.headerMap(); err != nil {
			return err
		}
		return nil

	case model.ToolCommand:
		if len(c.Command) == 0 {
			return goerr.New("command tool requires tool-command",
				goerr.T(types.ErrTagConfig),
			)
		}
		return nil

	default:
		return goerr.New("unknown tool kind",
			goerr.T(types.ErrTagConfig),
			goerr.V("kind", c.Kind),
		)
	}
}

// Config compiles the section into the immutable form the core consumes
func (c *Tool) Config() (model.ToolConfig, error) {
	if err := c.Validate(); err != nil {
		return model.ToolConfig{}, err
	}

	headers, err := c.headerMap()
	if err != nil {
		return model.ToolConfig{}, err
	}

	return model.ToolConfig{
		Kind:     model.ToolKind(c.kind()),
		Endpoint: c.Endpoint,
		Method:   c.Method,
		Headers:  headers,
		Token:    c.Token,
		Command:  c.Command,
		Dir:      c.Dir,
		Timeout:  c.Timeout,
	}, nil
}

func (c *Tool) kind() string {
	if c.Kind == "" {
		return string(model.ToolMock)
	}
	return c.Kind
}

func (c *Tool) headerMap() (map[string]string, error) {
	if len(c.Headers) == 0 {
		return nil, nil
	}

	headers := make(map[string]string, len(c.Headers))
	for _, h := range c.Headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, goerr.New("malformed tool header, expected 'Name: value'",
				goerr.T(types.ErrTagConfig),
				goerr.V("header", h),
			)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}
