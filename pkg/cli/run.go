package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/collie/pkg/cli/config"
	"github.com/m-mizutani/collie/pkg/controller/action"
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/infra/tool"
	"github.com/m-mizutani/collie/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

func cmdRun() *cli.Command {
	var (
		eventCfg   config.Event
		githubCfg  config.GitHub
		triggerCfg config.Trigger
		collectCfg config.Collect
		toolCfg    config.Tool
		outputCfg  config.Output
		configFile string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML config file filling unset flags",
			Destination: &configFile,
			Sources:     cli.EnvVars("COLLIE_CONFIG"),
		},
	}
	flags = append(flags, eventCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, triggerCfg.Flags()...)
	flags = append(flags, collectCfg.Flags()...)
	flags = append(flags, toolCfg.Flags()...)
	flags = append(flags, outputCfg.Flags()...)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run one review cycle for one pull request event",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if configFile != "" {
				file, err := config.LoadFile(configFile)
				if err != nil {
					return err
				}
				if err := file.Apply(&triggerCfg, &collectCfg, &toolCfg, &outputCfg); err != nil {
					return err
				}
				logger.Debug("Applied config file", "path", configFile)
			}

			if err := eventCfg.Validate(); err != nil {
				return err
			}
			if err := collectCfg.Validate(); err != nil {
				return err
			}
			toolConfig, err := toolCfg.Config()
			if err != nil {
				return err
			}
			outputConfig, err := outputCfg.Config()
			if err != nil {
				return err
			}

			githubClient, err := githubCfg.Configure()
			if err != nil {
				return err
			}
			if githubClient == nil {
				logger.Warn("No GitHub credential configured, write channels will fail")
			}

			reviewTool, err := tool.New(toolConfig)
			if err != nil {
				return err
			}

			event, err := action.ParseEventFile(eventCfg.Name, eventCfg.Path)
			if err != nil {
				return err
			}
			event.RunID = eventCfg.RunID

			logger.Info("Starting review run",
				slog.String("event", eventCfg.Name),
				slog.String("tool", string(toolConfig.Kind)),
			)

			reviewUC := usecase.NewReview(
				usecase.NewCollector(githubClient, collectCfg.Config()),
				reviewTool,
				usecase.NewPublisher(githubClient, outputConfig),
				triggerCfg.Config(),
			)

			report, err := reviewUC.Run(ctx, event)
			if err != nil {
				return err
			}

			printOutcome(report)
			return nil
		},
	}
}

// printOutcome writes the one-line run outcome to stderr, keeping stdout for
// the publisher's stdout channel.
func printOutcome(report *model.RunReport) {
	switch report.Outcome {
	case model.OutcomeCompleted:
		color.New(color.FgGreen).Fprintln(color.Error, "✔ review completed")
	case model.OutcomeSkipped:
		fmt.Fprintf(color.Error, "%s review skipped: %s\n", color.YellowString("∅"), report.Reason)
	case model.OutcomeUnsupported:
		fmt.Fprintf(color.Error, "%s nothing to do: %s\n", color.YellowString("∅"), report.Reason)
	}
}
