package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"

	"github.com/m-mizutani/collie/pkg/domain/interfaces"
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type commandTool struct {
	cfg model.ToolConfig
}

// NewCommand creates the subprocess tool adapter. The snapshot JSON is
// written to the process's stdin and the verdict JSON is read from its
// stdout after exit; stderr is kept for diagnostics.
func NewCommand(cfg model.ToolConfig) interfaces.ReviewTool {
	return &commandTool{cfg: cfg}
}

// Invoke runs the configured command once, bounded by the configured timeout
func (t *commandTool) Invoke(ctx context.Context, pr *model.PRContext) (*model.ReviewResult, error) {
	logger := ctxlog.From(ctx)

	payload, err := json.Marshal(pr)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode snapshot",
			goerr.T(types.ErrTagToolTransport),
		)
	}

	timeout := t.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultToolTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name := t.cfg.Command[0]
	args := t.cfg.Command[1:]

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = t.cfg.Dir
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running review tool command",
		"command", name,
		"args", args,
		"timeout", timeout.String(),
	)

	runErr := cmd.Run()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, goerr.New("tool command timed out",
			goerr.T(types.ErrTagToolTransport),
			goerr.V("command", name),
			goerr.V("timeout", timeout.String()),
			goerr.V("stderr", stderr.String()),
		)
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return nil, goerr.New("tool command exited with non-zero status",
				goerr.T(types.ErrTagToolTransport),
				goerr.V("command", name),
				goerr.V("exit_code", exitErr.ExitCode()),
				goerr.V("stderr", stderr.String()),
			)
		}
		return nil, goerr.Wrap(runErr, "failed to run tool command",
			goerr.T(types.ErrTagToolTransport),
			goerr.V("command", name),
		)
	}

	if stderr.Len() > 0 {
		logger.Debug("Tool command wrote diagnostics", "stderr", stderr.String())
	}

	return model.DecodeReviewResult(stdout.Bytes())
}
