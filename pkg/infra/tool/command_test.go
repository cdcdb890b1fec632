package tool_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/collie/pkg/infra/tool"
	"github.com/m-mizutani/goerr/v2"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests rely on /bin/sh")
	}
}

func shellTool(t *testing.T, script string, timeout time.Duration) *model.ToolConfig {
	t.Helper()
	return &model.ToolConfig{
		Kind:    model.ToolCommand,
		Command: []string{"/bin/sh", "-c", script},
		Timeout: timeout,
	}
}

func TestCommand_Success(t *testing.T) {
	requireShell(t)

	// The snapshot arrives on stdin; the verdict leaves on stdout.
	stdinCopy := filepath.Join(t.TempDir(), "stdin.json")
	script := `cat > ` + stdinCopy + `; echo '{"summary_markdown":"cmd summary","review_decision":"comment","review_body":"ok"}'`

	cmd := tool.NewCommand(*shellTool(t, script, 10*time.Second))

	result, err := cmd.Invoke(context.Background(), snapshotFixture())
	gt.NoError(t, err)
	gt.Equal(t, result.ReviewDecision, model.DecisionComment)
	gt.Equal(t, result.SummaryMarkdown, "cmd summary")

	received, err := os.ReadFile(stdinCopy)
	gt.NoError(t, err)
	gt.String(t, string(received)).Contains(`"number":123`)
}

func TestCommand_NonZeroExit(t *testing.T) {
	requireShell(t)

	// Exit 1 with no output is a transport error even before decoding
	cmd := tool.NewCommand(*shellTool(t, "exit 1", 10*time.Second))

	_, err := cmd.Invoke(context.Background(), snapshotFixture())
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagToolTransport))
	gt.Equal(t, goerr.Values(err)["exit_code"], 1)
}

func TestCommand_StderrPreserved(t *testing.T) {
	requireShell(t)

	cmd := tool.NewCommand(*shellTool(t, `echo "model file missing" >&2; exit 2`, 10*time.Second))

	_, err := cmd.Invoke(context.Background(), snapshotFixture())
	gt.Error(t, err)
	stderr, ok := goerr.Values(err)["stderr"].(string)
	gt.True(t, ok)
	gt.String(t, stderr).Contains("model file missing")
}

func TestCommand_MalformedOutput(t *testing.T) {
	requireShell(t)

	cmd := tool.NewCommand(*shellTool(t, `echo 'this is not json'`, 10*time.Second))

	_, err := cmd.Invoke(context.Background(), snapshotFixture())
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagToolContract))
}

func TestCommand_Timeout(t *testing.T) {
	requireShell(t)

	cmd := tool.NewCommand(*shellTool(t, "sleep 10", 100*time.Millisecond))

	start := time.Now()
	_, err := cmd.Invoke(context.Background(), snapshotFixture())
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagToolTransport))
	gt.True(t, time.Since(start) < 5*time.Second)
}
