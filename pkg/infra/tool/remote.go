package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/collie/pkg/domain/interfaces"
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const defaultToolTimeout = 60 * time.Second

// maxErrorBodyBytes bounds how much of a failed response is kept for diagnostics
const maxErrorBodyBytes = 4096

type remoteTool struct {
	cfg        model.ToolConfig
	httpClient *http.Client
}

// NewRemote creates the HTTP tool adapter. One review is one request: the
// snapshot JSON as body, the verdict JSON as response.
func NewRemote(cfg model.ToolConfig) interfaces.ReviewTool {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultToolTimeout
	}

	return &remoteTool{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Invoke issues a single request to the configured endpoint
func (t *remoteTool) Invoke(ctx context.Context, pr *model.PRContext) (*model.ReviewResult, error) {
	payload, err := json.Marshal(pr)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode snapshot",
			goerr.T(types.ErrTagToolTransport),
		)
	}

	method := t.cfg.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, t.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create tool request",
			goerr.T(types.ErrTagToolTransport),
			goerr.V("endpoint", t.cfg.Endpoint),
		)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range t.cfg.Headers {
		req.Header.Set(k, v)
	}
	if t.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+t.cfg.Token)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "tool endpoint unreachable",
			goerr.T(types.ErrTagToolTransport),
			goerr.V("endpoint", t.cfg.Endpoint),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, goerr.New("tool endpoint returned non-success status",
			goerr.T(types.ErrTagToolTransport),
			goerr.V("endpoint", t.cfg.Endpoint),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(snippet)),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read tool response",
			goerr.T(types.ErrTagToolTransport),
			goerr.V("endpoint", t.cfg.Endpoint),
		)
	}

	return model.DecodeReviewResult(body)
}
