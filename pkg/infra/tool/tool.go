// Package tool provides the review tool adapters. Three implementations
// share the ReviewTool contract: an in-process deterministic reviewer, a
// remote HTTP backend, and a local subprocess. The variant is selected once
// at configuration time.
package tool

import (
	"github.com/m-mizutani/collie/pkg/domain/interfaces"
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// New selects and constructs the configured tool adapter
func New(cfg model.ToolConfig) (interfaces.ReviewTool, error) {
	switch cfg.Kind {
	case model.ToolMock:
		return NewMock(), nil
	case model.ToolRemote:
		return NewRemote(cfg), nil
	case model.ToolCommand:
		return NewCommand(cfg), nil
	default:
		return nil, goerr.New("unknown tool kind",
			goerr.T(types.ErrTagConfig),
			goerr.V("kind", string(cfg.Kind)),
		)
	}
}
