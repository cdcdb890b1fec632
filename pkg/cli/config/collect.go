package config

import (
	"github.com/m-mizutani/collie/pkg/domain/model"
	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Collect holds the snapshot bounds: what the collector embeds and how much
type Collect struct {
	IncludeContents bool
	MaxFiles        int64
	MaxFileBytes    int64
	GuidelineFile   string
	ExtraFileGlobs  []string
	WorkDir         string
}

// Flags returns CLI flags for collect configuration
func (c *Collect) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "include-contents",
			Usage:       "Embed full file contents into the snapshot",
			Value:       false,
			Destination: &c.IncludeContents,
			Sources:     cli.EnvVars("COLLIE_INCLUDE_CONTENTS"),
		},
		&cli.Int64Flag{
			Name:        "max-files",
			Usage:       "Cap on changed files embedded into the snapshot (default 100)",
			Destination: &c.MaxFiles,
			Sources:     cli.EnvVars("COLLIE_MAX_FILES"),
		},
		&cli.Int64Flag{
			Name:        "max-file-bytes",
			Usage:       "Cap on a single embedded file's size in bytes (default 1MiB)",
			Destination: &c.MaxFileBytes,
			Sources:     cli.EnvVars("COLLIE_MAX_FILE_BYTES"),
		},
		&cli.StringFlag{
			Name:        "guideline-file",
			Usage:       "Checkout-relative path of a review guideline document",
			Destination: &c.GuidelineFile,
			Sources:     cli.EnvVars("COLLIE_GUIDELINE_FILE"),
		},
		&cli.StringSliceFlag{
			Name:        "extra-files",
			Usage:       "Glob pattern of checkout files to embed (repeatable)",
			Destination: &c.ExtraFileGlobs,
			Sources:     cli.EnvVars("COLLIE_EXTRA_FILES"),
		},
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Checkout directory (default current directory)",
			Destination: &c.WorkDir,
			Sources:     cli.EnvVars("COLLIE_WORK_DIR"),
		},
	}
}

// Validate rejects malformed bounds
func (c *Collect) Validate() error {
	if c.MaxFiles < 0 || c.MaxFileBytes < 0 {
		return goerr.New("snapshot caps must not be negative",
			goerr.T(types.ErrTagConfig),
			goerr.V("max_files", c.MaxFiles),
			goerr.V("max_file_bytes", c.MaxFileBytes),
		)
	}
	return nil
}

// Config compiles the section into the immutable form the core consumes.
// Unset bounds get their built-in defaults here, after the config file had
// its chance to fill them.
func (c *Collect) Config() model.ContextConfig {
	cfg := model.ContextConfig{
		IncludeContents: c.IncludeContents,
		MaxFiles:        int(c.MaxFiles),
		MaxFileBytes:    c.MaxFileBytes,
		GuidelineFile:   c.GuidelineFile,
		ExtraFileGlobs:  c.ExtraFileGlobs,
		WorkDir:         c.WorkDir,
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 100
	}
	if cfg.MaxFileBytes == 0 {
		cfg.MaxFileBytes = 1 << 20
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	return cfg
}
