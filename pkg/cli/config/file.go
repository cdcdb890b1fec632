package config

import (
	"os"
	"time"

	"github.com/m-mizutani/collie/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is the optional TOML configuration file. Its values fill only the
// fields that flags and environment variables left unset, so the precedence
// is flag > env > file > default.
type File struct {
	Trigger struct {
		Phrase   string `toml:"phrase"`
		Label    string `toml:"label"`
		Assignee string `toml:"assignee"`
	} `toml:"trigger"`

	Collect struct {
		IncludeContents bool     `toml:"include_contents"`
		MaxFiles        int64    `toml:"max_files"`
		MaxFileBytes    int64    `toml:"max_file_bytes"`
		GuidelineFile   string   `toml:"guideline_file"`
		ExtraFileGlobs  []string `toml:"extra_file_globs"`
		WorkDir         string   `toml:"work_dir"`
	} `toml:"collect"`

	Tool struct {
		Kind     string            `toml:"kind"`
		Endpoint string            `toml:"endpoint"`
		Method   string            `toml:"method"`
		Headers  map[string]string `toml:"headers"`
		Token    string            `toml:"token"`
		Command  []string          `toml:"command"`
		Dir      string            `toml:"dir"`
		Timeout  string            `toml:"timeout"`
	} `toml:"tool"`

	Output struct {
		Channels    []string `toml:"channels"`
		MaxComments int64    `toml:"max_comments"`
		SummaryPath string   `toml:"summary_path"`
		StdoutFull  bool     `toml:"stdout_full"`
	} `toml:"output"`
}

// LoadFile parses a TOML configuration file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file",
			goerr.T(types.ErrTagConfig),
			goerr.V("path", path),
		)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file",
			goerr.T(types.ErrTagConfig),
			goerr.V("path", path),
		)
	}

	return &f, nil
}

// Apply fills unset fields of the flag sections from the file
func (f *File) Apply(trigger *Trigger, collect *Collect, tool *Tool, output *Output) error {
	fillString(&trigger.Phrase, f.Trigger.Phrase)
	fillString(&trigger.Label, f.Trigger.Label)
	fillString(&trigger.Assignee, f.Trigger.Assignee)

	if !collect.IncludeContents && f.Collect.IncludeContents {
		collect.IncludeContents = true
	}
	fillInt(&collect.MaxFiles, f.Collect.MaxFiles)
	fillInt(&collect.MaxFileBytes, f.Collect.MaxFileBytes)
	fillString(&collect.GuidelineFile, f.Collect.GuidelineFile)
	if len(collect.ExtraFileGlobs) == 0 {
		collect.ExtraFileGlobs = f.Collect.ExtraFileGlobs
	}
	fillString(&collect.WorkDir, f.Collect.WorkDir)

	fillString(&tool.Kind, f.Tool.Kind)
	fillString(&tool.Endpoint, f.Tool.Endpoint)
	fillString(&tool.Method, f.Tool.Method)
	fillString(&tool.Token, f.Tool.Token)
	fillString(&tool.Dir, f.Tool.Dir)
	if len(tool.Command) == 0 {
		tool.Command = f.Tool.Command
	}
	if len(tool.Headers) == 0 {
		for name, value := range f.Tool.Headers {
			tool.Headers = append(tool.Headers, name+": "+value)
		}
	}
	if f.Tool.Timeout != "" && tool.Timeout == 0 {
		d, err := time.ParseDuration(f.Tool.Timeout)
		if err != nil {
			return goerr.Wrap(err, "invalid tool timeout in config file",
				goerr.T(types.ErrTagConfig),
				goerr.V("timeout", f.Tool.Timeout),
			)
		}
		tool.Timeout = d
	}

	if len(output.Channels) == 0 {
		output.Channels = f.Output.Channels
	}
	fillInt(&output.MaxComments, f.Output.MaxComments)
	fillString(&output.SummaryPath, f.Output.SummaryPath)
	if !output.StdoutFull && f.Output.StdoutFull {
		output.StdoutFull = true
	}

	return nil
}

func fillString(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

func fillInt(dst *int64, v int64) {
	if *dst == 0 && v != 0 {
		*dst = v
	}
}
