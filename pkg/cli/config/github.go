package config

import (
	"os"

	"github.com/m-mizutani/collie/pkg/domain/interfaces"
	"github.com/m-mizutani/collie/pkg/domain/types"
	githubinfra "github.com/m-mizutani/collie/pkg/infra/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds platform credential configuration. Either a token or GitHub
// App credentials may be set; neither is also valid, in which case only the
// read-free output channels (summary, stdout) can succeed.
type GitHub struct {
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKeyFile string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("COLLIE_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("COLLIE_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("COLLIE_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "Path to the GitHub App private key file",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("COLLIE_GITHUB_PRIVATE_KEY"),
		},
	}
}

// Validate rejects contradictory credential settings
func (c *GitHub) Validate() error {
	hasApp := c.AppID != 0 || c.InstallationID != 0 || c.PrivateKeyFile != ""

	if c.Token != "" && hasApp {
		return goerr.New("github-token and GitHub App credentials are mutually exclusive",
			goerr.T(types.ErrTagConfig),
		)
	}
	if hasApp && (c.AppID == 0 || c.InstallationID == 0 || c.PrivateKeyFile == "") {
		return goerr.New("GitHub App auth requires app ID, installation ID and private key",
			goerr.T(types.ErrTagConfig),
			goerr.V("app_id", c.AppID),
			goerr.V("installation_id", c.InstallationID),
		)
	}
	return nil
}

// Configure builds the platform client, or returns nil when no credential is
// configured. The missing credential surfaces later as an authentication
// error on any write channel, not here.
func (c *GitHub) Configure() (interfaces.GitHubClient, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch {
	case c.Token != "":
		return githubinfra.NewClient(c.Token), nil

	case c.AppID != 0:
		key, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key",
				goerr.T(types.ErrTagConfig),
				goerr.V("path", c.PrivateKeyFile),
			)
		}
		return githubinfra.NewAppClient(c.AppID, c.InstallationID, key)

	default:
		return nil, nil
	}
}
