package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Firebase holds the deploy-side settings shared by setup and deploy.
type Firebase struct {
	projectDir string
	projectID  string
}

func (x *Firebase) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project-dir",
			Aliases:     []string{"C"},
			Usage:       "Project root directory (default: search upward for firebase.json)",
			Category:    "Firebase",
			Destination: &x.projectDir,
			Sources:     cli.EnvVars("FIREUP_PROJECT_DIR"),
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Firebase project ID passed to the deploy tool",
			Category:    "Firebase",
			Destination: &x.projectID,
			Sources:     cli.EnvVars("FIREUP_PROJECT"),
		},
	}
}

func (x Firebase) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project_dir", x.projectDir),
		slog.String("project_id", x.projectID),
	)
}

func (x *Firebase) ProjectDir() string { return x.projectDir }
func (x *Firebase) ProjectID() string  { return x.projectID }
