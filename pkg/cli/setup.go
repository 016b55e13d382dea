package cli

import (
	"context"

	"github.com/fireup-dev/fireup/pkg/adapter/execx"
	"github.com/fireup-dev/fireup/pkg/adapter/terminal"
	"github.com/fireup-dev/fireup/pkg/cli/config"
	"github.com/fireup-dev/fireup/pkg/service/workflow"
	"github.com/fireup-dev/fireup/pkg/utils/dryrun"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSetup() *cli.Command {
	var cfg config.Firebase
	var seedYes, seedNo, dryRun bool

	return &cli.Command{
		Name:    "setup",
		Aliases: []string{"s"},
		Usage:   "Run the full provisioning workflow (deploy rules and indexes, install seed tooling, optionally seed)",
		Flags: joinFlags(cfg.Flags(), []cli.Flag{
			&cli.BoolFlag{
				Name:        "seed",
				Usage:       "Seed the database without asking",
				Destination: &seedYes,
			},
			&cli.BoolFlag{
				Name:        "no-seed",
				Usage:       "Skip seeding without asking",
				Destination: &seedNo,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Log external commands instead of executing them",
				Destination: &dryRun,
			},
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			if seedYes && seedNo {
				return goerr.New("--seed and --no-seed are mutually exclusive")
			}

			opts := []workflow.Option{
				workflow.WithProjectDir(cfg.ProjectDir()),
				workflow.WithProjectID(cfg.ProjectID()),
			}
			switch {
			case seedYes:
				opts = append(opts, workflow.WithSeed(true))
			case seedNo:
				opts = append(opts, workflow.WithSeed(false))
			}

			wf := workflow.New(execx.New(), terminal.New(), opts...)
			return wf.Setup(dryrun.With(ctx, dryRun))
		},
	}
}
