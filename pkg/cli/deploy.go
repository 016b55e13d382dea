package cli

import (
	"context"

	"github.com/fireup-dev/fireup/pkg/adapter/execx"
	"github.com/fireup-dev/fireup/pkg/adapter/terminal"
	"github.com/fireup-dev/fireup/pkg/cli/config"
	"github.com/fireup-dev/fireup/pkg/service/workflow"
	"github.com/fireup-dev/fireup/pkg/utils/dryrun"
	"github.com/urfave/cli/v3"
)

func cmdDeploy() *cli.Command {
	var cfg config.Firebase
	var only []string
	var dryRun bool

	return &cli.Command{
		Name:    "deploy",
		Aliases: []string{"d"},
		Usage:   "Deploy Firestore security rules and index definitions",
		Flags: joinFlags(cfg.Flags(), []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "only",
				Usage:       "Deploy target category [rules|indexes] (repeatable, default: both)",
				Destination: &only,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Log external commands instead of executing them",
				Destination: &dryRun,
			},
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			targets := []workflow.DeployTarget{workflow.TargetRules, workflow.TargetIndexes}
			if len(only) > 0 {
				targets = targets[:0]
				for _, name := range only {
					target, err := workflow.ParseDeployTarget(name)
					if err != nil {
						return err
					}
					targets = append(targets, target)
				}
			}

			wf := workflow.New(execx.New(), terminal.New(),
				workflow.WithProjectDir(cfg.ProjectDir()),
				workflow.WithProjectID(cfg.ProjectID()),
			)
			return wf.Deploy(dryrun.With(ctx, dryRun), targets)
		},
	}
}
