// Package execx runs external CLI tools (firebase, gcloud, npm, node) as
// synchronous child processes.
package execx

import (
	"context"
	"os"
	"os/exec"

	"github.com/fireup-dev/fireup/pkg/domain/interfaces"
	"github.com/fireup-dev/fireup/pkg/domain/model/workflow"
	"github.com/fireup-dev/fireup/pkg/utils/dryrun"
	"github.com/fireup-dev/fireup/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type Runner struct{}

var _ interfaces.CommandRunner = &Runner{}

func New() *Runner {
	return &Runner{}
}

// Run executes the command with the operator's terminal attached, so the
// external tool's own output and prompts pass through untouched.
func (x *Runner) Run(ctx context.Context, cmd workflow.Command) error {
	if dryrun.IsDryRun(ctx) {
		logging.From(ctx).Info("dry-run: skipping command", "command", cmd.String())
		return nil
	}

	// #nosec G204
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		return goerr.Wrap(err, "command failed", goerr.V("command", cmd.String()))
	}
	return nil
}

// Output executes the command and captures stdout. Stderr still goes to the
// operator's terminal.
func (x *Runner) Output(ctx context.Context, cmd workflow.Command) ([]byte, error) {
	if dryrun.IsDryRun(ctx) {
		logging.From(ctx).Info("dry-run: skipping command", "command", cmd.String())
		return nil, nil
	}

	// #nosec G204
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	c.Stderr = os.Stderr

	out, err := c.Output()
	if err != nil {
		return nil, goerr.Wrap(err, "command failed", goerr.V("command", cmd.String()))
	}
	return out, nil
}

func (x *Runner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
