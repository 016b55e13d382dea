package execx_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fireup-dev/fireup/pkg/adapter/execx"
	"github.com/fireup-dev/fireup/pkg/domain/model/workflow"
	"github.com/fireup-dev/fireup/pkg/utils/dryrun"
	"github.com/m-mizutani/gt"
)

func TestOutputCapturesStdout(t *testing.T) {
	runner := execx.New()
	out := gt.R1(runner.Output(context.Background(), workflow.Command{
		Name: "sh",
		Args: []string{"-c", "echo hello"},
	})).NoError(t)

	gt.Equal(t, strings.TrimSpace(string(out)), "hello")
}

func TestRunPropagatesExitStatus(t *testing.T) {
	runner := execx.New()
	err := runner.Run(context.Background(), workflow.Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
	})

	gt.Error(t, err)
}

func TestRunScopedEnvAndDir(t *testing.T) {
	dir := t.TempDir()
	runner := execx.New()

	out := gt.R1(runner.Output(context.Background(), workflow.Command{
		Name: "sh",
		Args: []string{"-c", "echo $FIREUP_TEST_VALUE:$(pwd)"},
		Dir:  dir,
		Env:  []string{"FIREUP_TEST_VALUE=scoped"},
	})).NoError(t)

	gt.S(t, string(out)).Contains("scoped:")
}

func TestDryRunSkipsExecution(t *testing.T) {
	ctx := dryrun.With(context.Background(), true)
	runner := execx.New()

	gt.NoError(t, runner.Run(ctx, workflow.Command{
		Name: "sh",
		Args: []string{"-c", "exit 1"},
	}))

	out := gt.R1(runner.Output(ctx, workflow.Command{
		Name: "sh",
		Args: []string{"-c", "exit 1"},
	})).NoError(t)
	gt.Nil(t, out)
}

func TestLookPath(t *testing.T) {
	runner := execx.New()
	path := gt.R1(runner.LookPath("sh")).NoError(t)
	gt.S(t, path).Contains("sh")

	gt.R1(runner.LookPath("no-such-binary-fireup")).Error(t)
}
