package workflow

import (
	"context"
	"strings"

	"github.com/fireup-dev/fireup/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Command describes one external process invocation. Env entries are
// appended to the inherited environment of the child only.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func (x Command) String() string {
	return strings.Join(append([]string{x.Name}, x.Args...), " ")
}

// Context carries the state resolved while a provisioning run progresses.
// Stages fill it in; nothing outside the run reads it afterwards.
type Context struct {
	Root            string
	ScriptsDir      string
	SeedApproved    bool
	CredentialsPath string
}

// Stage is one guarded step of a provisioning run.
type Stage struct {
	Name string
	Run  func(ctx context.Context, wf *Context) error
}

// Sequence executes stages in order and stops at the first failure.
// Already-completed stages are never rolled back.
func Sequence(ctx context.Context, wf *Context, stages ...Stage) error {
	for _, stage := range stages {
		logging.From(ctx).Debug("running stage", "stage", stage.Name)

		if err := stage.Run(ctx, wf); err != nil {
			return goerr.Wrap(err, "provisioning stage failed", goerr.V("stage", stage.Name))
		}
	}

	return nil
}
