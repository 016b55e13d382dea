// Package workflow orchestrates the provisioning run: authentication check,
// rules/indexes deploy, seed tooling install and optional database seeding.
// Every stage is fail-fast; completed stages are never rolled back.
package workflow

import (
	"context"
	"io"
	"os"

	"github.com/fireup-dev/fireup/pkg/domain/interfaces"
	"github.com/fireup-dev/fireup/pkg/domain/model/workflow"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// MarkerFile marks the project root. Its presence is the only thing
	// checked; the deploy tool reads the contents itself.
	MarkerFile = "firebase.json"

	scriptsDirName  = "scripts"
	seedScript      = "seed.js"
	credentialsFile = "application_default_credentials.json"
	credentialsEnv  = "GOOGLE_APPLICATION_CREDENTIALS"

	firebaseCmd = "firebase"
	gcloudCmd   = "gcloud"
	npmCmd      = "npm"
	nodeCmd     = "node"
)

// DeployTarget selects a category of declarative configuration to deploy.
type DeployTarget string

const (
	TargetRules   DeployTarget = "rules"
	TargetIndexes DeployTarget = "indexes"
)

var deploySelectors = map[DeployTarget]string{
	TargetRules:   "firestore:rules",
	TargetIndexes: "firestore:indexes",
}

// ParseDeployTarget validates an operator-supplied target name.
func ParseDeployTarget(s string) (DeployTarget, error) {
	t := DeployTarget(s)
	if _, ok := deploySelectors[t]; !ok {
		return "", goerr.New("unknown deploy target", goerr.V("target", s))
	}
	return t, nil
}

type Workflow struct {
	runner   interfaces.CommandRunner
	prompter interfaces.Prompter
	out      io.Writer

	projectDir string
	projectID  string
	seed       *bool
}

type Option func(*Workflow)

// WithProjectDir pins the project root instead of searching for the marker.
func WithProjectDir(dir string) Option {
	return func(x *Workflow) { x.projectDir = dir }
}

// WithProjectID passes an explicit --project to the deploy tool.
func WithProjectID(id string) Option {
	return func(x *Workflow) { x.projectID = id }
}

// WithSeed fixes the seeding decision, bypassing the operator prompt.
func WithSeed(seed bool) Option {
	return func(x *Workflow) { x.seed = &seed }
}

func WithOutput(w io.Writer) Option {
	return func(x *Workflow) { x.out = w }
}

func New(runner interfaces.CommandRunner, prompter interfaces.Prompter, opts ...Option) *Workflow {
	x := &Workflow{
		runner:   runner,
		prompter: prompter,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Setup runs the full provisioning sequence.
func (x *Workflow) Setup(ctx context.Context) error {
	wf := &workflow.Context{}

	return workflow.Sequence(ctx, wf,
		workflow.Stage{Name: "check-auth", Run: x.checkAuth},
		workflow.Stage{Name: "resolve-root", Run: x.resolveRoot},
		workflow.Stage{Name: "check-marker", Run: x.checkMarker},
		workflow.Stage{Name: "deploy-rules", Run: x.deploy(TargetRules)},
		workflow.Stage{Name: "deploy-indexes", Run: x.deploy(TargetIndexes)},
		workflow.Stage{Name: "install-deps", Run: x.installDeps},
		workflow.Stage{Name: "confirm-seed", Run: x.confirmSeed},
		workflow.Stage{Name: "seed", Run: x.runSeed},
		workflow.Stage{Name: "report", Run: x.report},
	)
}

// Deploy runs only the deploy stages for the given targets.
func (x *Workflow) Deploy(ctx context.Context, targets []DeployTarget) error {
	stages := []workflow.Stage{
		{Name: "check-auth", Run: x.checkAuth},
		{Name: "resolve-root", Run: x.resolveRoot},
		{Name: "check-marker", Run: x.checkMarker},
	}
	for _, target := range targets {
		if _, ok := deploySelectors[target]; !ok {
			return goerr.New("unknown deploy target", goerr.V("target", target))
		}
		stages = append(stages, workflow.Stage{
			Name: "deploy-" + string(target),
			Run:  x.deploy(target),
		})
	}

	return workflow.Sequence(ctx, &workflow.Context{}, stages...)
}
