package workflow_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	model "github.com/fireup-dev/fireup/pkg/domain/model/workflow"
	"github.com/fireup-dev/fireup/pkg/service/workflow"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// mockRunner records every invoked command and fails or answers according
// to the configured prefixes.
type mockRunner struct {
	calls      []model.Command
	outputs    map[string][]byte
	failures   map[string]error
	gcloudPath string
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		outputs:  map[string][]byte{},
		failures: map[string]error{},
	}
}

func (x *mockRunner) resolve(cmd model.Command) error {
	x.calls = append(x.calls, cmd)
	for prefix, err := range x.failures {
		if strings.HasPrefix(cmd.String(), prefix) {
			return err
		}
	}
	return nil
}

func (x *mockRunner) Run(ctx context.Context, cmd model.Command) error {
	return x.resolve(cmd)
}

func (x *mockRunner) Output(ctx context.Context, cmd model.Command) ([]byte, error) {
	if err := x.resolve(cmd); err != nil {
		return nil, err
	}
	for prefix, out := range x.outputs {
		if strings.HasPrefix(cmd.String(), prefix) {
			return out, nil
		}
	}
	return nil, nil
}

func (x *mockRunner) LookPath(name string) (string, error) {
	if name == "gcloud" && x.gcloudPath != "" {
		return x.gcloudPath, nil
	}
	return "", goerr.New("executable not found", goerr.V("name", name))
}

func (x *mockRunner) count(prefix string) int {
	n := 0
	for _, cmd := range x.calls {
		if strings.HasPrefix(cmd.String(), prefix) {
			n++
		}
	}
	return n
}

func (x *mockRunner) find(prefix string) *model.Command {
	for i, cmd := range x.calls {
		if strings.HasPrefix(cmd.String(), prefix) {
			return &x.calls[i]
		}
	}
	return nil
}

// mockPrompter answers the seed question with a fixed decision.
type mockPrompter struct {
	answer bool
	asked  int
}

func (x *mockPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	x.asked++
	return x.answer, nil
}

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(root, workflow.MarkerFile), []byte("{}"), 0600))
	gt.NoError(t, os.MkdirAll(filepath.Join(root, "scripts"), 0750))
	return root
}

func TestSetupAuthFailureStopsEverything(t *testing.T) {
	runner := newMockRunner()
	runner.failures["firebase projects:list"] = goerr.New("Error: not logged in")
	prompter := &mockPrompter{}

	wf := workflow.New(runner, prompter,
		workflow.WithProjectDir(newProject(t)),
		workflow.WithOutput(&bytes.Buffer{}))

	err := wf.Setup(context.Background())
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("firebase login")
	gt.Equal(t, runner.count("firebase deploy"), 0)
	gt.Equal(t, prompter.asked, 0)
}

func TestSetupMissingMarkerStopsBeforeDeploy(t *testing.T) {
	runner := newMockRunner()
	prompter := &mockPrompter{}

	wf := workflow.New(runner, prompter,
		workflow.WithProjectDir(t.TempDir()), // no firebase.json
		workflow.WithOutput(&bytes.Buffer{}))

	err := wf.Setup(context.Background())
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains(workflow.MarkerFile)
	gt.Equal(t, runner.count("firebase deploy"), 0)
}

func TestSetupOperatorDeclinesSeed(t *testing.T) {
	runner := newMockRunner()
	prompter := &mockPrompter{answer: false}
	var out bytes.Buffer

	wf := workflow.New(runner, prompter,
		workflow.WithProjectDir(newProject(t)),
		workflow.WithOutput(&out))

	gt.NoError(t, wf.Setup(context.Background()))
	gt.Equal(t, prompter.asked, 1)
	gt.Equal(t, runner.count("firebase deploy --only firestore:rules"), 1)
	gt.Equal(t, runner.count("firebase deploy --only firestore:indexes"), 1)
	gt.Equal(t, runner.count("npm install"), 1)
	gt.Equal(t, runner.count("node seed.js"), 0)
	gt.S(t, out.String()).Contains("Setup complete!")
}

func TestSetupSeedWithCredentialDiscovery(t *testing.T) {
	runner := newMockRunner()
	runner.gcloudPath = "/usr/bin/gcloud"
	runner.outputs["gcloud info"] = []byte("/home/operator/.config/gcloud\n")
	prompter := &mockPrompter{answer: true}

	wf := workflow.New(runner, prompter,
		workflow.WithProjectDir(newProject(t)),
		workflow.WithOutput(&bytes.Buffer{}))

	gt.NoError(t, wf.Setup(context.Background()))
	gt.Equal(t, runner.count("node seed.js"), 1)

	seedCmd := runner.find("node seed.js")
	gt.Value(t, seedCmd).NotNil()
	gt.A(t, seedCmd.Env).Length(1)
	gt.Equal(t, seedCmd.Env[0],
		"GOOGLE_APPLICATION_CREDENTIALS=/home/operator/.config/gcloud/application_default_credentials.json")
}

func TestSetupSeedWithoutGcloud(t *testing.T) {
	runner := newMockRunner()
	prompter := &mockPrompter{answer: true}

	wf := workflow.New(runner, prompter,
		workflow.WithProjectDir(newProject(t)),
		workflow.WithOutput(&bytes.Buffer{}))

	gt.NoError(t, wf.Setup(context.Background()))

	seedCmd := runner.find("node seed.js")
	gt.Value(t, seedCmd).NotNil()
	gt.A(t, seedCmd.Env).Length(0)
	gt.Equal(t, runner.count("gcloud info"), 0)
}

func TestSetupDeployFailureStopsRun(t *testing.T) {
	runner := newMockRunner()
	runner.failures["firebase deploy --only firestore:rules"] = goerr.New("PERMISSION_DENIED")
	prompter := &mockPrompter{answer: true}

	wf := workflow.New(runner, prompter,
		workflow.WithProjectDir(newProject(t)),
		workflow.WithOutput(&bytes.Buffer{}))

	err := wf.Setup(context.Background())
	gt.Error(t, err)
	gt.Equal(t, runner.count("firebase deploy --only firestore:indexes"), 0)
	gt.Equal(t, runner.count("npm install"), 0)
	gt.Equal(t, runner.count("node seed.js"), 0)
	gt.Equal(t, prompter.asked, 0)
}

func TestSetupSeedFlagBypassesPrompt(t *testing.T) {
	runner := newMockRunner()
	prompter := &mockPrompter{answer: false}

	wf := workflow.New(runner, prompter,
		workflow.WithProjectDir(newProject(t)),
		workflow.WithSeed(true),
		workflow.WithOutput(&bytes.Buffer{}))

	gt.NoError(t, wf.Setup(context.Background()))
	gt.Equal(t, prompter.asked, 0)
	gt.Equal(t, runner.count("node seed.js"), 1)
}

func TestSetupProjectIDPassedToDeploy(t *testing.T) {
	runner := newMockRunner()

	wf := workflow.New(runner, &mockPrompter{},
		workflow.WithProjectDir(newProject(t)),
		workflow.WithProjectID("demo-app"),
		workflow.WithOutput(&bytes.Buffer{}))

	gt.NoError(t, wf.Setup(context.Background()))
	gt.Equal(t, runner.count("firebase deploy --only firestore:rules --project demo-app"), 1)
	gt.Equal(t, runner.count("firebase deploy --only firestore:indexes --project demo-app"), 1)
}

func TestSetupMissingScriptsDir(t *testing.T) {
	root := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(root, workflow.MarkerFile), []byte("{}"), 0600))

	runner := newMockRunner()
	wf := workflow.New(runner, &mockPrompter{},
		workflow.WithProjectDir(root),
		workflow.WithOutput(&bytes.Buffer{}))

	err := wf.Setup(context.Background())
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("scripts directory")
	gt.Equal(t, runner.count("npm install"), 0)
}

func TestFindProjectRoot(t *testing.T) {
	root := newProject(t)
	nested := filepath.Join(root, "scripts", "deep", "inner")
	gt.NoError(t, os.MkdirAll(nested, 0750))

	for _, start := range []string{root, filepath.Join(root, "scripts"), nested} {
		got := gt.R1(workflow.FindProjectRoot(start)).NoError(t)
		gt.Equal(t, got, root)
	}
}

func TestFindProjectRootNotFound(t *testing.T) {
	gt.R1(workflow.FindProjectRoot(t.TempDir())).Error(t)
}

func TestDeployTargets(t *testing.T) {
	runner := newMockRunner()
	wf := workflow.New(runner, &mockPrompter{},
		workflow.WithProjectDir(newProject(t)),
		workflow.WithOutput(&bytes.Buffer{}))

	gt.NoError(t, wf.Deploy(context.Background(), []workflow.DeployTarget{workflow.TargetIndexes}))
	gt.Equal(t, runner.count("firebase deploy --only firestore:indexes"), 1)
	gt.Equal(t, runner.count("firebase deploy --only firestore:rules"), 0)
}

func TestDeployRejectsUnknownTarget(t *testing.T) {
	wf := workflow.New(newMockRunner(), &mockPrompter{},
		workflow.WithProjectDir(newProject(t)))

	gt.Error(t, wf.Deploy(context.Background(), []workflow.DeployTarget{"functions"}))
}

func TestParseDeployTarget(t *testing.T) {
	gt.Equal(t, gt.R1(workflow.ParseDeployTarget("rules")).NoError(t), workflow.TargetRules)
	gt.Equal(t, gt.R1(workflow.ParseDeployTarget("indexes")).NoError(t), workflow.TargetIndexes)
	gt.R1(workflow.ParseDeployTarget("hosting")).Error(t)
}
