package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/fireup-dev/fireup/pkg/domain/model/workflow"
	"github.com/fireup-dev/fireup/pkg/utils/logging"
	"github.com/fireup-dev/fireup/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// checkAuth verifies the operator is logged in to the firebase CLI before
// anything is deployed. The project listing output itself is discarded.
func (x *Workflow) checkAuth(ctx context.Context, wf *workflow.Context) error {
	if _, err := x.runner.Output(ctx, workflow.Command{
		Name: firebaseCmd,
		Args: []string{"projects:list"},
	}); err != nil {
		return goerr.Wrap(err, "not logged in to Firebase. Run `firebase login` and try again")
	}
	return nil
}

// resolveRoot determines the project root: an explicit directory wins,
// otherwise walk upward from the working directory until the marker file
// appears. The result is the same from any starting directory inside the
// project.
func (x *Workflow) resolveRoot(ctx context.Context, wf *workflow.Context) error {
	root := x.projectDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return goerr.Wrap(err, "failed to get working directory")
		}
		root, err = FindProjectRoot(wd)
		if err != nil {
			return err
		}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve project directory", goerr.V("dir", root))
	}

	wf.Root = abs
	wf.ScriptsDir = filepath.Join(abs, scriptsDirName)
	logging.From(ctx).Debug("resolved project root", "root", wf.Root)
	return nil
}

// FindProjectRoot walks upward from dir until a directory containing the
// marker file is found.
func FindProjectRoot(dir string) (string, error) {
	d := filepath.Clean(dir)
	for {
		if fileExists(filepath.Join(d, MarkerFile)) {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", goerr.New("no "+MarkerFile+" found in this or any parent directory",
				goerr.V("start", dir))
		}
		d = parent
	}
}

func (x *Workflow) checkMarker(ctx context.Context, wf *workflow.Context) error {
	marker := filepath.Join(wf.Root, MarkerFile)
	if !fileExists(marker) {
		return goerr.New("project root has no "+MarkerFile+", wrong directory?",
			goerr.V("root", wf.Root))
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// deploy pushes one configuration category through the firebase CLI. The
// tool's own output is the only diagnostic surfaced on failure.
func (x *Workflow) deploy(target DeployTarget) func(ctx context.Context, wf *workflow.Context) error {
	return func(ctx context.Context, wf *workflow.Context) error {
		args := []string{"deploy", "--only", deploySelectors[target]}
		if x.projectID != "" {
			args = append(args, "--project", x.projectID)
		}

		logging.From(ctx).Info("deploying", "target", target)
		return x.runner.Run(ctx, workflow.Command{
			Name: firebaseCmd,
			Args: args,
			Dir:  wf.Root,
		})
	}
}

// installDeps installs the seed tooling's dependencies quietly.
func (x *Workflow) installDeps(ctx context.Context, wf *workflow.Context) error {
	if info, err := os.Stat(wf.ScriptsDir); err != nil || !info.IsDir() {
		return goerr.New("scripts directory not found", goerr.V("dir", wf.ScriptsDir))
	}

	return x.runner.Run(ctx, workflow.Command{
		Name: npmCmd,
		Args: []string{"install", "--silent", "--no-audit", "--no-fund"},
		Dir:  wf.ScriptsDir,
	})
}

// confirmSeed captures the operator's decision, unless fixed by a flag.
func (x *Workflow) confirmSeed(ctx context.Context, wf *workflow.Context) error {
	if x.seed != nil {
		wf.SeedApproved = *x.seed
		return nil
	}

	approved, err := x.prompter.Confirm(ctx, "Seed the database with sample data?")
	if err != nil {
		return goerr.Wrap(err, "failed to read seed decision")
	}
	wf.SeedApproved = approved
	return nil
}

// runSeed invokes the seeding script. When gcloud is installed, the
// application-default credentials path is derived from its config directory
// and exported to the child only.
func (x *Workflow) runSeed(ctx context.Context, wf *workflow.Context) error {
	if !wf.SeedApproved {
		logging.From(ctx).Info("skipping database seeding")
		return nil
	}

	var env []string
	if path, err := x.runner.LookPath(gcloudCmd); err == nil && path != "" {
		out, err := x.runner.Output(ctx, workflow.Command{
			Name: gcloudCmd,
			Args: []string{"info", "--format=value(config.paths.global_config_dir)"},
		})
		if err != nil {
			return goerr.Wrap(err, "failed to query gcloud config directory")
		}
		if configDir := strings.TrimSpace(string(out)); configDir != "" {
			wf.CredentialsPath = filepath.Join(configDir, credentialsFile)
			env = append(env, credentialsEnv+"="+wf.CredentialsPath)
			logging.From(ctx).Debug("using application default credentials",
				"path", wf.CredentialsPath)
		}
	}

	return x.runner.Run(ctx, workflow.Command{
		Name: nodeCmd,
		Args: []string{seedScript},
		Dir:  wf.ScriptsDir,
		Env:  env,
	})
}

// report prints the completion summary and manual follow-ups.
func (x *Workflow) report(ctx context.Context, wf *workflow.Context) error {
	bold := color.New(color.FgGreen, color.Bold)
	safe.Write(ctx, x.out, []byte("\n"))
	if _, err := bold.Fprintln(x.out, "Setup complete!"); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}

	lines := []string{
		"",
		"Next steps:",
		"  1. Enable the sign-in providers you need in the Firebase console",
		"  2. Review firestore.rules before inviting users",
		"  3. Run `firebase emulators:start` for local development",
		"",
	}
	safe.Write(ctx, x.out, []byte(strings.Join(lines, "\n")))
	return nil
}
