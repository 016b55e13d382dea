package interfaces

import (
	"context"

	"github.com/fireup-dev/fireup/pkg/domain/model/workflow"
)

// CommandRunner abstracts external process execution so the provisioning
// workflow can be tested without the real CLI tools installed.
type CommandRunner interface {
	// Run executes the command with the operator's terminal attached.
	Run(ctx context.Context, cmd workflow.Command) error
	// Output executes the command and captures its stdout.
	Output(ctx context.Context, cmd workflow.Command) ([]byte, error)
	// LookPath reports the absolute path of an executable, if installed.
	LookPath(name string) (string, error)
}

// Prompter asks the operator a single yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// SeedStore writes seed documents into a document database.
type SeedStore interface {
	Put(ctx context.Context, collection, id string, doc map[string]any) error
	Close() error
}
