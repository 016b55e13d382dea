// Package terminal implements the operator prompt over stdin/stdout.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fireup-dev/fireup/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type Prompter struct {
	in  io.Reader
	out io.Writer
}

var _ interfaces.Prompter = &Prompter{}

func New() *Prompter {
	return &Prompter{in: os.Stdin, out: os.Stdout}
}

func NewWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Confirm asks a yes/no question. Only "y" or "Y" approves; anything else,
// including EOF, declines.
func (x *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprintf(x.out, "%s [y/N]: ", question); err != nil {
		return false, goerr.Wrap(err, "failed to write prompt")
	}

	line, err := bufio.NewReader(x.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, goerr.Wrap(err, "failed to read answer")
	}

	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}
