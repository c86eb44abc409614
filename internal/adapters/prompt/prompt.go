// Package prompt implements the operator confirmation gate.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
	"golang.org/x/term"
)

// Prompter asks yes/no questions on a line-oriented reader.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	logger ports.Logger
}

// New creates a Prompter reading answers from in and writing questions to out.
func New(in io.Reader, out io.Writer, log ports.Logger) *Prompter {
	return &Prompter{in: in, out: out, logger: log}
}

// Confirm writes question and waits for an answer. Only "y" and "yes" accept.
// A stdin that is not a terminal declines without reading.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if !interactive(p.in) {
		p.logger.Warn("Standard input is not a terminal, pass --yes to install without confirmation")
		return false, nil
	}

	if _, err := fmt.Fprintf(p.out, "%s [y/N] ", question); err != nil {
		return false, errors.Join(domain.ErrConfirmationFailed, err)
	}

	type answer struct {
		line string
		err  error
	}
	answers := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(p.in).ReadString('\n')
		answers <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)
		return false, ctx.Err()
	case a := <-answers:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, errors.Join(domain.ErrConfirmationFailed, a.err)
		}
		if errors.Is(a.err, io.EOF) && a.line == "" {
			_, _ = fmt.Fprintln(p.out)
		}
		return Accepts(a.line), nil
	}
}

// Accepts reports whether answer is an affirmative reply.
func Accepts(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

type fder interface {
	Fd() uintptr
}

func interactive(in io.Reader) bool {
	f, ok := in.(fder)
	if !ok {
		return true
	}
	//nolint:gosec // file descriptors fit in int
	return term.IsTerminal(int(f.Fd()))
}
