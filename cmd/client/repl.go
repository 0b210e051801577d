package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const prompt = "> "

// lineReader yields one REPL line at a time, io.EOF when input is exhausted.
type lineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	out     io.Writer
	scanner *bufio.Scanner
}

func (r *scannerReader) ReadLine() (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// repl reads commands from in until EXIT, end of input, or ctx is done.
func (s *session) repl(ctx context.Context, in lineReader) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !s.execute(ctx, line) {
			return nil
		}
	}
}

// runInteractive uses a raw terminal with line editing and history when
// stdin is a terminal, and plain line scanning otherwise.
func (s *session) runInteractive(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return s.repl(ctx, &scannerReader{
			out:     s.Out,
			scanner: bufio.NewScanner(os.Stdin),
		})
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("configuring terminal: %w", err)
	}
	defer term.Restore(fd, state)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, prompt)

	out := s.Out
	s.Out = t
	defer func() {
		s.Out = out
	}()

	fmt.Fprintln(t, hintColor(replUsage))
	return s.repl(ctx, t)
}
