package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter runs the interactive half of the out-of-band login: it shows
// the authorization URL and returns the verifier code the user pastes back.
type Prompter interface {
	Prompt(ctx context.Context, authURL string) (string, error)
}

type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p TerminalPrompter) Prompt(ctx context.Context, authURL string) (string, error) {
	fmt.Fprintf(p.Out, "Open this URL in a browser and authorize the application:\n\n\t%s\n\nEnter verifier: ", authURL)

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		code := strings.TrimSpace(r.line)
		if code == "" {
			if r.err != nil && !errors.Is(r.err, io.EOF) {
				return "", fmt.Errorf("reading verifier: %w", r.err)
			}
			return "", errors.New("no verifier entered")
		}
		return code, nil
	}
}
