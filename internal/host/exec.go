package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"bennypowers.dev/classwrap/internal/log"
)

// ExecPrinter prints by piping text through an external formatter, such as
// `prettier`. Options are passed as prettier-style flags.
type ExecPrinter struct {
	Command string
	Args    []string
}

// NewExecPrinter parses a command line like "npx prettier"
func NewExecPrinter(command string) (*ExecPrinter, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("empty host command")
	}
	return &ExecPrinter{Command: fields[0], Args: fields[1:]}, nil
}

// Flags renders opts as prettier command-line flags
func (opts PrintOptions) Flags() []string {
	var flags []string
	if opts.Filepath != "" {
		flags = append(flags, "--stdin-filepath", opts.Filepath)
	}
	if opts.Parser != "" {
		flags = append(flags, "--parser", opts.Parser)
	}
	if opts.PrintWidth > 0 {
		flags = append(flags, "--print-width", strconv.Itoa(opts.PrintWidth))
	}
	if opts.TabWidth > 0 {
		flags = append(flags, "--tab-width", strconv.Itoa(opts.TabWidth))
	}
	if opts.UseTabs {
		flags = append(flags, "--use-tabs")
	}
	if opts.SingleQuote {
		flags = append(flags, "--single-quote")
	}
	if opts.JSXSingleQuote {
		flags = append(flags, "--jsx-single-quote")
	}
	return append(flags, "--end-of-line", "lf")
}

// Print runs the command with text on stdin and returns its stdout
func (e *ExecPrinter) Print(ctx context.Context, text string, opts PrintOptions) (string, error) {
	args := append(append([]string{}, e.Args...), opts.Flags()...)
	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("Running %s %s", e.Command, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("%s: %w", e.Command, err)
		}
		return "", fmt.Errorf("%s: %w: %s", e.Command, err, msg)
	}
	return stdout.String(), nil
}
