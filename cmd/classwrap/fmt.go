package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"bennypowers.dev/classwrap/internal/config"
	"bennypowers.dev/classwrap/internal/format"
	"bennypowers.dev/classwrap/internal/host"
	"bennypowers.dev/classwrap/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// optionFlags maps command line flags to config option keys
var optionFlags = []struct {
	flag, key string
}{
	{"print-width", "printWidth"},
	{"tab-width", "tabWidth"},
	{"use-tabs", "useTabs"},
	{"single-quote", "singleQuote"},
	{"jsx-single-quote", "jsxSingleQuote"},
	{"end-of-line", "endOfLine"},
	{"parser", "parser"},
	{"range-start", "rangeStart"},
	{"range-end", "rangeEnd"},
	{"custom-attributes", "customAttributes"},
	{"custom-functions", "customFunctions"},
	{"ending-position", "endingPosition"},
	{"syntax-transformation", "syntaxTransformation"},
}

// ErrUnformatted is returned by --check when a file would change
var ErrUnformatted = errors.New("some files are not formatted")

type fmtOptions struct {
	write         bool
	list          bool
	check         bool
	stdinFilepath string
	hostCommand   string
	jobs          int
	ignore        []string
	// flags are the option values given on the command line
	flags map[string]any
}

func fmtCmd() *cobra.Command {
	var o fmtOptions

	cmd := &cobra.Command{
		Use:   "fmt [flags] [path...]",
		Short: "Format class names in files",
		Long: `Format class names in HTML, JSX and CSS files.

By default, fmt prints the formatted source to stdout.
Use -w to write the result back to the source file.
Use -l to list files that would be changed.
Use --check to print a diff and fail when any file would change.

Options are read from the nearest .prettierrc or package.json "prettier"
field; flags override them.`,
		Example: `  # Format a file and print to stdout
  classwrap fmt index.html

  # Format a directory in place
  classwrap fmt -w ./src

  # Check formatting in CI
  classwrap fmt --check --ignore 'dist/**' .

  # Format stdin
  cat Card.jsx | classwrap fmt --stdin-filepath Card.jsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.flags = changedOptions(cmd.Flags())
			if o.stdinFilepath != "" {
				if len(args) > 0 {
					return fmt.Errorf("--stdin-filepath does not take path arguments")
				}
				return runStdin(cmd.Context(), o, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			if len(args) == 0 {
				return fmt.Errorf("requires at least 1 path, or --stdin-filepath")
			}
			return runFmt(cmd.Context(), o, args, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&o.write, "write", "w", false, "Write result to source file instead of stdout")
	f.BoolVarP(&o.list, "list", "l", false, "List files that would be formatted")
	f.BoolVar(&o.check, "check", false, "Print a diff and exit non-zero when files would change")
	f.StringVar(&o.stdinFilepath, "stdin-filepath", "", "Format stdin as if it were the file at this path")
	f.StringVar(&o.hostCommand, "host-command", "", "External formatter to print through, e.g. \"prettier\"")
	f.IntVarP(&o.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of files to format concurrently")
	f.StringSliceVar(&o.ignore, "ignore", nil, "Glob of paths to skip (repeatable)")

	defaults := config.Defaults()
	f.Int("print-width", defaults.PrintWidth, "Line width to wrap at")
	f.Int("tab-width", defaults.TabWidth, "Columns per indentation level")
	f.Bool("use-tabs", false, "Indent with tabs")
	f.Bool("single-quote", false, "Prefer single quotes in JavaScript")
	f.Bool("jsx-single-quote", false, "Prefer single quotes in JSX attributes")
	f.String("end-of-line", string(defaults.EndOfLine), "Line ending: lf, crlf, cr or auto")
	f.String("parser", "", "Parser to use instead of inferring from the file name")
	f.Int("range-start", 0, "Only rewrite class names after this byte offset")
	f.Int("range-end", 0, "Only rewrite class names before this byte offset")
	f.StringSlice("custom-attributes", nil, "Additional class name attributes")
	f.StringSlice("custom-functions", nil, "Additional class name functions")
	f.String("ending-position", string(defaults.EndingPosition), "Width policy: relative, absolute or absolute-with-indent")
	f.Bool("syntax-transformation", false, "Turn wrapped JSX attribute strings into template literals")

	return cmd
}

// changedOptions collects the option flags set on the command line
func changedOptions(fs *pflag.FlagSet) map[string]any {
	out := map[string]any{}
	for _, of := range optionFlags {
		if !fs.Changed(of.flag) {
			continue
		}
		var value any
		var err error
		switch fs.Lookup(of.flag).Value.Type() {
		case "int":
			value, err = fs.GetInt(of.flag)
		case "bool":
			value, err = fs.GetBool(of.flag)
		case "stringSlice":
			value, err = fs.GetStringSlice(of.flag)
		default:
			value, err = fs.GetString(of.flag)
		}
		if err == nil {
			out[of.key] = value
		}
	}
	return out
}

func (o fmtOptions) formatter() (*format.Formatter, error) {
	registry := host.Builtin()
	if o.hostCommand != "" {
		printer, err := host.NewExecPrinter(o.hostCommand)
		if err != nil {
			return nil, err
		}
		registry = registry.WithPrinter(printer.Print)
	}
	return format.New(registry), nil
}

func runStdin(ctx context.Context, o fmtOptions, stdin io.Reader, stdout io.Writer) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	source, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	r := formatOne(ctx, f, o, o.stdinFilepath, string(source))
	if r.err != nil {
		return r.err
	}
	return report(o, r, stdout)
}

// result is the outcome of formatting one file
type result struct {
	path      string
	source    string
	formatted string
	err       error
}

func (r result) changed() bool {
	return r.err == nil && r.formatted != r.source
}

func runFmt(ctx context.Context, o fmtOptions, paths []string, stdout io.Writer) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	files, err := collectFiles(paths, o.ignore)
	if err != nil {
		return err
	}
	log.Debug("Formatting %d files", len(files))

	results := make([]result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(o.jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			source, err := os.ReadFile(path) //nolint:gosec // G304: paths are given by the user
			if err != nil {
				results[i] = result{path: path, err: err}
				return nil
			}
			results[i] = formatOne(ctx, f, o, path, string(source))
			if o.write && results[i].changed() {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, []byte(results[i].formatted), info.Mode().Perm()); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errs []error
	for _, r := range results {
		if r.err != nil {
			log.Error("%s: %v", r.path, r.err)
			errs = append(errs, fmt.Errorf("%s: %w", r.path, r.err))
			continue
		}
		if err := report(o, r, stdout); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func formatOne(ctx context.Context, f *format.Formatter, o fmtOptions, path, source string) result {
	opts, err := config.Resolve(path, o.flags)
	if err != nil {
		return result{path: path, source: source, err: err}
	}
	var formatted string
	if o.check {
		formatted, err = f.Check(ctx, path, source, opts)
	} else {
		formatted, err = f.Format(ctx, path, source, opts)
	}
	return result{path: path, source: source, formatted: formatted, err: err}
}

// report writes what the mode asks for about one formatted file
func report(o fmtOptions, r result, stdout io.Writer) error {
	switch {
	case o.check:
		if !r.changed() {
			return nil
		}
		_, _ = fmt.Fprint(stdout, format.Diff(r.path, r.source, r.formatted))
		return fmt.Errorf("%s: %w", r.path, ErrUnformatted)
	case o.list:
		if r.changed() {
			_, _ = fmt.Fprintln(stdout, r.path)
		}
	case !o.write:
		_, _ = fmt.Fprint(stdout, r.formatted)
	}
	return nil
}
