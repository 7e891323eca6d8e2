package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/internal/version"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	if err := fang.Execute(context.Background(), rootCmd(),
		fang.WithVersion(version.Full()),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "classwrap",
		Short: "Wrap long class name lists",
		Long: `classwrap reformats long class name lists in HTML, JSX and CSS so that
no line exceeds the print width, after the host formatter has run.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.AddCommand(fmtCmd(), lspCmd())
	return cmd
}
