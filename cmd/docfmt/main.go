package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:           "docfmt",
		Short:         "Convert documents and data between formats",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log conversion details to stderr")

	root.AddCommand(convertCmd(&verbose))
	root.AddCommand(formatsCmd())
	root.AddCommand(serveCmd(&verbose))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
