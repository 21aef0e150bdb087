// Command protoval compiles message IDL files and generates immutable Go
// value types with builders for them.
//
//	protoval generate --target ./shapes shapes.proto
//	protoval check shapes.proto other.proto
//	protoval describe --format json shapes.proto
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "protoval:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:           "protoval",
		Short:         "Generate immutable Go value types from message IDL files",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every file written")
	rootCmd.AddCommand(generateCmd(), checkCmd(), describeCmd())
	return rootCmd
}
