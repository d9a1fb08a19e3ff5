package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/StevenLOL/techknacq-tk/internal/app"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/config"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "techknacq"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing. SIGINT and
// SIGTERM cancel the running command.
func Execute(version, build, programName string, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return newRootCommand(version, programName, app.Streams{Out: os.Stdout, Err: os.Stderr}, args).ExecuteContext(ctx)
}

func newRootCommand(version, programName string, streams app.Streams, args []string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Technical term extraction",
		Long:         "Extracts technical terms from document titles and ranks them by how densely the documents using them cite one another.",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate(`{{.Version}}
`)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract and rank terms from a corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunExtract(cmd.Context(), cmd.Flags(), streams)
		},
	}
	config.RegisterFlags(extractCmd.Flags())
	app.RegisterCorpusFlags(extractCmd.Flags())
	app.RegisterOutputFlags(extractCmd.Flags())

	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Summarize a corpus citation graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunGraph(cmd.Context(), cmd.Flags(), streams)
		},
	}
	config.RegisterCommonFlags(graphCmd.Flags())
	app.RegisterCorpusFlags(graphCmd.Flags())
	app.RegisterOutputFlags(graphCmd.Flags())
	app.RegisterGraphFlags(graphCmd.Flags())

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List or show stored extraction runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunRuns(cmd.Context(), cmd.Flags(), streams)
		},
	}
	config.RegisterCommonFlags(runsCmd.Flags())
	app.RegisterOutputFlags(runsCmd.Flags())
	app.RegisterRunsFlags(runsCmd.Flags())

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored corpus as JSONL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunExport(cmd.Context(), cmd.Flags(), streams)
		},
	}
	config.RegisterCommonFlags(exportCmd.Flags())

	rootCmd.AddCommand(extractCmd, graphCmd, runsCmd, exportCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}
