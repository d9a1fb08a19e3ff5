package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/store"
)

// RegisterRunsFlags adds the runs command's flags.
func RegisterRunsFlags(fs *pflag.FlagSet) {
	fs.String("id", "", "Show one run (\"latest\" for the newest)")
	fs.Int("limit", 20, "Maximum number of runs to list")
}

// RunRuns lists stored runs or prints one run's terms.
func RunRuns(ctx context.Context, flags *pflag.FlagSet, streams Streams) error {
	format, err := outputFormat(flags)
	if err != nil {
		return err
	}
	settings, _, err := setup(flags, streams)
	if err != nil {
		return err
	}
	if settings.Store.Path == "" {
		return fmt.Errorf("--db is required")
	}

	st, err := openStore(ctx, settings.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	id, _ := flags.GetString("id")
	if id != "" {
		var run store.Run
		if id == "latest" {
			run, err = st.LatestRun(ctx)
		} else {
			run, err = st.GetRun(ctx, id)
		}
		if err != nil {
			return err
		}
		return printRun(streams, format, run)
	}

	limit, _ := flags.GetInt("limit")
	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if format == FormatJSON {
		enc := json.NewEncoder(streams.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	for _, r := range runs {
		fmt.Fprintf(streams.Out, "%s\t%s\t%s\tdocs=%d\tmax=%d\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Mode, r.Docs, r.MaxTerms)
	}
	return nil
}

func printRun(streams Streams, format string, run store.Run) error {
	if format == FormatJSON {
		enc := json.NewEncoder(streams.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}
	fmt.Fprintf(streams.Out, "run %s (%s, %d docs)\n", run.ID, run.Mode, run.Docs)
	for _, t := range run.Terms {
		fmt.Fprintf(streams.Out, "%d\t%s\t%.4f\n", t.Rank, t.Phrase, t.Value)
	}
	return nil
}
