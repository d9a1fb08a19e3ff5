package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/citation"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/store"
)

// RegisterGraphFlags adds the graph command's own flags.
func RegisterGraphFlags(fs *pflag.FlagSet) {
	fs.Int("top", 10, "Number of highest-degree vertices to list")
}

// RunGraph prints the citation graph summary of a corpus.
func RunGraph(ctx context.Context, flags *pflag.FlagSet, streams Streams) error {
	format, err := outputFormat(flags)
	if err != nil {
		return err
	}
	settings, logger, err := setup(flags, streams)
	if err != nil {
		return err
	}

	var st store.Store
	if settings.Store.Path != "" {
		st, err = openStore(ctx, settings.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	c, err := loadCorpus(ctx, flags, st, logger, false)
	if err != nil {
		return err
	}

	top, _ := flags.GetInt("top")
	sum := citation.Summarize(citation.Build(c), c, top)

	if format == FormatJSON {
		enc := json.NewEncoder(streams.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	fmt.Fprintf(streams.Out, "nodes: %d\nedges: %d\ndangling: %d\nisolated: %d\n",
		sum.Nodes, sum.Edges, sum.Dangling, sum.Isolated)
	for _, nd := range sum.Top {
		fmt.Fprintf(streams.Out, "%s\t%d\n", nd.ID, nd.Degree)
	}
	return nil
}
