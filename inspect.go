package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/storage"
	"github.com/danthegoodman1/icegraph/store"
	"github.com/danthegoodman1/icegraph/utils"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the labels of a graph with their sizes and side info",
		RunE:  runInspect,
	}
	cmd.Flags().String("backend", utils.STORAGE_BACKEND, "storage backend")
	cmd.Flags().String("endpoint", utils.GRAPH_STORE_ENDPOINT, "graph store endpoint")
	cmd.Flags().String("graph", utils.GRAPH_OBJECT_ID, "graph object id")
	return cmd
}

func runInspect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	backend, _ := cmd.Flags().GetString("backend")
	endpoint, _ := cmd.Flags().GetString("endpoint")
	graphID, _ := cmd.Flags().GetString("graph")
	if graphID == "" {
		return fmt.Errorf("--graph or GRAPH_OBJECT_ID is required")
	}

	client, err := store.Connect(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("error in store.Connect: %w", err)
	}
	defer client.Close(ctx)
	frag, err := client.GetFragment(ctx, fragment.ObjectID(graphID))
	if err != nil {
		return fmt.Errorf("error in GetFragment: %w", err)
	}

	cfg := storage.Config{Backend: backend, Endpoint: endpoint, GraphID: graphID}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tLABEL\tSIZE\tSIDE INFO")
	for l := 0; l < frag.VertexLabelNum(); l++ {
		name := frag.VertexLabelName(fragment.LabelID(l))
		ns, err := storage.NewNodeStorage(ctx, cfg, name)
		if err != nil {
			return fmt.Errorf("error in storage.NewNodeStorage(%s): %w", name, err)
		}
		fmt.Fprintf(w, "vertex\t%s\t%s\t%s\n", name, strconv.FormatInt(ns.Size(), 10), ns.GetSideInfo())
	}
	for l := 0; l < frag.EdgeLabelNum(); l++ {
		name := frag.EdgeLabelName(fragment.LabelID(l))
		es, err := storage.NewEdgeStorage(ctx, cfg, name)
		if err != nil {
			return fmt.Errorf("error in storage.NewEdgeStorage(%s): %w", name, err)
		}
		fmt.Fprintf(w, "edge\t%s\t%s\t%s\n", name, strconv.FormatInt(es.Size(), 10), es.GetSideInfo())
	}
	return w.Flush()
}
