package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/danthegoodman1/icegraph/datastore"
	"github.com/danthegoodman1/icegraph/importer"
	"github.com/danthegoodman1/icegraph/metastore"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Materialize NDJSON vertex and edge files as a graph snapshot",
		Long: "Reads one NDJSON file per label, writes parquet tables to the DATASTORE and registers the manifest.\n" +
			"Without CRDB_DSN or REDIS_ADDR the manifest is only printed.",
		Example: "  icegraph import --name shop --vertex user=users.ndjson --vertex item:sku=items.ndjson \\\n" +
			"    --edge buys:user:item=buys.ndjson --int label",
		RunE: runImport,
	}
	cmd.Flags().String("id", "", "graph object id, generated when empty")
	cmd.Flags().String("name", "", "graph name")
	cmd.Flags().StringArray("vertex", nil, "vertex label as label[:idField]=path")
	cmd.Flags().StringArray("edge", nil, "edge label as label:src:dst[:srcField:dstField]=path")
	cmd.Flags().StringSlice("int", nil, "columns stored as int64 instead of double")
	return cmd
}

func splitSource(flag string) (string, string, error) {
	spec, path, ok := strings.Cut(flag, "=")
	if !ok || spec == "" || path == "" {
		return "", "", fmt.Errorf("expected <label spec>=<path>, got %q", flag)
	}
	return spec, path, nil
}

// parseVertexFlag parses label[:idField]=path
func parseVertexFlag(flag string) (importer.VertexSource, string, error) {
	spec, path, err := splitSource(flag)
	if err != nil {
		return importer.VertexSource{}, "", err
	}
	label, idField, _ := strings.Cut(spec, ":")
	return importer.VertexSource{Label: label, IDField: idField}, path, nil
}

// parseEdgeFlag parses label:src:dst[:srcField:dstField]=path
func parseEdgeFlag(flag string) (importer.EdgeSource, string, error) {
	spec, path, err := splitSource(flag)
	if err != nil {
		return importer.EdgeSource{}, "", err
	}
	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 3:
		return importer.EdgeSource{Label: parts[0], Src: parts[1], Dst: parts[2]}, path, nil
	case 5:
		return importer.EdgeSource{
			Label:    parts[0],
			Src:      parts[1],
			Dst:      parts[2],
			SrcField: parts[3],
			DstField: parts[4],
		}, path, nil
	}
	return importer.EdgeSource{}, "", fmt.Errorf("expected label:src:dst[:srcField:dstField], got %q", spec)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	vertexFlags, _ := cmd.Flags().GetStringArray("vertex")
	edgeFlags, _ := cmd.Flags().GetStringArray("edge")
	intColumns, _ := cmd.Flags().GetStringSlice("int")

	req := importer.Request{ID: id, Name: name, IntColumns: intColumns}
	var files []*os.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	open := func(path string) (*os.File, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error in os.Open: %w", err)
		}
		files = append(files, f)
		return f, nil
	}

	for _, flag := range vertexFlags {
		src, path, err := parseVertexFlag(flag)
		if err != nil {
			return err
		}
		if src.Reader, err = open(path); err != nil {
			return err
		}
		req.Vertices = append(req.Vertices, src)
	}
	for _, flag := range edgeFlags {
		src, path, err := parseEdgeFlag(flag)
		if err != nil {
			return err
		}
		if src.Reader, err = open(path); err != nil {
			return err
		}
		req.Edges = append(req.Edges, src)
	}

	meta, err := connectMeta(ctx)
	if err != nil {
		return err
	}
	if meta == nil {
		logger.Warn().Msg("no catalog configured, the manifest will not be registered")
		meta = metastore.NewMemoryMetaStore()
	}
	defer meta.Shutdown(ctx)

	data, err := datastore.NewDataStoreFromEnv()
	if err != nil {
		return fmt.Errorf("error in datastore.NewDataStoreFromEnv: %w", err)
	}
	defer data.Shutdown(ctx)

	im := &importer.Importer{Meta: meta, Data: data}
	m, err := im.Import(ctx, req)
	if err != nil {
		return fmt.Errorf("error in Importer.Import: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
