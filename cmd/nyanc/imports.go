package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"nyanc/internal/analyzer"
	"nyanc/internal/diag"
	"nyanc/internal/driver"
)

func newImportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "imports [flags] [file.ny|-]",
		Short: "Show the import graph of a ny module",
		Long: `Imports resolves every import item reachable from the entry module and
prints the modules in build order, each with its direct dependencies.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImports,
	}
}

func runImports(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	root, err := s.loadEntry(args)
	if err != nil {
		return s.finish(err)
	}
	var g *analyzer.Graph
	s.phase("imports", func() string {
		g = analyzer.Imports(s.db, root)
		return fmt.Sprintf("%d modules, %d missing", len(g.Files), len(g.Missing))
	})
	return s.finish(writeGraph(cmd.OutOrStdout(), s.db, g, s.settings.baseDir()))
}

func writeGraph(w io.Writer, db *driver.Database, g *analyzer.Graph, baseDir string) error {
	display := func(n analyzer.NodeID) string {
		path, _ := db.Sources().Path(g.Files[n])
		return diag.DisplayPath(path, baseDir)
	}

	var sb strings.Builder
	order := g.BuildOrder()
	if order == nil {
		sb.WriteString("# import cycle: modules listed in discovery order\n")
		for i := range g.Files {
			order = append(order, analyzer.NodeID(i))
		}
	}
	for _, n := range order {
		sb.WriteString(display(n))
		sb.WriteByte('\n')
		for _, dep := range g.Edges[n] {
			fmt.Fprintf(&sb, "  -> %s\n", display(dep))
		}
	}
	for _, m := range g.Missing {
		from, _ := db.Sources().Path(m.From)
		fmt.Fprintf(&sb, "missing: %s (imported by %s)\n", m.Path, diag.DisplayPath(from, baseDir))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
