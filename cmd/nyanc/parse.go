package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nyanc/internal/analyzer"
	"nyanc/internal/diagfmt"
	"nyanc/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] [file.ny|-]",
		Short: "Parse a ny source file and output its syntax tree",
		Long: `Parse builds the syntax tree of a ny source file. With --imports every
module reachable through import items is parsed as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|msgpack|none)")
	cmd.Flags().Bool("imports", false, "also parse imported modules")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "msgpack", "none":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	withImports, err := cmd.Flags().GetBool("imports")
	if err != nil {
		return fmt.Errorf("failed to get imports flag: %w", err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	root, err := s.loadEntry(args)
	if err != nil {
		return s.finish(err)
	}

	files := []source.FileID{root}
	if withImports {
		s.phase("imports", func() string {
			files = analyzer.Imports(s.db, root).Files
			return fmt.Sprintf("%d modules", len(files))
		})
	} else {
		s.phase("parse", func() string {
			return fmt.Sprintf("%d nodes", s.db.AST(root).Tree.NodeCount())
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "msgpack":
		return s.finish(s.db.EncodeSnapshot(out))
	case "none":
		return s.finish(nil)
	}

	for idx, file := range files {
		if len(files) > 1 && !s.settings.quiet {
			path, _ := s.db.Sources().Path(file)
			if idx > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", path)
		}
		parsed := s.db.AST(file)
		if err := diagfmt.FormatASTTree(out, parsed.Tree, parsed.Root, s.db.Sources()); err != nil {
			return s.finish(err)
		}
	}
	return s.finish(nil)
}
