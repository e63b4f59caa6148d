package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nyanc/internal/diagfmt"
	"nyanc/internal/token"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] [file.ny|-]",
		Short: "Tokenize a ny source file",
		Long:  `Tokenize breaks down a ny source file into its constituent tokens`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	file, err := s.loadEntry(args)
	if err != nil {
		return s.finish(err)
	}

	var tokens []token.Token
	s.phase("tokenize", func() string {
		tokens = s.db.Tokenize(file)
		return fmt.Sprintf("%d tokens", len(tokens))
	})
	out := cmd.OutOrStdout()
	if format == "json" {
		return s.finish(diagfmt.FormatTokensJSON(out, tokens))
	}
	return s.finish(diagfmt.FormatTokensPretty(out, tokens, s.db.Sources()))
}
