package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nyanc/internal/version"
)

// newRootCmd собирает дерево команд; каждый вызов даёт свежие флаги.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nyanc",
		Short:         "ny language front-end driver",
		Long:          `nyanc loads, tokenizes and parses ny sources and walks their imports`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newImportsCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to keep (0 = unlimited)")
	pf.Uint("max-syntax-errors", 0, "maximum syntax errors reported per file (0 = unlimited)")
	pf.String("diagnostics-format", "pretty", "diagnostics output format (pretty|short|json)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the trace ring")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
