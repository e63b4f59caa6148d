package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nyanc/internal/project"
	"nyanc/internal/source"
)

// settings — флаги командной строки, дополненные значениями из nyan.toml.
// Явно заданный флаг всегда важнее манифеста.
type settings struct {
	color           bool
	quiet           bool
	timings         bool
	maxDiagnostics  int
	maxSyntaxErrors uint
	diagFormat      string

	traceOutput   string
	traceLevel    string
	traceFormat   string
	traceMode     string
	traceRingSize int

	cpuProfile string
	memProfile string

	manifest *project.Manifest
	workDir  string
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	flags := cmd.Flags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		s.color = true
	case "off":
	case "auto":
		s.color = isTerminal(os.Stderr)
	default:
		return s, fmt.Errorf("invalid --color %q (expected auto|on|off)", colorFlag)
	}

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.maxSyntaxErrors, err = flags.GetUint("max-syntax-errors"); err != nil {
		return s, fmt.Errorf("failed to get max-syntax-errors flag: %w", err)
	}
	if s.diagFormat, err = flags.GetString("diagnostics-format"); err != nil {
		return s, fmt.Errorf("failed to get diagnostics-format flag: %w", err)
	}
	if s.traceOutput, err = flags.GetString("trace"); err != nil {
		return s, fmt.Errorf("failed to get trace flag: %w", err)
	}
	if s.traceLevel, err = flags.GetString("trace-level"); err != nil {
		return s, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	if s.traceFormat, err = flags.GetString("trace-format"); err != nil {
		return s, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	if s.traceMode, err = flags.GetString("trace-mode"); err != nil {
		return s, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	if s.traceRingSize, err = flags.GetInt("trace-ring-size"); err != nil {
		return s, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	if s.cpuProfile, err = flags.GetString("cpu-profile"); err != nil {
		return s, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if s.memProfile, err = flags.GetString("mem-profile"); err != nil {
		return s, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return s, fmt.Errorf("failed to get working directory: %w", err)
	}
	// пути файлов канонические, поэтому и базу приводим к тому же виду
	if canonical, cerr := source.Canonicalize(cwd); cerr == nil {
		cwd = canonical
	}
	s.workDir = cwd
	m, ok, err := project.Discover(cwd)
	if err != nil {
		return s, err
	}
	if !ok {
		return s, nil
	}
	s.manifest = m
	if m.MaxDiagnostics > 0 && !flags.Changed("max-diagnostics") {
		s.maxDiagnostics = m.MaxDiagnostics
	}
	if m.TraceLevel != "" && !flags.Changed("trace-level") {
		s.traceLevel = m.TraceLevel
	}
	if m.TraceFormat != "" && !flags.Changed("trace-format") {
		s.traceFormat = m.TraceFormat
	}
	return s, nil
}

// entryPath выбирает входной файл: аргумент, иначе [build].entry.
func (s settings) entryPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if s.manifest != nil && s.manifest.Entry != "" {
		return s.manifest.Entry, nil
	}
	return "", fmt.Errorf("no input file: pass a path or set [build].entry in %s", project.ManifestName)
}

// baseDir — каталог, относительно которого печатаются пути:
// корень проекта, а без манифеста рабочий каталог.
func (s settings) baseDir() string {
	if s.manifest != nil {
		return s.manifest.Root
	}
	return s.workDir
}
