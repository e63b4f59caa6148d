package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"nyanc/internal/diag"
	"nyanc/internal/diagfmt"
	"nyanc/internal/driver"
	"nyanc/internal/observ"
	"nyanc/internal/prof"
	"nyanc/internal/source"
	"nyanc/internal/trace"
)

// errDiagnostics is returned when the session reported errors; the
// diagnostics themselves are already printed.
var errDiagnostics = errors.New("compilation failed")

// session is one CLI invocation: settings, tracer and database.
type session struct {
	cmd      *cobra.Command
	settings settings
	db       *driver.Database
	trace    trace.Session
	cleanup  func()
	span     *trace.Span
	timer    *observ.Timer
	profiler *prof.Profiler
}

func openSession(cmd *cobra.Command) (*session, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	profiler, err := prof.Start(prof.Config{CPUPath: s.cpuProfile, MemPath: s.memProfile})
	if err != nil {
		return nil, err
	}
	ts, cleanup, err := setupTracing(cmd, s)
	if err != nil {
		_ = profiler.Stop()
		return nil, err
	}
	ctx, span := trace.Start(cmd.Context(), trace.ScopeSession, "nyanc "+cmd.Name())
	cmd.SetContext(ctx)

	db := driver.New(
		driver.WithTracing(ctx),
		driver.WithMaxDiagnostics(s.maxDiagnostics),
		driver.WithMaxSyntaxErrors(s.maxSyntaxErrors),
	)
	sess := &session{cmd: cmd, settings: s, db: db, trace: ts, cleanup: cleanup, span: span, timer: observ.NewTimer(), profiler: profiler}
	sess.reportManifest()
	return sess, nil
}

// reportManifest предупреждает о ключах nyan.toml, которые мы не понимаем.
func (s *session) reportManifest() {
	m := s.settings.manifest
	if m == nil || len(m.Unknown) == 0 {
		return
	}
	id, err := s.db.Load(m.Path)
	if err != nil {
		return
	}
	for _, key := range m.Unknown {
		diag.ReportWarning(s.db.Reporter(), diag.ProjManifest, source.Span{File: id},
			fmt.Sprintf("unknown manifest key %q", key)).Emit()
	}
}

// phase times fn as a named step of the command.
func (s *session) phase(name string, fn func() string) {
	idx := s.timer.Begin(name)
	s.timer.End(idx, fn())
}

// loadEntry loads the input file; "-" reads the source from stdin.
func (s *session) loadEntry(args []string) (source.FileID, error) {
	idx := s.timer.Begin("load")
	defer s.timer.End(idx, "")
	path, err := s.settings.entryPath(args)
	if err != nil {
		return 0, err
	}
	if path == "-" {
		text, err := io.ReadAll(s.cmd.InOrStdin())
		if err != nil {
			return 0, fmt.Errorf("failed to read stdin: %w", err)
		}
		return s.db.AddVirtual("stdin"+source.Extension, string(text)), nil
	}
	id, err := s.db.Load(path)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// dumpRing печатает хвост трассы, сузив его до файлов с ошибками.
func (s *session) dumpRing() {
	w := s.cmd.ErrOrStderr()
	filter := trace.Filter{MaxScope: trace.ScopeFile, Paths: s.failingPaths()}
	fmt.Fprintln(w, "-- recent trace events --")
	if n := s.trace.Ring.Overwritten(); n > 0 {
		fmt.Fprintf(w, "(%d older events overwritten)\n", n)
	}
	if _, err := s.trace.Ring.Dump(w, trace.FormatText, filter); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

// failingPaths lists the files that carry error diagnostics.
func (s *session) failingPaths() []string {
	var paths []string
	for _, d := range s.db.Diagnostics().Items() {
		if d.Severity != diag.SevError {
			continue
		}
		if p, ok := s.db.Sources().Path(d.Primary.File); ok && !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// finish prints diagnostics, closes the tracer and turns reported errors
// into errDiagnostics. On failure the trace ring is dumped to stderr.
func (s *session) finish(runErr error) error {
	bag := s.db.Diagnostics()
	if bag.Len() > 0 {
		bag.Sort()
		bag.Dedup()
		if err := s.printDiagnostics(bag); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr == nil && bag.HasErrors() {
		runErr = errDiagnostics
	}
	if s.settings.timings {
		fmt.Fprint(s.cmd.ErrOrStderr(), s.timer.Summary())
	}

	if runErr != nil {
		s.span.End(runErr.Error())
		if s.trace.Ring != nil {
			s.dumpRing()
		}
	} else {
		s.span.End("")
	}
	s.cleanup()
	if err := s.profiler.Stop(); err != nil {
		fmt.Fprintf(s.cmd.ErrOrStderr(), "profiling: %v\n", err)
	}
	return runErr
}

func (s *session) printDiagnostics(bag *diag.Bag) error {
	w := s.cmd.ErrOrStderr()
	baseDir := s.settings.baseDir()
	switch s.settings.diagFormat {
	case "json":
		return diagfmt.JSON(w, bag, s.db.Sources(), diagfmt.JSONOpts{
			IncludePositions: true,
			BaseDir:          baseDir,
			IncludeNotes:     true,
		})
	case "short":
		out := diag.FormatShort(bag.Items(), s.db.Sources(), baseDir, !s.settings.quiet)
		if out == "" {
			return nil
		}
		_, err := io.WriteString(w, out+"\n")
		return err
	case "pretty", "":
		return diagfmt.Pretty(w, bag, s.db.Sources(), diagfmt.PrettyOpts{
			Color:     s.settings.color,
			Context:   2,
			BaseDir:   baseDir,
			ShowNotes: !s.settings.quiet,
		})
	default:
		return fmt.Errorf("unknown diagnostics format: %s", s.settings.diagFormat)
	}
}
