package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nyanc/internal/trace"
)

// setupTracing builds the tracer described by s and attaches it to the
// command context. The returned cleanup closes its outputs.
func setupTracing(cmd *cobra.Command, s settings) (trace.Session, func(), error) {
	level, err := trace.ParseLevel(s.traceLevel)
	if err != nil {
		return trace.Session{}, nil, fmt.Errorf("invalid trace level: %w", err)
	}

	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return trace.Session{Tracer: trace.Nop}, func() {}, nil
	}

	mode, err := trace.ParseMode(s.traceMode)
	if err != nil {
		return trace.Session{}, nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(s.traceFormat)
	if err != nil {
		return trace.Session{}, nil, err
	}

	sess, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: s.traceOutput,
		RingSize:   s.traceRingSize,
	})
	if err != nil {
		return trace.Session{}, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), sess.Tracer))

	cleanup := func() {
		if err := sess.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}
	return sess, cleanup, nil
}
