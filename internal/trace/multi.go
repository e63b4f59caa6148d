package trace

import "errors"

type fanout []Tracer

// Fanout sends each event to every tracer. The tracers are expected to
// share one level, as New builds them; the first one's level is reported.
func Fanout(tracers ...Tracer) Tracer {
	return fanout(tracers)
}

func (f fanout) Emit(ev *Event) {
	for _, t := range f {
		cp := *ev
		t.Emit(&cp)
	}
}

func (f fanout) Level() Level {
	if len(f) == 0 {
		return LevelOff
	}
	return f[0].Level()
}

func (f fanout) Close() error {
	errs := make([]error, 0, len(f))
	for _, t := range f {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}
