// Package observability owns the process-wide telemetry backends: Uptrace
// tracing, Pyroscope profiling and the pprof side server.
package observability

import (
	"context"
	"errors"

	"github.com/riskibarqy/football-standings/internal/config"
	"github.com/riskibarqy/football-standings/internal/platform/logging"
)

// Runtime holds the shutdown hooks of every started backend.
type Runtime struct {
	logger   *logging.Logger
	stoppers []stopper
}

type stopper struct {
	name string
	stop func(context.Context) error
}

// Start brings up each enabled backend. A failure stops whatever already
// started before the error is returned.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger.Named("observability")}

	shutdownTracing, err := startUptrace(cfg, rt.logger)
	if err != nil {
		return nil, err
	}
	rt.add("uptrace", shutdownTracing)

	stopProfiler, err := startPyroscope(cfg, rt.logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}
	rt.add("pyroscope", stopProfiler)

	rt.add("pprof", startPprofServer(cfg, rt.logger))
	return rt, nil
}

func (rt *Runtime) add(name string, stop func(context.Context) error) {
	if stop == nil {
		return
	}
	rt.stoppers = append(rt.stoppers, stopper{name: name, stop: stop})
}

// Shutdown stops backends in reverse start order and joins their errors.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	if rt == nil {
		return nil
	}

	var errs []error
	for i := len(rt.stoppers) - 1; i >= 0; i-- {
		s := rt.stoppers[i]
		if err := s.stop(ctx); err != nil {
			rt.logger.ErrorContext(ctx, "observability backend shutdown failed", "backend", s.name, "error", err)
			errs = append(errs, err)
		}
	}
	rt.stoppers = nil
	return errors.Join(errs...)
}
