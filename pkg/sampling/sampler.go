// Package sampling drives the query, display, persist and sleep loop.
package sampling

import (
	"context"
	"io"
	"time"

	"emperror.dev/errors"
	log "github.com/sirupsen/logrus"

	"ProcSampler/pkg/collecting"
)

// Collector produces one complete sample per call.
type Collector interface {
	Collect(ctx context.Context) (collecting.Sample, error)
	Close() error
}

// Sink persists samples. A nil Sink means console-only.
type Sink interface {
	Write(s collecting.Sample) error
	Close() error
}

// Sampler runs until its context is cancelled or a sample fails.
type Sampler struct {
	collector Collector
	sink      Sink
	console   io.Writer
	delay     Delay
	logger    *log.Entry
	sleep     func(ctx context.Context, d time.Duration) bool
	samples   int
}

// Option customizes a Sampler.
type Option func(*Sampler)

// WithSink persists every sample after it is printed.
func WithSink(s Sink) Option {
	return func(sm *Sampler) { sm.sink = s }
}

// WithConsole sets where sample lines are printed.
func WithConsole(w io.Writer) Option {
	return func(sm *Sampler) { sm.console = w }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Entry) Option {
	return func(sm *Sampler) { sm.logger = l }
}

// WithSleep replaces the timer based wait. The function returns false when
// ctx ended before d elapsed.
func WithSleep(fn func(ctx context.Context, d time.Duration) bool) Option {
	return func(sm *Sampler) { sm.sleep = fn }
}

// New creates a sampler. The sampler owns collector and sink and releases
// them in Close.
func New(collector Collector, delay Delay, opts ...Option) *Sampler {
	s := &Sampler{
		collector: collector,
		delay:     delay,
		logger:    log.NewEntry(log.StandardLogger()),
		sleep:     sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run samples until ctx is cancelled, which returns nil, or until a query
// or a write fails, which returns that error. Nothing is retried.
func (s *Sampler) Run(ctx context.Context) error {
	start := time.Now()
	for {
		if ctx.Err() != nil {
			s.finish(start)
			return nil
		}

		sample, err := s.collector.Collect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.finish(start)
				return nil
			}
			return errors.WithDetails(err, "samples", s.samples)
		}

		printLine(s.console, sample)

		if s.sink != nil {
			if err := s.sink.Write(sample); err != nil {
				return errors.WithDetails(err, "samples", s.samples)
			}
		}
		s.samples++

		d := s.delay.Next()
		s.logger.Tracef("Sample %d recorded, next in %v", s.samples, d)
		if !s.sleep(ctx, d) {
			s.finish(start)
			return nil
		}
	}
}

func (s *Sampler) finish(start time.Time) {
	s.logger.WithField("samples", s.samples).Infof("Sampling stopped after %v", time.Since(start).Round(time.Millisecond))
}

// Samples returns how many samples completed.
func (s *Sampler) Samples() int {
	return s.samples
}

// Close releases the sink and the collector and reports every failure.
func (s *Sampler) Close() error {
	var errs []error
	if s.sink != nil {
		errs = append(errs, s.sink.Close())
	}
	errs = append(errs, s.collector.Close())
	return errors.Combine(errs...)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
