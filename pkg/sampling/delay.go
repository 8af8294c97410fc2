package sampling

import (
	"math/rand/v2"
	"time"

	"emperror.dev/errors"
)

// Delay yields the pause before the next sample.
type Delay interface {
	Next() time.Duration
}

// Fixed always waits Interval.
type Fixed struct {
	Interval time.Duration
}

func (f Fixed) Next() time.Duration {
	return f.Interval
}

// Jitter waits a uniformly drawn duration in [Min, Max], whole milliseconds,
// both bounds inclusive. Every call draws independently. A Max below Min
// always yields Min.
type Jitter struct {
	Min time.Duration
	Max time.Duration
	rng *rand.Rand
}

// NewJitter validates the bounds. A nil rng uses the global source.
func NewJitter(min, max time.Duration, rng *rand.Rand) (*Jitter, error) {
	if min <= 0 || max < min {
		return nil, errors.Errorf("invalid jitter range [%v, %v]", min, max)
	}
	return &Jitter{Min: min, Max: max, rng: rng}, nil
}

func (j *Jitter) Next() time.Duration {
	lo := j.Min.Milliseconds()
	span := j.Max.Milliseconds() - lo + 1
	if span < 1 {
		span = 1
	}
	var n int64
	if j.rng != nil {
		n = j.rng.Int64N(span)
	} else {
		n = rand.Int64N(span)
	}
	return time.Duration(lo+n) * time.Millisecond
}
