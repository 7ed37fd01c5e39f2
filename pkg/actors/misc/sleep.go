// Package misc holds utility actors that do not touch external systems.
package misc

import (
	"context"
	"time"

	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/schema"
)

// SleepKind is the registry kind of Sleep.
const SleepKind = "misc.Sleep"

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Wait is the default WaitFunc backed by a timer.
func Wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SleepOutput is returned by Sleep.
type SleepOutput struct {
	Slept     time.Duration `json:"slept" yaml:"slept"`
	Simulated bool          `json:"simulated" yaml:"simulated"`
}

// Sleep waits for a fixed amount of time. In dry mode it only logs.
type Sleep struct {
	wait WaitFunc
}

// NewSleep creates a Sleep actor. A nil wait uses Wait.
func NewSleep(wait WaitFunc) *Sleep {
	if wait == nil {
		wait = Wait
	}
	return &Sleep{wait: wait}
}

func (s *Sleep) Schema() schema.Options {
	return schema.Options{
		"sleep": schema.Required(schema.Duration(), "Time to wait, in seconds or as a duration string (\"1m30s\")"),
	}
}

func (s *Sleep) Doc() string {
	return "Waits for `sleep` before succeeding. Cancelling the run interrupts the wait.\n\n" +
		"In dry mode nothing waits; the actor only reports how long it would have slept."
}

func (s *Sleep) Execute(ctx context.Context, opts schema.Values, dry bool) (any, error) {
	d := opts.Duration("sleep")
	logger := domain.LoggerFromContext(ctx)

	if dry {
		logger.Info("Would have slept", "duration", d)
		return &SleepOutput{Slept: d, Simulated: true}, nil
	}

	logger.Info("Sleeping", "duration", d)
	if err := s.wait(ctx, d); err != nil {
		return nil, err
	}
	return &SleepOutput{Slept: d}, nil
}
