package domain

import (
	"context"
	"time"
)

// ActorEvent describes a state transition of one node during a run.
type ActorEvent struct {
	Timestamp   time.Time     `json:"timestamp"`
	RunID       string        `json:"run_id,omitempty"`
	Path        string        `json:"path"`
	Kind        string        `json:"kind"`
	Description string        `json:"description"`
	Dry         bool          `json:"dry"`
	Status      Status        `json:"status"`
	Duration    time.Duration `json:"duration,omitempty"`
	Err         error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// OnActorStart fires on the running transition; OnActorFinish fires once the
// node reaches a final status. Skipped nodes only fire OnActorFinish.
type LifecycleHooks struct {
	OnActorStart  func(context.Context, *ActorEvent)
	OnActorFinish func(context.Context, *ActorEvent)
}

// MergeHooks chains several hook sets; each callback fires in argument order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var starts, finishes []func(context.Context, *ActorEvent)
	for _, h := range hooks {
		if h.OnActorStart != nil {
			starts = append(starts, h.OnActorStart)
		}
		if h.OnActorFinish != nil {
			finishes = append(finishes, h.OnActorFinish)
		}
	}

	var merged LifecycleHooks
	if len(starts) > 0 {
		merged.OnActorStart = func(ctx context.Context, e *ActorEvent) {
			for _, fn := range starts {
				fn(ctx, e)
			}
		}
	}
	if len(finishes) > 0 {
		merged.OnActorFinish = func(ctx context.Context, e *ActorEvent) {
			for _, fn := range finishes {
				fn(ctx, e)
			}
		}
	}
	return merged
}
