package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/troupe/internal/logging"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/google/uuid"
)

// Engine walks a built actor tree and executes it.
// An Engine holds no per-run state and may run many trees concurrently.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// NewEngine creates a new engine with options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs root under a fresh run ID and returns the run envelope.
func (e *Engine) Execute(ctx context.Context, root *domain.Node, dry bool) *domain.Run {
	id, ok := RunIDFromContext(ctx)
	if !ok {
		id = uuid.NewString()
		ctx = WithRunID(ctx, id)
	}

	start := e.now()
	res := e.Run(ctx, root, dry)
	return &domain.Run{
		ID:        id,
		Dry:       dry,
		StartedAt: start,
		Duration:  e.now().Sub(start),
		Root:      res,
	}
}

// Run executes the tree rooted at root and returns its result.
// dry is handed unchanged to every node of the tree.
func (e *Engine) Run(ctx context.Context, root *domain.Node, dry bool) *domain.Result {
	runID, _ := RunIDFromContext(ctx)
	logger := e.logger.With("run_id", runID, "dry", dry)

	x := &execution{Engine: e, runID: runID, logger: logger}
	logger.Debug("Run started", "root", root.Label(), "kind", root.Kind)
	res := x.run(ctx, root, dry)
	logger.Debug("Run finished", "status", res.Status)
	return res
}

// execution carries the state shared by all nodes of one run.
type execution struct {
	*Engine
	runID  string
	logger *slog.Logger
}

// run is the domain.RunFunc handed to composites.
func (x *execution) run(ctx context.Context, node *domain.Node, dry bool) *domain.Result {
	logger := x.logger.With("path", node.Label(), "kind", node.Kind)

	if err := ctx.Err(); err != nil {
		res := domain.Skip(node, dry)
		res.Status = domain.StatusFailed
		res.Error = fmt.Errorf("%w: %w", domain.ErrCancelled, err)
		logger.Debug("Actor not started", "err", res.Error)
		x.finishSkipped(ctx, res.Children)
		x.finish(ctx, res)
		return res
	}

	res := &domain.Result{
		Path:        node.Path,
		Kind:        node.Kind,
		Description: node.Description,
		Dry:         dry,
		StartedAt:   x.now(),
	}
	x.emit(ctx, x.hooks.OnActorStart, res)
	logger.Debug("Actor started")

	actx := logging.WithContext(ctx, logger)
	switch actor := node.Actor.(type) {
	case domain.Leaf:
		output, err := x.execLeaf(actx, actor, node, dry)
		res.Output = output
		if err != nil {
			res.Status = domain.StatusFailed
			res.Error = &domain.ActorExecutionError{
				Kind:        node.Kind,
				Description: node.Description,
				Path:        node.Path,
				Cause:       err,
			}
			logger.Error("Actor failed", "err", err)
		} else {
			res.Status = domain.StatusSucceeded
		}

	case domain.Composite:
		children, err := x.compose(actx, actor, node, dry)
		res.Children = x.normalize(ctx, node, children, dry)
		if err != nil {
			res.Status = domain.StatusFailed
			res.Error = err
			logger.Debug("Group failed", "err", err)
		} else {
			res.Status = domain.StatusSucceeded
		}

	default:
		res.Status = domain.StatusFailed
		res.Error = &domain.ActorExecutionError{
			Kind:        node.Kind,
			Description: node.Description,
			Path:        node.Path,
			Cause:       fmt.Errorf("unsupported actor type %T", node.Actor),
		}
	}

	res.Duration = x.now().Sub(res.StartedAt)
	x.finish(ctx, res)
	logger.Debug("Actor finished", "status", res.Status, "duration", res.Duration)
	return res
}

func (x *execution) execLeaf(ctx context.Context, leaf domain.Leaf, node *domain.Node, dry bool) (output any, err error) {
	defer func() {
		if r := recover(); r != nil {
			output = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return leaf.Execute(ctx, node.Options, dry)
}

func (x *execution) compose(ctx context.Context, c domain.Composite, node *domain.Node, dry bool) (results []*domain.Result, err error) {
	// Results of children that ran survive a panic in the composite.
	var (
		mu  sync.Mutex
		ran = make(map[*domain.Node]*domain.Result, len(node.Children))
	)
	record := func(ctx context.Context, child *domain.Node, dry bool) *domain.Result {
		res := x.run(ctx, child, dry)
		mu.Lock()
		ran[child] = res
		mu.Unlock()
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			mu.Lock()
			results = make([]*domain.Result, len(node.Children))
			for i, child := range node.Children {
				results[i] = ran[child]
			}
			mu.Unlock()
			err = &domain.ActorExecutionError{
				Kind:        node.Kind,
				Description: node.Description,
				Path:        node.Path,
				Cause:       fmt.Errorf("panic: %v", r),
			}
		}
	}()
	return c.Compose(ctx, node.Options, node.Children, dry, record)
}

// normalize aligns composite results with the node's children: missing
// entries become skipped results, extra ones are dropped.
func (x *execution) normalize(ctx context.Context, node *domain.Node, results []*domain.Result, dry bool) []*domain.Result {
	out := make([]*domain.Result, len(node.Children))
	var skipped []*domain.Result
	for i, child := range node.Children {
		if i < len(results) && results[i] != nil {
			out[i] = results[i]
		} else {
			out[i] = domain.Skip(child, dry)
		}
		if out[i].Status == domain.StatusSkipped {
			skipped = append(skipped, out[i])
		}
	}
	x.finishSkipped(ctx, skipped)
	return out
}

// finishSkipped reports skipped subtrees to OnActorFinish, parents first.
func (x *execution) finishSkipped(ctx context.Context, skipped []*domain.Result) {
	if x.hooks.OnActorFinish == nil {
		return
	}
	queue := append([]*domain.Result(nil), skipped...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		x.finish(ctx, cur)
		queue = append(queue, cur.Children...)
	}
}

func (x *execution) finish(ctx context.Context, res *domain.Result) {
	x.emit(ctx, x.hooks.OnActorFinish, res)
}

func (x *execution) emit(ctx context.Context, hook func(context.Context, *domain.ActorEvent), res *domain.Result) {
	if hook == nil {
		return
	}
	status := res.Status
	if status == "" {
		status = domain.StatusRunning
	}
	hook(ctx, &domain.ActorEvent{
		Timestamp:   x.now(),
		RunID:       x.runID,
		Path:        res.Path,
		Kind:        res.Kind,
		Description: res.Description,
		Dry:         res.Dry,
		Status:      status,
		Duration:    res.Duration,
		Err:         res.Error,
	})
}
