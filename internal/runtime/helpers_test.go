package runtime_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/troupe/internal/compiler"
	"github.com/aretw0/troupe/pkg/actors/group"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/registry"
	"github.com/aretw0/troupe/pkg/schema"
	"github.com/stretchr/testify/require"
)

// call is one observed leaf invocation.
type call struct {
	Name string
	Dry  bool
}

// journal records leaf invocations across goroutines.
type journal struct {
	mu    sync.Mutex
	calls []call
}

func (j *journal) add(name string, dry bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, call{Name: name, Dry: dry})
}

func (j *journal) names() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.calls))
	for i, c := range j.calls {
		out[i] = c.Name
	}
	return out
}

func (j *journal) snapshot() []call {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]call(nil), j.calls...)
}

var errBoom = errors.New("boom")

// stepLeaf records its "name" option and fails when "fail" is set.
type stepLeaf struct {
	journal *journal
}

func (s *stepLeaf) Schema() schema.Options {
	return schema.Options{
		"name":  schema.Required(schema.String(), "step name"),
		"fail":  schema.Optional(schema.Bool(), false, "fail when run"),
		"panic": schema.Optional(schema.Bool(), false, "panic when run"),
	}
}

func (s *stepLeaf) Execute(ctx context.Context, opts schema.Values, dry bool) (any, error) {
	name := opts.String("name")
	s.journal.add(name, dry)
	if opts.Bool("panic") {
		panic("step " + name + " exploded")
	}
	if opts.Bool("fail") {
		return nil, errBoom
	}
	return name, nil
}

// cancelLeaf cancels the run when executed.
type cancelLeaf struct {
	cancel context.CancelFunc
}

func (c *cancelLeaf) Schema() schema.Options { return schema.Options{} }

func (c *cancelLeaf) Execute(context.Context, schema.Values, bool) (any, error) {
	c.cancel()
	return nil, nil
}

// partialGroup runs only its first child and reports nothing for the rest.
type partialGroup struct{}

func (partialGroup) Schema() schema.Options {
	return schema.Options{"acts": schema.Required(schema.Actors(), "acts")}
}

func (partialGroup) Compose(ctx context.Context, _ schema.Values, children []*domain.Node, dry bool, run domain.RunFunc) ([]*domain.Result, error) {
	if len(children) == 0 {
		return nil, nil
	}
	return []*domain.Result{run(ctx, children[0], dry)}, nil
}

// panicGroup runs its first child, then panics.
type panicGroup struct{}

func (panicGroup) Schema() schema.Options {
	return schema.Options{"acts": schema.Required(schema.Actors(), "acts")}
}

func (panicGroup) Compose(ctx context.Context, _ schema.Values, children []*domain.Node, dry bool, run domain.RunFunc) ([]*domain.Result, error) {
	run(ctx, children[0], dry)
	panic("group lost its place")
}

// logLeaf logs through the context logger, as kinds outside this module do.
type logLeaf struct{}

func (logLeaf) Schema() schema.Options { return schema.Options{} }

func (logLeaf) Execute(ctx context.Context, _ schema.Values, dry bool) (any, error) {
	domain.LoggerFromContext(ctx).Info("Would have said hello", "simulated", dry)
	return nil, nil
}

type fixture struct {
	journal  *journal
	registry *registry.Registry
	cancel   context.CancelFunc
}

func newFixture(t *testing.T) (*fixture, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	f := &fixture{journal: &journal{}, registry: registry.New(), cancel: cancel}
	f.registry.MustRegister(group.SyncKind, group.Sync{})
	f.registry.MustRegister(group.AsyncKind, group.Async{})
	f.registry.MustRegister("test.Step", &stepLeaf{journal: f.journal})
	f.registry.MustRegister("test.Cancel", &cancelLeaf{cancel: cancel})
	f.registry.MustRegister("test.Partial", partialGroup{})
	f.registry.MustRegister("test.Panic", panicGroup{})
	f.registry.MustRegister("test.Log", logLeaf{})
	f.registry.Seal()
	return f, ctx
}

func (f *fixture) build(t *testing.T, def map[string]any) *domain.Node {
	t.Helper()
	node, err := compiler.NewBuilder(f.registry).BuildRaw(def)
	require.NoError(t, err)
	return node
}

func step(name string, extra ...string) map[string]any {
	opts := map[string]any{"name": name}
	for _, flag := range extra {
		opts[flag] = true
	}
	return map[string]any{"actor": "test.Step", "desc": name, "options": opts}
}

func seq(acts ...map[string]any) map[string]any {
	return groupOf(group.SyncKind, acts...)
}

func groupOf(kind string, acts ...map[string]any) map[string]any {
	list := make([]any, len(acts))
	for i, a := range acts {
		list[i] = a
	}
	return map[string]any{"actor": kind, "options": map[string]any{"acts": list}}
}
