package troupe_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/troupe"
	"github.com/aretw0/troupe/pkg/actors/misc"
	"github.com/aretw0/troupe/pkg/adapters/memory"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/ports"
	"github.com/aretw0/troupe/pkg/registry"
	"github.com/aretw0/troupe/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenario = `
actor: group.Sync
options:
  acts:
    - actor: misc.Sleep
      options: {sleep: 60}
    - actor: server_array.Clone
      options: {source: template, dest: new_array}
`

type harness struct {
	engine *troupe.Engine
	store  *memory.Store
	mu     sync.Mutex
	slept  []time.Duration
	order  []string
}

func newHarness(t *testing.T, sleepErr error) *harness {
	t.Helper()
	h := &harness{store: memory.NewStore(&ports.ServerArray{Name: "template", Instances: 2})}

	eng, err := troupe.New(
		troupe.WithArrayStore(h.store),
		troupe.WithSleeper(func(ctx context.Context, d time.Duration) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.slept = append(h.slept, d)
			return sleepErr
		}),
		troupe.WithLifecycleHooks(domain.LifecycleHooks{
			OnActorStart: func(_ context.Context, e *domain.ActorEvent) {
				h.mu.Lock()
				defer h.mu.Unlock()
				h.order = append(h.order, e.Kind)
			},
		}),
	)
	require.NoError(t, err)
	h.engine = eng
	return h
}

func statuses(res *domain.Result) []domain.Status {
	out := make([]domain.Status, len(res.Children))
	for i, c := range res.Children {
		out[i] = c.Status
	}
	return out
}

func TestScenario_AllSucceed(t *testing.T) {
	h := newHarness(t, nil)

	run, err := h.engine.ExecuteBytes(context.Background(), []byte(scenario), false)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSucceeded, run.Root.Status)
	assert.Equal(t, []domain.Status{domain.StatusSucceeded, domain.StatusSucceeded}, statuses(run.Root))
	assert.Equal(t, []string{"group.Sync", "misc.Sleep", "server_array.Clone"}, h.order)
	assert.Equal(t, []time.Duration{time.Minute}, h.slept)

	created, err := h.store.Get(context.Background(), "new_array")
	require.NoError(t, err)
	assert.Equal(t, "template", created.ClonedFrom)
}

func TestScenario_FirstLeafFails(t *testing.T) {
	h := newHarness(t, errors.New("interrupted"))

	run, err := h.engine.ExecuteBytes(context.Background(), []byte(scenario), false)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, run.Root.Status)
	assert.Equal(t, []domain.Status{domain.StatusFailed, domain.StatusSkipped}, statuses(run.Root))
	assert.Equal(t, run.Root.Children[0].Error, run.Err())

	_, err = h.store.Get(context.Background(), "new_array")
	assert.ErrorIs(t, err, ports.ErrArrayNotFound)
}

func TestScenario_Dry(t *testing.T) {
	h := newHarness(t, nil)

	run, err := h.engine.ExecuteBytes(context.Background(), []byte(scenario), true)
	require.NoError(t, err)

	assert.True(t, run.Dry)
	assert.Equal(t, domain.StatusSucceeded, run.Root.Status)
	assert.Equal(t, []domain.Status{domain.StatusSucceeded, domain.StatusSucceeded}, statuses(run.Root))
	assert.Empty(t, h.slept)

	sleepOut := run.Root.Children[0].Output.(*misc.SleepOutput)
	assert.True(t, sleepOut.Simulated)

	names, err := h.store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"template"}, names)
}

func TestScenario_EmptyActs(t *testing.T) {
	h := newHarness(t, nil)

	run, err := h.engine.Execute(context.Background(), &domain.Definition{
		Actor:   "group.Sync",
		Options: map[string]any{"acts": []any{}},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSucceeded, run.Root.Status)
	assert.Empty(t, run.Root.Children)
}

func TestScenario_MissingActs(t *testing.T) {
	h := newHarness(t, nil)
	def := &domain.Definition{Actor: "group.Sync", Options: map[string]any{}}

	run, err := h.engine.Execute(context.Background(), def, false)
	assert.Nil(t, run)
	assert.Empty(t, h.order, "nothing may run when the build fails")

	var missing *schema.MissingRequiredOptionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "acts", missing.Option)
	assert.Equal(t, err.Error(), h.engine.Validate(def).Error())
}

func TestEngine_DryAndRealRunsHaveSameShape(t *testing.T) {
	shape := func(res *domain.Result) []string {
		var out []string
		stack := []*domain.Result{res}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			out = append(out, cur.Path+"|"+cur.Kind+"|"+string(cur.Status))
			for i := len(cur.Children) - 1; i >= 0; i-- {
				stack = append(stack, cur.Children[i])
			}
		}
		return out
	}

	dry, err := newHarness(t, nil).engine.ExecuteBytes(context.Background(), []byte(scenario), true)
	require.NoError(t, err)
	wet, err := newHarness(t, nil).engine.ExecuteBytes(context.Background(), []byte(scenario), false)
	require.NoError(t, err)

	assert.Equal(t, shape(wet.Root), shape(dry.Root))
}

func TestEngine_ConcurrentRunsDoNotInterfere(t *testing.T) {
	h := newHarness(t, nil)
	def := []byte(`
actor: group.Async
options:
  acts:
    - actor: misc.Sleep
      options: {sleep: 0.01}
    - actor: misc.Sleep
      options: {sleep: "10ms"}
`)

	var wg sync.WaitGroup
	runs := make([]*domain.Run, 10)
	for i := range runs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run, err := h.engine.ExecuteBytes(context.Background(), def, i%2 == 1)
			assert.NoError(t, err)
			runs[i] = run
		}()
	}
	wg.Wait()

	ids := map[string]bool{}
	for i, run := range runs {
		require.NotNil(t, run)
		assert.Equal(t, i%2 == 1, run.Dry)
		assert.True(t, run.Succeeded())
		for _, child := range run.Root.Children {
			assert.Equal(t, run.Dry, child.Output.(*misc.SleepOutput).Simulated)
		}
		ids[run.ID] = true
	}
	assert.Len(t, ids, 10)
	assert.Len(t, h.slept, 10)
}

func TestEngine_ExecuteFile(t *testing.T) {
	h := newHarness(t, nil)
	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o600))

	run, err := h.engine.ExecuteFile(context.Background(), path, true)
	require.NoError(t, err)
	assert.True(t, run.Succeeded())

	_, err = h.engine.ExecuteFile(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), true)
	assert.Error(t, err)
}

func TestEngine_CustomRegistry(t *testing.T) {
	r := registry.New()
	eng, err := troupe.New(troupe.WithRegistry(r))
	require.NoError(t, err)

	assert.Empty(t, eng.Kinds())
	assert.True(t, eng.Registry().Sealed())

	_, err = eng.ExecuteBytes(context.Background(), []byte(scenario), true)
	var unknown *domain.UnknownKindError
	assert.ErrorAs(t, err, &unknown)
}

func TestEngine_Kinds(t *testing.T) {
	eng, err := troupe.New()
	require.NoError(t, err)
	assert.Equal(t, []string{"group.Async", "group.Sync", "misc.Sleep", "server_array.Clone"}, eng.Kinds())
}
