package observability_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnActorStart(ctx, &domain.ActorEvent{Kind: "misc.Sleep", Status: domain.StatusRunning})
	hooks.OnActorFinish(ctx, &domain.ActorEvent{Kind: "misc.Sleep", Status: domain.StatusSucceeded, Duration: time.Second})
	hooks.OnActorStart(ctx, &domain.ActorEvent{Kind: "misc.Sleep", Dry: true, Status: domain.StatusRunning})
	hooks.OnActorFinish(ctx, &domain.ActorEvent{Kind: "misc.Sleep", Dry: true, Status: domain.StatusFailed})
	hooks.OnActorFinish(ctx, &domain.ActorEvent{Kind: "server_array.Clone", Status: domain.StatusSkipped})
	hooks.OnActorFinish(ctx, &domain.ActorEvent{
		Kind:   "server_array.Clone",
		Status: domain.StatusFailed,
		Err:    fmt.Errorf("%w: %w", domain.ErrCancelled, context.Canceled),
	})

	expected := `
# HELP troupe_actor_finished_total Number of actors that reached a final status
# TYPE troupe_actor_finished_total counter
troupe_actor_finished_total{dry="false",kind="misc.Sleep",status="succeeded"} 1
troupe_actor_finished_total{dry="false",kind="server_array.Clone",status="failed"} 1
troupe_actor_finished_total{dry="false",kind="server_array.Clone",status="skipped"} 1
troupe_actor_finished_total{dry="true",kind="misc.Sleep",status="failed"} 1
`
	require.NoError(t, testutil.CollectAndCompare(m.Registry(), strings.NewReader(expected), "troupe_actor_finished_total"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.Registry(), "troupe_actor_started_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Registry(), "troupe_actor_duration_seconds"))

	running := `
# HELP troupe_actor_running Actors currently running
# TYPE troupe_actor_running gauge
troupe_actor_running{kind="misc.Sleep"} 0
`
	assert.NoError(t, testutil.CollectAndCompare(m.Registry(), strings.NewReader(running), "troupe_actor_running"))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks().OnActorStart(context.Background(), &domain.ActorEvent{Kind: "group.Sync"})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `troupe_actor_started_total{dry="false",kind="group.Sync"} 1`)
}
