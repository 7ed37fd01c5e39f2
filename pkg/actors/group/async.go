package group

import (
	"context"

	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// Async executes all its acts concurrently, at most "concurrency" at a time.
// Every act runs to completion; the group fails with the error of the first
// failing act in declaration order.
type Async struct{}

func (Async) Schema() schema.Options {
	return schema.Options{
		"acts":        actsOption(),
		"concurrency": schema.Optional(schema.Int(), 0, "Maximum number of acts running at once (0 = unbounded)"),
	}
}

func (Async) Doc() string {
	return `Runs every actor in ` + "`acts`" + ` at the same time.

All actors run to completion, even when one of them fails. The group fails if
any actor failed; the error reported is the one of the first failing actor in
the list. Use ` + "`concurrency`" + ` to bound how many run at once.`
}

func (Async) Compose(ctx context.Context, opts schema.Values, children []*domain.Node, dry bool, run domain.RunFunc) ([]*domain.Result, error) {
	results := make([]*domain.Result, len(children))

	var g errgroup.Group
	if limit := opts.Int("concurrency"); limit > 0 {
		g.SetLimit(limit)
	}
	for i, child := range children {
		g.Go(func() error {
			results[i] = run(ctx, child, dry)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		if !res.Succeeded() {
			return results, res.Error
		}
	}
	return results, nil
}
