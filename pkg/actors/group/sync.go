package group

import (
	"context"

	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/schema"
)

// Sync executes its acts strictly in order. The first failing act fails the
// group with that act's error; the acts after it are skipped.
type Sync struct{}

func (Sync) Schema() schema.Options {
	return schema.Options{
		"acts": actsOption(),
	}
}

func (Sync) Doc() string {
	return `Runs each actor in ` + "`acts`" + ` one after another.

If an actor fails, the remaining actors are **skipped** and the group fails
with that actor's error. An empty ` + "`acts`" + ` list succeeds without doing anything.

` + "```yaml" + `
actor: group.Sync
options:
  acts:
    - actor: misc.Sleep
      options: {sleep: 1}
    - actor: server_array.Clone
      options: {source: template, dest: web-2}
` + "```"
}

func (Sync) Compose(ctx context.Context, _ schema.Values, children []*domain.Node, dry bool, run domain.RunFunc) ([]*domain.Result, error) {
	results := make([]*domain.Result, 0, len(children))
	for i, child := range children {
		res := run(ctx, child, dry)
		results = append(results, res)
		if res.Succeeded() {
			continue
		}

		domain.LoggerFromContext(ctx).Debug("Stopping group", "failed", child.Label(), "skipped", len(children)-i-1)
		for _, rest := range children[i+1:] {
			results = append(results, domain.Skip(rest, dry))
		}
		return results, res.Error
	}
	return results, nil
}
