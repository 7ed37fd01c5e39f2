package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/troupe/internal/presentation/graph"
	"github.com/aretw0/troupe/pkg/actors/group"
	"github.com/aretw0/troupe/pkg/actors/misc"
	"github.com/aretw0/troupe/pkg/domain"
)

func tree() *domain.Node {
	return &domain.Node{
		Kind:        group.SyncKind,
		Description: "deploy",
		Actor:       group.Sync{},
		Children: []*domain.Node{
			{Kind: misc.SleepKind, Description: misc.SleepKind, Path: "acts[0]", Actor: misc.NewSleep(nil)},
			{Kind: group.SyncKind, Description: "inner", Path: "acts[1]", Actor: group.Sync{}, Children: []*domain.Node{
				{Kind: misc.SleepKind, Description: "nap", Path: "acts[1].acts[0]", Actor: misc.NewSleep(nil)},
			}},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		run      *domain.Result
		contains []string
		excludes []string
	}{
		{
			name: "Shapes and Edges",
			contains: []string{
				"graph TD\n",
				`root[["deploy <br/> group.Sync"]]`,
				`acts_0["misc.Sleep"]`,
				`acts_1[["inner <br/> group.Sync"]]`,
				`acts_1_acts_0["nap <br/> misc.Sleep"]`,
				`root -- "1" --> acts_0`,
				`root -- "2" --> acts_1`,
				`acts_1 -- "1" --> acts_1_acts_0`,
			},
			excludes: []string{"classDef"},
		},
		{
			name: "Status Overlay",
			run: &domain.Result{Status: domain.StatusFailed, Children: []*domain.Result{
				{Path: "acts[0]", Status: domain.StatusFailed},
				{Path: "acts[1]", Status: domain.StatusSkipped, Children: []*domain.Result{
					{Path: "acts[1].acts[0]", Status: domain.StatusSkipped},
				}},
			}},
			contains: []string{
				"classDef failed",
				"class root failed;",
				"class acts_0 failed;",
				"class acts_1_acts_0 skipped;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tree(), tt.run)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() missing %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() should not contain %q", unwanted)
				}
			}
		})
	}
}
