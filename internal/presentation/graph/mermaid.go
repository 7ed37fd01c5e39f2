package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/troupe/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of an actor tree.
// Shapes:
// - Composite: [[Subroutine]]
// - Leaf: [Rectangle]
// Edges point from a group to its acts and are numbered in execution order.
// When run is non-nil, nodes are colored by their final status.
func GenerateMermaid(root *domain.Node, run *domain.Result) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root.Walk(func(node *domain.Node) bool {
		safeID := sanitizeMermaidID(node.Label())

		opener, closer := "[", "]"
		if _, ok := node.Actor.(domain.Composite); ok {
			opener, closer = "[[", "]]"
		}

		label := node.Kind
		if node.Description != node.Kind {
			label = fmt.Sprintf("%s <br/> %s", strings.ReplaceAll(node.Description, "\"", "'"), node.Kind)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for i, child := range node.Children {
			sb.WriteString(fmt.Sprintf("    %s -- \"%d\" --> %s\n", safeID, i+1, sanitizeMermaidID(child.Label())))
		}
		return true
	})

	if run != nil {
		sb.WriteString("\n    %% Status Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef succeeded fill:#dcfce7,stroke:#16a34a,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#fee2e2,stroke:#dc2626,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef skipped fill:#f4f4f5,stroke:#a1a1aa,stroke-dasharray:4,color:#000;\n")

		stack := []*domain.Result{run}
		for len(stack) > 0 {
			res := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			where := res.Path
			if where == "" {
				where = "root"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(where), res.Status))
			for i := len(res.Children) - 1; i >= 0; i-- {
				stack = append(stack, res.Children[i])
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(
		".", "_",
		"[", "_",
		"]", "",
		"-", "_",
	).Replace(id)
}
