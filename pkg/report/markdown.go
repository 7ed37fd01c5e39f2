package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/troupe/pkg/domain"
)

// KindMarkdown documents an actor kind as markdown: its variant, its long
// description (when the kind implements domain.Documented) and its options.
func KindMarkdown(kind string, actor domain.Actor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", kind)

	switch actor.(type) {
	case domain.Composite:
		b.WriteString("*Composite actor: runs nested actors.*\n\n")
	default:
		b.WriteString("*Leaf actor.*\n\n")
	}

	if doc, ok := actor.(domain.Documented); ok {
		b.WriteString(strings.TrimSpace(doc.Doc()))
		b.WriteString("\n\n")
	}

	options := actor.Schema()
	if len(options) == 0 {
		b.WriteString("This kind takes no options.\n")
		return b.String()
	}

	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("## Options\n\n")
	b.WriteString("| Name | Type | Required | Default | Description |\n")
	b.WriteString("|------|------|----------|---------|-------------|\n")
	for _, name := range names {
		opt := options[name]
		required := "no"
		if opt.Required {
			required = "yes"
		}
		def := ""
		if opt.Default != nil {
			def = fmt.Sprintf("`%v`", opt.Default)
		}
		typeName := strings.ReplaceAll(opt.Type.Name(), "|", `\|`)
		fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s | %s |\n", name, typeName, required, def, opt.Description)
	}
	return b.String()
}
