// Package report renders run results and kind documentation for humans and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/troupe/pkg/domain"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, json or yaml)", name)
}

// RenderOption configures Render.
type RenderOption func(*renderer)

// WithProfile sets the color profile of text reports. Defaults to termenv.Ascii (no color).
func WithProfile(p termenv.Profile) RenderOption {
	return func(r *renderer) {
		r.profile = p
	}
}

type renderer struct {
	profile termenv.Profile
}

// Render writes run to w in the given format.
func Render(w io.Writer, run *domain.Run, format Format, opts ...RenderOption) error {
	r := &renderer{profile: termenv.Ascii}
	for _, opt := range opts {
		opt(r)
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newRunView(run)); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return r.text(w, run)
	}
	return fmt.Errorf("unknown report format %q", format)
}

var statusColors = map[domain.Status]string{
	domain.StatusSucceeded: "#22c55e",
	domain.StatusFailed:    "#ef4444",
	domain.StatusSkipped:   "#a1a1aa",
}

var statusSymbols = map[domain.Status]string{
	domain.StatusSucceeded: "✔",
	domain.StatusFailed:    "✘",
	domain.StatusSkipped:   "-",
}

func (r *renderer) paint(status domain.Status, s string) string {
	return r.profile.String(s).Foreground(r.profile.Color(statusColors[status])).String()
}

func (r *renderer) text(w io.Writer, run *domain.Run) error {
	var b strings.Builder

	mode := ""
	if run.Dry {
		mode = " (dry)"
	}
	fmt.Fprintf(&b, "Run %s%s %s in %s\n", run.ID, mode,
		r.paint(run.Root.Status, string(run.Root.Status)), round(run.Duration))

	type frame struct {
		res   *domain.Result
		depth int
	}
	stack := []frame{{res: run.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res := f.res
		indent := strings.Repeat("  ", f.depth)

		label := res.Kind
		if res.Description != "" && res.Description != res.Kind {
			label = fmt.Sprintf("%s %q", res.Kind, res.Description)
		}
		where := res.Path
		if where == "" {
			where = "root"
		}
		line := fmt.Sprintf("%s %s %s", statusSymbols[res.Status], where, label)
		if res.Status != domain.StatusSkipped {
			line += " " + round(res.Duration)
		}
		fmt.Fprintf(&b, "%s%s\n", indent, r.paint(res.Status, line))

		// A composite's error usually repeats a failed child's; print it once, where it happened.
		if res.Error != nil && !hasFailedChild(res) {
			fmt.Fprintf(&b, "%s    error: %s\n", indent, res.Error)
		}

		for i := len(res.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{res: res.Children[i], depth: f.depth + 1})
		}
	}

	counts := run.Root.Count()
	fmt.Fprintf(&b, "%d succeeded, %d failed, %d skipped\n",
		counts[domain.StatusSucceeded], counts[domain.StatusFailed], counts[domain.StatusSkipped])

	_, err := io.WriteString(w, b.String())
	return err
}

func hasFailedChild(res *domain.Result) bool {
	for _, child := range res.Children {
		if child.Status == domain.StatusFailed {
			return true
		}
	}
	return false
}

func round(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	}
	return d.String()
}

// runView is the YAML shape of a run; durations and errors become strings.
type runView struct {
	ID        string      `yaml:"id"`
	Dry       bool        `yaml:"dry"`
	StartedAt time.Time   `yaml:"started_at"`
	Duration  string      `yaml:"duration"`
	Result    *resultView `yaml:"result"`
}

type resultView struct {
	Path        string        `yaml:"path"`
	Kind        string        `yaml:"kind"`
	Description string        `yaml:"description"`
	Status      domain.Status `yaml:"status"`
	Error       string        `yaml:"error,omitempty"`
	Output      any           `yaml:"output,omitempty"`
	Duration    string        `yaml:"duration,omitempty"`
	Children    []*resultView `yaml:"children"`
}

func newRunView(run *domain.Run) *runView {
	return &runView{
		ID:        run.ID,
		Dry:       run.Dry,
		StartedAt: run.StartedAt,
		Duration:  run.Duration.String(),
		Result:    newResultView(run.Root),
	}
}

func newResultView(res *domain.Result) *resultView {
	if res == nil {
		return nil
	}
	v := &resultView{
		Path:        res.Path,
		Kind:        res.Kind,
		Description: res.Description,
		Status:      res.Status,
		Error:       res.ErrorMessage(),
		Output:      res.Output,
		Children:    make([]*resultView, 0, len(res.Children)),
	}
	if res.Status != domain.StatusSkipped {
		v.Duration = res.Duration.String()
	}
	for _, child := range res.Children {
		v.Children = append(v.Children, newResultView(child))
	}
	return v
}
