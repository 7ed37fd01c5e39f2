package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/troupe/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainRenderer(t *testing.T) {
	render, err := tui.NewPlainRenderer()
	require.NoError(t, err)

	out, err := render("# group.Sync\n\nRuns acts **in order**.")
	require.NoError(t, err)
	assert.Contains(t, out, "group.Sync")
	assert.Contains(t, out, "order")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintBanner_Ascii(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, termenv.Ascii)

	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Equal(t, 8, strings.Count(buf.String(), "\n"))
}
