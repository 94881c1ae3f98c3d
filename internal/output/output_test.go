package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calendarDeps is the jquery calendar example graph.
var calendarDeps = map[string][]string{
	"calendar.js":  {"jquery.js", "jquery-ui.js"},
	"jquery-ui.js": {"ui.js"},
}

var calendarOrder = []string{"jquery.js", "ui.js", "jquery-ui.js", "calendar.js"}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatText, true},
		{"text", FormatText, true},
		{"JSON", FormatJSON, true},
		{"yml", FormatYAML, true},
		{"table", FormatTable, true},
		{"tree", FormatTree, true},
		{"xml", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFormat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Len(t, ValidFormats(), 5)
}

func TestWriteSequence_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(calendarOrder, SequenceOptions{Format: FormatText, Writer: &buf}))
	assert.Equal(t, "jquery.js\nui.js\njquery-ui.js\ncalendar.js\n", buf.String())
}

func TestWriteSequence_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(nil, SequenceOptions{Format: FormatText, Writer: &buf}))
	assert.Empty(t, buf.String())
}

func TestWriteSequence_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(calendarOrder, SequenceOptions{Format: FormatJSON, Writer: &buf}))
	assert.JSONEq(t, `{"js":["jquery.js","ui.js","jquery-ui.js","calendar.js"]}`, buf.String())
}

func TestWriteSequence_JSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(nil, SequenceOptions{Format: FormatJSON, Writer: &buf}))
	assert.JSONEq(t, `{"js":[]}`, buf.String())
}

func TestWriteSequence_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence([]string{"a.js", "b.js"}, SequenceOptions{Format: FormatYAML, Writer: &buf}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "js:\n"))
	assert.Contains(t, out, "- a.js\n")
	assert.Less(t, strings.Index(out, "a.js"), strings.Index(out, "b.js"))
}

func TestWriteSequence_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(calendarOrder, SequenceOptions{
		Format: FormatTable,
		Deps:   calendarDeps,
		Writer: &buf,
	}))
	out := buf.String()
	assert.Contains(t, out, "RESOURCE")
	assert.Contains(t, out, "jquery.js, jquery-ui.js")
	assert.Less(t, strings.Index(out, "ui.js"), strings.Index(out, "calendar.js"))
}

func TestWriteSequence_Unsupported(t *testing.T) {
	err := WriteSequence(calendarOrder, SequenceOptions{Format: Format("xml"), Writer: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestRenderDependencyTree(t *testing.T) {
	out := RenderDependencyTree([]string{"calendar.js"}, calendarDeps)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "calendar.js")
	assert.Contains(t, lines[1], "├── ")
	assert.Contains(t, lines[1], "jquery.js")
	assert.Contains(t, lines[2], "└── ")
	assert.Contains(t, lines[2], "jquery-ui.js")
	assert.Contains(t, lines[3], "    └── ")
	assert.Contains(t, lines[3], "ui.js")
}

func TestRenderDependencyTree_MarksRepeats(t *testing.T) {
	deps := map[string][]string{
		"a.js":      {"shared.js"},
		"b.js":      {"shared.js"},
		"shared.js": {"base.js"},
	}
	out := RenderDependencyTree([]string{"a.js", "b.js"}, deps)
	assert.Equal(t, 1, strings.Count(out, "base.js"), "shared subtree should be expanded once")
	assert.Contains(t, out, "(*)")
}

func TestRunWithSpinner_NoTTYRunsDirectly(t *testing.T) {
	called := false
	err := RunWithSpinner(context.Background(), func() error {
		called = true
		return nil
	}, WithTitle("Bundling..."), withTTY(func() bool { return false }))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRunWithSpinner_ReturnsActionError(t *testing.T) {
	boom := errors.New("boom")
	err := RunWithSpinner(context.Background(), func() error { return boom }, withTTY(func() bool { return false }))
	assert.ErrorIs(t, err, boom)
}

func TestOnStderr_GatesOnStderr(t *testing.T) {
	cfg := &spinnerConfig{tty: func() bool { return true }}
	OnStderr()(cfg)
	assert.Same(t, os.Stderr, cfg.output)
	assert.Equal(t, IsStderrTTY(), cfg.tty())
}

func TestRunWithSpinner_OnStderrWithoutTerminal(t *testing.T) {
	if IsStderrTTY() {
		t.Skip("stderr is a terminal")
	}
	called := false
	err := RunWithSpinner(context.Background(), func() error {
		called = true
		return nil
	}, OnStderr())
	require.NoError(t, err)
	assert.True(t, called)
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("bundled"), "bundled")
	assert.Contains(t, FormatKey("abc.js"), "abc.js")
}
