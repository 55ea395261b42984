package cmd

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroups(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []CommandGroup
	}{
		{"empty", nil, nil},
		{"flags only", []string{"-x"}, []CommandGroup{{Flags: []string{"-x"}}}},
		{"combined short flags", []string{"-vx", "-V"}, []CommandGroup{{Flags: []string{"-v", "-x"}, Command: "-V"}}},
		{"open", []string{"open", "noticeboard://listing/42"}, []CommandGroup{{Command: "open", Args: []string{"noticeboard://listing/42"}}}},
		{
			"flags belong to the next command",
			[]string{"--dry-run", "open", "x", "--config-show"},
			[]CommandGroup{
				{Flags: []string{"--dry-run"}, Command: "open", Args: []string{"x"}},
				{Command: "--config-show"},
			},
		},
		{"value flag", []string{"--api", "http://localhost:8080"}, []CommandGroup{{Flags: []string{"--api=http://localhost:8080"}}}},
		{"value flag with equals", []string{"--link=noticeboard://listing/7"}, []CommandGroup{{Flags: []string{"--link=noticeboard://listing/7"}}}},
		{"help topic", []string{"-h", "open"}, []CommandGroup{{Command: "-h", Args: []string{"open"}}}},
		{"help flag topic", []string{"--help", "--api"}, []CommandGroup{{Command: "--help", Args: []string{"--api"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		index   int
		command string
	}{
		{"unknown flag", []string{"--nope"}, 0, ""},
		{"unknown word", []string{"-v", "listing"}, 1, "-v"},
		{"open without link", []string{"open"}, 0, "open"},
		{"open followed by flag", []string{"open", "-x"}, 0, "open"},
		{"api without value", []string{"--api"}, 0, "--api"},
		{"api with empty value", []string{"--api="}, 0, "--api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			require.Error(t, err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.index, pe.Index)
			assert.Equal(t, tt.command, pe.FailingCommand)
		})
	}
}

func TestParseErrorMarksFailingArgument(t *testing.T) {
	_, err := Parse([]string{"-v", "--nope"})
	require.Error(t, err)

	out := ansi.Strip(err.Error())
	assert.Contains(t, out, "'nb -v --nope'")
	assert.Contains(t, out, "Invalid option '--nope'")

	// indent(3) + quote(1) + "nb"(2) + space(1) + "-v "(3)
	assert.Contains(t, out, "\n          ^\n")
	assert.Contains(t, out, "nb --help")
}

func TestParseErrorShowsCommandUsage(t *testing.T) {
	_, err := Parse([]string{"open"})
	require.Error(t, err)

	out := ansi.Strip(err.Error())
	assert.Contains(t, out, "Command 'open' requires a link.")
	assert.Contains(t, out, "Usage is:")
	assert.Contains(t, out, "open <link>")
}

func TestGetUsageForTarget(t *testing.T) {
	out := ansi.Strip(GetUsage("--version"))
	assert.Contains(t, out, "-V --version")
	assert.NotContains(t, out, "open <link>")

	all := ansi.Strip(GetUsage(""))
	for _, want := range []string{"Usage: nb", "open <link>", "--config-show", "--api <url>", "--dry-run"} {
		assert.Contains(t, all, want)
	}
}
