package output

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return NewPrinterWithWriters(&stdout, &stderr, ColorNever), &stdout, &stderr
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "always": ColorAlways, "never": ColorNever} {
		got, err := ParseColorMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestResolveColors_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, ResolveColors(ColorAuto))
	assert.True(t, ResolveColors(ColorAlways))
}

func TestPrinter_PlainPrefixes(t *testing.T) {
	p, stdout, stderr := plainPrinter()

	p.Success("saved %s", "latest.json")
	p.Info("next run %d", 1)
	p.Warning("upload skipped")
	p.Error("boom")

	assert.Contains(t, stdout.String(), "[OK] saved latest.json")
	assert.Contains(t, stdout.String(), "next run 1")
	assert.Contains(t, stderr.String(), "[WARN] upload skipped")
	assert.Contains(t, stderr.String(), "[ERROR] boom")
}

func TestPrinter_HeaderUnderlineMatchesRunes(t *testing.T) {
	p, stdout, _ := plainPrinter()

	p.Header("履歴")

	assert.Equal(t, "\n履歴\n--\n", stdout.String())
}

func TestPrinter_Badge(t *testing.T) {
	p, _, _ := plainPrinter()

	assert.Equal(t, "[gemini-2.5-flash]", p.Badge(true, "gemini-2.5-flash"))
}

func TestFormatError(t *testing.T) {
	p, _, stderr := plainPrinter()

	p.FormatError(&CLIError{
		Summary:    "another run is in progress",
		Suggestion: "wait for the current run to finish",
		ExitCode:   ExitRunInProgress,
	})

	out := stderr.String()
	assert.Contains(t, out, "[ERROR] another run is in progress")
	assert.NotContains(t, out, "Cause:")
	assert.Contains(t, out, "Suggestion: wait for the current run to finish")
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeFor(nil))
	assert.Equal(t, ExitGeneral, ExitCodeFor(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("run: %w", &CLIError{Summary: "bad config", ExitCode: ExitConfigError})
	assert.Equal(t, ExitConfigError, ExitCodeFor(wrapped))
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Run", "Articles"})
	table.AddRow("20250303_060000", "12")
	table.AddRow("20250302_210000", "9")

	require.NoError(t, table.Render())

	out := buf.String()
	assert.Contains(t, out, "20250303_060000")
	assert.Contains(t, out, "20250302_210000")
	assert.Less(t, strings.Index(out, "20250303_060000"), strings.Index(out, "20250302_210000"))
}
