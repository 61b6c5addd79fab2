package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{input: "auto", want: ColorAuto},
		{input: "", want: ColorAuto},
		{input: "ALWAYS", want: ColorAlways},
		{input: "never", want: ColorNever},
		{input: "rainbow", want: ColorAuto, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveColors(t *testing.T) {
	t.Run("always wins over NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.True(t, ResolveColors(ColorAlways))
	})
	t.Run("never", func(t *testing.T) {
		assert.False(t, ResolveColors(ColorNever))
	})
	t.Run("auto with NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.False(t, ResolveColors(ColorAuto))
	})
	t.Run("auto with dumb terminal", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		assert.False(t, ResolveColors(ColorAuto))
	})
}

func newTestPrinter(quiet bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	return NewPrinter(out, errOut, false, quiet), out, errOut
}

func TestPrinter_PlainOutput(t *testing.T) {
	p, out, errOut := newTestPrinter(false)

	p.Info("indexed %d entries", 5)
	p.Success("cleared")
	p.Print("plain")
	p.Header("Stats")
	p.Warning("slow")
	p.Error("failed: %s", "boom")

	assert.Equal(t, "indexed 5 entries\n[OK] cleared\nplain\n\nStats\n-----\n", out.String())
	assert.Equal(t, "[WARN] slow\n[ERROR] failed: boom\n", errOut.String())
}

func TestPrinter_Quiet(t *testing.T) {
	p, out, errOut := newTestPrinter(true)
	assert.True(t, p.IsQuiet())

	p.Info("x")
	p.Success("x")
	p.Print("x")
	p.Header("x")
	p.Warning("x")
	p.Error("still shown")

	assert.Empty(t, out.String())
	assert.Equal(t, "[ERROR] still shown\n", errOut.String())
}

func TestPrinter_JSON(t *testing.T) {
	p, out, _ := newTestPrinter(true)

	require.NoError(t, p.JSON(map[string]int{"totalEntries": 2}))
	assert.Equal(t, "{\n  \"totalEntries\": 2\n}\n", out.String())
}

func TestPrinter_Formatters(t *testing.T) {
	p, _, _ := newTestPrinter(false)

	assert.Equal(t, "1.4", p.Score(1.4))
	assert.Equal(t, "0.8", p.Score(0.8))
	assert.Equal(t, "0.6", p.Score(0.6))
	assert.Equal(t, "[snapshot]", p.EventBadge("snapshot"))
	assert.Equal(t, "title", p.Bold("title"))
	assert.Equal(t, "title", p.Dim("title"))
}

func TestTable_Render(t *testing.T) {
	buf := new(bytes.Buffer)
	table := NewTable(buf, []string{"UID", "TITLE"}, false)
	table.AddRow("p1", "Red Sneakers")
	table.AddRow("p2", "Blue Hat")
	assert.Equal(t, 2, table.Len())

	require.NoError(t, table.Render())
	assert.Contains(t, buf.String(), "UID")
	assert.Contains(t, buf.String(), "Red Sneakers")
	assert.Contains(t, buf.String(), "Blue Hat")
}

func TestTable_Quiet(t *testing.T) {
	buf := new(bytes.Buffer)
	table := NewTable(buf, []string{"UID"}, true)
	table.AddRow("p1")

	require.NoError(t, table.Render())
	assert.Empty(t, buf.String())
}
