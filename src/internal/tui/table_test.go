package tui

import (
	"strings"
	"testing"
)

func TestTable_RenderContainsCells(t *testing.T) {
	table := NewTable("Version", "LTS")
	table.AddRow("20.10.0", "Iron")
	table.AddActiveRow("18.19.0", "Hydrogen")

	out := table.Render()
	for _, want := range []string{"Version", "LTS", "20.10.0", "Iron", "18.19.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q", want)
		}
	}
}

func TestTable_RowCount(t *testing.T) {
	table := NewTable("Manager")
	table.AddRow("nvm")
	table.AddRow("fnm")

	if got := table.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2", got)
	}
}

func TestTable_NoHeadersRendersEmpty(t *testing.T) {
	table := &Table{}
	if out := table.Render(); out != "" {
		t.Errorf("Render() = %q, want empty for headerless table", out)
	}
}

func TestTable_TitleAndHiddenHeader(t *testing.T) {
	table := NewTable("")
	table.SetTitle("Installed")
	table.HideHeader()
	table.AddRow("20.10.0")

	out := table.Render()
	if !strings.Contains(out, "Installed") {
		t.Error("rendered table missing title")
	}
}
