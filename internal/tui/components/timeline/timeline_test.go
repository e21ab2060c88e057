package timeline

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
)

func sampleColumns() []Column {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return []Column{
		{
			Task: models.Task{ID: "t1", Name: "Disclosure", Color: "#4C6A92"},
			Entries: []models.CalendarEntry{
				{ID: "e1", TaskID: "t1", Start: day.Add(9 * time.Hour), End: day.Add(9*time.Hour + 35*time.Minute), Notes: "reviewed bundle"},
			},
		},
		{
			Task: models.Task{ID: "t2", Name: "Research", Color: "#6B8E6E"},
			Entries: []models.CalendarEntry{
				{ID: "e2", TaskID: "t2", Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour), Notes: "limitation periods"},
			},
		},
	}
}

func TestMatches(t *testing.T) {
	cols := sampleColumns()
	e := cols[0].Entries[0]

	assert.True(t, matches(e, cols[0].Task, "bundle"))
	assert.True(t, matches(e, cols[0].Task, "disclosure"), "task name matches too")
	assert.False(t, matches(e, cols[0].Task, "limitation"))
}

func TestToggleHidesColumn(t *testing.T) {
	m := New(100, 30)
	m.SetColumns(sampleColumns())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	assert.True(t, m.hidden["t2"])
	assert.Contains(t, m.render(), "(hidden)")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	assert.False(t, m.hidden["t2"])
}

func TestTruncate_MeasuresCellsNotBytes(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	// Multi-byte note text: the cap is in cells and never splits a rune.
	out := truncate("призначено слухання у справі", 10)
	assert.Equal(t, 10, runewidth.StringWidth(out))
	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "…"))
}

func TestFilterNarrowsEntries(t *testing.T) {
	m := New(100, 30)
	m.SetColumns(sampleColumns())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	require.True(t, m.Filtering())

	for _, r := range "bundle" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	out := m.render()
	assert.Contains(t, out, "reviewed bundle")
	assert.Contains(t, out, "no matching entries")

	// Esc blurs and clears the filter.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Filtering())
	assert.Contains(t, m.render(), "limitation periods")
}
