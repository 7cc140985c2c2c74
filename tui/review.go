// ABOUTME: Terminal review form using bubbletea framework
// ABOUTME: Lets the user check and correct extracted fields before saving
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/cardsnap/models"
	"github.com/harperreed/cardsnap/session"
)

// fieldRow pairs a catalog field with its form input
type fieldRow struct {
	def   models.FieldDefinition
	input textinput.Model
}

// Model is the review form bubbletea model
type Model struct {
	store *session.Store

	extracted []string
	missing   []string
	rows      []fieldRow
	rowIndex  map[string]int

	focusIndex int
	confirmed  bool
	width      int
	height     int
}

// NewModel builds a review form for the session's current record. The
// extracted/missing split is frozen here, so fields the user fills in
// stay in their original section.
func NewModel(store *session.Store) Model {
	extracted, missing := store.ReviewPartition()
	record := store.Record()

	m := Model{
		store:     store,
		extracted: extracted,
		missing:   missing,
		rowIndex:  map[string]int{},
		width:     80,
		height:    24,
	}

	for _, key := range append(append([]string{}, extracted...), missing...) {
		def, ok := models.DefinitionFor(key)
		if !ok || def.ReadOnly {
			continue
		}

		input := textinput.New()
		input.Placeholder = def.Placeholder
		input.CharLimit = 500
		input.SetValue(record.Field(key))

		m.rowIndex[key] = len(m.rows)
		m.rows = append(m.rows, fieldRow{def: def, input: input})
	}

	m.updateFocus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.confirmed = false
		return m, tea.Quit
	case "enter":
		m.confirmed = true
		return m, tea.Quit
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.rows)
		m.updateFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex - 1 + len(m.rows)) % len(m.rows)
		m.updateFocus()
		return m, nil
	case "left", "right":
		if row := &m.rows[m.focusIndex]; len(row.def.Options) > 0 {
			m.cycleOption(row, msg.String() == "right")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.rows[m.focusIndex].input, cmd = m.rows[m.focusIndex].input.Update(msg)
	m.commitField(m.focusIndex)
	return m, cmd
}

// cycleOption steps a select field through its option list
func (m *Model) cycleOption(row *fieldRow, forward bool) {
	options := row.def.Options
	current := -1
	for i, opt := range options {
		if opt == row.input.Value() {
			current = i
		}
	}

	var next int
	if forward {
		next = (current + 1) % len(options)
	} else {
		next = (current - 1 + len(options)) % len(options)
	}

	row.input.SetValue(options[next])
	m.commitField(m.focusIndex)
}

// commitField writes the focused input back to the session so the
// due date and completeness stay current while typing
func (m *Model) commitField(index int) {
	row := m.rows[index]
	m.store.SetField(row.def.Key, row.input.Value())
}

func (m *Model) updateFocus() {
	for i := range m.rows {
		if i == m.focusIndex {
			m.rows[i].input.Focus()
		} else {
			m.rows[i].input.Blur()
		}
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("REVIEW CONTACT"))
	s.WriteString("\n")
	s.WriteString(completenessStyle.Render(fmt.Sprintf("Completeness: %d%%", m.store.Completeness())))
	s.WriteString("\n\n")

	if len(m.extracted) > 0 {
		s.WriteString(sectionStyle.Render("EXTRACTED"))
		s.WriteString("\n")
		m.renderSection(&s, m.extracted)
		s.WriteString("\n")
	}

	if len(m.missing) > 0 {
		s.WriteString(sectionStyle.Render("STILL MISSING"))
		s.WriteString("\n")
		m.renderSection(&s, m.missing)
		s.WriteString("\n")
	}

	s.WriteString(m.renderHelp())
	return s.String()
}

func (m Model) renderSection(s *strings.Builder, keys []string) {
	record := m.store.Record()

	for _, key := range keys {
		def, ok := models.DefinitionFor(key)
		if !ok {
			continue
		}

		if def.ReadOnly {
			value := record.Field(key)
			if value == "" {
				value = "-"
			}
			s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(def.Label+":"), readOnlyStyle.Render(value)))
			continue
		}

		index, ok := m.rowIndex[key]
		if !ok {
			continue
		}

		if index == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(labelStyle.Render(def.Label + ":"))
		s.WriteString(" ")
		s.WriteString(m.rows[index].input.View())
		s.WriteString("\n")
	}
}

func (m Model) renderHelp() string {
	help := []string{
		"Tab: Next field",
		"Left/Right: Cycle options",
		"Enter: Save",
		"Esc: Discard",
	}
	return helpStyle.Render(strings.Join(help, "  "))
}

// RunReview opens the review form and blocks until the user saves or
// discards. Edits land in the session either way; the return value says
// whether to go ahead with the save.
func RunReview(store *session.Store) (bool, error) {
	program := tea.NewProgram(NewModel(store))
	final, err := program.Run()
	if err != nil {
		return false, err
	}

	model, ok := final.(Model)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}
	return model.confirmed, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	completenessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("114"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	readOnlyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
