package tui

import (
	"strings"

	"todo-cli/internal/model"
	"todo-cli/internal/session"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	w := m.contentWidth()
	var body string
	switch m.view {
	case viewLanding:
		body = m.viewLanding(w)
	default:
		body = m.viewTasks(w)
	}

	if m.height > 0 {
		body = normalizePane(body, w, m.height)
	}
	if m.width > w {
		body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	}

	if m.modal == modalNotes && m.tasks != nil {
		box := renderModalBox(m.width, notesModalTitle(m.tasks), m.viewNotesModal())
		return placeCenter(m.width, m.height, box)
	}
	return body
}

// greeting picks the short or long header text for the given width.
func greeting(identifier string, width int) string {
	name := session.DisplayName(identifier)
	if width < wideHeaderW {
		return "Welcome, " + name + "!"
	}
	return "Hey, " + name + "! Welcome to your To-Do list, let's make the day productive."
}

func (m appModel) viewHeader(w int) string {
	id, _ := m.gate.Current()
	theme := styleMuted().Render(glyphTheme(m.dark) + " t")
	titleW := w - lipgloss.Width(theme) - 1
	if titleW < 1 {
		titleW = 1
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorHeaderFg).
		Width(titleW).
		Align(lipgloss.Center).
		Render(xansi.Truncate(greeting(id, titleW), titleW, "…"))
	line := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", theme)
	rule := lipgloss.NewStyle().Foreground(colorBorder).Render(strings.Repeat("─", w))
	return line + "\n" + rule
}

func (m appModel) viewLanding(w int) string {
	cardW := w - 4
	if cardW > 56 {
		cardW = 56
	}
	if cardW < 20 {
		cardW = 20
	}
	inner := cardW - 4

	title := lipgloss.NewStyle().Bold(true).Width(inner).Align(lipgloss.Center).Render("Welcome 👋")
	desc := styleMuted().Width(inner).Align(lipgloss.Center).
		Render("Enter your email to unlock your to-do list and make today productive.")
	input := renderInputLine(inner, m.identityInput.View())
	button := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccentFg).
		Background(colorAccent).
		Width(inner).
		Align(lipgloss.Center).
		Render("Continue →")

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 1).
		Render(strings.Join([]string{title, "", desc, "", input, "", button}, "\n"))

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", topPadLines))
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, card))
	b.WriteString("\n\n")
	b.WriteString(m.viewFooter(w, m.keys.landingHelp()))
	return b.String()
}

func (m appModel) viewTasks(w int) string {
	var b strings.Builder
	b.WriteString(m.viewHeader(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("\n", topPadLines))

	heading := lipgloss.NewStyle().Bold(true).Render("Your Tasks")
	logout := styleMuted().Render("L: logout")
	gap := w - lipgloss.Width(heading) - lipgloss.Width(logout)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(heading + strings.Repeat(" ", gap) + logout)
	b.WriteString("\n\n")

	sorted := m.tasks.Sorted()
	if len(sorted) == 0 {
		b.WriteString(styleMuted().Render("No tasks. Press a to add one."))
		b.WriteString("\n")
	}
	for _, t := range sorted {
		b.WriteString(m.renderRow(t, w))
		b.WriteString("\n")
	}

	if t, ok := m.selectedTask(); ok && strings.TrimSpace(t.Notes) != "" && m.modal == modalNone {
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(glyphNotes() + " Notes"))
		b.WriteString("\n")
		b.WriteString(renderMarkdown(t.Notes, w-2, m.dark))
		b.WriteString("\n")
	}

	help := m.keys.tasksHelp()
	if m.editing {
		help = m.keys.editHelp()
	}
	b.WriteString("\n")
	b.WriteString(m.viewFooter(w, help))
	return b.String()
}

func (m appModel) renderRow(t model.Task, w int) string {
	selected := t.ID == m.cursorID
	cursor := " "
	if selected {
		cursor = glyphCursor()
	}
	prefix := cursor + " " + glyphCheckbox(t.IsCompleted) + " "
	marker := rowMarker(t)
	textW := rowTextWidth(t, w)

	if selected && m.editing {
		return prefix + renderInputLine(textW, m.textInput.View())
	}

	st := lipgloss.NewStyle()
	text := t.Text
	switch {
	case t.IsCompleted:
		st = st.Strikethrough(true).Foreground(colorDoneFg)
	case text == "":
		st = styleMuted()
		text = m.textInput.Placeholder
	}
	text = xansi.Truncate(strings.ReplaceAll(text, "\n", " "), textW, "…")
	row := prefix + st.Render(text) + styleMuted().Render(marker)
	if selected {
		row = lipgloss.NewStyle().
			Background(colorSelectBg).
			Foreground(colorSelectFg).
			Width(w).
			Render(row)
	}
	return row
}

func rowMarker(t model.Task) string {
	if strings.TrimSpace(t.Notes) == "" {
		return ""
	}
	return " " + glyphNotes()
}

// rowTextWidth is the room left for a row's text after the cursor, checkbox
// and notes marker.
func rowTextWidth(t model.Task, w int) int {
	prefix := glyphCursor() + " " + glyphCheckbox(t.IsCompleted) + " "
	textW := w - xansi.StringWidth(prefix) - xansi.StringWidth(rowMarker(t))
	if textW < 1 {
		textW = 1
	}
	return textW
}

func (m appModel) viewNotesModal() string {
	bodyW := modalBodyWidth(m.width)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Render(m.notesInput.View()))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.notesHelp()))
	return lipgloss.NewStyle().Width(bodyW).Render(b.String())
}

func (m appModel) viewFooter(w int, bindings []key.Binding) string {
	var lines []string
	if m.minibufferText != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorErrorFg).
			Render(xansi.Truncate(m.minibufferText, w, "…")))
	}
	lines = append(lines, m.help.ShortHelpView(bindings))
	return strings.Join(lines, "\n")
}
