package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	maxContentWidth = 80
	minContentWidth = 24
	leftPad         = 1
)

// hitMap records where the last View put the clickable parts of the UID block.
// Rows are screen lines, columns are cells.
type hitMap struct {
	sourceRow     int
	uidTop        int
	uidBottom     int
	regenRow      int
	regenCol      int
	suggestionRow int
}

func (m *formModel) contentWidth() int {
	w := m.width - 2*leftPad
	if w > maxContentWidth {
		w = maxContentWidth
	}
	if w < minContentWidth {
		w = minContentWidth
	}
	return w
}

func (m *formModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.contentWidth()
	hits := hitMap{sourceRow: -1, regenRow: -1, regenCol: -1, suggestionRow: -1}
	var lines []string
	add := func(s ...string) {
		for _, block := range s {
			lines = append(lines, strings.Split(block, "\n")...)
		}
	}

	mode := "editing"
	if m.ctrl.Creating() {
		mode = "new entry"
	}
	add(styleMuted().Render(truncate(m.opts.ContentTypeUID+" "+glyphSeparator()+" "+m.opts.Field+" ("+mode+")", w)), "")

	if m.opts.TargetField != "" {
		add(m.labelStyle(focusSource).Render(m.opts.TargetField))
		hits.sourceRow = len(lines)
		add(renderInputLine(w, m.source.View()), "")
	}

	hits.uidTop = len(lines)
	label := m.opts.Field
	if m.opts.Required {
		label += " *"
	}
	add(joinLeftRight(m.labelStyle(focusUID).Render(label), m.rightLabel(), w))

	inputW := w
	if m.opts.Editable {
		inputW = w - 2
	}
	row := renderInputLine(inputW, m.uid.View())
	if m.opts.Editable {
		hits.regenRow = len(lines)
		hits.regenCol = leftPad + inputW + 1
		row += " " + m.regenerateButton()
	}
	add(row)

	if s := m.suggestionText(); s != "" {
		add(styleDropdown().Width(w).Render("Suggested"))
		hits.suggestionRow = len(lines)
		option := styleDropdownOption().Render(truncate(s, w-4))
		add(lipgloss.PlaceHorizontal(w, lipgloss.Left, option,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(colors.dropBg)))
	}
	hits.uidBottom = len(lines) - 1

	// Error replaces the description, never both.
	if err := m.ctrl.Err(); err != nil {
		add(styleError().Render(truncate(err.Error(), w)))
	} else if d := renderDescription(m.opts.Description, w); d != "" {
		add(d)
	}

	add("", m.help.View(m.keys))
	if m.flash != "" {
		add(styleError().Render(truncate(m.flash, w)))
	}

	m.hits = hits
	pad := strings.Repeat(" ", leftPad)
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (m *formModel) labelStyle(area focusArea) lipgloss.Style {
	if m.focus == area {
		return styleFocusedLabel()
	}
	return styleLabel()
}

// rightLabel is the hover label when set, otherwise the availability verdict.
func (m *formModel) rightLabel() string {
	if l := m.ctrl.HoverLabel(); l != "" {
		return styleHoverLabel().Render(l)
	}
	av := m.ctrl.Availability()
	if av == nil {
		return ""
	}
	if av.IsAvailable {
		return styleAvailable().Render(glyphAvailable() + " Available")
	}
	return styleUnavailable().Render(glyphUnavailable() + " Unavailable")
}

func (m *formModel) regenerateButton() string {
	if m.ctrl.Loading() {
		return xansi.Truncate(m.spin.View(), 1, "")
	}
	if m.ctrl.HoverLabel() != "" {
		return styleHoverLabel().Render(glyphRegenerate())
	}
	return styleMuted().Render(glyphRegenerate())
}

func (m *formModel) overRegenerate(x, y int) bool {
	return m.opts.Editable && y == m.hits.regenRow && x == m.hits.regenCol
}

func (m *formModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	over := m.overRegenerate(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		m.ctrl.HoverRegenerate(over)
		return nil
	case tea.MouseActionPress:
	default:
		return nil
	}
	if msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch {
	case over:
		return m.ctrl.Regenerate()
	case m.hits.suggestionRow >= 0 && msg.Y == m.hits.suggestionRow:
		return m.ctrl.AcceptSuggestion()
	case msg.Y >= m.hits.uidTop && msg.Y <= m.hits.uidBottom:
		if m.focus != focusUID {
			m.source.Blur()
			return m.focusUID()
		}
		return nil
	}

	m.ctrl.ClickOutside()
	if m.hits.sourceRow >= 0 && msg.Y == m.hits.sourceRow && m.focus != focusSource {
		m.blurUID()
		m.focus = focusSource
		return m.source.Focus()
	}
	return nil
}

// suggestionText is the suggestion shown in the dropdown, or "" when closed.
func (m *formModel) suggestionText() string {
	if !m.ctrl.SuggestionOpen() {
		return ""
	}
	if av := m.ctrl.Availability(); av.HasSuggestion() {
		return av.Suggestion
	}
	return ""
}
