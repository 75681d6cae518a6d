package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/reposweep/reposweep/internal/filter"
	"github.com/reposweep/reposweep/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Rows in the filter modal
const (
	filterRowVisibility = iota
	filterRowLanguage
	filterRowReset
	filterRowCount
)

const filterModalWidth = 38

// FilterModal adjusts the visibility and language filters. Changes apply
// immediately; the caller re-derives the visible list after each one.
type FilterModal struct {
	visible bool
	cursor  int
	cfg     filter.Config

	// Language picker
	languages   []string // distinct languages from the catalog
	picking     bool
	langInput   textinput.Model
	langCursor  int
	langMatches []int // indices into the candidate list ("Any" + languages)
}

// NewFilterModal creates a new filter modal
func NewFilterModal() FilterModal {
	ti := textinput.New()
	ti.Placeholder = "Type to match a language..."
	ti.CharLimit = 30
	ti.Width = filterModalWidth - 8
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return FilterModal{langInput: ti}
}

// Show displays the modal with the current filter settings
func (m *FilterModal) Show(cfg filter.Config, languages []string) {
	m.visible = true
	m.cursor = filterRowVisibility
	m.cfg = cfg
	m.languages = languages
	m.picking = false
}

// Hide dismisses the modal
func (m *FilterModal) Hide() {
	m.visible = false
	m.picking = false
	m.langInput.Blur()
}

// IsVisible returns whether the modal is shown
func (m FilterModal) IsVisible() bool {
	return m.visible
}

// Config returns the current filter settings
func (m FilterModal) Config() filter.Config {
	return m.cfg
}

// Update handles input events, returns (modal, cmd, changed).
// changed is true when the filter settings were modified.
func (m FilterModal) Update(msg tea.Msg) (FilterModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if m.picking {
		return m.updatePicker(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "F", "q":
			m.Hide()
			return m, nil, false
		case "j", "down":
			if m.cursor < filterRowCount-1 {
				m.cursor++
			}
			return m, nil, false
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil, false
		case "enter", " ", "l", "right":
			return m.activateRow(false)
		case "h", "left":
			return m.activateRow(true)
		}
		return m, nil, false // consume all keys when visible
	}

	return m, nil, false
}

func (m FilterModal) activateRow(backward bool) (FilterModal, tea.Cmd, bool) {
	switch m.cursor {
	case filterRowVisibility:
		m.cycleVisibility(backward)
		return m, nil, true
	case filterRowLanguage:
		m.picking = true
		m.langInput.SetValue("")
		m.langInput.Focus()
		m.applyLangFilter()
		return m, textinput.Blink, false
	case filterRowReset:
		// Keep the sort key: reset only narrows what is shown
		m.cfg.ShowPrivate = true
		m.cfg.ShowPublic = true
		m.cfg.Language = ""
		return m, nil, true
	}
	return m, nil, false
}

func (m FilterModal) updatePicker(msg tea.Msg) (FilterModal, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.picking = false
			m.langInput.Blur()
			return m, nil, false
		case "enter":
			if len(m.langMatches) > 0 && m.langCursor < len(m.langMatches) {
				idx := m.langMatches[m.langCursor]
				if idx == 0 {
					m.cfg.Language = ""
				} else {
					m.cfg.Language = m.languages[idx-1]
				}
				m.picking = false
				m.langInput.Blur()
				return m, nil, true
			}
			return m, nil, false
		case "down", "ctrl+n":
			if m.langCursor < len(m.langMatches)-1 {
				m.langCursor++
			}
			return m, nil, false
		case "up", "ctrl+p":
			if m.langCursor > 0 {
				m.langCursor--
			}
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.langInput, cmd = m.langInput.Update(msg)
	m.applyLangFilter()
	return m, cmd, false
}

// applyLangFilter recomputes the picker matches. Candidate 0 is "Any",
// the rest map to m.languages shifted by one.
func (m *FilterModal) applyLangFilter() {
	candidates := make([]string, 0, len(m.languages)+1)
	candidates = append(candidates, "any")
	for _, lang := range m.languages {
		candidates = append(candidates, strings.ToLower(lang))
	}

	query := strings.ToLower(m.langInput.Value())
	if query == "" {
		m.langMatches = make([]int, len(candidates))
		for i := range candidates {
			m.langMatches[i] = i
		}
	} else {
		matches := fuzzy.Find(query, candidates)
		m.langMatches = make([]int, len(matches))
		for i, match := range matches {
			m.langMatches[i] = match.Index
		}
	}

	m.langCursor = 0
}

func (m *FilterModal) cycleVisibility(backward bool) {
	// All -> Private only -> Public only -> All
	switch {
	case m.cfg.ShowPrivate && !m.cfg.ShowPublic:
		if backward {
			m.cfg.ShowPublic = true
		} else {
			m.cfg.ShowPrivate = false
			m.cfg.ShowPublic = true
		}
	case !m.cfg.ShowPrivate && m.cfg.ShowPublic:
		if backward {
			m.cfg.ShowPrivate = true
			m.cfg.ShowPublic = false
		} else {
			m.cfg.ShowPrivate = true
		}
	default:
		if backward {
			m.cfg.ShowPrivate = false
			m.cfg.ShowPublic = true
		} else {
			m.cfg.ShowPublic = false
		}
	}
}

func (m FilterModal) visibilityLabel() string {
	switch {
	case m.cfg.ShowPrivate && !m.cfg.ShowPublic:
		return "Private only"
	case !m.cfg.ShowPrivate && m.cfg.ShowPublic:
		return "Public only"
	default:
		return "All"
	}
}

// View renders the filter modal
func (m FilterModal) View() string {
	if !m.visible {
		return ""
	}

	if m.picking {
		return m.viewPicker()
	}

	language := m.cfg.Language
	if language == "" {
		language = "Any"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Visibility", "‹ " + m.visibilityLabel() + " ›"},
		{"Language", language},
		{"Reset filters", ""},
	}

	var lines []string
	for i, row := range rows {
		text := "  " + styles.Pad(row.label, 14) + row.value
		if i == m.cursor {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(styles.Pad(text, filterModalWidth)))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(styles.Pad(text, filterModalWidth)))
		}
	}

	content := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.GitHubBlue).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Filters") + "\n" + content)
}

func (m FilterModal) viewPicker() string {
	var b strings.Builder
	b.WriteString(m.langInput.View())
	b.WriteString("\n\n")

	const maxResults = 8
	displayCount := len(m.langMatches)
	if displayCount > maxResults {
		displayCount = maxResults
	}

	if displayCount == 0 {
		b.WriteString(styles.DimStyle.Render("No matches"))
	}

	for i := 0; i < displayCount; i++ {
		idx := m.langMatches[i]
		label := "Any"
		if idx > 0 {
			label = m.languages[idx-1]
		}

		style := styles.NormalItemStyle
		if i == m.langCursor {
			style = styles.SelectedItemStyle
		}
		b.WriteString(style.Render(styles.Pad(label, filterModalWidth-4)))
		if i < displayCount-1 {
			b.WriteString("\n")
		}
	}

	if len(m.langMatches) > maxResults {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("..."))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.GitHubBlue).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Language") + "\n" + b.String())
}
