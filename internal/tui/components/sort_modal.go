package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/reposweep/reposweep/internal/filter"
	"github.com/reposweep/reposweep/internal/tui/styles"
)

// SortModal is a small popup for choosing the sort order
type SortModal struct {
	visible   bool
	options   []filter.SortKey
	cursor    int
	activeKey filter.SortKey
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{}
}

// Show displays the modal with the cursor on the active sort key
func (m *SortModal) Show(activeKey filter.SortKey) {
	m.visible = true
	m.options = filter.AllSortKeys()
	m.activeKey = activeKey
	m.cursor = 0
	for i, opt := range m.options {
		if opt == activeKey {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *filter.SortKey) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		chosen := m.options[m.cursor]
		m.Hide()
		return true, &chosen
	case "esc", "s":
		m.Hide()
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		focused := i == m.cursor
		isActive := opt == m.activeKey

		var prefix string
		if isActive {
			prefix = "✓ "
		} else {
			prefix = "  "
		}

		text := prefix + opt.String()

		if focused {
			line := lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(styles.Pad(text, 20))
			lines = append(lines, line)
		} else if isActive {
			line := lipgloss.NewStyle().
				Foreground(styles.GitHubBlue).
				Render(styles.Pad(text, 20))
			lines = append(lines, line)
		} else {
			line := lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(styles.Pad(text, 20))
			lines = append(lines, line)
		}
	}

	content := strings.Join(lines, "\n")

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.GitHubBlue).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + content)

	return modal
}
