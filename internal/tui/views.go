package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/reposweep/reposweep/internal/filter"
	"github.com/reposweep/reposweep/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.State == StateLoading {
		return m.renderStartup()
	}

	header := m.renderHeader()
	searchBar := m.SearchInput.View()

	m.List.SetSize(m.Width, m.Height-ChromeHeight)
	content := m.List.View()

	footer := m.renderFooter()

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		searchBar,
		content,
		footer,
	)

	// Overlay the active modal if any
	if m.JumpPalette.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.JumpPalette.View())
	}

	if m.FilterModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.FilterModal.View())
	}

	if m.SortModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SortModal.View())
	}

	if m.ConfirmModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.ConfirmModal.View())
	}

	return view
}

// renderStartup renders the centered verify/fetch progress screen
func (m Model) renderStartup() string {
	phase := "Verifying token..."
	if m.verified {
		phase = "Loading repositories..."
	}

	content := RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render(phase)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		content)
}

// renderHeader renders the single-line application header
func (m Model) renderHeader() string {
	left := styles.TitleStyle.Render("reposweep")
	if m.Account.Login != "" {
		left += styles.DimStyle.Render("  @" + m.Account.Login)
	}

	var right string
	if m.Truncated {
		right = styles.WarnStyle.Render(fmt.Sprintf("showing first %d, more exist", m.Catalog.Len()))
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner + progress while busy, otherwise the status line
	var left string
	if m.State == StateSweeping {
		var bar string
		if m.sweepTotal > 0 {
			pct := float64(m.sweepDone) / float64(m.sweepTotal) * 100
			bar = " " + styles.RenderProgressBar(pct, 16)
		}
		progress := fmt.Sprintf("Deleting %d/%d", m.sweepIndex, m.sweepTotal)
		if m.sweepCurrent != "" {
			progress += " " + m.sweepCurrent
		}
		left = RenderSpinner(m.SpinnerFrame) + bar + " " + styles.DimStyle.Render(progress)
	} else if m.Loading {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center section: active filter hints
	center := m.renderFilterHints()

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	// Layout: left + centered hints + right
	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderFilterHints summarizes the non-default derivation settings
func (m Model) renderFilterHints() string {
	var parts []string

	switch {
	case m.Filters.ShowPrivate && !m.Filters.ShowPublic:
		parts = append(parts, "private only")
	case !m.Filters.ShowPrivate && m.Filters.ShowPublic:
		parts = append(parts, "public only")
	}

	if m.Filters.Language != "" {
		parts = append(parts, "lang:"+m.Filters.Language)
	}

	if m.Filters.Sort != filter.DefaultConfig().Sort {
		parts = append(parts, "sort:"+m.Filters.Sort.String())
	}

	if len(parts) == 0 {
		return ""
	}
	return styles.AccentStyle.Render("F") + styles.DimStyle.Render(" "+strings.Join(parts, "  "))
}

// renderHelp renders the full-screen key reference
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      SELECTION
  j/k        Up/down               Space  Toggle repository
  g/G        First/last            a      Select all
  Ctrl+u/d   Scroll half page      A      Clear selection

SEARCH & VIEW                   ACTIONS
  /          Search                d      Delete selected...
  f          Jump to repository    r      Reload list
  F          Filters               c      Copy failure list
  s          Sort                  q      Quit
  ?          This help             Esc    Close / Clear

Deletions are permanent. The confirm screen lists every
repository in the order it will be removed.

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}
