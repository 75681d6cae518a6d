package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/reposweep/reposweep/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help screen: any key returns
	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	// Escape hatch, works even mid-batch
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Nothing to interact with until the catalog is up
	if m.State == StateLoading {
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	// A running batch cannot be cancelled; keep navigation alive so the
	// user can watch rows resolve
	if m.State == StateSweeping {
		switch {
		case key.Matches(msg, Keys.Quit):
			m.StatusMsg = "Deletion in progress"
			m.StatusIsErr = true
			return m, ClearStatusCmd(2 * time.Second)
		case key.Matches(msg, Keys.Up, Keys.Down, Keys.Home, Keys.End, Keys.HalfUp, Keys.HalfDown):
			m.List.HandleKey(msg.String())
		}
		return m, nil
	}

	// Search bar typing mode
	if m.searching {
		switch msg.String() {
		case "esc":
			m.SearchInput.SetValue("")
			m.SearchInput.Blur()
			m.searching = false
			m.List.SetFocused(true)
			m.deriveList()
			return m, nil
		case "enter":
			// Accept the query, return focus to the list
			m.SearchInput.Blur()
			m.searching = false
			m.List.SetFocused(true)
			return m, nil
		}

		var cmd tea.Cmd
		m.SearchInput, cmd = m.SearchInput.Update(msg)
		m.deriveList()
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.SearchInput.Value() != "" {
			m.SearchInput.SetValue("")
			m.deriveList()
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.searching = true
		m.SearchInput.Focus()
		m.List.SetFocused(false)
		return m, textinput.Blink

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.Filters.Sort)
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.FilterModal.Show(m.Filters, m.Catalog.Languages())
		return m, nil

	case key.Matches(msg, Keys.Jump):
		m.JumpPalette.Show(m.List.Items())
		return m, m.JumpPalette.Init()

	case key.Matches(msg, Keys.Refresh):
		m.Loading = true
		m.List.SetLoading(true)
		return m, LoadCatalogCmd(m.CatalogSvc)

	case key.Matches(msg, Keys.Toggle):
		if repo := m.List.CursorRepo(); repo != nil {
			m.Catalog.Toggle(repo.ID)
			m.deriveRefresh()
			m.List.HandleKey("j") // step to the next row, the common bulk gesture
		}
		return m, nil

	case key.Matches(msg, Keys.SelectAll):
		m.Catalog.ToggleAll(true)
		m.deriveRefresh()
		return m, nil

	case key.Matches(msg, Keys.SelectNone):
		m.Catalog.ToggleAll(false)
		m.deriveRefresh()
		return m, nil

	case key.Matches(msg, Keys.Delete):
		selected := m.Catalog.Selected()
		if len(selected) == 0 {
			m.StatusMsg = "Nothing selected"
			m.StatusIsErr = true
			return m, ClearStatusCmd(2 * time.Second)
		}
		m.ConfirmModal.Show(selected)
		return m, nil

	case key.Matches(msg, Keys.Copy):
		if m.Summary != nil && len(m.Summary.Failures) > 0 {
			return m, CopyFailuresCmd(m.Summary.Failures)
		}
		m.StatusMsg = "No failures to copy"
		m.StatusIsErr = false
		return m, ClearStatusCmd(2 * time.Second)

	default:
		m.List.HandleKey(msg.String())
	}

	return m, nil
}

// routeToModal gives the active modal first crack at a key press
func (m Model) routeToModal(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// Jump palette and filter modal own text inputs, so they receive the
	// raw message; the plain modals work on key strings.
	if m.JumpPalette.IsVisible() {
		palette, cmd, jumped := m.JumpPalette.Update(msg)
		m.JumpPalette = palette
		if jumped {
			if id, ok := palette.SelectedID(); ok {
				m.List.SetCursorToID(id)
			}
		}
		return true, m, cmd
	}

	if m.FilterModal.IsVisible() {
		modal, cmd, changed := m.FilterModal.Update(msg)
		m.FilterModal = modal
		if changed {
			m.Filters = modal.Config()
			m.deriveList()
		}
		if !modal.IsVisible() {
			// Persist the settings once the modal closes
			return true, m, tea.Batch(cmd, SaveFilterCmd(m.Prefs, m.Filters))
		}
		return true, m, cmd
	}

	if m.SortModal.IsVisible() {
		_, selection := m.SortModal.HandleKey(msg.String())
		if selection != nil {
			m.Filters.Sort = *selection
			m.deriveList()
			return true, m, SaveFilterCmd(m.Prefs, m.Filters)
		}
		return true, m, nil
	}

	if m.ConfirmModal.IsVisible() {
		_, action, repoID := m.ConfirmModal.HandleKey(msg.String())
		switch action {
		case components.ConfirmAccept:
			m.State = StateSweeping
			m.Summary = nil
			m.sweepIndex = 0
			m.sweepDone = 0
			m.sweepTotal = m.Catalog.SelectedCount()
			return true, m, StartSweepCmd(m.SweepSvc)

		case components.ConfirmRemove:
			m.Catalog.Deselect(repoID)
			m.deriveRefresh()
			remaining := m.Catalog.Selected()
			if len(remaining) == 0 {
				m.ConfirmModal.Hide()
				m.StatusMsg = "Selection is empty"
				m.StatusIsErr = false
				return true, m, ClearStatusCmd(2 * time.Second)
			}
			m.ConfirmModal.SetRepos(remaining)

		case components.ConfirmCopy:
			return true, m, CopyReposCmd(m.Catalog.Selected())
		}
		return true, m, nil
	}

	return false, m, nil
}
