package components

import (
	"fmt"
	"strings"

	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/tui/styles"
)

// ConfirmAction is the outcome of a key press in the confirm modal
type ConfirmAction int

const (
	ConfirmNone ConfirmAction = iota
	ConfirmAccept
	ConfirmCancel
	ConfirmRemove // RepoID identifies the row to drop from the batch
	ConfirmCopy
)

const confirmMaxVisible = 12

// ConfirmModal shows the queued repositories, in batch order, before the
// irreversible part starts. Individual rows can still be dropped here.
type ConfirmModal struct {
	visible bool
	repos   []domain.Repository
	cursor  int
	offset  int
}

// NewConfirmModal creates a new confirm modal
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// Show displays the modal with the queued repositories
func (m *ConfirmModal) Show(repos []domain.Repository) {
	m.visible = true
	m.repos = repos
	m.cursor = 0
	m.offset = 0
}

// SetRepos replaces the queue after a row was dropped
func (m *ConfirmModal) SetRepos(repos []domain.Repository) {
	m.repos = repos
	if m.cursor >= len(repos) {
		m.cursor = len(repos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// Hide dismisses the modal
func (m *ConfirmModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// CursorRepo returns a copy of the repository under the cursor
func (m ConfirmModal) CursorRepo() *domain.Repository {
	if len(m.repos) == 0 || m.cursor >= len(m.repos) {
		return nil
	}
	repo := m.repos[m.cursor]
	return &repo
}

// HandleKey processes a key press, returns (handled, action, repoID).
// repoID is set for ConfirmRemove only.
func (m *ConfirmModal) HandleKey(key string) (handled bool, action ConfirmAction, repoID int64) {
	if !m.visible {
		return false, ConfirmNone, 0
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.repos)-1 {
			m.cursor++
			m.ensureVisible()
		}
		return true, ConfirmNone, 0
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
		return true, ConfirmNone, 0
	case "y", "Y":
		m.Hide()
		return true, ConfirmAccept, 0
	case "x":
		if repo := m.CursorRepo(); repo != nil {
			return true, ConfirmRemove, repo.ID
		}
		return true, ConfirmNone, 0
	case "c":
		return true, ConfirmCopy, 0
	case "esc", "n", "N", "q":
		m.Hide()
		return true, ConfirmCancel, 0
	}

	return true, ConfirmNone, 0 // consume all keys when visible
}

func (m *ConfirmModal) ensureVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+confirmMaxVisible {
		m.offset = m.cursor - confirmMaxVisible + 1
	}
}

// View renders the confirm modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	const width = 54

	var b strings.Builder

	title := fmt.Sprintf("Delete %d repositories?", len(m.repos))
	if len(m.repos) == 1 {
		title = "Delete 1 repository?"
	}
	b.WriteString(styles.ModalTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(styles.ErrorStyle.Render("This cannot be undone."))
	b.WriteString("\n\n")

	end := m.offset + confirmMaxVisible
	if end > len(m.repos) {
		end = len(m.repos)
	}

	if m.offset > 0 {
		b.WriteString(styles.DimStyle.Render("↑ more"))
		b.WriteString("\n")
	}

	for i := m.offset; i < end; i++ {
		repo := m.repos[i]

		name := styles.Truncate(repo.FullName, width-14)
		line := fmt.Sprintf("%2d. %s", i+1, name)
		if repo.Private {
			line += " " + styles.WarnStyle.Render("private")
		}

		if i == m.cursor {
			b.WriteString(styles.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if end < len(m.repos) {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("↓ %d more", len(m.repos)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpKeyStyle.Render("y"))
	b.WriteString(styles.HelpDescStyle.Render(" delete  "))
	b.WriteString(styles.HelpKeyStyle.Render("x"))
	b.WriteString(styles.HelpDescStyle.Render(" drop row  "))
	b.WriteString(styles.HelpKeyStyle.Render("c"))
	b.WriteString(styles.HelpDescStyle.Render(" copy list  "))
	b.WriteString(styles.HelpKeyStyle.Render("esc"))
	b.WriteString(styles.HelpDescStyle.Render(" cancel"))

	return styles.DangerModalStyle.Width(width).Render(b.String())
}
