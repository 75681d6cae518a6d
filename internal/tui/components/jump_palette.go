package components

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/tui/styles"
)

const (
	jumpModalWidth = 48
	jumpMaxResults = 10
)

// JumpPalette is the fuzzy jump modal. It matches against the visible rows
// and moves the list cursor to the chosen repository.
type JumpPalette struct {
	input   textinput.Model
	names   []string
	ids     []int64
	matches []int // indices into names, ranked
	cursor  int
	visible bool
}

// NewJumpPalette creates a new jump palette
func NewJumpPalette() JumpPalette {
	ti := textinput.New()
	ti.Placeholder = "Jump to repository..."
	ti.CharLimit = 100
	ti.Width = jumpModalWidth - 8
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return JumpPalette{input: ti}
}

// Show makes the palette visible with the given candidate rows
func (p *JumpPalette) Show(repos []domain.Repository) {
	p.visible = true
	p.input.Focus()
	p.input.SetValue("")
	p.cursor = 0

	p.names = make([]string, len(repos))
	p.ids = make([]int64, len(repos))
	for i, repo := range repos {
		p.names[i] = repo.Name
		p.ids[i] = repo.ID
	}
	p.refilter()
}

// Hide hides the palette
func (p *JumpPalette) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns true if the palette is visible
func (p JumpPalette) IsVisible() bool {
	return p.visible
}

// SelectedID returns the repository ID under the palette cursor
func (p JumpPalette) SelectedID() (int64, bool) {
	if len(p.matches) == 0 || p.cursor >= len(p.matches) {
		return 0, false
	}
	return p.ids[p.matches[p.cursor]], true
}

// Init initializes the component
func (p JumpPalette) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages, returns (palette, cmd, jumped)
func (p JumpPalette) Update(msg tea.Msg) (JumpPalette, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.Hide()
			return p, nil, false

		case "enter":
			if len(p.matches) > 0 {
				p.Hide()
				return p, nil, true
			}
			return p, nil, false

		case "down", "ctrl+n":
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil, false

		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, false

		default:
			p.input, cmd = p.input.Update(msg)
			p.refilter()
			return p, cmd, false
		}
	}

	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

// refilter ranks the candidates against the current query. An empty query
// keeps the rows in list order.
func (p *JumpPalette) refilter() {
	query := p.input.Value()
	p.cursor = 0

	if query == "" {
		p.matches = make([]int, len(p.names))
		for i := range p.names {
			p.matches[i] = i
		}
		return
	}

	ranks := fuzzy.RankFindFold(query, p.names)
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	p.matches = make([]int, len(ranks))
	for i, rank := range ranks {
		p.matches[i] = rank.OriginalIndex
	}
}

// View renders the palette
func (p JumpPalette) View() string {
	if !p.visible {
		return ""
	}

	out := p.input.View() + "\n\n"

	if len(p.matches) == 0 && p.input.Value() != "" {
		out += styles.DimStyle.Render("No matches")
	}

	displayCount := len(p.matches)
	if displayCount > jumpMaxResults {
		displayCount = jumpMaxResults
	}

	for i := 0; i < displayCount; i++ {
		name := styles.Truncate(p.names[p.matches[i]], jumpModalWidth-8)

		style := styles.NormalItemStyle
		if i == p.cursor {
			style = styles.SelectedItemStyle
		}
		out += style.Render(name)
		if i < displayCount-1 {
			out += "\n"
		}
	}

	if len(p.matches) > jumpMaxResults {
		out += "\n" + styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(p.matches)-jumpMaxResults))
	}

	return styles.ModalStyle.Width(jumpModalWidth).Render(out)
}
