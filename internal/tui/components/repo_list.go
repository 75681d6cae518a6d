package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/tui/styles"
)

// Spinner frames for loading and pending-delete animation
var repoListSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for the repository list
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Meta columns (visibility, language, stars, age) are dropped below this width
	minMetaWidth = 60
)

// RepoList is the scrollable repository table. Rows show the selection
// checkbox, the delete status glyph, and the repository metadata.
type RepoList struct {
	items []domain.Repository

	// Cursor
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Loading state
	loading      bool
	spinnerFrame int
}

// NewRepoList creates an empty repository list
func NewRepoList() *RepoList {
	return &RepoList{title: "Repositories", focused: true}
}

// SetItems replaces the visible rows and resets the cursor to the top.
// Used when the derivation changes (search, filters, sort, reload).
func (c *RepoList) SetItems(items []domain.Repository) {
	c.items = items
	c.cursor = 0
	c.offset = 0
}

// RefreshItems replaces the visible rows while keeping the cursor on the
// same repository when it is still present. Used when only row state
// changed (selection toggles, delete progress).
func (c *RepoList) RefreshItems(items []domain.Repository) {
	var curID int64
	if repo := c.CursorRepo(); repo != nil {
		curID = repo.ID
	}

	c.items = items

	if curID != 0 {
		for i := range items {
			if items[i].ID == curID {
				c.cursor = i
				c.ensureVisible()
				return
			}
		}
	}

	if c.cursor >= len(items) {
		c.cursor = len(items) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.ensureVisible()
}

// Items returns the currently visible rows
func (c *RepoList) Items() []domain.Repository {
	return c.items
}

// ItemCount returns the number of visible rows
func (c *RepoList) ItemCount() int {
	return len(c.items)
}

// CursorRepo returns a copy of the repository under the cursor
func (c *RepoList) CursorRepo() *domain.Repository {
	if len(c.items) == 0 || c.cursor >= len(c.items) {
		return nil
	}
	repo := c.items[c.cursor]
	return &repo
}

// SetCursorToID moves the cursor to the row with the given repository ID
func (c *RepoList) SetCursorToID(id int64) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.cursor = i
			c.ensureVisible()
			return
		}
	}
}

// SetSize updates the component dimensions
func (c *RepoList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

// SetFocused sets keyboard focus
func (c *RepoList) SetFocused(focused bool) {
	c.focused = focused
}

// SetTitle sets the header line inside the border
func (c *RepoList) SetTitle(title string) {
	c.title = title
}

// SetLoading toggles the loading spinner
func (c *RepoList) SetLoading(loading bool) {
	c.loading = loading
}

// SetSpinnerFrame updates the spinner animation frame
func (c *RepoList) SetSpinnerFrame(frame int) {
	c.spinnerFrame = frame
}

// HandleKey processes a navigation key, returns true if it was consumed
func (c *RepoList) HandleKey(key string) bool {
	count := len(c.items)
	if count == 0 {
		return false
	}

	switch key {
	case "j", "down":
		if c.cursor < count-1 {
			c.cursor++
			c.ensureVisible()
		}
		return true
	case "k", "up":
		if c.cursor > 0 {
			c.cursor--
			c.ensureVisible()
		}
		return true
	case "g", "home":
		c.cursor = 0
		c.offset = 0
		return true
	case "G", "end":
		c.cursor = count - 1
		c.ensureVisible()
		return true
	case "ctrl+d":
		c.cursor += c.maxVisible / 2
		if c.cursor >= count {
			c.cursor = count - 1
		}
		c.ensureVisible()
		return true
	case "ctrl+u":
		c.cursor -= c.maxVisible / 2
		if c.cursor < 0 {
			c.cursor = 0
		}
		c.ensureVisible()
		return true
	}

	return false
}

// View renders the bordered list
func (c *RepoList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	content := c.renderContent()

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(content)
}

// Internal methods

func (c *RepoList) recalcMaxVisible() {
	// Interior height = total - border (top+bottom)
	// Reserve space for: title line + scroll indicators (header + footer)
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1 // -1 for title
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *RepoList) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
	if c.offset > len(c.items) {
		c.offset = 0
	}
}

// Rendering

func (c *RepoList) renderContent() string {
	// Content width = column width - border (2 chars for left+right border)
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading {
		spinner := repoListSpinnerFrames[c.spinnerFrame%len(repoListSpinnerFrames)]
		loadingLine := styles.DimStyle.Render(spinner + " Loading...")
		return titleLine + "\n" + " " + "\n" + loadingLine + "\n" + " "
	}

	count := len(c.items)
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No repositories")
		return titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
	}

	var lines []string

	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}

	now := time.Now()
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRepoItem(c.items[i], i == c.cursor, itemWidth, now))
	}

	// ALWAYS reserve space for header (even if empty) to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	// ALWAYS reserve space for footer (even if empty)
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := strings.Join(lines, "\n")
	return titleLine + "\n" + header + "\n" + content + "\n" + footer
}

func (c *RepoList) renderRepoItem(repo domain.Repository, cursorRow bool, width int, now time.Time) string {
	checkbox := "[ ] "
	checkboxFg := styles.DimGray
	if repo.Selected {
		checkbox = "[x] "
		checkboxFg = styles.GitHubBlue
	}

	statusChar := "  "
	statusFg := styles.DimGray
	switch repo.Status {
	case domain.StatusPending:
		statusChar = repoListSpinnerFrames[c.spinnerFrame%len(repoListSpinnerFrames)] + " "
		statusFg = styles.GitHubBlue
	case domain.StatusDeleted:
		statusChar = styles.DeletedChar + " "
		statusFg = styles.Green
	case domain.StatusFailed:
		statusChar = styles.FailedChar + " "
		statusFg = styles.Red
	}

	// Right-hand meta columns, dropped on narrow terminals
	visText := ""
	visFg := styles.DimGray
	metaRest := ""
	if width >= minMetaWidth {
		visText = "       "
		if repo.Private {
			visText = "private"
			visFg = styles.Yellow
		}
		metaRest = fmt.Sprintf("  %-10s %6d★ %4s",
			styles.Truncate(repo.Language, 10), repo.Stars, repo.AgeLabel(now))
	}
	metaWidth := lipgloss.Width(visText) + lipgloss.Width(metaRest)

	// Available space: width - checkbox(4) - status(2) - meta - gap(2) - margins(2)
	nameAvail := width - 4 - 2 - metaWidth - 2 - 2
	if nameAvail < 5 {
		nameAvail = 5
	}

	name := repo.Name
	if repo.Status == domain.StatusFailed && repo.StatusReason != "" {
		name = name + ": " + repo.StatusReason
	}
	name = styles.Pad(styles.Truncate(name, nameAvail), nameAvail)

	var nameFg *lipgloss.Color
	if repo.Status == domain.StatusFailed {
		red := styles.Red
		nameFg = &red
	}

	parts := []styles.RowPart{
		{Text: checkbox, Foreground: &checkboxFg},
		{Text: statusChar, Foreground: &statusFg},
		{Text: name, Foreground: nameFg},
	}
	if metaWidth > 0 {
		dim := styles.DimGray
		parts = append(parts,
			styles.RowPart{Text: "  " + visText, Foreground: &visFg},
			styles.RowPart{Text: metaRest, Foreground: &dim},
		)
	}

	return styles.RenderListRow(parts, cursorRow, width)
}
