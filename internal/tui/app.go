package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/filter"
	"github.com/reposweep/reposweep/internal/service"
	"github.com/reposweep/reposweep/internal/state"
	"github.com/reposweep/reposweep/internal/tui/components"
	"github.com/reposweep/reposweep/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading ApplicationState = iota // startup verify + first fetch
	StateBrowsing
	StateSweeping
	StateHelp
)

// Chrome: header line + search bar + footer line
const ChromeHeight = 3

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	SessionSvc *service.SessionService
	CatalogSvc *service.CatalogService
	SweepSvc   *service.SweepService

	Catalog *domain.Catalog
	Prefs   *state.Store

	// UI components
	List         *components.RepoList
	SearchInput  textinput.Model
	SortModal    components.SortModal
	FilterModal  components.FilterModal
	ConfirmModal components.ConfirmModal
	JumpPalette  components.JumpPalette

	// View derivation
	Filters   filter.Config
	searching bool // search bar has keyboard focus

	// Data
	Account   domain.Account
	Truncated bool

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	SpinnerFrame int
	verified     bool

	// Batch progress
	sweepIndex   int
	sweepTotal   int
	sweepDone    int // resolved items, drives the footer bar
	sweepCurrent string
	Summary      *service.SweepSummary

	// Set when startup fails; main inspects it after the program exits
	FatalErr error
}

// NewModel creates a new application model
func NewModel(
	sessionSvc *service.SessionService,
	catalogSvc *service.CatalogService,
	sweepSvc *service.SweepService,
	catalog *domain.Catalog,
	prefs *state.Store,
	filters filter.Config,
) Model {
	ti := textinput.New()
	ti.Placeholder = "Search repositories..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.PlaceholderStyle = styles.DimStyle

	list := components.NewRepoList()
	list.SetLoading(true)

	return Model{
		State:        StateLoading,
		SessionSvc:   sessionSvc,
		CatalogSvc:   catalogSvc,
		SweepSvc:     sweepSvc,
		Catalog:      catalog,
		Prefs:        prefs,
		List:         list,
		SearchInput:  ti,
		SortModal:    components.NewSortModal(),
		FilterModal:  components.NewFilterModal(),
		ConfirmModal: components.NewConfirmModal(),
		JumpPalette:  components.NewJumpPalette(),
		Filters:      filters,
		Loading:      true,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		VerifyCmd(m.SessionSvc),
		TickCmd(100*time.Millisecond),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.List.SetSize(m.Width, m.Height-ChromeHeight)
		m.SearchInput.Width = m.Width - 6
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(100 * time.Millisecond)

	case VerifiedMsg:
		m.verified = true
		m.Account = msg.Account
		m.StatusMsg = "Signed in as @" + msg.Account.Login
		m.StatusIsErr = false
		return m, tea.Batch(
			LoadCatalogCmd(m.CatalogSvc),
			ClearStatusCmd(3*time.Second),
		)

	case CatalogLoadedMsg:
		m.Loading = false
		m.List.SetLoading(false)
		m.State = StateBrowsing
		m.Truncated = msg.Truncated
		m.deriveList()
		m.StatusMsg = fmt.Sprintf("Loaded %d repositories", msg.Count)
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case SweepProgressMsg:
		m.applySweepProgress(msg.Progress)
		if cmd, ok := msg.NextCmd.(tea.Cmd); ok && cmd != nil {
			return m, cmd
		}
		return m, nil

	case SweepDoneMsg:
		return m.finishSweep(msg)

	case CopiedMsg:
		m.StatusMsg = fmt.Sprintf("✓ Copied %d entries to clipboard", msg.Count)
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		return m.handleErrMsg(msg)
	}

	return m, nil
}

// handleErrMsg routes command failures. Startup failures end the program so
// main can print guidance; everything later lands in the status line.
func (m Model) handleErrMsg(msg ErrMsg) (tea.Model, tea.Cmd) {
	m.Loading = false
	m.List.SetLoading(false)

	if m.State == StateLoading && !m.verified {
		m.FatalErr = msg.Err
		return m, tea.Quit
	}

	if m.State == StateLoading {
		// Verified but the first fetch failed: drop into browsing so the
		// user can retry with r.
		m.State = StateBrowsing
	}

	m.deriveList()
	m.StatusMsg = msg.Error()
	m.StatusIsErr = true
	return m, nil
}

// applySweepProgress folds one batch event into the view
func (m *Model) applySweepProgress(p service.SweepProgress) {
	m.sweepIndex = p.Index
	m.sweepTotal = p.Total
	if p.Resolved {
		m.sweepDone++
	} else {
		m.sweepCurrent = p.FullName
	}
	m.deriveRefresh()
}

// finishSweep lands the batch outcome in the UI
func (m Model) finishSweep(msg SweepDoneMsg) (tea.Model, tea.Cmd) {
	m.State = StateBrowsing
	m.sweepCurrent = ""
	m.Summary = msg.Summary

	if msg.Err != nil {
		m.deriveRefresh()
		m.StatusMsg = msg.Err.Error()
		m.StatusIsErr = true
		return m, nil
	}

	summary := msg.Summary
	if summary.FullSuccess() {
		// The catalog was refetched after the clean run
		m.deriveList()
		m.StatusMsg = fmt.Sprintf("Deleted %d repositories", summary.Deleted)
		m.StatusIsErr = false
		if summary.RefetchErr != nil {
			m.StatusMsg += ", reload failed: " + summary.RefetchErr.Error()
			m.StatusIsErr = true
		}
		return m, nil
	}

	m.deriveRefresh()
	m.StatusMsg = fmt.Sprintf("Deleted %d, %d failed. Press c to copy failures", summary.Deleted, summary.Failed)
	m.StatusIsErr = true
	return m, nil
}

// deriveList rebuilds the visible rows from the catalog, cursor to the top.
// Used when the derivation inputs change (search, filters, sort, reload).
func (m *Model) deriveList() {
	items := filter.Derive(m.Catalog.Items(), m.SearchInput.Value(), m.Filters)
	m.List.SetItems(items)
	m.updateListTitle()
}

// deriveRefresh rebuilds the visible rows keeping the cursor in place.
// Used when only row state changed (selection, delete progress).
func (m *Model) deriveRefresh() {
	items := filter.Derive(m.Catalog.Items(), m.SearchInput.Value(), m.Filters)
	m.List.RefreshItems(items)
	m.updateListTitle()
}

func (m *Model) updateListTitle() {
	title := fmt.Sprintf("Repositories %d/%d", m.List.ItemCount(), m.Catalog.Len())
	if selected := m.Catalog.SelectedCount(); selected > 0 {
		title += fmt.Sprintf(" (%d selected)", selected)
	}
	m.List.SetTitle(title)
}
