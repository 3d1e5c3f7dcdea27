package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/launcher"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tmdb"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Tab is one of the listings the browser can show
type Tab int

const (
	TabTrending Tab = iota
	TabFavourites
	TabRatings
	TabSearch
)

var tabOrder = []Tab{TabTrending, TabFavourites, TabRatings, TabSearch}

func (t Tab) String() string {
	switch t {
	case TabTrending:
		return "trending"
	case TabFavourites:
		return "favourites"
	case TabRatings:
		return "ratings"
	case TabSearch:
		return "search"
	default:
		return "unknown"
	}
}

// inputMode tracks what the text input is collecting
type inputMode int

const (
	inputNone inputMode = iota
	inputFilter
	inputSearch
)

// Vertical chrome: tab bar, blank line, detail panel (border + 2), status line
const chromeHeight = 6

// Model is the main Bubble Tea model for the application
type Model struct {
	svc    *service.SyncService
	images tmdb.Images
	opener *launcher.Launcher

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	input   textinput.Model
	mode    inputMode

	confirmClear bool

	// Listing state
	tab          Tab
	window       domain.TimeWindow
	query        string
	page         int
	totalPages   int
	totalResults int
	movies       []domain.Movie
	filter       string
	visible      []search.FilterResult
	cursor       int
	offset       int

	// Request sequencing; only the latest page load is applied
	seq     int
	loading bool

	status    string
	statusErr bool
	statusID  int

	width  int
	height int
}

// NewModel creates the browser model
func NewModel(svc *service.SyncService, images tmdb.Images, opener *launcher.Launcher, window domain.TimeWindow) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 100

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		svc:     svc,
		images:  images,
		opener:  opener,
		keys:    DefaultKeyMap(),
		help:    h,
		spinner: sp,
		input:   ti,
		tab:     TabTrending,
		window:  window,
		page:    1,
		loading: true,
		width:   80,
		height:  24,
	}
}

// Init warms the indexes and loads the first trending page
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		WarmCmd(m.svc),
		LoadPageCmd(m.svc, m.request()),
	)
}

// request describes the page the model currently wants
func (m Model) request() pageRequest {
	return pageRequest{
		Seq:    m.seq,
		Tab:    m.tab,
		Window: m.window,
		Query:  m.query,
		Page:   m.page,
	}
}

// reload issues a fresh request for the current tab and page
func (m *Model) reload() tea.Cmd {
	m.seq++
	m.loading = true
	return tea.Batch(m.spinner.Tick, LoadPageCmd(m.svc, m.request()))
}

// switchTab moves to tab at page 1
func (m *Model) switchTab(tab Tab) tea.Cmd {
	m.tab = tab
	m.page = 1
	m.cursor = 0
	m.offset = 0
	m.filter = ""
	m.movies = nil
	m.visible = nil
	m.confirmClear = false
	if tab == TabSearch && m.query == "" {
		m.loading = false
		return m.beginInput(inputSearch)
	}
	return m.reload()
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusErr = isErr
	return clearStatusAfter(m.statusID)
}

// applyFilter recomputes the visible rows from the loaded page
func (m *Model) applyFilter() {
	m.visible = search.FilterMovies(m.filter, m.movies)
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
	m.clampOffset()
}

func (m Model) listHeight() int {
	return max(m.height-chromeHeight, 1)
}

func (m *Model) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// selected returns the movie under the cursor
func (m Model) selected() (domain.Movie, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return domain.Movie{}, false
	}
	return m.visible[m.cursor].Movie, true
}

// Update handles incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		if msg.Seq != m.seq || msg.Tab != m.tab {
			return m, nil
		}
		m.loading = false
		m.page = msg.Page
		m.totalPages = msg.TotalPages
		m.totalResults = msg.TotalResults
		m.movies = msg.Movies
		m.applyFilter()
		return m, nil

	case WarmedMsg:
		return m, nil

	case FavouriteToggledMsg:
		verb := "removed from"
		if msg.Favourite {
			verb = "added to"
		}
		cmd := m.setStatus(fmt.Sprintf("%s %s favourites", msg.Title, verb), false)
		if m.tab == TabFavourites {
			return m, tea.Batch(cmd, m.reload())
		}
		return m, cmd

	case RatingSetMsg:
		text := fmt.Sprintf("rated %s %g", msg.Title, msg.Value)
		if msg.Value == domain.RatingUnset {
			text = "removed rating for " + msg.Title
		}
		cmd := m.setStatus(text, false)
		if m.tab == TabRatings {
			return m, tea.Batch(cmd, m.reload())
		}
		return m, cmd

	case PosterOpenedMsg:
		return m, m.setStatus("opened poster for "+msg.Title, false)

	case ClearedMsg:
		cmd := m.setStatus(fmt.Sprintf("removed %d %s", msg.Removed, msg.Tab), false)
		return m, tea.Batch(cmd, m.reload())

	case ErrMsg:
		m.loading = false
		cmd := m.setStatus(msg.Error(), true)
		// Mutations roll back before failing; a reload shows the restored state
		if isMutationFailure(msg.Err) && (m.tab == TabFavourites || m.tab == TabRatings) {
			return m, tea.Batch(cmd, m.reload())
		}
		return m, cmd

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	if m.mode != inputNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func isMutationFailure(err error) bool {
	var mutErr *domain.MutationError
	var bulkErr *domain.BulkError
	return errors.As(err, &mutErr) || errors.As(err, &bulkErr)
}

// Run starts the interactive browser and blocks until it exits
func Run(svc *service.SyncService, images tmdb.Images, opener *launcher.Launcher, window domain.TimeWindow) error {
	p := tea.NewProgram(NewModel(svc, images, opener, window), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
