package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
)

// beginInput focuses the text input for filtering or searching
func (m *Model) beginInput(mode inputMode) tea.Cmd {
	m.mode = mode
	switch mode {
	case inputFilter:
		m.input.Prompt = "/ "
		m.input.Placeholder = "filter this page"
		m.input.SetValue(m.filter)
	case inputSearch:
		m.input.Prompt = "search: "
		m.input.Placeholder = "movie title"
		m.input.SetValue(m.query)
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = inputNone
	m.input.Blur()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	if m.confirmClear {
		m.confirmClear = false
		if key.Matches(msg, m.keys.Confirm) {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, ClearAllCmd(m.svc, m.tab))
		}
		return m, m.setStatus("clear cancelled", false)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.clampOffset()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.loading || m.page >= m.totalPages {
			return m, nil
		}
		m.page++
		m.cursor, m.offset = 0, 0
		return m, m.reload()

	case key.Matches(msg, m.keys.PrevPage):
		if m.loading || m.page <= 1 {
			return m, nil
		}
		m.page--
		m.cursor, m.offset = 0, 0
		return m, m.reload()

	case key.Matches(msg, m.keys.NextTab):
		return m, m.switchTab(m.shiftTab(1))

	case key.Matches(msg, m.keys.PrevTab):
		return m, m.switchTab(m.shiftTab(-1))

	case key.Matches(msg, m.keys.Filter):
		return m, m.beginInput(inputFilter)

	case key.Matches(msg, m.keys.Search):
		return m, m.beginInput(inputSearch)

	case key.Matches(msg, m.keys.ToggleWindow):
		if m.tab != TabTrending {
			return m, nil
		}
		m.window = m.window.Toggle()
		m.page = 1
		m.cursor, m.offset = 0, 0
		return m, m.reload()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()

	case key.Matches(msg, m.keys.Escape):
		if m.filter != "" {
			m.filter = ""
			m.applyFilter()
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearAll):
		if m.tab != TabFavourites && m.tab != TabRatings {
			return m, nil
		}
		m.confirmClear = true
		return m, nil
	}

	movie, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleFavourite):
		return m, ToggleFavouriteCmd(m.svc, movie)

	case key.Matches(msg, m.keys.OpenPoster):
		if m.opener == nil {
			return m, nil
		}
		return m, OpenPosterCmd(m.opener, m.images, movie)

	case key.Matches(msg, m.keys.Rate):
		value, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		return m, SetRatingCmd(m.svc, movie, float64(value))

	case key.Matches(msg, m.keys.RateUp):
		current := m.svc.GetRating(movie.ID)
		if current >= domain.RatingMax {
			return m, nil
		}
		return m, SetRatingCmd(m.svc, movie, min(current+1, domain.RatingMax))

	case key.Matches(msg, m.keys.RateDown):
		current := m.svc.GetRating(movie.ID)
		if current <= domain.RatingUnset {
			return m, nil
		}
		return m, SetRatingCmd(m.svc, movie, max(current-1, domain.RatingUnset))
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.mode == inputFilter {
			m.filter = ""
			m.applyFilter()
		}
		m.endInput()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		mode := m.mode
		value := strings.TrimSpace(m.input.Value())
		m.endInput()
		if mode == inputSearch {
			if value == "" {
				return m, nil
			}
			m.query = value
			return m, m.switchTab(TabSearch)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == inputFilter {
		m.filter = m.input.Value()
		m.cursor = 0
		m.applyFilter()
	}
	return m, cmd
}

func (m Model) shiftTab(delta int) Tab {
	for i, t := range tabOrder {
		if t == m.tab {
			next := (i + delta + len(tabOrder)) % len(tabOrder)
			return tabOrder[next]
		}
	}
	return TabTrending
}
