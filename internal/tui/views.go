package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/search"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// View renders the whole screen
func (m Model) View() string {
	sections := []string{
		m.renderTabs(),
		"",
		m.renderList(),
		m.renderDetail(),
		m.renderStatus(),
	}
	if m.help.ShowAll {
		sections = append(sections, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(tabOrder)+1)
	for _, t := range tabOrder {
		label := t.String()
		switch {
		case t == TabTrending:
			label = fmt.Sprintf("%s (%s)", label, m.window)
		case t == TabSearch && m.query != "":
			label = fmt.Sprintf("%s %q", label, m.query)
		}
		if t == m.tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderList() string {
	h := m.listHeight()
	lines := make([]string, 0, h)

	switch {
	case m.loading && len(m.visible) == 0:
		lines = append(lines, m.spinner.View()+" loading "+m.tab.String()+"…")
	case len(m.visible) == 0 && m.filter != "":
		lines = append(lines, styles.DimStyle.Render("no matches for "+m.filter))
	case len(m.visible) == 0:
		lines = append(lines, styles.DimStyle.Render("nothing here"))
	}

	end := min(m.offset+h, len(m.visible))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(m.visible[i], i == m.cursor))
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r search.FilterResult, selected bool) string {
	fav := " "
	if m.svc.IsFavourite(r.Movie.ID) {
		fav = styles.FavouriteStyle.Render(styles.FavouriteChar)
	}

	rating := "   "
	if v := m.svc.GetRating(r.Movie.ID); v > 0 {
		rating = styles.RatingStyle.Render(fmt.Sprintf("%s%-2g", styles.RatingChar, v))
	}

	year := ""
	if y := r.Movie.Year(); y > 0 {
		year = styles.DimStyle.Render(fmt.Sprintf(" %d", y))
	}
	score := styles.DimStyle.Render(fmt.Sprintf(" %.1f", r.Movie.VoteAverage))

	titleWidth := max(m.width-16, 10)
	title := highlightMatches(styles.Truncate(r.Movie.Title, titleWidth), r.MatchedIndexes)

	cursor := "  "
	if selected {
		cursor = styles.AccentStyle.Render("▸ ")
	}

	line := cursor + fav + " " + rating + " " + title + year + score
	if selected {
		return styles.SelectedItemStyle.Render(line)
	}
	return styles.NormalItemStyle.Render(line)
}

// highlightMatches styles the characters at the given byte offsets
func highlightMatches(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if set[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m Model) renderDetail() string {
	width := max(m.width, 20)
	movie, ok := m.selected()
	if !ok {
		return styles.DetailStyle.Width(width).Render("\n")
	}

	overview := movie.Overview
	if overview == "" {
		overview = "No overview."
	}
	lines := []string{
		styles.Truncate(overview, width),
		styles.DimStyle.Render(styles.Truncate(m.images.PosterURL(movie), width)),
	}
	return styles.DetailStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	if m.mode != inputNone {
		return m.input.View()
	}
	if m.confirmClear {
		return styles.ConfirmStyle.Render(fmt.Sprintf("Remove all %s? y to confirm", m.tab))
	}

	left := ""
	if m.loading {
		left = m.spinner.View() + " "
	}
	if m.status != "" {
		if m.statusErr {
			left += styles.ErrorStyle.Render(m.status)
		} else {
			left += styles.SuccessStyle.Render(m.status)
		}
	} else if !m.help.ShowAll {
		left += m.help.View(m.keys)
	}

	right := styles.SubtitleStyle.Render(fmt.Sprintf("page %d/%d · %d", m.page, max(m.totalPages, 1), m.totalResults))
	if m.filter != "" {
		right = styles.AccentStyle.Render("/"+m.filter) + " " + right
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
