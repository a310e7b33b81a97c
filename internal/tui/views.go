package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/suhanovs/paintx-frontend/internal/catalog"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/tui/components"
	"github.com/suhanovs/paintx-frontend/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var content string
	switch m.State {
	case StateDetail:
		content = m.Detail.View()
	default:
		m.List.SetFooter(m.listFooter())
		content = m.List.View()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)

	// Overlay whichever modal is open
	var modal string
	switch {
	case m.Inquiry.IsVisible():
		modal = m.Inquiry.View()
	case m.Search.IsVisible():
		modal = m.Search.View()
	case m.Price.IsVisible():
		modal = m.Price.View()
	case m.Choice.IsVisible():
		modal = m.Choice.View()
	}
	if modal != "" {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			modal)
	}

	return view
}

// renderHeader shows the active filter on the left and the listing URL on
// the right.
func (m Model) renderHeader() string {
	left := styles.AccentStyle.Render("PaintX") + " " + styles.DimStyle.Render(filterSummary(m.deps.Bus.Current()))
	right := styles.DimStyle.Render(m.URL)

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = styles.Truncate(left, max(m.Width-lipgloss.Width(right)-1, 0))
		gap = max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	}
	return left + strings.Repeat(" ", gap) + right
}

// filterSummary describes q in one line
func filterSummary(q domain.CatalogQuery) string {
	var parts []string
	if q.Text != "" {
		parts = append(parts, strconv.Quote(q.Text))
	}
	parts = append(parts, q.Status.Label(), q.Sort.Label())
	if q.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("from %d", *q.MinPrice))
	}
	if q.Strategy != domain.StrategyNone {
		parts = append(parts, strings.ReplaceAll(string(q.Strategy), "_", " "))
	}
	return strings.Join(parts, " · ")
}

func listTitle(s catalog.Snapshot) string {
	if s.Total > 0 {
		return fmt.Sprintf("Paintings (%d)", s.Total)
	}
	return "Paintings"
}

// listFooter reports how much of the result set is on screen and how to
// get more of it.
func (m Model) listFooter() string {
	s := m.snap
	n := len(s.Items)

	switch {
	case s.State == catalog.StateError:
		return styles.ErrorStyle.Render("Loading failed") + styles.DimStyle.Render(" · r to retry")
	case m.Loading && n > 0:
		return RenderSpinner(m.SpinnerFrame) + styles.DimStyle.Render(" Loading more...")
	case n == 0:
		return ""
	case m.trigger.Mode() == catalog.ModePageLinks:
		return renderPageLinks(s.Page, s.TotalPages)
	case s.HasMore:
		return styles.DimStyle.Render(fmt.Sprintf("%d of %d · scroll for more", n, s.Total))
	default:
		return styles.DimStyle.Render(fmt.Sprintf("All %d paintings loaded", n))
	}
}

// renderPageLinks renders the page window around current
func renderPageLinks(current, total int) string {
	if total <= 1 {
		return styles.DimStyle.Render(fmt.Sprintf("Page %d of %d", max(current, 1), max(total, 1)))
	}

	var links []string
	for _, p := range catalog.PageWindow(current, total, pageLinkSpan) {
		switch {
		case p == 0:
			links = append(links, styles.DimStyle.Render("…"))
		case p == current:
			links = append(links, styles.BadgeStyle.Render(strconv.Itoa(p)))
		default:
			links = append(links, styles.DimStyle.Render(strconv.Itoa(p)))
		}
	}
	return strings.Join(links, " ") + "  " +
		styles.AccentStyle.Render("[ ]") + styles.DimStyle.Render(" pages")
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner + status when loading or status message active
	var left string
	switch {
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.State == StateDetail && m.Detail.Detail() == nil:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading painting...")
	case m.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading paintings...")
	}

	// Center section: the most used keys of the current view
	hint := func(k, desc string) string {
		return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
	}
	var center string
	if m.State == StateDetail {
		center = strings.Join([]string{hint("l", "like"), hint("c", "contact"), hint("esc", "back")}, "  ")
	} else {
		center = strings.Join([]string{hint("f", "search"), hint("a", "availability"), hint("s", "sort")}, "  ")
	}

	// Right side: "? help" hint
	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSING                        FILTERS
  j/k        Up/down               f      Search catalog
  g/Home     First painting        /      Filter loaded rows
  G/End      Last painting         a      Availability
  PgUp/PgDn  Scroll page           s      Sort
  [ / ]      Previous/next page    $      Minimum price
  Enter      Open painting         t      Curated selection
                                   x      Clear filters

PAINTING                        OTHER
  Tab        Next related          l      Like / unlike
  Enter      Open related          o      Open image
  Esc/h      Back to list          w      Open in browser
                                   c      Contact gallery
                                   r      Retry / refresh
                                   q      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.AccentStyle.Render(components.SpinnerFrames[frame%len(components.SpinnerFrames)])
}
