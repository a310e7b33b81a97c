package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/search"
	"github.com/suhanovs/paintx-frontend/internal/tui/styles"
)

// Spinner frames for loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for the list panel
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicator ("↑ more") and the status footer each take 1 line
	ScrollIndicatorLines = 2

	priceColumnWidth = 14
)

// PaintingList is the scrollable catalog panel.
type PaintingList struct {
	items []domain.Painting
	liked map[string]bool

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title  string
	footer string

	loading      bool
	spinnerFrame int

	// Local filter over loaded items
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	results      []search.Result
}

// NewPaintingList creates an empty list panel
func NewPaintingList(title string) *PaintingList {
	ti := textinput.New()
	ti.Placeholder = "title or artist..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &PaintingList{
		title:       title,
		filterInput: ti,
		liked:       map[string]bool{},
		focused:     true,
	}
}

// Update handles navigation and filter typing.
func (c *PaintingList) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				c.clearFilter()
				return nil
			case "enter":
				// Keep results, allow navigation
				c.filterInput.Blur()
				return nil
			case "backspace":
				if c.filterInput.Value() == "" {
					c.clearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	if c.filterActive {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				c.clearFilter()
				return nil
			case "/":
				c.filterInput.Focus()
				return nil
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, ListKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, ListKeys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, ListKeys.Home):
		c.cursor = 0
	case key.Matches(keyMsg, ListKeys.End):
		c.cursor = count - 1
	case key.Matches(keyMsg, ListKeys.HalfDown):
		c.cursor = min(c.cursor+c.maxVisible/2, count-1)
	case key.Matches(keyMsg, ListKeys.HalfUp):
		c.cursor = max(c.cursor-c.maxVisible/2, 0)
	case key.Matches(keyMsg, ListKeys.PageDown):
		c.cursor = min(c.cursor+c.maxVisible, count-1)
	case key.Matches(keyMsg, ListKeys.PageUp):
		c.cursor = max(c.cursor-c.maxVisible, 0)
	}
	c.ensureVisible()
	return nil
}

// View renders the bordered panel
func (c *PaintingList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(c.renderContent())
}

// SetSize updates the panel dimensions
func (c *PaintingList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *PaintingList) Width() int  { return c.width }
func (c *PaintingList) Height() int { return c.height }

func (c *PaintingList) SetFocused(focused bool) { c.focused = focused }

func (c *PaintingList) SetTitle(title string) { c.title = title }

// SetFooter sets the status line under the rows (page links, totals).
func (c *PaintingList) SetFooter(footer string) { c.footer = footer }

func (c *PaintingList) SetLoading(loading bool) { c.loading = loading }

func (c *PaintingList) SetSpinnerFrame(frame int) { c.spinnerFrame = frame }

// SetLiked replaces the set of liked painting IDs.
func (c *PaintingList) SetLiked(liked map[string]bool) {
	c.liked = liked
}

// SetItems replaces the rows. With keepCursor the selection stays where it
// was (appended pages); otherwise it returns to the top.
func (c *PaintingList) SetItems(items []domain.Painting, keepCursor bool) {
	c.items = items
	if !keepCursor {
		c.cursor = 0
		c.offset = 0
	}
	if c.filterActive {
		c.applyFilter()
	}
	if n := c.ItemCount(); c.cursor >= n {
		c.cursor = max(n-1, 0)
	}
	c.ensureVisible()
}

// Items returns the loaded rows.
func (c *PaintingList) Items() []domain.Painting { return c.items }

// ItemCount returns the number of visible rows (after the local filter).
func (c *PaintingList) ItemCount() int {
	if c.results != nil {
		return len(c.results)
	}
	return len(c.items)
}

// IsEmpty reports whether there is nothing to show.
func (c *PaintingList) IsEmpty() bool { return c.ItemCount() == 0 }

// SelectedPainting returns the painting under the cursor.
func (c *PaintingList) SelectedPainting() *domain.Painting {
	if c.cursor >= c.ItemCount() {
		return nil
	}
	p := c.items[c.mapIndex(c.cursor)]
	return &p
}

// SelectedIndex returns the cursor position.
func (c *PaintingList) SelectedIndex() int { return c.cursor }

// SetSelectedIndex moves the cursor, clamped to the rows.
func (c *PaintingList) SetSelectedIndex(idx int) {
	maxIdx := c.ItemCount() - 1
	if maxIdx < 0 {
		c.cursor = 0
		return
	}
	c.cursor = max(0, min(idx, maxIdx))
	c.ensureVisible()
}

// LastVisible returns the index into the loaded items of the last row on
// screen, or -1 while the local filter is narrowing the rows.
func (c *PaintingList) LastVisible() int {
	if c.filterActive || len(c.items) == 0 {
		return -1
	}
	rows := c.maxVisible
	if rows <= 0 {
		rows = 1
	}
	return min(c.offset+rows, len(c.items)) - 1
}

// ToggleFilter activates the local filter input
func (c *PaintingList) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *PaintingList) IsFiltering() bool { return c.filterActive }

// IsFilterTyping returns true if filter is active AND input is focused
func (c *PaintingList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *PaintingList) ClearFilter() { c.clearFilter() }

func (c *PaintingList) recalcMaxVisible() {
	// Reserve the title line, the scroll indicator and the footer
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *PaintingList) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *PaintingList) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.results = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *PaintingList) applyFilter() {
	c.filterQuery = c.filterInput.Value()
	if strings.TrimSpace(c.filterQuery) == "" {
		c.results = nil
		return
	}

	c.results = search.Filter(c.filterQuery, c.items)
	if c.results == nil {
		c.results = []search.Result{}
	}
	c.cursor = 0
	c.offset = 0
}

func (c *PaintingList) mapIndex(i int) int {
	if c.results != nil && i < len(c.results) {
		return c.results[i].Index
	}
	return i
}

// Rendering

func (c *PaintingList) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	count := c.ItemCount()
	if count == 0 {
		msg := "No paintings match"
		switch {
		case c.loading:
			msg = SpinnerFrames[c.spinnerFrame%len(SpinnerFrames)] + " Loading paintings..."
		case c.filterActive && c.filterQuery != "":
			msg = "No loaded painting matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(msg) + "\n " + strings.Repeat("\n", max(c.maxVisible-2, 0)) + "\n" + c.footer
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)

	lines := make([]string, 0, c.maxVisible)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(i, i == c.cursor, itemWidth))
	}
	for len(lines) < c.maxVisible {
		lines = append(lines, "")
	}

	// Reserve the indicator line even when empty to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + c.footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *PaintingList) renderRow(i int, selected bool, width int) string {
	idx := c.mapIndex(i)
	p := c.items[idx]

	markerFg := styles.DimGray
	marker := styles.UnlikedChar
	if c.liked[p.ID] {
		marker = styles.LikedChar
		markerFg = styles.Rose
	}

	price := domain.FormatPrice(p.Price, p.Currency)
	priceFg := styles.Gold

	// marker(1) + space(1) + gap(2) + price column + margins(2)
	labelWidth := max(width-6-priceColumnWidth, 5)

	parts := []styles.RowPart{{Text: marker, Foreground: &markerFg}, {Text: " "}}
	if c.results != nil {
		parts = append(parts, highlightParts(c.results[i], labelWidth, selected)...)
	} else {
		parts = append(parts, labelParts(p, labelWidth)...)
	}
	parts = append(parts, styles.RowPart{
		Text:       "  " + fmt.Sprintf("%*s", priceColumnWidth, styles.Truncate(price, priceColumnWidth)),
		Foreground: &priceFg,
	})

	return styles.RenderListRow(parts, selected, width)
}

// labelParts renders "Title  Artist" padded to width.
func labelParts(p domain.Painting, width int) []styles.RowPart {
	dim := styles.DimGray
	title := p.DisplayTitle()
	artist := p.ArtistName

	titleWidth := lipgloss.Width(title)
	if artist == "" || titleWidth+2 >= width {
		return []styles.RowPart{{Text: styles.Pad(styles.Truncate(title, width), width), Bold: true}}
	}
	artist = styles.Truncate(artist, width-titleWidth-2)
	rest := width - titleWidth - 2
	return []styles.RowPart{
		{Text: title, Bold: true},
		{Text: "  " + styles.Pad(artist, rest), Foreground: &dim},
	}
}

// highlightParts renders a filter result label with matched runes
// highlighted, padded to width.
func highlightParts(r search.Result, width int, selected bool) []styles.RowPart {
	label := []rune(styles.Truncate(r.Label, width))
	matched := make(map[int]bool, len(r.MatchedIndexes))
	for _, i := range r.MatchedIndexes {
		matched[i] = true
	}

	gold := styles.Gold
	var parts []styles.RowPart
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		part := styles.RowPart{Text: string(run)}
		if runMatched {
			part.Foreground = &gold
			part.Bold = selected
		}
		parts = append(parts, part)
		run = run[:0]
	}
	for i, ch := range label {
		if matched[i] != runMatched {
			flush()
			runMatched = matched[i]
		}
		run = append(run, ch)
	}
	flush()

	if pad := width - lipgloss.Width(string(label)); pad > 0 {
		parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", pad)})
	}
	return parts
}

func (c *PaintingList) renderFilterBar() string {
	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.items)))
	}
	return c.filterInput.View() + countStr
}
