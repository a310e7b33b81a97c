package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/tui/styles"
)

// Layout constants for the detail panel
const (
	DetailBorderHeight     = 2
	DetailScrollIndicators = 2
)

// detailContent holds the three-zone layout content
type detailContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// DetailView shows one painting with its rating, price range and
// related strips.
type DetailView struct {
	detail  *domain.PaintingDetail
	related map[domain.RelatedKind][]domain.RelatedPainting
	liked   bool
	likes   int
	loading bool

	// Related strip selection, flattened artist then style
	relCursor int

	width      int
	height     int
	offset     int
	maxVisible int
}

// NewDetailView creates an empty detail panel
func NewDetailView() DetailView {
	return DetailView{related: map[domain.RelatedKind][]domain.RelatedPainting{}, relCursor: -1}
}

// Reset clears the panel while the next painting loads.
func (d *DetailView) Reset() {
	d.detail = nil
	d.related = map[domain.RelatedKind][]domain.RelatedPainting{}
	d.liked = false
	d.likes = 0
	d.loading = true
	d.relCursor = -1
	d.offset = 0
}

// SetDetail sets the painting to display
func (d *DetailView) SetDetail(p *domain.PaintingDetail, liked bool) {
	d.detail = p
	d.loading = false
	d.liked = liked
	if p != nil {
		d.likes = p.LikesCount
	}
	d.offset = 0
}

// Detail returns the painting on display.
func (d DetailView) Detail() *domain.PaintingDetail { return d.detail }

// SetRelated stores a related strip.
func (d *DetailView) SetRelated(kind domain.RelatedKind, items []domain.RelatedPainting) {
	d.related[kind] = items
}

// SetLiked updates the like state shown in the header.
func (d *DetailView) SetLiked(liked bool, count int) {
	d.liked = liked
	d.likes = count
}

// Liked reports the like state shown in the header.
func (d DetailView) Liked() bool { return d.liked }

// SetSize updates the component dimensions
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.maxVisible = height - DetailBorderHeight - DetailScrollIndicators - 2
	if d.maxVisible < 1 {
		d.maxVisible = 1
	}
}

// SelectedRelated returns the highlighted related painting, if any.
func (d DetailView) SelectedRelated() *domain.RelatedPainting {
	all := d.relatedFlat()
	if d.relCursor < 0 || d.relCursor >= len(all) {
		return nil
	}
	r := all[d.relCursor]
	return &r
}

func (d DetailView) relatedFlat() []domain.RelatedPainting {
	var all []domain.RelatedPainting
	all = append(all, d.related[domain.RelatedByArtist]...)
	all = append(all, d.related[domain.RelatedByStyle]...)
	return all
}

// Update scrolls the body and moves through the related strips.
func (d DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch keyMsg.String() {
	case "j", "down":
		d.offset++
	case "k", "up":
		if d.offset > 0 {
			d.offset--
		}
	case "g", "home":
		d.offset = 0
	case "tab":
		if n := len(d.relatedFlat()); n > 0 {
			d.relCursor = (d.relCursor + 1) % n
		}
	case "shift+tab":
		if n := len(d.relatedFlat()); n > 0 {
			d.relCursor--
			if d.relCursor < 0 {
				d.relCursor = n - 1
			}
		}
	}
	return d, nil
}

// View renders the component
func (d DetailView) View() string {
	style := styles.ActiveBorder

	contentWidth := max(d.width-3, 10)
	content := d.render(contentWidth)

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(d.maxVisible-len(headerLines)-len(footerLines), 1)

	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(d.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	var parts []string
	if content.header != "" {
		parts = append(parts, content.header)
	}
	parts = append(parts, up)
	if len(visibleBody) > 0 {
		parts = append(parts, strings.Join(visibleBody, "\n"))
	}
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if content.footer != "" {
		parts = append(parts, content.footer)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(d.width - frameW).
		Height(d.height - frameH).
		Render(strings.Join(parts, "\n"))
}

func (d DetailView) render(width int) detailContent {
	if d.detail == nil {
		msg := "No painting selected"
		if d.loading {
			msg = "Loading painting..."
		}
		return detailContent{body: styles.DimStyle.Render(msg)}
	}
	return detailContent{
		header: d.renderHeader(width),
		body:   d.renderBody(width),
		footer: d.renderFooter(width),
	}
}

func (d DetailView) renderHeader(width int) string {
	p := d.detail
	var lines []string

	lines = append(lines, styles.TitleStyle.Render(styles.Truncate(p.DisplayTitle(), width)))
	if p.TitleRU != "" && p.TitleRU != p.DisplayTitle() {
		lines = append(lines, styles.SubtitleStyle.Render(styles.Truncate(p.TitleRU, width)))
	}

	artist := p.ArtistName
	if p.ArtistNameEN != "" {
		artist = p.ArtistNameEN
	}
	if artist != "" {
		byline := "by " + artist
		if p.Year > 0 {
			byline += fmt.Sprintf(", %d", p.Year)
		}
		lines = append(lines, styles.AccentStyle.Render(styles.Truncate(byline, width)))
	}

	price := styles.BadgeStyle.Render(domain.FormatPrice(p.Price, p.Currency))
	status := renderAvailability(p.Availability)
	likes := styles.RenderMarker(d.liked) + styles.DimStyle.Render(fmt.Sprintf(" %d", d.likes))
	lines = append(lines, "", price+"  "+status+"  "+likes)

	return strings.Join(lines, "\n")
}

func renderAvailability(a string) string {
	switch strings.ToLower(a) {
	case "", string(domain.StatusAvailable):
		return styles.SuccessStyle.Render("Available")
	case string(domain.StatusSold):
		return styles.ErrorStyle.Render(styles.SoldChar + " Sold")
	default:
		return styles.DimBadgeStyle.Render(a)
	}
}

func (d DetailView) renderBody(width int) string {
	p := d.detail
	var lines []string

	field := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("%-10s", label))+" "+styles.Truncate(value, width-11))
	}

	lines = append(lines, "")
	field("Style", p.StyleName)
	field("Medium", p.MediumName)
	field("Canvas", p.CanvasName)
	field("Size", domain.CanvasSize(p.CanvasHeight, p.CanvasWidth))
	if p.Framed != nil {
		framed := "No"
		if *p.Framed {
			framed = "Yes"
		}
		field("Framed", framed)
	}
	field("Condition", p.Condition)
	if len(p.Tags) > 0 {
		field("Tags", strings.Join(p.Tags, ", "))
	}

	if len(p.Colors) > 0 {
		lines = append(lines, "", styles.AccentStyle.Render("Palette"))
		for _, c := range p.Colors {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex)).Render("██")
			lines = append(lines, fmt.Sprintf("%s %s %s", swatch, styles.Truncate(c.Name, width-12), styles.DimStyle.Render(fmt.Sprintf("%.0f%%", c.Percentage))))
		}
	}

	if desc := strings.TrimSpace(p.Description); desc != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(desc))
	} else if desc := strings.TrimSpace(p.DescriptionRU); desc != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(desc))
	}

	if r, ok := domain.ParseRating(p.NotesRU); ok {
		lines = append(lines, "", styles.AccentStyle.Render(fmt.Sprintf("Expert rating %.1f/10", r.Average)))
		barWidth := max(min(width-20, 30), 3)
		for _, c := range r.Criteria {
			name := styles.Pad(styles.Truncate(c.Name, 14), 14)
			lines = append(lines, fmt.Sprintf("%s %s %4.1f", name, styles.RenderProgressBar(c.Score*10, barWidth), c.Score))
		}
	}

	if pct, ok := domain.PricePosition(p.ArtistMinPrice, p.ArtistMaxPrice, p.Price, p.ArtistWorksCount); ok {
		barWidth := max(min(width-4, 40), 3)
		lines = append(lines, "",
			styles.AccentStyle.Render(fmt.Sprintf("Price among %d works by this artist", p.ArtistWorksCount)),
			styles.RenderProgressBar(pct, barWidth),
			styles.DimStyle.Render(fmt.Sprintf("%s … %s",
				domain.FormatPrice(p.ArtistMinPrice, p.Currency),
				domain.FormatPrice(p.ArtistMaxPrice, p.Currency))),
		)
	}

	about := p.ArtistAboutEN
	if about == "" {
		about = p.ArtistAbout
	}
	if about = strings.TrimSpace(about); about != "" {
		lines = append(lines, "", styles.AccentStyle.Render("About the artist"), lipgloss.NewStyle().Width(width).Render(about))
	}

	cursor := 0
	for _, strip := range []struct {
		kind  domain.RelatedKind
		title string
	}{
		{domain.RelatedByArtist, "More by this artist"},
		{domain.RelatedByStyle, "Similar style"},
	} {
		items := d.related[strip.kind]
		if len(items) == 0 {
			continue
		}
		lines = append(lines, "", styles.AccentStyle.Render(strip.title))
		for _, r := range items {
			label := r.Title
			if label == "" {
				label = "Untitled"
			}
			if r.ArtistName != "" && strip.kind == domain.RelatedByStyle {
				label += " · " + r.ArtistName
			}
			parts := []styles.RowPart{{Text: styles.Truncate(label, width-4)}}
			lines = append(lines, styles.RenderListRow(parts, cursor == d.relCursor, width))
			cursor++
		}
	}

	return strings.Join(lines, "\n")
}

func (d DetailView) renderFooter(width int) string {
	hints := []string{
		styles.HelpKeyStyle.Render("l") + styles.HelpDescStyle.Render(" like"),
		styles.HelpKeyStyle.Render("o") + styles.HelpDescStyle.Render(" image"),
		styles.HelpKeyStyle.Render("w") + styles.HelpDescStyle.Render(" web"),
		styles.HelpKeyStyle.Render("c") + styles.HelpDescStyle.Render(" inquire"),
		styles.HelpKeyStyle.Render("tab") + styles.HelpDescStyle.Render(" related"),
	}
	line := strings.Join(hints, "  ")
	if lipgloss.Width(line) > width {
		return ""
	}
	return line
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
