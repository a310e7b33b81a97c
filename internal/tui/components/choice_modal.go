package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/tui/styles"
)

// Option is one entry of a ChoiceModal.
type Option struct {
	Value string
	Label string
}

// StatusOptions returns the availability filter choices
func StatusOptions() []Option {
	opts := make([]Option, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		opts = append(opts, Option{Value: string(s), Label: s.Label()})
	}
	return opts
}

// SortOptions returns the sort order choices
func SortOptions() []Option {
	opts := make([]Option, 0, len(domain.Sorts))
	for _, s := range domain.Sorts {
		opts = append(opts, Option{Value: string(s), Label: s.Label()})
	}
	return opts
}

// StrategyOptions returns the curated selections, led by "none"
func StrategyOptions() []Option {
	opts := []Option{{Value: string(domain.StrategyNone), Label: "Whole catalog"}}
	for _, s := range domain.Strategies {
		opts = append(opts, Option{Value: string(s), Label: strategyLabel(s)})
	}
	return opts
}

func strategyLabel(s domain.Strategy) string {
	switch s {
	case domain.StrategyTopSellersAvailable:
		return "Top sellers"
	case domain.StrategyAuthorTop25:
		return "Artist's best 25%"
	case domain.StrategyAuthorBottom25:
		return "Artist's entry 25%"
	default:
		return string(s)
	}
}

// ChoiceModal is a small popup for picking one filter value
type ChoiceModal struct {
	visible bool
	title   string
	options []Option
	cursor  int
	active  string
}

// NewChoiceModal creates a new choice modal
func NewChoiceModal() ChoiceModal {
	return ChoiceModal{}
}

// Show displays the modal with the given options, marking active
func (m *ChoiceModal) Show(title string, options []Option, active string) {
	m.visible = true
	m.title = title
	m.options = options
	m.active = active
	m.cursor = 0
	for i, opt := range options {
		if opt.Value == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *ChoiceModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m ChoiceModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *ChoiceModal) HandleKey(key string) (handled bool, selection *Option) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if len(m.options) == 0 {
			m.visible = false
			return true, nil
		}
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case "esc", "q":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// View renders the choice modal
func (m ChoiceModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	width := 20
	for _, opt := range m.options {
		width = max(width, lipgloss.Width(opt.Label)+4)
	}

	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		isActive := opt.Value == m.active

		prefix := "  "
		if isActive {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label, width)

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case isActive:
			style = lipgloss.NewStyle().Foreground(styles.Gold)
		}
		lines = append(lines, style.Render(text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Gold).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render(m.title) + "\n" + strings.Join(lines, "\n"))
}
