package tui

import "github.com/suhanovs/paintx-frontend/internal/catalog"

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight
	m.List.SetSize(m.Width, contentHeight)
	m.Detail.SetSize(m.Width, contentHeight)
}

// selectTrigger picks the continuation strategy for the current width.
// Crossing the narrow width swaps it; the loaded rows stay as they are.
func (m *Model) selectTrigger() {
	next := catalog.SelectTrigger(m.Width, m.opts.NarrowWidth, m.opts.Lookahead, m.deps.Loader)
	if m.trigger != nil && next.Mode() == m.trigger.Mode() {
		return
	}
	m.trigger = next

	if next.Mode() == catalog.ModePageLinks && m.deps.URLs != nil && m.snap.Page > 0 {
		m.deps.URLs.Update(m.snap.Query, m.snap.Page)
	}
}
