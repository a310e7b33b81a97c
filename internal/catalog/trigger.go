package catalog

import "context"

// TriggerMode names a continuation strategy.
type TriggerMode string

const (
	ModeInfiniteScroll TriggerMode = "infinite-scroll"
	ModePageLinks      TriggerMode = "page-links"
)

// Pager is the part of the loader a trigger drives.
type Pager interface {
	Continue(ctx context.Context) (Outcome, error)
	GoToPage(ctx context.Context, n int) (Outcome, error)
}

// Action is a deferred load request produced by a trigger. The caller
// decides where it runs.
type Action func(ctx context.Context) (Outcome, error)

// ContinuationTrigger decides when more of the listing is loaded.
type ContinuationTrigger interface {
	Mode() TriggerMode

	// Viewport is called whenever the visible window moves. lastVisible
	// is the index of the last visible item and loaded the number of
	// items loaded. It returns nil when no load is wanted.
	Viewport(lastVisible, loaded int, hasMore bool) Action

	// Select is called when the user picks a page number. It returns
	// nil when the trigger does not navigate by page.
	Select(page int) Action
}

// InfiniteScroll appends the next page as the viewport nears the end.
type InfiniteScroll struct {
	pager     Pager
	lookahead int
}

// NewInfiniteScroll continues once the last visible item is within
// lookahead items of the last loaded one.
func NewInfiniteScroll(pager Pager, lookahead int) *InfiniteScroll {
	if lookahead < 0 {
		lookahead = 0
	}
	return &InfiniteScroll{pager: pager, lookahead: lookahead}
}

func (s *InfiniteScroll) Mode() TriggerMode { return ModeInfiniteScroll }

func (s *InfiniteScroll) Viewport(lastVisible, loaded int, hasMore bool) Action {
	if !hasMore || loaded == 0 {
		return nil
	}
	if lastVisible < loaded-1-s.lookahead {
		return nil
	}
	return s.pager.Continue
}

func (s *InfiniteScroll) Select(int) Action { return nil }

// PageLinks navigates discrete pages and never loads on scroll.
type PageLinks struct {
	pager Pager
}

// NewPageLinks creates a page-link trigger.
func NewPageLinks(pager Pager) *PageLinks {
	return &PageLinks{pager: pager}
}

func (p *PageLinks) Mode() TriggerMode { return ModePageLinks }

func (p *PageLinks) Viewport(int, int, bool) Action { return nil }

func (p *PageLinks) Select(page int) Action {
	return func(ctx context.Context) (Outcome, error) {
		return p.pager.GoToPage(ctx, page)
	}
}

// SelectTrigger picks infinite scroll below narrowWidth columns and page
// links otherwise.
func SelectTrigger(width, narrowWidth, lookahead int, pager Pager) ContinuationTrigger {
	if width < narrowWidth {
		return NewInfiniteScroll(pager, lookahead)
	}
	return NewPageLinks(pager)
}

// PageWindow returns the page numbers to render as links around current:
// always the first and last page, span pages on each side of current, and
// 0 where a gap is elided.
func PageWindow(current, total, span int) []int {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	lo, hi := current-span, current+span
	if lo < 1 {
		lo = 1
	}
	if hi > total {
		hi = total
	}

	var out []int
	if lo > 1 {
		out = append(out, 1)
		if lo > 2 {
			out = append(out, 0)
		}
	}
	for p := lo; p <= hi; p++ {
		out = append(out, p)
	}
	if hi < total {
		if hi < total-1 {
			out = append(out, 0)
		}
		out = append(out, total)
	}
	return out
}
