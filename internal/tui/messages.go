package tui

import (
	"github.com/suhanovs/paintx-frontend/internal/catalog"
	"github.com/suhanovs/paintx-frontend/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg reports the outcome of a listing fetch
type PageLoadedMsg struct {
	Outcome catalog.Outcome
	Err     error
	Append  bool // continuation: keep the cursor where it is
}

// RestoredMsg signals that a session snapshot was replayed into the loader
type RestoredMsg struct {
	ScrollOffset int
}

// RestoreScrollMsg applies the saved scroll position once rows are laid out
type RestoreScrollMsg struct {
	ScrollOffset int
}

// URLCommittedMsg carries the debounced listing URL
type URLCommittedMsg struct {
	URL string
}

// DetailLoadedMsg signals that a painting's full record has been loaded
type DetailLoadedMsg struct {
	Detail *domain.PaintingDetail
}

// RelatedLoadedMsg carries one related strip for a painting
type RelatedLoadedMsg struct {
	PaintingID string
	Kind       domain.RelatedKind
	Items      []domain.RelatedPainting
}

// LikeToggledMsg carries the backend answer to a like toggle
type LikeToggledMsg struct {
	PaintingID string
	Result     domain.LikeResult
}

// LikedIDsMsg carries the visitor's liked paintings
type LikedIDsMsg struct {
	IDs []string
}

// InquirySentMsg signals a delivered contact request
type InquirySentMsg struct{}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
