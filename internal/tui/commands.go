package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/suhanovs/paintx-frontend/internal/catalog"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/session"
)

// Command factories for async operations

const (
	listingTimeout = 30 * time.Second
	requestTimeout = 15 * time.Second
)

func requestMeta(ctx context.Context, tokens catalog.TokenSource) domain.RequestMeta {
	if tokens == nil {
		return domain.RequestMeta{}
	}
	return domain.RequestMeta{VisitorToken: tokens.EnsureToken(ctx)}
}

// RunActionCmd runs a loader action (a filter fetch, continuation or page
// change) and reports its outcome.
func RunActionCmd(action catalog.Action, appendMode bool) tea.Cmd {
	if action == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listingTimeout)
		defer cancel()

		out, err := action(ctx)
		return PageLoadedMsg{Outcome: out, Err: err, Append: appendMode}
	}
}

// MountCmd brings the list up: it replays the session snapshot when the
// user is coming back from a painting, and fetches the first page of the
// current filter otherwise.
func MountCmd(sessions *session.Cache, loader *catalog.Loader, bus *catalog.Bus) tea.Cmd {
	return func() tea.Msg {
		if sessions != nil {
			if s, ok := sessions.TryRestore(); ok {
				loader.Restore(s)
				return RestoredMsg{ScrollOffset: s.ScrollOffset}
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), listingTimeout)
		defer cancel()

		out, err := loader.ApplyFilter(ctx, bus.Current())
		return PageLoadedMsg{Outcome: out, Err: err}
	}
}

// RestoreScrollCmd delivers the saved scroll offset after delay
func RestoreScrollCmd(delay time.Duration, offset int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RestoreScrollMsg{ScrollOffset: offset}
	})
}

// LoadDetailCmd loads the full record of a painting
func LoadDetailCmd(repo domain.PaintingRepository, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		detail, err := repo.GetPainting(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading painting"}
		}
		return DetailLoadedMsg{Detail: detail}
	}
}

// LoadRelatedCmd loads one related strip. Failures leave the strip empty.
func LoadRelatedCmd(repo domain.PaintingRepository, id string, kind domain.RelatedKind) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		items, err := repo.Related(ctx, id, kind)
		if err != nil {
			slog.Warn("related strip unavailable", "id", id, "kind", kind, "error", err)
			return nil
		}
		return RelatedLoadedMsg{PaintingID: id, Kind: kind, Items: items}
	}
}

// RecordDetailsClickCmd fires the detail view beacon. It never reports back.
func RecordDetailsClickCmd(repo domain.VisitorRepository, tokens catalog.TokenSource, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := repo.RecordDetailsClick(ctx, id, requestMeta(ctx, tokens)); err != nil {
			slog.Debug("details click not recorded", "id", id, "error", err)
		}
		return nil
	}
}

// ToggleLikeCmd likes or unlikes a painting for the current visitor
func ToggleLikeCmd(repo domain.VisitorRepository, tokens catalog.TokenSource, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		res, err := repo.ToggleLike(ctx, id, requestMeta(ctx, tokens))
		if err != nil {
			return ErrMsg{Err: err, Context: "updating like"}
		}
		return LikeToggledMsg{PaintingID: id, Result: res}
	}
}

// LoadLikedIDsCmd loads the visitor's liked paintings
func LoadLikedIDsCmd(repo domain.VisitorRepository, tokens catalog.TokenSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		ids, err := repo.LikedIDs(ctx, requestMeta(ctx, tokens))
		if err != nil {
			slog.Warn("liked paintings unavailable", "error", err)
			return nil
		}
		return LikedIDsMsg{IDs: ids}
	}
}

// SubmitInquiryCmd sends a contact request
func SubmitInquiryCmd(repo domain.VisitorRepository, tokens catalog.TokenSource, in domain.Inquiry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := repo.SubmitInquiry(ctx, in, requestMeta(ctx, tokens)); err != nil {
			return ErrMsg{Err: err, Context: "sending inquiry"}
		}
		return InquirySentMsg{}
	}
}

// OpenURLCmd hands url to an external program
func OpenURLCmd(open func(string) error, url, what string) tea.Cmd {
	return func() tea.Msg {
		if err := open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening " + what}
		}
		return StatusMsg{Message: "Opened " + what}
	}
}

// TickCmd returns a command that ticks after a duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears the status after a duration
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
