package tui

import tea "github.com/charmbracelet/bubbletea"

// ChannelObserver adapts callbacks fired outside the Bubble Tea loop (the
// debounced URL commit) to a channel the loop can wait on.
type ChannelObserver[T any] struct {
	ch chan T
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver[T any](size int) *ChannelObserver[T] {
	return &ChannelObserver[T]{ch: make(chan T, size)}
}

// Notify sends v to the channel (non-blocking if full).
func (o *ChannelObserver[T]) Notify(v T) {
	select {
	case o.ch <- v:
	default: // Non-blocking if channel full
	}
}

// Wait returns a command that blocks for the next value and wraps it.
// The handler of the wrapped message re-arms the wait.
func (o *ChannelObserver[T]) Wait(wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return wrap(<-o.ch)
	}
}
