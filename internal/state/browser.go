package state

import (
	"errors"
	"fmt"

	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	"github.com/rs/zerolog"
)

// ErrBrowserDisposed is returned by Dispatch after Dispose.
var ErrBrowserDisposed = errors.New("browser disposed")

// FinishedFunc receives the outcome of a picker session. ok is false on
// cancellation and path is then empty.
type FinishedFunc func(path string, ok bool)

// Options configures a Browser.
type Options struct {
	Path       string
	Pattern    string
	Mode       BrowserMode
	ShowHidden bool
	Logger     zerolog.Logger
}

// Browser owns one picker session: its state, the reducer and the
// completion callback.
type Browser struct {
	state      *PickerState
	reducer    *StateReducer
	logger     zerolog.Logger
	onFinished FinishedFunc
	finishSeen int
	disposed   bool
}

// NewBrowser compiles the selection pattern, loads opts.Path and returns
// the ready browser. An empty path starts at the root-selection level.
func NewBrowser(host fsutil.Host, opts Options, onFinished FinishedFunc) (*Browser, error) {
	pattern, err := fsutil.CompilePattern(opts.Pattern)
	if err != nil {
		return nil, err
	}

	if toggler, ok := host.(HiddenToggler); ok {
		toggler.SetShowHidden(opts.ShowHidden)
	}

	state := NewPickerState(opts.Mode, pattern)
	state.ShowHidden = opts.ShowHidden

	b := &Browser{
		state:      state,
		reducer:    NewStateReducer(NewResolver(host, opts.Logger)),
		logger:     opts.Logger,
		onFinished: onFinished,
	}
	b.logger.Debug().
		Str("path", opts.Path).
		Str("pattern", pattern.String()).
		Stringer("mode", opts.Mode).
		Msg("browser created")

	if err := b.SetDirectory(opts.Path); err != nil {
		return nil, err
	}
	return b, nil
}

// Dispatch applies action and fires the completion callback when the
// action finished the session.
func (b *Browser) Dispatch(action Action) error {
	if b.disposed {
		return ErrBrowserDisposed
	}
	next, err := b.reducer.Reduce(b.state, action)
	if err != nil {
		return fmt.Errorf("dispatch %T: %w", action, err)
	}
	b.state = next

	if b.state.FinishSeq != b.finishSeen {
		b.finishSeen = b.state.FinishSeq
		b.logger.Info().
			Bool("selected", b.state.Selected).
			Str("path", b.state.Result).
			Msg("picker finished")
		if b.onFinished != nil {
			b.onFinished(b.state.Result, b.state.Selected)
		}
	}
	return nil
}

// SetDirectory navigates to path immediately.
func (b *Browser) SetDirectory(path string) error {
	return b.Dispatch(SetDirectoryAction{Path: path})
}

// RequestNavigate stages path for the next ApplyPendingNavigation.
func (b *Browser) RequestNavigate(path string) error {
	return b.Dispatch(RequestNavigateAction{Path: path})
}

// ApplyPendingNavigation loads a staged path. Hosts call it once per frame.
func (b *Browser) ApplyPendingNavigation() error {
	return b.Dispatch(ApplyPendingNavigationAction{})
}

// Refresh clears the selection and reloads the current directory.
func (b *Browser) Refresh() error {
	return b.Dispatch(RefreshAction{})
}

// Confirm reports the current selection if confirming is allowed.
func (b *Browser) Confirm() error {
	return b.Dispatch(ConfirmAction{})
}

// Cancel reports that nothing was selected.
func (b *Browser) Cancel() error {
	return b.Dispatch(CancelAction{})
}

// CanConfirm reports whether Confirm would report a path.
func (b *Browser) CanConfirm() bool {
	return b.state.CanConfirm()
}

// Listing returns the current directory view.
func (b *Browser) Listing() Listing {
	return b.state.Listing
}

// State exposes the picker state for rendering.
func (b *Browser) State() *PickerState {
	return b.state
}

// Dispose drops the listing and detaches the callback. Further dispatches
// fail with ErrBrowserDisposed.
func (b *Browser) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.onFinished = nil
	b.state.Listing = Listing{}
	b.state.clearSelection()
	b.state.invalidateRows()
	b.logger.Debug().Msg("browser disposed")
}
