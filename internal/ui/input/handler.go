package input

import (
	"os"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
)

var userHomeDirFn = os.UserHomeDir

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.PickerState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.PickerState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the picker should stop immediately.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	helpVisible := ih.state != nil && ih.state.HelpVisible

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- statepkg.CancelAction{}
			return false
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
			return true
		case tcell.KeyRune:
			r := ev.Rune()
			if r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
			return true
		default:
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.CancelAction{}
		return false

	case tcell.KeyEscape:
		ih.actionChan <- statepkg.CancelAction{}
		return true

	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
		return true

	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PageDownAction{}
		return true

	case tcell.KeyHome:
		ih.actionChan <- statepkg.HomeAction{}
		return true

	case tcell.KeyEnd:
		ih.actionChan <- statepkg.EndAction{}
		return true

	case tcell.KeyEnter:
		// Nothing highlighted: Enter selects the current directory if allowed.
		if ih.state != nil {
			if _, ok := ih.state.CursorRow(); !ok {
				ih.actionChan <- statepkg.ConfirmAction{}
				return true
			}
		}
		ih.actionChan <- statepkg.ActivateAction{}
		return true

	case tcell.KeyRight:
		if ih.state != nil {
			if row, ok := ih.state.CursorRow(); ok && !isDirectoryRow(row) {
				return true
			}
		}
		ih.actionChan <- statepkg.ActivateAction{}
		return true

	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.GoUpAction{}
		return true

	case tcell.KeyCtrlS, tcell.KeyTab:
		ih.actionChan <- statepkg.ConfirmAction{}
		return true

	case tcell.KeyCtrlR:
		ih.actionChan <- statepkg.RefreshAction{}
		return true

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			ih.actionChan <- statepkg.CancelAction{}
			return true

		case 'j':
			ih.actionChan <- statepkg.NavigateDownAction{}
			return true

		case 'k':
			ih.actionChan <- statepkg.NavigateUpAction{}
			return true

		case 'g':
			ih.actionChan <- statepkg.HomeAction{}
			return true

		case 'G':
			ih.actionChan <- statepkg.EndAction{}
			return true

		case 'l':
			if ih.state != nil {
				if row, ok := ih.state.CursorRow(); ok && !isDirectoryRow(row) {
					return true
				}
			}
			ih.actionChan <- statepkg.ActivateAction{}
			return true

		case 'h':
			ih.actionChan <- statepkg.GoUpAction{}
			return true

		case 's', ' ':
			ih.actionChan <- statepkg.ConfirmAction{}
			return true

		case '?':
			ih.actionChan <- statepkg.HelpToggleAction{}
			return true

		case '.':
			ih.actionChan <- statepkg.ToggleHiddenAction{}
			return true

		case 'r', 'R':
			ih.actionChan <- statepkg.RefreshAction{}
			return true

		case '\\':
			ih.actionChan <- statepkg.RootCrumbAction{}
			return true

		case '~':
			if home, err := userHomeDirFn(); err == nil && home != "" {
				ih.actionChan <- statepkg.RequestNavigateAction{Path: home}
			}
			return true
		}
		return true

	default:
		return true
	}
}

func isDirectoryRow(row statepkg.Row) bool {
	return row.Kind == statepkg.RowDirectory || row.Kind == statepkg.RowNonMatchingDirectory
}
