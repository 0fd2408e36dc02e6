package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/rpick/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.PickerState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.PickerState) []string {
	if state == nil {
		return nil
	}

	segments := []string{modeSegment(state)}
	segments = append(segments, contextualHelpSegments(state)...)
	segments = append(segments, "?: help")
	return segments
}

func modeSegment(state *statepkg.PickerState) string {
	if state.Pattern == nil {
		return fmt.Sprintf("[%s]", state.Mode)
	}
	return fmt.Sprintf("[%s %s]", state.Mode, state.Pattern)
}

func contextualHelpSegments(state *statepkg.PickerState) []string {
	switch {
	case state.Listing.IsRootLevel():
		return []string{
			"↑↓: move",
			"↵: open",
			"Esc: cancel",
		}
	case state.CanConfirm():
		return []string{
			"↑↓: move",
			"↵/→: open",
			"←: up",
			"^S: select",
			"Esc: cancel",
		}
	default:
		return []string{
			"↑↓: move",
			"↵/→: open",
			"←: up",
			"Esc: cancel",
		}
	}
}
