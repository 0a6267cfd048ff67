package builder

import (
	"context"
	"strings"
)

// Action is an editor command bound to a keyboard shortcut.
type Action string

const (
	ActionNone          Action = ""
	ActionSave          Action = "save"
	ActionTogglePreview Action = "toggle_preview"
	ActionUndo          Action = "undo"
	ActionRedo          Action = "redo"
)

// KeyEvent is a key press as reported by the editor surface. Mod is Ctrl on
// Windows and Linux and Cmd on macOS.
type KeyEvent struct {
	Key   string
	Mod   bool
	Shift bool
	Alt   bool

	// InTextInput is set while a text field or rich text editor has focus.
	InTextInput bool
}

// ShortcutFor maps a key event to its action: mod+s saves, mod+p toggles
// preview, mod+z undoes and mod+shift+z redoes. Events typed into text
// inputs never map.
func ShortcutFor(ev KeyEvent) Action {
	if ev.InTextInput || !ev.Mod || ev.Alt {
		return ActionNone
	}
	switch strings.ToLower(ev.Key) {
	case "s":
		if !ev.Shift {
			return ActionSave
		}
	case "p":
		if !ev.Shift {
			return ActionTogglePreview
		}
	case "z":
		if ev.Shift {
			return ActionRedo
		}
		return ActionUndo
	}
	return ActionNone
}

// HandleKey runs the action bound to ev and returns it.
func (b *Builder) HandleKey(ctx context.Context, ev KeyEvent) (Action, error) {
	action := ShortcutFor(ev)
	switch action {
	case ActionSave:
		return action, b.Save(ctx)
	case ActionTogglePreview:
		b.TogglePreview()
	case ActionUndo:
		b.Undo()
	case ActionRedo:
		b.Redo()
	}
	return action, nil
}
