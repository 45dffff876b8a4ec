package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/diegok/pixbowl/internal/protocol"
)

// KeyToCommand converts a key event to a bowler command
func KeyToCommand(key tcell.Key, r rune) protocol.Command {
	switch key {
	case tcell.KeyUp:
		return protocol.CmdAimUp
	case tcell.KeyDown:
		return protocol.CmdAimDown
	case tcell.KeyLeft:
		return protocol.CmdAimLeft
	case tcell.KeyRight:
		return protocol.CmdAimRight
	case tcell.KeyEnter:
		return protocol.CmdConfirm
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return protocol.CmdAimUp
		case 's', 'S':
			return protocol.CmdAimDown
		case 'a', 'A':
			return protocol.CmdAimLeft
		case 'd', 'D':
			return protocol.CmdAimRight
		case ' ':
			return protocol.CmdQuickThrow
		case 'l', 'L':
			return protocol.CmdSwitchArm
		case 'p', 'P':
			return protocol.CmdToggleSpin
		case 't', 'T':
			return protocol.CmdToggleSpinType
		case ']':
			return protocol.CmdSwingUp
		case '[':
			return protocol.CmdSwingDown
		case '=', '+':
			return protocol.CmdSpinUp
		case '-', '_':
			return protocol.CmdSpinDown
		}
	}
	return protocol.CmdNone
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}
