package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/pixbowl/internal/protocol"
)

func TestKeyToCommand(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		rune rune
		want protocol.Command
	}{
		{tcell.KeyUp, 0, protocol.CmdAimUp},
		{tcell.KeyDown, 0, protocol.CmdAimDown},
		{tcell.KeyLeft, 0, protocol.CmdAimLeft},
		{tcell.KeyRight, 0, protocol.CmdAimRight},
		{tcell.KeyEnter, 0, protocol.CmdConfirm},
		{tcell.KeyRune, 'w', protocol.CmdAimUp},
		{tcell.KeyRune, 'S', protocol.CmdAimDown},
		{tcell.KeyRune, 'a', protocol.CmdAimLeft},
		{tcell.KeyRune, 'D', protocol.CmdAimRight},
		{tcell.KeyRune, ' ', protocol.CmdQuickThrow},
		{tcell.KeyRune, 'l', protocol.CmdSwitchArm},
		{tcell.KeyRune, 'p', protocol.CmdToggleSpin},
		{tcell.KeyRune, 't', protocol.CmdToggleSpinType},
		{tcell.KeyRune, ']', protocol.CmdSwingUp},
		{tcell.KeyRune, '[', protocol.CmdSwingDown},
		{tcell.KeyRune, '=', protocol.CmdSpinUp},
		{tcell.KeyRune, '-', protocol.CmdSpinDown},
		{tcell.KeyRune, 'x', protocol.CmdNone},
		{tcell.KeyTab, 0, protocol.CmdNone},
	}

	for _, tt := range tests {
		got := KeyToCommand(tt.key, tt.rune)
		if got != tt.want {
			t.Errorf("KeyToCommand(%v, %q) = %v, want %v", tt.key, tt.rune, got, tt.want)
		}
	}
}

func TestIsQuitKey(t *testing.T) {
	if !IsQuitKey(tcell.KeyRune, 'q') {
		t.Error("'q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyRune, 'Q') {
		t.Error("'Q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyEscape, 0) {
		t.Error("Escape should be quit key")
	}
	if !IsQuitKey(tcell.KeyCtrlC, 0) {
		t.Error("Ctrl+C should be quit key")
	}
	if IsQuitKey(tcell.KeyRune, 'x') {
		t.Error("'x' should not be quit key")
	}
}
