package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/slash/ecs/component"
)

// KeyToCommand maps a key press to a player command. Terminals report no key
// releases, so a movement key moves for the tick it arrives in.
func KeyToCommand(ev *tcell.EventKey) (cmd component.Input, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmd, true
	case tcell.KeyUp:
		cmd.MoveY = 1
	case tcell.KeyDown:
		cmd.MoveY = -1
	case tcell.KeyLeft:
		cmd.Look = -1
	case tcell.KeyRight:
		cmd.Look = 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return cmd, true
		case 'w':
			cmd.MoveY = 1
		case 's':
			cmd.MoveY = -1
		case 'a':
			cmd.MoveX = -1
		case 'd':
			cmd.MoveX = 1
		case ' ':
			cmd.Jump = true
		case 'j':
			cmd.Attack = true
		case 'k':
			cmd.Dodge = true
		case 'e':
			cmd.Interact = true
		}
	}
	return cmd, false
}
