package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/milk9111/slash/sim"
)

const barWidth = 10

func (r *Renderer) drawHUD(snap sim.Snapshot, y int) {
	r.drawHLine(y, tcell.ColorGray)

	status := fmt.Sprintf("HP %s  ST %s  ◆ %d  ✦ %d  tick %d",
		bar(snap.HUD.HealthPercent), bar(snap.HUD.StaminaPercent), snap.HUD.Gold, snap.HUD.Souls, snap.Tick)
	if p := snap.Player; p != nil {
		status += fmt.Sprintf("  [%s/%s]", p.Action, p.State)
	}
	r.drawText(0, y+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	names := make([]string, 0, len(snap.Effects))
	for _, fx := range snap.Effects {
		names = append(names, string(fx.Kind)+":"+fx.Name)
	}
	if n := len(names); n > 6 {
		names = names[n-6:]
	}
	r.drawText(0, y+2, strings.Join(names, " "), tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
}

func bar(percent float64) string {
	filled := int(percent*barWidth + 0.5)
	filled = max(0, min(filled, barWidth))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", barWidth-filled) + "]"
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, truncated to the screen width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	text = runewidth.Truncate(text, w-x, "…")
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
