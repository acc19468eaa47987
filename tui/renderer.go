package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/slash/sim"
)

// hudRows is the number of rows reserved below the map.
const hudRows = 3

var enemyColors = map[string]tcell.Color{
	"idle":       tcell.ColorWhite,
	"patrolling": tcell.ColorYellow,
	"chasing":    tcell.ColorOrange,
	"attacking":  tcell.ColorRed,
	"engaged":    tcell.ColorFuchsia,
	"dead":       tcell.ColorGray,
}

// Renderer draws snapshots top-down onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// viewport maps world positions into the map area above the HUD.
type viewport struct {
	minX, minY float64
	sx, sy     float64
	cols, rows int
}

func newViewport(b sim.BoundsView, cols, rows int) viewport {
	v := viewport{minX: b.MinX, minY: b.MinY, cols: cols, rows: rows}
	if b.Width > 0 {
		v.sx = float64(cols) / b.Width
	}
	if b.Height > 0 {
		v.sy = float64(rows) / b.Height
	}
	return v
}

func (v viewport) cell(x, y float64) (int, int, bool) {
	cx := int(math.Floor((x - v.minX) * v.sx))
	cy := int(math.Floor((y - v.minY) * v.sy))
	if cx < 0 || cy < 0 || cx >= v.cols || cy >= v.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// Draw renders one frame and shows it.
func (r *Renderer) Draw(snap sim.Snapshot) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= hudRows {
		r.screen.Show()
		return
	}
	v := newViewport(snap.Bounds, w, h-hudRows)

	r.drawObstacles(v, snap.Obstacles)
	for _, b := range snap.Breakables {
		glyph := 'o'
		if b.Broken {
			glyph = '%'
		}
		r.put(v, b.X, b.Y, glyph, tcell.StyleDefault.Foreground(tcell.ColorTan))
	}
	for _, it := range snap.Items {
		if it.Equipped {
			continue
		}
		r.put(v, it.X, it.Y, itemGlyph(it.Kind), tcell.StyleDefault.Foreground(tcell.ColorGold))
	}
	for _, en := range snap.Enemies {
		color, ok := enemyColors[en.State]
		if !ok {
			color = tcell.ColorWhite
		}
		r.put(v, en.X, en.Y, 'E', tcell.StyleDefault.Foreground(color).Bold(true))
	}
	if p := snap.Player; p != nil {
		style := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
		if p.Action == "dead" {
			style = tcell.StyleDefault.Foreground(tcell.ColorGray)
		}
		r.put(v, p.X, p.Y, '@', style)
	}

	r.drawHUD(snap, h-hudRows)
	r.screen.Show()
}

func itemGlyph(kind string) rune {
	switch kind {
	case "soul":
		return '*'
	case "treasure":
		return '$'
	default:
		return '/'
	}
}

func (r *Renderer) drawObstacles(v viewport, obstacles []sim.ObstacleView) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, o := range obstacles {
		x0, y0 := o.X-o.Width/2, o.Y-o.Height/2
		x1, y1 := o.X+o.Width/2, o.Y+o.Height/2
		c0x, c0y := int(math.Floor((x0-v.minX)*v.sx)), int(math.Floor((y0-v.minY)*v.sy))
		c1x, c1y := int(math.Floor((x1-v.minX)*v.sx)), int(math.Floor((y1-v.minY)*v.sy))
		for cy := max(c0y, 0); cy <= min(c1y, v.rows-1); cy++ {
			for cx := max(c0x, 0); cx <= min(c1x, v.cols-1); cx++ {
				r.screen.SetContent(cx, cy, '#', nil, style)
			}
		}
	}
}

func (r *Renderer) put(v viewport, x, y float64, glyph rune, style tcell.Style) {
	cx, cy, ok := v.cell(x, y)
	if !ok {
		return
	}
	r.screen.SetContent(cx, cy, glyph, nil, style)
}
