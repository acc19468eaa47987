package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/milk9111/slash/prefabs"
	"github.com/milk9111/slash/sim"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	mapMargin   = 24
	statusTicks = 120
)

var enemyColors = map[string]color.Color{
	"idle":       colornames.White,
	"patrolling": colornames.Gold,
	"chasing":    colornames.Orange,
	"attacking":  colornames.Red,
	"engaged":    colornames.Magenta,
	"dead":       colornames.Dimgray,
}

var itemColors = map[string]color.Color{
	"weapon":   colornames.Lightsteelblue,
	"soul":     colornames.Aqua,
	"treasure": colornames.Goldenrod,
}

type Game struct {
	sim     *sim.Game
	snap    sim.Snapshot
	watcher *prefabs.Watcher

	hud     *hudUI
	pauseUI *ebitenui.UI
	paused  bool
	debug   bool

	clipboard bool
	status    string
	statusFor int

	log *logrus.Entry
}

// NewGame starts the simulation and the overlays drawn on top of it.
func NewGame(cfg sim.Config, debug, watch bool) (*Game, error) {
	s, err := sim.New(cfg)
	if err != nil {
		return nil, err
	}
	g := &Game{
		sim:   s,
		snap:  s.Snapshot(),
		debug: debug,
		log:   logger.For("viewer"),
	}
	g.hud = newHUDUI()
	g.pauseUI = NewPauseUI(g)

	if err := clipboard.Init(); err != nil {
		g.log.WithError(err).Warn("clipboard unavailable")
	} else {
		g.clipboard = true
	}

	if watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "levels")
		if err != nil {
			g.log.WithError(err).Warn("watch disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.drainWatcher()
	if g.statusFor > 0 {
		g.statusFor--
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reload()
	}

	g.sim.Command(readInput())
	g.sim.Step(1.0 / float64(ebiten.TPS()))
	g.snap = g.sim.Snapshot()

	g.hud.update(g.snap)
	g.hud.ui.Update()
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithField("file", name).Info("reloading")
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.WithError(err).Warn("watch error")
			}
		default:
			return
		}
	}
}

func (g *Game) reload() {
	if err := g.sim.Reload(); err != nil {
		g.setStatus("reload failed: " + err.Error())
		return
	}
	g.snap = g.sim.Snapshot()
	g.setStatus("reloaded " + g.snap.Level)
}

func (g *Game) copySnapshot() {
	if !g.clipboard {
		g.setStatus("clipboard unavailable")
		return
	}
	data, err := g.sim.MarshalSnapshot()
	if err != nil {
		g.log.WithError(err).Warn("marshal snapshot")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus(fmt.Sprintf("copied tick %d", g.snap.Tick))
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusFor = statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	v := newView(g.snap.Bounds, baseWidth, baseHeight)
	v.drawBounds(screen)
	drawSnapshot(screen, v, g.snap, g.debug)

	g.hud.ui.Draw(screen)

	line := fmt.Sprintf("Tick: %d    FPS: %.2f", g.snap.Tick, ebiten.ActualFPS())
	if g.statusFor > 0 {
		line += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, line)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// view maps the level's ground plane onto the screen with a uniform scale.
type view struct {
	minX, minY float64
	scale      float64
	offX, offY float64
	w, h       float64
}

func newView(b sim.BoundsView, width, height float64) view {
	v := view{minX: b.MinX, minY: b.MinY, scale: 1}
	if b.Width > 0 && b.Height > 0 {
		v.scale = math.Min((width-2*mapMargin)/b.Width, (height-2*mapMargin)/b.Height)
	}
	v.w = b.Width * v.scale
	v.h = b.Height * v.scale
	v.offX = (width - v.w) / 2
	v.offY = (height - v.h) / 2
	return v
}

func (v view) point(x, y float64) (float32, float32) {
	return float32(v.offX + (x-v.minX)*v.scale), float32(v.offY + (y-v.minY)*v.scale)
}

func (v view) length(d float64) float32 {
	return float32(d * v.scale)
}

func (v view) drawBounds(screen *ebiten.Image) {
	vector.FillRect(screen, float32(v.offX), float32(v.offY), float32(v.w), float32(v.h), color.NRGBA{R: 0x1a, G: 0x1c, B: 0x22, A: 0xff}, false)
	vector.StrokeRect(screen, float32(v.offX), float32(v.offY), float32(v.w), float32(v.h), 1, colornames.Dimgray, false)
}

func drawSnapshot(screen *ebiten.Image, v view, snap sim.Snapshot, debug bool) {
	for _, o := range snap.Obstacles {
		x, y := v.point(o.X-o.Width/2, o.Y-o.Height/2)
		vector.FillRect(screen, x, y, v.length(o.Width), v.length(o.Height), colornames.Slategray, false)
	}

	for _, b := range snap.Breakables {
		x, y := v.point(b.X, b.Y)
		r := v.length(math.Max(b.Radius, 10))
		if b.Broken {
			vector.StrokeCircle(screen, x, y, r, 1, colornames.Saddlebrown, true)
			continue
		}
		vector.FillCircle(screen, x, y, r, colornames.Sienna, true)
	}

	for _, it := range snap.Items {
		if it.Equipped {
			continue
		}
		x, y := v.point(it.X, it.Y)
		clr, ok := itemColors[it.Kind]
		if !ok {
			clr = colornames.White
		}
		vector.FillCircle(screen, x, y, 4, clr, true)
	}

	for _, en := range snap.Enemies {
		clr, ok := enemyColors[en.State]
		if !ok {
			clr = colornames.White
		}
		drawActor(screen, v, en.ActorView, clr)
		if en.Bar && en.Max > 0 {
			drawHealthBar(screen, v, en.ActorView)
		}
		if debug {
			x, y := v.point(en.X, en.Y)
			ebitenutil.DebugPrintAt(screen, en.State, int(x)+8, int(y)-20)
		}
	}

	if p := snap.Player; p != nil {
		clr := color.Color(colornames.Crimson)
		if p.Health <= 0 {
			clr = colornames.Dimgray
		}
		drawActor(screen, v, p.ActorView, clr)
		if debug {
			x, y := v.point(p.X, p.Y)
			ebitenutil.DebugPrintAt(screen, p.Action+"/"+p.State, int(x)+8, int(y)-20)
		}
	}

	// Live blades are drawn over the pawns holding them.
	for _, it := range snap.Items {
		if !it.Live {
			continue
		}
		x, y := v.point(it.X, it.Y)
		f := common.Forward(it.Yaw)
		ex, ey := v.point(it.X+f.X*60, it.Y+f.Y*60)
		vector.StrokeLine(screen, x, y, ex, ey, 2, colornames.Lightgrey, true)
	}
}

func drawActor(screen *ebiten.Image, v view, a sim.ActorView, clr color.Color) {
	x, y := v.point(a.X, a.Y)
	r := v.length(math.Max(a.Radius, 20))
	vector.FillCircle(screen, x, y, r, clr, true)

	f := common.Forward(a.Yaw).Scale(a.Radius * 1.6)
	fx, fy := v.point(a.X+f.X, a.Y+f.Y)
	vector.StrokeLine(screen, x, y, fx, fy, 2, colornames.White, true)
}

func drawHealthBar(screen *ebiten.Image, v view, a sim.ActorView) {
	const barW, barH = 30, 4
	x, y := v.point(a.X, a.Y)
	x -= barW / 2
	y -= v.length(a.Radius) + 10
	vector.FillRect(screen, x, y, barW, barH, colornames.Darkred, false)
	vector.FillRect(screen, x, y, float32(barW*a.Health/a.Max), barH, colornames.Limegreen, false)
	vector.StrokeRect(screen, x, y, barW, barH, 1, colornames.Black, false)
}
