package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/sim"
	"golang.org/x/image/font/basicfont"
)

var hudTextColor = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

func uiFace() ebtext.Face {
	return ebtext.NewGoXFace(basicfont.Face7x13)
}

// hudUI is the player overlay in the top-right corner.
type hudUI struct {
	ui *ebitenui.UI

	health  *widget.Text
	stamina *widget.Text
	gold    *widget.Text
	souls   *widget.Text
	state   *widget.Text
	effects *widget.Text
}

func newHUDUI() *hudUI {
	face := uiFace()
	h := &hudUI{}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})

	label := func() *widget.Text {
		return widget.NewText(widget.TextOpts.Text("", &face, hudTextColor))
	}

	h.health = label()
	h.stamina = label()
	h.gold = label()
	h.souls = label()
	h.state = label()
	h.effects = label()

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(h.health)
	panel.AddChild(h.stamina)
	panel.AddChild(h.gold)
	panel.AddChild(h.souls)
	panel.AddChild(h.state)
	panel.AddChild(h.effects)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func (h *hudUI) update(snap sim.Snapshot) {
	h.health.Label = "HP    " + meter(snap.HUD.HealthPercent)
	h.stamina.Label = "ST    " + meter(snap.HUD.StaminaPercent)
	h.gold.Label = fmt.Sprintf("Gold  %d", snap.HUD.Gold)
	h.souls.Label = fmt.Sprintf("Souls %d", snap.HUD.Souls)
	if p := snap.Player; p != nil {
		h.state.Label = p.Action + " / " + p.State
	}
	if n := len(snap.Effects); n > 0 {
		fx := snap.Effects[n-1]
		h.effects.Label = string(fx.Kind) + ": " + fx.Name
	}
}

// meter renders a 0..1 fraction as a fixed-width text bar.
func meter(percent float64) string {
	const cells = 16
	n := int(math.Round(common.Clamp(percent, 0, 1) * cells))
	return "[" + strings.Repeat("|", n) + strings.Repeat(".", cells-n) + "]"
}
