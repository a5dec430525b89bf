package render

import (
	"errors"
	"image/color"
	"math"
)

// Bar is one player's value in a comparison panel. Label is drawn under the
// bar and Text above it.
type Bar struct {
	Label string
	Value float64
	Text  string
}

// Panel is one metric's bar group.
type Panel struct {
	Metric string
	Bars   []Bar
}

const (
	panelMinWidth = 200
	barSlot       = 80
	compareHeight = 360
	panelTop      = 50
	panelBottom   = 40
)

var ErrNoPanels = errors.New("render: no panels to draw")

// Comparison renders one bar panel per metric side by side. Bars keep the
// same colour for the same position across panels.
func Comparison(title string, panels []Panel) ([]byte, error) {
	if len(panels) == 0 {
		return nil, ErrNoPanels
	}
	slots := 0
	for _, p := range panels {
		slots = max(slots, len(p.Bars))
	}
	pw := max(panelMinWidth, slots*barSlot+40)
	c := newCanvas(pw*len(panels), compareHeight)
	c.centeredText(pw*len(panels)/2, 20, title, black)

	colors := seriesColors(slots)
	for i, p := range panels {
		drawPanel(c, i*pw, pw, p, colors)
	}
	return c.encode()
}

func drawPanel(c *canvas, left, width int, p Panel, colors []color.RGBA) {
	c.centeredText(left+width/2, panelTop-12, p.Metric, black)
	if len(p.Bars) == 0 {
		return
	}

	lo, hi := 0.0, 0.0
	for _, b := range p.Bars {
		lo, hi = math.Min(lo, b.Value), math.Max(hi, b.Value)
	}
	if lo == hi {
		hi = 1
	}
	span := (hi - lo) * 1.1
	plotTop := float64(panelTop + 12)
	plotBottom := float64(compareHeight - panelBottom)
	plotH := plotBottom - plotTop
	y := func(v float64) float64 { return plotBottom - (v-lo*1.1)/span*plotH }

	x0 := float64(left + 20)
	x1 := float64(left + width - 20)
	c.line(point{x0, plotTop}, point{x0, plotBottom}, 1, grey)
	c.line(point{x0, y(0)}, point{x1, y(0)}, 1, grey)

	slot := (x1 - x0) / float64(len(p.Bars))
	barW := slot * 0.7
	for i, b := range p.Bars {
		bx := x0 + slot*float64(i) + (slot-barW)/2
		top, base := y(b.Value), y(0)
		if top > base {
			top, base = base, top
		}
		c.rect(bx, top, bx+barW, base, colors[i])
		cx := int(bx + barW/2)
		if b.Text != "" {
			ty := int(top) - 3
			if b.Value < 0 {
				ty = int(base) + 12
			}
			c.centeredText(cx, ty, b.Text, black)
		}
		c.centeredText(cx, int(plotBottom)+16, b.Label, grey)
	}
}
