package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/diamondstats/baseball-mcp/internal/format"
)

// SprayMode selects how batted balls are drawn.
type SprayMode string

const (
	Standard SprayMode = "standard"
	HeatMap  SprayMode = "heat_map"
	Overlay  SprayMode = "overlay"
)

// Home plate in Statcast hit coordinates.
const (
	PlateX = 125.42
	PlateY = 198.27
)

// Hit is one batted ball in Statcast hit coordinates (hc_x, hc_y), where y
// grows toward home plate.
type Hit struct {
	X, Y  float64
	Event string
}

// Field returns the hit relative to home plate with y growing toward the
// outfield.
func (h Hit) Field() (x, y float64) {
	return h.X - PlateX, PlateY - h.Y
}

// Visible window in field coordinates (feet-ish units).
const (
	viewMinX, viewMaxX = -200.0, 200.0
	viewMinY, viewMaxY = -30.0, 350.0
)

const (
	sprayWidth   = 600
	sprayHeight  = 480
	titleBand    = 30
	legendWidth  = 120
	plotMargin   = 10
	heatmapBins  = 20
	heatmapAlpha = 204
)

type sprayPlot struct {
	*canvas
	ox, oy, scale float64
}

func (p *sprayPlot) px(x, y float64) point {
	return point{p.ox + (x-viewMinX)*p.scale, p.oy + (viewMaxY-y)*p.scale}
}

// Spray renders hits over a simplified field outline.
func Spray(title string, hits []Hit, mode SprayMode) ([]byte, error) {
	switch mode {
	case Standard, HeatMap, Overlay:
	default:
		return nil, fmt.Errorf("unknown spray chart mode %q", mode)
	}

	plotW := float64(sprayWidth - legendWidth - 2*plotMargin)
	plotH := float64(sprayHeight - titleBand - 2*plotMargin)
	scale := math.Min(plotW/(viewMaxX-viewMinX), plotH/(viewMaxY-viewMinY))
	p := &sprayPlot{
		canvas: newCanvas(sprayWidth, sprayHeight),
		ox:     plotMargin + (plotW-(viewMaxX-viewMinX)*scale)/2,
		oy:     titleBand + plotMargin,
		scale:  scale,
	}

	p.centeredText(sprayWidth/2, 20, title, black)
	if mode == HeatMap || mode == Overlay {
		p.heatmap(hits)
	}
	p.field()

	var legend []legendEntry
	switch mode {
	case Standard:
		legend = p.scatter(hits)
	case Overlay:
		legend = p.homeRuns(hits)
	}
	p.legend(legend)
	return p.encode()
}

func (p *sprayPlot) field() {
	diamond := []point{p.px(0, 0), p.px(60, 60), p.px(0, 120), p.px(-60, 60), p.px(0, 0)}
	p.polyline(diamond, 1.5, black)
	mound := p.px(0, 40)
	p.ring(mound, 6*p.scale, 1, black)

	foul := withAlpha(black, 178)
	p.line(p.px(0, 0), p.px(viewMinX, -viewMinX), 1, foul)
	p.line(p.px(0, 0), p.px(viewMaxX, viewMaxX), 1, foul)

	const wallRadius, wallSteps = 250.0, 50
	wall := make([]point, wallSteps)
	for i := range wall {
		a := -math.Pi/4 + math.Pi/2*float64(i)/float64(wallSteps-1)
		wall[i] = p.px(wallRadius*math.Sin(a), wallRadius*math.Cos(a))
	}
	p.polyline(wall, 1.5, black)
}

func visible(x, y float64) bool {
	return x >= viewMinX && x <= viewMaxX && y >= viewMinY && y <= viewMaxY
}

type legendEntry struct {
	label  string
	color  color.RGBA
	marker func(c *canvas, at point, col color.Color)
}

func dotMarker(c *canvas, at point, col color.Color) {
	c.disc(at, 4, white)
	c.disc(at, 3.5, col)
}

func starMarker(c *canvas, at point, col color.Color) {
	c.star(at, 8, white)
	c.star(at, 7, col)
}

func (p *sprayPlot) scatter(hits []Hit) []legendEntry {
	var legend []legendEntry
	for _, ec := range eventColors {
		seen := false
		col := withAlpha(ec.color, 178)
		for _, h := range hits {
			if h.Event != ec.event {
				continue
			}
			seen = true
			x, y := h.Field()
			if visible(x, y) {
				dotMarker(p.canvas, p.px(x, y), col)
			}
		}
		if seen {
			legend = append(legend, legendEntry{label: format.Title(ec.event), color: ec.color, marker: dotMarker})
		}
	}
	return legend
}

func (p *sprayPlot) homeRuns(hits []Hit) []legendEntry {
	red := color.RGBA{0xff, 0, 0, 0xff}
	seen := false
	for _, h := range hits {
		if h.Event != "home_run" {
			continue
		}
		seen = true
		x, y := h.Field()
		if visible(x, y) {
			starMarker(p.canvas, p.px(x, y), withAlpha(red, 230))
		}
	}
	if !seen {
		return nil
	}
	return []legendEntry{{label: "Home Runs", color: red, marker: starMarker}}
}

// heatmap bins hits over their own extent, as a 2D histogram does, and
// shades every bin on the YlOrRd ramp.
func (p *sprayPlot) heatmap(hits []Hit) {
	if len(hits) == 0 {
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, h := range hits {
		x, y := h.Field()
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	// a degenerate range widens by half a unit each side
	if minX == maxX {
		minX, maxX = minX-0.5, maxX+0.5
	}
	if minY == maxY {
		minY, maxY = minY-0.5, maxY+0.5
	}

	var counts [heatmapBins][heatmapBins]int
	peak := 0
	bin := func(v, lo, hi float64) int {
		i := int((v - lo) / (hi - lo) * heatmapBins)
		if i >= heatmapBins {
			i = heatmapBins - 1
		}
		return i
	}
	for _, h := range hits {
		x, y := h.Field()
		i, j := bin(x, minX, maxX), bin(y, minY, maxY)
		counts[i][j]++
		if counts[i][j] > peak {
			peak = counts[i][j]
		}
	}

	w := (maxX - minX) / heatmapBins
	hgt := (maxY - minY) / heatmapBins
	for i := 0; i < heatmapBins; i++ {
		for j := 0; j < heatmapBins; j++ {
			x0, x1 := clamp(minX+float64(i)*w, viewMinX, viewMaxX), clamp(minX+float64(i+1)*w, viewMinX, viewMaxX)
			y0, y1 := clamp(minY+float64(j)*hgt, viewMinY, viewMaxY), clamp(minY+float64(j+1)*hgt, viewMinY, viewMaxY)
			if x0 == x1 || y0 == y1 {
				continue
			}
			a, b := p.px(x0, y1), p.px(x1, y0)
			col := withAlpha(ramp(float64(counts[i][j])/float64(peak)), heatmapAlpha)
			p.rect(a.x, a.y, b.x, b.y, col)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (p *sprayPlot) legend(entries []legendEntry) {
	if len(entries) == 0 {
		return
	}
	x := sprayWidth - legendWidth + 8
	y := titleBand + plotMargin + 8
	p.rect(float64(x-6), float64(y-4), float64(sprayWidth-6), float64(y+len(entries)*18+2), lightGrey)
	p.rect(float64(x-5), float64(y-3), float64(sprayWidth-7), float64(y+len(entries)*18+1), white)
	for i, e := range entries {
		cy := y + 9 + i*18
		e.marker(p.canvas, point{float64(x + 5), float64(cy)}, e.color)
		p.text(x+16, cy+4, e.label, grey)
	}
}
