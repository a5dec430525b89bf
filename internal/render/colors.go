package render

import (
	"image/color"
	"math"
)

func hex(v uint32) color.RGBA {
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}

// Hit colours for the standard spray chart, in legend order.
var eventColors = []struct {
	event string
	color color.RGBA
}{
	{"single", hex(0x3498db)},
	{"double", hex(0x2ecc71)},
	{"triple", hex(0xf39c12)},
	{"home_run", hex(0xe74c3c)},
}

// ylOrRd is the yellow-orange-red sequential ramp used by heat maps.
var ylOrRd = []color.RGBA{
	hex(0xffffcc), hex(0xffeda0), hex(0xfed976), hex(0xfeb24c), hex(0xfd8d3c),
	hex(0xfc4e2a), hex(0xe31a1c), hex(0xbd0026), hex(0x800026),
}

// ramp interpolates ylOrRd at t in [0, 1].
func ramp(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(ylOrRd)-1)
	i := int(pos)
	if i >= len(ylOrRd)-1 {
		return ylOrRd[len(ylOrRd)-1]
	}
	f := pos - float64(i)
	a, b := ylOrRd[i], ylOrRd[i+1]
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + f*(float64(y)-float64(x)))) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}

// withAlpha returns c as a non-premultiplied colour with opacity a.
func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, a}
}

// set3 is a twelve-colour qualitative palette for bar series.
var set3 = []color.RGBA{
	hex(0x8dd3c7), hex(0xffffb3), hex(0xbebada), hex(0xfb8072), hex(0x80b1d3), hex(0xfdb462),
	hex(0xb3de69), hex(0xfccde5), hex(0xd9d9d9), hex(0xbc80bd), hex(0xccebc5), hex(0xffed6f),
}

// seriesColors spreads n colours evenly across set3.
func seriesColors(n int) []color.RGBA {
	out := make([]color.RGBA, n)
	for i := range out {
		idx := 0
		if n > 1 {
			idx = i * len(set3) / (n - 1)
		}
		if idx >= len(set3) {
			idx = len(set3) - 1
		}
		out[i] = set3[idx]
	}
	return out
}
