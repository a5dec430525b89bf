// Package render draws the server's charts as PNG images.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	white     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black     = color.RGBA{0x00, 0x00, 0x00, 0xff}
	grey      = color.RGBA{0x55, 0x55, 0x55, 0xff}
	lightGrey = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
)

var face font.Face = basicfont.Face7x13

// canvas is an RGBA image with a reusable rasterizer for filled paths.
type canvas struct {
	img *image.RGBA
	r   *vector.Rasterizer
}

func newCanvas(w, h int) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return &canvas{img: img, r: vector.NewRasterizer(w, h)}
}

type point struct{ x, y float64 }

// fill paints the closed polygon pts.
func (c *canvas) fill(pts []point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	c.r.Reset(b.Dx(), b.Dy())
	c.r.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		c.r.LineTo(float32(p.x), float32(p.y))
	}
	c.r.ClosePath()
	c.r.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// line strokes a segment of the given pixel width.
func (c *canvas) line(a, b point, width float64, col color.Color) {
	dx, dy := b.x-a.x, b.y-a.y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	ox, oy := -dy/n*width/2, dx/n*width/2
	c.fill([]point{
		{a.x + ox, a.y + oy},
		{b.x + ox, b.y + oy},
		{b.x - ox, b.y - oy},
		{a.x - ox, a.y - oy},
	}, col)
}

func (c *canvas) polyline(pts []point, width float64, col color.Color) {
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1], pts[i], width, col)
	}
}

func (c *canvas) rect(x0, y0, x1, y1 float64, col color.Color) {
	c.fill([]point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, col)
}

const circleSegments = 20

func circlePoints(center point, radius float64) []point {
	pts := make([]point, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = point{center.x + radius*math.Cos(a), center.y + radius*math.Sin(a)}
	}
	return pts
}

func (c *canvas) disc(center point, radius float64, col color.Color) {
	c.fill(circlePoints(center, radius), col)
}

func (c *canvas) ring(center point, radius, width float64, col color.Color) {
	pts := circlePoints(center, radius)
	c.polyline(append(pts, pts[0]), width, col)
}

// star fills a five-pointed star.
func (c *canvas) star(center point, radius float64, col color.Color) {
	pts := make([]point, 10)
	for i := range pts {
		r := radius
		if i%2 == 1 {
			r = radius * 0.45
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = point{center.x + r*math.Cos(a), center.y + r*math.Sin(a)}
	}
	c.fill(pts, col)
}

// text draws s with its baseline starting at (x, y).
func (c *canvas) text(x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// centeredText draws s horizontally centered on cx.
func (c *canvas) centeredText(cx, y int, s string, col color.Color) {
	c.text(cx-textWidth(s)/2, y, s, col)
}

func (c *canvas) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
