package lander

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

// Rendering geometry. The camera follows the vehicle horizontally and
// keeps the ground in frame whenever the vehicle is low enough.
const (
	ViewportW float64 = 600.0
	ViewportH float64 = 400.0
	Scale     float64 = 4.0 // pixels per metre
)

var (
	skyShade    color.Color = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	moonShade   color.Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hullShade   color.Color = color.RGBA{R: 128, G: 102, B: 230, A: 255}
	legShade    color.Color = color.RGBA{R: 77, G: 77, B: 128, A: 255}
	contactMark color.Color = color.RGBA{R: 255, G: 166, B: 0, A: 255}
)

// Render draws the current state of the environment and saves it as
// Lander<j>.png in the current directory
func (l *Lander) Render(j int) {
	dc := gg.NewContext(int(ViewportW), int(ViewportH))
	dc.SetColor(skyShade)
	dc.Clear()

	pos := l.body.Position()
	angle := l.body.Angle()

	// Bottom edge of the viewport in world coordinates
	camY := math.Max(-5, pos.Y-ViewportH/(2*Scale))

	toPixel := func(p r2.Vec) (float64, float64) {
		return ViewportW/2 + (p.X-pos.X)*Scale, ViewportH - (p.Y-camY)*Scale
	}
	worldPoint := func(local r2.Vec) r2.Vec {
		sin, cos := math.Sincos(angle)
		return r2.Add(pos, r2.Vec{
			X: cos*local.X - sin*local.Y,
			Y: sin*local.X + cos*local.Y,
		})
	}

	// Ground
	_, groundY := toPixel(r2.Vec{X: pos.X, Y: 0})
	if groundY < ViewportH {
		dc.DrawRectangle(0, groundY, ViewportW, ViewportH-groundY)
		dc.SetColor(moonShade)
		dc.Fill()
	}

	colliders := l.body.Colliders()

	// Hull: the body contact points traced in order, closed through the
	// two leg attachment points.
	hull := []int{4, 5, 6, 7, 3, 2}
	dc.ClearPath()
	for _, i := range hull {
		x, y := toPixel(worldPoint(colliders[i].LocalPosition()))
		dc.LineTo(x, y)
	}
	dc.ClosePath()
	dc.SetColor(hullShade)
	dc.Fill()

	// Legs: struts from the attachment points down to the feet
	dc.ClearPath()
	dc.SetColor(legShade)
	dc.SetLineWidth(3.0)
	for _, strut := range [][2]int{{2, 0}, {3, 1}} {
		x1, y1 := toPixel(worldPoint(colliders[strut[0]].LocalPosition()))
		x2, y2 := toPixel(worldPoint(colliders[strut[1]].LocalPosition()))
		dc.DrawLine(x1, y1, x2, y2)
	}
	dc.Stroke()

	// Feet, highlighted while touching the ground
	for _, foot := range []int{0, 1} {
		x, y := toPixel(worldPoint(colliders[foot].LocalPosition()))
		if colliders[foot].Contacted() {
			dc.SetColor(contactMark)
		} else {
			dc.SetColor(legShade)
		}
		dc.DrawCircle(x, y, 3.0)
		dc.Fill()
	}

	dc.SavePNG(fmt.Sprintf("./Lander%v.png", j))
}
