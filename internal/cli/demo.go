package cli

import (
	"fmt"
	"math"

	"github.com/phanxgames/worldview"
)

const (
	gridExtent  = 4000 // half-width of the demo world in world units
	gridSpacing = 100  // minor grid line spacing
	gridMajor   = 1000 // major grid line spacing
	labelStep   = 500  // spacing of coordinate labels
)

var (
	gridMinorColor = worldview.Color{R: 0, G: 0, B: 0, A: 0.15}
	gridMajorColor = worldview.Color{R: 0, G: 0, B: 0, A: 0.45}
)

// newDemoScene builds a grid world with coordinate labels. Minor lines are
// dropped once they would be closer than 4 pixels apart.
func newDemoScene(surface worldview.Surface) *worldview.Scene {
	labels := worldview.NewLabelSet()
	for x := -gridExtent; x <= gridExtent; x += labelStep {
		for y := -gridExtent; y <= gridExtent; y += labelStep {
			size, scale := 12.0, 1.5
			if x%gridMajor == 0 && y%gridMajor == 0 {
				size, scale = 14, 4
			}
			labels.Draw(fmt.Sprintf("%d,%d", x, y), float64(x), float64(y), size, scale, worldview.ColorBlack)
		}
	}
	labels.Draw("origin", 0, -40, 20, 16, worldview.ColorWhite)

	scene := worldview.NewScene(surface, worldview.WithLabels(labels))
	scene.OnRender = func(world *worldview.WorldTransform) bool {
		if world == nil {
			return false
		}
		ov, ok := surface.Overlay()
		if !ok {
			return false
		}
		region := world.VisibleRegion()
		lineWidth := 1 / world.Scale()
		if gridSpacing*world.Scale() >= 4 {
			drawGrid(ov, region, gridSpacing, lineWidth, gridMinorColor)
		}
		drawGrid(ov, region, gridMajor, 2*lineWidth, gridMajorColor)
		return false
	}
	return scene
}

// drawGrid fills vertical and horizontal lines every step world units across
// the part of region inside the demo world.
func drawGrid(ov worldview.Overlay, region worldview.Rect, step, width float64, c worldview.Color) {
	x0 := math.Max(-gridExtent, math.Floor(region.X/step)*step)
	x1 := math.Min(gridExtent, region.X+region.Width)
	y0 := math.Max(-gridExtent, math.Floor(region.Y/step)*step)
	y1 := math.Min(gridExtent, region.Y+region.Height)
	if x0 > x1 || y0 > y1 {
		return
	}
	top := math.Max(-gridExtent, region.Y)
	left := math.Max(-gridExtent, region.X)
	for x := x0; x <= x1; x += step {
		ov.FillRect(x-width/2, top, width, y1-top, c)
	}
	for y := y0; y <= y1; y += step {
		ov.FillRect(left, y-width/2, x1-left, width, c)
	}
}
