package frozenlake

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
)

// CellPixels is the side length of a rendered cell
const CellPixels = 64

var (
	iceColour   = color.RGBA{R: 204, G: 230, B: 255, A: 255}
	holeColour  = color.RGBA{R: 30, G: 30, B: 60, A: 255}
	goalColour  = color.RGBA{R: 255, G: 166, B: 0, A: 255}
	startColour = color.RGBA{R: 170, G: 200, B: 230, A: 255}
	gridColour  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	agentColour = color.RGBA{R: 128, G: 102, B: 230, A: 255}
)

// Image draws the map and the agent
func (f *FrozenLake) Image() image.Image {
	r, c := f.m.Dims()
	dc := gg.NewContext(c*CellPixels, r*CellPixels)
	dc.SetColor(gridColour)
	dc.Clear()

	for i := 0; i < f.m.Cells(); i++ {
		x, y := indToC(i, c)
		px, py := float64(x*CellPixels), float64(y*CellPixels)

		dc.ClearPath()
		dc.DrawRectangle(px+1, py+1, CellPixels-2, CellPixels-2)
		switch f.m.At(i) {
		case Hole:
			dc.SetColor(holeColour)
		case Goal:
			dc.SetColor(goalColour)
		case Start:
			dc.SetColor(startColour)
		default:
			dc.SetColor(iceColour)
		}
		dc.Fill()
	}

	x, y := f.Coordinates()
	dc.ClearPath()
	dc.DrawCircle(float64(x*CellPixels)+CellPixels/2,
		float64(y*CellPixels)+CellPixels/2, CellPixels/3)
	dc.SetColor(agentColour)
	dc.Fill()

	return dc.Image()
}

// Render saves an image of the map and the agent to a PNG file
func (f *FrozenLake) Render(path string) error {
	if err := gg.SavePNG(path, f.Image()); err != nil {
		return fmt.Errorf("render: %v", err)
	}
	return nil
}

// String returns the map with the agent's cell marked as A
func (f *FrozenLake) String() string {
	var b strings.Builder
	r, c := f.m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ind := cToInd(j, i, c)
			if ind == f.position {
				b.WriteByte('A')
			} else {
				b.WriteByte(f.m.At(ind))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Colored returns the map as String does, with colours for terminal
// output
func (f *FrozenLake) Colored() string {
	var b strings.Builder
	r, c := f.m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ind := cToInd(j, i, c)
			cell := string(f.m.At(ind))

			switch {
			case ind == f.position:
				b.WriteString(aurora.Green("A").Bold().String())
			case f.m.At(ind) == Hole:
				b.WriteString(aurora.Blue(cell).String())
			case f.m.At(ind) == Goal:
				b.WriteString(aurora.Yellow(cell).String())
			default:
				b.WriteString(aurora.White(cell).String())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
