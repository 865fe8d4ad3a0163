package mazeio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/beka-birhanu/vinom-mazesolver/maze"
)

// Pixel colours of an image maze.
var (
	WallColor  = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	OpenColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	StartColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	EndColor   = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	PathColor  = color.NRGBA{R: 0, G: 128, B: 0, A: 255}
)

// stateOf maps a pixel to a cell state.
func stateOf(c color.Color) (maze.CellState, bool) {
	switch color.NRGBAModel.Convert(c).(color.NRGBA) {
	case WallColor:
		return maze.Blocked, true
	case OpenColor:
		return maze.Open, true
	case StartColor:
		return maze.Start, true
	case EndColor:
		return maze.End, true
	}
	return 0, false
}

// DecodeImage reads an image in any registered format and maps every pixel to
// a cell. Pixels in any colour other than the four maze colours are rejected.
// The decoded image is returned so a solution can be drawn onto it.
func DecodeImage(r io.Reader) (*maze.Maze, image.Image, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return nil, nil, fmt.Errorf("%w: %dx%d image", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	bounds := img.Bounds()
	states := make([][]maze.CellState, bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := make([]maze.CellState, bounds.Dx())
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s, ok := stateOf(img.At(x, y))
			if !ok {
				return nil, nil, fmt.Errorf("%w: %v at pixel (%d,%d)", ErrUnknownColor, img.At(x, y), x, y)
			}
			row[x-bounds.Min.X] = s
		}
		states[y-bounds.Min.Y] = row
	}

	m, err := maze.FromStates(states)
	if err != nil {
		return nil, nil, err
	}
	return m, img, nil
}

// Image draws m one pixel per cell using the maze colours.
func Image(m *maze.Maze) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	for c := range m.Nodes() {
		var px color.NRGBA
		switch c.State {
		case maze.Blocked:
			px = WallColor
		case maze.Start:
			px = StartColor
		case maze.End:
			px = EndColor
		default:
			px = OpenColor
		}
		img.SetNRGBA(c.Col, c.Row, px)
	}
	return img
}

// EncodeImage writes m as a PNG.
func EncodeImage(w io.Writer, m *maze.Maze) error {
	return png.Encode(w, Image(m))
}

// RenderSolution copies src, paints every cell of path in PathColor and writes
// the result as a PNG.
func RenderSolution(w io.Writer, src image.Image, path []maze.Cell) error {
	bounds := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)

	for _, c := range path {
		if !(image.Point{X: c.Col, Y: c.Row}).In(out.Bounds()) {
			return fmt.Errorf("%w: path cell %s outside the image", maze.ErrOutOfBounds, c.CellPosition)
		}
		out.SetNRGBA(c.Col, c.Row, PathColor)
	}
	return png.Encode(w, out)
}
