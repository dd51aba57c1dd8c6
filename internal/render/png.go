// Package render draws puzzles as PNG images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/kyiku/wordsearch-back/internal/geometry"
	"github.com/kyiku/wordsearch-back/internal/puzzle"
)

// Options configures PNG rendering.
type Options struct {
	CellSize  int
	Padding   int
	FontSize  float64
	GridLines bool
	Uppercase bool
	// Highlight lists segments to mark, typically the words a player found.
	Highlight []geometry.Segment
}

// DefaultOptions returns the options used by the image endpoint.
func DefaultOptions() Options {
	return Options{
		CellSize:  40,
		Padding:   20,
		FontSize:  22,
		GridLines: true,
		Uppercase: true,
	}
}

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorLetter     = color.RGBA{51, 51, 51, 255}    // #333
	colorGrid       = color.RGBA{224, 224, 224, 255} // #e0e0e0
	colorHighlight  = color.RGBA{255, 224, 130, 255} // #ffe082
)

// PNG renders p and encodes it to w.
func PNG(w io.Writer, p *puzzle.Puzzle, opts Options) error {
	img, err := Image(p, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode puzzle image: %w", err)
	}
	return nil
}

// Image renders p onto a new RGBA image.
func Image(p *puzzle.Puzzle, opts Options) (*image.RGBA, error) {
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size %d", opts.CellSize)
	}

	cols, rows := p.Shape()
	width := cols*opts.CellSize + 2*opts.Padding
	height := rows*opts.CellSize + 2*opts.Padding
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	for _, s := range opts.Highlight {
		drawHighlight(img, s, opts)
	}
	if opts.GridLines {
		drawGrid(img, cols, rows, opts)
	}

	face, err := newFace(opts.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorLetter),
		Face: face,
	}
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()

	for r, line := range p.RenderTable() {
		if opts.Uppercase {
			line = strings.ToUpper(line)
		}
		for c, ch := range []rune(line) {
			s := string(ch)
			x := opts.Padding + c*opts.CellSize + (opts.CellSize-d.MeasureString(s).Ceil())/2
			y := opts.Padding + r*opts.CellSize + (opts.CellSize-textHeight)/2 + metrics.Ascent.Ceil()
			d.Dot = fixed.P(x, y)
			d.DrawString(s)
		}
	}

	return img, nil
}

func newFace(size float64) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

func drawGrid(img *image.RGBA, cols, rows int, opts Options) {
	src := image.NewUniform(colorGrid)
	left, top := opts.Padding, opts.Padding
	right := opts.Padding + cols*opts.CellSize
	bottom := opts.Padding + rows*opts.CellSize

	for c := 0; c <= cols; c++ {
		x := left + c*opts.CellSize
		draw.Draw(img, image.Rect(x, top, x+1, bottom), src, image.Point{}, draw.Src)
	}
	for r := 0; r <= rows; r++ {
		y := top + r*opts.CellSize
		draw.Draw(img, image.Rect(left, y, right, y+1), src, image.Point{}, draw.Src)
	}
}

// drawHighlight paints a thick band from the centre of the first cell of s to
// the centre of the last one by stamping squares along the line.
func drawHighlight(img *image.RGBA, s geometry.Segment, opts Options) {
	src := image.NewUniform(colorHighlight)
	half := opts.CellSize * 2 / 5
	center := func(v geometry.Vector) (int, int) {
		return opts.Padding + v.X*opts.CellSize + opts.CellSize/2,
			opts.Padding + v.Y*opts.CellSize + opts.CellSize/2
	}

	x0, y0 := center(s.Start)
	x1, y1 := center(s.End)
	steps := max(s.Cells()-1, 0) * opts.CellSize
	for i := 0; i <= steps; i++ {
		x, y := x0, y0
		if steps > 0 {
			x = x0 + (x1-x0)*i/steps
			y = y0 + (y1-y0)*i/steps
		}
		draw.Draw(img, image.Rect(x-half, y-half, x+half, y+half), src, image.Point{}, draw.Src)
	}
}
