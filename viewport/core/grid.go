package core

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// GridTexture renders a size x size RGBA tile with cells x cells grid lines,
// sampled by the rotate sectors. One cell is drawn and stamped across the
// tile; a trailing partial cell is stretched to fill.
func GridTexture(size, cells int, fill, line color.RGBA) *image.RGBA {
	if cells < 1 {
		cells = 1
	}
	cell := max(size/cells, 2)
	tile := image.NewRGBA(image.Rect(0, 0, cell, cell))
	draw.Draw(tile, tile.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)
	draw.Draw(tile, image.Rect(0, 0, cell, 1), &image.Uniform{C: line}, image.Point{}, draw.Src)
	draw.Draw(tile, image.Rect(0, 0, 1, cell), &image.Uniform{C: line}, image.Point{}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y += cell {
		for x := 0; x < size; x += cell {
			r := image.Rect(x, y, min(x+cell, size), min(y+cell, size))
			draw.NearestNeighbor.Scale(dst, r, tile, tile.Bounds(), draw.Src, nil)
		}
	}
	return dst
}
