package cv

import "image"

// Region is a rectangular screen area in absolute coordinates.
type Region struct {
	X1, Y1, X2, Y2 int
}

// NewRegion creates a new region
func NewRegion(x1, y1, x2, y2 int) Region {
	return Region{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// NewRegionFromSize creates a region from a top-left corner and dimensions
func NewRegionFromSize(left, top, width, height int) Region {
	return Region{X1: left, Y1: top, X2: left + width, Y2: top + height}
}

// Contains checks if a point is within the region
func (r Region) Contains(p image.Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Width returns the width of the region
func (r Region) Width() int {
	return r.X2 - r.X1
}

// Height returns the height of the region
func (r Region) Height() int {
	return r.Y2 - r.Y1
}

// Center returns the midpoint of the region
func (r Region) Center() image.Point {
	return image.Point{X: r.X1 + r.Width()/2, Y: r.Y1 + r.Height()/2}
}

// Empty reports whether the region covers no pixels
func (r Region) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// ToImageRectangle converts Region to image.Rectangle for use with CV operations
func (r Region) ToImageRectangle() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// CropRegion extracts a rectangular region from an image.
// The result uses its own coordinate space starting at (0,0).
func CropRegion(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	rect = rect.Intersect(img.Bounds())
	cropped := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			cropped.SetRGBA(x-rect.Min.X, y-rect.Min.Y, img.RGBAAt(x, y))
		}
	}

	return cropped
}
