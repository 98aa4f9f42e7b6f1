package cv

import "image"

// Capturer provides on-demand pixel snapshots of the game screen.
// Implementations report capture failures as errors; callers treat an
// empty or nil frame the same way and skip the current cycle.
type Capturer interface {
	CaptureFull() (*image.RGBA, error)
	CaptureRegion(r Region) (*image.RGBA, error)
	Dimensions() (width, height int)
}

// EmptyFrame reports whether a captured frame is unusable for matching.
func EmptyFrame(img *image.RGBA) bool {
	return img == nil || img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0
}
