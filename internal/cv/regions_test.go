package cv

import (
	"image"
	"image/color"
	"testing"
)

func TestRegionGeometry(t *testing.T) {
	r := NewRegionFromSize(200, 500, 150, 200)

	if r.Width() != 150 || r.Height() != 200 {
		t.Errorf("size = %dx%d, want 150x200", r.Width(), r.Height())
	}
	if r.Center() != (image.Point{X: 275, Y: 600}) {
		t.Errorf("center = %v, want (275,600)", r.Center())
	}
	if !r.Contains(image.Point{X: 200, Y: 500}) {
		t.Error("region should contain its top-left corner")
	}
	if r.Contains(image.Point{X: 199, Y: 500}) {
		t.Error("region should not contain points left of it")
	}
	if r.Empty() {
		t.Error("non-degenerate region reported empty")
	}
}

func TestEmptyRegion(t *testing.T) {
	if !NewRegion(10, 10, 10, 20).Empty() {
		t.Error("zero-width region should be empty")
	}
	if !NewRegion(10, 10, 20, 5).Empty() {
		t.Error("inverted region should be empty")
	}
}

func TestCropRegion(t *testing.T) {
	img := solidImage(20, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetRGBA(5, 5, color.RGBA{R: 255, A: 255})

	crop := CropRegion(img, image.Rect(4, 4, 10, 10))

	if crop.Bounds() != image.Rect(0, 0, 6, 6) {
		t.Fatalf("crop bounds = %v", crop.Bounds())
	}
	if got := crop.RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (1,1) = %v, want red", got)
	}
}

func TestCropRegionClampsToBounds(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{A: 255})

	crop := CropRegion(img, image.Rect(5, 5, 30, 30))
	if crop.Bounds().Dx() != 5 || crop.Bounds().Dy() != 5 {
		t.Errorf("crop size = %dx%d, want 5x5", crop.Bounds().Dx(), crop.Bounds().Dy())
	}

	outside := CropRegion(img, image.Rect(20, 20, 30, 30))
	if !EmptyFrame(outside) {
		t.Error("crop fully outside the image should be empty")
	}
}
