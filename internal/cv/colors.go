package cv

import "image"

// HSV is a color in OpenCV-scaled HSV space: H in 0-179, S and V in 0-255.
// Using the OpenCV scale keeps the tuned hue bands from the original
// capture tooling usable without conversion.
type HSV struct {
	H, S, V uint8
}

// RGBToHSV converts an 8-bit RGB triple to OpenCV-scaled HSV.
func RGBToHSV(r, g, b uint8) HSV {
	rf := int(r)
	gf := int(g)
	bf := int(b)

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	v := max
	delta := max - min

	var s int
	if max > 0 {
		s = 255 * delta / max
	}

	var h int
	if delta > 0 {
		switch max {
		case rf:
			h = 30 * (gf - bf) / delta
		case gf:
			h = 60 + 30*(bf-rf)/delta
		default:
			h = 120 + 30*(rf-gf)/delta
		}
		if h < 0 {
			h += 180
		}
	}

	return HSV{H: uint8(h), S: uint8(s), V: uint8(v)}
}

// InRange reports whether the color falls inside the inclusive band [lo, hi].
func (c HSV) InRange(lo, hi HSV) bool {
	return c.H >= lo.H && c.H <= hi.H &&
		c.S >= lo.S && c.S <= hi.S &&
		c.V >= lo.V && c.V <= hi.V
}

// CountInRange counts pixels whose HSV value lies inside [lo, hi].
func CountInRange(img *image.RGBA, lo, hi HSV) int {
	if EmptyFrame(img) {
		return 0
	}

	bounds := img.Bounds()
	count := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			idx := (y-bounds.Min.Y)*img.Stride + (x-bounds.Min.X)*4
			hsv := RGBToHSV(img.Pix[idx], img.Pix[idx+1], img.Pix[idx+2])
			if hsv.InRange(lo, hi) {
				count++
			}
		}
	}

	return count
}

// RatioInRange returns the fraction of pixels inside the band [lo, hi].
func RatioInRange(img *image.RGBA, lo, hi HSV) float64 {
	if EmptyFrame(img) {
		return 0
	}

	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	return float64(CountInRange(img, lo, hi)) / float64(total)
}
