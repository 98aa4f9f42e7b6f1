package input

import (
	"image"
	"testing"
)

func TestInBounds(t *testing.T) {
	tc := &TapController{width: 1280, height: 720}

	tests := []struct {
		name string
		p    image.Point
		want bool
	}{
		{"center", image.Point{X: 640, Y: 360}, true},
		{"origin", image.Point{X: 0, Y: 0}, true},
		{"edge within tolerance", image.Point{X: 1285, Y: 725}, true},
		{"negative within tolerance", image.Point{X: -5, Y: -5}, true},
		{"beyond tolerance x", image.Point{X: 1291, Y: 360}, false},
		{"beyond tolerance y", image.Point{X: 640, Y: 731}, false},
		{"far negative", image.Point{X: -11, Y: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tc.inBounds(tt.p); got != tt.want {
				t.Errorf("inBounds(%v) = %t, want %t", tt.p, got, tt.want)
			}
		})
	}
}
