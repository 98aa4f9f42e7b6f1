package input

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"math/rand"

	"jansel.dev/shop-picker-go/internal/cv"
	"jansel.dev/shop-picker-go/internal/game"
)

// boundsTolerance lets taps land slightly outside the reported resolution,
// since slot centers sit close to the frame edge on some layouts.
const boundsTolerance = 10

// maxJitter is the magnitude of the random per-tap offset.
const maxJitter = 10

// TapController sends taps through a Device and doubles as the frame source.
// Each tap is jittered by a few pixels so repeated picks do not land on the
// exact same coordinate.
type TapController struct {
	device *Device
	width  int
	height int
	log    *slog.Logger
}

// NewTapController creates a tap controller. The device should already be
// connected; the screen size is queried once up front.
func NewTapController(device *Device, logger *slog.Logger) (*TapController, error) {
	if logger == nil {
		logger = slog.Default()
	}

	width, height, err := device.ScreenSize()
	if err != nil {
		return nil, fmt.Errorf("querying screen size: %w", err)
	}

	return &TapController{
		device: device,
		width:  width,
		height: height,
		log:    logger,
	}, nil
}

// Click taps at p with jitter applied. Out-of-bounds targets are rejected.
func (t *TapController) Click(p image.Point) bool {
	if !t.inBounds(p) {
		t.log.Warn("tap target out of bounds", "x", p.X, "y", p.Y)
		return false
	}

	x := p.X + rand.Intn(2*maxJitter+1) - maxJitter
	y := p.Y + rand.Intn(2*maxJitter+1) - maxJitter

	if _, err := t.device.Shell(fmt.Sprintf("input tap %d %d", x, y)); err != nil {
		t.log.Error("tap failed", "x", x, "y", y, "error", err)
		return false
	}

	t.log.Debug("tapped", "x", x, "y", y)
	return true
}

// ClickCard taps the card's recognized slot position.
func (t *TapController) ClickCard(card game.Card) bool {
	if card.Position == (image.Point{}) {
		t.log.Warn("card has no position", "card", card.Name)
		return false
	}
	return t.Click(card.Position)
}

func (t *TapController) inBounds(p image.Point) bool {
	return p.X >= -boundsTolerance && p.X <= t.width+boundsTolerance &&
		p.Y >= -boundsTolerance && p.Y <= t.height+boundsTolerance
}

// CaptureFull grabs a full-resolution frame via screencap.
func (t *TapController) CaptureFull() (*image.RGBA, error) {
	raw, err := t.device.ExecOut("screencap", "-p")
	if err != nil {
		return nil, fmt.Errorf("screencap: %w", err)
	}

	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding screencap: %w", err)
	}

	if rgba, ok := decoded.(*image.RGBA); ok {
		return rgba, nil
	}

	rgba := image.NewRGBA(decoded.Bounds())
	draw.Draw(rgba, rgba.Bounds(), decoded, decoded.Bounds().Min, draw.Src)
	return rgba, nil
}

// CaptureRegion grabs a full frame and crops it to r.
func (t *TapController) CaptureRegion(r cv.Region) (*image.RGBA, error) {
	frame, err := t.CaptureFull()
	if err != nil {
		return nil, err
	}
	return cv.CropRegion(frame, r.ToImageRectangle()), nil
}

// Dimensions returns the device resolution queried at construction.
func (t *TapController) Dimensions() (int, int) {
	return t.width, t.height
}
