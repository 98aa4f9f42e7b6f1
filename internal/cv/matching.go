package cv

import (
	"image"
	"log/slog"
	"math"
)

// DefaultMatchThreshold is the minimum normalized correlation score for a
// match to be accepted when the caller does not override it.
const DefaultMatchThreshold = 0.8

// MatchResult describes one accepted template match inside a source crop.
type MatchResult struct {
	Name       string
	TopLeft    image.Point
	Confidence float64
	Width      int
	Height     int
}

// Center returns the midpoint of the matched area.
func (m MatchResult) Center() image.Point {
	return image.Point{X: m.TopLeft.X + m.Width/2, Y: m.TopLeft.Y + m.Height/2}
}

// Matcher is a stateless correlation engine over a template library.
// Cost is proportional to template count times crop pixel count, so callers
// are expected to match against small per-slot crops, never full frames.
type Matcher struct {
	library          *Library
	defaultThreshold float64
	log              *slog.Logger
}

// NewMatcher creates a matcher bound to a template library
func NewMatcher(library *Library, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{
		library:          library,
		defaultThreshold: DefaultMatchThreshold,
		log:              logger,
	}
}

// SetDefaultThreshold overrides the threshold used when a call passes 0
func (m *Matcher) SetDefaultThreshold(threshold float64) {
	if threshold > 0 && threshold <= 1 {
		m.defaultThreshold = threshold
	}
}

// Match returns every location in source where the named template scores at
// least threshold. A threshold of 0 selects the matcher default. An empty or
// zero-area source yields no matches without failing, as does an unknown
// template or a template larger than the source.
func (m *Matcher) Match(source *image.RGBA, name string, threshold float64) []MatchResult {
	if threshold <= 0 {
		threshold = m.defaultThreshold
	}

	if EmptyFrame(source) {
		return nil
	}

	template, ok := m.library.Get(name)
	if !ok {
		m.log.Warn("template not loaded", "template", name)
		return nil
	}

	tw := template.Bounds().Dx()
	th := template.Bounds().Dy()
	sw := source.Bounds().Dx()
	sh := source.Bounds().Dy()

	if tw > sw || th > sh || tw == 0 || th == 0 {
		return nil
	}

	var results []MatchResult

	for y := 0; y <= sh-th; y++ {
		for x := 0; x <= sw-tw; x++ {
			score := correlate(source, template, x, y, tw, th)
			if score >= threshold {
				results = append(results, MatchResult{
					Name:       name,
					TopLeft:    image.Point{X: x, Y: y},
					Confidence: score,
					Width:      tw,
					Height:     th,
				})
			}
		}
	}

	return results
}

// MatchAll matches the source against every loaded template and returns only
// templates that produced at least one match.
func (m *Matcher) MatchAll(source *image.RGBA, threshold float64) map[string][]MatchResult {
	results := make(map[string][]MatchResult)

	for _, name := range m.library.Names() {
		matches := m.Match(source, name, threshold)
		if len(matches) > 0 {
			results[name] = matches
		}
	}

	return results
}

// FindBest returns the highest-confidence match for one template, or false
// when nothing cleared the threshold.
func (m *Matcher) FindBest(source *image.RGBA, name string, threshold float64) (MatchResult, bool) {
	matches := m.Match(source, name, threshold)
	if len(matches) == 0 {
		return MatchResult{}, false
	}

	best := matches[0]
	for _, match := range matches[1:] {
		if match.Confidence > best.Confidence {
			best = match
		}
	}

	return best, true
}

// correlate computes the normalized cross-correlation of the template against
// the source window anchored at (x, y), mapped from [-1,1] to [0,1].
func correlate(source, template *image.RGBA, x, y, width, height int) float64 {
	var sumS, sumT, sumST, sumSS, sumTT float64
	pixelCount := float64(width * height * 3)

	for ty := 0; ty < height; ty++ {
		sIdx := source.PixOffset(source.Bounds().Min.X+x, source.Bounds().Min.Y+y+ty)
		tIdx := template.PixOffset(template.Bounds().Min.X, template.Bounds().Min.Y+ty)
		for tx := 0; tx < width; tx++ {
			for c := 0; c < 3; c++ {
				s := float64(source.Pix[sIdx+tx*4+c])
				t := float64(template.Pix[tIdx+tx*4+c])

				sumS += s
				sumT += t
				sumST += s * t
				sumSS += s * s
				sumTT += t * t
			}
		}
	}

	numerator := sumST - (sumS * sumT / pixelCount)
	denomS := math.Sqrt(sumSS - (sumS * sumS / pixelCount))
	denomT := math.Sqrt(sumTT - (sumT * sumT / pixelCount))

	if denomS == 0 || denomT == 0 {
		// Flat regions have no correlation signal; treat an exact flat-on-flat
		// overlap as a perfect match so solid-color templates still resolve.
		if denomS == 0 && denomT == 0 && sumS/pixelCount == sumT/pixelCount {
			return 1.0
		}
		return 0
	}

	correlation := numerator / (denomS * denomT)
	return (correlation + 1.0) / 2.0
}
