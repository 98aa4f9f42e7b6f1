package recognizer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"jansel.dev/shop-picker-go/internal/cv"
	"jansel.dev/shop-picker-go/internal/events"
	"jansel.dev/shop-picker-go/internal/game"
)

// ErrNoFrame indicates the capturer produced no usable frame.
var ErrNoFrame = errors.New("no usable frame captured")

// DefaultRecognitionThreshold is the minimum match confidence for a card
// slot to count as recognized.
const DefaultRecognitionThreshold = 0.7

// goldBandRatio is the fraction of gold-colored pixels in the indicator
// region above which the shop is considered open.
const goldBandRatio = 0.02

var (
	goldLo = cv.HSV{H: 20, S: 100, V: 200}
	goldHi = cv.HSV{H: 40, S: 255, V: 255}
)

// costBand is one HSV range keyed to a shop cost tier.
type costBand struct {
	cost int
	lo   cv.HSV
	hi   cv.HSV
}

// Cost frames are tinted per tier; classification counts band pixels over
// the slot crop and takes the densest band.
var costBands = []costBand{
	{cost: 1, lo: cv.HSV{H: 40, S: 200, V: 200}, hi: cv.HSV{H: 50, S: 255, V: 255}},
	{cost: 2, lo: cv.HSV{H: 20, S: 150, V: 200}, hi: cv.HSV{H: 30, S: 255, V: 255}},
	{cost: 3, lo: cv.HSV{H: 0, S: 100, V: 200}, hi: cv.HSV{H: 10, S: 200, V: 255}},
	{cost: 4, lo: cv.HSV{H: 120, S: 100, V: 200}, hi: cv.HSV{H: 140, S: 255, V: 255}},
	{cost: 5, lo: cv.HSV{H: 0, S: 0, V: 200}, hi: cv.HSV{H: 180, S: 50, V: 255}},
}

// DefaultSlotRegions returns the stock five-slot shop layout for a
// 1280x720 capture.
func DefaultSlotRegions() []cv.Region {
	lefts := []int{200, 400, 600, 800, 1000}
	regions := make([]cv.Region, len(lefts))
	for i, left := range lefts {
		regions[i] = cv.NewRegionFromSize(left, 500, 150, 200)
	}
	return regions
}

// Stats summarizes recognizer activity since construction.
type Stats struct {
	Passes         int64
	CardsSeen      int64
	LastPassCards  int
	LastPass       time.Time
	Season         string
	TemplatesReady int
	SlotCount      int
}

// Recognizer turns raw frames into a phase estimate and a recognized card
// list. It owns the template library and the slot layout; the automation
// layer only ever sees game.Card values.
type Recognizer struct {
	capturer  cv.Capturer
	library   *cv.Library
	matcher   *cv.Matcher
	state     *game.State
	bus       events.EventBus
	log       *slog.Logger
	assetRoot string

	mu          sync.RWMutex
	slotRegions []cv.Region
	goldRegion  cv.Region
	threshold   float64
	season      string
	passes      int64
	cardsSeen   int64
	lastCards   int
	lastPass    time.Time
}

// New creates a recognizer over the given capturer and template asset root.
// The bus may be nil when event publication is not wanted.
func New(capturer cv.Capturer, state *game.State, assetRoot string, bus events.EventBus, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}

	library := cv.NewLibrary(logger)

	return &Recognizer{
		capturer:    capturer,
		library:     library,
		matcher:     cv.NewMatcher(library, logger),
		state:       state,
		bus:         bus,
		log:         logger,
		assetRoot:   assetRoot,
		slotRegions: DefaultSlotRegions(),
		goldRegion:  cv.NewRegionFromSize(550, 620, 180, 60),
		threshold:   DefaultRecognitionThreshold,
	}
}

// Library exposes the template library for manual loading.
func (r *Recognizer) Library() *cv.Library {
	return r.library
}

// SetSlotRegions replaces the shop slot layout. Empty regions are rejected.
func (r *Recognizer) SetSlotRegions(regions []cv.Region) error {
	for i, region := range regions {
		if region.Empty() {
			return fmt.Errorf("slot region %d is empty", i)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.slotRegions = append([]cv.Region(nil), regions...)
	return nil
}

// SlotRegions returns a copy of the current slot layout.
func (r *Recognizer) SlotRegions() []cv.Region {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]cv.Region(nil), r.slotRegions...)
}

// SetGoldRegion replaces the region sampled for the shop-open heuristic.
func (r *Recognizer) SetGoldRegion(region cv.Region) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goldRegion = region
}

// SetMatchThreshold overrides the template matcher's default correlation
// floor. Out-of-range values are ignored.
func (r *Recognizer) SetMatchThreshold(threshold float64) {
	r.matcher.SetDefaultThreshold(threshold)
}

// SetThreshold overrides the recognition confidence threshold.
func (r *Recognizer) SetThreshold(threshold float64) {
	if threshold <= 0 || threshold > 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threshold = threshold
}

// SetSeason drops the current card templates and loads the named season's
// art from <assetRoot>/<season>/<cost> plus the season's general directory.
// Missing cost directories are tolerated; a season with no templates at all
// is an error.
func (r *Recognizer) SetSeason(season string) error {
	seasonDir := filepath.Join(r.assetRoot, season)
	if _, err := os.Stat(seasonDir); err != nil {
		return fmt.Errorf("season directory: %w", err)
	}

	r.library.Clear()
	total := 0

	for cost := 1; cost <= 5; cost++ {
		dir := filepath.Join(seasonDir, fmt.Sprintf("%d", cost))
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		category := fmt.Sprintf("card_%s_c%d", season, cost)
		n, err := r.library.LoadDir(dir, category)
		if err != nil {
			return fmt.Errorf("loading season %s cost %d: %w", season, cost, err)
		}
		total += n
	}

	generalDir := filepath.Join(seasonDir, "general")
	if _, err := os.Stat(generalDir); err == nil {
		n, err := r.library.LoadDir(generalDir, fmt.Sprintf("card_%s_general", season))
		if err != nil {
			return fmt.Errorf("loading season %s general: %w", season, err)
		}
		total += n
	}

	if total == 0 {
		return fmt.Errorf("season %s has no templates", season)
	}

	r.mu.Lock()
	r.season = season
	r.mu.Unlock()

	r.log.Info("season templates loaded", "season", season, "templates", total)
	return nil
}

// DetectPhase captures the gold indicator region and classifies the phase.
// Only the shopping phase is positively identified; anything else reads as
// the lobby.
func (r *Recognizer) DetectPhase() (game.Phase, error) {
	r.mu.RLock()
	region := r.goldRegion
	r.mu.RUnlock()

	crop, err := r.capturer.CaptureRegion(region)
	if err != nil {
		return game.PhaseUnknown, fmt.Errorf("capturing phase indicator: %w", err)
	}
	if cv.EmptyFrame(crop) {
		return game.PhaseUnknown, ErrNoFrame
	}

	if cv.RatioInRange(crop, goldLo, goldHi) > goldBandRatio {
		return game.PhaseShopping, nil
	}
	return game.PhaseLobby, nil
}

// Refresh runs one full recognition pass: phase detection followed by card
// recognition when the shop is open. The shared state is updated and events
// published before returning.
func (r *Recognizer) Refresh() error {
	phase, err := r.DetectPhase()
	if err != nil {
		return err
	}

	previous := r.state.Phase()
	r.state.SetPhase(phase)
	if r.bus != nil && previous != phase {
		r.bus.PublishAsync(events.NewPhaseChangedEvent(previous, phase))
	}

	if phase != game.PhaseShopping {
		r.state.SetCards(nil)
		return nil
	}

	cards, err := r.Recognize()
	if err != nil {
		return err
	}

	r.state.SetCards(cards)
	if r.bus != nil {
		r.bus.PublishAsync(events.NewCardsRecognizedEvent(cards))
	}
	return nil
}

// Recognize captures the full frame and identifies the card in each shop
// slot. Slots with no match above the threshold are simply absent from the
// result; the returned list replaces any previous one.
func (r *Recognizer) Recognize() ([]game.Card, error) {
	frame, err := r.capturer.CaptureFull()
	if err != nil {
		return nil, fmt.Errorf("capturing frame: %w", err)
	}
	if cv.EmptyFrame(frame) {
		return nil, ErrNoFrame
	}

	r.mu.RLock()
	regions := append([]cv.Region(nil), r.slotRegions...)
	threshold := r.threshold
	r.mu.RUnlock()

	var cards []game.Card

	for slot, region := range regions {
		crop := cv.CropRegion(frame, region.ToImageRectangle())
		if cv.EmptyFrame(crop) {
			continue
		}

		name, confidence, ok := r.bestTemplate(crop, threshold)
		if !ok {
			continue
		}

		card := game.NewCard(name, r.estimateCost(crop), confidence)
		card.ShopIndex = slot
		card.Position = region.Center()
		cards = append(cards, card)

		r.log.Debug("slot recognized",
			"slot", slot, "card", name, "cost", card.Cost, "confidence", confidence)
	}

	r.mu.Lock()
	r.passes++
	r.cardsSeen += int64(len(cards))
	r.lastCards = len(cards)
	r.lastPass = time.Now()
	r.mu.Unlock()

	return cards, nil
}

// bestTemplate returns the single best-scoring template over the crop.
// Candidates must clear the matcher's correlation floor; the winner must
// additionally clear the recognition confidence threshold.
func (r *Recognizer) bestTemplate(crop *image.RGBA, threshold float64) (string, float64, bool) {
	bestName := ""
	bestConfidence := 0.0

	for name, matches := range r.matcher.MatchAll(crop, 0) {
		for _, match := range matches {
			if match.Confidence > bestConfidence {
				bestName = name
				bestConfidence = match.Confidence
			}
		}
	}

	if bestName == "" || bestConfidence < threshold {
		return "", 0, false
	}
	return bestName, bestConfidence, true
}

// estimateCost classifies the slot's cost frame tint. The densest band wins;
// a crop with no band pixels at all defaults to cost 1.
func (r *Recognizer) estimateCost(crop *image.RGBA) int {
	bestCost := 1
	bestCount := 0

	for _, band := range costBands {
		count := cv.CountInRange(crop, band.lo, band.hi)
		if count > bestCount {
			bestCost = band.cost
			bestCount = count
		}
	}

	return bestCost
}

// CardPosition returns the screen center of the named card's slot from the
// latest recognition pass.
func (r *Recognizer) CardPosition(name string) (image.Point, bool) {
	for _, card := range r.state.Cards() {
		if card.Name == name {
			return card.Position, true
		}
	}
	return image.Point{}, false
}

// Stats returns a snapshot of recognizer counters.
func (r *Recognizer) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Stats{
		Passes:         r.passes,
		CardsSeen:      r.cardsSeen,
		LastPassCards:  r.lastCards,
		LastPass:       r.lastPass,
		Season:         r.season,
		TemplatesReady: r.library.Count(),
		SlotCount:      len(r.slotRegions),
	}
}
