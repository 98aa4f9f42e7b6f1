package automation

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"jansel.dev/shop-picker-go/internal/database"
	"jansel.dev/shop-picker-go/internal/events"
	"jansel.dev/shop-picker-go/internal/game"
	"jansel.dev/shop-picker-go/internal/input"
	"jansel.dev/shop-picker-go/internal/strategy"
)

const (
	// DefaultDetectInterval is the pause between recognition passes.
	DefaultDetectInterval = 300 * time.Millisecond
	// DefaultPickCooldown is the minimum gap between two automated picks.
	DefaultPickCooldown = 500 * time.Millisecond
	// minTiming floors both intervals so a bad config cannot spin the loop.
	minTiming = 100 * time.Millisecond
	// pausedIdle is how long the loop sleeps per iteration while paused.
	pausedIdle = 100 * time.Millisecond
	// stopJoinTimeout bounds how long Stop waits for the loop to exit.
	stopJoinTimeout = 2 * time.Second
)

// Detector runs recognition passes and resolves card positions. Satisfied
// by the recognizer.
type Detector interface {
	Refresh() error
	CardPosition(name string) (image.Point, bool)
}

// Statistics is a snapshot of controller activity.
type Statistics struct {
	TotalPicks      int64
	SessionPicks    int64
	FailedPicks     int64
	State           string
	Strategy        string
	Phase           string
	RecognizedCards int
	Active          bool
	LastPick        time.Time
}

// Controller runs the detect, select, act loop. One goroutine owns the
// loop; the public methods only flip atomic state or adjust settings, so
// they are safe from any goroutine.
type Controller struct {
	detector   Detector
	gameState  *game.State
	strategies *strategy.Manager
	actuator   input.Actuator
	bus        events.EventBus
	store      *database.Store
	log        *slog.Logger

	state atomic.Int32

	mu             sync.Mutex
	detectInterval time.Duration
	pickCooldown   time.Duration
	lastPick       time.Time
	totalPicks     int64
	sessionPicks   int64
	failedPicks    int64

	cancel context.CancelFunc
	done   chan struct{}
}

// NewController wires the automation loop. bus and store may be nil.
func NewController(
	detector Detector,
	gameState *game.State,
	strategies *strategy.Manager,
	actuator input.Actuator,
	bus events.EventBus,
	store *database.Store,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		detector:       detector,
		gameState:      gameState,
		strategies:     strategies,
		actuator:       actuator,
		bus:            bus,
		store:          store,
		log:            logger,
		detectInterval: DefaultDetectInterval,
		pickCooldown:   DefaultPickCooldown,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Start launches the loop. Returns false when not stopped.
func (c *Controller) Start() bool {
	if !c.state.CompareAndSwap(int32(StateStopped), int32(StateRunning)) {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.cancel = cancel
	c.done = make(chan struct{})
	c.sessionPicks = 0
	done := c.done
	c.mu.Unlock()

	if err := c.store.StartSession(c.strategies.ActiveName()); err != nil {
		c.log.Warn("could not start history session", "error", err)
	}

	c.gameState.SetActive(true)
	go c.run(ctx, done)

	c.log.Info("automation started", "strategy", c.strategies.ActiveName())
	c.publishState(StateStopped, StateRunning)
	return true
}

// Stop halts the loop and waits for it to exit, bounded by a join timeout.
// Returns false when already stopped.
func (c *Controller) Stop() bool {
	prev := State(c.state.Load())
	if prev == StateStopped {
		return false
	}
	if !c.state.CompareAndSwap(int32(prev), int32(StateStopped)) {
		// Lost a race with another transition; retry once from scratch.
		return c.Stop()
	}

	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		select {
		case <-done:
		case <-time.After(stopJoinTimeout):
			c.log.Warn("loop did not exit before join timeout")
		}
	}

	c.gameState.SetActive(false)
	if err := c.store.EndSession(); err != nil {
		c.log.Warn("could not end history session", "error", err)
	}

	c.log.Info("automation stopped")
	c.publishState(prev, StateStopped)
	return true
}

// Pause suspends picking without tearing the loop down. Returns false when
// not running.
func (c *Controller) Pause() bool {
	if !c.state.CompareAndSwap(int32(StateRunning), int32(StatePaused)) {
		return false
	}

	c.log.Info("automation paused")
	c.publishState(StateRunning, StatePaused)
	return true
}

// Resume continues after a pause. Returns false when not paused.
func (c *Controller) Resume() bool {
	if !c.state.CompareAndSwap(int32(StatePaused), int32(StateRunning)) {
		return false
	}

	c.log.Info("automation resumed")
	c.publishState(StatePaused, StateRunning)
	return true
}

// run is the loop goroutine. It re-reads the detect interval each pass so
// setting changes take effect at the next tick.
func (c *Controller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		switch State(c.state.Load()) {
		case StateStopped:
			return
		case StatePaused:
			select {
			case <-ctx.Done():
				return
			case <-time.After(pausedIdle):
			}
			continue
		}

		c.tick()

		c.mu.Lock()
		interval := c.detectInterval
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// tick runs one detect, select, act pass. Any failure is contained here so
// a bad frame or a panicking strategy cannot kill the loop.
func (c *Controller) tick() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("tick panicked", "panic", r)
		}
	}()

	if err := c.detector.Refresh(); err != nil {
		c.log.Debug("recognition pass failed", "error", err)
		if c.bus != nil {
			c.bus.PublishAsync(events.NewErrorEvent("controller", err))
		}
		return
	}

	if !c.gameState.InShopPhase() {
		return
	}

	cards := c.gameState.Cards()
	if len(cards) == 0 {
		return
	}

	card, ok := c.strategies.Select(cards, c.gameState)
	if !ok {
		return
	}

	c.mu.Lock()
	cooldown := c.pickCooldown
	ready := c.lastPick.IsZero() || time.Since(c.lastPick) >= cooldown
	c.mu.Unlock()

	if !ready {
		return
	}

	c.executePick(card)
}

// executePick clicks the chosen card and records the outcome.
func (c *Controller) executePick(card game.Card) {
	strategyName := c.strategies.ActiveName()
	card = c.resolvePosition(card)

	if !c.actuator.ClickCard(card) {
		c.mu.Lock()
		c.failedPicks++
		c.mu.Unlock()

		c.log.Warn("pick failed", "card", card.Name, "slot", card.ShopIndex)
		if c.bus != nil {
			c.bus.PublishAsync(events.NewPickFailedEvent(card, "actuation failed"))
		}
		return
	}

	now := time.Now()
	c.mu.Lock()
	c.lastPick = now
	c.totalPicks++
	c.sessionPicks++
	c.mu.Unlock()

	c.gameState.MarkSelected(card.Name)

	c.log.Info("picked card",
		"card", card.Name, "cost", card.Cost, "slot", card.ShopIndex,
		"confidence", card.Confidence, "strategy", strategyName)

	if err := c.store.RecordPick(card, strategyName); err != nil {
		c.log.Warn("could not record pick", "error", err)
	}
	if c.bus != nil {
		c.bus.PublishAsync(events.NewCardPickedEvent(card, strategyName))
	}
}

// resolvePosition fills a missing card position from the detector's latest
// pass so the actuator always gets a clickable point when one is known.
func (c *Controller) resolvePosition(card game.Card) game.Card {
	if card.Position == (image.Point{}) {
		if pos, ok := c.detector.CardPosition(card.Name); ok {
			card.Position = pos
		}
	}
	return card
}

// ManualPick picks a named card from the latest recognition pass regardless
// of the cooldown or the active strategy.
func (c *Controller) ManualPick(name string) error {
	var target game.Card
	found := false
	for _, card := range c.gameState.Cards() {
		if card.Name == name {
			target = card
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("card not in shop: %s", name)
	}

	target = c.resolvePosition(target)
	if !c.actuator.ClickCard(target) {
		return fmt.Errorf("actuation failed for %s", name)
	}

	now := time.Now()
	c.mu.Lock()
	c.lastPick = now
	c.totalPicks++
	c.sessionPicks++
	c.mu.Unlock()

	c.gameState.MarkSelected(target.Name)

	if err := c.store.RecordPick(target, "manual"); err != nil {
		c.log.Warn("could not record pick", "error", err)
	}
	if c.bus != nil {
		c.bus.PublishAsync(events.NewCardPickedEvent(target, "manual"))
	}

	return nil
}

// SetDetectInterval adjusts the loop cadence, observed at the next tick.
func (c *Controller) SetDetectInterval(interval time.Duration) {
	if interval < minTiming {
		interval = minTiming
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detectInterval = interval
}

// SetPickCooldown adjusts the minimum gap between picks.
func (c *Controller) SetPickCooldown(cooldown time.Duration) {
	if cooldown < minTiming {
		cooldown = minTiming
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pickCooldown = cooldown
}

// SetStrategy switches the active strategy by name.
func (c *Controller) SetStrategy(name string) error {
	return c.strategies.SetActive(name)
}

// SetPriorityList replaces the priority strategy's ranked list.
func (c *Controller) SetPriorityList(priorities []string) error {
	s, ok := c.strategies.Get("priority")
	if !ok {
		return fmt.Errorf("priority strategy not registered")
	}

	ps, ok := s.(*strategy.PriorityStrategy)
	if !ok {
		return fmt.Errorf("strategy priority has unexpected type %T", s)
	}

	ps.SetPriorities(priorities)
	return nil
}

// SetTargetComp replaces the target composition set.
func (c *Controller) SetTargetComp(targets []string) error {
	s, ok := c.strategies.Get("target_comp")
	if !ok {
		return fmt.Errorf("target_comp strategy not registered")
	}

	ts, ok := s.(*strategy.TargetCompStrategy)
	if !ok {
		return fmt.Errorf("strategy target_comp has unexpected type %T", s)
	}

	ts.SetTargets(targets)
	return nil
}

// SetCostWeight adjusts one cost tier's weight.
func (c *Controller) SetCostWeight(cost int, weight float64) error {
	s, ok := c.strategies.Get("cost_weight")
	if !ok {
		return fmt.Errorf("cost_weight strategy not registered")
	}

	cs, ok := s.(*strategy.CostWeightStrategy)
	if !ok {
		return fmt.Errorf("strategy cost_weight has unexpected type %T", s)
	}

	cs.SetWeight(cost, weight)
	return nil
}

// Statistics returns a snapshot of controller activity.
func (c *Controller) Statistics() Statistics {
	state := State(c.state.Load())

	c.mu.Lock()
	total := c.totalPicks
	session := c.sessionPicks
	failed := c.failedPicks
	lastPick := c.lastPick
	c.mu.Unlock()

	return Statistics{
		TotalPicks:      total,
		SessionPicks:    session,
		FailedPicks:     failed,
		State:           state.String(),
		Strategy:        c.strategies.ActiveName(),
		Phase:           c.gameState.Phase().String(),
		RecognizedCards: len(c.gameState.Cards()),
		Active:          state == StateRunning || state == StatePaused,
		LastPick:        lastPick,
	}
}

// ResetStatistics zeroes the pick counters.
func (c *Controller) ResetStatistics() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalPicks = 0
	c.sessionPicks = 0
	c.failedPicks = 0
	c.lastPick = time.Time{}
}

func (c *Controller) publishState(from, to State) {
	if c.bus == nil {
		return
	}
	c.bus.PublishAsync(events.NewStateChangedEvent(from.String(), to.String()))
}
