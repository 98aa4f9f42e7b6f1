package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"jansel.dev/shop-picker-go/internal/automation"
	"jansel.dev/shop-picker-go/internal/config"
	"jansel.dev/shop-picker-go/internal/database"
	"jansel.dev/shop-picker-go/internal/events"
	"jansel.dev/shop-picker-go/internal/game"
	"jansel.dev/shop-picker-go/internal/input"
	"jansel.dev/shop-picker-go/internal/recognizer"
	"jansel.dev/shop-picker-go/internal/strategy"
)

func main() {
	configPath := flag.String("config", "Settings.ini", "Path to settings file")
	strategyName := flag.String("strategy", "", "Override pick strategy (priority, cost_weight, target_comp)")
	season := flag.String("season", "", "Override card season")
	noHistory := flag.Bool("no-history", false, "Disable pick history persistence")
	flag.Parse()

	settings, err := config.LoadFromINI(*configPath)
	if err != nil {
		settings = config.NewDefaultSettings()
		slog.Warn("using default settings", "config", *configPath, "error", err)
	}
	if *strategyName != "" {
		settings.Strategy = *strategyName
	}
	if *season != "" {
		settings.Season = *season
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      parseLogLevel(settings.LogLevel, settings.VerboseLogging),
		TimeFormat: "15:04:05",
	}))
	slog.SetDefault(logger)

	if err := run(settings, *noHistory, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(settings *config.Settings, noHistory bool, logger *slog.Logger) error {
	// Device and capture
	device := input.NewDevice(settings.ADBPath, settings.ADBPort)
	if err := device.Connect(); err != nil {
		return err
	}
	defer device.Disconnect()

	taps, err := input.NewTapController(device, logger.With("component", "input"))
	if err != nil {
		return err
	}

	// Events
	bus := events.NewEventBus(64, logger.With("component", "events"))
	defer bus.Stop()

	// Recognition
	state := game.NewState(logger.With("component", "state"))
	rec := recognizer.New(taps, state, settings.AssetRoot, bus, logger.With("component", "recognizer"))
	rec.SetThreshold(settings.RecognitionThreshold)
	rec.SetMatchThreshold(settings.MatchThreshold)
	if err := rec.SetSeason(settings.Season); err != nil {
		return err
	}

	if layout, err := config.LoadLayout(settings.LayoutFile); err != nil {
		logger.Warn("no layout manifest, using default slots",
			"path", settings.LayoutFile, "error", err)
	} else {
		if err := rec.SetSlotRegions(layout.SlotRegions()); err != nil {
			return err
		}
		if goldRegion, ok := layout.GoldRegion(); ok {
			rec.SetGoldRegion(goldRegion)
		}
	}

	// Strategies
	strategies := strategy.NewManager(logger.With("component", "strategy"))
	if err := configureStrategies(strategies, settings, logger); err != nil {
		return err
	}
	if err := strategies.SetActive(settings.Strategy); err != nil {
		return err
	}

	// History
	var store *database.Store
	if !noHistory {
		db, err := database.Open(settings.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.RunMigrations(logger.With("component", "database")); err != nil {
			return err
		}
		store = database.NewStore(db)
	}

	// Controller
	controller := automation.NewController(
		rec, state, strategies, taps, bus, store,
		logger.With("component", "controller"),
	)
	controller.SetDetectInterval(msToDuration(settings.DetectIntervalMs))
	controller.SetPickCooldown(msToDuration(settings.PickCooldownMs))

	bus.Subscribe(events.EventTypeCardPicked, func(e events.Event) {
		logger.Info("pick event", "card", e.Data["card"], "strategy", e.Data["strategy"])
	})

	if !controller.Start() {
		return errAlreadyRunning
	}

	logger.Info("picker running",
		"season", settings.Season,
		"strategy", strategies.ActiveName(),
		"templates", rec.Stats().TemplatesReady)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	controller.Stop()

	stats := controller.Statistics()
	logger.Info("session summary",
		"picks", stats.SessionPicks,
		"failed", stats.FailedPicks,
		"total", stats.TotalPicks)

	return nil
}

// configureStrategies pushes manifest and settings values into the
// registered strategies before one of them is activated.
func configureStrategies(strategies *strategy.Manager, settings *config.Settings, logger *slog.Logger) error {
	if s, ok := strategies.Get("priority"); ok {
		ps := s.(*strategy.PriorityStrategy)
		ps.SetMaxCost(settings.MaxCost)
		ps.SetPreferHigherCost(settings.PreferHigherCost)

		manifest, err := config.LoadPriorities(settings.PriorityFile)
		if err != nil {
			logger.Warn("no priority manifest", "path", settings.PriorityFile, "error", err)
		} else {
			ps.SetPriorities(manifest.Priorities)
		}
	}

	if s, ok := strategies.Get("cost_weight"); ok {
		s.(*strategy.CostWeightStrategy).SetWeights(settings.CostWeights)
	}

	if s, ok := strategies.Get("target_comp"); ok {
		manifest, err := config.LoadCompositions(settings.CompositionFile)
		if err != nil {
			logger.Warn("no composition manifest", "path", settings.CompositionFile, "error", err)
		} else if len(manifest.Compositions) > 0 {
			s.(*strategy.TargetCompStrategy).SetTargets(manifest.Compositions[0].Cards)
		}
	}

	return nil
}

var errAlreadyRunning = errors.New("controller already running")

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func parseLogLevel(level string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}

	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
