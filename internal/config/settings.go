package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Settings is the flat runtime configuration loaded from Settings.ini.
type Settings struct {
	// Recognition
	Season               string
	AssetRoot            string
	RecognitionThreshold float64
	MatchThreshold       float64

	// Automation
	Strategy         string
	DetectIntervalMs int
	PickCooldownMs   int
	MaxCost          int
	PreferHigherCost bool
	CostWeights      map[int]float64

	// Lists
	PriorityFile    string
	CompositionFile string
	LayoutFile      string

	// Device
	ADBPath string
	ADBPort string

	// Persistence
	DatabasePath string

	// Debug
	LogLevel       string
	VerboseLogging bool
}

// NewDefaultSettings creates settings with default values
func NewDefaultSettings() *Settings {
	return &Settings{
		Season:               "season1",
		AssetRoot:            "assets/cards",
		RecognitionThreshold: 0.7,
		MatchThreshold:       0.8,
		Strategy:             "priority",
		DetectIntervalMs:     300,
		PickCooldownMs:       500,
		MaxCost:              5,
		PreferHigherCost:     true,
		CostWeights:          map[int]float64{1: 1.0, 2: 1.0, 3: 1.0, 4: 1.0, 5: 1.0},
		PriorityFile:         "configs/priorities.yaml",
		CompositionFile:      "configs/compositions.yaml",
		LayoutFile:           "configs/layout.yaml",
		ADBPath:              "adb",
		ADBPort:              "5555",
		DatabasePath:         "picker.db",
		LogLevel:             "INFO",
		VerboseLogging:       false,
	}
}

// LoadFromINI loads settings from a Settings.ini file, falling back to
// defaults for missing keys.
func LoadFromINI(path string) (*Settings, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	s := NewDefaultSettings()
	section := cfg.Section("UserSettings")

	// Recognition
	s.Season = section.Key("season").MustString(s.Season)
	s.AssetRoot = section.Key("assetRoot").MustString(s.AssetRoot)
	s.RecognitionThreshold = section.Key("recognitionThreshold").MustFloat64(s.RecognitionThreshold)
	s.MatchThreshold = section.Key("matchThreshold").MustFloat64(s.MatchThreshold)

	// Automation
	s.Strategy = section.Key("strategy").MustString(s.Strategy)
	s.DetectIntervalMs = section.Key("detectIntervalMs").MustInt(s.DetectIntervalMs)
	s.PickCooldownMs = section.Key("pickCooldownMs").MustInt(s.PickCooldownMs)
	s.MaxCost = section.Key("maxCost").MustInt(s.MaxCost)
	s.PreferHigherCost = section.Key("preferHigherCost").MustBool(s.PreferHigherCost)

	for cost := 1; cost <= 5; cost++ {
		key := fmt.Sprintf("costWeight%d", cost)
		s.CostWeights[cost] = section.Key(key).MustFloat64(s.CostWeights[cost])
	}

	// Lists
	s.PriorityFile = section.Key("priorityFile").MustString(s.PriorityFile)
	s.CompositionFile = section.Key("compositionFile").MustString(s.CompositionFile)
	s.LayoutFile = section.Key("layoutFile").MustString(s.LayoutFile)

	// Device
	s.ADBPath = section.Key("adbPath").MustString(s.ADBPath)
	s.ADBPort = section.Key("adbPort").MustString(s.ADBPort)

	// Persistence
	s.DatabasePath = section.Key("databasePath").MustString(s.DatabasePath)

	// Debug
	s.LogLevel = section.Key("logLevel").MustString(s.LogLevel)
	s.VerboseLogging = section.Key("debugMode").MustBool(s.VerboseLogging)

	return s, nil
}

// SaveToINI writes the settings to an INI file.
func SaveToINI(s *Settings, path string) error {
	cfg := ini.Empty()
	section := cfg.Section("UserSettings")

	// Recognition
	section.Key("season").SetValue(s.Season)
	section.Key("assetRoot").SetValue(s.AssetRoot)
	section.Key("recognitionThreshold").SetValue(fmt.Sprintf("%g", s.RecognitionThreshold))
	section.Key("matchThreshold").SetValue(fmt.Sprintf("%g", s.MatchThreshold))

	// Automation
	section.Key("strategy").SetValue(s.Strategy)
	section.Key("detectIntervalMs").SetValue(fmt.Sprintf("%d", s.DetectIntervalMs))
	section.Key("pickCooldownMs").SetValue(fmt.Sprintf("%d", s.PickCooldownMs))
	section.Key("maxCost").SetValue(fmt.Sprintf("%d", s.MaxCost))
	section.Key("preferHigherCost").SetValue(fmt.Sprintf("%t", s.PreferHigherCost))

	for cost := 1; cost <= 5; cost++ {
		key := fmt.Sprintf("costWeight%d", cost)
		section.Key(key).SetValue(fmt.Sprintf("%g", s.CostWeights[cost]))
	}

	// Lists
	section.Key("priorityFile").SetValue(s.PriorityFile)
	section.Key("compositionFile").SetValue(s.CompositionFile)
	section.Key("layoutFile").SetValue(s.LayoutFile)

	// Device
	section.Key("adbPath").SetValue(s.ADBPath)
	section.Key("adbPort").SetValue(s.ADBPort)

	// Persistence
	section.Key("databasePath").SetValue(s.DatabasePath)

	// Debug
	section.Key("logLevel").SetValue(s.LogLevel)
	section.Key("debugMode").SetValue(fmt.Sprintf("%t", s.VerboseLogging))

	return cfg.SaveTo(path)
}
