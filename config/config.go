// Package config provides configuration loading for worddeck using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Lookup settings for the dictionary API client.
type Lookup struct {
	TimeoutSeconds int    `json:"timeoutSeconds"`
	UserAgent      string `json:"userAgent"`
}

// Audio playback settings.
type Audio struct {
	Disabled bool `json:"disabled"`
}

// Storage settings.
type Storage struct {
	Path string `json:"path"` // database path (empty = default location)
}

// Connectivity probe settings.
type Connectivity struct {
	ProbeAddress    string `json:"probeAddress"`
	IntervalSeconds int    `json:"intervalSeconds"`
}

// Keybindings for interactive mode.
type Keybindings struct {
	Search          string `json:"search"`
	ToggleFavourite string `json:"toggleFavourite"`
	PlayAudio       string `json:"playAudio"`
	FavouritesList  string `json:"favouritesList"`
	History         string `json:"history"`
	NextEntry       string `json:"nextEntry"`
	PrevEntry       string `json:"prevEntry"`
	Quit            string `json:"quit"`
}

// Config is the main configuration struct.
type Config struct {
	Lookup       Lookup       `json:"lookup"`
	Audio        Audio        `json:"audio"`
	Storage      Storage      `json:"storage"`
	Connectivity Connectivity `json:"connectivity"`
	Keybindings  Keybindings  `json:"keybindings"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Lookup: Lookup{
			TimeoutSeconds: 15,
			UserAgent:      "worddeck/1.0 (Terminal Dictionary)",
		},
		Audio: Audio{
			Disabled: false,
		},
		Storage: Storage{
			Path: "",
		},
		Connectivity: Connectivity{
			ProbeAddress:    "1.1.1.1:443",
			IntervalSeconds: 30,
		},
		Keybindings: Keybindings{
			Search:          "/",
			ToggleFavourite: "f",
			PlayAudio:       "p",
			FavouritesList:  "'",
			History:         "H",
			NextEntry:       "j",
			PrevEntry:       "k",
			Quit:            "q",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "worddeck"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	cfg := Default()

	configPath, err := ConfigPath()
	if err != nil {
		return cfg, nil // Return defaults if we can't determine path
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	userCfg, err := loadFromTOML(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
	}

	return merge(cfg, userCfg), nil
}

// loadFromTOML loads a TOML config file and returns the config.
func loadFromTOML(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	return &cfg, nil
}

// merge layers user config on top of defaults. Only non-zero values from
// the user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	if user.Lookup.TimeoutSeconds != 0 {
		result.Lookup.TimeoutSeconds = user.Lookup.TimeoutSeconds
	}
	if user.Lookup.UserAgent != "" {
		result.Lookup.UserAgent = user.Lookup.UserAgent
	}

	if user.Audio.Disabled {
		result.Audio.Disabled = true
	}

	if user.Storage.Path != "" {
		result.Storage.Path = user.Storage.Path
	}

	if user.Connectivity.ProbeAddress != "" {
		result.Connectivity.ProbeAddress = user.Connectivity.ProbeAddress
	}
	if user.Connectivity.IntervalSeconds != 0 {
		result.Connectivity.IntervalSeconds = user.Connectivity.IntervalSeconds
	}

	mergeKeybinding(&result.Keybindings.Search, user.Keybindings.Search)
	mergeKeybinding(&result.Keybindings.ToggleFavourite, user.Keybindings.ToggleFavourite)
	mergeKeybinding(&result.Keybindings.PlayAudio, user.Keybindings.PlayAudio)
	mergeKeybinding(&result.Keybindings.FavouritesList, user.Keybindings.FavouritesList)
	mergeKeybinding(&result.Keybindings.History, user.Keybindings.History)
	mergeKeybinding(&result.Keybindings.NextEntry, user.Keybindings.NextEntry)
	mergeKeybinding(&result.Keybindings.PrevEntry, user.Keybindings.PrevEntry)
	mergeKeybinding(&result.Keybindings.Quit, user.Keybindings.Quit)

	return &result
}

func mergeKeybinding(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for -init-config to generate a user config file.
func DefaultTOML() string {
	return `# worddeck configuration
# Save to ~/.config/worddeck/config.toml and customize
# Only include settings you want to change from defaults

# Dictionary API settings
[lookup]
timeoutSeconds = 15
userAgent = "worddeck/1.0 (Terminal Dictionary)"

# Audio playback
[audio]
disabled = false              # Set true to silence pronunciation playback

# Storage
[storage]
path = ""                     # Database path (empty = ~/.config/worddeck/worddeck.db)

# Connectivity probe
[connectivity]
probeAddress = "1.1.1.1:443"
intervalSeconds = 30

# Keybindings - customize your keys here!
[keybindings]
search = "/"                  # Start a new search
toggleFavourite = "f"         # Save/unsave the selected entry
playAudio = "p"               # Play pronunciation audio
favouritesList = "'"          # Show saved words
history = "H"                 # Show recent lookups
nextEntry = "j"
prevEntry = "k"
quit = "q"
`
}
