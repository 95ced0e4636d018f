package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds all configuration values
type Settings struct {
	// Language is the current UI language ("en" or "fr")
	Language string

	// Provider configuration for the hosted model API
	Provider struct {
		Model       string
		Temperature float64
		APIKey      string
	}

	// History configuration for the persisted session list
	History struct {
		Backend string // memory, file or sqlite
		Path    string
	}

	// Logging configuration
	Logging struct {
		LogFile string
		Persist bool
		Level   string
	}

	// ConfigFile stores the path to the config file used
	ConfigFile string
}

// Global settings instance
var Global *Settings

// Init initializes the configuration system
func Init(cfgFile string) error {
	Global = &Settings{}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		Global.ConfigFile = cfgFile
	} else {
		viper.AddConfigPath("./.vox")
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
		Global.ConfigFile = ".vox/settings.yaml"
	}

	setDefaults()

	viper.AutomaticEnv()

	// The provider credential only ever arrives through the
	// environment; it is never written back to the config file.
	viper.BindEnv("provider.api_key", "GEMINI_API_KEY")

	// Read config file if it exists; a missing file just means
	// defaults plus environment.
	_ = viper.ReadInConfig()

	load()
	return nil
}

func setDefaults() {
	viper.SetDefault("language", "en")

	viper.SetDefault("provider.model", "gemini-2.5-flash")
	viper.SetDefault("provider.temperature", 0.3)

	viper.SetDefault("history.backend", "file")
	viper.SetDefault("history.path", "")

	viper.SetDefault("logging.log_file", "./.vox/system.log")
	viper.SetDefault("logging.persist", true)
	viper.SetDefault("logging.level", "info")
}

func load() {
	Global.Language = viper.GetString("language")

	Global.Provider.Model = viper.GetString("provider.model")
	Global.Provider.Temperature = viper.GetFloat64("provider.temperature")
	Global.Provider.APIKey = strings.TrimSpace(viper.GetString("provider.api_key"))

	Global.History.Backend = viper.GetString("history.backend")
	Global.History.Path = viper.GetString("history.path")
	if Global.History.Path == "" {
		switch Global.History.Backend {
		case "sqlite":
			Global.History.Path = BuildSettingsPath("history.db")
		default:
			Global.History.Path = BuildSettingsPath("chat_sessions.json")
		}
	}

	Global.Logging.LogFile = viper.GetString("logging.log_file")
	Global.Logging.Persist = viper.GetBool("logging.persist")
	Global.Logging.Level = viper.GetString("logging.level")
}

// EnsureSettingsDir creates the settings directory if needed.
func EnsureSettingsDir() error {
	dir := filepath.Dir(Get().ConfigFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return nil
}

// Get returns the global settings instance
func Get() *Settings {
	if Global == nil {
		panic("config not initialized - call Init() first")
	}
	return Global
}

// HasCredential reports whether the provider credential is configured.
// Checked before every send attempt, not only at startup.
func HasCredential() bool {
	return Global != nil && Global.Provider.APIKey != ""
}
