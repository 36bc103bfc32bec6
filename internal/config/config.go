// Package config defines the extedit configuration, its defaults, loading
// via viper, and validation.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete extedit configuration
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EditorConfig controls how the external editor is launched
type EditorConfig struct {
	// Command is the editor command: the executable followed by argument
	// templates. Placeholders in the arguments are substituted before launch:
	//   {} or {file}  -> path of the file to edit
	//   {line}        -> 1-based caret line
	//   {line0}       -> 0-based caret line
	//   {column}      -> 1-based caret column
	//   {column0}     -> 0-based caret column
	Command []string `mapstructure:"command"`
	// Commands maps filename glob patterns to command overrides, letting
	// different file types open in different editors. Patterns are matched
	// against the base name of the file in sorted pattern order; the first
	// match wins, falling back to Command.
	Commands map[string][]string `mapstructure:"commands"`
	// Encoding is the IANA name of the text codec used when writing the
	// initial file and when reading the edited result back.
	Encoding string `mapstructure:"encoding"`
	// RemoveFile controls whether session-created temp files are deleted
	// after the editor exits without crashing. Disable to keep every edit
	// on disk.
	RemoveFile bool `mapstructure:"remove_file"`
	// Watch emits the file contents on every save while the editor is still
	// open, instead of only once at exit.
	Watch bool `mapstructure:"watch"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled turns structured logging on or off
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Dir is the directory for log files; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Command:    []string{"vi", "{}"},
			Commands:   map[string][]string{},
			Encoding:   "utf-8",
			RemoveFile: true,
			Watch:      false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("editor.command", defaults.Editor.Command)
	viper.SetDefault("editor.commands", defaults.Editor.Commands)
	viper.SetDefault("editor.encoding", defaults.Editor.Encoding)
	viper.SetDefault("editor.remove_file", defaults.Editor.RemoveFile)
	viper.SetDefault("editor.watch", defaults.Editor.Watch)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "extedit")
	}
	// Fall back to ~/.config/extedit
	home, err := os.UserHomeDir()
	if err != nil {
		return ".extedit"
	}
	return filepath.Join(home, ".config", "extedit")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
