package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"extedit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify extedit configuration",
	Long: `View or modify extedit configuration.

Without arguments, displays the current configuration.
Use subcommands to create a config file or locate it.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/extedit/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("editor:")
	fmt.Printf("  command: %s\n", strings.Join(cfg.Editor.Command, " "))
	if len(cfg.Editor.Commands) > 0 {
		fmt.Println("  commands:")
		for pattern, command := range cfg.Editor.Commands {
			fmt.Printf("    %s: %s\n", pattern, strings.Join(command, " "))
		}
	}
	fmt.Printf("  encoding: %s\n", cfg.Editor.Encoding)
	fmt.Printf("  remove_file: %v\n", cfg.Editor.RemoveFile)
	fmt.Printf("  watch: %v\n", cfg.Editor.Watch)

	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	if cfg.Logging.Dir != "" {
		fmt.Printf("  dir: %s\n", cfg.Logging.Dir)
	} else {
		fmt.Printf("  dir: (stderr)\n")
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# extedit configuration

editor:
  # Editor command: executable followed by argument templates.
  # Placeholders substituted before launch:
  #   {} or {file}  - path of the file to edit
  #   {line}        - 1-based cursor line      {line0}   - 0-based
  #   {column}      - 1-based cursor column    {column0} - 0-based
  command: ["vi", "{}"]

  # Per-file-type command overrides, keyed by glob pattern matched against
  # the file's base name. The lexically first matching pattern wins.
  # commands:
  #   "*.md": ["typora", "{}"]

  # IANA name of the text encoding used for the edited file.
  encoding: utf-8

  # Delete extedit-created temp files after a clean edit. Files are always
  # kept when the editor crashes.
  remove_file: true

  # Report the file contents on every save, not only at editor exit.
  watch: false

logging:
  enabled: true
  # debug, info, warn or error
  level: info
  # Directory for extedit.log; empty logs to stderr.
  dir: ""
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println("Edit this file to customize extedit's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Println("\nSearch paths:")
	fmt.Printf("  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Printf("  2. $HOME/.config/extedit/config.yaml\n")
	fmt.Printf("  3. ./config.yaml (current directory)\n")
	fmt.Println("\nEnvironment variables: EXTEDIT_* (e.g., EXTEDIT_EDITOR_ENCODING)")

	return nil
}
