package editor

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"extedit/internal/config"
)

// resolveCommand returns the editor command for the given filename. Pattern
// overrides from editor.commands are matched against the file's base name in
// sorted pattern order; the first match wins, falling back to the default
// editor.command. Patterns that fail to compile are skipped (Validate
// rejects them at load time).
func resolveCommand(cfg *config.EditorConfig, filename string) []string {
	base := filepath.Base(filename)

	patterns := make([]string, 0, len(cfg.Commands))
	for pattern := range cfg.Commands {
		patterns = append(patterns, pattern)
	}
	slices.Sort(patterns)

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(base) {
			return cfg.Commands[pattern]
		}
	}
	return cfg.Command
}

// substitutePlaceholder replaces the known placeholders in a single argument
// template:
//
//	{} and {file} -> filename
//	{line}        -> 1-based line
//	{line0}       -> 0-based line
//	{column}      -> 1-based column
//	{column0}     -> 0-based column
//
// The input is not guaranteed to contain a placeholder; unrecognized tokens
// and placeholder-free arguments pass through unchanged. Replacement is
// plain text, not regex.
func substitutePlaceholder(arg, filename string, line, column int) string {
	r := strings.NewReplacer(
		"{}", filename,
		"{file}", filename,
		"{line}", strconv.Itoa(line),
		"{line0}", strconv.Itoa(line-1),
		"{column}", strconv.Itoa(column),
		"{column0}", strconv.Itoa(column-1),
	)
	return r.Replace(arg)
}

// buildArgs substitutes placeholders in every argument template of the
// command (everything after the executable).
func buildArgs(command []string, filename string, line, column int) []string {
	args := make([]string, 0, len(command)-1)
	for _, tmpl := range command[1:] {
		args = append(args, substitutePlaceholder(tmpl, filename, line, column))
	}
	return args
}
