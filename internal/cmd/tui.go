package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"extedit/internal/editor"
	"extedit/internal/message"
	"extedit/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Interactive edit frontend",
	Long: `Run an interactive frontend around the external editor. The current
buffer is displayed on screen; press 'e' to hand it to the editor and the
result is folded back in when the editor exits. With watch enabled, every
save updates the view immediately.

With a file argument, edits operate on that file in place. Without one,
the buffer starts from stdin when stdin is not a terminal, or empty.

Use a GUI editor (or one that opens its own terminal) with this command;
a terminal editor would fight the TUI for the screen.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	var filename, initial string
	if len(args) == 1 {
		filename = args[0]
		if _, err := os.Stat(filename); err != nil {
			return fmt.Errorf("cannot edit %s: %w", filename, err)
		}
	} else if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		initial = string(input)
	}

	// Messages render inside the TUI, not on the terminal it controls.
	session := editor.NewSession(e.cfg, e.bus, message.NewBusSink(e.bus), e.logger)

	final, err := tui.Run(tui.New(session, e.bus, initial, filename))
	if err != nil {
		return err
	}

	// Leave the final buffer on stdout, mirroring the text command.
	if filename == "" && final != "" {
		fmt.Print(final)
	}
	return nil
}
