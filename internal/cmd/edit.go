package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"extedit/internal/event"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Open a file in the external editor",
	Long: `Open an existing file in the configured external editor and wait for
the editor to exit. The file is edited in place and is never deleted by
extedit.

Examples:
  # Edit a file with the configured editor
  extedit edit notes.md

  # Print each save to stdout while the editor is still open
  extedit edit --watch notes.md`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var editWatch bool

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().BoolVarP(&editWatch, "watch", "w", false, "Print the file contents on every save to stdout")
}

func runEdit(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("cannot edit %s: %w", filename, err)
	}

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if editWatch {
		e.cfg.Editor.Watch = true
		e.bus.Subscribe(event.TypeFileUpdated, func(ev event.Event) {
			fmt.Println(ev.(event.FileUpdatedEvent).Text)
		})
	}

	done := awaitCycle(e.bus)
	if err := e.session.EditFile(filename); err != nil {
		return err
	}

	result := <-done
	if result.aborted != nil {
		return abortError(result.aborted)
	}
	return nil
}
