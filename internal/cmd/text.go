package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"extedit/internal/event"
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Edit text from stdin and print the result",
	Long: `Read text from stdin, open it in the configured external editor, and
print the edited result to stdout when the editor exits.

The text is placed in a temporary file for the duration of the edit. The
file is deleted afterwards unless the editor crashes, in which case it is
kept so unsaved work can be recovered, or editor.remove_file is false.

Examples:
  # Edit a shell command before running it
  echo "$CMD" | extedit text | sh

  # Open the editor with the cursor at character offset 12
  extedit text --caret 12 < draft.txt

  # Seed the buffer from a file without editing the file itself
  extedit text -f draft.txt

  # Print intermediate saves as they happen
  extedit text --watch < draft.txt`,
	Args: cobra.NoArgs,
	RunE: runText,
}

var (
	textCaret int
	textWatch bool
	textFile  string
)

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().IntVar(&textCaret, "caret", 0, "Zero-based character offset for the initial cursor position")
	textCmd.Flags().BoolVarP(&textWatch, "watch", "w", false, "Print the text on every save to stderr (stdout carries the final result)")
	textCmd.Flags().StringVarP(&textFile, "file", "f", "", "Read the initial text from a file instead of stdin")
}

func runText(cmd *cobra.Command, args []string) error {
	var input []byte
	var err error
	if textFile != "" {
		input, err = os.ReadFile(textFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", textFile, err)
		}
	} else {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if textWatch {
		e.cfg.Editor.Watch = true
		e.bus.Subscribe(event.TypeFileUpdated, func(ev event.Event) {
			fmt.Fprintln(os.Stderr, ev.(event.FileUpdatedEvent).Text)
		})
	}

	done := awaitCycle(e.bus)
	if err := e.session.EditText(string(input), textCaret); err != nil {
		return err
	}

	result := <-done
	if result.aborted != nil {
		return abortError(result.aborted)
	}

	fmt.Print(result.finished.Text)
	return nil
}
