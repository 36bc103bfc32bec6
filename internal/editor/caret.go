package editor

// caretToLineColumn converts a flat caret offset into 1-based line and
// column numbers, the convention almost every editor uses for its
// go-to-position flags.
//
// The line is the number of newlines before the caret plus one. The column
// is the distance between the caret and the last newline before it; with no
// newline before the caret that works out to caret+1.
//
// The caret is a character offset, not a byte offset, and is clamped to the
// text bounds.
func caretToLineColumn(text string, caret int) (line, column int) {
	runes := []rune(text)
	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}

	line = 1
	lastNewline := -1
	for i := 0; i < caret; i++ {
		if runes[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	column = caret - lastNewline
	return line, column
}
