// Package editor launches an external text editor on a string of text or an
// existing file and reads the result back when the editor exits.
//
// A [Session] runs one edit cycle at a time. For text edits it writes the
// text to a uniquely named temp file, closes it, and starts the configured
// editor command with placeholders substituted for the filename and the
// caret's line and column. When the editor exits with code zero the session
// reads the file back and publishes an EditFinishedEvent on the event bus;
// non-zero exits and crashes end the cycle without a result. The temp file
// is always removed afterwards, except after a crash, where it is kept on
// disk so unsaved edits can be recovered.
//
// Sessions are reusable: once a cycle completes (however it ends), the next
// EditText or EditFile call starts a fresh cycle. Starting an edit while one
// is in progress fails with errors.ErrEditInProgress.
package editor
