package editor

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/encoding"

	"extedit/internal/event"
	"extedit/internal/logging"
	"extedit/internal/message"
	"extedit/internal/textenc"
)

// saveWatcher publishes a FileUpdatedEvent each time the editor saves the
// file, so consumers can react to edits before the editor exits.
type saveWatcher struct {
	fw       *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
}

// startSaveWatcher watches the directory containing filename and reports
// saves of that file. Watching the directory rather than the file itself
// survives editors that replace the file on save instead of writing in
// place. initial is the content the file started with; saves that don't
// change the last seen content are suppressed.
func startSaveWatcher(filename, initial string, enc encoding.Encoding, bus *event.Bus, sink message.Sink, logger *logging.Logger) (*saveWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(filename)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &saveWatcher{
		fw:   fw,
		done: make(chan struct{}),
	}
	go w.run(filename, initial, enc, bus, sink, logger)
	return w, nil
}

// run is the watch loop. It exits when stop is called or the underlying
// watcher closes.
func (w *saveWatcher) run(filename, last string, enc encoding.Encoding, bus *event.Bus, sink message.Sink, logger *logging.Logger) {
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Name != filename {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			text, err := textenc.ReadFile(filename, enc)
			if err != nil {
				// The editor may be mid-write; the final read-back after
				// exit decides the cycle's outcome.
				logger.Debug("watch read failed", "file", filename, "error", err.Error())
				continue
			}
			if text == last {
				continue
			}
			last = text

			logger.Debug("file saved while editing", "file", filename, "bytes", len(text))
			bus.Publish(event.NewFileUpdatedEvent(filename, text))

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			sink.Warn("File watch error: %v", err)
		}
	}
}

// stop ends the watch loop and releases the underlying watcher. Safe to
// call multiple times.
func (w *saveWatcher) stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fw.Close()
	})
}
