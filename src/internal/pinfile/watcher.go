package pinfile

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/tidwall/gjson"

	"github.com/nvman/nvman/src/internal/constants"
)

// Watcher watches a pin artifact and reports the new pinned version when
// it changes. The parent directory is watched rather than the file, so
// editors that replace the file on save are still observed.
type Watcher struct {
	fsw  *fsnotify.Watcher
	pin  Pin
	ch   chan string
	errs chan error
	done chan struct{}
}

// Watch starts watching pin's artifact.
func Watch(pin Pin) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating watcher")
	}
	if err := fsw.Add(filepath.Dir(pin.Path)); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrap(err, "watching pin directory")
	}

	w := &Watcher{
		fsw:  fsw,
		pin:  pin,
		ch:   make(chan string, 1),
		errs: make(chan error, 1),
		done: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers the pinned version after each relevant change.
func (w *Watcher) Changes() <-chan string { return w.ch }

// Errors delivers watch failures.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close releases the underlying watch.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if v := w.reread(); v != "" {
				select {
				case w.ch <- v:
				default:
				}
			}
		}
	}
}

// relevant filters directory events down to writes of the pin artifact.
// Manifest events only count when the changed file still pins a version,
// so unrelated package.json edits stay quiet.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != filepath.Base(w.pin.Path) {
		return false
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Base(w.pin.Path) == constants.PackageJSONFile {
		data, err := os.ReadFile(w.pin.Path)
		if err != nil {
			return false
		}
		return gjson.GetBytes(data, "volta.node").Exists()
	}
	return true
}

func (w *Watcher) reread() string {
	if w.pin.Source == SourceManifest {
		v, err := ReadManifestPin(w.pin.Path)
		if err != nil {
			return ""
		}
		return v
	}
	if filepath.Base(w.pin.Path) == constants.ToolVersionsFile {
		v, err := readToolVersions(w.pin.Path)
		if err != nil {
			return ""
		}
		return v
	}
	v, err := readPinFile(w.pin.Path)
	if err != nil {
		return ""
	}
	return v
}
