// Package watch triggers a repeated search whenever a matched session
// file changes, generalized from claudecode.NewWatcher's per-session
// event classification to a flat "something changed, re-run the search"
// signal over an arbitrary glob pattern.
package watch

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces bursts of writes (a session file receiving
// several appended lines in quick succession) into one trigger.
const debounceDelay = 200 * time.Millisecond

// Watch watches dir for .jsonl changes and sends on the returned channel
// once per debounced burst of events. The channel is closed when the
// watcher itself fails or is stopped via the returned stop function.
func Watch(dir string) (<-chan struct{}, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, nil, err
	}

	triggers := make(chan struct{}, 1)
	stop := make(chan struct{})

	go func() {
		defer w.Close()
		defer close(triggers)

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(event.Name, ".jsonl") {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C

			case <-timerC:
				timerC = nil
				select {
				case triggers <- struct{}{}:
				default:
					// A trigger is already pending; the caller hasn't
					// consumed it yet, so this burst folds into that one.
				}

			case _, ok := <-w.Errors:
				if !ok {
					return
				}

			case <-stop:
				return
			}
		}
	}()

	return triggers, func() { close(stop) }, nil
}

// DirOf returns the directory fsnotify should watch for a given glob
// pattern: everything before its first wildcard segment.
func DirOf(pattern string) string {
	dir := filepath.Dir(pattern)
	for strings.ContainsAny(dir, "*?[") {
		dir = filepath.Dir(dir)
	}
	return dir
}
