// Package lockwait blocks until git's index lock disappears.
//
// The lock file is only ever observed, never created, written, or removed.
// Waiting is event-driven: an fsnotify subscription on the lock's containing
// directory delivers removal events, so there is no polling loop.
package lockwait

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git-wait/log"
)

var (
	// ErrTimedOut is returned when the configured deadline elapses with the
	// lock still in place. Callers report it distinctly so operators can
	// tell "still locked" from "broken".
	ErrTimedOut = errors.New("timed out waiting for index.lock")

	// ErrChannelClosed is returned if the watcher's event channel closes
	// while the wait is still in progress.
	ErrChannelClosed = errors.New("watcher channel closed unexpectedly")

	// ErrWatchInit wraps failures to establish the filesystem subscription.
	ErrWatchInit = errors.New("unable to initialize file watcher")
)

// WaitForClear blocks until the file at lockPath is removed. A timeout of
// zero means wait indefinitely; otherwise the deadline is strict total
// elapsed time — unrelated filesystem events never extend it.
//
// Callers check for the lock's existence before calling, but the file may
// vanish between that check and the subscription. Both a subscription
// failure caused by a missing path and the lock already being gone right
// after the subscription is established are treated as success, which
// closes that race.
func WaitForClear(lockPath string, timeout time.Duration) error {
	lockPath = filepath.Clean(lockPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrWatchInit, err)
	}
	defer watcher.Close()

	// Watch the containing directory rather than the lock file itself:
	// inotify watches follow inodes, and a watch on the file would outlive
	// the name we care about.
	if err := watcher.Add(filepath.Dir(lockPath)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// The metadata directory is gone, and the lock with it.
			return nil
		}
		return fmt.Errorf("%w: %s", ErrWatchInit, err)
	}

	if _, err := os.Stat(lockPath); err != nil {
		// Removed between the caller's check and the subscription.
		log.Debug("lock %s already gone after subscribe", lockPath)
		return nil
	}

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return ErrChannelClosed
			}
			log.Debug("event %s on %s", event.Op, event.Name)
			if filepath.Clean(event.Name) != lockPath {
				continue
			}
			// Git usually releases the lock by renaming it over the real
			// index, so Rename is a release just like Remove.
			if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return ErrChannelClosed
			}
			// Watch errors are not fatal mid-wait; the lock may still
			// clear and a removal event still arrive.
			log.WarningLog.Printf("watcher error: %v", err)

		case <-deadline:
			return ErrTimedOut
		}
	}
}
