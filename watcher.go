package limn

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

const watcherQueueCap = 64

// AssetWatcher watches a directory and queues changed file paths. The watch
// goroutine only ever writes into the queue; the UI drains it on its own
// tick, so asset reloads happen on the UI goroutine like every other
// mutation.
type AssetWatcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

// NewAssetWatcher watches dir (non-recursive) for file writes and creates.
func NewAssetWatcher(dir string) (*AssetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("limn: asset watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("limn: watch %s: %w", dir, err)
	}
	aw := &AssetWatcher{
		watcher: w,
		changes: make(chan string, watcherQueueCap),
		done:    make(chan struct{}),
	}
	go aw.loop()
	return aw, nil
}

func (aw *AssetWatcher) loop() {
	for {
		select {
		case ev, ok := <-aw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			select {
			case aw.changes <- ev.Name:
			default:
				// Queue full. Dropping is fine: a path that keeps
				// changing will be requeued by its next write.
			}
		case err, ok := <-aw.watcher.Errors:
			if !ok {
				return
			}
			debugf("asset watcher: %v", err)
		case <-aw.done:
			return
		}
	}
}

// Drain returns the paths changed since the last call, without blocking.
func (aw *AssetWatcher) Drain() []string {
	var out []string
	for {
		select {
		case p := <-aw.changes:
			out = append(out, p)
		default:
			return out
		}
	}
}

// Close stops the watch goroutine and releases the OS watch. Safe to call
// more than once.
func (aw *AssetWatcher) Close() error {
	select {
	case <-aw.done:
	default:
		close(aw.done)
	}
	return aw.watcher.Close()
}

// WatchAssets starts an asset watcher on dir. Files in dir that were loaded
// through Resources.LoadFont or Resources.LoadImage are reloaded on the tick
// after they change.
func (u *UI) WatchAssets(dir string) error {
	if u.watcher != nil {
		return fmt.Errorf("limn: asset watcher already running")
	}
	aw, err := NewAssetWatcher(dir)
	if err != nil {
		return err
	}
	u.watcher = aw
	return nil
}

// Watcher returns the running asset watcher, or nil.
func (u *UI) Watcher() *AssetWatcher {
	return u.watcher
}

// drainWatcher reloads every asset whose file changed since the last tick.
func (u *UI) drainWatcher() {
	for _, path := range u.watcher.Drain() {
		if key, ok := u.res.reloadPath(path); ok {
			debugf("reloaded asset %q from %s", key, path)
		}
	}
}
