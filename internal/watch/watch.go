// Package watch observes the sitemap output directory so operators can see
// when the external generator refreshes the files.
package watch

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/repoharbor/sitemapd/internal/logging"
	"github.com/repoharbor/sitemapd/internal/metrics"
)

const (
	// debounceDelay is how long to wait for more changes before recounting;
	// a generator run touches many files in quick succession
	debounceDelay = 500 * time.Millisecond

	// attachRetryInterval is how often to retry watching a directory that
	// does not exist yet (generator never ran)
	attachRetryInterval = 30 * time.Second
)

// Watcher tracks the sitemap directory and keeps the file-count gauge fresh.
type Watcher struct {
	dir    string
	fsw    *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a watcher for dir. Call Start to begin observing.
func New(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		dir:    dir,
		fsw:    fsw,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}, nil
}

// Start begins observing the directory. A missing directory is not an
// error; attachment is retried until the generator creates it.
func (w *Watcher) Start() {
	attached := w.attach()
	w.refreshCount()

	go w.run(attached)
}

// Stop terminates the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.cancel()
	<-w.done
	_ = w.fsw.Close()
}

func (w *Watcher) attach() bool {
	if err := w.fsw.Add(w.dir); err != nil {
		logging.Debug("Sitemap directory not watchable yet", zap.String("dir", w.dir), zap.Error(err))
		return false
	}
	logging.Info("Watching sitemap directory", zap.String("dir", w.dir))
	return true
}

func (w *Watcher) run(attached bool) {
	defer close(w.done)

	retry := time.NewTicker(attachRetryInterval)
	defer retry.Stop()

	// Debounce timer, armed on the first event of a burst
	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			metrics.RegenerationEvents.Inc()
			logging.Debug("Sitemap directory event", zap.String("op", ev.Op.String()), zap.String("name", ev.Name))
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
				debounceC = debounce.C
			} else {
				debounce.Reset(debounceDelay)
			}

		case <-debounceC:
			debounce = nil
			debounceC = nil
			w.refreshCount()
			logging.Info("Sitemap directory changed", zap.String("dir", w.dir))

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn("Sitemap watcher error", zap.Error(err))

		case <-retry.C:
			if !attached {
				attached = w.attach()
				if attached {
					w.refreshCount()
				}
			}

		case <-w.ctx.Done():
			return
		}
	}
}

// refreshCount counts regular files in the directory and updates the gauge
func (w *Watcher) refreshCount() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		metrics.SitemapFiles.Set(0)
		return
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			count++
		}
	}
	metrics.SitemapFiles.Set(float64(count))
}
