package chat

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ResponsesWatcher reloads a responses file into a CannedProvider whenever
// the file changes on disk. A document that fails to parse is logged and the
// previous responses stay in use.
type ResponsesWatcher struct {
	path     string
	provider *CannedProvider
	logger   *zap.Logger
	debounce time.Duration
	onReload func([]string, error)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// WatcherOption is a function that configures a ResponsesWatcher
type WatcherOption func(*ResponsesWatcher)

// WithDebounce sets how long the watcher waits for writes to settle
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *ResponsesWatcher) {
		w.debounce = d
	}
}

// WithWatchLogger sets the logger
func WithWatchLogger(logger *zap.Logger) WatcherOption {
	return func(w *ResponsesWatcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithReloadHook registers fn to run after every reload attempt
func WithReloadHook(fn func(responses []string, err error)) WatcherOption {
	return func(w *ResponsesWatcher) {
		w.onReload = fn
	}
}

// NewResponsesWatcher creates a watcher for path feeding provider
func NewResponsesWatcher(path string, provider *CannedProvider, opts ...WatcherOption) *ResponsesWatcher {
	w := &ResponsesWatcher{
		path:     filepath.Clean(path),
		provider: provider,
		logger:   zap.NewNop(),
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It returns immediately; call Stop to release the watcher.
func (w *ResponsesWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.watcher = watcher
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx, watcher, w.done)

	w.logger.Debug("watching responses file", zap.String("path", w.path))
	return nil
}

// Stop ends watching and waits for the event loop to exit
func (w *ResponsesWatcher) Stop() {
	w.mu.Lock()
	watcher, cancel, done := w.watcher, w.cancel, w.done
	w.watcher = nil
	w.mu.Unlock()

	if watcher == nil {
		return
	}
	cancel()
	<-done
	if err := watcher.Close(); err != nil {
		w.logger.Warn("failed to close responses watcher", zap.Error(err))
	}
}

func (w *ResponsesWatcher) run(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("responses watcher error", zap.Error(err))

		case <-timer.C:
			w.reload()
		}
	}
}

// reload parses the file and swaps it into the provider
func (w *ResponsesWatcher) reload() {
	responses, err := LoadResponses(w.path)
	if err != nil {
		w.logger.Warn("responses file not reloaded",
			zap.String("path", w.path),
			zap.Error(err))
	} else {
		w.provider.SetResponses(responses)
		w.logger.Info("responses file reloaded",
			zap.String("path", w.path),
			zap.Int("count", len(responses)))
	}

	if w.onReload != nil {
		w.onReload(responses, err)
	}
}
