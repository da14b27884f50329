package assets

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher rebuilds pipeline stages when source files change and notifies
// listeners after every successful rebuild.
type Watcher struct {
	pipeline *Pipeline
	srcDir   string
	// OnRebuild is called with the rebuilt stage name. The livereload
	// server hooks in here.
	OnRebuild func(stage string)

	debounce time.Duration
}

// NewWatcher creates a watcher for the pipeline's source tree. srcDir must
// be a real filesystem path; fsnotify does not work on virtual
// filesystems.
func NewWatcher(pipeline *Pipeline, srcDir string) *Watcher {
	return &Watcher{
		pipeline: pipeline,
		srcDir:   srcDir,
		debounce: 200 * time.Millisecond,
	}
}

// Run builds once, then watches until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.pipeline.Build(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch every directory under the source tree; fsnotify is not
	// recursive.
	err = filepath.Walk(w.srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Watching for asset changes", "src", w.srcDir)

	pending := make(map[string]struct{})
	var timer *time.Timer
	timerC := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need watching too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			pending[stageFor(event.Name)] = struct{}{}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case timerC <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)

		case <-timerC:
			for stage := range pending {
				delete(pending, stage)
				if _, err := w.pipeline.BuildStage(stage); err != nil {
					slog.Error("Rebuild failed", "stage", stage, "error", err)
					continue
				}
				slog.Info("Rebuilt stage", "stage", stage)
				if w.OnRebuild != nil {
					w.OnRebuild(stage)
				}
			}
		}
	}
}

// stageFor maps a changed file to the pipeline stage that covers it.
func stageFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".css", ".scss":
		return StageStyles
	case ".js":
		return StageScripts
	default:
		return StageStatic
	}
}
