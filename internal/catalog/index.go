package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Index caches the recipe tree of a collection and drops the cache when the
// collection changes on disk.
type Index struct {
	base   string
	logger *zap.Logger

	mu    sync.RWMutex
	tree  *Tree
	built time.Time

	debounceDelay time.Duration
}

func NewIndex(base string, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{base: base, logger: logger, debounceDelay: 250 * time.Millisecond}
}

func (i *Index) Base() string { return i.base }

// Tree returns the cached tree, building it on first use.
func (i *Index) Tree() (*Tree, error) {
	i.mu.RLock()
	tree := i.tree
	i.mu.RUnlock()
	if tree != nil {
		return tree, nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.tree != nil {
		return i.tree, nil
	}
	tree, err := BuildTree(i.base)
	if err != nil {
		return nil, err
	}
	i.tree = tree
	i.built = time.Now()
	i.logger.Debug("recipe index built", zap.String("base", i.base), zap.Int("recipes", len(tree.Recipes())))
	return tree, nil
}

func (i *Index) Invalidate() {
	i.mu.Lock()
	i.tree = nil
	i.mu.Unlock()
}

// Watch invalidates the cache on recipe changes until ctx is done. New
// directories are watched as they appear.
func (i *Index) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := i.addTree(watcher, i.base); err != nil {
		return err
	}

	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if err := i.addTree(watcher, event.Name); err != nil {
					i.logger.Debug("watch new path", zap.String("path", event.Name), zap.Error(err))
				}
			}
			if !relevant(event) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(i.debounceDelay, func() {
				i.logger.Debug("recipe collection changed", zap.String("path", event.Name))
				i.Invalidate()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			i.logger.Warn("recipe watcher error", zap.Error(err))
		}
	}
}

func (i *Index) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != i.base && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// relevant ignores edits to non-recipe files. Removals and renames always
// count since a removed directory has no extension.
func relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return true
	}
	if IsRecipeFile(event.Name) {
		return true
	}
	return event.Has(fsnotify.Create) && filepath.Ext(event.Name) == ""
}
