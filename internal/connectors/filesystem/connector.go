// Package filesystem provides the local folder file source. It walks
// the configured directory for supported document files and can watch
// it for changes via fsnotify.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.FileSource = (*Connector)(nil)

// Connector reads documents from a local directory tree.
type Connector struct {
	rootPath string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a filesystem connector rooted at the given path.
func New(rootPath string) *Connector {
	return &Connector{rootPath: rootPath}
}

// Validate checks that the root path exists and is a readable directory.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.rootPath)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", c.rootPath)
	}
	return nil
}

// Walk traverses the directory tree and emits every supported document
// file. Hidden files and directories are skipped. Per-file read
// failures go to the error channel without stopping the walk.
func (c *Connector) Walk(ctx context.Context) (<-chan domain.RawFile, <-chan error) {
	files := make(chan domain.RawFile)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)

		err := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				select {
				case errs <- fmt.Errorf("walk %s: %w", path, err):
				case <-ctx.Done():
					return ctx.Err()
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if strings.HasPrefix(d.Name(), ".") && path != c.rootPath {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}

			fileType := domain.FileTypeFromPath(path)
			if !fileType.IsValid() {
				return nil
			}

			raw, err := c.readFile(path, fileType)
			if err != nil {
				select {
				case errs <- err:
				case <-ctx.Done():
					return ctx.Err()
				}
				return nil
			}

			select {
			case files <- raw:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})
		if err != nil && err != ctx.Err() {
			select {
			case errs <- err:
			default:
			}
		}
	}()

	return files, errs
}

// readFile loads the file content and metadata.
func (c *Connector) readFile(path string, fileType domain.FileType) (domain.RawFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.RawFile{}, fmt.Errorf("stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.RawFile{}, fmt.Errorf("read %s: %w", path, err)
	}

	return domain.RawFile{
		Path:         path,
		Name:         filepath.Base(path),
		Size:         info.Size(),
		ModifiedTime: info.ModTime(),
		Type:         fileType,
		Content:      content,
	}, nil
}

// Watch emits the path of every supported document that is created,
// modified, removed or renamed under the root. Subdirectories are
// registered recursively, and new subdirectories are added as they
// appear. The channel closes when the context is cancelled.
func (c *Connector) Watch(ctx context.Context) (<-chan string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, fmt.Errorf("connector is closed")
	}

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	c.watcher = watcher

	if err := addRecursive(watcher, c.rootPath); err != nil {
		watcher.Close()
		c.watcher = nil
		return nil, err
	}

	changes := make(chan string)

	go func() {
		defer close(changes)
		defer func() {
			c.mu.Lock()
			if c.watcher == watcher {
				c.watcher = nil
			}
			c.mu.Unlock()
			watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// Newly created directories need their own watch.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := addRecursive(watcher, event.Name); err != nil {
							logger.Warn("watch %s: %v", event.Name, err)
						}
						continue
					}
				}

				if !domain.FileTypeFromPath(event.Name).IsValid() {
					continue
				}
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
					!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
					continue
				}

				select {
				case changes <- event.Name:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// addRecursive registers the directory and all non-hidden
// subdirectories with the watcher.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Close stops any active watcher. It is idempotent.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.watcher != nil {
		err := c.watcher.Close()
		c.watcher = nil
		return err
	}
	return nil
}
