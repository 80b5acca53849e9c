// Package watcher ingests files dropped into the inbox directory.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"spherical/internal/domain"
	"spherical/internal/ingest"
	"spherical/internal/workbench"
)

// Watcher monitors a directory and ingests newly written files into the
// workbench. Files with unknown extensions are ignored.
type Watcher struct {
	store   *workbench.Store
	dir     string
	watcher *fsnotify.Watcher
}

// New creates a Watcher for dir, creating the directory if needed.
func New(store *workbench.Store, dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{store: store, dir: dir, watcher: fw}, nil
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	log.Printf("watcher.Run: watching inbox %s", w.dir)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.ingestPath(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher.Run: watch error: %v", err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// IngestExisting ingests files already present in the inbox at startup.
func (w *Watcher) IngestExisting() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		log.Printf("watcher.IngestExisting: reading %s: %v", w.dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.ingestPath(filepath.Join(w.dir, entry.Name()))
	}
}

func (w *Watcher) ingestPath(path string) {
	contentType, ok := contentTypeFor(path)
	if !ok {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("watcher.ingestPath: reading %s: %v", path, err)
		return
	}
	docs := w.store.Ingest([]ingest.File{{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}})
	for _, d := range docs {
		log.Printf("watcher.ingestPath: ingested %s as %s", d.Name, d.ID)
	}
}

func contentTypeFor(path string) (string, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	ct, ok := domain.ExtensionContentTypes[ext]
	return ct, ok
}
