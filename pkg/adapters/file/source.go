package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/ports"
)

// Extensions lists the document formats a pack may use, in lookup order.
var Extensions = []string{".json", ".yaml", ".yml"}

// Source implements ports.AssetSource and ports.Watchable over a pack directory.
// IDs are slash paths relative to the root, without extension.
type Source struct {
	root   string
	ignore map[string]bool
	logger *slog.Logger
}

// Option configures the Source.
type Option func(*Source)

// WithLogger sets the logger used by the watcher.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// WithIgnore skips files at the given root-relative paths, e.g. a config
// file kept next to the assets.
func WithIgnore(paths ...string) Option {
	return func(s *Source) {
		for _, p := range paths {
			s.ignore[filepath.ToSlash(p)] = true
		}
	}
}

// New opens the pack rooted at dir.
func New(dir string, opts ...Option) (*Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open pack: %s is not a directory", abs)
	}

	s := &Source{root: abs, ignore: make(map[string]bool), logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the absolute pack directory.
func (s *Source) Root() string { return s.root }

// List walks the pack and returns the IDs of every asset of kind.
// Two files that differ only by extension are a collision.
func (s *Source) List(ctx context.Context, kind ports.AssetKind) ([]string, error) {
	seen := make(map[string]string)
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		id, ok := s.idOf(path)
		if !ok || ports.KindOf(id) != kind {
			return nil
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, prev, path)
		}
		seen[id] = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads one asset. YAML documents are converted to JSON.
func (s *Source) Load(ctx context.Context, kind ports.AssetKind, id string) ([]byte, error) {
	if ports.KindOf(id) != kind || !filepath.IsLocal(filepath.FromSlash(id)) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}

	base := filepath.Join(s.root, filepath.FromSlash(id))
	for _, ext := range Extensions {
		data, err := os.ReadFile(base + ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", id, err)
		}
		if ext == ".json" {
			return data, nil
		}
		return yamlToJSON(data)
	}
	return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

// Watch implements ports.Watchable. It reports the ID of every asset file
// that is written, created, removed or renamed anywhere under the root.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}
	if err := s.addTree(w, s.root); err != nil {
		_ = w.Close()
		return nil, err
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("pack watcher error", "err", err)
			case evt, ok := <-w.Events:
				if !ok {
					return
				}
				if evt.Has(fsnotify.Create) {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						if err := s.addTree(w, evt.Name); err != nil {
							s.logger.Warn("pack watcher could not follow directory", "dir", evt.Name, "err", err)
						}
						continue
					}
				}
				id, ok := s.idOf(evt.Name)
				if !ok {
					continue
				}
				select {
				case ch <- id:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func (s *Source) addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// idOf maps a file path to its asset ID, rejecting non-document files.
func (s *Source) idOf(path string) (string, bool) {
	ext := filepath.Ext(path)
	known := false
	for _, e := range Extensions {
		if strings.EqualFold(ext, e) {
			known = true
			break
		}
	}
	if !known {
		return "", false
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil || !filepath.IsLocal(rel) || s.ignore[filepath.ToSlash(rel)] {
		return "", false
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, ext)), true
}

func yamlToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.SchemaError{Kind: domain.SchemaSyntax, Path: "$", Detail: err.Error()}
	}
	out, err := json.Marshal(raw)
	if err != nil {
		return nil, &domain.SchemaError{Kind: domain.SchemaSyntax, Path: "$", Detail: err.Error()}
	}
	return out, nil
}
