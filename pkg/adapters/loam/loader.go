package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/ports"
)

// Loader adapts the Loam library to the ports.AssetSource interface.
// Documents may be JSON, YAML or Markdown with front matter; only the
// metadata is read, the Markdown body is ignored. Curves and positions must
// use their object forms since Loam documents are objects.
type Loader struct {
	Repo *loam.TypedRepository[AssetMetadata]
	raw  core.Repository
}

// New creates a new Loam adapter over an initialized repository.
func New(repo core.Repository) *Loader {
	return &Loader{
		Repo: loam.NewTypedRepository[AssetMetadata](repo),
		raw:  repo,
	}
}

// Open initializes a read-only Loam repository at dir.
// Strict mode keeps large integers exact instead of decoding them as float64.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(repo), nil
}

// List lists the assets of one kind, classified by top-level directory.
func (l *Loader) List(ctx context.Context, kind ports.AssetKind) ([]string, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(index))
	for id := range index {
		if ports.KindOf(id) == kind {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Load returns the document metadata of one asset re-encoded as JSON.
func (l *Loader) Load(ctx context.Context, kind ports.AssetKind, id string) ([]byte, error) {
	if ports.KindOf(id) != kind {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := index[id]; !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}

	// Loam resolves the extension itself.
	doc, err := l.raw.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	data, err := json.Marshal(doc.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", id, err)
	}
	return data, nil
}

// index maps every asset ID to the Loam document that holds it.
func (l *Loader) index(ctx context.Context) (map[string]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		id := trimExtension(doc.ID)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
	}
	return seen, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
