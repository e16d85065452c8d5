package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/promptforge/prompt-forge/internal/models"
)

const bookmarksFile = "bookmarks.json"

// BookmarkStorage handles persistence of compiled-prompt snapshots. All
// bookmarks live in one JSON file under the library root; the in-memory
// map is guarded for concurrent access from the TUI and API.
type BookmarkStorage struct {
	filePath string
	mu       sync.RWMutex
	loaded   bool
	entries  map[string]*models.Bookmark
}

// NewBookmarkStorage creates a bookmark store under baseDir.
func NewBookmarkStorage(baseDir string) *BookmarkStorage {
	return &BookmarkStorage{
		filePath: filepath.Join(baseDir, bookmarksFile),
		entries:  make(map[string]*models.Bookmark),
	}
}

// bookmarksData is the on-disk JSON structure.
type bookmarksData struct {
	Bookmarks []*models.Bookmark `json:"bookmarks"`
	Version   string             `json:"version"`
}

// load reads the bookmark file once; a corrupted file starts fresh.
func (b *BookmarkStorage) load() error {
	if b.loaded {
		return nil
	}
	b.loaded = true

	if _, err := os.Stat(b.filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(b.filePath)
	if err != nil {
		return fmt.Errorf("failed to read bookmarks file: %w", err)
	}

	var parsed bookmarksData
	if err := json.Unmarshal(data, &parsed); err != nil {
		b.entries = make(map[string]*models.Bookmark)
		return nil
	}
	for _, bm := range parsed.Bookmarks {
		b.entries[bm.ID] = bm
	}
	return nil
}

// save writes all bookmarks to disk. Caller holds the lock.
func (b *BookmarkStorage) save() error {
	if err := os.MkdirAll(filepath.Dir(b.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create bookmarks directory: %w", err)
	}

	parsed := bookmarksData{Version: "1", Bookmarks: make([]*models.Bookmark, 0, len(b.entries))}
	for _, bm := range b.entries {
		parsed.Bookmarks = append(parsed.Bookmarks, bm)
	}
	sort.Slice(parsed.Bookmarks, func(i, j int) bool {
		return parsed.Bookmarks[i].CreatedAt.After(parsed.Bookmarks[j].CreatedAt)
	})

	data, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks: %w", err)
	}

	if err := os.WriteFile(b.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write bookmarks file: %w", err)
	}
	return nil
}

// List returns all bookmarks, newest first.
func (b *BookmarkStorage) List() ([]*models.Bookmark, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.load(); err != nil {
		return nil, err
	}

	out := make([]*models.Bookmark, 0, len(b.entries))
	for _, bm := range b.entries {
		out = append(out, bm)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns one bookmark by id.
func (b *BookmarkStorage) Get(id string) (*models.Bookmark, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.load(); err != nil {
		return nil, err
	}

	bm, ok := b.entries[id]
	if !ok {
		return nil, fmt.Errorf("bookmark %q does not exist", id)
	}
	return bm, nil
}

// Save stores a bookmark, assigning an id and timestamp when missing.
func (b *BookmarkStorage) Save(bm *models.Bookmark) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.load(); err != nil {
		return err
	}

	if bm.ID == "" {
		bm.ID = fmt.Sprintf("bm-%d", time.Now().UnixNano())
	}
	if bm.CreatedAt.IsZero() {
		bm.CreatedAt = time.Now()
	}
	b.entries[bm.ID] = bm
	return b.save()
}

// Delete removes a bookmark by id.
func (b *BookmarkStorage) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.load(); err != nil {
		return err
	}

	if _, ok := b.entries[id]; !ok {
		return fmt.Errorf("bookmark %q does not exist", id)
	}
	delete(b.entries, id)
	return b.save()
}
