// Package history keeps captured screenshots on disk with a JSON index
// so past captures can be searched by the text that was on screen.
package history

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wudi/shotkit/capture"
	"github.com/wudi/shotkit/observability"
)

const indexFile = "history.json"

// idLength is the number of hex characters kept from the content hash.
const idLength = 8

// Entry is one stored screenshot.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Path      string            `json:"path"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	OCRText   string            `json:"ocr_text,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Tags      []string          `json:"tags,omitempty"`
}

// Recognizer extracts searchable text from a stored frame. Wiring this to
// an OCR engine is the caller's choice; the store works without one.
type Recognizer func(ctx context.Context, shot *capture.Screenshot) (string, error)

// Store is a directory-backed screenshot history. Safe for concurrent
// use.
type Store struct {
	dir       string
	mu        sync.Mutex
	entries   []Entry
	recognize Recognizer
	log       observability.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithRecognizer enables OCR-backed text indexing on Add.
func WithRecognizer(r Recognizer) Option {
	return func(s *Store) { s.recognize = r }
}

// WithLogger sets the store's logger; the default is silent.
func WithLogger(l observability.Logger) Option {
	return func(s *Store) { s.log = l }
}

// DefaultDir returns ~/.shotkit/history.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("history: resolve home: %w", err)
	}
	return filepath.Join(home, ".shotkit", "history"), nil
}

// Open loads (or initializes) a history store rooted at dir.
func Open(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}
	s := &Store{dir: dir, log: observability.NopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("history: read index: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return fmt.Errorf("history: parse index: %w", err)
	}
	return nil
}

// saveLocked rewrites the index atomically. Callers hold s.mu.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("history: marshal index: %w", err)
	}
	tmp := filepath.Join(s.dir, indexFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("history: write index: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, indexFile)); err != nil {
		return fmt.Errorf("history: replace index: %w", err)
	}
	return nil
}

// Add stores a screenshot and returns its entry. The ID is derived from
// the PNG content, so re-adding an identical frame yields the same ID and
// replaces the previous entry instead of duplicating it. OCR failures are
// logged and leave the entry searchable by metadata only.
func (s *Store) Add(ctx context.Context, shot *capture.Screenshot, metadata map[string]string, tags []string) (Entry, error) {
	var buf bytes.Buffer
	if err := shot.EncodePNG(&buf); err != nil {
		return Entry{}, err
	}
	sum := sha256.Sum256(buf.Bytes())
	id := hex.EncodeToString(sum[:])[:idLength]
	path := filepath.Join(s.dir, id+".png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Entry{}, fmt.Errorf("history: write screenshot: %w", err)
	}

	var ocrText string
	if s.recognize != nil {
		text, err := s.recognize(ctx, shot)
		if err != nil {
			s.log.Warn("history: ocr indexing failed", observability.String("id", id), observability.Error("error", err))
		} else {
			ocrText = text
		}
	}

	entry := Entry{
		ID:        id,
		Timestamp: shot.CapturedAt,
		Path:      path,
		Width:     shot.Width(),
		Height:    shot.Height(),
		OCRText:   ocrText,
		Metadata:  metadata,
		Tags:      tags,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		s.entries = append(s.entries, entry)
	}
	if err := s.saveLocked(); err != nil {
		return Entry{}, err
	}
	s.log.Info("history: stored screenshot", observability.String("id", id), observability.Int("width", entry.Width), observability.Int("height", entry.Height))
	return entry, nil
}

// Search returns entries whose OCR text, metadata values, or tags contain
// the query, case-insensitively. Results come back newest first.
func (s *Store) Search(query string) []Entry {
	q := strings.ToLower(query)
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []Entry
	for _, e := range s.entries {
		if matchesEntry(e, q) {
			results = append(results, e)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Timestamp.After(results[j].Timestamp) })
	return results
}

func matchesEntry(e Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.OCRText), q) {
		return true
	}
	for k, v := range e.Metadata {
		if strings.Contains(strings.ToLower(k), q) || strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Get looks up an entry by ID.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// List returns all entries, newest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// Load decodes the stored PNG for an entry.
func (s *Store) Load(id string) (image.Image, error) {
	entry, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("history: unknown id %q", id)
	}
	f, err := os.Open(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", entry.Path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("history: decode %s: %w", entry.Path, err)
	}
	return img, nil
}

// Remove deletes an entry and its image file.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID != id {
			continue
		}
		if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("history: remove %s: %w", e.Path, err)
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return s.saveLocked()
	}
	return fmt.Errorf("history: unknown id %q", id)
}
