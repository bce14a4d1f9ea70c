package chromemdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const manifestFile = "manifest.json"

// ErrModelMismatch means the index was built with a different embedding
// model than the one configured for querying.
var ErrModelMismatch = errors.New("embedding model mismatch")

// Manifest pins the embedding model an index was built with so the bot can
// fail fast instead of silently returning degraded results.
type Manifest struct {
	EmbedModel string    `json:"embed_model"`
	Source     string    `json:"source"`
	Chunks     int       `json:"chunks"`
	BuiltAt    time.Time `json:"built_at"`
}

// WriteManifest persists the manifest into the index directory.
func WriteManifest(dir string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(dir, manifestFile)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return f.Sync()
}

// ReadManifest loads the manifest from the index directory.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Validate checks the configured embedding model against the one the index
// was built with.
func (m *Manifest) Validate(embedModel string) error {
	if m.EmbedModel != embedModel {
		return fmt.Errorf("%w: index built with %q, configured %q", ErrModelMismatch, m.EmbedModel, embedModel)
	}
	return nil
}
