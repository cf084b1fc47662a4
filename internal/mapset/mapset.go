// Package mapset: named vector-layer store over a plain directory.
// Background: every layer lives as <dir>/<name>.geojson; names keep commands
// decoupled from paths the same way a GIS working session references maps.
// Constraints: layer names are restricted to a safe character set so they can
// never escape the mapset directory.
package mapset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"fs-api/internal/logger"
	"fs-api/pkg/geojson"
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type Mapset struct {
	dir string
}

// Open ensures the mapset directory exists and returns a handle to it.
func Open(dir string) (*Mapset, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mapset: create %s: %w", dir, err)
	}
	return &Mapset{dir: dir}, nil
}

// DefaultDir resolves the working mapset from the environment.
func DefaultDir() string {
	if d := os.Getenv("FS_MAPSET"); d != "" {
		return d
	}
	return filepath.Join("data", "mapset")
}

func (m *Mapset) Dir() string { return m.dir }

// Resolve maps a layer reference to a file path. A reference that already
// points at a .geojson file is passed through, anything else must be a valid
// layer name inside the mapset.
func (m *Mapset) Resolve(ref string) (string, error) {
	if strings.HasSuffix(strings.ToLower(ref), ".geojson") {
		return ref, nil
	}
	if !nameRe.MatchString(ref) {
		return "", fmt.Errorf("mapset: invalid layer name %q", ref)
	}
	return filepath.Join(m.dir, ref+".geojson"), nil
}

// ReadLayer loads a layer by name or path.
func (m *Mapset) ReadLayer(ref string) (*geojson.FeatureCollection, error) {
	path, err := m.Resolve(ref)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapset: layer %q: %w", ref, err)
	}
	fc, err := geojson.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("mapset: layer %q: %w", ref, err)
	}
	return fc, nil
}

// WriteLayer persists a collection under a layer name.
func (m *Mapset) WriteLayer(name string, fc *geojson.FeatureCollection) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("mapset: invalid layer name %q", name)
	}
	b, err := fc.Encode()
	if err != nil {
		return err
	}
	path := filepath.Join(m.dir, name+".geojson")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("mapset: write %q: %w", name, err)
	}
	logger.L().Debug("layer_write_ok", "name", name, "features", len(fc.Features))
	return nil
}

// Exists reports whether a layer is present.
func (m *Mapset) Exists(name string) bool {
	path, err := m.Resolve(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Remove deletes a layer; removing an absent layer is not an error.
func (m *Mapset) Remove(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("mapset: invalid layer name %q", name)
	}
	path := filepath.Join(m.dir, name+".geojson")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	logger.L().Debug("layer_remove_ok", "name", name)
	return nil
}

// List returns the layer names in the mapset.
func (m *Mapset) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, ent := range entries {
		n := ent.Name()
		if strings.HasSuffix(strings.ToLower(n), ".geojson") {
			names = append(names, strings.TrimSuffix(n, filepath.Ext(n)))
		}
	}
	return names, nil
}
