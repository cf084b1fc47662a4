package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fs-api/pkg/geojson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareRing(minLon, minLat, maxLon, maxLat float64) []geojson.Position {
	return []geojson.Position{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}
}

func stateFeature(code, name string, ring []geojson.Position) geojson.Feature {
	return geojson.Feature{
		Type:       "Feature",
		Properties: map[string]any{"FS": code, "FEDERAL_STATE": name},
		Geometry:   geojson.NewPolygon([][]geojson.Position{ring}),
	}
}

func aoiFeature(ring []geojson.Position) geojson.Feature {
	return geojson.Feature{
		Type:     "Feature",
		Geometry: geojson.NewPolygon([][]geojson.Position{ring}),
	}
}

func writeLayer(t *testing.T, dir, name string, fc *geojson.FeatureCollection) {
	t.Helper()
	b, err := fc.Encode()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".geojson"), b, 0o644))
}

// setupMapset builds a working mapset with a 2x2 reference grid:
// HB and HH on the lower row, NI and SH above them.
func setupMapset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FS_MAPSET", dir)
	writeLayer(t, dir, "federal_states", &geojson.FeatureCollection{
		Type: "FeatureCollection",
		Features: []geojson.Feature{
			stateFeature("HB", "Bremen", squareRing(0, 0, 1, 1)),
			stateFeature("HH", "Hamburg", squareRing(1, 0, 2, 1)),
			stateFeature("NI", "Niedersachsen", squareRing(0, 1, 1, 2)),
			stateFeature("SH", "Schleswig-Holstein", squareRing(1, 1, 2, 2)),
		},
	})
	return dir
}

func writeAOI(t *testing.T, dir, name string, minLon, minLat, maxLon, maxLat float64) {
	t.Helper()
	writeLayer(t, dir, name, &geojson.FeatureCollection{
		Type:     "FeatureCollection",
		Features: []geojson.Feature{aoiFeature(squareRing(minLon, minLat, maxLon, maxLat))},
	})
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestShellOutputSingleState(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "plot", 0.2, 0.2, 0.8, 0.8)

	out, err := runCmd(t, "--aoi", "plot", "-g")
	require.NoError(t, err)
	assert.Equal(t, "FEDERAL_STATE=Bremen\nFS=HB\n", out)
}

func TestPlainOutputSingleState(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "plot", 1.2, 0.2, 1.8, 0.8)

	out, err := runCmd(t, "--aoi", "plot")
	require.NoError(t, err)
	assert.Equal(t, "FEDERAL_STATE: Hamburg\nFS: HH\n", out)
}

func TestMultiStateOrderedByOverlap(t *testing.T) {
	dir := setupMapset(t)
	// most of the area sits in NI, a smaller band in HB
	writeAOI(t, dir, "plot", 0.1, 0.7, 0.9, 1.8)

	out, err := runCmd(t, "--aoi", "plot", "-g")
	require.NoError(t, err)
	assert.Equal(t, "FEDERAL_STATE=Niedersachsen,Bremen\nFS=NI,HB\n", out)
}

func TestNotInGermany(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "abroad", 10, 10, 11, 11)

	out, err := runCmd(t, "--aoi", "abroad", "-g")
	require.NoError(t, err)
	assert.Equal(t, "Not in Germany\n", out)
}

func TestOutputLayerRoundTrip(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "plot", 0.1, 0.7, 0.9, 1.8)

	first, err := runCmd(t, "--aoi", "plot", "-g", "--output", "matched")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "matched.geojson"))

	// the matched-states layer is itself a valid reference layer
	second, err := runCmd(t, "--aoi", "plot", "-g", "--federal_states", "matched")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNoOutputLayerWithoutMatch(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "abroad", 10, 10, 11, 11)

	_, err := runCmd(t, "--aoi", "abroad", "--output", "matched")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "matched.geojson"))
}

func TestInvalidReferenceLayer(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "plot", 0.2, 0.2, 0.8, 0.8)
	writeLayer(t, dir, "broken", &geojson.FeatureCollection{
		Type: "FeatureCollection",
		Features: []geojson.Feature{{
			Type:       "Feature",
			Properties: map[string]any{"name": "no schema fields"},
			Geometry:   geojson.NewPolygon([][]geojson.Position{squareRing(0, 0, 1, 1)}),
		}},
	})

	_, err := runCmd(t, "--aoi", "plot", "--federal_states", "broken")
	require.Error(t, err)
}

func TestMissingAOILayer(t *testing.T) {
	setupMapset(t)
	_, err := runCmd(t, "--aoi", "nosuch")
	require.Error(t, err)
}

func TestReportFileWrittenOnMatch(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "plot", 0.2, 0.2, 0.8, 0.8)
	path := filepath.Join(t.TempDir(), "report.txt")

	_, err := runCmd(t, "--aoi", "plot", "--federal_state_file", path)
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FEDERAL_STATE=Bremen\nFS=HB\n", string(b))
}

func TestReportFileSkippedWithoutMatch(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "abroad", 10, 10, 11, 11)
	path := filepath.Join(t.TempDir(), "report.txt")

	_, err := runCmd(t, "--aoi", "abroad", "--federal_state_file", path)
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}

func TestReportFileUnwritableTargetStillSucceeds(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "plot", 0.2, 0.2, 0.8, 0.8)
	// a directory at the target path makes the write fail
	path := filepath.Join(t.TempDir(), "isadir")
	require.NoError(t, os.Mkdir(path, 0o755))

	out, err := runCmd(t, "--aoi", "plot", "-g", "--federal_state_file", path)
	require.NoError(t, err)
	assert.Equal(t, "FEDERAL_STATE=Bremen\nFS=HB\n", out)
}

func TestReportFileSkippedWithoutParentDir(t *testing.T) {
	dir := setupMapset(t)
	writeAOI(t, dir, "plot", 0.2, 0.2, 0.8, 0.8)
	path := filepath.Join(t.TempDir(), "missing", "report.txt")

	_, err := runCmd(t, "--aoi", "plot", "--federal_state_file", path)
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}

func TestImportAndRemove(t *testing.T) {
	dir := setupMapset(t)
	src := filepath.Join(t.TempDir(), "src.geojson")
	fc := &geojson.FeatureCollection{
		Type:     "FeatureCollection",
		Features: []geojson.Feature{aoiFeature(squareRing(0, 0, 1, 1))},
	}
	b, err := fc.Encode()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, b, 0o644))

	_, err = runCmd(t, "import", "--input", src, "--output", "imported")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "imported.geojson"))

	_, err = runCmd(t, "remove", "imported")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "imported.geojson"))
}
