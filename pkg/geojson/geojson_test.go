package geojson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const polygonDoc = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"FS": "HB", "FEDERAL_STATE": "Bremen"},
      "geometry": {"type": "Polygon", "coordinates": [[[8.5,53.0],[9.0,53.0],[9.0,53.3],[8.5,53.3],[8.5,53.0]]]}
    }
  ]
}`

func TestDecodeFeatureCollection(t *testing.T) {
	fc, err := Decode([]byte(polygonDoc))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "HB", fc.Features[0].PropString("FS"))
	assert.Equal(t, "Bremen", fc.Features[0].PropString("FEDERAL_STATE"))

	polys, err := fc.Features[0].Geometry.Polygons()
	require.NoError(t, err)
	require.Len(t, polys, 1)
	require.Len(t, polys[0], 1)
	assert.Len(t, polys[0][0], 5)
	assert.Equal(t, 8.5, polys[0][0][0].Lon())
	assert.Equal(t, 53.0, polys[0][0][0].Lat())
}

func TestDecodeBareGeometry(t *testing.T) {
	fc, err := Decode([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	polys, err := fc.Features[0].Geometry.Polygons()
	require.NoError(t, err)
	assert.Len(t, polys, 1)
}

func TestDecodeSingleFeature(t *testing.T) {
	fc, err := Decode([]byte(`{"type":"Feature","properties":{"name":"x"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}`))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "x", fc.Features[0].PropString("name"))
}

func TestDecodeRejectsUnknownRoot(t *testing.T) {
	_, err := Decode([]byte(`{"type":"GeometryCollection"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestMultiPolygon(t *testing.T) {
	g := NewMultiPolygon([][][]Position{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		{{{5, 5}, {6, 5}, {6, 6}, {5, 5}}},
	})
	polys, err := g.Polygons()
	require.NoError(t, err)
	assert.Len(t, polys, 2)
}

func TestPolygonsOnNonArealGeometry(t *testing.T) {
	fc, err := Decode([]byte(`{"type":"Point","coordinates":[1,2]}`))
	require.NoError(t, err)
	_, err = fc.Features[0].Geometry.Polygons()
	assert.ErrorIs(t, err, ErrNoPolygon)
}

func TestEncodeRoundTrip(t *testing.T) {
	fc, err := Decode([]byte(polygonDoc))
	require.NoError(t, err)
	b, err := fc.Encode()
	require.NoError(t, err)
	fc2, err := Decode(b)
	require.NoError(t, err)
	require.Len(t, fc2.Features, 1)
	assert.Equal(t, "HB", fc2.Features[0].PropString("FS"))
	p1, _ := fc.Features[0].Geometry.Polygons()
	p2, _ := fc2.Features[0].Geometry.Polygons()
	assert.Equal(t, p1, p2)
}
