package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
)

const yamlDataset = `places:
  - id: "7"
    lat: 25.2012544
    lon: 55.2569389
    data:
      name: Dubai Mall
      floors: 4
  - id: "9"
    lat: 25.0763827
    lon: 55.1616669
`

const jsonDataset = `{"places": [
  {"id": "1", "lat": 24.876282, "lon": 67.022481, "data": {"name": "Karachi"}},
  {"id": "2", "lat": -2.054868, "lon": 34.189453}
]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlacesYAML(t *testing.T) {
	places, err := LoadPlaces(writeFile(t, "places.yaml", yamlDataset))
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "7", places[0].ID)
	assert.Equal(t, 25.2012544, places[0].Lat)
	assert.Equal(t, 55.2569389, places[0].Lon)
	assert.Equal(t, "Dubai Mall", places[0].Data["name"])
	assert.Equal(t, 4, places[0].Data["floors"])
	assert.Nil(t, places[1].Data)
}

func TestLoadPlacesJSON(t *testing.T) {
	places, err := LoadPlaces(writeFile(t, "places.json", jsonDataset))
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "1", places[0].ID)
	assert.Equal(t, "Karachi", places[0].Data["name"])
	assert.Equal(t, -2.054868, places[1].Lat)
}

func TestLoadPlacesErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.yaml")
		_, err := LoadPlaces(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Contains(t, err.Error(), path)
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "places: [{id: 1, lat: north}]")
		_, err := LoadPlaces(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse dataset")
	})
}

func TestPlaceRecord(t *testing.T) {
	testCases := []struct {
		name    string
		place   Place
		wantErr error
	}{
		{"valid", Place{ID: "7", Lat: 25.2012544, Lon: 55.2569389, Data: map[string]any{"name": "Dubai Mall"}}, nil},
		{"invalid latitude", Place{ID: "x", Lat: 91, Lon: 0}, geo.ErrInvalidLatitude},
		{"invalid longitude", Place{ID: "y", Lat: 0, Lon: -181}, geo.ErrInvalidLongitude},
		{"empty id", Place{Lat: 1, Lon: 1}, ErrEmptyID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := tc.place.Record()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.place.ID, rec.ID())
			assert.Equal(t, tc.place.Lat, rec.Point().Lat())
			assert.Equal(t, tc.place.Lon, rec.Point().Lon())
			assert.Equal(t, tc.place.Data, rec.Payload())
		})
	}
}

func TestSavePlacesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	places := []Place{
		{ID: "a", Lat: 1.5, Lon: -2.25, Data: map[string]any{"name": "alpha"}},
		{ID: "b", Lat: -45, Lon: 170},
	}

	require.NoError(t, SavePlaces(path, places))

	loaded, err := LoadPlaces(path)
	require.NoError(t, err)
	assert.Equal(t, places, loaded)
}
