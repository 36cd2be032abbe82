package ndvilib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A north-up geotransform for the Tenggeli region at ~0.01 degree pixels:
// 220 columns across 103.0..105.2, 150 rows down from 39.0 to 37.5.
var regionGT = [6]float64{103.0, 0.01, 0, 39.0, 0, -0.01}

func TestRasterIndexInterior(t *testing.T) {
	row, col := rasterIndex(regionGT, 104.0, 38.2)
	require.Equal(t, 80, row)
	require.Equal(t, 100, col)
}

func TestRasterIndexOrigin(t *testing.T) {
	row, col := rasterIndex(regionGT, 103.0, 39.0)
	require.Equal(t, 0, row)
	require.Equal(t, 0, col)
}

func TestRasterIndexOutOfRegion(t *testing.T) {
	// The (lat=0, lon=0) probe lands far outside any raster of the target
	// region and must never resolve to an in-bounds pixel.
	row, col := rasterIndex(regionGT, 0, 0)
	require.True(t, row < 0 || row >= 150)
	require.True(t, col < 0 || col >= 220)
}

func TestRasterIndexDegenerateTransform(t *testing.T) {
	row, col := rasterIndex([6]float64{}, 104.0, 38.2)
	require.Equal(t, -1, row)
	require.Equal(t, -1, col)
}

func TestFloorInt(t *testing.T) {
	require.Equal(t, 2, floorInt(2.9))
	require.Equal(t, -3, floorInt(-2.1))
	require.Equal(t, -2, floorInt(-2.0))
	require.Equal(t, 0, floorInt(0.4))
}
