package ndvilib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleStep(t *testing.T) {
	cases := []struct {
		width, height, want int
	}{
		{2000, 2000, 2},
		{100, 100, 1},
		{999, 5000, 1},
		{5000, 3000, 3},
		{1, 1, 1},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, SampleStep(tc.width, tc.height), "size %dx%d", tc.width, tc.height)
	}
}

func TestStrideSampleCount(t *testing.T) {
	// A 2000x2000 grid at step 2 yields a (2000/2)^2 sample.
	w, h := 2000, 2000
	buf := make([]uint8, w*h)
	out := strideSample(buf, w, h, 2, func(b uint8) float64 { return float64(b) })
	require.Len(t, out, 1000*1000)
}

func TestStrideSampleValues(t *testing.T) {
	// 4x4 grid, step 2: rows 0 and 2, cols 0 and 2.
	buf := []uint8{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	out := strideSample(buf, 4, 4, 2, func(b uint8) float64 { return float64(b) })
	require.Equal(t, []float64{1, 3, 9, 11}, out)
}

func TestSampleStatisticsMissingFile(t *testing.T) {
	g, _ := newTestToolbox(t)
	_, ok := g.SampleStatistics("")
	require.False(t, ok)
	_, ok = g.SampleStatistics("/no/such/raster.tif")
	require.False(t, ok)
	_, ok = g.MapStatistics(2020, 1)
	require.False(t, ok)
}
