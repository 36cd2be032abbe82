package ndvilib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeSeriesOmitsMissingMonths(t *testing.T) {
	g, root := newTestToolbox(t)
	addSlot(t, root, "2020_03", true)
	addSlot(t, root, "2020_05", true)
	// 2020_04 absent from the catalog entirely.

	g.extract = func(path string, lat, lon float64) (float64, bool) {
		return 0.4, true
	}

	points, stats := g.TimeSeries(38.2, 104.0, 2020, 2020)
	require.Len(t, points, 2, "absent months are omitted, not emitted as nulls")
	require.Equal(t, "2020-03-01", points[0].Date)
	require.Equal(t, "2020-05-01", points[1].Date)
	require.Equal(t, 2, stats.Count)
	require.InDelta(t, 0.4, stats.Mean, 1e-12)
}

func TestTimeSeriesYearRangeInclusive(t *testing.T) {
	g, root := newTestToolbox(t)
	addSlot(t, root, "2018_06", true)
	addSlot(t, root, "2019_06", true)
	addSlot(t, root, "2020_06", true)
	addSlot(t, root, "2021_06", true)

	g.extract = func(path string, lat, lon float64) (float64, bool) {
		return 0.1, true
	}

	points, _ := g.TimeSeries(38.0, 104.0, 2019, 2020)
	require.Len(t, points, 2)
	require.Equal(t, 2019, points[0].Year)
	require.Equal(t, 2020, points[1].Year)
}

func TestTimeSeriesSkipsExtractionMisses(t *testing.T) {
	g, root := newTestToolbox(t)
	addSlot(t, root, "2020_01", true)
	addSlot(t, root, "2020_02", true)
	addSlot(t, root, "2020_03", false) // metadata only, no raster

	g.extract = func(path string, lat, lon float64) (float64, bool) {
		if path == "" || strings.Contains(path, "2020_02") {
			return 0, false
		}
		return -0.2, true
	}

	points, stats := g.TimeSeries(38.0, 104.0, 2020, 2020)
	require.Len(t, points, 1)
	require.Equal(t, 1, points[0].Month)
	require.Equal(t, SeriesStats{Min: -0.2, Max: -0.2, Mean: -0.2, Count: 1}, stats)
}

func TestTimeSeriesEmpty(t *testing.T) {
	g, _ := newTestToolbox(t)
	points, stats := g.TimeSeries(38.0, 104.0, 2020, 2020)
	require.Empty(t, points)
	require.Equal(t, SeriesStats{}, stats)
}

func TestSeriesStatistics(t *testing.T) {
	points := []NDVIDataPoint{
		{NDVIValue: 0.1},
		{NDVIValue: 0.5},
		{NDVIValue: 0.3},
	}
	stats := seriesStatistics(points)
	require.Equal(t, 0.1, stats.Min)
	require.Equal(t, 0.5, stats.Max)
	require.InDelta(t, 0.3, stats.Mean, 1e-12)
	require.Equal(t, 3, stats.Count)
}
