package ndvilib

import (
	"fmt"

	"github.com/tenggeli/ndvilib/log"

	"go.uber.org/zap"
)

// TimeSeries extracts the NDVI value at one coordinate for every available
// month in the inclusive [startYear, endYear] range, ascending by year then
// month. Months with no data are omitted from the sequence, not emitted as
// nulls; statistics cover the emitted values only.
func (g *NdviToolbox) TimeSeries(lat, lon float64, startYear, endYear int) (points []NDVIDataPoint, stats SeriesStats) {
	points = []NDVIDataPoint{}
	entries := g.ListAvailable()
	for _, e := range entries {
		if e.Year < startYear || e.Year > endYear {
			continue
		}
		val, ok := g.extract(e.Path, lat, lon)
		if !ok {
			continue
		}
		points = append(points, NDVIDataPoint{
			Year:      e.Year,
			Month:     e.Month,
			Date:      fmt.Sprintf(DATE_FORMAT, e.Year, e.Month),
			NDVIValue: val,
			Latitude:  lat,
			Longitude: lon,
		})
	}
	log.Info(g.logTag+"time series extracted", zap.Float64("lat", lat), zap.Float64("lon", lon),
		zap.Int("startYear", startYear), zap.Int("endYear", endYear), zap.Int("points", len(points)))
	stats = seriesStatistics(points)
	return
}

func seriesStatistics(points []NDVIDataPoint) (stats SeriesStats) {
	if len(points) == 0 {
		return
	}
	stats.Min = points[0].NDVIValue
	stats.Max = points[0].NDVIValue
	var sum float64
	for _, p := range points {
		v := p.NDVIValue
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		sum += v
	}
	stats.Count = len(points)
	stats.Mean = sum / float64(len(points))
	return
}
