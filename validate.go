package ndvilib

import (
	"math"
	"path/filepath"
	"sort"

	"github.com/tenggeli/ndvilib/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// FileReport is the per-file result of a raw data validation pass.
type FileReport struct {
	Filename          string     `json:"filename"`
	Width             int        `json:"width"`
	Height            int        `json:"height"`
	Crs               string     `json:"crs"`
	Bounds            [4]float64 `json:"bounds"`
	PixelCount        int        `json:"pixel_count"`
	ValidPixelCount   int        `json:"valid_pixel_count"`
	NodataCount       int        `json:"nodata_count"`
	InvalidRangeCount int        `json:"invalid_range_count"`
	MinValue          *float64   `json:"min_value"`
	MaxValue          *float64   `json:"max_value"`
	MeanValue         *float64   `json:"mean_value"`
	StdValue          *float64   `json:"std_value"`
	Status            string     `json:"status"`
	Error             string     `json:"error,omitempty"`
}

// ValidateRaster checks one raw NDVI raster for integrity, completeness and
// value range, reporting problems in the record instead of failing.
func (g *NdviToolbox) ValidateRaster(path string) (report FileReport) {
	report.Filename = filepath.Base(path)
	r, err := g.openRaster(path)
	if err != nil {
		report.Status = "error"
		report.Error = err.Error()
		return
	}
	defer r.ds.Close()
	report.Width = r.width
	report.Height = r.height
	report.Crs = r.ds.Projection()
	if bounds, e := r.ds.Bounds(); e == nil {
		report.Bounds = bounds
	}
	data := make([]float64, r.width*r.height)
	if err = r.band.IO(gdal.IORead, 0, 0, data, r.width, r.height); err != nil {
		report.Status = "error"
		report.Error = err.Error()
		return
	}
	report.PixelCount = len(data)
	for _, v := range data {
		switch {
		case math.IsNaN(v):
			report.NodataCount++
		case v < -1 || v > 1:
			report.InvalidRangeCount++
		default:
			report.ValidPixelCount++
		}
	}
	stats := computeRasterStats(data)
	report.MinValue = stats.Min
	report.MaxValue = stats.Max
	report.MeanValue = stats.Mean
	report.StdValue = stats.Std
	report.Status = "success"
	return
}

// ValidateDir validates every .tif under dir in sorted order.
func (g *NdviToolbox) ValidateDir(dir string) (reports []FileReport) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+FILE_EXT_TIF))
	if err != nil || len(files) == 0 {
		log.Warn(g.logTag+"no tif files to validate", zap.String("dir", dir), zap.Error(err))
		return
	}
	sort.Strings(files)
	reports = make([]FileReport, 0, len(files))
	for _, f := range files {
		reports = append(reports, g.ValidateRaster(f))
	}
	return
}
