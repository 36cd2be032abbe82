package ndvilib

import (
	"math"

	"github.com/tenggeli/ndvilib/log"
	"github.com/tenggeli/ndvilib/utils"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// SampleStep is the stride used to approximate whole-raster statistics:
// every step-th row and column of the band is inspected, which bounds the
// work per query regardless of raster size.
func SampleStep(width, height int) int {
	short := width
	if height < short {
		short = height
	}
	step := short / 1000
	if step < 1 {
		step = 1
	}
	return step
}

// SampleStatistics returns approximate min/max/mean/std over a strided sample
// of the raster's pixels, under the same dequantization and no-data rules as
// point extraction. ok is false when the raster is absent, unreadable or has
// no valid sampled pixel; that is a "no data" signal, not an error.
func (g *NdviToolbox) SampleStatistics(rasterPath string) (stats SampleStats, ok bool) {
	if rasterPath == "" || !utils.FileExists(rasterPath) {
		return
	}
	r, err := g.openRaster(rasterPath)
	if err != nil {
		return
	}
	defer r.ds.Close()

	step := SampleStep(r.width, r.height)
	var samples []float64
	if r.kind == PixelQuantized {
		buf := make([]uint8, r.width*r.height)
		if err = r.band.IO(gdal.IORead, 0, 0, buf, r.width, r.height); err != nil {
			log.Error(g.logTag+"read band failed", zap.String("tif", rasterPath), zap.Error(err))
			return
		}
		samples = strideSample(buf, r.width, r.height, step, func(b uint8) float64 { return float64(b) })
	} else {
		buf := make([]float64, r.width*r.height)
		if err = r.band.IO(gdal.IORead, 0, 0, buf, r.width, r.height); err != nil {
			log.Error(g.logTag+"read band failed", zap.String("tif", rasterPath), zap.Error(err))
			return
		}
		samples = strideSample(buf, r.width, r.height, step, func(v float64) float64 { return v })
	}

	var (
		minV  = math.Inf(1)
		maxV  = math.Inf(-1)
		sum   float64
		sumSq float64
		n     int
	)
	for _, raw := range samples {
		if r.hasNd && raw == r.nodata {
			continue
		}
		v, valid := DequantizePixel(r.kind, raw)
		if !valid {
			continue
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += v
		sumSq += v * v
		n++
	}
	if n == 0 {
		return
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	stats = SampleStats{
		Min:        minV,
		Max:        maxV,
		Mean:       mean,
		Std:        math.Sqrt(variance),
		Count:      n,
		Sampled:    true,
		SampleStep: step,
	}
	return stats, true
}

// MapStatistics is the time-slot addressed form of SampleStatistics.
func (g *NdviToolbox) MapStatistics(year, month int) (stats SampleStats, ok bool) {
	return g.SampleStatistics(g.monthRasterPath(year, month))
}

func strideSample[T any](buf []T, width, height, step int, conv func(T) float64) []float64 {
	out := make([]float64, 0, (height/step+1)*(width/step+1))
	for row := 0; row < height; row += step {
		base := row * width
		for col := 0; col < width; col += step {
			out = append(out, conv(buf[base+col]))
		}
	}
	return out
}
