package ndvilib

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tenggeli/ndvilib/log"
	"github.com/tenggeli/ndvilib/utils"

	gdal "github.com/airbusgeo/godal"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	integrityRetries   = 3
	integrityRetryWait = 500 * time.Millisecond
	integrityProbeSize = 10
)

// Encode converts one raw floating-point NDVI raster into the quantized
// single-byte slot artifact plus its metadata record. The source must pass an
// integrity probe, cover the configured target region and carry a supported
// year in its filename. A non-nil error names the skip reason; callers treat
// it as a per-file skip, never as a batch abort.
//
// Quantization maps valid NDVI (-1,1] onto bytes 1..255 with byte 0 reserved
// for no-data; the step size QuantStep (2/255 ≈ 0.00784 NDVI units) is the
// maximum round-trip error of an encoded pixel.
func (g *NdviToolbox) Encode(srcPath, outDir string) (stats *RasterStats, err error) {
	// 文件名校验为纯逻辑，先于任何栅格I/O
	year, month, parsed := utils.ParseYearMonthTokens(srcPath)
	if !parsed {
		log.Warn(g.logTag+"skip tif without year_month filename tokens", zap.String("tif", srcPath))
		err = ErrBadFilename
		return
	}
	if year < g.cfg.MinYear || year > g.cfg.MaxYear {
		log.Warn(g.logTag+"skip tif outside supported year range", zap.String("tif", srcPath),
			zap.Int("year", year), zap.Int("minYear", g.cfg.MinYear), zap.Int("maxYear", g.cfg.MaxYear))
		err = ErrOutsideYearRange
		return
	}
	if err = g.checkTifIntegrity(srcPath); err != nil {
		return
	}
	r, err := g.openRaster(srcPath)
	if err != nil {
		return
	}
	defer r.ds.Close()
	bounds, err := r.ds.Bounds()
	if err != nil {
		log.Warn(g.logTag+"skip tif without bounds", zap.String("tif", srcPath), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	if !g.cfg.Region.Overlaps(bounds[0], bounds[1], bounds[2], bounds[3]) {
		log.Warn(g.logTag+"skip tif outside target region", zap.String("tif", srcPath),
			zap.Float64s("bounds", bounds[:]))
		err = ErrOutsideRegion
		return
	}
	gt, err := r.ds.GeoTransform()
	if err != nil {
		log.Warn(g.logTag+"skip tif without geotransform", zap.String("tif", srcPath), zap.Error(err))
		err = ErrInvalidTif
		return
	}

	data := make([]float64, r.width*r.height)
	if err = r.band.IO(gdal.IORead, 0, 0, data, r.width, r.height); err != nil {
		log.Warn(g.logTag+"skip unreadable tif", zap.String("tif", srcPath), zap.Error(err))
		err = ErrTifReadFailed
		return
	}

	stats = computeRasterStats(data)
	stats.Bounds = bounds
	stats.Crs = r.ds.Projection()
	stats.Width = r.width
	stats.Height = r.height

	slotDir := filepath.Join(outDir, fmt.Sprintf(MONTH_DIR_FORMAT, year, month))
	if err = utils.EnsureDir(slotDir); err != nil {
		log.Warn(g.logTag+"create slot dir failed", zap.String("dir", slotDir), zap.Error(err))
		return nil, ErrTifWriteFailed
	}
	// 即使后续栅格写入失败，也先落盘元数据，保证时间槽可被发现
	if err = writeJSONFile(filepath.Join(slotDir, METADATA_JSON_NAME), stats); err != nil {
		log.Warn(g.logTag+"write metadata failed", zap.String("dir", slotDir), zap.Error(err))
		return nil, ErrTifWriteFailed
	}

	quantized := make([]uint8, len(data))
	for i, v := range data {
		quantized[i] = QuantizeNDVI(v)
	}
	if err = g.writeQuantizedTif(r.ds, gt, quantized, r.width, r.height, filepath.Join(slotDir, PROCESSED_TIF_NAME)); err != nil {
		log.Warn(g.logTag+"write quantized tif failed", zap.String("tif", srcPath), zap.Error(err))
		return nil, ErrTifWriteFailed
	}
	log.Info(g.logTag+"encoded tif", zap.String("tif", srcPath), zap.Int("year", year),
		zap.Int("month", month), zap.Int("validPixels", stats.Count))
	return stats, nil
}

// writeQuantizedTif persists the byte grid as an LZW-compressed single-band
// GTiff carrying the source's CRS and transform, via a temp name so a partial
// write never shows up as a finished slot.
func (g *NdviToolbox) writeQuantizedTif(src *gdal.Dataset, gt [6]float64, quantized []uint8, width, height int, outPath string) (err error) {
	tmpPath := filepath.Join(filepath.Dir(outPath), fmt.Sprintf(TMP_TIF, uuid.NewString()))
	ods, err := gdal.Create(gdal.GTiff, tmpPath, 1, gdal.Byte, width, height,
		gdal.CreationOption("COMPRESS=LZW"))
	if err != nil {
		return ErrTifWriteFailed
	}
	defer os.Remove(tmpPath)
	if err = ods.SetGeoTransform(gt); err != nil {
		ods.Close()
		return ErrTifWriteFailed
	}
	if sr := src.SpatialRef(); src.Projection() != "" {
		if err = ods.SetSpatialRef(sr); err != nil {
			ods.Close()
			return ErrTifWriteFailed
		}
	}
	oband := ods.Bands()[0]
	if err = oband.SetNoData(NoDataByte); err != nil {
		ods.Close()
		return ErrTifWriteFailed
	}
	if err = oband.IO(gdal.IOWrite, 0, 0, quantized, width, height); err != nil {
		ods.Close()
		return ErrTifWriteFailed
	}
	if err = ods.Close(); err != nil {
		return ErrTifWriteFailed
	}
	return os.Rename(tmpPath, outPath)
}

// EncodeDir runs the encoder over every .tif in inputDir in sorted order.
// Already-encoded slots are skipped, making a batch re-run resumable; each
// file's encode is idempotent and independent.
func (g *NdviToolbox) EncodeDir(inputDir, outDir string) (successful, failed int) {
	files, err := filepath.Glob(filepath.Join(inputDir, "*"+FILE_EXT_TIF))
	if err != nil || len(files) == 0 {
		log.Warn(g.logTag+"no tif files found", zap.String("dir", inputDir), zap.Error(err))
		return
	}
	sort.Strings(files)
	log.Info(g.logTag+"start encode batch", zap.String("dir", inputDir), zap.Int("files", len(files)))
	for _, f := range files {
		if year, month, ok := utils.ParseYearMonthTokens(f); ok {
			slotTif := filepath.Join(outDir, fmt.Sprintf(MONTH_DIR_FORMAT, year, month), PROCESSED_TIF_NAME)
			if utils.FileExists(slotTif) {
				log.Info(g.logTag+"slot already encoded, skipping", zap.String("tif", f))
				successful++
				continue
			}
		}
		if _, err := g.Encode(f, outDir); err != nil {
			failed++
		} else {
			successful++
		}
	}
	log.Info(g.logTag+"encode batch done", zap.Int("successful", successful), zap.Int("failed", failed))
	return
}

// checkTifIntegrity probes the raster's metadata and a small corner window,
// retrying to absorb transient I/O errors before declaring the file corrupt.
func (g *NdviToolbox) checkTifIntegrity(path string) error {
	for attempt := 1; attempt <= integrityRetries; attempt++ {
		if err := probeTif(path); err == nil {
			return nil
		} else if attempt < integrityRetries {
			log.Warn(g.logTag+"integrity probe failed, retrying", zap.String("tif", path),
				zap.Int("attempt", attempt), zap.Error(err))
			time.Sleep(integrityRetryWait)
		} else {
			log.Warn(g.logTag+"skip corrupted tif", zap.String("tif", path), zap.Error(err))
		}
	}
	return ErrCorruptedTif
}

func probeTif(path string) (err error) {
	ds, err := gdal.Open(path, gdal.RasterOnly())
	if err != nil {
		return
	}
	defer ds.Close()
	if _, err = ds.Bounds(); err != nil {
		return
	}
	bands := ds.Bands()
	if len(bands) == 0 {
		return ErrInvalidTif
	}
	st := bands[0].Structure()
	w := minInt(integrityProbeSize, st.SizeX)
	h := minInt(integrityProbeSize, st.SizeY)
	buf := make([]float64, w*h)
	return bands[0].IO(gdal.IORead, 0, 0, buf, w, h)
}

func computeRasterStats(data []float64) *RasterStats {
	var (
		minV  = math.Inf(1)
		maxV  = math.Inf(-1)
		sum   float64
		sumSq float64
		n     int
	)
	for _, v := range data {
		if math.IsNaN(v) || v < -1 || v > 1 {
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
	stats := &RasterStats{Count: n}
	if n > 0 {
		mean := sum / float64(n)
		variance := sumSq/float64(n) - mean*mean
		if variance < 0 {
			variance = 0
		}
		std := math.Sqrt(variance)
		stats.Min = &minV
		stats.Max = &maxV
		stats.Mean = &mean
		stats.Std = &std
	}
	return stats
}

func writeJSONFile(path string, v any) (err error) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	return os.WriteFile(path, buf, os.ModePerm)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
