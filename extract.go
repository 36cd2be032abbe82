package ndvilib

import (
	"fmt"
	"path/filepath"

	"github.com/tenggeli/ndvilib/log"
	"github.com/tenggeli/ndvilib/utils"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// openedRaster holds what the query paths need from one open dataset, with
// the storage variant resolved once instead of re-inspected per pixel.
type openedRaster struct {
	ds     *gdal.Dataset
	band   gdal.Band
	width  int
	height int
	kind   PixelKind
	nodata float64
	hasNd  bool
}

func (g *NdviToolbox) openRaster(path string) (r openedRaster, err error) {
	ds, err := gdal.Open(path, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", path), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	bands := ds.Bands()
	if len(bands) == 0 {
		ds.Close()
		log.Error(g.logTag+"tif has no band", zap.String("tif", path))
		err = ErrInvalidTif
		return
	}
	r.ds = ds
	r.band = bands[0]
	st := r.band.Structure()
	r.width = st.SizeX
	r.height = st.SizeY
	switch st.DataType {
	case gdal.Byte, gdal.Int16, gdal.UInt16, gdal.Int32, gdal.UInt32:
		r.kind = PixelQuantized
	default:
		r.kind = PixelFloat
	}
	r.nodata, r.hasNd = r.band.NoData()
	return
}

func (r openedRaster) spatialRef() *gdal.SpatialRef {
	if r.ds.Projection() == "" {
		return nil
	}
	return r.ds.SpatialRef()
}

// ExtractPoint reads the NDVI value of one quantized (or raw float) raster at
// a WGS84 coordinate. Exactly one pixel window is read. Every miss condition
// (absent file, out-of-bounds point, no-data pixel, out-of-range value) and
// every read error collapses to ok=false; queries never fail hard.
func (g *NdviToolbox) ExtractPoint(rasterPath string, lat, lon float64) (val float64, ok bool) {
	if rasterPath == "" || !utils.FileExists(rasterPath) {
		return
	}
	r, err := g.openRaster(rasterPath)
	if err != nil {
		return
	}
	defer r.ds.Close()
	gt, err := r.ds.GeoTransform()
	if err != nil {
		log.Error(g.logTag+"tif has no geotransform", zap.String("tif", rasterPath), zap.Error(err))
		return
	}
	x, y := g.toRasterCoords(r.spatialRef(), lon, lat)
	row, col := rasterIndex(gt, x, y)
	if row < 0 || row >= r.height || col < 0 || col >= r.width {
		return
	}
	buf := make([]float64, 1)
	if err = r.band.IO(gdal.IORead, col, row, buf, 1, 1); err != nil {
		log.Error(g.logTag+"read pixel window failed", zap.String("tif", rasterPath), zap.Int("row", row), zap.Int("col", col), zap.Error(err))
		return
	}
	raw := buf[0]
	if r.hasNd && raw == r.nodata {
		return
	}
	return DequantizePixel(r.kind, raw)
}

// Value looks up the NDVI value for one time slot at a coordinate.
func (g *NdviToolbox) Value(year, month int, lat, lon float64) (val float64, ok bool) {
	path := g.monthRasterPath(year, month)
	if !utils.FileExists(path) {
		return
	}
	return g.ExtractPoint(path, lat, lon)
}

func (g *NdviToolbox) monthRasterPath(year, month int) string {
	return filepath.Join(g.cfg.ProcessedDataPath, fmt.Sprintf(MONTH_DIR_FORMAT, year, month), PROCESSED_TIF_NAME)
}
