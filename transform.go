package ndvilib

import (
	"github.com/tenggeli/ndvilib/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// toRasterCoords converts a WGS84 lon/lat query coordinate into the raster's
// own coordinate system. Rasters without a CRS, or with a geographic one, take
// the coordinate as-is. Transform failures fall back to the untransformed
// pair: for read-only queries a best-effort nearest answer beats a hard
// failure.
func (g *NdviToolbox) toRasterCoords(sr *gdal.SpatialRef, lon, lat float64) (x, y float64) {
	x, y = lon, lat
	if sr == nil || sr.Geographic() {
		return
	}
	src, err := g.getWgs84Ref()
	if err != nil {
		return
	}
	trans, err := g.getTransform(sr)
	if err != nil {
		return
	}
	xs := []float64{lon}
	ys := []float64{lat}
	// GDAL 3 keeps EPSG:4326 in its authority-compliant latitude-first axis
	// order, so the transform input must be swapped to keep query coordinates
	// lon/lat ordered end to end. Same for the output when the target CRS is
	// itself lat/long-ordered.
	if src.EPSGTreatsAsLatLong() {
		xs[0], ys[0] = lat, lon
	}
	if err = trans.TransformEx(xs, ys, nil, nil); err != nil {
		log.Warn(g.logTag+"point transform failed, using raw lon/lat", zap.Float64("lon", lon), zap.Float64("lat", lat), zap.Error(err))
		return
	}
	x, y = xs[0], ys[0]
	if sr.EPSGTreatsAsLatLong() {
		x, y = ys[0], xs[0]
	}
	return
}

// rasterIndex maps a point in raster coordinates to (row, col) through the
// inverse of the raster's affine geotransform.
func rasterIndex(gt [6]float64, x, y float64) (row, col int) {
	dx := x - gt[0]
	dy := y - gt[3]
	det := gt[1]*gt[5] - gt[2]*gt[4]
	if det == 0 {
		return -1, -1
	}
	fc := (dx*gt[5] - dy*gt[2]) / det
	fr := (dy*gt[1] - dx*gt[4]) / det
	return floorInt(fr), floorInt(fc)
}

func floorInt(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}
