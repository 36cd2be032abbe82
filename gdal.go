package ndvilib

import (
	"sync"

	"github.com/tenggeli/ndvilib/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// NdviToolbox bundles the decoding components serving point, time-series and
// statistics queries over encoded monthly NDVI rasters, plus the offline
// encoder that produces them. Raster handles are opened and released inside
// each call; the cached month catalog is the only shared state.
type NdviToolbox struct {
	cfg      Config
	wgs84    *gdal.SpatialRef
	transMap map[string]*gdal.Transform
	tLock    sync.Mutex
	catalog  []CatalogEntry
	catDone  bool
	catLock  sync.Mutex
	extract  func(rasterPath string, lat, lon float64) (float64, bool)
	logTag   string
}

func NewNdviToolbox(cfg Config) *NdviToolbox {
	g := &NdviToolbox{
		cfg:      cfg,
		transMap: map[string]*gdal.Transform{},
		logTag:   "NdviToolbox:",
	}
	g.extract = g.ExtractPoint
	return g
}

// 获取WGS84坐标系（可复用，故无需回收）
func (g *NdviToolbox) getWgs84Ref() (ref *gdal.SpatialRef, err error) {
	g.tLock.Lock()
	defer g.tLock.Unlock()
	if g.wgs84 != nil {
		ref = g.wgs84
		return
	}
	if ref, err = gdal.NewSpatialRefFromEPSG(WGS84_SRID); err != nil {
		log.Error(g.logTag+"create wgs84 ref failed", zap.Error(err))
		return
	}
	g.wgs84 = ref
	return
}

// 获取WGS84至目标坐标系的变换（按WKT缓存复用）
func (g *NdviToolbox) getTransform(sr *gdal.SpatialRef) (trans *gdal.Transform, err error) {
	wkt, err := sr.WKT()
	if err != nil {
		return
	}
	src, err := g.getWgs84Ref()
	if err != nil {
		return
	}
	g.tLock.Lock()
	defer g.tLock.Unlock()
	trans, ok := g.transMap[wkt]
	if ok {
		return
	}
	if trans, err = gdal.NewTransform(src, sr); err != nil {
		log.Error(g.logTag+"create coord transform failed", zap.Error(err))
		return
	}
	g.transMap[wkt] = trans
	return
}
