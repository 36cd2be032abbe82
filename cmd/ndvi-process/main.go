package main

import (
	"os"

	"github.com/tenggeli/ndvilib"
	"github.com/tenggeli/ndvilib/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// Batch encoder: converts every raw NDVI tif under NDVI_RAW_PATH into a
// quantized slot under NDVI_PROCESSED_PATH, then rebuilds the time series
// index. Safe to re-run; already-encoded slots are skipped.
func main() {
	defer log.Sync()
	gdal.RegisterAll()

	cfg := ndvilib.LoadConfig()
	g := ndvilib.NewNdviToolbox(cfg)

	successful, failed := g.EncodeDir(cfg.RawDataPath, cfg.ProcessedDataPath)
	if successful == 0 {
		log.Warn("no files encoded", zap.Int("failed", failed))
		os.Exit(1)
	}
	if _, err := ndvilib.BuildIndex(cfg.ProcessedDataPath); err != nil {
		log.Error("index build failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("processing complete", zap.Int("successful", successful), zap.Int("failed", failed))
}
