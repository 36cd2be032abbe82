package main

import (
	"encoding/json"
	"os"

	"github.com/tenggeli/ndvilib"
	"github.com/tenggeli/ndvilib/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// Validation report over the raw data directory: per-file integrity, pixel
// counts and value-range statistics, emitted as JSON on stdout.
func main() {
	defer log.Sync()
	gdal.RegisterAll()

	cfg := ndvilib.LoadConfig()
	g := ndvilib.NewNdviToolbox(cfg)

	reports := g.ValidateDir(cfg.RawDataPath)
	if len(reports) == 0 {
		log.Warn("no tif files found", zap.String("dir", cfg.RawDataPath))
		os.Exit(1)
	}
	errors := 0
	for _, r := range reports {
		if r.Status != "success" {
			errors++
		}
	}
	log.Info("validation complete", zap.Int("files", len(reports)), zap.Int("errors", errors))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		log.Error("report encode failed", zap.Error(err))
		os.Exit(1)
	}
}
