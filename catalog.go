package ndvilib

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/tenggeli/ndvilib/log"
	"github.com/tenggeli/ndvilib/utils"

	"go.uber.org/zap"
)

// ListAvailable returns the encoded time slots under the processed root,
// sorted by (year, month). A slot directory qualifies when it holds either
// the quantized raster or only its metadata record; metadata-only slots get
// an empty Path so callers can report presence without pixels.
//
// The listing is computed once per process and cached with no invalidation:
// directory scans are cheap relative to request volume and staleness is
// bounded by deployment cadence. Call RefreshCatalog for an explicit reload.
func (g *NdviToolbox) ListAvailable() []CatalogEntry {
	g.catLock.Lock()
	defer g.catLock.Unlock()
	if g.catDone {
		return g.catalog
	}
	g.catalog = g.scanProcessedDir()
	g.catDone = true
	return g.catalog
}

// RefreshCatalog drops the cached listing and rescans the processed root.
func (g *NdviToolbox) RefreshCatalog() []CatalogEntry {
	g.catLock.Lock()
	defer g.catLock.Unlock()
	g.catalog = g.scanProcessedDir()
	g.catDone = true
	return g.catalog
}

func (g *NdviToolbox) scanProcessedDir() (entries []CatalogEntry) {
	entries = []CatalogEntry{}
	dirs, err := os.ReadDir(g.cfg.ProcessedDataPath)
	if err != nil {
		log.Warn(g.logTag+"processed data path not readable", zap.String("path", g.cfg.ProcessedDataPath), zap.Error(err))
		return
	}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		year, month, ok := utils.ParseMonthDir(d.Name())
		if !ok {
			continue
		}
		slotDir := filepath.Join(g.cfg.ProcessedDataPath, d.Name())
		tifPath := filepath.Join(slotDir, PROCESSED_TIF_NAME)
		metaPath := filepath.Join(slotDir, METADATA_JSON_NAME)
		if utils.FileExists(tifPath) {
			entries = append(entries, CatalogEntry{Year: year, Month: month, Path: tifPath})
		} else if utils.FileExists(metaPath) {
			entries = append(entries, CatalogEntry{Year: year, Month: month, Path: ""})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Year != entries[j].Year {
			return entries[i].Year < entries[j].Year
		}
		return entries[i].Month < entries[j].Month
	})
	log.Info(g.logTag+"scanned processed slots", zap.Int("count", len(entries)))
	return
}
