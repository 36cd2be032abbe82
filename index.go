package ndvilib

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tenggeli/ndvilib/log"
	"github.com/tenggeli/ndvilib/utils"

	"go.uber.org/zap"
)

// BuildIndex scans every encoded slot under processedRoot and persists an
// ordered (year, month) index of its metadata records to index.json. The
// index feeds downstream reporting; per-request serving reads slots directly.
func BuildIndex(processedRoot string) (entries []IndexEntry, err error) {
	dirs, err := os.ReadDir(processedRoot)
	if err != nil {
		log.Error("BuildIndex: processed root not readable", zap.String("path", processedRoot), zap.Error(err))
		err = ErrNoProcessedDir
		return
	}
	entries = []IndexEntry{}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		year, month, ok := utils.ParseMonthDir(d.Name())
		if !ok {
			continue
		}
		metaPath := filepath.Join(processedRoot, d.Name(), METADATA_JSON_NAME)
		buf, e := os.ReadFile(metaPath)
		if e != nil {
			continue
		}
		var stats RasterStats
		if e = json.Unmarshal(buf, &stats); e != nil {
			log.Warn("BuildIndex: bad metadata record, skipping slot", zap.String("path", metaPath), zap.Error(e))
			continue
		}
		entries = append(entries, IndexEntry{
			Year:       year,
			Month:      month,
			Date:       fmt.Sprintf(DATE_FORMAT, year, month),
			Path:       d.Name(),
			Statistics: stats,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Year != entries[j].Year {
			return entries[i].Year < entries[j].Year
		}
		return entries[i].Month < entries[j].Month
	})
	index := IndexFile{
		Created: time.Now().Format(time.RFC3339),
		Count:   len(entries),
		Data:    entries,
	}
	if err = writeJSONFile(filepath.Join(processedRoot, INDEX_JSON_NAME), index); err != nil {
		log.Error("BuildIndex: write index failed", zap.Error(err))
		return
	}
	log.Info("BuildIndex: index written", zap.Int("count", len(entries)))
	return
}
