package ndvilib

// RasterStats is the metadata record persisted next to each quantized raster.
// Statistics cover only pixels in valid NDVI range and not flagged no-data;
// they are null when the source had no valid pixel at all.
type RasterStats struct {
	Min    *float64   `json:"min"`
	Max    *float64   `json:"max"`
	Mean   *float64   `json:"mean"`
	Std    *float64   `json:"std"`
	Count  int        `json:"count"`
	Bounds [4]float64 `json:"bounds"` // left, bottom, right, top
	Crs    string     `json:"crs"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
}

// CatalogEntry identifies one month's on-disk artifact. An empty Path means
// the metadata record exists but the quantized raster does not.
type CatalogEntry struct {
	Year  int
	Month int
	Path  string
}

// NDVIDataPoint is one observation in a time series response.
type NDVIDataPoint struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Date      string  `json:"date"`
	NDVIValue float64 `json:"ndvi_value"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SeriesStats summarizes the emitted values of one time series query.
type SeriesStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// SampleStats is the strided whole-raster approximation returned by the
// statistics sampler.
type SampleStats struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	Count      int     `json:"count"`
	Sampled    bool    `json:"sampled"`
	SampleStep int     `json:"sample_step"`
}

// IndexEntry is one record of the persisted time series index.
type IndexEntry struct {
	Year       int         `json:"year"`
	Month      int         `json:"month"`
	Date       string      `json:"date"`
	Path       string      `json:"path"`
	Statistics RasterStats `json:"statistics"`
}

// IndexFile is the index.json payload consumed by downstream reporting.
type IndexFile struct {
	Created string       `json:"created"`
	Count   int          `json:"count"`
	Data    []IndexEntry `json:"data"`
}
