package ndvilib

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	FILE_EXT_TIF       = ".tif"
	FILE_EXT_JSON      = ".json"
	PROCESSED_TIF_NAME = "processed.tif"
	METADATA_JSON_NAME = "metadata.json"
	INDEX_JSON_NAME    = "index.json"

	WGS84_SRID = 4326

	// 腾格里沙漠目标区域范围（经纬度）
	REGION_WEST  = 103.0
	REGION_SOUTH = 37.5
	REGION_EAST  = 105.2
	REGION_NORTH = 39.0

	MIN_DATA_YEAR = 2015
	MAX_DATA_YEAR = 2024

	MONTH_DIR_FORMAT = "%d_%02d"
	DATE_FORMAT      = "%d-%02d-01"

	TMP_TIF = "quant_%s.tif"
)

// Region is a west/south/east/north rectangle in WGS84 degrees.
type Region struct {
	West  float64
	South float64
	East  float64
	North float64
}

// Overlaps reports whether a raster bounds rectangle [left,bottom,right,top]
// intersects the region.
func (r Region) Overlaps(left, bottom, right, top float64) bool {
	return left < r.East && right > r.West && bottom < r.North && top > r.South
}

type Config struct {
	RawDataPath       string
	ProcessedDataPath string
	Region            Region
	MinYear           int
	MaxYear           int
}

// LoadConfig reads settings from the environment, consulting an optional .env
// file first. Unset variables fall back to the built-in Tenggeli defaults.
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		RawDataPath:       envStr("NDVI_RAW_PATH", "data/raw/tenggeli_data"),
		ProcessedDataPath: envStr("NDVI_PROCESSED_PATH", "data/processed"),
		Region: Region{
			West:  envFloat("NDVI_REGION_WEST", REGION_WEST),
			South: envFloat("NDVI_REGION_SOUTH", REGION_SOUTH),
			East:  envFloat("NDVI_REGION_EAST", REGION_EAST),
			North: envFloat("NDVI_REGION_NORTH", REGION_NORTH),
		},
		MinYear: envInt("NDVI_MIN_YEAR", MIN_DATA_YEAR),
		MaxYear: envInt("NDVI_MAX_YEAR", MAX_DATA_YEAR),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
