package utils

import (
	"os"
	"path/filepath"
	"strings"
)

func GetFilenameWithoutExt(path string) (name string) {
	name = filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(path))
	return
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, os.ModePerm)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ParseYearMonthTokens extracts year and month from a raw raster filename of
// the form prefix_prefix_YYYY_MM.tif: the 3rd and 4th underscore-delimited
// tokens of the base name. This naming is a contract with the acquisition
// pipeline.
func ParseYearMonthTokens(path string) (year, month int, ok bool) {
	parts := strings.Split(GetFilenameWithoutExt(path), "_")
	if len(parts) < 4 {
		return
	}
	year = StrToInt(parts[2])
	month = StrToInt(parts[3])
	ok = year > 0 && month >= 1 && month <= 12
	return
}

// ParseMonthDir extracts year and month from a processed slot directory name
// like 2020_01.
func ParseMonthDir(name string) (year, month int, ok bool) {
	parts := strings.Split(name, "_")
	if len(parts) != 2 {
		return
	}
	year = StrToInt(parts[0])
	month = StrToInt(parts[1])
	ok = year > 0 && month >= 1 && month <= 12
	return
}
