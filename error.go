package ndvilib

import "errors"

var (
	ErrInvalidTif       = errors.New("invalid tif")
	ErrTifReadFailed    = errors.New("tif read failed")
	ErrTifWriteFailed   = errors.New("tif write failed")
	ErrCorruptedTif     = errors.New("tif failed integrity check")
	ErrOutsideRegion    = errors.New("tif bounds outside target region")
	ErrOutsideYearRange = errors.New("tif year outside supported range")
	ErrBadFilename      = errors.New("tif filename has no year_month tokens")
	ErrNoProcessedDir   = errors.New("processed data dir does not exist")
)
