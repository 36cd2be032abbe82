package ndvilib

import "math"

const (
	// NoDataByte is the reserved quantized value meaning "no valid observation".
	NoDataByte = 0

	// QuantStep is the quantization step size in NDVI units. It is the maximum
	// round-trip error of QuantizeNDVI followed by DequantizeByte.
	QuantStep = 2.0 / 255
)

// PixelKind tags how a raster band stores NDVI, resolved once per open.
type PixelKind uint8

const (
	// PixelQuantized is single-byte storage: 0 is no-data, 1..255 encode (-1,1].
	PixelQuantized PixelKind = iota
	// PixelFloat is raw floating-point NDVI storage.
	PixelFloat
)

// QuantizeNDVI maps an NDVI value to its single-byte code. Values outside
// [-1,1] and NaN map to NoDataByte. Valid values in (-1,1] never collide with
// the sentinel: codes that would round down to 0 are pinned to 1.
func QuantizeNDVI(v float64) uint8 {
	if math.IsNaN(v) || v < -1 || v > 1 {
		return NoDataByte
	}
	b := math.Round((v + 1) / 2 * 255)
	if b < 1 {
		if v > -1 {
			return 1
		}
		return NoDataByte
	}
	return uint8(b)
}

// DequantizeByte maps one byte code back to NDVI. ok is false for the
// no-data sentinel.
func DequantizeByte(b uint8) (v float64, ok bool) {
	if b == NoDataByte {
		return
	}
	return float64(b)/255*2 - 1, true
}

// DequantizePixel applies the per-raster storage variant to one raw sample.
// Quantized storage goes through the byte codec; float storage is used as-is,
// with the same defensive NDVI range check in both cases.
func DequantizePixel(kind PixelKind, raw float64) (v float64, ok bool) {
	if kind == PixelQuantized {
		if raw == NoDataByte {
			return
		}
		v = raw/255*2 - 1
	} else {
		v = raw
	}
	if math.IsNaN(v) || v < -1 || v > 1 {
		return 0, false
	}
	return v, true
}
