package ndvilib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantizeRoundTrip(t *testing.T) {
	// Sweep valid NDVI away from the -1 edge; rounding keeps the error
	// within half a quantization step.
	for v := -0.99; v <= 1.0; v += 0.0001 {
		b := QuantizeNDVI(v)
		require.NotEqual(t, uint8(NoDataByte), b, "valid value %f must not hit the sentinel", v)
		got, ok := DequantizeByte(b)
		require.True(t, ok)
		require.InDelta(t, v, got, QuantStep, "round trip of %f", v)
	}
}

func TestQuantizeSentinelReserved(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want uint8
	}{
		{"nan", math.NaN(), NoDataByte},
		{"below range", -1.5, NoDataByte},
		{"above range", 1.5, NoDataByte},
		{"exact low edge", -1, NoDataByte},
		{"just above low edge", -0.9999, 1},
		{"zero", 0, 128},
		{"exact high edge", 1, 255},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, QuantizeNDVI(tc.in))
		})
	}
}

func TestDequantizeByteSentinel(t *testing.T) {
	_, ok := DequantizeByte(NoDataByte)
	require.False(t, ok)

	v, ok := DequantizeByte(255)
	require.True(t, ok)
	require.InDelta(t, 1.0, v, 1e-12)
}

func TestDequantizePixel(t *testing.T) {
	// Quantized storage: sentinel and byte mapping.
	_, ok := DequantizePixel(PixelQuantized, 0)
	require.False(t, ok)
	v, ok := DequantizePixel(PixelQuantized, 128)
	require.True(t, ok)
	require.InDelta(t, 128.0/255*2-1, v, 1e-12)

	// Float storage: value passes through, defensive range check applies.
	v, ok = DequantizePixel(PixelFloat, 0.5)
	require.True(t, ok)
	require.Equal(t, 0.5, v)
	_, ok = DequantizePixel(PixelFloat, 1.2)
	require.False(t, ok)
	_, ok = DequantizePixel(PixelFloat, math.NaN())
	require.False(t, ok)
}
