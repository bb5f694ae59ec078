// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float32
		want int16
	}{
		{"zero", 0.0, 0},
		{"positive max", 1.0, 32767},
		{"negative max", -1.0, -32767},
		{"half", 0.5, 16383},
		{"clamp above", 2.5, 32767},
		{"clamp below", -2.5, -32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.in); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestInt16ToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int16
		want float32
	}{
		{"zero", 0, 0.0},
		{"min", -32768, -1.0},
		{"half", 16384, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Int16ToFloat32(tt.in); got != tt.want {
				t.Errorf("Int16ToFloat32(%d) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	// Converting there and back stays within two quantization steps: one
	// for the truncation in Float32ToInt16, one for encoding with 32767 but
	// decoding with 32768.
	for _, x := range []float32{-0.99, -0.5, -0.001, 0, 0.001, 0.5, 0.99} {
		got := Int16ToFloat32(Float32ToInt16(x))
		diff := got - x
		if diff < 0 {
			diff = -diff
		}
		if diff > 2.0/32768 {
			t.Errorf("round trip of %v drifted to %v", x, got)
		}
	}
}
