// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"testing"

	"github.com/maruel/flirone/flirtest"
)

func TestDecodePackets_wrongLength(t *testing.T) {
	if _, ok := DecodePackets(make([]byte, 123)); ok {
		t.Fatal("expected drop on wrong length")
	}
}

func TestDecodePackets_exact(t *testing.T) {
	img, ok := DecodePackets(flirtest.BuildPackets(100))
	if !ok {
		t.Fatal("expected a decoded image")
	}
	for y := 0; y < ThermalHeight; y++ {
		for x := 0; x < ThermalWidth; x++ {
			want := (100 + uint16(y) + uint16(x)) & 0x3FFF
			if got := img.Gray16At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestDecodePackets_fillsSmallGaps(t *testing.T) {
	img, ok := DecodePackets(flirtest.BuildPackets(50, 0, 30))
	if !ok {
		t.Fatal("expected decode with <=2 missing rows to succeed")
	}
	// Row 0 missing with no preceding row falls back to the nearest following
	// valid row, which is row 1.
	want := (50 + uint16(1)) & 0x3FFF
	for x := 0; x < ThermalWidth; x++ {
		if got := img.Gray16At(x, 0); got != want+uint16(x) {
			t.Fatalf("row 0 col %d = %d, want %d", x, got, want+uint16(x))
		}
	}
	// Row 30 missing copies the nearest preceding row, 29.
	wantRow29 := (50 + uint16(29)) & 0x3FFF
	for x := 0; x < ThermalWidth; x++ {
		if got := img.Gray16At(x, 30); got != wantRow29+uint16(x) {
			t.Fatalf("row 30 col %d = %d, want %d", x, got, wantRow29+uint16(x))
		}
	}
}

func TestDecodePackets_tooManyMissingRowsDrops(t *testing.T) {
	if _, ok := DecodePackets(flirtest.BuildPackets(1, 0, 1, 2)); ok {
		t.Fatal("expected drop when more than 2 rows are missing")
	}
}
