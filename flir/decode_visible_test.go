// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/maruel/flirone/flirtest"
)

func TestVisibleDecoder_singleChunk(t *testing.T) {
	chunks := flirtest.BuildVisible(8, 8, 200, 1<<20, "")
	assert.Len(t, chunks, 1)

	d := NewVisibleDecoder()
	res := d.Decode(chunks[0])
	assert.True(t, res.Ready())
	assert.NotNil(t, res.Image)
}

func TestVisibleDecoder_withTelemetryTail(t *testing.T) {
	tail := flirtest.StatusJSON("closed", "idle", 301, 295)
	chunks := flirtest.BuildVisible(8, 8, 64, 1<<20, tail)

	d := NewVisibleDecoder()
	var res VisibleResult
	for _, c := range chunks {
		res = d.Decode(c)
	}
	assert.True(t, res.Ready())
	assert.NotNil(t, res.Telemetry)
	assert.Equal(t, "closed", *res.Telemetry.ShutterState)
}

func TestVisibleDecoder_droppedOnCorruptJPEG(t *testing.T) {
	d := NewVisibleDecoder()
	junk := append([]byte{0xFF, 0xD8, 0xFF, 0xC0, 0x00, 0x11}, bytes.Repeat([]byte{0x00}, 20)...)
	junk = append(junk, jpegEOI...)
	res := d.Decode(junk)
	assert.True(t, res.Dropped())
}

// TestVisibleDecoder_spanningPartitions verifies invariant 8: however a
// valid JPEG byte stream is split into consecutive slices, the decoder
// emits exactly one image equal to decoding the whole stream at once.
func TestVisibleDecoder_spanningPartitions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(4, 32).Draw(t, "w")
		h := rapid.IntRange(4, 32).Draw(t, "h")
		fill := uint8(rapid.IntRange(0, 255).Draw(t, "fill"))

		img := image.NewGray(image.Rect(0, 0, w, h))
		for i := range img.Pix {
			img.Pix[i] = fill
		}
		var whole bytes.Buffer
		assert.NoError(t, jpeg.Encode(&whole, img, nil))
		full := whole.Bytes()

		n := rapid.IntRange(1, len(full)).Draw(t, "chunkSize")
		var parts [][]byte
		for i := 0; i < len(full); i += n {
			end := i + n
			if end > len(full) {
				end = len(full)
			}
			parts = append(parts, full[i:end])
		}

		want, err := jpeg.Decode(bytes.NewReader(full))
		assert.NoError(t, err)

		d := NewVisibleDecoder()
		var got VisibleResult
		readyCount := 0
		for _, p := range parts {
			r := d.Decode(p)
			if r.Ready() {
				readyCount++
				got = r
			}
		}
		assert.Equal(t, 1, readyCount)
		assertImagesEqual(t, want, got.Image)
	})
}

func assertImagesEqual(t *rapid.T, want, got image.Image) {
	wg, ok1 := want.(*image.Gray)
	gg, ok2 := got.(*image.Gray)
	if !ok1 || !ok2 {
		t.Fatalf("expected both images to decode as *image.Gray, got %T and %T", want, got)
	}
	if wg.Bounds() != gg.Bounds() || !bytes.Equal(wg.Pix, gg.Pix) {
		t.Fatalf("decoded image mismatch between whole-stream and chunked decode")
	}
}
