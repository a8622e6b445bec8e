// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import "image"

// AGC slice geometry: the wire buffer is a GPU-aligned 256x128 padded frame;
// only the centered 160x120 region carries real pixels.
const (
	agcPaddedW = 256
	agcPaddedH = 128
	agcActiveW = 160
	agcActiveH = 120
	agcLen     = agcPaddedW * agcPaddedH

	agcY0 = (agcPaddedH - agcActiveH) / 2 // 4
	agcX0 = (agcPaddedW - agcActiveW) / 2 // 48
)

// DecodeAGC decodes one 32,768-byte AGC slice into the active 120x160
// region of the padded 128x256 buffer it carries.
//
// The returned image is always a copy, independent of raw's lifetime.
// It fails with *MalformedSlice if raw is not exactly 32,768 bytes.
func DecodeAGC(raw []byte) (*image.Gray, error) {
	if len(raw) != agcLen {
		return nil, malformed(Agc, "want %d bytes, got %d", agcLen, len(raw))
	}

	img := image.NewGray(image.Rect(0, 0, agcActiveW, agcActiveH))
	for y := 0; y < agcActiveH; y++ {
		src := raw[(agcY0+y)*agcPaddedW+agcX0 : (agcY0+y)*agcPaddedW+agcX0+agcActiveW]
		copy(img.Pix[y*img.Stride:y*img.Stride+agcActiveW], src)
	}
	return img, nil
}
