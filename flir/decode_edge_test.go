// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/maruel/flirone/flirtest"
)

func TestDecodeEdgeRLE_tooShort(t *testing.T) {
	_, err := DecodeEdgeRLE(make([]byte, 5))
	var malformed *MalformedSlice
	assert.ErrorAs(t, err, &malformed)
}

func TestDecodeEdgeRLE_alwaysFullSize(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), 6, 30000).Draw(t, "raw")
		mask, err := DecodeEdgeRLE(raw)
		assert.NoError(t, err)
		assert.Equal(t, EdgePixels, len(mask.Bits))
	})
}

func TestDecodeEdgeRLE_exactRuns(t *testing.T) {
	raw := flirtest.BuildEdgeRLE(EdgePixels, 1000)
	mask, err := DecodeEdgeRLE(raw)
	assert.NoError(t, err)
	assert.Equal(t, EdgePixels, len(mask.Bits))

	on := false
	pos := 0
	for pos < EdgePixels {
		n := 1000
		if n > EdgePixels-pos {
			n = EdgePixels - pos
		}
		for i := pos; i < pos+n; i++ {
			assert.Equalf(t, on, mask.Bits[i], "bit %d", i)
		}
		pos += n
		on = !on
	}
}

func TestDecodeEdgeRLE_shortRunsPadFalse(t *testing.T) {
	// A single short "off" run followed by nothing: everything past it must
	// be false, not garbage.
	raw := flirtest.BuildEdgeRLE(10, 10)
	mask, err := DecodeEdgeRLE(raw)
	assert.NoError(t, err)
	assert.False(t, mask.Bits[EdgePixels-1])
}
