// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"bytes"
	"encoding/json"
	"image/jpeg"
)

// maxVisibleAccum caps the visible-light accumulator. A real JPEG plus its
// telemetry trailer never approaches this; it exists only so a classifier
// mistake (or a corrupted stream that never emits EOI) can't grow the
// accumulator without bound.
const maxVisibleAccum = 2 << 20 // 2 MiB

// VisibleDecoder reassembles the visible-light camera's streamed JPEG plus
// its trailing JSON telemetry object across however many Visible-labelled
// slices the Classifier hands it.
//
// A VisibleDecoder is stateful in the same way as Classifier and must not be
// shared between pipelines.
type VisibleDecoder struct {
	accum bytes.Buffer
}

// NewVisibleDecoder returns a VisibleDecoder with an empty accumulator.
func NewVisibleDecoder() *VisibleDecoder {
	return &VisibleDecoder{}
}

// Decode feeds one Visible-labelled slice into the accumulator and reports
// whether it completed an image.
//
// A complete byte stream (JPEG SOI...EOI, optionally followed by a JSON
// telemetry tail) that fails to decode as a JPEG is reported via
// VisibleResult.Dropped, not returned as an error: a truncated or corrupted
// visible frame is routine camera noise, not a pipeline fault.
func (d *VisibleDecoder) Decode(slice []byte) VisibleResult {
	d.accum.Write(slice)
	if d.accum.Len() > maxVisibleAccum {
		d.accum.Reset()
		return VisibleResult{kind: visibleNotReady}
	}

	buf := d.accum.Bytes()
	eoi := bytes.Index(buf, jpegEOI)
	if eoi < 0 {
		return VisibleResult{kind: visibleNotReady}
	}

	jpegBytes := buf[:eoi+len(jpegEOI)]
	tail := buf[eoi+len(jpegEOI):]
	img, err := jpeg.Decode(bytes.NewReader(jpegBytes))
	d.accum.Reset()
	if err != nil {
		return VisibleResult{kind: visibleDropped}
	}

	return VisibleResult{
		kind:      visibleReady,
		Image:     img,
		Telemetry: scanVisibleTail(tail),
	}
}

// scanVisibleTail extracts the optional telemetry object trailing the JPEG
// bytes: the text from the first '{' in tail through the first '}' after it,
// parsed as a single JSON object. Unlike DecodeTelemetry's priority scan, no
// further objects are looked at, so a trailer whose first object nests
// another one does not parse — a visible frame's trailer is, at most, one
// opportunistic status snapshot. A tail with no recognizable object yields a
// nil Telemetry, which is a normal (not erroneous) outcome — most visible
// frames carry no trailer at all.
func scanVisibleTail(tail []byte) *Telemetry {
	start := bytes.IndexByte(tail, '{')
	if start < 0 {
		return nil
	}
	end := bytes.IndexByte(tail[start:], '}')
	if end < 0 {
		return nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(tail[start:start+end+1], &obj); err != nil {
		return nil
	}
	return telemetryFromObject(obj)
}
